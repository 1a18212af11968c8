/*
 * Copyright 2026 The Boardwalk Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package comments provides the comment related business logic.
package comments

import (
	"context"
	"fmt"

	"github.com/boardwalk-team/boardwalk/api/types"
	"github.com/boardwalk-team/boardwalk/internal/validation"
	"github.com/boardwalk-team/boardwalk/pkg/errors"
	"github.com/boardwalk-team/boardwalk/server/authz"
	"github.com/boardwalk-team/boardwalk/server/backend"
	"github.com/boardwalk-team/boardwalk/server/backend/database"
)

// ErrNotAuthor is returned when a comment mutation comes from someone who
// is neither the author nor the board owner.
var ErrNotAuthor = errors.PermissionDenied("comment belongs to another user").WithCode("ErrNotAuthor")

// Create creates a new comment on the given card.
func Create(
	ctx context.Context,
	be *backend.Backend,
	cardID types.ID,
	userID types.ID,
	content string,
) (comment *types.Comment, err error) {
	defer func() { be.ObserveOperation("comments", "create", err) }()

	if err := validation.ValidateValue(content, "required,max=2000"); err != nil {
		return nil, err
	}

	_, board, err := cardWithBoard(ctx, be, cardID, userID)
	if err != nil {
		return nil, err
	}
	if !be.Resolver.Resolve(board, userID).CanEdit {
		return nil, fmt.Errorf("comment on card %s: %w", cardID, authz.ErrPermissionDenied)
	}

	info, err := be.DB.CreateCommentInfo(ctx, cardID, userID, content)
	if err != nil {
		return nil, err
	}

	return info.ToComment(), nil
}

// ListByCard returns the comments of the card ordered by creation time.
func ListByCard(
	ctx context.Context,
	be *backend.Backend,
	cardID types.ID,
	userID types.ID,
) (result []*types.Comment, err error) {
	defer func() { be.ObserveOperation("comments", "list_by_card", err) }()

	card, _, err := cardWithBoard(ctx, be, cardID, userID)
	if err != nil {
		return nil, err
	}

	infos, err := be.DB.FindCommentInfosByCard(ctx, card.ID)
	if err != nil {
		return nil, err
	}

	result = make([]*types.Comment, 0, len(infos))
	for _, info := range infos {
		result = append(result, info.ToComment())
	}

	return result, nil
}

// Delete removes a single comment. Authors delete their own comments; the
// board owner may delete anyone's.
func Delete(
	ctx context.Context,
	be *backend.Backend,
	commentID types.ID,
	userID types.ID,
) (err error) {
	defer func() { be.ObserveOperation("comments", "delete", err) }()

	info, err := be.DB.FindCommentInfoByID(ctx, commentID)
	if err != nil {
		return err
	}

	_, board, err := cardWithBoard(ctx, be, info.CardID, userID)
	if err != nil {
		return err
	}

	if info.UserID != userID && !be.Resolver.Resolve(board, userID).CanDelete {
		return fmt.Errorf("%s: %w", commentID, ErrNotAuthor)
	}

	return be.DB.DeleteCommentInfo(ctx, info.ID)
}

func cardWithBoard(
	ctx context.Context,
	be *backend.Backend,
	cardID types.ID,
	userID types.ID,
) (*database.CardInfo, *database.BoardInfo, error) {
	card, err := be.DB.FindCardInfoByID(ctx, cardID)
	if err != nil {
		return nil, nil, err
	}

	board, err := be.DB.FindBoardInfoByID(ctx, card.BoardID)
	if err != nil {
		return nil, nil, err
	}
	if err := board.Normalize(); err != nil {
		return nil, nil, err
	}
	if !board.HasMember(userID) {
		return nil, nil, fmt.Errorf("%s: %w", card.BoardID, database.ErrBoardNotFound)
	}

	return card, board, nil
}
