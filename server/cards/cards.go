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

// Package cards provides the card related business logic. Moving a card is
// a field update reassigning its list; the denormalized board reference
// follows the destination list at the store boundary.
package cards

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

// ErrCrossBoardMove is returned when a card move targets a list on a
// different board.
var ErrCrossBoardMove = errors.InvalidArgument("cannot move card across boards").WithCode("ErrCrossBoardMove")

// Create creates a new card on the given list.
func Create(
	ctx context.Context,
	be *backend.Backend,
	listID types.ID,
	userID types.ID,
	title string,
	order int,
) (card *types.Card, err error) {
	defer func() { be.ObserveOperation("cards", "create", err) }()

	if err := validation.ValidateValue(title, "required,min=1,max=200"); err != nil {
		return nil, err
	}

	list, board, err := listWithBoard(ctx, be, listID, userID)
	if err != nil {
		return nil, err
	}
	if !be.Resolver.Resolve(board, userID).CanEdit {
		return nil, fmt.Errorf("create card on list %s: %w", listID, authz.ErrPermissionDenied)
	}

	info, err := be.DB.CreateCardInfo(ctx, list.ID, list.BoardID, title, order)
	if err != nil {
		return nil, err
	}

	return info.ToCard(), nil
}

// ListByList returns the cards of the list ordered by their position.
func ListByList(
	ctx context.Context,
	be *backend.Backend,
	listID types.ID,
	userID types.ID,
) (result []*types.Card, err error) {
	defer func() { be.ObserveOperation("cards", "list_by_list", err) }()

	list, _, err := listWithBoard(ctx, be, listID, userID)
	if err != nil {
		return nil, err
	}

	infos, err := be.DB.FindCardInfosByList(ctx, list.ID)
	if err != nil {
		return nil, err
	}

	result = make([]*types.Card, 0, len(infos))
	for _, info := range infos {
		info.Normalize(list.BoardID)
		result = append(result, info.ToCard())
	}

	return result, nil
}

// ListByBoard returns all cards of the board, unordered, for board-wide
// views that group cards by list on their own.
func ListByBoard(
	ctx context.Context,
	be *backend.Backend,
	boardID types.ID,
	userID types.ID,
) (result []*types.Card, err error) {
	defer func() { be.ObserveOperation("cards", "list_by_board", err) }()

	if _, err := memberBoard(ctx, be, boardID, userID); err != nil {
		return nil, err
	}

	lists, err := be.DB.FindListInfosByBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}

	listIDs := make([]types.ID, 0, len(lists))
	for _, list := range lists {
		listIDs = append(listIDs, list.ID)
	}

	infos, err := be.DB.FindCardInfosByLists(ctx, listIDs)
	if err != nil {
		return nil, err
	}

	result = make([]*types.Card, 0, len(infos))
	for _, info := range infos {
		info.Normalize(boardID)
		result = append(result, info.ToCard())
	}

	return result, nil
}

// Update updates the fields of the card. Reassigning the list moves the
// card; the destination has to be a list of the same board.
func Update(
	ctx context.Context,
	be *backend.Backend,
	cardID types.ID,
	userID types.ID,
	fields *types.UpdatableCardFields,
) (card *types.Card, err error) {
	defer func() { be.ObserveOperation("cards", "update", err) }()

	if err := fields.Validate(); err != nil {
		return nil, err
	}

	info, board, err := cardWithBoard(ctx, be, cardID, userID)
	if err != nil {
		return nil, err
	}
	if !be.Resolver.Resolve(board, userID).CanEdit {
		return nil, fmt.Errorf("update card %s: %w", cardID, authz.ErrPermissionDenied)
	}

	if fields.ListID != nil {
		destination, err := be.DB.FindListInfoByID(ctx, *fields.ListID)
		if err != nil {
			return nil, err
		}
		if destination.BoardID != board.ID {
			return nil, fmt.Errorf("move card %s to list %s: %w", cardID, destination.ID, ErrCrossBoardMove)
		}
	}

	updated, err := be.DB.UpdateCardInfo(ctx, info.ID, fields)
	if err != nil {
		return nil, err
	}

	return updated.ToCard(), nil
}

// Delete removes the card and its comments as one atomic batch.
func Delete(
	ctx context.Context,
	be *backend.Backend,
	cardID types.ID,
	userID types.ID,
) (err error) {
	defer func() { be.ObserveOperation("cards", "delete", err) }()

	info, board, err := cardWithBoard(ctx, be, cardID, userID)
	if err != nil {
		return err
	}
	if !be.Resolver.Resolve(board, userID).CanEdit {
		return fmt.Errorf("delete card %s: %w", cardID, authz.ErrPermissionDenied)
	}

	comments, err := be.DB.FindCommentInfosByCards(ctx, []types.ID{info.ID})
	if err != nil {
		return err
	}
	commentIDs := make([]types.ID, 0, len(comments))
	for _, comment := range comments {
		commentIDs = append(commentIDs, comment.ID)
	}

	counts, err := be.DB.PurgeDeletion(ctx, database.Deletion{
		Cards:    []types.ID{info.ID},
		Comments: commentIDs,
	})
	if err != nil {
		return err
	}
	be.Metrics.AddPurgedRecords(counts)

	return nil
}

func memberBoard(
	ctx context.Context,
	be *backend.Backend,
	boardID types.ID,
	userID types.ID,
) (*database.BoardInfo, error) {
	board, err := be.DB.FindBoardInfoByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if err := board.Normalize(); err != nil {
		return nil, err
	}
	if !board.HasMember(userID) {
		return nil, fmt.Errorf("%s: %w", boardID, database.ErrBoardNotFound)
	}

	return board, nil
}

func listWithBoard(
	ctx context.Context,
	be *backend.Backend,
	listID types.ID,
	userID types.ID,
) (*database.ListInfo, *database.BoardInfo, error) {
	list, err := be.DB.FindListInfoByID(ctx, listID)
	if err != nil {
		return nil, nil, err
	}

	board, err := memberBoard(ctx, be, list.BoardID, userID)
	if err != nil {
		return nil, nil, err
	}

	return list, board, nil
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

	board, err := memberBoard(ctx, be, card.BoardID, userID)
	if err != nil {
		return nil, nil, err
	}
	card.Normalize(board.ID)

	return card, board, nil
}
