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

// Package lists provides the list related business logic.
package lists

import (
	"context"
	"fmt"

	"github.com/boardwalk-team/boardwalk/api/types"
	"github.com/boardwalk-team/boardwalk/internal/validation"
	"github.com/boardwalk-team/boardwalk/server/authz"
	"github.com/boardwalk-team/boardwalk/server/backend"
	"github.com/boardwalk-team/boardwalk/server/backend/database"
	"github.com/boardwalk-team/boardwalk/server/logging"
)

// Create creates a new list on the given board.
func Create(
	ctx context.Context,
	be *backend.Backend,
	boardID types.ID,
	userID types.ID,
	title string,
	order int,
) (list *types.List, err error) {
	defer func() { be.ObserveOperation("lists", "create", err) }()

	if err := validation.ValidateValue(title, "required,min=1,max=200"); err != nil {
		return nil, err
	}

	board, err := memberBoard(ctx, be, boardID, userID)
	if err != nil {
		return nil, err
	}
	if !be.Resolver.Resolve(board, userID).CanEdit {
		return nil, fmt.Errorf("create list on board %s: %w", boardID, authz.ErrPermissionDenied)
	}

	info, err := be.DB.CreateListInfo(ctx, boardID, title, order)
	if err != nil {
		return nil, err
	}

	return info.ToList(), nil
}

// ListByBoard returns the lists of the board ordered by their position.
func ListByBoard(
	ctx context.Context,
	be *backend.Backend,
	boardID types.ID,
	userID types.ID,
) (result []*types.List, err error) {
	defer func() { be.ObserveOperation("lists", "list_by_board", err) }()

	if _, err := memberBoard(ctx, be, boardID, userID); err != nil {
		return nil, err
	}

	infos, err := be.DB.FindListInfosByBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}

	result = make([]*types.List, 0, len(infos))
	for _, info := range infos {
		result = append(result, info.ToList())
	}

	return result, nil
}

// Update updates the fields of the list.
func Update(
	ctx context.Context,
	be *backend.Backend,
	listID types.ID,
	userID types.ID,
	fields *types.UpdatableListFields,
) (list *types.List, err error) {
	defer func() { be.ObserveOperation("lists", "update", err) }()

	if err := fields.Validate(); err != nil {
		return nil, err
	}

	info, board, err := listWithBoard(ctx, be, listID, userID)
	if err != nil {
		return nil, err
	}
	if !be.Resolver.Resolve(board, userID).CanEdit {
		return nil, fmt.Errorf("update list %s: %w", listID, authz.ErrPermissionDenied)
	}

	updated, err := be.DB.UpdateListInfo(ctx, info.ID, fields)
	if err != nil {
		return nil, err
	}

	return updated.ToList(), nil
}

// Delete removes the list, its cards and those cards' comments as one
// atomic batch.
func Delete(
	ctx context.Context,
	be *backend.Backend,
	listID types.ID,
	userID types.ID,
) (err error) {
	defer func() { be.ObserveOperation("lists", "delete", err) }()

	info, board, err := listWithBoard(ctx, be, listID, userID)
	if err != nil {
		return err
	}
	if !be.Resolver.Resolve(board, userID).CanEdit {
		return fmt.Errorf("delete list %s: %w", listID, authz.ErrPermissionDenied)
	}

	deletion, err := database.GatherListDeletion(ctx, be.DB, info.ID)
	if err != nil {
		return err
	}

	counts, err := be.DB.PurgeDeletion(ctx, deletion)
	if err != nil {
		return err
	}
	be.Metrics.AddPurgedRecords(counts)

	logging.From(ctx).Infof(
		"list %s deleted: %d records purged",
		listID,
		deletion.Size(),
	)

	return nil
}

// memberBoard fetches the board and requires the caller to hold a member
// entry on it.
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

// listWithBoard fetches the list and its owning board, with the same
// membership requirement as memberBoard.
func listWithBoard(
	ctx context.Context,
	be *backend.Backend,
	listID types.ID,
	userID types.ID,
) (*database.ListInfo, *database.BoardInfo, error) {
	info, err := be.DB.FindListInfoByID(ctx, listID)
	if err != nil {
		return nil, nil, err
	}

	board, err := memberBoard(ctx, be, info.BoardID, userID)
	if err != nil {
		return nil, nil, err
	}

	return info, board, nil
}
