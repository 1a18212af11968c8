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

// Package boards provides the board related business logic: creation,
// per-user aggregation and the cascade removal of a board with everything
// that lives on it.
package boards

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

// Listing is the per-user partition of visible boards. Boards where the
// user's invitation is rejected appear in neither list.
type Listing struct {
	// Accepted are the boards the user is an accepted member of.
	Accepted []*types.Board

	// Pending are the boards the user has an unanswered invitation for.
	Pending []*types.Board
}

// Create creates a new board owned by the given user.
func Create(
	ctx context.Context,
	be *backend.Backend,
	ownerID types.ID,
	title string,
) (board *types.Board, err error) {
	defer func() { be.ObserveOperation("boards", "create", err) }()

	if err := validation.ValidateValue(title, "required,min=1,max=200"); err != nil {
		return nil, err
	}

	info, err := be.DB.CreateBoardInfo(ctx, title, ownerID)
	if err != nil {
		return nil, err
	}

	return info.ToBoard(), nil
}

// Get returns the board with the given ID. A caller without a member
// entry gets not-found, so true absence and denied access are
// indistinguishable.
func Get(
	ctx context.Context,
	be *backend.Backend,
	boardID types.ID,
	userID types.ID,
) (board *types.Board, err error) {
	defer func() { be.ObserveOperation("boards", "get", err) }()

	info, err := accessibleBoard(ctx, be, boardID, userID)
	if err != nil {
		return nil, err
	}

	return info.ToBoard(), nil
}

// ListForUser returns the boards where the given user has a member entry,
// partitioned by invitation state. Boards without a well-formed member set
// are skipped with a logged warning instead of failing the whole fetch.
func ListForUser(
	ctx context.Context,
	be *backend.Backend,
	userID types.ID,
) (listing *Listing, err error) {
	defer func() { be.ObserveOperation("boards", "list_for_user", err) }()

	infos, err := be.DB.ListBoardInfosByMember(ctx, userID)
	if err != nil {
		return nil, err
	}

	listing = &Listing{}
	for _, info := range infos {
		if err := info.Normalize(); err != nil {
			logging.From(ctx).Warnf("skip malformed board: %v", err)
			continue
		}

		member := info.FindMember(userID)
		switch {
		case member.Status == database.StatusPending:
			listing.Pending = append(listing.Pending, info.ToBoard())
		case member.Status.IsAccepted():
			listing.Accepted = append(listing.Accepted, info.ToBoard())
		}
	}

	return listing, nil
}

// Update updates the fields of the board.
func Update(
	ctx context.Context,
	be *backend.Backend,
	boardID types.ID,
	userID types.ID,
	fields *types.UpdatableBoardFields,
) (board *types.Board, err error) {
	defer func() { be.ObserveOperation("boards", "update", err) }()

	if err := fields.Validate(); err != nil {
		return nil, err
	}

	info, err := accessibleBoard(ctx, be, boardID, userID)
	if err != nil {
		return nil, err
	}
	if !be.Resolver.Resolve(info, userID).CanEdit {
		return nil, fmt.Errorf("update board %s: %w", boardID, authz.ErrPermissionDenied)
	}

	updated, err := be.DB.UpdateBoardInfo(ctx, boardID, fields)
	if err != nil {
		return nil, err
	}

	return updated.ToBoard(), nil
}

// Delete removes the board and everything on it: lists, cards and
// comments go in one atomic batch. A failed gather aborts before anything
// is removed.
func Delete(
	ctx context.Context,
	be *backend.Backend,
	boardID types.ID,
	userID types.ID,
) (err error) {
	defer func() { be.ObserveOperation("boards", "delete", err) }()

	info, err := accessibleBoard(ctx, be, boardID, userID)
	if err != nil {
		return err
	}
	if !be.Resolver.Resolve(info, userID).CanDelete {
		return fmt.Errorf("delete board %s: %w", boardID, authz.ErrPermissionDenied)
	}

	deletion, err := database.GatherBoardDeletion(ctx, be.DB, boardID)
	if err != nil {
		return err
	}

	counts, err := be.DB.PurgeDeletion(ctx, deletion)
	if err != nil {
		return err
	}
	be.Metrics.AddPurgedRecords(counts)

	logging.From(ctx).Infof(
		"board %s deleted: %d records purged",
		boardID,
		deletion.Size(),
	)

	return nil
}

// accessibleBoard fetches and normalizes the board, requiring the caller
// to hold a member entry on it.
func accessibleBoard(
	ctx context.Context,
	be *backend.Backend,
	boardID types.ID,
	userID types.ID,
) (*database.BoardInfo, error) {
	info, err := be.DB.FindBoardInfoByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if err := info.Normalize(); err != nil {
		return nil, err
	}
	if !info.HasMember(userID) {
		return nil, fmt.Errorf("%s: %w", boardID, database.ErrBoardNotFound)
	}

	return info, nil
}
