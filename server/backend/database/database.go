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

// Package database provides the database interface for the Boardwalk
// backend. Implementations convert between store-native representations and
// typed records at this boundary; business logic above it never patches
// record shapes.
package database

import (
	"context"

	"github.com/boardwalk-team/boardwalk/api/types"
	"github.com/boardwalk-team/boardwalk/pkg/errors"
)

var (
	// ErrUserNotFound is returned when the user could not be found.
	ErrUserNotFound = errors.NotFound("user not found").WithCode("ErrUserNotFound")

	// ErrBoardNotFound is returned when the board could not be found. It is
	// also returned when the caller has no membership on the board, so true
	// absence and denied access are indistinguishable.
	ErrBoardNotFound = errors.NotFound("board not found").WithCode("ErrBoardNotFound")

	// ErrListNotFound is returned when the list could not be found.
	ErrListNotFound = errors.NotFound("list not found").WithCode("ErrListNotFound")

	// ErrCardNotFound is returned when the card could not be found.
	ErrCardNotFound = errors.NotFound("card not found").WithCode("ErrCardNotFound")

	// ErrCommentNotFound is returned when the comment could not be found.
	ErrCommentNotFound = errors.NotFound("comment not found").WithCode("ErrCommentNotFound")

	// ErrIndexNotAvailable is returned when a query needs a sort index the
	// store does not have. The fallback layer handles it transparently.
	ErrIndexNotAvailable = errors.FailedPrecond("sort index not available").WithCode("ErrIndexNotAvailable")

	// ErrMalformedMembers is returned when a stored board has no well-formed
	// member set. Multi-record fetches skip such boards with a warning.
	ErrMalformedMembers = errors.Internal("malformed member set").WithCode("ErrMalformedMembers")

	// ErrInvalidMemberRole is returned when a member role is not one of
	// owner, editor or viewer.
	ErrInvalidMemberRole = errors.InvalidArgument("invalid member role").WithCode("ErrInvalidMemberRole")

	// ErrInvalidInviteStatus is returned when an invitation status is not
	// one of pending, accepted or rejected.
	ErrInvalidInviteStatus = errors.InvalidArgument("invalid invite status").WithCode("ErrInvalidInviteStatus")
)

// Database represents the document store which reads or saves Boardwalk
// data. All mutations are last-write-wins whole-field overwrites; there is
// no optimistic versioning.
type Database interface {
	// Close all resources of this database.
	Close() error

	// EnsureUserInfo returns the mirrored profile of the given provider
	// identity, creating it if it does not exist yet.
	EnsureUserInfo(ctx context.Context, id types.ID, email, name string) (*UserInfo, error)

	// FindUserInfoByID returns a user by the given ID.
	FindUserInfoByID(ctx context.Context, id types.ID) (*UserInfo, error)

	// FindUserInfoByEmail returns a user by the given email address.
	FindUserInfoByEmail(ctx context.Context, email string) (*UserInfo, error)

	// ListUserInfos returns all mirrored user profiles.
	ListUserInfos(ctx context.Context) ([]*UserInfo, error)

	// CreateBoardInfo creates a new board owned by the given user. The
	// member set is seeded with a single owner entry.
	CreateBoardInfo(ctx context.Context, title string, owner types.ID) (*BoardInfo, error)

	// FindBoardInfoByID returns a board by the given ID.
	FindBoardInfoByID(ctx context.Context, id types.ID) (*BoardInfo, error)

	// ListBoardInfos returns all boards in arrival order.
	ListBoardInfos(ctx context.Context) ([]*BoardInfo, error)

	// ListBoardInfosByMember returns the boards where some member entry's
	// user ID equals the given user, regardless of invitation status.
	ListBoardInfosByMember(ctx context.Context, userID types.ID) ([]*BoardInfo, error)

	// UpdateBoardInfo updates the board fields and bumps updated_at.
	UpdateBoardInfo(ctx context.Context, id types.ID, fields *types.UpdatableBoardFields) (*BoardInfo, error)

	// UpdateBoardMembers overwrites the whole member set of the board and
	// bumps updated_at. The caller is responsible for the set's invariants.
	UpdateBoardMembers(ctx context.Context, id types.ID, members []MemberInfo) (*BoardInfo, error)

	// CreateListInfo creates a new list on the given board.
	CreateListInfo(ctx context.Context, boardID types.ID, title string, order int) (*ListInfo, error)

	// FindListInfoByID returns a list by the given ID.
	FindListInfoByID(ctx context.Context, id types.ID) (*ListInfo, error)

	// FindListInfosByBoard returns the lists of the board ordered by their
	// position, falling back to a client-side sort when the store cannot
	// serve the ordered query.
	FindListInfosByBoard(ctx context.Context, boardID types.ID) ([]*ListInfo, error)

	// UpdateListInfo updates the list fields.
	UpdateListInfo(ctx context.Context, id types.ID, fields *types.UpdatableListFields) (*ListInfo, error)

	// CreateCardInfo creates a new card on the given list. The board
	// reference is denormalized from the owning list.
	CreateCardInfo(ctx context.Context, listID, boardID types.ID, title string, order int) (*CardInfo, error)

	// FindCardInfoByID returns a card by the given ID.
	FindCardInfoByID(ctx context.Context, id types.ID) (*CardInfo, error)

	// FindCardInfosByList returns the cards of the list ordered by their
	// position, with the same fallback behavior as FindListInfosByBoard.
	FindCardInfosByList(ctx context.Context, listID types.ID) ([]*CardInfo, error)

	// FindCardInfosByLists returns all cards belonging to the given lists,
	// unordered.
	FindCardInfosByLists(ctx context.Context, listIDs []types.ID) ([]*CardInfo, error)

	// UpdateCardInfo updates the card fields and bumps updated_at.
	UpdateCardInfo(ctx context.Context, id types.ID, fields *types.UpdatableCardFields) (*CardInfo, error)

	// CreateCommentInfo creates a new comment on the given card.
	CreateCommentInfo(ctx context.Context, cardID, author types.ID, content string) (*CommentInfo, error)

	// FindCommentInfoByID returns a comment by the given ID.
	FindCommentInfoByID(ctx context.Context, id types.ID) (*CommentInfo, error)

	// FindCommentInfosByCard returns the comments of the card ordered by
	// creation time, with the same fallback behavior as list queries.
	FindCommentInfosByCard(ctx context.Context, cardID types.ID) ([]*CommentInfo, error)

	// FindCommentInfosByCards returns all comments on the given cards,
	// unordered.
	FindCommentInfosByCards(ctx context.Context, cardIDs []types.ID) ([]*CommentInfo, error)

	// DeleteCommentInfo deletes a single comment.
	DeleteCommentInfo(ctx context.Context, id types.ID) error

	// PurgeDeletion removes all records named by the deletion as a single
	// atomic batch and returns the removed count per collection. Either the
	// whole batch commits or none of it does.
	PurgeDeletion(ctx context.Context, deletion Deletion) (map[string]int64, error)
}
