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

// Package memory implements the database interface using in-memory database.
package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-memdb"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/boardwalk-team/boardwalk/api/types"
	"github.com/boardwalk-team/boardwalk/server/backend/database"
)

// DB is an in-memory database for testing or temporarily.
type DB struct {
	db          *memdb.MemDB
	sortIndexes bool
	onFallback  func()
}

// Option configures the in-memory database.
type Option func(*DB)

// WithoutSortIndexes builds the database without composite sort indexes, so
// ordered queries fail with database.ErrIndexNotAvailable and exercise the
// client-side sort fallback.
func WithoutSortIndexes() Option {
	return func(d *DB) {
		d.sortIndexes = false
	}
}

// SetFallbackObserver registers a function invoked whenever an ordered
// query falls back to the client-side sort.
func (d *DB) SetFallbackObserver(fn func()) {
	d.onFallback = fn
}

// New returns a new in-memory database.
func New(opts ...Option) (*DB, error) {
	d := &DB{sortIndexes: true}
	for _, opt := range opts {
		opt(d)
	}

	db, err := memdb.NewMemDB(buildSchema(d.sortIndexes))
	if err != nil {
		return nil, fmt.Errorf("new memdb: %w", err)
	}
	d.db = db

	return d, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return nil
}

func newID() types.ID {
	return types.ID(bson.NewObjectID().Hex())
}

// EnsureUserInfo returns the mirrored profile of the given provider
// identity, creating it if it does not exist yet.
func (d *DB) EnsureUserInfo(
	_ context.Context,
	id types.ID,
	email, name string,
) (*database.UserInfo, error) {
	txn := d.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(tblUsers, "id", id.String())
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	if raw != nil {
		return raw.(*database.UserInfo).DeepCopy(), nil
	}

	info := database.NewUserInfo(id, email, name)
	if err := txn.Insert(tblUsers, info); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	txn.Commit()

	return info.DeepCopy(), nil
}

// FindUserInfoByID returns a user by the given ID.
func (d *DB) FindUserInfoByID(_ context.Context, id types.ID) (*database.UserInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(tblUsers, "id", id.String())
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%s: %w", id, database.ErrUserNotFound)
	}

	return raw.(*database.UserInfo).DeepCopy(), nil
}

// FindUserInfoByEmail returns a user by the given email address.
func (d *DB) FindUserInfoByEmail(_ context.Context, email string) (*database.UserInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(tblUsers, "email", email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%s: %w", email, database.ErrUserNotFound)
	}

	return raw.(*database.UserInfo).DeepCopy(), nil
}

// ListUserInfos returns all mirrored user profiles.
func (d *DB) ListUserInfos(_ context.Context) ([]*database.UserInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	iter, err := txn.Get(tblUsers, "id")
	if err != nil {
		return nil, fmt.Errorf("fetch users: %w", err)
	}

	var infos []*database.UserInfo
	for raw := iter.Next(); raw != nil; raw = iter.Next() {
		infos = append(infos, raw.(*database.UserInfo).DeepCopy())
	}

	return infos, nil
}

// CreateBoardInfo creates a new board owned by the given user.
func (d *DB) CreateBoardInfo(
	_ context.Context,
	title string,
	owner types.ID,
) (*database.BoardInfo, error) {
	txn := d.db.Txn(true)
	defer txn.Abort()

	info := database.NewBoardInfo(title, owner)
	info.ID = newID()
	if err := txn.Insert(tblBoards, info); err != nil {
		return nil, fmt.Errorf("insert board: %w", err)
	}
	txn.Commit()

	return info.DeepCopy(), nil
}

// FindBoardInfoByID returns a board by the given ID.
func (d *DB) FindBoardInfoByID(_ context.Context, id types.ID) (*database.BoardInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	return d.findBoardInfo(txn, id)
}

func (d *DB) findBoardInfo(txn *memdb.Txn, id types.ID) (*database.BoardInfo, error) {
	raw, err := txn.First(tblBoards, "id", id.String())
	if err != nil {
		return nil, fmt.Errorf("find board by id: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%s: %w", id, database.ErrBoardNotFound)
	}

	return raw.(*database.BoardInfo).DeepCopy(), nil
}

// ListBoardInfos returns all boards in arrival order.
func (d *DB) ListBoardInfos(_ context.Context) ([]*database.BoardInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	iter, err := txn.Get(tblBoards, "id")
	if err != nil {
		return nil, fmt.Errorf("fetch boards: %w", err)
	}

	var infos []*database.BoardInfo
	for raw := iter.Next(); raw != nil; raw = iter.Next() {
		infos = append(infos, raw.(*database.BoardInfo).DeepCopy())
	}

	return infos, nil
}

// ListBoardInfosByMember returns the boards where some member entry's user
// ID equals the given user, regardless of invitation status.
func (d *DB) ListBoardInfosByMember(
	_ context.Context,
	userID types.ID,
) ([]*database.BoardInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	iter, err := txn.Get(tblBoards, "id")
	if err != nil {
		return nil, fmt.Errorf("fetch boards: %w", err)
	}

	var infos []*database.BoardInfo
	for raw := iter.Next(); raw != nil; raw = iter.Next() {
		info := raw.(*database.BoardInfo)
		if info.HasMember(userID) {
			infos = append(infos, info.DeepCopy())
		}
	}

	return infos, nil
}

// UpdateBoardInfo updates the board fields and bumps updated_at.
func (d *DB) UpdateBoardInfo(
	_ context.Context,
	id types.ID,
	fields *types.UpdatableBoardFields,
) (*database.BoardInfo, error) {
	txn := d.db.Txn(true)
	defer txn.Abort()

	info, err := d.findBoardInfo(txn, id)
	if err != nil {
		return nil, err
	}

	if fields.Title != nil {
		info.Title = *fields.Title
	}
	info.UpdatedAt = time.Now()

	if err := txn.Insert(tblBoards, info); err != nil {
		return nil, fmt.Errorf("update board: %w", err)
	}
	txn.Commit()

	return info.DeepCopy(), nil
}

// UpdateBoardMembers overwrites the whole member set of the board and
// bumps updated_at.
func (d *DB) UpdateBoardMembers(
	_ context.Context,
	id types.ID,
	members []database.MemberInfo,
) (*database.BoardInfo, error) {
	txn := d.db.Txn(true)
	defer txn.Abort()

	info, err := d.findBoardInfo(txn, id)
	if err != nil {
		return nil, err
	}

	info.Members = make([]database.MemberInfo, len(members))
	copy(info.Members, members)
	info.UpdatedAt = time.Now()

	if err := txn.Insert(tblBoards, info); err != nil {
		return nil, fmt.Errorf("update board members: %w", err)
	}
	txn.Commit()

	return info.DeepCopy(), nil
}

// CreateListInfo creates a new list on the given board.
func (d *DB) CreateListInfo(
	_ context.Context,
	boardID types.ID,
	title string,
	order int,
) (*database.ListInfo, error) {
	txn := d.db.Txn(true)
	defer txn.Abort()

	info := database.NewListInfo(boardID, title, order)
	info.ID = newID()
	if err := txn.Insert(tblLists, info); err != nil {
		return nil, fmt.Errorf("insert list: %w", err)
	}
	txn.Commit()

	return info.DeepCopy(), nil
}

// FindListInfoByID returns a list by the given ID.
func (d *DB) FindListInfoByID(_ context.Context, id types.ID) (*database.ListInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	return d.findListInfo(txn, id)
}

func (d *DB) findListInfo(txn *memdb.Txn, id types.ID) (*database.ListInfo, error) {
	raw, err := txn.First(tblLists, "id", id.String())
	if err != nil {
		return nil, fmt.Errorf("find list by id: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%s: %w", id, database.ErrListNotFound)
	}

	return raw.(*database.ListInfo).DeepCopy(), nil
}

// FindListInfosByBoard returns the lists of the board ordered by their
// position.
func (d *DB) FindListInfosByBoard(
	ctx context.Context,
	boardID types.ID,
) ([]*database.ListInfo, error) {
	return database.FindSorted(ctx, func(sorted bool) ([]*database.ListInfo, error) {
		txn := d.db.Txn(false)
		defer txn.Abort()

		index := "board_id"
		if sorted {
			if !d.sortIndexes {
				return nil, fmt.Errorf("lists by board: %w", database.ErrIndexNotAvailable)
			}
			index = idxListsByBoardOrder + "_prefix"
		}

		iter, err := txn.Get(tblLists, index, boardID.String())
		if err != nil {
			return nil, fmt.Errorf("fetch lists by board: %w", err)
		}

		var infos []*database.ListInfo
		for raw := iter.Next(); raw != nil; raw = iter.Next() {
			infos = append(infos, raw.(*database.ListInfo).DeepCopy())
		}
		return infos, nil
	}, func(a, b *database.ListInfo) bool {
		return a.Order < b.Order
	}, d.onFallback)
}

// UpdateListInfo updates the list fields.
func (d *DB) UpdateListInfo(
	_ context.Context,
	id types.ID,
	fields *types.UpdatableListFields,
) (*database.ListInfo, error) {
	txn := d.db.Txn(true)
	defer txn.Abort()

	info, err := d.findListInfo(txn, id)
	if err != nil {
		return nil, err
	}

	if fields.Title != nil {
		info.Title = *fields.Title
	}
	if fields.Order != nil {
		info.Order = *fields.Order
	}

	if err := txn.Insert(tblLists, info); err != nil {
		return nil, fmt.Errorf("update list: %w", err)
	}
	txn.Commit()

	return info.DeepCopy(), nil
}

// CreateCardInfo creates a new card on the given list.
func (d *DB) CreateCardInfo(
	_ context.Context,
	listID, boardID types.ID,
	title string,
	order int,
) (*database.CardInfo, error) {
	txn := d.db.Txn(true)
	defer txn.Abort()

	info := database.NewCardInfo(listID, boardID, title, order)
	info.ID = newID()
	if err := txn.Insert(tblCards, info); err != nil {
		return nil, fmt.Errorf("insert card: %w", err)
	}
	txn.Commit()

	return info.DeepCopy(), nil
}

// FindCardInfoByID returns a card by the given ID.
func (d *DB) FindCardInfoByID(_ context.Context, id types.ID) (*database.CardInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	return d.findCardInfo(txn, id)
}

func (d *DB) findCardInfo(txn *memdb.Txn, id types.ID) (*database.CardInfo, error) {
	raw, err := txn.First(tblCards, "id", id.String())
	if err != nil {
		return nil, fmt.Errorf("find card by id: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%s: %w", id, database.ErrCardNotFound)
	}

	return raw.(*database.CardInfo).DeepCopy(), nil
}

// FindCardInfosByList returns the cards of the list ordered by their
// position.
func (d *DB) FindCardInfosByList(
	ctx context.Context,
	listID types.ID,
) ([]*database.CardInfo, error) {
	return database.FindSorted(ctx, func(sorted bool) ([]*database.CardInfo, error) {
		txn := d.db.Txn(false)
		defer txn.Abort()

		index := "list_id"
		if sorted {
			if !d.sortIndexes {
				return nil, fmt.Errorf("cards by list: %w", database.ErrIndexNotAvailable)
			}
			index = idxCardsByListOrder + "_prefix"
		}

		iter, err := txn.Get(tblCards, index, listID.String())
		if err != nil {
			return nil, fmt.Errorf("fetch cards by list: %w", err)
		}

		var infos []*database.CardInfo
		for raw := iter.Next(); raw != nil; raw = iter.Next() {
			infos = append(infos, raw.(*database.CardInfo).DeepCopy())
		}
		return infos, nil
	}, func(a, b *database.CardInfo) bool {
		return a.Order < b.Order
	}, d.onFallback)
}

// FindCardInfosByLists returns all cards belonging to the given lists,
// unordered.
func (d *DB) FindCardInfosByLists(
	_ context.Context,
	listIDs []types.ID,
) ([]*database.CardInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	var infos []*database.CardInfo
	for _, listID := range listIDs {
		iter, err := txn.Get(tblCards, "list_id", listID.String())
		if err != nil {
			return nil, fmt.Errorf("fetch cards by list: %w", err)
		}
		for raw := iter.Next(); raw != nil; raw = iter.Next() {
			infos = append(infos, raw.(*database.CardInfo).DeepCopy())
		}
	}

	return infos, nil
}

// UpdateCardInfo updates the card fields and bumps updated_at. When the
// card moves to another list, the board reference follows the destination
// list.
func (d *DB) UpdateCardInfo(
	_ context.Context,
	id types.ID,
	fields *types.UpdatableCardFields,
) (*database.CardInfo, error) {
	txn := d.db.Txn(true)
	defer txn.Abort()

	info, err := d.findCardInfo(txn, id)
	if err != nil {
		return nil, err
	}

	if fields.Title != nil {
		info.Title = *fields.Title
	}
	if fields.Description != nil {
		info.Description = *fields.Description
	}
	if fields.ListID != nil {
		list, err := d.findListInfo(txn, *fields.ListID)
		if err != nil {
			return nil, err
		}
		info.ListID = list.ID
		info.BoardID = list.BoardID
	}
	if fields.Assignees != nil {
		info.Assignees = make([]types.ID, len(*fields.Assignees))
		copy(info.Assignees, *fields.Assignees)
	}
	if fields.ClearDueDate {
		info.DueDate = nil
	} else if fields.DueDate != nil {
		t := *fields.DueDate
		info.DueDate = &t
	}
	if fields.Order != nil {
		info.Order = *fields.Order
	}
	info.UpdatedAt = time.Now()

	if err := txn.Insert(tblCards, info); err != nil {
		return nil, fmt.Errorf("update card: %w", err)
	}
	txn.Commit()

	return info.DeepCopy(), nil
}

// CreateCommentInfo creates a new comment on the given card.
func (d *DB) CreateCommentInfo(
	_ context.Context,
	cardID, author types.ID,
	content string,
) (*database.CommentInfo, error) {
	txn := d.db.Txn(true)
	defer txn.Abort()

	info := database.NewCommentInfo(cardID, author, content)
	info.ID = newID()
	if err := txn.Insert(tblComments, info); err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	txn.Commit()

	return info.DeepCopy(), nil
}

// FindCommentInfoByID returns a comment by the given ID.
func (d *DB) FindCommentInfoByID(_ context.Context, id types.ID) (*database.CommentInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(tblComments, "id", id.String())
	if err != nil {
		return nil, fmt.Errorf("find comment by id: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%s: %w", id, database.ErrCommentNotFound)
	}

	return raw.(*database.CommentInfo).DeepCopy(), nil
}

// FindCommentInfosByCard returns the comments of the card ordered by
// creation time.
func (d *DB) FindCommentInfosByCard(
	ctx context.Context,
	cardID types.ID,
) ([]*database.CommentInfo, error) {
	return database.FindSorted(ctx, func(sorted bool) ([]*database.CommentInfo, error) {
		txn := d.db.Txn(false)
		defer txn.Abort()

		index := "card_id"
		if sorted {
			if !d.sortIndexes {
				return nil, fmt.Errorf("comments by card: %w", database.ErrIndexNotAvailable)
			}
			index = idxCommentsByCardCreatedAt + "_prefix"
		}

		iter, err := txn.Get(tblComments, index, cardID.String())
		if err != nil {
			return nil, fmt.Errorf("fetch comments by card: %w", err)
		}

		var infos []*database.CommentInfo
		for raw := iter.Next(); raw != nil; raw = iter.Next() {
			infos = append(infos, raw.(*database.CommentInfo).DeepCopy())
		}
		return infos, nil
	}, func(a, b *database.CommentInfo) bool {
		return a.CreatedAt.Before(b.CreatedAt)
	}, d.onFallback)
}

// FindCommentInfosByCards returns all comments on the given cards,
// unordered.
func (d *DB) FindCommentInfosByCards(
	_ context.Context,
	cardIDs []types.ID,
) ([]*database.CommentInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	var infos []*database.CommentInfo
	for _, cardID := range cardIDs {
		iter, err := txn.Get(tblComments, "card_id", cardID.String())
		if err != nil {
			return nil, fmt.Errorf("fetch comments by card: %w", err)
		}
		for raw := iter.Next(); raw != nil; raw = iter.Next() {
			infos = append(infos, raw.(*database.CommentInfo).DeepCopy())
		}
	}

	return infos, nil
}

// DeleteCommentInfo deletes a single comment.
func (d *DB) DeleteCommentInfo(_ context.Context, id types.ID) error {
	txn := d.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(tblComments, "id", id.String())
	if err != nil {
		return fmt.Errorf("find comment by id: %w", err)
	}
	if raw == nil {
		return fmt.Errorf("%s: %w", id, database.ErrCommentNotFound)
	}

	if err := txn.Delete(tblComments, raw); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	txn.Commit()

	return nil
}

// PurgeDeletion removes all records named by the deletion in a single
// write transaction.
func (d *DB) PurgeDeletion(
	_ context.Context,
	deletion database.Deletion,
) (map[string]int64, error) {
	txn := d.db.Txn(true)
	defer txn.Abort()

	counts := map[string]int64{}

	purge := func(tbl, col string, ids []types.ID) error {
		for _, id := range ids {
			raw, err := txn.First(tbl, "id", id.String())
			if err != nil {
				return fmt.Errorf("find %s by id: %w", col, err)
			}
			if raw == nil {
				continue
			}
			if err := txn.Delete(tbl, raw); err != nil {
				return fmt.Errorf("delete %s: %w", col, err)
			}
			counts[col]++
		}
		return nil
	}

	if err := purge(tblComments, database.ColComments, deletion.Comments); err != nil {
		return nil, err
	}
	if err := purge(tblCards, database.ColCards, deletion.Cards); err != nil {
		return nil, err
	}
	if err := purge(tblLists, database.ColLists, deletion.Lists); err != nil {
		return nil, err
	}
	if err := purge(tblBoards, database.ColBoards, deletion.Boards); err != nil {
		return nil, err
	}

	txn.Commit()

	return counts, nil
}
