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

package lists_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/boardwalk-team/boardwalk/api/types"
	"github.com/boardwalk-team/boardwalk/server/authz"
	"github.com/boardwalk-team/boardwalk/server/backend"
	"github.com/boardwalk-team/boardwalk/server/backend/database"
	"github.com/boardwalk-team/boardwalk/server/boards"
	"github.com/boardwalk-team/boardwalk/server/cards"
	"github.com/boardwalk-team/boardwalk/server/comments"
	"github.com/boardwalk-team/boardwalk/server/lists"
	"github.com/boardwalk-team/boardwalk/server/members"
	"github.com/boardwalk-team/boardwalk/server/users"
)

const (
	ownerID  = types.ID("uid-owner")
	viewerID = types.ID("uid-viewer")
)

func setUp(t *testing.T) (*backend.Backend, *types.Board) {
	t.Helper()

	be, err := backend.New(&backend.Config{}, nil, nil)
	assert.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, be.Shutdown()) })

	ctx := context.Background()
	_, err = users.EnsureProfile(ctx, be, ownerID, "owner@boardwalk.dev", "Owner")
	assert.NoError(t, err)
	_, err = users.EnsureProfile(ctx, be, viewerID, "viewer@boardwalk.dev", "Viewer")
	assert.NoError(t, err)

	board, err := boards.Create(ctx, be, ownerID, t.Name())
	assert.NoError(t, err)

	return be, board
}

func TestLists(t *testing.T) {
	ctx := context.Background()

	t.Run("create and fetch ordered test", func(t *testing.T) {
		be, board := setUp(t)

		for _, order := range []int{1, 0, 2} {
			_, err := lists.Create(ctx, be, board.ID, ownerID, "list", order)
			assert.NoError(t, err)
		}

		fetched, err := lists.ListByBoard(ctx, be, board.ID, ownerID)
		assert.NoError(t, err)
		assert.Len(t, fetched, 3)
		for idx, list := range fetched {
			assert.Equal(t, idx, list.Order)
		}
	})

	t.Run("create requires edit capability test", func(t *testing.T) {
		be, board := setUp(t)

		_, err := members.Invite(ctx, be, board.ID, ownerID, "viewer@boardwalk.dev", "viewer")
		assert.NoError(t, err)
		assert.NoError(t, members.Accept(ctx, be, board.ID, viewerID))

		_, err = lists.Create(ctx, be, board.ID, viewerID, "list", 0)
		assert.ErrorIs(t, err, authz.ErrPermissionDenied)

		// Viewers still read.
		_, err = lists.ListByBoard(ctx, be, board.ID, viewerID)
		assert.NoError(t, err)
	})

	t.Run("empty title is rejected before any write test", func(t *testing.T) {
		be, board := setUp(t)

		_, err := lists.Create(ctx, be, board.ID, ownerID, "", 0)
		assert.Error(t, err)

		fetched, err := lists.ListByBoard(ctx, be, board.ID, ownerID)
		assert.NoError(t, err)
		assert.Empty(t, fetched)
	})

	t.Run("update list test", func(t *testing.T) {
		be, board := setUp(t)

		list, err := lists.Create(ctx, be, board.ID, ownerID, "list", 0)
		assert.NoError(t, err)

		title := "renamed"
		order := 3
		updated, err := lists.Update(ctx, be, list.ID, ownerID, &types.UpdatableListFields{
			Title: &title,
			Order: &order,
		})
		assert.NoError(t, err)
		assert.Equal(t, "renamed", updated.Title)
		assert.Equal(t, 3, updated.Order)

		_, err = lists.Update(ctx, be, list.ID, ownerID, &types.UpdatableListFields{})
		assert.ErrorIs(t, err, types.ErrEmptyListFields)
	})
}

func TestListDeletion(t *testing.T) {
	ctx := context.Background()

	t.Run("list deletion removes cards and comments and spares siblings test", func(t *testing.T) {
		be, board := setUp(t)

		doomed, err := lists.Create(ctx, be, board.ID, ownerID, "doomed", 0)
		assert.NoError(t, err)
		sibling, err := lists.Create(ctx, be, board.ID, ownerID, "sibling", 1)
		assert.NoError(t, err)

		var doomedCards []types.ID
		for i := 0; i < 2; i++ {
			card, err := cards.Create(ctx, be, doomed.ID, ownerID, "card", i)
			assert.NoError(t, err)
			doomedCards = append(doomedCards, card.ID)
			_, err = comments.Create(ctx, be, card.ID, ownerID, "note")
			assert.NoError(t, err)
		}
		spared, err := cards.Create(ctx, be, sibling.ID, ownerID, "spared", 0)
		assert.NoError(t, err)
		sparedComment, err := comments.Create(ctx, be, spared.ID, ownerID, "kept")
		assert.NoError(t, err)

		assert.NoError(t, lists.Delete(ctx, be, doomed.ID, ownerID))

		_, err = be.DB.FindListInfoByID(ctx, doomed.ID)
		assert.ErrorIs(t, err, database.ErrListNotFound)
		for _, cardID := range doomedCards {
			_, err = be.DB.FindCardInfoByID(ctx, cardID)
			assert.ErrorIs(t, err, database.ErrCardNotFound)
		}

		// The sibling list and its contents are untouched.
		_, err = be.DB.FindListInfoByID(ctx, sibling.ID)
		assert.NoError(t, err)
		_, err = be.DB.FindCardInfoByID(ctx, spared.ID)
		assert.NoError(t, err)
		_, err = be.DB.FindCommentInfoByID(ctx, sparedComment.ID)
		assert.NoError(t, err)
	})

	t.Run("viewer cannot delete a list test", func(t *testing.T) {
		be, board := setUp(t)

		list, err := lists.Create(ctx, be, board.ID, ownerID, "list", 0)
		assert.NoError(t, err)

		_, err = members.Invite(ctx, be, board.ID, ownerID, "viewer@boardwalk.dev", "viewer")
		assert.NoError(t, err)
		assert.NoError(t, members.Accept(ctx, be, board.ID, viewerID))

		assert.ErrorIs(t, lists.Delete(ctx, be, list.ID, viewerID), authz.ErrPermissionDenied)
	})
}
