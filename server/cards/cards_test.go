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

package cards_test

import (
	"context"
	"testing"
	"time"

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

func setUp(t *testing.T) (*backend.Backend, *types.Board, *types.List) {
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
	list, err := lists.Create(ctx, be, board.ID, ownerID, "backlog", 0)
	assert.NoError(t, err)

	return be, board, list
}

func TestCards(t *testing.T) {
	ctx := context.Background()

	t.Run("create and fetch ordered test", func(t *testing.T) {
		be, _, list := setUp(t)

		for _, order := range []int{2, 0, 1} {
			_, err := cards.Create(ctx, be, list.ID, ownerID, "card", order)
			assert.NoError(t, err)
		}

		fetched, err := cards.ListByList(ctx, be, list.ID, ownerID)
		assert.NoError(t, err)
		assert.Len(t, fetched, 3)
		for idx, card := range fetched {
			assert.Equal(t, idx, card.Order)
			assert.Equal(t, list.ID, card.ListID)
			assert.Equal(t, list.BoardID, card.BoardID)
		}
	})

	t.Run("create on unknown list test", func(t *testing.T) {
		be, _, _ := setUp(t)

		_, err := cards.Create(ctx, be, types.ID("000000000000000000000000"), ownerID, "card", 0)
		assert.ErrorIs(t, err, database.ErrListNotFound)
	})

	t.Run("viewer reads but cannot write test", func(t *testing.T) {
		be, board, list := setUp(t)

		card, err := cards.Create(ctx, be, list.ID, ownerID, "card", 0)
		assert.NoError(t, err)

		_, err = members.Invite(ctx, be, board.ID, ownerID, "viewer@boardwalk.dev", "viewer")
		assert.NoError(t, err)
		assert.NoError(t, members.Accept(ctx, be, board.ID, viewerID))

		fetched, err := cards.ListByList(ctx, be, list.ID, viewerID)
		assert.NoError(t, err)
		assert.Len(t, fetched, 1)

		_, err = cards.Create(ctx, be, list.ID, viewerID, "card", 1)
		assert.ErrorIs(t, err, authz.ErrPermissionDenied)
		assert.ErrorIs(t, cards.Delete(ctx, be, card.ID, viewerID), authz.ErrPermissionDenied)
	})

	t.Run("update fields and due date test", func(t *testing.T) {
		be, _, list := setUp(t)

		card, err := cards.Create(ctx, be, list.ID, ownerID, "card", 0)
		assert.NoError(t, err)

		due := time.Now().Add(24 * time.Hour)
		assignees := []types.ID{ownerID}
		description := "ship it"
		updated, err := cards.Update(ctx, be, card.ID, ownerID, &types.UpdatableCardFields{
			Description: &description,
			Assignees:   &assignees,
			DueDate:     &due,
		})
		assert.NoError(t, err)
		assert.Equal(t, "ship it", updated.Description)
		assert.Equal(t, assignees, updated.Assignees)
		assert.NotNil(t, updated.DueDate)

		updated, err = cards.Update(ctx, be, card.ID, ownerID, &types.UpdatableCardFields{
			ClearDueDate: true,
		})
		assert.NoError(t, err)
		assert.Nil(t, updated.DueDate)

		_, err = cards.Update(ctx, be, card.ID, ownerID, &types.UpdatableCardFields{})
		assert.ErrorIs(t, err, types.ErrEmptyCardFields)
	})

	t.Run("move card within board test", func(t *testing.T) {
		be, board, list := setUp(t)

		other, err := lists.Create(ctx, be, board.ID, ownerID, "doing", 1)
		assert.NoError(t, err)
		card, err := cards.Create(ctx, be, list.ID, ownerID, "card", 0)
		assert.NoError(t, err)

		moved, err := cards.Update(ctx, be, card.ID, ownerID, &types.UpdatableCardFields{
			ListID: &other.ID,
		})
		assert.NoError(t, err)
		assert.Equal(t, other.ID, moved.ListID)
		assert.Equal(t, board.ID, moved.BoardID)

		fetched, err := cards.ListByList(ctx, be, other.ID, ownerID)
		assert.NoError(t, err)
		assert.Len(t, fetched, 1)
	})

	t.Run("move card across boards is rejected test", func(t *testing.T) {
		be, _, list := setUp(t)

		foreign, err := boards.Create(ctx, be, ownerID, "other board")
		assert.NoError(t, err)
		foreignList, err := lists.Create(ctx, be, foreign.ID, ownerID, "inbox", 0)
		assert.NoError(t, err)
		card, err := cards.Create(ctx, be, list.ID, ownerID, "card", 0)
		assert.NoError(t, err)

		_, err = cards.Update(ctx, be, card.ID, ownerID, &types.UpdatableCardFields{
			ListID: &foreignList.ID,
		})
		assert.ErrorIs(t, err, cards.ErrCrossBoardMove)
	})

	t.Run("list by board spans lists test", func(t *testing.T) {
		be, board, list := setUp(t)

		other, err := lists.Create(ctx, be, board.ID, ownerID, "doing", 1)
		assert.NoError(t, err)
		_, err = cards.Create(ctx, be, list.ID, ownerID, "a", 0)
		assert.NoError(t, err)
		_, err = cards.Create(ctx, be, other.ID, ownerID, "b", 0)
		assert.NoError(t, err)

		fetched, err := cards.ListByBoard(ctx, be, board.ID, ownerID)
		assert.NoError(t, err)
		assert.Len(t, fetched, 2)
	})

	t.Run("delete card removes its comments test", func(t *testing.T) {
		be, _, list := setUp(t)

		card, err := cards.Create(ctx, be, list.ID, ownerID, "card", 0)
		assert.NoError(t, err)
		comment, err := comments.Create(ctx, be, card.ID, ownerID, "note")
		assert.NoError(t, err)

		assert.NoError(t, cards.Delete(ctx, be, card.ID, ownerID))

		_, err = be.DB.FindCardInfoByID(ctx, card.ID)
		assert.ErrorIs(t, err, database.ErrCardNotFound)
		_, err = be.DB.FindCommentInfoByID(ctx, comment.ID)
		assert.ErrorIs(t, err, database.ErrCommentNotFound)
	})
}
