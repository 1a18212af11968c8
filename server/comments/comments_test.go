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

package comments_test

import (
	"context"
	"strings"
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
	editorID = types.ID("uid-editor")
	viewerID = types.ID("uid-viewer")
)

func setUp(t *testing.T) (*backend.Backend, *types.Board, *types.Card) {
	t.Helper()

	be, err := backend.New(&backend.Config{}, nil, nil)
	assert.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, be.Shutdown()) })

	ctx := context.Background()
	_, err = users.EnsureProfile(ctx, be, ownerID, "owner@boardwalk.dev", "Owner")
	assert.NoError(t, err)
	_, err = users.EnsureProfile(ctx, be, editorID, "editor@boardwalk.dev", "Editor")
	assert.NoError(t, err)
	_, err = users.EnsureProfile(ctx, be, viewerID, "viewer@boardwalk.dev", "Viewer")
	assert.NoError(t, err)

	board, err := boards.Create(ctx, be, ownerID, t.Name())
	assert.NoError(t, err)
	list, err := lists.Create(ctx, be, board.ID, ownerID, "backlog", 0)
	assert.NoError(t, err)
	card, err := cards.Create(ctx, be, list.ID, ownerID, "card", 0)
	assert.NoError(t, err)

	return be, board, card
}

func addMember(t *testing.T, be *backend.Backend, boardID types.ID, email string, userID types.ID, role string) {
	t.Helper()

	ctx := context.Background()
	_, err := members.Invite(ctx, be, boardID, ownerID, email, role)
	assert.NoError(t, err)
	assert.NoError(t, members.Accept(ctx, be, boardID, userID))
}

func TestComments(t *testing.T) {
	ctx := context.Background()

	t.Run("create and fetch in creation order test", func(t *testing.T) {
		be, _, card := setUp(t)

		for _, content := range []string{"first", "second", "third"} {
			_, err := comments.Create(ctx, be, card.ID, ownerID, content)
			assert.NoError(t, err)
			time.Sleep(time.Millisecond)
		}

		fetched, err := comments.ListByCard(ctx, be, card.ID, ownerID)
		assert.NoError(t, err)
		assert.Len(t, fetched, 3)
		assert.Equal(t, "first", fetched[0].Content)
		assert.Equal(t, "third", fetched[2].Content)
		for _, comment := range fetched {
			assert.Equal(t, ownerID, comment.UserID)
		}
	})

	t.Run("content validation test", func(t *testing.T) {
		be, _, card := setUp(t)

		_, err := comments.Create(ctx, be, card.ID, ownerID, "")
		assert.Error(t, err)
		_, err = comments.Create(ctx, be, card.ID, ownerID, strings.Repeat("x", 2001))
		assert.Error(t, err)
	})

	t.Run("viewer reads but cannot comment test", func(t *testing.T) {
		be, board, card := setUp(t)
		addMember(t, be, board.ID, "viewer@boardwalk.dev", viewerID, "viewer")

		_, err := comments.Create(ctx, be, card.ID, viewerID, "drive-by")
		assert.ErrorIs(t, err, authz.ErrPermissionDenied)

		_, err = comments.ListByCard(ctx, be, card.ID, viewerID)
		assert.NoError(t, err)
	})

	t.Run("author deletes own comment test", func(t *testing.T) {
		be, board, card := setUp(t)
		addMember(t, be, board.ID, "editor@boardwalk.dev", editorID, "editor")

		comment, err := comments.Create(ctx, be, card.ID, editorID, "mine")
		assert.NoError(t, err)

		assert.NoError(t, comments.Delete(ctx, be, comment.ID, editorID))
		_, err = be.DB.FindCommentInfoByID(ctx, comment.ID)
		assert.ErrorIs(t, err, database.ErrCommentNotFound)
	})

	t.Run("editor cannot delete another member's comment test", func(t *testing.T) {
		be, board, card := setUp(t)
		addMember(t, be, board.ID, "editor@boardwalk.dev", editorID, "editor")

		comment, err := comments.Create(ctx, be, card.ID, ownerID, "owner's note")
		assert.NoError(t, err)

		assert.ErrorIs(t, comments.Delete(ctx, be, comment.ID, editorID), comments.ErrNotAuthor)
	})

	t.Run("owner deletes anyone's comment test", func(t *testing.T) {
		be, board, card := setUp(t)
		addMember(t, be, board.ID, "editor@boardwalk.dev", editorID, "editor")

		comment, err := comments.Create(ctx, be, card.ID, editorID, "moderated")
		assert.NoError(t, err)

		assert.NoError(t, comments.Delete(ctx, be, comment.ID, ownerID))
	})

	t.Run("outsider sees nothing test", func(t *testing.T) {
		be, _, card := setUp(t)

		_, err := comments.ListByCard(ctx, be, card.ID, viewerID)
		assert.ErrorIs(t, err, database.ErrBoardNotFound)
	})
}
