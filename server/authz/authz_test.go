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

package authz_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/boardwalk-team/boardwalk/api/types"
	"github.com/boardwalk-team/boardwalk/server/authz"
	"github.com/boardwalk-team/boardwalk/server/backend/database"
)

const (
	ownerID  = types.ID("uid-owner")
	editorID = types.ID("uid-editor")
	viewerID = types.ID("uid-viewer")
)

func newBoard(t *testing.T) *database.BoardInfo {
	t.Helper()

	board := database.NewBoardInfo(t.Name(), ownerID)
	board.ID = types.ID("board-1")
	board.Members = append(board.Members,
		database.MemberInfo{
			UserID:   editorID,
			Role:     database.Editor,
			JoinedAt: time.Now(),
			Status:   database.StatusAccepted,
		},
		database.MemberInfo{
			UserID:   viewerID,
			Role:     database.Viewer,
			JoinedAt: time.Now(),
			Status:   database.StatusAccepted,
		},
	)
	return board
}

func TestResolve(t *testing.T) {
	t.Run("role capability table test", func(t *testing.T) {
		board := newBoard(t)

		owner := authz.Resolve(board, ownerID)
		assert.True(t, owner.CanView)
		assert.True(t, owner.CanEdit)
		assert.True(t, owner.CanDelete)
		assert.True(t, owner.CanInvite)
		assert.True(t, owner.CanManageMembers)

		editor := authz.Resolve(board, editorID)
		assert.True(t, editor.CanView)
		assert.True(t, editor.CanEdit)
		assert.False(t, editor.CanDelete)
		assert.False(t, editor.CanInvite)
		assert.False(t, editor.CanManageMembers)

		viewer := authz.Resolve(board, viewerID)
		assert.True(t, viewer.CanView)
		assert.False(t, viewer.CanEdit)
	})

	t.Run("non member gets viewer capabilities test", func(t *testing.T) {
		board := newBoard(t)
		caps := authz.Resolve(board, "uid-stranger")
		assert.True(t, caps.CanView)
		assert.False(t, caps.CanEdit)
		assert.False(t, caps.CanDelete)
		assert.False(t, caps.CanInvite)
		assert.False(t, caps.CanManageMembers)
	})

	t.Run("nil board and empty user get viewer capabilities test", func(t *testing.T) {
		caps := authz.Resolve(nil, editorID)
		assert.True(t, caps.CanView)
		assert.False(t, caps.CanEdit)

		caps = authz.Resolve(newBoard(t), "")
		assert.True(t, caps.CanView)
		assert.False(t, caps.CanEdit)
	})

	t.Run("pending and rejected members stay read-only test", func(t *testing.T) {
		board := newBoard(t)
		board.Members = append(board.Members,
			database.MemberInfo{
				UserID:   "uid-pending",
				Role:     database.Editor,
				JoinedAt: time.Now(),
				Status:   database.StatusPending,
			},
			database.MemberInfo{
				UserID:   "uid-rejected",
				Role:     database.Viewer,
				JoinedAt: time.Now(),
				Status:   database.StatusRejected,
			},
		)

		pending := authz.Resolve(board, "uid-pending")
		assert.True(t, pending.CanView)
		assert.False(t, pending.CanEdit)

		rejected := authz.Resolve(board, "uid-rejected")
		assert.True(t, rejected.CanView)
		assert.False(t, rejected.CanEdit)
	})

	t.Run("pending editor gains editor capabilities on accept test", func(t *testing.T) {
		board := newBoard(t)
		board.Members = append(board.Members, database.MemberInfo{
			UserID:   "uid-invited",
			Role:     database.Editor,
			JoinedAt: time.Now(),
			Status:   database.StatusPending,
		})

		before := authz.Resolve(board, "uid-invited")
		assert.True(t, before.CanView)
		assert.False(t, before.CanEdit)

		board.FindMember("uid-invited").Status = database.StatusAccepted
		after := authz.Resolve(board, "uid-invited")
		assert.True(t, after.CanEdit)
		assert.False(t, after.CanDelete)
	})

	t.Run("absent status counts as accepted test", func(t *testing.T) {
		board := newBoard(t)
		board.Members = append(board.Members, database.MemberInfo{
			UserID:   "uid-legacy",
			Role:     database.Editor,
			JoinedAt: time.Now(),
		})

		caps := authz.Resolve(board, "uid-legacy")
		assert.True(t, caps.CanView)
		assert.True(t, caps.CanEdit)
	})

	t.Run("derivation is pure test", func(t *testing.T) {
		board := newBoard(t)
		first := authz.Resolve(board, editorID)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, authz.Resolve(board, editorID))
		}
	})
}

func TestResolver(t *testing.T) {
	t.Run("memoized derivation matches pure derivation test", func(t *testing.T) {
		resolver, err := authz.NewResolver(16)
		assert.NoError(t, err)

		board := newBoard(t)
		for _, userID := range []types.ID{ownerID, editorID, viewerID, "uid-stranger"} {
			assert.Equal(t, authz.Resolve(board, userID), resolver.Resolve(board, userID))
			// Second call is served from cache and must agree.
			assert.Equal(t, authz.Resolve(board, userID), resolver.Resolve(board, userID))
		}
	})

	t.Run("absent board gets viewer capabilities test", func(t *testing.T) {
		resolver, err := authz.NewResolver(16)
		assert.NoError(t, err)

		caps := resolver.Resolve(nil, editorID)
		assert.Equal(t, authz.Resolve(nil, editorID), caps)
		assert.True(t, caps.CanView)
		assert.False(t, caps.CanEdit)
	})

	t.Run("member mutation invalidates cached derivation test", func(t *testing.T) {
		resolver, err := authz.NewResolver(16)
		assert.NoError(t, err)

		board := newBoard(t)
		caps := resolver.Resolve(board, editorID)
		assert.True(t, caps.CanEdit)

		// Demote the editor. Bumping updated_at is what every member write
		// does, so the stale entry is never consulted.
		demoted := board.DeepCopy()
		demoted.FindMember(editorID).Role = database.Viewer
		demoted.UpdatedAt = demoted.UpdatedAt.Add(time.Millisecond)

		caps = resolver.Resolve(demoted, editorID)
		assert.True(t, caps.CanView)
		assert.False(t, caps.CanEdit)
	})
}
