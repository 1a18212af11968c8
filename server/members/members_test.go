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

package members_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/boardwalk-team/boardwalk/api/types"
	"github.com/boardwalk-team/boardwalk/server/authz"
	"github.com/boardwalk-team/boardwalk/server/backend"
	"github.com/boardwalk-team/boardwalk/server/backend/database"
	"github.com/boardwalk-team/boardwalk/server/boards"
	"github.com/boardwalk-team/boardwalk/server/members"
	"github.com/boardwalk-team/boardwalk/server/users"
)

const (
	ownerID   = types.ID("uid-owner")
	editorID  = types.ID("uid-editor")
	inviteeID = types.ID("uid-invitee")
)

func setUpBackend(t *testing.T) *backend.Backend {
	t.Helper()

	be, err := backend.New(&backend.Config{}, nil, nil)
	assert.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, be.Shutdown()) })

	ctx := context.Background()
	_, err = users.EnsureProfile(ctx, be, ownerID, "owner@boardwalk.dev", "Owner")
	assert.NoError(t, err)
	_, err = users.EnsureProfile(ctx, be, editorID, "editor@boardwalk.dev", "Editor")
	assert.NoError(t, err)
	_, err = users.EnsureProfile(ctx, be, inviteeID, "invitee@boardwalk.dev", "Invitee")
	assert.NoError(t, err)

	return be
}

func findMember(t *testing.T, board *types.Board, id types.ID) types.Member {
	t.Helper()

	for _, member := range board.Members {
		if member.UserID == id {
			return member
		}
	}
	t.Fatalf("member %s not found", id)
	return types.Member{}
}

func setUpBoard(t *testing.T, be *backend.Backend) *types.Board {
	t.Helper()

	board, err := boards.Create(context.Background(), be, ownerID, t.Name())
	assert.NoError(t, err)
	return board
}

func TestInvite(t *testing.T) {
	ctx := context.Background()

	t.Run("invite adds pending member test", func(t *testing.T) {
		be := setUpBackend(t)
		board := setUpBoard(t, be)

		member, err := members.Invite(ctx, be, board.ID, ownerID, "invitee@boardwalk.dev", "editor")
		assert.NoError(t, err)
		assert.Equal(t, inviteeID, member.UserID)
		assert.Equal(t, "pending", member.Status)
		assert.Equal(t, ownerID, member.InvitedBy)
		assert.NotNil(t, member.InvitedAt)
	})

	t.Run("invite requires the invite capability test", func(t *testing.T) {
		be := setUpBackend(t)
		board := setUpBoard(t, be)

		_, err := members.Invite(ctx, be, board.ID, ownerID, "editor@boardwalk.dev", "editor")
		assert.NoError(t, err)
		assert.NoError(t, members.Accept(ctx, be, board.ID, editorID))

		// Editors cannot invite.
		_, err = members.Invite(ctx, be, board.ID, editorID, "invitee@boardwalk.dev", "viewer")
		assert.ErrorIs(t, err, authz.ErrPermissionDenied)
	})

	t.Run("invite existing member fails test", func(t *testing.T) {
		be := setUpBackend(t)
		board := setUpBoard(t, be)

		_, err := members.Invite(ctx, be, board.ID, ownerID, "invitee@boardwalk.dev", "viewer")
		assert.NoError(t, err)

		// A second invite fails while the first one is pending.
		_, err = members.Invite(ctx, be, board.ID, ownerID, "invitee@boardwalk.dev", "editor")
		assert.ErrorIs(t, err, members.ErrAlreadyMember)

		// A rejected entry is kept as history and still blocks re-invites.
		assert.NoError(t, members.Reject(ctx, be, board.ID, inviteeID))
		_, err = members.Invite(ctx, be, board.ID, ownerID, "invitee@boardwalk.dev", "editor")
		assert.ErrorIs(t, err, members.ErrAlreadyMember)
	})

	t.Run("invite by outsider looks like missing board test", func(t *testing.T) {
		be := setUpBackend(t)
		board := setUpBoard(t, be)

		_, err := members.Invite(ctx, be, board.ID, inviteeID, "editor@boardwalk.dev", "editor")
		assert.ErrorIs(t, err, database.ErrBoardNotFound)
	})

	t.Run("invite as owner fails test", func(t *testing.T) {
		be := setUpBackend(t)
		board := setUpBoard(t, be)

		_, err := members.Invite(ctx, be, board.ID, ownerID, "invitee@boardwalk.dev", "owner")
		assert.ErrorIs(t, err, database.ErrInvalidMemberRole)
	})

	t.Run("invite unknown email fails test", func(t *testing.T) {
		be := setUpBackend(t)
		board := setUpBoard(t, be)

		_, err := members.Invite(ctx, be, board.ID, ownerID, "nobody@boardwalk.dev", "viewer")
		assert.ErrorIs(t, err, database.ErrUserNotFound)
	})
}

func TestAcceptReject(t *testing.T) {
	ctx := context.Background()

	t.Run("accept grants role capabilities test", func(t *testing.T) {
		be := setUpBackend(t)
		board := setUpBoard(t, be)

		_, err := members.Invite(ctx, be, board.ID, ownerID, "editor@boardwalk.dev", "editor")
		assert.NoError(t, err)

		// Pending members may look at the board but not change it.
		fetched, err := boards.Get(ctx, be, board.ID, editorID)
		assert.NoError(t, err)
		assert.Equal(t, board.ID, fetched.ID)

		title := "renamed"
		_, err = boards.Update(ctx, be, board.ID, editorID, &types.UpdatableBoardFields{Title: &title})
		assert.ErrorIs(t, err, authz.ErrPermissionDenied)

		assert.NoError(t, members.Accept(ctx, be, board.ID, editorID))

		updated, err := boards.Update(ctx, be, board.ID, editorID, &types.UpdatableBoardFields{Title: &title})
		assert.NoError(t, err)
		assert.Equal(t, "renamed", updated.Title)

		// Acceptance refreshes joinedAt.
		member := findMember(t, updated, editorID)
		assert.NotNil(t, member.InvitedAt)
		assert.True(t, member.JoinedAt.After(*member.InvitedAt) || member.JoinedAt.Equal(*member.InvitedAt))
	})

	t.Run("accept is idempotent test", func(t *testing.T) {
		be := setUpBackend(t)
		board := setUpBoard(t, be)

		_, err := members.Invite(ctx, be, board.ID, ownerID, "editor@boardwalk.dev", "editor")
		assert.NoError(t, err)

		assert.NoError(t, members.Accept(ctx, be, board.ID, editorID))
		assert.NoError(t, members.Accept(ctx, be, board.ID, editorID))
	})

	t.Run("reject hides the board test", func(t *testing.T) {
		be := setUpBackend(t)
		board := setUpBoard(t, be)

		_, err := members.Invite(ctx, be, board.ID, ownerID, "editor@boardwalk.dev", "editor")
		assert.NoError(t, err)

		assert.NoError(t, members.Reject(ctx, be, board.ID, editorID))
		assert.NoError(t, members.Reject(ctx, be, board.ID, editorID))

		// Rejected boards are excluded from the user's listing.
		visible, err := boards.ListForUser(ctx, be, editorID)
		assert.NoError(t, err)
		assert.Empty(t, visible.Accepted)
		assert.Empty(t, visible.Pending)
	})

	t.Run("answered invitation cannot flip test", func(t *testing.T) {
		be := setUpBackend(t)
		board := setUpBoard(t, be)

		_, err := members.Invite(ctx, be, board.ID, ownerID, "editor@boardwalk.dev", "editor")
		assert.NoError(t, err)

		assert.NoError(t, members.Reject(ctx, be, board.ID, editorID))
		assert.ErrorIs(t, members.Accept(ctx, be, board.ID, editorID), members.ErrInvitationAnswered)

		_, err = members.Invite(ctx, be, board.ID, ownerID, "invitee@boardwalk.dev", "editor")
		assert.NoError(t, err)
		assert.NoError(t, members.Accept(ctx, be, board.ID, inviteeID))
		assert.ErrorIs(t, members.Reject(ctx, be, board.ID, inviteeID), members.ErrInvitationAnswered)
	})

	t.Run("owner accept is a no-op test", func(t *testing.T) {
		be := setUpBackend(t)
		board := setUpBoard(t, be)

		// The owner entry predates invitations and carries no status.
		assert.NoError(t, members.Accept(ctx, be, board.ID, ownerID))
	})
}

func TestUpdateRoleAndRemove(t *testing.T) {
	ctx := context.Background()

	t.Run("update role test", func(t *testing.T) {
		be := setUpBackend(t)
		board := setUpBoard(t, be)

		_, err := members.Invite(ctx, be, board.ID, ownerID, "editor@boardwalk.dev", "viewer")
		assert.NoError(t, err)
		assert.NoError(t, members.Accept(ctx, be, board.ID, editorID))

		member, err := members.UpdateRole(ctx, be, board.ID, ownerID, editorID, "editor")
		assert.NoError(t, err)
		assert.Equal(t, "editor", member.Role)

		// Editors cannot change another editor's role.
		_, err = members.UpdateRole(ctx, be, board.ID, editorID, editorID, "viewer")
		assert.ErrorIs(t, err, authz.ErrPermissionDenied)

		// The owner entry is immutable.
		_, err = members.UpdateRole(ctx, be, board.ID, ownerID, ownerID, "editor")
		assert.ErrorIs(t, err, members.ErrOwnerImmutable)
	})

	t.Run("editor may manage a viewer test", func(t *testing.T) {
		be := setUpBackend(t)
		board := setUpBoard(t, be)

		_, err := members.Invite(ctx, be, board.ID, ownerID, "editor@boardwalk.dev", "editor")
		assert.NoError(t, err)
		assert.NoError(t, members.Accept(ctx, be, board.ID, editorID))
		_, err = members.Invite(ctx, be, board.ID, ownerID, "invitee@boardwalk.dev", "viewer")
		assert.NoError(t, err)
		assert.NoError(t, members.Accept(ctx, be, board.ID, inviteeID))

		member, err := members.UpdateRole(ctx, be, board.ID, editorID, inviteeID, "viewer")
		assert.NoError(t, err)
		assert.Equal(t, "viewer", member.Role)

		assert.NoError(t, members.Remove(ctx, be, board.ID, editorID, inviteeID))

		_, err = boards.Get(ctx, be, board.ID, inviteeID)
		assert.ErrorIs(t, err, database.ErrBoardNotFound)
	})

	t.Run("remove member test", func(t *testing.T) {
		be := setUpBackend(t)
		board := setUpBoard(t, be)

		_, err := members.Invite(ctx, be, board.ID, ownerID, "editor@boardwalk.dev", "editor")
		assert.NoError(t, err)
		assert.NoError(t, members.Accept(ctx, be, board.ID, editorID))

		assert.NoError(t, members.Remove(ctx, be, board.ID, ownerID, editorID))

		_, err = boards.Get(ctx, be, board.ID, editorID)
		assert.ErrorIs(t, err, database.ErrBoardNotFound)
	})

	t.Run("viewer cannot remove members test", func(t *testing.T) {
		be := setUpBackend(t)
		board := setUpBoard(t, be)

		_, err := members.Invite(ctx, be, board.ID, ownerID, "editor@boardwalk.dev", "viewer")
		assert.NoError(t, err)
		assert.NoError(t, members.Accept(ctx, be, board.ID, editorID))
		_, err = members.Invite(ctx, be, board.ID, ownerID, "invitee@boardwalk.dev", "viewer")
		assert.NoError(t, err)
		assert.NoError(t, members.Accept(ctx, be, board.ID, inviteeID))

		assert.ErrorIs(t,
			members.Remove(ctx, be, board.ID, editorID, inviteeID),
			authz.ErrPermissionDenied,
		)
	})

	t.Run("owner cannot be removed test", func(t *testing.T) {
		be := setUpBackend(t)
		board := setUpBoard(t, be)

		assert.ErrorIs(t, members.Remove(ctx, be, board.ID, ownerID, ownerID), members.ErrOwnerImmutable)
	})
}
