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

// Package members provides business logic for managing board members and
// their invitations. Every mutation overwrites the board's whole member
// set, so concurrent member writes resolve last-write-wins as one unit.
package members

import (
	"context"
	"fmt"
	"time"

	"github.com/boardwalk-team/boardwalk/api/types"
	"github.com/boardwalk-team/boardwalk/pkg/errors"
	"github.com/boardwalk-team/boardwalk/server/authz"
	"github.com/boardwalk-team/boardwalk/server/backend"
	"github.com/boardwalk-team/boardwalk/server/backend/database"
)

var (
	// ErrAlreadyMember is returned when the invitee already has a member
	// entry on the board, whatever its status.
	ErrAlreadyMember = errors.AlreadyExists("user is already a member").WithCode("ErrAlreadyMember")

	// ErrMemberNotFound is returned when the addressed user has no member
	// entry on the board.
	ErrMemberNotFound = errors.NotFound("member not found").WithCode("ErrMemberNotFound")

	// ErrInvitationAnswered is returned when accepting or rejecting an
	// invitation that has already been answered the other way.
	ErrInvitationAnswered = errors.FailedPrecond("invitation already answered").WithCode("ErrInvitationAnswered")

	// ErrOwnerImmutable is returned when trying to change the role of the
	// owner or remove the owner from the board.
	ErrOwnerImmutable = errors.FailedPrecond("owner membership cannot be changed").WithCode("ErrOwnerImmutable")
)

// Invite adds a pending member entry for the user with the given email.
// The actor needs the invite capability. Inviting a user who already has
// an entry fails, including entries that were rejected.
func Invite(
	ctx context.Context,
	be *backend.Backend,
	boardID types.ID,
	actorID types.ID,
	email string,
	role string,
) (member *types.Member, err error) {
	defer func() { be.ObserveOperation("members", "invite", err) }()

	memberRole, err := database.NewMemberRole(role)
	if err != nil {
		return nil, err
	}
	if memberRole == database.Owner {
		return nil, fmt.Errorf("invite as owner: %w", database.ErrInvalidMemberRole)
	}

	board, err := accessibleBoard(ctx, be, boardID, actorID)
	if err != nil {
		return nil, err
	}
	if !be.Resolver.Resolve(board, actorID).CanInvite {
		return nil, fmt.Errorf("invite to board %s: %w", boardID, authz.ErrPermissionDenied)
	}

	invitee, err := be.DB.FindUserInfoByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if board.HasMember(invitee.ID) {
		return nil, fmt.Errorf("%s: %w", email, ErrAlreadyMember)
	}

	now := time.Now()
	updated, err := be.DB.UpdateBoardMembers(ctx, boardID, append(board.Members, database.MemberInfo{
		UserID:    invitee.ID,
		Role:      memberRole,
		JoinedAt:  now,
		Status:    database.StatusPending,
		InvitedBy: actorID,
		InvitedAt: &now,
	}))
	if err != nil {
		return nil, err
	}

	entry := updated.FindMember(invitee.ID).ToMember()
	return &entry, nil
}

// Accept marks the caller's pending invitation as accepted. Accepting an
// invitation that is already accepted is a no-op, so a retried accept
// cannot fail. A rejected invitation stays rejected.
func Accept(
	ctx context.Context,
	be *backend.Backend,
	boardID types.ID,
	userID types.ID,
) (err error) {
	defer func() { be.ObserveOperation("members", "accept", err) }()

	return answer(ctx, be, boardID, userID, database.StatusAccepted)
}

// Reject marks the caller's pending invitation as rejected. The entry is
// kept as history; the user stops seeing the board. Rejecting twice is a
// no-op like a retried accept.
func Reject(
	ctx context.Context,
	be *backend.Backend,
	boardID types.ID,
	userID types.ID,
) (err error) {
	defer func() { be.ObserveOperation("members", "reject", err) }()

	return answer(ctx, be, boardID, userID, database.StatusRejected)
}

func answer(
	ctx context.Context,
	be *backend.Backend,
	boardID types.ID,
	userID types.ID,
	status database.InviteStatus,
) error {
	board, err := accessibleBoard(ctx, be, boardID, userID)
	if err != nil {
		return err
	}

	member := board.FindMember(userID)
	if member.Status == status {
		return nil
	}
	if status == database.StatusAccepted && member.Status.IsAccepted() {
		return nil
	}
	if member.Status != database.StatusPending {
		return fmt.Errorf("invitation of %s is %s: %w", userID, member.Status, ErrInvitationAnswered)
	}

	member.Status = status
	if status == database.StatusAccepted {
		// Membership counts from the acceptance, not the invitation.
		member.JoinedAt = time.Now()
	}
	if _, err := be.DB.UpdateBoardMembers(ctx, boardID, board.Members); err != nil {
		return err
	}

	return nil
}

// UpdateRole changes the role of the given member. The actor needs the
// member management capability and the owner's entry is immutable.
func UpdateRole(
	ctx context.Context,
	be *backend.Backend,
	boardID types.ID,
	actorID types.ID,
	targetID types.ID,
	role string,
) (member *types.Member, err error) {
	defer func() { be.ObserveOperation("members", "update_role", err) }()

	memberRole, err := database.NewMemberRole(role)
	if err != nil {
		return nil, err
	}
	if memberRole == database.Owner {
		return nil, fmt.Errorf("grant owner role: %w", database.ErrInvalidMemberRole)
	}

	board, err := accessibleBoard(ctx, be, boardID, actorID)
	if err != nil {
		return nil, err
	}

	target := board.FindMember(targetID)
	if target == nil {
		return nil, fmt.Errorf("%s: %w", targetID, ErrMemberNotFound)
	}
	if target.Role == database.Owner {
		return nil, fmt.Errorf("%s: %w", targetID, ErrOwnerImmutable)
	}
	if !canManageMember(be, board, actorID, target) {
		return nil, fmt.Errorf("manage members of board %s: %w", boardID, authz.ErrPermissionDenied)
	}

	target.Role = memberRole
	updated, err := be.DB.UpdateBoardMembers(ctx, boardID, board.Members)
	if err != nil {
		return nil, err
	}

	entry := updated.FindMember(targetID).ToMember()
	return &entry, nil
}

// Remove deletes the member entry of the given user. Removal follows the
// same rule as role changes and the owner's entry is immutable.
func Remove(
	ctx context.Context,
	be *backend.Backend,
	boardID types.ID,
	actorID types.ID,
	targetID types.ID,
) (err error) {
	defer func() { be.ObserveOperation("members", "remove", err) }()

	board, err := accessibleBoard(ctx, be, boardID, actorID)
	if err != nil {
		return err
	}

	target := board.FindMember(targetID)
	if target == nil {
		return fmt.Errorf("%s: %w", targetID, ErrMemberNotFound)
	}
	if target.Role == database.Owner {
		return fmt.Errorf("%s: %w", targetID, ErrOwnerImmutable)
	}
	if !canManageMember(be, board, actorID, target) {
		return fmt.Errorf("manage members of board %s: %w", boardID, authz.ErrPermissionDenied)
	}

	members := make([]database.MemberInfo, 0, len(board.Members)-1)
	for _, member := range board.Members {
		if member.UserID != targetID {
			members = append(members, member)
		}
	}

	if _, err := be.DB.UpdateBoardMembers(ctx, boardID, members); err != nil {
		return err
	}

	return nil
}

// canManageMember applies the member management rule: owners manage
// everyone but themselves, and an editor may manage a viewer.
func canManageMember(
	be *backend.Backend,
	board *database.BoardInfo,
	actorID types.ID,
	target *database.MemberInfo,
) bool {
	if be.Resolver.Resolve(board, actorID).CanManageMembers {
		return true
	}

	actor := board.FindMember(actorID)
	if actor == nil || !actor.Status.IsAccepted() {
		return false
	}

	return actor.Role == database.Editor && target.Role == database.Viewer
}

// accessibleBoard fetches the board for a member-facing operation. A user
// without any member entry gets not-found, so true absence and denied
// access are indistinguishable.
func accessibleBoard(
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
