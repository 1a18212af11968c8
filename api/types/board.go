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

package types

import "time"

// Board is a top-level collaborative workspace containing lists and cards.
type Board struct {
	// ID is the unique ID of the board.
	ID ID `json:"id"`

	// Title is the title of the board.
	Title string `json:"title"`

	// Owner is the ID of the user who owns the board. It always refers to
	// the single member holding the owner role.
	Owner ID `json:"owner"`

	// Members is the member set of the board. At most one entry per user.
	Members []Member `json:"members"`

	// CreatedAt is the time when the board was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the time when the board was last updated. Member set
	// changes bump this as well.
	UpdatedAt time.Time `json:"updated_at"`
}

// Member is a (user, role, status) association with a board.
type Member struct {
	// UserID is the ID of the associated user.
	UserID ID `json:"user_id"`

	// Role is the capability tier of the member: owner, editor or viewer.
	Role string `json:"role"`

	// Status is the invitation lifecycle state: pending, accepted or
	// rejected. Empty means accepted; older records predate the field.
	Status string `json:"status,omitempty"`

	// JoinedAt is the time when the member joined the board. For pending
	// invitations it is refreshed on acceptance.
	JoinedAt time.Time `json:"joined_at"`

	// InvitedBy is the ID of the user who sent the invitation, if any.
	InvitedBy ID `json:"invited_by,omitempty"`

	// InvitedAt is the time when the invitation was sent, if any.
	InvitedAt *time.Time `json:"invited_at,omitempty"`
}

// Capabilities is the set of operations a user may perform on a board.
type Capabilities struct {
	CanView          bool `json:"can_view"`
	CanEdit          bool `json:"can_edit"`
	CanDelete        bool `json:"can_delete"`
	CanInvite        bool `json:"can_invite"`
	CanManageMembers bool `json:"can_manage_members"`
}
