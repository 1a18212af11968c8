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

package database

import (
	"fmt"
	"time"

	"github.com/boardwalk-team/boardwalk/api/types"
)

const (
	// Owner is the owner role of a board. Exactly one member holds it.
	Owner MemberRole = "owner"
	// Editor is the editor role of a board.
	Editor MemberRole = "editor"
	// Viewer is the viewer role of a board.
	Viewer MemberRole = "viewer"
)

const (
	// StatusPending marks a member whose invitation has not been answered.
	StatusPending InviteStatus = "pending"
	// StatusAccepted marks a member who accepted the invitation.
	StatusAccepted InviteStatus = "accepted"
	// StatusRejected marks a member who declined the invitation. The record
	// is kept as history.
	StatusRejected InviteStatus = "rejected"
)

// MemberRole represents the capability tier of a board member. It is used
// only in internal layers to avoid persisting invalid values.
type MemberRole string

// String returns the string representation of the role.
func (r MemberRole) String() string {
	return string(r)
}

// Validate validates the given member role.
func (r MemberRole) Validate() error {
	switch r {
	case Owner, Editor, Viewer:
		return nil
	default:
		return fmt.Errorf("%s: %w", r, ErrInvalidMemberRole)
	}
}

// NewMemberRole parses and validates a role string into MemberRole.
func NewMemberRole(role string) (MemberRole, error) {
	r := MemberRole(role)
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

// InviteStatus represents the invitation lifecycle state of a member,
// independent of the role. The zero value means the record predates the
// field and is treated as accepted.
type InviteStatus string

// String returns the string representation of the status.
func (s InviteStatus) String() string {
	return string(s)
}

// Validate validates the given invite status. The zero value is valid.
func (s InviteStatus) Validate() error {
	switch s {
	case "", StatusPending, StatusAccepted, StatusRejected:
		return nil
	default:
		return fmt.Errorf("%s: %w", s, ErrInvalidInviteStatus)
	}
}

// IsAccepted returns true if the member counts as accepted. A record
// without a status is a member from before invitations existed.
func (s InviteStatus) IsAccepted() bool {
	return s == "" || s == StatusAccepted
}

// MemberInfo is a struct for a member entry embedded in a board record.
type MemberInfo struct {
	// UserID is the ID of the user.
	UserID types.ID `bson:"user_id"`

	// Role is the role of the user on the board.
	Role MemberRole `bson:"role"`

	// JoinedAt is the time when the member joined the board.
	JoinedAt time.Time `bson:"joined_at"`

	// Status is the invitation lifecycle state. Absent means accepted.
	Status InviteStatus `bson:"status,omitempty"`

	// InvitedBy is the ID of the user who sent the invitation.
	InvitedBy types.ID `bson:"invited_by,omitempty"`

	// InvitedAt is the time when the invitation was sent.
	InvitedAt *time.Time `bson:"invited_at,omitempty"`
}

// ToMember converts the MemberInfo to a Member.
func (i *MemberInfo) ToMember() types.Member {
	return types.Member{
		UserID:    i.UserID,
		Role:      i.Role.String(),
		Status:    i.Status.String(),
		JoinedAt:  i.JoinedAt,
		InvitedBy: i.InvitedBy,
		InvitedAt: i.InvitedAt,
	}
}

// BoardInfo is a struct for board information. The member set is embedded
// so that member mutations are single-record writes.
type BoardInfo struct {
	// ID is the unique ID of the board.
	ID types.ID `bson:"_id"`

	// Title is the title of the board.
	Title string `bson:"title"`

	// Owner is the ID of the owning user. It always refers to the single
	// member entry holding the owner role.
	Owner types.ID `bson:"owner"`

	// Members is the member set of the board, at most one entry per user.
	Members []MemberInfo `bson:"members"`

	// CreatedAt is the time when the board was created.
	CreatedAt time.Time `bson:"created_at"`

	// UpdatedAt is the time when the board was last updated.
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewBoardInfo creates a new BoardInfo with the owner as its only member.
// The owner entry carries no status, like the records written before
// invitations existed.
func NewBoardInfo(title string, owner types.ID) *BoardInfo {
	now := time.Now()
	return &BoardInfo{
		Title: title,
		Owner: owner,
		Members: []MemberInfo{{
			UserID:   owner,
			Role:     Owner,
			JoinedAt: now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DeepCopy returns a deep copy of the BoardInfo.
func (i *BoardInfo) DeepCopy() *BoardInfo {
	if i == nil {
		return nil
	}

	members := make([]MemberInfo, len(i.Members))
	for idx, m := range i.Members {
		if m.InvitedAt != nil {
			t := *m.InvitedAt
			m.InvitedAt = &t
		}
		members[idx] = m
	}

	return &BoardInfo{
		ID:        i.ID,
		Title:     i.Title,
		Owner:     i.Owner,
		Members:   members,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

// FindMember returns the member entry of the given user, or nil if the
// user has no entry on this board.
func (i *BoardInfo) FindMember(userID types.ID) *MemberInfo {
	for idx := range i.Members {
		if i.Members[idx].UserID == userID {
			return &i.Members[idx]
		}
	}
	return nil
}

// HasMember returns true if the given user has an entry on this board,
// regardless of invitation status.
func (i *BoardInfo) HasMember(userID types.ID) bool {
	return i.FindMember(userID) != nil
}

// Normalize repairs defensible gaps in a stored board record: a missing
// joinedAt defaults to now. A record without a member set cannot be
// repaired and yields ErrMalformedMembers.
func (i *BoardInfo) Normalize() error {
	if i.Members == nil {
		return fmt.Errorf("board %s: %w", i.ID, ErrMalformedMembers)
	}

	now := time.Now()
	for idx := range i.Members {
		if i.Members[idx].JoinedAt.IsZero() {
			i.Members[idx].JoinedAt = now
		}
	}

	return nil
}

// ToBoard converts the BoardInfo to a Board.
func (i *BoardInfo) ToBoard() *types.Board {
	members := make([]types.Member, len(i.Members))
	for idx := range i.Members {
		members[idx] = i.Members[idx].ToMember()
	}

	return &types.Board{
		ID:        i.ID,
		Title:     i.Title,
		Owner:     i.Owner,
		Members:   members,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}
