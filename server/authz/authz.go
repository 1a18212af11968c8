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

// Package authz derives the capabilities of a user on a board from the
// board's member set. Derivation is pure: the same board record and user
// always yield the same capabilities.
package authz

import (
	"github.com/boardwalk-team/boardwalk/api/types"
	"github.com/boardwalk-team/boardwalk/pkg/errors"
	"github.com/boardwalk-team/boardwalk/server/backend/database"
)

// ErrPermissionDenied is returned when the user holds a membership on the
// board but the role does not allow the operation.
var ErrPermissionDenied = errors.PermissionDenied("permission denied").WithCode("ErrPermissionDenied")

var roleCapabilities = map[database.MemberRole]types.Capabilities{
	database.Owner: {
		CanView:          true,
		CanEdit:          true,
		CanDelete:        true,
		CanInvite:        true,
		CanManageMembers: true,
	},
	database.Editor: {
		CanView: true,
		CanEdit: true,
	},
	database.Viewer: {
		CanView: true,
	},
}

// Resolve returns the capabilities of the given user on the given board.
// Anyone without an accepted membership, including pending and rejected
// invitees, gets the read-only viewer set. Whether the user may reach the
// board at all is a separate check at the service boundary; capabilities
// only grade what a reachable board allows.
func Resolve(board *database.BoardInfo, userID types.ID) types.Capabilities {
	if board == nil || userID == "" {
		return roleCapabilities[database.Viewer]
	}

	member := board.FindMember(userID)
	if member == nil || !member.Status.IsAccepted() {
		return roleCapabilities[database.Viewer]
	}

	return roleCapabilities[member.Role]
}
