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

// Package users provides the user related business logic. Identities live
// in the authentication provider; this package mirrors the profile fields
// other users need to see, such as the display name next to a comment.
package users

import (
	"context"

	"github.com/boardwalk-team/boardwalk/api/types"
	"github.com/boardwalk-team/boardwalk/server/backend"
)

// EnsureProfile mirrors the given provider identity into the store and
// returns the profile. Mirroring is idempotent; an existing profile is
// returned untouched.
func EnsureProfile(
	ctx context.Context,
	be *backend.Backend,
	id types.ID,
	email, name string,
) (*types.User, error) {
	info, err := be.DB.EnsureUserInfo(ctx, id, email, name)
	if err != nil {
		return nil, err
	}

	return info.ToUser(), nil
}

// GetUser returns the mirrored profile of the given user.
func GetUser(
	ctx context.Context,
	be *backend.Backend,
	id types.ID,
) (*types.User, error) {
	info, err := be.DB.FindUserInfoByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return info.ToUser(), nil
}

// GetUserByEmail returns the mirrored profile with the given email
// address. Invitations address users by email before they share a board.
func GetUserByEmail(
	ctx context.Context,
	be *backend.Backend,
	email string,
) (*types.User, error) {
	info, err := be.DB.FindUserInfoByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	return info.ToUser(), nil
}

// ListUsers returns all mirrored profiles.
func ListUsers(
	ctx context.Context,
	be *backend.Backend,
) ([]*types.User, error) {
	infos, err := be.DB.ListUserInfos(ctx)
	if err != nil {
		return nil, err
	}

	users := make([]*types.User, 0, len(infos))
	for _, info := range infos {
		users = append(users, info.ToUser())
	}

	return users, nil
}
