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
	"time"

	"github.com/boardwalk-team/boardwalk/api/types"
)

// UserInfo is a struct for a mirrored user profile. The ID is issued by the
// authentication provider, not by the store.
type UserInfo struct {
	// ID is the provider-issued ID of the user.
	ID types.ID `bson:"_id"`

	// Email is the email address of the user.
	Email string `bson:"email"`

	// Name is the display name of the user.
	Name string `bson:"name"`

	// EmailVerified is whether the provider has verified the email.
	EmailVerified bool `bson:"email_verified"`

	// CreatedAt is the time when the profile was mirrored.
	CreatedAt time.Time `bson:"created_at"`
}

// NewUserInfo creates a new UserInfo for the given provider identity.
func NewUserInfo(id types.ID, email, name string) *UserInfo {
	return &UserInfo{
		ID:        id,
		Email:     email,
		Name:      name,
		CreatedAt: time.Now(),
	}
}

// DeepCopy returns a deep copy of the UserInfo.
func (i *UserInfo) DeepCopy() *UserInfo {
	if i == nil {
		return nil
	}

	copied := *i
	return &copied
}

// ToUser converts the UserInfo to a User.
func (i *UserInfo) ToUser() *types.User {
	return &types.User{
		ID:            i.ID,
		Email:         i.Email,
		Name:          i.Name,
		EmailVerified: i.EmailVerified,
		CreatedAt:     i.CreatedAt,
	}
}
