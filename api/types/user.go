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

// User is a mirrored profile of an identity owned by the authentication
// provider, keyed by the provider-issued ID.
type User struct {
	// ID is the ID issued by the authentication provider.
	ID ID `json:"id"`

	// Email is the email address of the user.
	Email string `json:"email"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// EmailVerified is whether the provider has verified the email address.
	EmailVerified bool `json:"email_verified"`

	// CreatedAt is the time when the profile was mirrored.
	CreatedAt time.Time `json:"created_at"`
}
