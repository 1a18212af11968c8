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

// Package auth defines the boundary to the external authentication
// provider. The provider owns credentials and identity lifecycle; this
// server only mirrors the identities it vouches for.
package auth

import (
	"context"

	"github.com/boardwalk-team/boardwalk/api/types"
	"github.com/boardwalk-team/boardwalk/pkg/errors"
)

// ErrNotSignedIn is returned when an operation needs a signed-in identity
// and the session has none.
var ErrNotSignedIn = errors.Unauthenticated("not signed in").WithCode("ErrNotSignedIn")

// Identity is an identity vouched for by the provider. The ID is issued
// by the provider and is the key of the mirrored profile.
type Identity struct {
	ID            types.ID
	Email         string
	Name          string
	EmailVerified bool
}

// Provider is the external authentication service. Implementations wrap a
// hosted identity platform; credentials never reach this server's store.
type Provider interface {
	// SignUp registers a new identity and signs it in.
	SignUp(ctx context.Context, email, password, name string) (*Identity, error)

	// SignIn authenticates an existing identity.
	SignIn(ctx context.Context, email, password string) (*Identity, error)

	// SignOut ends the provider-side session of the current identity.
	SignOut(ctx context.Context) error

	// CurrentIdentity returns the signed-in identity, or ErrNotSignedIn.
	CurrentIdentity(ctx context.Context) (*Identity, error)

	// ResendVerificationEmail asks the provider to send the verification
	// mail again for the current identity.
	ResendVerificationEmail(ctx context.Context) error

	// OnStateChange registers a callback invoked with the new identity on
	// sign-in and nil on sign-out. The returned function unsubscribes.
	OnStateChange(fn func(identity *Identity)) func()
}
