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

package auth

import (
	"context"
	"sync"

	"github.com/rs/xid"

	"github.com/boardwalk-team/boardwalk/api/types"
	"github.com/boardwalk-team/boardwalk/server/backend"
	"github.com/boardwalk-team/boardwalk/server/users"
)

// profileKey is the single slot the session caches the mirrored profile
// under. It survives provider round-trips and is cleared on sign-out.
const profileKey = "boardwalk_user"

// Session binds a provider identity to a mirrored profile for the
// lifetime of one sign-in. A sign-in mirrors the identity into the user
// store and caches the profile; sign-out invalidates the cache.
type Session struct {
	id       xid.ID
	provider Provider
	backend  *backend.Backend

	mu    sync.RWMutex
	cache map[string]*types.User
}

// NewSession creates a session over the given provider and backend.
func NewSession(provider Provider, be *backend.Backend) *Session {
	return &Session{
		id:       xid.New(),
		provider: provider,
		backend:  be,
		cache:    map[string]*types.User{},
	}
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id.String()
}

// SignUp registers a new identity with the provider, mirrors it into the
// user store and caches the profile.
func (s *Session) SignUp(ctx context.Context, email, password, name string) (*types.User, error) {
	identity, err := s.provider.SignUp(ctx, email, password, name)
	if err != nil {
		return nil, err
	}

	return s.mirror(ctx, identity)
}

// SignIn authenticates against the provider, mirrors the identity into
// the user store and caches the profile.
func (s *Session) SignIn(ctx context.Context, email, password string) (*types.User, error) {
	identity, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	return s.mirror(ctx, identity)
}

// SignOut ends the provider session and invalidates the cached profile.
func (s *Session) SignOut(ctx context.Context) error {
	if err := s.provider.SignOut(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cache, profileKey)

	return nil
}

// Profile returns the signed-in profile. It serves the cached copy when
// present and otherwise asks the provider for the current identity.
func (s *Session) Profile(ctx context.Context) (*types.User, error) {
	s.mu.RLock()
	cached, ok := s.cache[profileKey]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	identity, err := s.provider.CurrentIdentity(ctx)
	if err != nil {
		return nil, err
	}

	return s.mirror(ctx, identity)
}

// WithContext returns a context carrying the signed-in profile so that
// downstream calls can read the acting user with users.From.
func (s *Session) WithContext(ctx context.Context) (context.Context, error) {
	profile, err := s.Profile(ctx)
	if err != nil {
		return nil, err
	}

	return users.With(ctx, profile), nil
}

// ResendVerificationEmail forwards to the provider for the current
// identity.
func (s *Session) ResendVerificationEmail(ctx context.Context) error {
	return s.provider.ResendVerificationEmail(ctx)
}

func (s *Session) mirror(ctx context.Context, identity *Identity) (*types.User, error) {
	profile, err := users.EnsureProfile(ctx, s.backend, identity.ID, identity.Email, identity.Name)
	if err != nil {
		return nil, err
	}
	profile.EmailVerified = identity.EmailVerified

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[profileKey] = profile

	return profile, nil
}
