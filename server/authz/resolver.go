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

package authz

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/boardwalk-team/boardwalk/api/types"
	"github.com/boardwalk-team/boardwalk/server/backend/database"
)

// resolveKey identifies one capability derivation. UpdatedAt is part of the
// key so that any member mutation, which always bumps the board's
// updated_at, naturally invalidates the cached entry.
type resolveKey struct {
	boardID   types.ID
	userID    types.ID
	updatedAt time.Time
}

// Resolver memoizes capability derivations per board revision.
type Resolver struct {
	cache *lru.Cache[resolveKey, types.Capabilities]
}

// NewResolver creates a new Resolver with the given cache size.
func NewResolver(cacheSize int) (*Resolver, error) {
	cache, err := lru.New[resolveKey, types.Capabilities](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("initialize capability cache: %w", err)
	}

	return &Resolver{cache: cache}, nil
}

// Resolve returns the capabilities of the given user on the given board,
// serving repeated derivations for the same board revision from cache.
func (r *Resolver) Resolve(board *database.BoardInfo, userID types.ID) types.Capabilities {
	if board == nil {
		return Resolve(nil, userID)
	}

	key := resolveKey{
		boardID:   board.ID,
		userID:    userID,
		updatedAt: board.UpdatedAt,
	}
	if caps, ok := r.cache.Get(key); ok {
		return caps
	}

	caps := Resolve(board, userID)
	r.cache.Add(key, caps)

	return caps
}
