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

// Package types provides the types shared between the services and their
// callers. This package is the boundary where stored records become typed
// values.
package types

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidID is returned when the given ID has an invalid format.
	ErrInvalidID = errors.New("invalid ID")
)

// ID represents the ID of an entity. Entity IDs are issued by the document
// store; user IDs are issued by the authentication provider and are opaque.
type ID string

// String returns a string representation of this ID.
func (id ID) String() string {
	return string(id)
}

// Validate returns an error if this ID is empty.
func (id ID) Validate() error {
	if len(id) == 0 {
		return fmt.Errorf("%q: %w", id.String(), ErrInvalidID)
	}

	return nil
}
