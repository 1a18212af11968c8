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

import (
	"errors"

	"github.com/boardwalk-team/boardwalk/internal/validation"
)

// ErrEmptyListFields is returned when all the fields are empty.
var ErrEmptyListFields = errors.New("UpdatableListFields is empty")

// UpdatableListFields is a set of fields that can be used to update a
// list. Nil fields are left untouched. The owning board is immutable.
type UpdatableListFields struct {
	// Title is the title of the list.
	Title *string `bson:"title,omitempty" validate:"omitempty,min=1,max=200"`

	// Order is the display position of the list within the board.
	Order *int `bson:"order,omitempty"`
}

// Validate validates the UpdatableListFields.
func (i *UpdatableListFields) Validate() error {
	if i.Title == nil && i.Order == nil {
		return ErrEmptyListFields
	}

	return validation.ValidateStruct(i)
}
