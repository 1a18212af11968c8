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

// ErrEmptyBoardFields is returned when all the fields are empty.
var ErrEmptyBoardFields = errors.New("UpdatableBoardFields is empty")

// UpdatableBoardFields is a set of fields that can be used to update a
// board. Nil fields are left untouched.
type UpdatableBoardFields struct {
	// Title is the title of the board.
	Title *string `bson:"title,omitempty" validate:"omitempty,min=1,max=200"`
}

// Validate validates the UpdatableBoardFields.
func (i *UpdatableBoardFields) Validate() error {
	if i.Title == nil {
		return ErrEmptyBoardFields
	}

	return validation.ValidateStruct(i)
}
