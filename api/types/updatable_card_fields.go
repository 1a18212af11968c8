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
	"time"

	"github.com/boardwalk-team/boardwalk/internal/validation"
)

// ErrEmptyCardFields is returned when all the fields are empty.
var ErrEmptyCardFields = errors.New("UpdatableCardFields is empty")

// UpdatableCardFields is a set of fields that can be used to update a
// card. Nil fields are left untouched. Setting ListID moves the card to
// another list; the denormalized board reference follows the destination
// list.
type UpdatableCardFields struct {
	// Title is the title of the card.
	Title *string `bson:"title,omitempty" validate:"omitempty,min=1,max=200"`

	// Description is the description of the card.
	Description *string `bson:"description,omitempty" validate:"omitempty,max=2000"`

	// ListID is the destination list when moving the card.
	ListID *ID `bson:"list_id,omitempty"`

	// Assignees is the full replacement set of assignee user IDs.
	Assignees *[]ID `bson:"assignees,omitempty"`

	// DueDate is the due date of the card.
	DueDate *time.Time `bson:"due_date,omitempty"`

	// ClearDueDate removes the due date. It wins over DueDate.
	ClearDueDate bool `bson:"-"`

	// Order is the display position of the card within its list.
	Order *int `bson:"order,omitempty"`
}

// Validate validates the UpdatableCardFields.
func (i *UpdatableCardFields) Validate() error {
	if i.Title == nil && i.Description == nil && i.ListID == nil &&
		i.Assignees == nil && i.DueDate == nil && !i.ClearDueDate && i.Order == nil {
		return ErrEmptyCardFields
	}

	return validation.ValidateStruct(i)
}
