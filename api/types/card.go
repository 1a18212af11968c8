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

// Card is a task within a list. Moving a card to another list reassigns
// ListID; BoardID is a denormalized copy of the owning board kept in sync
// with the destination list.
type Card struct {
	// ID is the unique ID of the card.
	ID ID `json:"id"`

	// ListID is the ID of the owning list.
	ListID ID `json:"list_id"`

	// BoardID is the ID of the board the owning list belongs to.
	BoardID ID `json:"board_id"`

	// Title is the title of the card.
	Title string `json:"title"`

	// Description is the free-form description of the card.
	Description string `json:"description"`

	// Assignees is the set of user IDs assigned to the card.
	Assignees []ID `json:"assignees"`

	// DueDate is the optional due date of the card.
	DueDate *time.Time `json:"due_date,omitempty"`

	// Order defines the display position of the card within its list.
	Order int `json:"order"`

	// CreatedAt is the time when the card was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the time when the card was last updated.
	UpdatedAt time.Time `json:"updated_at"`
}
