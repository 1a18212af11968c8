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

// List is a column of cards within a board. A list never changes boards.
type List struct {
	// ID is the unique ID of the list.
	ID ID `json:"id"`

	// BoardID is the ID of the owning board.
	BoardID ID `json:"board_id"`

	// Title is the title of the list.
	Title string `json:"title"`

	// Order defines the display position of the list within the board.
	// Uniqueness is not enforced; ties keep insertion order.
	Order int `json:"order"`

	// CreatedAt is the time when the list was created.
	CreatedAt time.Time `json:"created_at"`
}
