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

// Comment is a remark on a card. A comment never changes cards.
type Comment struct {
	// ID is the unique ID of the comment.
	ID ID `json:"id"`

	// CardID is the ID of the owning card.
	CardID ID `json:"card_id"`

	// UserID is the ID of the author.
	UserID ID `json:"user_id"`

	// Content is the text of the comment.
	Content string `json:"content"`

	// CreatedAt is the time when the comment was created.
	CreatedAt time.Time `json:"created_at"`
}
