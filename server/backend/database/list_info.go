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

package database

import (
	"time"

	"github.com/boardwalk-team/boardwalk/api/types"
)

// ListInfo is a struct for list information.
type ListInfo struct {
	// ID is the unique ID of the list.
	ID types.ID `bson:"_id"`

	// BoardID is the ID of the owning board, immutable after creation.
	BoardID types.ID `bson:"board_id"`

	// Title is the title of the list.
	Title string `bson:"title"`

	// Order is the display position of the list within the board.
	Order int `bson:"order"`

	// CreatedAt is the time when the list was created.
	CreatedAt time.Time `bson:"created_at"`
}

// NewListInfo creates a new ListInfo on the given board.
func NewListInfo(boardID types.ID, title string, order int) *ListInfo {
	return &ListInfo{
		BoardID:   boardID,
		Title:     title,
		Order:     order,
		CreatedAt: time.Now(),
	}
}

// DeepCopy returns a deep copy of the ListInfo.
func (i *ListInfo) DeepCopy() *ListInfo {
	if i == nil {
		return nil
	}

	copied := *i
	return &copied
}

// ToList converts the ListInfo to a List.
func (i *ListInfo) ToList() *types.List {
	return &types.List{
		ID:        i.ID,
		BoardID:   i.BoardID,
		Title:     i.Title,
		Order:     i.Order,
		CreatedAt: i.CreatedAt,
	}
}
