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

// CardInfo is a struct for card information. BoardID duplicates the owning
// list's board and has to follow the list on every move.
type CardInfo struct {
	// ID is the unique ID of the card.
	ID types.ID `bson:"_id"`

	// ListID is the ID of the owning list. Reassignment moves the card.
	ListID types.ID `bson:"list_id"`

	// BoardID is the ID of the board the owning list belongs to.
	BoardID types.ID `bson:"board_id"`

	// Title is the title of the card.
	Title string `bson:"title"`

	// Description is the description of the card.
	Description string `bson:"description"`

	// Assignees is the set of assigned user IDs.
	Assignees []types.ID `bson:"assignees"`

	// DueDate is the optional due date of the card.
	DueDate *time.Time `bson:"due_date,omitempty"`

	// Order is the display position of the card within its list.
	Order int `bson:"order"`

	// CreatedAt is the time when the card was created.
	CreatedAt time.Time `bson:"created_at"`

	// UpdatedAt is the time when the card was last updated.
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewCardInfo creates a new CardInfo on the given list.
func NewCardInfo(listID, boardID types.ID, title string, order int) *CardInfo {
	now := time.Now()
	return &CardInfo{
		ListID:    listID,
		BoardID:   boardID,
		Title:     title,
		Assignees: []types.ID{},
		Order:     order,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DeepCopy returns a deep copy of the CardInfo.
func (i *CardInfo) DeepCopy() *CardInfo {
	if i == nil {
		return nil
	}

	copied := *i
	copied.Assignees = make([]types.ID, len(i.Assignees))
	copy(copied.Assignees, i.Assignees)
	if i.DueDate != nil {
		t := *i.DueDate
		copied.DueDate = &t
	}
	return &copied
}

// Normalize repairs defensible gaps in a stored card record: a missing
// assignee set defaults to empty and a missing board reference is
// backfilled from the given board.
func (i *CardInfo) Normalize(boardID types.ID) {
	if i.Assignees == nil {
		i.Assignees = []types.ID{}
	}
	if i.BoardID == "" {
		i.BoardID = boardID
	}
}

// ToCard converts the CardInfo to a Card.
func (i *CardInfo) ToCard() *types.Card {
	assignees := make([]types.ID, len(i.Assignees))
	copy(assignees, i.Assignees)

	return &types.Card{
		ID:          i.ID,
		ListID:      i.ListID,
		BoardID:     i.BoardID,
		Title:       i.Title,
		Description: i.Description,
		Assignees:   assignees,
		DueDate:     i.DueDate,
		Order:       i.Order,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}
