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

// CommentInfo is a struct for comment information.
type CommentInfo struct {
	// ID is the unique ID of the comment.
	ID types.ID `bson:"_id"`

	// CardID is the ID of the owning card, immutable after creation.
	CardID types.ID `bson:"card_id"`

	// UserID is the ID of the author.
	UserID types.ID `bson:"user_id"`

	// Content is the text of the comment.
	Content string `bson:"content"`

	// CreatedAt is the time when the comment was created.
	CreatedAt time.Time `bson:"created_at"`
}

// NewCommentInfo creates a new CommentInfo on the given card.
func NewCommentInfo(cardID, author types.ID, content string) *CommentInfo {
	return &CommentInfo{
		CardID:    cardID,
		UserID:    author,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// DeepCopy returns a deep copy of the CommentInfo.
func (i *CommentInfo) DeepCopy() *CommentInfo {
	if i == nil {
		return nil
	}

	copied := *i
	return &copied
}

// ToComment converts the CommentInfo to a Comment.
func (i *CommentInfo) ToComment() *types.Comment {
	return &types.Comment{
		ID:        i.ID,
		CardID:    i.CardID,
		UserID:    i.UserID,
		Content:   i.Content,
		CreatedAt: i.CreatedAt,
	}
}
