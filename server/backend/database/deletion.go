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
	"context"

	"github.com/boardwalk-team/boardwalk/api/types"
)

// Collection names of the logical collections each implementation stores.
const (
	ColUsers    = "users"
	ColBoards   = "boards"
	ColLists    = "lists"
	ColCards    = "cards"
	ColComments = "comments"
)

// Deletion names the full transitive closure of records a cascade delete
// removes. The orchestrator builds it from dependent lookups; PurgeDeletion
// applies it atomically.
type Deletion struct {
	// Boards is the set of board IDs to remove.
	Boards []types.ID

	// Lists is the set of list IDs to remove.
	Lists []types.ID

	// Cards is the set of card IDs to remove.
	Cards []types.ID

	// Comments is the set of comment IDs to remove.
	Comments []types.ID
}

// IsEmpty returns true when the deletion names no records.
func (d Deletion) IsEmpty() bool {
	return len(d.Boards) == 0 && len(d.Lists) == 0 && len(d.Cards) == 0 && len(d.Comments) == 0
}

// Size returns the total number of records named by the deletion.
func (d Deletion) Size() int {
	return len(d.Boards) + len(d.Lists) + len(d.Cards) + len(d.Comments)
}

// GatherBoardDeletion collects the transitive closure of a board removal:
// the board, its lists, the cards on those lists and the comments on those
// cards. Any lookup failure aborts the gather before anything is removed.
func GatherBoardDeletion(ctx context.Context, db Database, boardID types.ID) (Deletion, error) {
	lists, err := db.FindListInfosByBoard(ctx, boardID)
	if err != nil {
		return Deletion{}, err
	}

	listIDs := make([]types.ID, 0, len(lists))
	for _, list := range lists {
		listIDs = append(listIDs, list.ID)
	}

	deletion, err := gatherCardClosure(ctx, db, listIDs)
	if err != nil {
		return Deletion{}, err
	}

	deletion.Boards = []types.ID{boardID}
	deletion.Lists = listIDs
	return deletion, nil
}

// GatherListDeletion collects the transitive closure of a list removal:
// the list, its cards and the comments on those cards.
func GatherListDeletion(ctx context.Context, db Database, listID types.ID) (Deletion, error) {
	deletion, err := gatherCardClosure(ctx, db, []types.ID{listID})
	if err != nil {
		return Deletion{}, err
	}

	deletion.Lists = []types.ID{listID}
	return deletion, nil
}

func gatherCardClosure(ctx context.Context, db Database, listIDs []types.ID) (Deletion, error) {
	cards, err := db.FindCardInfosByLists(ctx, listIDs)
	if err != nil {
		return Deletion{}, err
	}

	cardIDs := make([]types.ID, 0, len(cards))
	for _, card := range cards {
		cardIDs = append(cardIDs, card.ID)
	}

	comments, err := db.FindCommentInfosByCards(ctx, cardIDs)
	if err != nil {
		return Deletion{}, err
	}

	commentIDs := make([]types.ID, 0, len(comments))
	for _, comment := range comments {
		commentIDs = append(commentIDs, comment.ID)
	}

	return Deletion{Cards: cardIDs, Comments: commentIDs}, nil
}

// ChunkIDs splits the given IDs into chunks of at most size entries. Stores
// with a bounded batch width apply each chunk as one operation inside the
// surrounding transaction.
func ChunkIDs(ids []types.ID, size int) [][]types.ID {
	if size <= 0 || len(ids) == 0 {
		if len(ids) == 0 {
			return nil
		}
		return [][]types.ID{ids}
	}

	var chunks [][]types.ID
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
