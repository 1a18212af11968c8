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

package memory

import "github.com/hashicorp/go-memdb"

var (
	tblUsers    = "users"
	tblBoards   = "boards"
	tblLists    = "lists"
	tblCards    = "cards"
	tblComments = "comments"
)

// Composite sort index names. They can be left out of the schema to force
// the client-side sort fallback, mirroring a store whose composite index
// has not been created.
const (
	idxListsByBoardOrder       = "board_id_order"
	idxCardsByListOrder        = "list_id_order"
	idxCommentsByCardCreatedAt = "card_id_created_at"
)

// buildSchema returns the memdb schema. When sortIndexes is false the
// composite sort indexes are omitted.
func buildSchema(sortIndexes bool) *memdb.DBSchema {
	lists := map[string]*memdb.IndexSchema{
		"id": {
			Name:    "id",
			Unique:  true,
			Indexer: &memdb.StringFieldIndex{Field: "ID"},
		},
		"board_id": {
			Name:    "board_id",
			Indexer: &memdb.StringFieldIndex{Field: "BoardID"},
		},
	}
	cards := map[string]*memdb.IndexSchema{
		"id": {
			Name:    "id",
			Unique:  true,
			Indexer: &memdb.StringFieldIndex{Field: "ID"},
		},
		"list_id": {
			Name:    "list_id",
			Indexer: &memdb.StringFieldIndex{Field: "ListID"},
		},
		"board_id": {
			Name:    "board_id",
			Indexer: &memdb.StringFieldIndex{Field: "BoardID"},
		},
	}
	comments := map[string]*memdb.IndexSchema{
		"id": {
			Name:    "id",
			Unique:  true,
			Indexer: &memdb.StringFieldIndex{Field: "ID"},
		},
		"card_id": {
			Name:    "card_id",
			Indexer: &memdb.StringFieldIndex{Field: "CardID"},
		},
	}

	if sortIndexes {
		lists[idxListsByBoardOrder] = &memdb.IndexSchema{
			Name: idxListsByBoardOrder,
			Indexer: &memdb.CompoundIndex{
				Indexes: []memdb.Indexer{
					&memdb.StringFieldIndex{Field: "BoardID"},
					&memdb.IntFieldIndex{Field: "Order"},
				},
			},
		}
		cards[idxCardsByListOrder] = &memdb.IndexSchema{
			Name: idxCardsByListOrder,
			Indexer: &memdb.CompoundIndex{
				Indexes: []memdb.Indexer{
					&memdb.StringFieldIndex{Field: "ListID"},
					&memdb.IntFieldIndex{Field: "Order"},
				},
			},
		}
		comments[idxCommentsByCardCreatedAt] = &memdb.IndexSchema{
			Name: idxCommentsByCardCreatedAt,
			Indexer: &memdb.CompoundIndex{
				Indexes: []memdb.Indexer{
					&memdb.StringFieldIndex{Field: "CardID"},
					&memdb.TimeFieldIndex{Field: "CreatedAt"},
				},
			},
		}
	}

	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			tblUsers: {
				Name: tblUsers,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "ID"},
					},
					"email": {
						Name:    "email",
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "Email"},
					},
				},
			},
			tblBoards: {
				Name: tblBoards,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "ID"},
					},
				},
			},
			tblLists:    {Name: tblLists, Indexes: lists},
			tblCards:    {Name: tblCards, Indexes: cards},
			tblComments: {Name: tblComments, Indexes: comments},
		},
	}
}
