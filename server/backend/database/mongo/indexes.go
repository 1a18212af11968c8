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

package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/boardwalk-team/boardwalk/server/backend/database"
)

type collectionInfo struct {
	name    string
	indexes []mongo.IndexModel
}

// Below are names and indexes information of collections that store
// Boardwalk data. The composite order indexes are the ones ordered fetches
// rely on; when such an index is missing the fetch falls back to a
// client-side sort.
var collectionInfos = []collectionInfo{
	{
		name: database.ColUsers,
		indexes: []mongo.IndexModel{{
			Keys: bson.D{{Key: "email", Value: int32(1)}},
		}},
	},
	{
		name: database.ColBoards,
		indexes: []mongo.IndexModel{{
			// Multikey index over the embedded member set. It backs the
			// member-of query behind every board listing.
			Keys: bson.D{{Key: "members.user_id", Value: int32(1)}},
		}},
	},
	{
		name: database.ColLists,
		indexes: []mongo.IndexModel{{
			Keys: bson.D{
				{Key: "board_id", Value: int32(1)},
				{Key: "order", Value: int32(1)},
			},
		}},
	},
	{
		name: database.ColCards,
		indexes: []mongo.IndexModel{{
			Keys: bson.D{
				{Key: "list_id", Value: int32(1)},
				{Key: "order", Value: int32(1)},
			},
		}, {
			Keys: bson.D{{Key: "board_id", Value: int32(1)}},
		}},
	},
	{
		name: database.ColComments,
		indexes: []mongo.IndexModel{{
			Keys: bson.D{
				{Key: "card_id", Value: int32(1)},
				{Key: "created_at", Value: int32(1)},
			},
		}},
	},
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, info := range collectionInfos {
		if len(info.indexes) == 0 {
			continue
		}

		if _, err := db.Collection(info.name).Indexes().CreateMany(ctx, info.indexes); err != nil {
			return fmt.Errorf("create indexes of %s: %w", info.name, err)
		}
	}

	return nil
}
