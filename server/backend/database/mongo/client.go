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

// Package mongo implements database interfaces using MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/boardwalk-team/boardwalk/api/types"
	"github.com/boardwalk-team/boardwalk/server/backend/database"
	"github.com/boardwalk-team/boardwalk/server/logging"
)

const (
	// boardCacheSize bounds the board record cache. Boards are read on
	// every authorization decision, so they are worth keeping warm.
	boardCacheSize = 1000

	// defaultPurgeChunkSize bounds the width of a single delete operation
	// inside the purge transaction when the config does not override it.
	defaultPurgeChunkSize = 500
)

// Server error codes that indicate the ordered query could not be served
// by an index. Sorted fetches map them to database.ErrIndexNotAvailable so
// the fallback layer can re-run the query unsorted. BadValue is included
// because the sorted fetches hint the composite index, and a hint naming a
// missing index is rejected with BadValue rather than IndexNotFound.
const (
	codeBadValue              = 2
	codeIndexNotFound         = 27
	codeSortExceededMemoryLim = 292
)

// Client is a client that connects to Mongo DB and reads or saves
// Boardwalk data.
type Client struct {
	config *Config
	client *mongo.Client

	boardCache *lru.Cache[types.ID, *database.BoardInfo]
	onFallback func()
}

// SetFallbackObserver registers a function invoked whenever an ordered
// query falls back to the client-side sort.
func (c *Client) SetFallbackObserver(fn func()) {
	c.onFallback = fn
}

// Dial creates an instance of Client and dials the given MongoDB.
func Dial(conf *Config) (*Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), conf.ParseConnectionTimeout())
	defer cancel()

	client, err := mongo.Connect(
		options.Client().ApplyURI(conf.ConnectionURI),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	ctxPing, cancel := context.WithTimeout(ctx, conf.ParsePingTimeout())
	defer cancel()

	if err := client.Ping(ctxPing, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	if err := ensureIndexes(ctx, client.Database(conf.BoardwalkDatabase)); err != nil {
		return nil, err
	}

	boardCache, err := lru.New[types.ID, *database.BoardInfo](boardCacheSize)
	if err != nil {
		return nil, fmt.Errorf("initialize board cache: %w", err)
	}

	logging.DefaultLogger().Infof(
		"MongoDB connected, URI: %s, DB: %s",
		conf.ConnectionURI,
		conf.BoardwalkDatabase,
	)

	return &Client{
		config:     conf,
		client:     client,
		boardCache: boardCache,
	}, nil
}

// Close all resources of this client.
func (c *Client) Close() error {
	if err := c.client.Disconnect(context.Background()); err != nil {
		return fmt.Errorf("close mongo client: %w", err)
	}

	return nil
}

// EnsureUserInfo returns the mirrored profile of the given provider
// identity, creating it if it does not exist yet.
func (c *Client) EnsureUserInfo(
	ctx context.Context,
	id types.ID,
	email, name string,
) (*database.UserInfo, error) {
	result := c.collection(database.ColUsers).FindOneAndUpdate(ctx, bson.M{
		"_id": id,
	}, bson.M{
		"$setOnInsert": bson.M{
			"email":          email,
			"name":           name,
			"email_verified": false,
			"created_at":     time.Now(),
		},
	}, options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After))

	info := database.UserInfo{}
	if err := result.Decode(&info); err != nil {
		return nil, fmt.Errorf("ensure user: %w", err)
	}

	return &info, nil
}

// FindUserInfoByID returns a user by the given ID.
func (c *Client) FindUserInfoByID(ctx context.Context, id types.ID) (*database.UserInfo, error) {
	result := c.collection(database.ColUsers).FindOne(ctx, bson.M{
		"_id": id,
	})

	info := database.UserInfo{}
	if err := result.Decode(&info); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", id, database.ErrUserNotFound)
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}

	return &info, nil
}

// FindUserInfoByEmail returns a user by the given email address.
func (c *Client) FindUserInfoByEmail(
	ctx context.Context,
	email string,
) (*database.UserInfo, error) {
	result := c.collection(database.ColUsers).FindOne(ctx, bson.M{
		"email": email,
	})

	info := database.UserInfo{}
	if err := result.Decode(&info); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", email, database.ErrUserNotFound)
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	return &info, nil
}

// ListUserInfos returns all mirrored user profiles.
func (c *Client) ListUserInfos(ctx context.Context) ([]*database.UserInfo, error) {
	cursor, err := c.collection(database.ColUsers).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("fetch users: %w", err)
	}

	var infos []*database.UserInfo
	if err := cursor.All(ctx, &infos); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	return infos, nil
}

// CreateBoardInfo creates a new board owned by the given user.
func (c *Client) CreateBoardInfo(
	ctx context.Context,
	title string,
	owner types.ID,
) (*database.BoardInfo, error) {
	info := database.NewBoardInfo(title, owner)
	info.ID = newID()

	if _, err := c.collection(database.ColBoards).InsertOne(ctx, info); err != nil {
		return nil, fmt.Errorf("insert board: %w", err)
	}
	c.boardCache.Add(info.ID, info.DeepCopy())

	return info, nil
}

// FindBoardInfoByID returns a board by the given ID.
func (c *Client) FindBoardInfoByID(ctx context.Context, id types.ID) (*database.BoardInfo, error) {
	if info, ok := c.boardCache.Get(id); ok {
		return info.DeepCopy(), nil
	}

	result := c.collection(database.ColBoards).FindOne(ctx, bson.M{
		"_id": id,
	})

	info := database.BoardInfo{}
	if err := result.Decode(&info); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", id, database.ErrBoardNotFound)
		}
		return nil, fmt.Errorf("find board by id: %w", err)
	}
	c.boardCache.Add(info.ID, info.DeepCopy())

	return &info, nil
}

// ListBoardInfos returns all boards in arrival order.
func (c *Client) ListBoardInfos(ctx context.Context) ([]*database.BoardInfo, error) {
	cursor, err := c.collection(database.ColBoards).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("fetch boards: %w", err)
	}

	var infos []*database.BoardInfo
	if err := cursor.All(ctx, &infos); err != nil {
		return nil, fmt.Errorf("decode boards: %w", err)
	}

	return infos, nil
}

// ListBoardInfosByMember returns the boards where some member entry's user
// ID equals the given user, regardless of invitation status.
func (c *Client) ListBoardInfosByMember(
	ctx context.Context,
	userID types.ID,
) ([]*database.BoardInfo, error) {
	cursor, err := c.collection(database.ColBoards).Find(ctx, bson.M{
		"members.user_id": userID,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch boards by member: %w", err)
	}

	var infos []*database.BoardInfo
	if err := cursor.All(ctx, &infos); err != nil {
		return nil, fmt.Errorf("decode boards: %w", err)
	}

	return infos, nil
}

// UpdateBoardInfo updates the board fields and bumps updated_at.
func (c *Client) UpdateBoardInfo(
	ctx context.Context,
	id types.ID,
	fields *types.UpdatableBoardFields,
) (*database.BoardInfo, error) {
	update := bson.M{"updated_at": time.Now()}
	if fields.Title != nil {
		update["title"] = *fields.Title
	}

	result := c.collection(database.ColBoards).FindOneAndUpdate(ctx, bson.M{
		"_id": id,
	}, bson.M{
		"$set": update,
	}, options.FindOneAndUpdate().SetReturnDocument(options.After))

	info := database.BoardInfo{}
	if err := result.Decode(&info); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", id, database.ErrBoardNotFound)
		}
		return nil, fmt.Errorf("update board: %w", err)
	}
	c.boardCache.Add(info.ID, info.DeepCopy())

	return &info, nil
}

// UpdateBoardMembers overwrites the whole member set of the board and
// bumps updated_at.
func (c *Client) UpdateBoardMembers(
	ctx context.Context,
	id types.ID,
	members []database.MemberInfo,
) (*database.BoardInfo, error) {
	result := c.collection(database.ColBoards).FindOneAndUpdate(ctx, bson.M{
		"_id": id,
	}, bson.M{
		"$set": bson.M{
			"members":    members,
			"updated_at": time.Now(),
		},
	}, options.FindOneAndUpdate().SetReturnDocument(options.After))

	info := database.BoardInfo{}
	if err := result.Decode(&info); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", id, database.ErrBoardNotFound)
		}
		return nil, fmt.Errorf("update board members: %w", err)
	}
	c.boardCache.Add(info.ID, info.DeepCopy())

	return &info, nil
}

// CreateListInfo creates a new list on the given board.
func (c *Client) CreateListInfo(
	ctx context.Context,
	boardID types.ID,
	title string,
	order int,
) (*database.ListInfo, error) {
	info := database.NewListInfo(boardID, title, order)
	info.ID = newID()

	if _, err := c.collection(database.ColLists).InsertOne(ctx, info); err != nil {
		return nil, fmt.Errorf("insert list: %w", err)
	}

	return info, nil
}

// FindListInfoByID returns a list by the given ID.
func (c *Client) FindListInfoByID(ctx context.Context, id types.ID) (*database.ListInfo, error) {
	result := c.collection(database.ColLists).FindOne(ctx, bson.M{
		"_id": id,
	})

	info := database.ListInfo{}
	if err := result.Decode(&info); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", id, database.ErrListNotFound)
		}
		return nil, fmt.Errorf("find list by id: %w", err)
	}

	return &info, nil
}

// FindListInfosByBoard returns the lists of the board ordered by their
// position.
func (c *Client) FindListInfosByBoard(
	ctx context.Context,
	boardID types.ID,
) ([]*database.ListInfo, error) {
	return database.FindSorted(ctx, func(sorted bool) ([]*database.ListInfo, error) {
		opts := options.Find()
		if sorted {
			opts.SetSort(bson.D{{Key: "order", Value: 1}}).
				SetHint(bson.D{{Key: "board_id", Value: 1}, {Key: "order", Value: 1}})
		}

		cursor, err := c.collection(database.ColLists).Find(ctx, bson.M{
			"board_id": boardID,
		}, opts)
		if err != nil {
			return nil, fmt.Errorf("fetch lists by board: %w", classifyFindError(err))
		}

		var infos []*database.ListInfo
		if err := cursor.All(ctx, &infos); err != nil {
			return nil, fmt.Errorf("decode lists: %w", classifyFindError(err))
		}
		return infos, nil
	}, func(a, b *database.ListInfo) bool {
		return a.Order < b.Order
	}, c.onFallback)
}

// UpdateListInfo updates the list fields.
func (c *Client) UpdateListInfo(
	ctx context.Context,
	id types.ID,
	fields *types.UpdatableListFields,
) (*database.ListInfo, error) {
	update := bson.M{}
	if fields.Title != nil {
		update["title"] = *fields.Title
	}
	if fields.Order != nil {
		update["order"] = *fields.Order
	}

	result := c.collection(database.ColLists).FindOneAndUpdate(ctx, bson.M{
		"_id": id,
	}, bson.M{
		"$set": update,
	}, options.FindOneAndUpdate().SetReturnDocument(options.After))

	info := database.ListInfo{}
	if err := result.Decode(&info); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", id, database.ErrListNotFound)
		}
		return nil, fmt.Errorf("update list: %w", err)
	}

	return &info, nil
}

// CreateCardInfo creates a new card on the given list.
func (c *Client) CreateCardInfo(
	ctx context.Context,
	listID, boardID types.ID,
	title string,
	order int,
) (*database.CardInfo, error) {
	info := database.NewCardInfo(listID, boardID, title, order)
	info.ID = newID()

	if _, err := c.collection(database.ColCards).InsertOne(ctx, info); err != nil {
		return nil, fmt.Errorf("insert card: %w", err)
	}

	return info, nil
}

// FindCardInfoByID returns a card by the given ID.
func (c *Client) FindCardInfoByID(ctx context.Context, id types.ID) (*database.CardInfo, error) {
	result := c.collection(database.ColCards).FindOne(ctx, bson.M{
		"_id": id,
	})

	info := database.CardInfo{}
	if err := result.Decode(&info); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", id, database.ErrCardNotFound)
		}
		return nil, fmt.Errorf("find card by id: %w", err)
	}

	return &info, nil
}

// FindCardInfosByList returns the cards of the list ordered by their
// position.
func (c *Client) FindCardInfosByList(
	ctx context.Context,
	listID types.ID,
) ([]*database.CardInfo, error) {
	return database.FindSorted(ctx, func(sorted bool) ([]*database.CardInfo, error) {
		opts := options.Find()
		if sorted {
			opts.SetSort(bson.D{{Key: "order", Value: 1}}).
				SetHint(bson.D{{Key: "list_id", Value: 1}, {Key: "order", Value: 1}})
		}

		cursor, err := c.collection(database.ColCards).Find(ctx, bson.M{
			"list_id": listID,
		}, opts)
		if err != nil {
			return nil, fmt.Errorf("fetch cards by list: %w", classifyFindError(err))
		}

		var infos []*database.CardInfo
		if err := cursor.All(ctx, &infos); err != nil {
			return nil, fmt.Errorf("decode cards: %w", classifyFindError(err))
		}
		return infos, nil
	}, func(a, b *database.CardInfo) bool {
		return a.Order < b.Order
	}, c.onFallback)
}

// FindCardInfosByLists returns all cards belonging to the given lists,
// unordered.
func (c *Client) FindCardInfosByLists(
	ctx context.Context,
	listIDs []types.ID,
) ([]*database.CardInfo, error) {
	if len(listIDs) == 0 {
		return nil, nil
	}

	cursor, err := c.collection(database.ColCards).Find(ctx, bson.M{
		"list_id": bson.M{"$in": listIDs},
	})
	if err != nil {
		return nil, fmt.Errorf("fetch cards by lists: %w", err)
	}

	var infos []*database.CardInfo
	if err := cursor.All(ctx, &infos); err != nil {
		return nil, fmt.Errorf("decode cards: %w", err)
	}

	return infos, nil
}

// UpdateCardInfo updates the card fields and bumps updated_at. When the
// card moves to another list, the board reference follows the destination
// list.
func (c *Client) UpdateCardInfo(
	ctx context.Context,
	id types.ID,
	fields *types.UpdatableCardFields,
) (*database.CardInfo, error) {
	set := bson.M{"updated_at": time.Now()}
	if fields.Title != nil {
		set["title"] = *fields.Title
	}
	if fields.Description != nil {
		set["description"] = *fields.Description
	}
	if fields.ListID != nil {
		list, err := c.FindListInfoByID(ctx, *fields.ListID)
		if err != nil {
			return nil, err
		}
		set["list_id"] = list.ID
		set["board_id"] = list.BoardID
	}
	if fields.Assignees != nil {
		set["assignees"] = *fields.Assignees
	}
	if fields.Order != nil {
		set["order"] = *fields.Order
	}

	update := bson.M{"$set": set}
	if fields.ClearDueDate {
		update["$unset"] = bson.M{"due_date": ""}
	} else if fields.DueDate != nil {
		set["due_date"] = *fields.DueDate
	}

	result := c.collection(database.ColCards).FindOneAndUpdate(ctx, bson.M{
		"_id": id,
	}, update, options.FindOneAndUpdate().SetReturnDocument(options.After))

	info := database.CardInfo{}
	if err := result.Decode(&info); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", id, database.ErrCardNotFound)
		}
		return nil, fmt.Errorf("update card: %w", err)
	}

	return &info, nil
}

// CreateCommentInfo creates a new comment on the given card.
func (c *Client) CreateCommentInfo(
	ctx context.Context,
	cardID, author types.ID,
	content string,
) (*database.CommentInfo, error) {
	info := database.NewCommentInfo(cardID, author, content)
	info.ID = newID()

	if _, err := c.collection(database.ColComments).InsertOne(ctx, info); err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}

	return info, nil
}

// FindCommentInfoByID returns a comment by the given ID.
func (c *Client) FindCommentInfoByID(
	ctx context.Context,
	id types.ID,
) (*database.CommentInfo, error) {
	result := c.collection(database.ColComments).FindOne(ctx, bson.M{
		"_id": id,
	})

	info := database.CommentInfo{}
	if err := result.Decode(&info); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", id, database.ErrCommentNotFound)
		}
		return nil, fmt.Errorf("find comment by id: %w", err)
	}

	return &info, nil
}

// FindCommentInfosByCard returns the comments of the card ordered by
// creation time.
func (c *Client) FindCommentInfosByCard(
	ctx context.Context,
	cardID types.ID,
) ([]*database.CommentInfo, error) {
	return database.FindSorted(ctx, func(sorted bool) ([]*database.CommentInfo, error) {
		opts := options.Find()
		if sorted {
			opts.SetSort(bson.D{{Key: "created_at", Value: 1}}).
				SetHint(bson.D{{Key: "card_id", Value: 1}, {Key: "created_at", Value: 1}})
		}

		cursor, err := c.collection(database.ColComments).Find(ctx, bson.M{
			"card_id": cardID,
		}, opts)
		if err != nil {
			return nil, fmt.Errorf("fetch comments by card: %w", classifyFindError(err))
		}

		var infos []*database.CommentInfo
		if err := cursor.All(ctx, &infos); err != nil {
			return nil, fmt.Errorf("decode comments: %w", classifyFindError(err))
		}
		return infos, nil
	}, func(a, b *database.CommentInfo) bool {
		return a.CreatedAt.Before(b.CreatedAt)
	}, c.onFallback)
}

// FindCommentInfosByCards returns all comments on the given cards,
// unordered.
func (c *Client) FindCommentInfosByCards(
	ctx context.Context,
	cardIDs []types.ID,
) ([]*database.CommentInfo, error) {
	if len(cardIDs) == 0 {
		return nil, nil
	}

	cursor, err := c.collection(database.ColComments).Find(ctx, bson.M{
		"card_id": bson.M{"$in": cardIDs},
	})
	if err != nil {
		return nil, fmt.Errorf("fetch comments by cards: %w", err)
	}

	var infos []*database.CommentInfo
	if err := cursor.All(ctx, &infos); err != nil {
		return nil, fmt.Errorf("decode comments: %w", err)
	}

	return infos, nil
}

// DeleteCommentInfo deletes a single comment.
func (c *Client) DeleteCommentInfo(ctx context.Context, id types.ID) error {
	result, err := c.collection(database.ColComments).DeleteOne(ctx, bson.M{
		"_id": id,
	})
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", id, database.ErrCommentNotFound)
	}

	return nil
}

// PurgeDeletion removes all records named by the deletion inside a single
// transaction. Wide ID sets are applied in chunks, all of them inside the
// same transaction.
func (c *Client) PurgeDeletion(
	ctx context.Context,
	deletion database.Deletion,
) (map[string]int64, error) {
	session, err := c.client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	targets := []struct {
		col string
		ids []types.ID
	}{
		{database.ColComments, deletion.Comments},
		{database.ColCards, deletion.Cards},
		{database.ColLists, deletion.Lists},
		{database.ColBoards, deletion.Boards},
	}

	result, err := session.WithTransaction(ctx, func(ctx context.Context) (interface{}, error) {
		counts := map[string]int64{}
		for _, target := range targets {
			for _, chunk := range database.ChunkIDs(target.ids, c.config.ParsePurgeChunkSize()) {
				res, err := c.collection(target.col).DeleteMany(ctx, bson.M{
					"_id": bson.M{"$in": chunk},
				})
				if err != nil {
					return nil, fmt.Errorf("purge %s: %w", target.col, err)
				}
				counts[target.col] += res.DeletedCount
			}
		}
		return counts, nil
	})
	if err != nil {
		return nil, err
	}

	for _, boardID := range deletion.Boards {
		c.boardCache.Remove(boardID)
	}

	return result.(map[string]int64), nil
}

func (c *Client) collection(
	name string,
	opts ...options.Lister[options.CollectionOptions],
) *mongo.Collection {
	return c.client.
		Database(c.config.BoardwalkDatabase).
		Collection(name, opts...)
}

func newID() types.ID {
	return types.ID(bson.NewObjectID().Hex())
}

// classifyFindError maps server errors that mean "this ordered query has
// no index to run on" to database.ErrIndexNotAvailable. Everything else is
// returned as is.
func classifyFindError(err error) error {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		if cmdErr.Code == codeBadValue ||
			cmdErr.Code == codeIndexNotFound ||
			cmdErr.Code == codeSortExceededMemoryLim {
			return fmt.Errorf("%s: %w", cmdErr.Name, database.ErrIndexNotAvailable)
		}
	}

	return err
}
