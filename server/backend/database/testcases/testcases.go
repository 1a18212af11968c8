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

// Package testcases contains testcases for database. It is used by database
// implementations to test their own implementations with the same testcases.
package testcases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/boardwalk-team/boardwalk/api/types"
	"github.com/boardwalk-team/boardwalk/server/backend/database"
)

const (
	dummyUserID = types.ID("provider-uid-000")
	otherUserID = types.ID("provider-uid-001")
	unknownID   = types.ID("000000000000000000000000")
)

// RunEnsureUserInfoTest runs the EnsureUserInfo test for the given db.
func RunEnsureUserInfoTest(t *testing.T, db database.Database) {
	t.Run("ensure user info test", func(t *testing.T) {
		ctx := context.Background()

		_, err := db.FindUserInfoByID(ctx, dummyUserID)
		assert.ErrorIs(t, err, database.ErrUserNotFound)

		info, err := db.EnsureUserInfo(ctx, dummyUserID, "alice@boardwalk.dev", "Alice")
		assert.NoError(t, err)
		assert.Equal(t, dummyUserID, info.ID)
		assert.Equal(t, "alice@boardwalk.dev", info.Email)

		// Ensuring again must not overwrite the mirrored profile.
		again, err := db.EnsureUserInfo(ctx, dummyUserID, "other@boardwalk.dev", "Other")
		assert.NoError(t, err)
		assert.Equal(t, "alice@boardwalk.dev", again.Email)
		assert.Equal(t, "Alice", again.Name)

		byEmail, err := db.FindUserInfoByEmail(ctx, "alice@boardwalk.dev")
		assert.NoError(t, err)
		assert.Equal(t, dummyUserID, byEmail.ID)

		_, err = db.FindUserInfoByEmail(ctx, "nobody@boardwalk.dev")
		assert.ErrorIs(t, err, database.ErrUserNotFound)
	})
}

// RunCreateBoardInfoTest runs the CreateBoardInfo test for the given db.
func RunCreateBoardInfoTest(t *testing.T, db database.Database) {
	t.Run("create board info test", func(t *testing.T) {
		ctx := context.Background()

		info, err := db.CreateBoardInfo(ctx, t.Name(), dummyUserID)
		assert.NoError(t, err)
		assert.NotEmpty(t, info.ID)
		assert.Equal(t, dummyUserID, info.Owner)
		assert.Len(t, info.Members, 1)
		assert.Equal(t, database.Owner, info.Members[0].Role)
		assert.True(t, info.Members[0].Status.IsAccepted())

		found, err := db.FindBoardInfoByID(ctx, info.ID)
		assert.NoError(t, err)
		assert.Equal(t, info.Title, found.Title)

		_, err = db.FindBoardInfoByID(ctx, unknownID)
		assert.ErrorIs(t, err, database.ErrBoardNotFound)
	})
}

// RunUpdateBoardInfoTest runs the UpdateBoardInfo test for the given db.
func RunUpdateBoardInfoTest(t *testing.T, db database.Database) {
	t.Run("update board info test", func(t *testing.T) {
		ctx := context.Background()

		info, err := db.CreateBoardInfo(ctx, t.Name(), dummyUserID)
		assert.NoError(t, err)

		title := "renamed"
		updated, err := db.UpdateBoardInfo(ctx, info.ID, &types.UpdatableBoardFields{
			Title: &title,
		})
		assert.NoError(t, err)
		assert.Equal(t, "renamed", updated.Title)
		assert.False(t, updated.UpdatedAt.Before(info.UpdatedAt))

		_, err = db.UpdateBoardInfo(ctx, unknownID, &types.UpdatableBoardFields{
			Title: &title,
		})
		assert.ErrorIs(t, err, database.ErrBoardNotFound)
	})
}

// RunUpdateBoardMembersTest runs the UpdateBoardMembers test for the
// given db.
func RunUpdateBoardMembersTest(t *testing.T, db database.Database) {
	t.Run("update board members test", func(t *testing.T) {
		ctx := context.Background()

		info, err := db.CreateBoardInfo(ctx, t.Name(), dummyUserID)
		assert.NoError(t, err)

		invitedAt := time.Now()
		members := append(info.Members, database.MemberInfo{
			UserID:    otherUserID,
			Role:      database.Editor,
			JoinedAt:  invitedAt,
			Status:    database.StatusPending,
			InvitedBy: dummyUserID,
			InvitedAt: &invitedAt,
		})

		updated, err := db.UpdateBoardMembers(ctx, info.ID, members)
		assert.NoError(t, err)
		assert.Len(t, updated.Members, 2)
		assert.True(t, updated.HasMember(otherUserID))
		assert.False(t, updated.UpdatedAt.Before(info.UpdatedAt))

		member := updated.FindMember(otherUserID)
		assert.Equal(t, database.StatusPending, member.Status)
		assert.False(t, member.Status.IsAccepted())
	})
}

// RunListBoardInfosByMemberTest runs the ListBoardInfosByMember test for
// the given db.
func RunListBoardInfosByMemberTest(t *testing.T, db database.Database) {
	t.Run("list board infos by member test", func(t *testing.T) {
		ctx := context.Background()

		owned, err := db.CreateBoardInfo(ctx, t.Name()+"-owned", dummyUserID)
		assert.NoError(t, err)

		shared, err := db.CreateBoardInfo(ctx, t.Name()+"-shared", otherUserID)
		assert.NoError(t, err)
		_, err = db.UpdateBoardMembers(ctx, shared.ID, append(shared.Members, database.MemberInfo{
			UserID:   dummyUserID,
			Role:     database.Viewer,
			JoinedAt: time.Now(),
			Status:   database.StatusPending,
		}))
		assert.NoError(t, err)

		_, err = db.CreateBoardInfo(ctx, t.Name()+"-foreign", otherUserID)
		assert.NoError(t, err)

		infos, err := db.ListBoardInfosByMember(ctx, dummyUserID)
		assert.NoError(t, err)

		ids := make(map[types.ID]bool)
		for _, info := range infos {
			ids[info.ID] = true
		}
		assert.True(t, ids[owned.ID])
		assert.True(t, ids[shared.ID], "pending membership must still surface the board")
	})
}

// RunListInfoTest runs the list creation and ordered fetch tests for the
// given db.
func RunListInfoTest(t *testing.T, db database.Database) {
	t.Run("list info test", func(t *testing.T) {
		ctx := context.Background()

		board, err := db.CreateBoardInfo(ctx, t.Name(), dummyUserID)
		assert.NoError(t, err)

		// Insert out of position order to prove the fetch sorts.
		for _, order := range []int{2, 0, 1} {
			_, err := db.CreateListInfo(ctx, board.ID, fmt.Sprintf("list-%d", order), order)
			assert.NoError(t, err)
		}

		infos, err := db.FindListInfosByBoard(ctx, board.ID)
		assert.NoError(t, err)
		assert.Len(t, infos, 3)
		for idx, info := range infos {
			assert.Equal(t, idx, info.Order)
			assert.Equal(t, board.ID, info.BoardID)
		}

		title := "renamed"
		order := 7
		updated, err := db.UpdateListInfo(ctx, infos[0].ID, &types.UpdatableListFields{
			Title: &title,
			Order: &order,
		})
		assert.NoError(t, err)
		assert.Equal(t, "renamed", updated.Title)
		assert.Equal(t, 7, updated.Order)

		_, err = db.FindListInfoByID(ctx, unknownID)
		assert.ErrorIs(t, err, database.ErrListNotFound)
	})
}

// RunCardInfoTest runs the card creation, ordered fetch and update tests
// for the given db.
func RunCardInfoTest(t *testing.T, db database.Database) {
	t.Run("card info test", func(t *testing.T) {
		ctx := context.Background()

		board, err := db.CreateBoardInfo(ctx, t.Name(), dummyUserID)
		assert.NoError(t, err)
		src, err := db.CreateListInfo(ctx, board.ID, "src", 0)
		assert.NoError(t, err)
		dst, err := db.CreateListInfo(ctx, board.ID, "dst", 1)
		assert.NoError(t, err)

		for _, order := range []int{1, 0} {
			_, err := db.CreateCardInfo(ctx, src.ID, board.ID, fmt.Sprintf("card-%d", order), order)
			assert.NoError(t, err)
		}

		cards, err := db.FindCardInfosByList(ctx, src.ID)
		assert.NoError(t, err)
		assert.Len(t, cards, 2)
		assert.Equal(t, 0, cards[0].Order)
		assert.Equal(t, 1, cards[1].Order)

		due := time.Now().Add(24 * time.Hour)
		desc := "details"
		assignees := []types.ID{dummyUserID, otherUserID}
		updated, err := db.UpdateCardInfo(ctx, cards[0].ID, &types.UpdatableCardFields{
			Description: &desc,
			Assignees:   &assignees,
			DueDate:     &due,
		})
		assert.NoError(t, err)
		assert.Equal(t, "details", updated.Description)
		assert.Equal(t, assignees, updated.Assignees)
		assert.NotNil(t, updated.DueDate)

		cleared, err := db.UpdateCardInfo(ctx, cards[0].ID, &types.UpdatableCardFields{
			ClearDueDate: true,
		})
		assert.NoError(t, err)
		assert.Nil(t, cleared.DueDate)

		moved, err := db.UpdateCardInfo(ctx, cards[0].ID, &types.UpdatableCardFields{
			ListID: &dst.ID,
		})
		assert.NoError(t, err)
		assert.Equal(t, dst.ID, moved.ListID)
		assert.Equal(t, board.ID, moved.BoardID)

		badList := unknownID
		_, err = db.UpdateCardInfo(ctx, cards[0].ID, &types.UpdatableCardFields{
			ListID: &badList,
		})
		assert.ErrorIs(t, err, database.ErrListNotFound)

		byLists, err := db.FindCardInfosByLists(ctx, []types.ID{src.ID, dst.ID})
		assert.NoError(t, err)
		assert.Len(t, byLists, 2)
	})
}

// RunCommentInfoTest runs the comment tests for the given db.
func RunCommentInfoTest(t *testing.T, db database.Database) {
	t.Run("comment info test", func(t *testing.T) {
		ctx := context.Background()

		board, err := db.CreateBoardInfo(ctx, t.Name(), dummyUserID)
		assert.NoError(t, err)
		list, err := db.CreateListInfo(ctx, board.ID, "list", 0)
		assert.NoError(t, err)
		card, err := db.CreateCardInfo(ctx, list.ID, board.ID, "card", 0)
		assert.NoError(t, err)

		var created []*database.CommentInfo
		for idx := 0; idx < 3; idx++ {
			info, err := db.CreateCommentInfo(ctx, card.ID, dummyUserID, fmt.Sprintf("c-%d", idx))
			assert.NoError(t, err)
			created = append(created, info)
			time.Sleep(time.Millisecond)
		}

		infos, err := db.FindCommentInfosByCard(ctx, card.ID)
		assert.NoError(t, err)
		assert.Len(t, infos, 3)
		for idx := range infos {
			assert.Equal(t, created[idx].ID, infos[idx].ID)
		}

		assert.NoError(t, db.DeleteCommentInfo(ctx, created[1].ID))
		assert.ErrorIs(t, db.DeleteCommentInfo(ctx, created[1].ID), database.ErrCommentNotFound)

		infos, err = db.FindCommentInfosByCard(ctx, card.ID)
		assert.NoError(t, err)
		assert.Len(t, infos, 2)
	})
}

// RunPurgeDeletionTest runs the PurgeDeletion test for the given db.
func RunPurgeDeletionTest(t *testing.T, db database.Database) {
	t.Run("purge deletion test", func(t *testing.T) {
		ctx := context.Background()

		board, err := db.CreateBoardInfo(ctx, t.Name(), dummyUserID)
		assert.NoError(t, err)
		list, err := db.CreateListInfo(ctx, board.ID, "list", 0)
		assert.NoError(t, err)
		card, err := db.CreateCardInfo(ctx, list.ID, board.ID, "card", 0)
		assert.NoError(t, err)
		comment, err := db.CreateCommentInfo(ctx, card.ID, dummyUserID, "bye")
		assert.NoError(t, err)

		counts, err := db.PurgeDeletion(ctx, database.Deletion{
			Boards:   []types.ID{board.ID},
			Lists:    []types.ID{list.ID},
			Cards:    []types.ID{card.ID},
			Comments: []types.ID{comment.ID},
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(1), counts[database.ColBoards])
		assert.Equal(t, int64(1), counts[database.ColLists])
		assert.Equal(t, int64(1), counts[database.ColCards])
		assert.Equal(t, int64(1), counts[database.ColComments])

		_, err = db.FindBoardInfoByID(ctx, board.ID)
		assert.ErrorIs(t, err, database.ErrBoardNotFound)
		_, err = db.FindCardInfoByID(ctx, card.ID)
		assert.ErrorIs(t, err, database.ErrCardNotFound)

		// Purging records that are already gone is not an error.
		counts, err = db.PurgeDeletion(ctx, database.Deletion{
			Cards: []types.ID{card.ID},
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(0), counts[database.ColCards])
	})
}
