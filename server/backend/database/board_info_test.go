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

package database_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/boardwalk-team/boardwalk/api/types"
	"github.com/boardwalk-team/boardwalk/server/backend/database"
)

func TestBoardInfo(t *testing.T) {
	owner := types.ID("user-owner")

	t.Run("new board seeds owner member test", func(t *testing.T) {
		info := database.NewBoardInfo("roadmap", owner)
		assert.Equal(t, owner, info.Owner)
		assert.Len(t, info.Members, 1)
		assert.Equal(t, database.Owner, info.Members[0].Role)
		// The seeded entry has no status, the legacy shape of accepted.
		assert.Equal(t, database.InviteStatus(""), info.Members[0].Status)
		assert.True(t, info.Members[0].Status.IsAccepted())
	})

	t.Run("normalize defaults joined_at test", func(t *testing.T) {
		info := database.NewBoardInfo("roadmap", owner)
		info.Members[0].JoinedAt = time.Time{}
		assert.NoError(t, info.Normalize())
		assert.False(t, info.Members[0].JoinedAt.IsZero())
	})

	t.Run("normalize rejects missing member set test", func(t *testing.T) {
		info := database.NewBoardInfo("roadmap", owner)
		info.Members = nil
		assert.ErrorIs(t, info.Normalize(), database.ErrMalformedMembers)
	})

	t.Run("deep copy isolates member set test", func(t *testing.T) {
		info := database.NewBoardInfo("roadmap", owner)
		copied := info.DeepCopy()
		copied.Members[0].Role = database.Viewer
		assert.Equal(t, database.Owner, info.Members[0].Role)
	})

	t.Run("role validation test", func(t *testing.T) {
		_, err := database.NewMemberRole("editor")
		assert.NoError(t, err)
		_, err = database.NewMemberRole("admin")
		assert.ErrorIs(t, err, database.ErrInvalidMemberRole)
	})

	t.Run("status validation test", func(t *testing.T) {
		assert.NoError(t, database.InviteStatus("").Validate())
		assert.NoError(t, database.StatusRejected.Validate())
		assert.ErrorIs(t, database.InviteStatus("expired").Validate(), database.ErrInvalidInviteStatus)
	})
}

func TestChunkIDs(t *testing.T) {
	ids := []types.ID{"a", "b", "c", "d", "e"}

	chunks := database.ChunkIDs(ids, 2)
	assert.Len(t, chunks, 3)
	assert.Equal(t, []types.ID{"a", "b"}, chunks[0])
	assert.Equal(t, []types.ID{"e"}, chunks[2])

	assert.Nil(t, database.ChunkIDs(nil, 2))
	assert.Len(t, database.ChunkIDs(ids, 0), 1)
}
