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
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/boardwalk-team/boardwalk/server/backend/database"
)

func TestClassifyFindError(t *testing.T) {
	t.Run("index related codes map to index not available test", func(t *testing.T) {
		cases := []struct {
			code int32
			name string
		}{
			{code: codeBadValue, name: "BadValue"},
			{code: codeIndexNotFound, name: "IndexNotFound"},
			{code: codeSortExceededMemoryLim, name: "QueryExceededMemoryLimitNoDiskUseAllowed"},
		}
		for _, c := range cases {
			err := classifyFindError(mongo.CommandError{Code: c.code, Name: c.name})
			assert.ErrorIs(t, err, database.ErrIndexNotAvailable)
		}
	})

	t.Run("other failures propagate unchanged test", func(t *testing.T) {
		cmdErr := mongo.CommandError{Code: 13, Name: "Unauthorized"}
		assert.Equal(t, error(cmdErr), classifyFindError(cmdErr))

		plain := fmt.Errorf("connection reset")
		assert.Equal(t, plain, classifyFindError(plain))
	})

	t.Run("wrapped command errors are classified test", func(t *testing.T) {
		wrapped := fmt.Errorf("run find: %w", mongo.CommandError{Code: codeBadValue, Name: "BadValue"})
		assert.ErrorIs(t, classifyFindError(wrapped), database.ErrIndexNotAvailable)
	})
}
