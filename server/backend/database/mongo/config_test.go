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

package mongo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/boardwalk-team/boardwalk/server/backend/database/mongo"
)

func TestConfig(t *testing.T) {
	t.Run("validate test", func(t *testing.T) {
		conf := &mongo.Config{
			ConnectionTimeout: "5s",
			ConnectionURI:     "mongodb://localhost:27017",
			BoardwalkDatabase: "boardwalk-test",
			PingTimeout:       "5s",
		}
		assert.NoError(t, conf.Validate())

		conf.ConnectionTimeout = "soon"
		assert.Error(t, conf.Validate())

		conf.ConnectionTimeout = "5s"
		conf.PingTimeout = "later"
		assert.Error(t, conf.Validate())
	})

	t.Run("purge chunk size default test", func(t *testing.T) {
		conf := &mongo.Config{}
		assert.Equal(t, 500, conf.ParsePurgeChunkSize())

		conf.PurgeChunkSize = 100
		assert.Equal(t, 100, conf.ParsePurgeChunkSize())
	})
}
