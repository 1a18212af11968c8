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

package boards_test

import (
	"context"
	"errors"

	"github.com/boardwalk-team/boardwalk/server/backend/database"
)

var errPurgeInterrupted = errors.New("purge interrupted")

// failingPurgeDB fails every purge before applying it, standing in for a
// store whose batch commit is interrupted.
type failingPurgeDB struct {
	database.Database
}

func (d *failingPurgeDB) PurgeDeletion(
	context.Context,
	database.Deletion,
) (map[string]int64, error) {
	return nil, errPurgeInterrupted
}
