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

package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/boardwalk-team/boardwalk/pkg/errors"
)

func TestStatusError(t *testing.T) {
	t.Run("status classification test", func(t *testing.T) {
		err := errors.NotFound("board not found")
		assert.Equal(t, errors.ErrCodeNotFound, errors.StatusOf(err))
		assert.Equal(t, "board not found", err.Error())
	})

	t.Run("wrapped sentinel keeps identity test", func(t *testing.T) {
		sentinel := errors.AlreadyExists("user already a member").WithCode("ErrAlreadyMember")
		wrapped := fmt.Errorf("invite u1 to b1: %w", sentinel)

		assert.True(t, errors.Is(wrapped, sentinel))
		assert.Equal(t, errors.ErrCodeAlreadyExists, errors.StatusOf(wrapped))
		assert.Equal(t, "ErrAlreadyMember", errors.CodeOf(wrapped))
	})

	t.Run("plain error has no status test", func(t *testing.T) {
		assert.Equal(t, errors.StatusCode(0), errors.StatusOf(fmt.Errorf("boom")))
		assert.Equal(t, "", errors.CodeOf(nil))
	})
}
