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
	"sort"

	"github.com/boardwalk-team/boardwalk/pkg/errors"
	"github.com/boardwalk-team/boardwalk/server/logging"
)

// FindSorted runs the given query with a store-side sort and falls back to
// an unsorted query with a client-side stable sort when the store reports
// that the required sort index is not available. Implementations classify
// that condition as ErrIndexNotAvailable; any other failure propagates
// unchanged. Both paths return identical contents in identical order, the
// fallback just fetches the unsorted superset. onFallback, if non-nil, is
// invoked once per engaged fallback so callers can count occurrences.
func FindSorted[T any](
	ctx context.Context,
	run func(sorted bool) ([]T, error),
	less func(a, b T) bool,
	onFallback func(),
) ([]T, error) {
	results, err := run(true)
	if err == nil {
		return results, nil
	}
	if !errors.Is(err, ErrIndexNotAvailable) {
		return nil, err
	}

	if onFallback != nil {
		onFallback()
	}
	logging.From(ctx).Warnf("sorted query unavailable, sorting client-side: %v", err)

	results, err = run(false)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return less(results[i], results[j])
	})
	return results, nil
}
