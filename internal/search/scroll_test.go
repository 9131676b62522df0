// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package search_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirseerhq/sirseer-scout/internal/clock"
	"github.com/sirseerhq/sirseer-scout/internal/github"
	"github.com/sirseerhq/sirseer-scout/internal/search"
)

func TestScrollPosition_NearBottom(t *testing.T) {
	tests := []struct {
		name string
		pos  search.ScrollPosition
		want bool
	}{
		{"top of long list", search.ScrollPosition{Offset: 0, ViewportHeight: 600, ContentHeight: 4000}, false},
		{"just outside threshold", search.ScrollPosition{Offset: 3099, ViewportHeight: 600, ContentHeight: 4000}, false},
		{"at threshold", search.ScrollPosition{Offset: 3100, ViewportHeight: 600, ContentHeight: 4000}, true},
		{"at bottom", search.ScrollPosition{Offset: 3400, ViewportHeight: 600, ContentHeight: 4000}, true},
		{"content shorter than viewport", search.ScrollPosition{Offset: 0, ViewportHeight: 600, ContentHeight: 200}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pos.NearBottom(search.ScrollThreshold))
		})
	}
}

func TestThrottle_Allow(t *testing.T) {
	clk := clock.Fake(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	throttle := search.NewThrottle(200*time.Millisecond, clk)

	ok, wait := throttle.Allow()
	assert.True(t, ok)
	assert.Zero(t, wait)

	clk.Advance(50 * time.Millisecond)
	ok, wait = throttle.Allow()
	assert.False(t, ok)
	assert.Equal(t, 150*time.Millisecond, wait)

	clk.Advance(150 * time.Millisecond)
	ok, _ = throttle.Allow()
	assert.True(t, ok)
}

func TestThrottle_ZeroIntervalAdmitsAll(t *testing.T) {
	throttle := search.NewThrottle(0, nil)
	for i := 0; i < 5; i++ {
		ok, _ := throttle.Allow()
		assert.True(t, ok)
	}
}

func TestOnScroll(t *testing.T) {
	clk := clock.Fake(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	mock := github.NewMockClientWithOptions(github.WithPage(1, fullPage("a", 60)))
	ctrl := search.NewController(mock, search.WithClock(clk))

	bottom := search.ScrollPosition{Offset: 3400, ViewportHeight: 600, ContentHeight: 4000}

	fetch, _ := ctrl.OnScroll(bottom)
	assert.False(t, fetch, "no term searched yet")

	require.NoError(t, ctrl.Search(context.Background(), "a"))

	clk.Advance(search.DefaultThrottleInterval)
	fetch, _ = ctrl.OnScroll(bottom)
	assert.True(t, fetch)

	fetch, wait := ctrl.OnScroll(bottom)
	assert.False(t, fetch)
	assert.Equal(t, search.DefaultThrottleInterval, wait)

	clk.Advance(search.DefaultThrottleInterval)
	_, ok := ctrl.BeginNextPage()
	require.True(t, ok)
	fetch, _ = ctrl.OnScroll(bottom)
	assert.False(t, fetch, "fetch already in flight")

	clk.Advance(search.DefaultThrottleInterval)
	fetch, _ = ctrl.OnScroll(search.ScrollPosition{Offset: 0, ViewportHeight: 600, ContentHeight: 4000})
	assert.False(t, fetch, "far from bottom")
}
