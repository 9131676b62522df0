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

package search

import (
	"sync"
	"time"

	"github.com/sirseerhq/sirseer-scout/internal/clock"
)

// ScrollThreshold is the distance from the bottom, in pixels, at which
// the next page is requested.
const ScrollThreshold = 300

// DefaultThrottleInterval is the minimum spacing between scroll
// evaluations.
const DefaultThrottleInterval = 200 * time.Millisecond

// ScrollPosition describes the visible window over the result list.
// All values share one unit.
type ScrollPosition struct {
	// Offset is the distance scrolled from the top.
	Offset int

	// ViewportHeight is the height of the visible window.
	ViewportHeight int

	// ContentHeight is the total height of the scrollable content.
	ContentHeight int
}

// NearBottom reports whether the window is within threshold of the end.
// Content shorter than the viewport is always near the bottom.
func (p ScrollPosition) NearBottom(threshold int) bool {
	return p.Offset >= p.ContentHeight-p.ViewportHeight-threshold
}

// Throttle admits at most one event per interval. The first event is
// admitted immediately; events inside the window are rejected with the
// time left until the window closes.
type Throttle struct {
	mu       sync.Mutex
	interval time.Duration
	clock    clock.Clock
	last     time.Time
	primed   bool
}

// NewThrottle returns a throttle with the given interval. A zero or
// negative interval admits every event.
func NewThrottle(interval time.Duration, clk clock.Clock) *Throttle {
	if clk == nil {
		clk = clock.Real()
	}
	return &Throttle{interval: interval, clock: clk}
}

// Allow reports whether an event may proceed now. When it may not, the
// returned duration is the wait until the next event would be admitted.
func (t *Throttle) Allow() (bool, time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.interval <= 0 {
		return true, 0
	}

	now := t.clock.Now()
	if t.primed {
		if elapsed := now.Sub(t.last); elapsed < t.interval {
			return false, t.interval - elapsed
		}
	}

	t.last = now
	t.primed = true
	return true, 0
}

// Interval returns the configured spacing.
func (t *Throttle) Interval() time.Duration {
	return t.interval
}
