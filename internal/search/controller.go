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
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/sirseerhq/sirseer-scout/internal/clock"
	scouterrors "github.com/sirseerhq/sirseer-scout/internal/errors"
	"github.com/sirseerhq/sirseer-scout/internal/github"
)

// InitialPage is the page the first FetchNextPage after a search requests.
const InitialPage = 2

// State is the pagination state of the current search.
type State struct {
	// Term is the last submitted search term.
	Term string

	// Page is the page the next FetchNextPage will request.
	Page int

	// Results is the total_count reported by the last search.
	Results int

	// EndOfResults is set once a page shorter than github.PageSize arrives.
	EndOfResults bool

	// Fetching is true while a pagination request is outstanding.
	Fetching bool
}

// Snapshot is a copy of everything a renderer needs.
type Snapshot struct {
	State     State
	Users     []github.UserSummary
	Profile   github.UserProfile
	ModalOpen bool
}

// SearchRequest identifies one submitted search.
type SearchRequest struct {
	Term       string
	generation uint64
}

// Options returns the client options for the first page.
func (r SearchRequest) Options() github.SearchOptions {
	return github.SearchOptions{Term: r.Term, Page: 1, PerPage: github.PageSize}
}

// PageRequest identifies one pagination fetch.
type PageRequest struct {
	Term       string
	Page       int
	generation uint64
}

// Options returns the client options for the requested page.
func (r PageRequest) Options() github.SearchOptions {
	return github.SearchOptions{Term: r.Term, Page: r.Page, PerPage: github.PageSize}
}

// ProfileRequest identifies one profile lookup. It belongs to the search
// that was current when it started.
type ProfileRequest struct {
	Login      string
	generation uint64
}

// Controller owns the search state, the accumulated result list, the
// selected profile and the modal visibility. All methods are safe for
// concurrent use.
//
// Searches and page fetches come in two forms. Search and FetchNextPage
// block until the response is applied. The Begin/Complete pairs let an
// event loop mark the request synchronously and apply the response
// later from a message.
type Controller struct {
	client   github.Client
	throttle *Throttle
	logger   *slog.Logger

	mu         sync.Mutex
	state      State
	users      []github.UserSummary
	profile    github.UserProfile
	modalOpen  bool
	generation uint64
}

// Option configures a Controller.
type Option func(*controllerConfig)

type controllerConfig struct {
	interval time.Duration
	clock    clock.Clock
	logger   *slog.Logger
}

// WithThrottleInterval sets the scroll throttle interval.
func WithThrottleInterval(interval time.Duration) Option {
	return func(c *controllerConfig) { c.interval = interval }
}

// WithClock sets the clock driving the scroll throttle.
func WithClock(clk clock.Clock) Option {
	return func(c *controllerConfig) { c.clock = clk }
}

// WithLogger sets the controller logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *controllerConfig) { c.logger = logger }
}

// NewController creates a controller backed by client.
func NewController(client github.Client, opts ...Option) *Controller {
	cfg := controllerConfig{
		interval: DefaultThrottleInterval,
		clock:    clock.Real(),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Controller{
		client:   client,
		throttle: NewThrottle(cfg.interval, cfg.clock),
		logger:   cfg.logger,
		state:    State{Page: InitialPage},
	}
}

// Client returns the GitHub client the controller fetches through.
func (c *Controller) Client() github.Client {
	return c.client
}

// State returns a copy of the pagination state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot returns a copy of the controller's observable data.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	users := make([]github.UserSummary, len(c.users))
	copy(users, c.users)

	return Snapshot{
		State:     c.state,
		Users:     users,
		Profile:   c.profile,
		ModalOpen: c.modalOpen,
	}
}

// Search runs a new search for term and replaces the result list with
// the first page.
func (c *Controller) Search(ctx context.Context, term string) error {
	req, err := c.BeginSearch(term)
	if err != nil {
		return err
	}
	page, err := c.client.SearchUsers(ctx, req.Options())
	return c.CompleteSearch(req, page, err)
}

// BeginSearch records term as the current search. The end-of-results
// flag and page counter are reset and any outstanding page fetch is
// orphaned.
func (c *Controller) BeginSearch(term string) (SearchRequest, error) {
	if strings.TrimSpace(term) == "" {
		return SearchRequest{}, scouterrors.ErrEmptyTerm
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.state.Term = term
	c.state.EndOfResults = false
	c.state.Page = InitialPage
	c.state.Fetching = false

	c.logger.Debug("search started", "term", term)
	return SearchRequest{Term: term, generation: c.generation}, nil
}

// CompleteSearch applies the response to req. A response for a search
// that has since been superseded is dropped. A payload without an items
// array leaves the result list untouched.
func (c *Controller) CompleteSearch(req SearchRequest, page *github.SearchPage, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if req.generation != c.generation {
		return nil
	}
	if err != nil {
		c.logger.Debug("search failed", "term", req.Term, "error", err)
		return err
	}
	if page == nil || page.Items == nil {
		return nil
	}

	c.users = append([]github.UserSummary(nil), page.Items...)
	c.state.Results = page.TotalCount

	c.logger.Debug("search completed", "term", req.Term, "total", page.TotalCount, "items", len(page.Items))
	return nil
}

// FetchNextPage requests the next page of the current search and
// appends it. It reports false without doing anything when a fetch is
// already in flight, the results are exhausted, or nothing was searched.
func (c *Controller) FetchNextPage(ctx context.Context) (bool, error) {
	req, ok := c.BeginNextPage()
	if !ok {
		return false, nil
	}
	page, err := c.client.SearchUsers(ctx, req.Options())
	return true, c.CompleteNextPage(req, page, err)
}

// BeginNextPage atomically checks the fetch guards and marks a fetch as
// in flight.
func (c *Controller) BeginNextPage() (PageRequest, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Fetching || c.state.EndOfResults || c.state.Term == "" {
		return PageRequest{}, false
	}

	c.state.Fetching = true
	c.logger.Debug("fetching page", "term", c.state.Term, "page", c.state.Page)
	return PageRequest{Term: c.state.Term, Page: c.state.Page, generation: c.generation}, true
}

// CompleteNextPage applies the response to req and clears the in-flight
// flag. A response for a superseded search is dropped.
func (c *Controller) CompleteNextPage(req PageRequest, page *github.SearchPage, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if req.generation != c.generation {
		return nil
	}

	c.state.Fetching = false
	if err != nil {
		c.logger.Debug("page fetch failed", "page", req.Page, "error", err)
		return fmt.Errorf("fetching page %d: %w", req.Page, err)
	}

	var items []github.UserSummary
	if page != nil {
		items = page.Items
	}
	c.users = append(c.users, items...)

	if len(items) < github.PageSize {
		c.state.EndOfResults = true
	} else {
		c.state.Page++
	}

	c.logger.Debug("page fetched", "page", req.Page, "items", len(items), "end", c.state.EndOfResults)
	return nil
}

// GetMoreInfo fetches the profile for login, stores it and opens the
// modal. On failure the modal stays closed.
func (c *Controller) GetMoreInfo(ctx context.Context, login string) error {
	req := c.BeginMoreInfo(login)
	profile, err := c.client.GetUser(ctx, req.Login)
	return c.CompleteMoreInfo(req, profile, err)
}

// BeginMoreInfo ties a profile lookup for login to the current search.
func (c *Controller) BeginMoreInfo(login string) ProfileRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ProfileRequest{Login: login, generation: c.generation}
}

// CompleteMoreInfo applies a profile response. A response that arrives
// after a new search started is dropped and the modal stays closed.
func (c *Controller) CompleteMoreInfo(req ProfileRequest, profile *github.UserProfile, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if req.generation != c.generation {
		c.logger.Debug("stale profile dropped", "login", req.Login)
		return nil
	}
	if err != nil {
		return err
	}
	if profile == nil {
		return fmt.Errorf("empty profile response: %w", scouterrors.ErrMalformedResponse)
	}

	c.profile = *profile
	c.modalOpen = true
	return nil
}

// CloseModal hides the modal and clears the selected profile.
func (c *Controller) CloseModal() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.modalOpen = false
	c.profile = github.UserProfile{}
}

// OnScroll evaluates a scroll event. It reports true when the window is
// within ScrollThreshold of the bottom and a page fetch may start. A
// throttled event reports false and the wait before the next event
// would be evaluated.
func (c *Controller) OnScroll(pos ScrollPosition) (bool, time.Duration) {
	allowed, wait := c.throttle.Allow()
	if !allowed {
		return false, wait
	}

	if !pos.NearBottom(ScrollThreshold) {
		return false, 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.state.Fetching && !c.state.EndOfResults && c.state.Term != "", 0
}
