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

package github

import (
	"context"
	"fmt"
	"sync"

	scouterrors "github.com/sirseerhq/sirseer-scout/internal/errors"
)

// MockClient is a mock implementation of the GitHub Client interface for testing.
// It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	// Pages maps a page number to the search response for that page.
	// Missing pages return an empty, non-nil item list.
	Pages map[int]*SearchPage

	// Profiles maps a login to the profile to return.
	Profiles map[string]*UserProfile

	// Error to return from every call
	Error error

	// ShouldFailNetwork simulates a transport failure
	ShouldFailNetwork bool

	// Gate, when set, holds each call until a value is received or the
	// channel is closed.
	Gate chan struct{}

	// Track calls for verification
	SearchCalls []SearchOptions
	UserCalls   []string
}

// NewMockClient creates a new mock client with a single page of test users.
func NewMockClient() *MockClient {
	users := GenerateUsers("user", 3)
	return &MockClient{
		Pages: map[int]*SearchPage{
			1: {TotalCount: len(users), Items: users},
		},
		Profiles: map[string]*UserProfile{},
	}
}

// SearchUsers implements the Client interface
func (m *MockClient) SearchUsers(ctx context.Context, opts SearchOptions) (*SearchPage, error) {
	m.mu.Lock()
	m.SearchCalls = append(m.SearchCalls, opts)
	gate := m.Gate
	m.mu.Unlock()

	if err := m.wait(ctx, gate); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.failure(); err != nil {
		return nil, err
	}

	page := opts.Page
	if page < 1 {
		page = 1
	}
	if result, ok := m.Pages[page]; ok {
		copied := *result
		return &copied, nil
	}
	return &SearchPage{Items: []UserSummary{}}, nil
}

// GetUser implements the Client interface
func (m *MockClient) GetUser(ctx context.Context, login string) (*UserProfile, error) {
	m.mu.Lock()
	m.UserCalls = append(m.UserCalls, login)
	gate := m.Gate
	m.mu.Unlock()

	if err := m.wait(ctx, gate); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.failure(); err != nil {
		return nil, err
	}

	if profile, ok := m.Profiles[login]; ok {
		copied := *profile
		return &copied, nil
	}
	return nil, &APIError{StatusCode: 404, Message: "Not Found"}
}

// SearchCallCount returns the number of SearchUsers calls so far.
func (m *MockClient) SearchCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SearchCalls)
}

func (m *MockClient) wait(ctx context.Context, gate chan struct{}) error {
	if gate == nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			return nil
		}
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *MockClient) failure() error {
	if m.ShouldFailNetwork {
		return fmt.Errorf("network timeout: %w", scouterrors.ErrNetworkFailure)
	}
	return m.Error
}

// GenerateUsers builds n users with logins prefix-1 .. prefix-n.
func GenerateUsers(prefix string, n int) []UserSummary {
	users := make([]UserSummary, 0, n)
	for i := 1; i <= n; i++ {
		login := fmt.Sprintf("%s-%d", prefix, i)
		users = append(users, UserSummary{
			Login:     login,
			ID:        int64(i),
			AvatarURL: "https://avatars.githubusercontent.com/u/" + fmt.Sprint(i),
			HTMLURL:   "https://github.com/" + login,
			Type:      "User",
			Score:     1,
		})
	}
	return users
}

// MockClientOption allows configuring the mock client
type MockClientOption func(*MockClient)

// WithPage sets the response for one page number
func WithPage(number int, page *SearchPage) MockClientOption {
	return func(m *MockClient) {
		m.Pages[number] = page
	}
}

// WithProfile registers a profile for GetUser
func WithProfile(profile *UserProfile) MockClientOption {
	return func(m *MockClient) {
		m.Profiles[profile.Login] = profile
	}
}

// WithError makes the client return a specific error
func WithError(err error) MockClientOption {
	return func(m *MockClient) {
		m.Error = err
	}
}

// WithNetworkFailure makes the client simulate a transport failure
func WithNetworkFailure() MockClientOption {
	return func(m *MockClient) {
		m.ShouldFailNetwork = true
	}
}

// NewMockClientWithOptions creates a mock client with options. Pages are
// cleared first so only the pages given by options exist.
func NewMockClientWithOptions(opts ...MockClientOption) *MockClient {
	mock := NewMockClient()
	mock.Pages = map[int]*SearchPage{}
	for _, opt := range opts {
		opt(mock)
	}
	return mock
}
