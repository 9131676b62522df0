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

// Package testutil provides common test helpers for sirseer-scout
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// MockServer provides common mock server configurations for testing
type MockServer struct {
	*httptest.Server
	requestCount atomic.Int32

	mu      sync.Mutex
	queries []string
	pages   []int
}

// RequestCount returns how many requests the server has answered.
func (s *MockServer) RequestCount() int {
	return int(s.requestCount.Load())
}

// Queries returns the q parameter of every search request, in order.
func (s *MockServer) Queries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries...)
}

// Pages returns the page parameter of every search request, in order.
func (s *MockServer) Pages() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.pages...)
}

// NewMockServer creates a basic mock server around handler
func NewMockServer(t *testing.T, handler http.HandlerFunc) *MockServer {
	t.Helper()
	s := &MockServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requestCount.Add(1)
		handler(w, r)
	}))
	t.Cleanup(s.Close)
	return s
}

// NewGitHubServer creates a mock of the two REST endpoints the client
// uses. /search/users pages through users by the page and per_page
// parameters, reporting len(users) as total_count. /users/<login>
// returns the matching profile, or a 404 error payload.
func NewGitHubServer(t *testing.T, users []*UserBuilder) *MockServer {
	t.Helper()

	byLogin := make(map[string]*UserBuilder, len(users))
	for _, u := range users {
		byLogin[u.Login()] = u
	}

	var s *MockServer
	s = NewMockServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/search/users":
			page, _ := strconv.Atoi(r.URL.Query().Get("page"))
			perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
			if page < 1 {
				page = 1
			}
			if perPage < 1 {
				perPage = 30
			}

			s.mu.Lock()
			s.queries = append(s.queries, r.URL.Query().Get("q"))
			s.pages = append(s.pages, page)
			s.mu.Unlock()

			start := (page - 1) * perPage
			if start > len(users) {
				start = len(users)
			}
			end := start + perPage
			if end > len(users) {
				end = len(users)
			}
			WriteJSONResponse(w, http.StatusOK, SearchResponse(len(users), users[start:end]))

		case strings.HasPrefix(r.URL.Path, "/users/"):
			login := strings.TrimPrefix(r.URL.Path, "/users/")
			if u, ok := byLogin[login]; ok {
				WriteJSONResponse(w, http.StatusOK, u.BuildProfile())
				return
			}
			WriteAPIError(w, http.StatusNotFound, "Not Found")

		default:
			WriteAPIError(w, http.StatusNotFound, "Not Found")
		}
	})
	return s
}

// NewErrorServer creates a mock server that always answers with a GitHub
// error payload carrying message
func NewErrorServer(t *testing.T, statusCode int, message string) *MockServer {
	t.Helper()
	return NewMockServer(t, func(w http.ResponseWriter, r *http.Request) {
		WriteAPIError(w, statusCode, message)
	})
}

// NewMalformedServer creates a mock server whose bodies are not valid JSON
func NewMalformedServer(t *testing.T) *MockServer {
	t.Helper()
	return NewMockServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total_count": 3, "items": [`))
	})
}

// NewSlowServer creates a mock server that waits delay before answering
// with an empty search result, or until the client goes away
func NewSlowServer(t *testing.T, delay time.Duration) *MockServer {
	t.Helper()
	return NewMockServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
		WriteJSONResponse(w, http.StatusOK, SearchResponse(0, nil))
	})
}

// WriteJSONResponse encodes body as the JSON response
func WriteJSONResponse(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteAPIError writes a GitHub style error payload
func WriteAPIError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSONResponse(w, statusCode, map[string]interface{}{
		"message":           message,
		"documentation_url": "https://docs.github.com/rest",
	})
}

// AssertRESTRequest validates the headers every API request must carry
func AssertRESTRequest(t *testing.T, r *http.Request) {
	t.Helper()
	if r.Method != http.MethodGet {
		t.Errorf("Expected GET method, got: %s", r.Method)
	}
	if accept := r.Header.Get("Accept"); accept != "application/vnd.github+json" {
		t.Errorf("Expected Accept: application/vnd.github+json, got: %s", accept)
	}
	if ua := r.Header.Get("User-Agent"); !strings.HasPrefix(ua, "sirseer-scout/") {
		t.Errorf("Expected sirseer-scout User-Agent, got: %s", ua)
	}
	if auth := r.Header.Get("Authorization"); auth != "" {
		t.Errorf("Expected no Authorization header, got: %s", auth)
	}
}
