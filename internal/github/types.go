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

// Package github provides types and interfaces for interacting with the GitHub API.
package github

import "time"

// PageSize is the number of users requested per search page. A page
// shorter than this is the last one.
const PageSize = 20

// UserSummary is one item of a user search response. Login and AvatarURL
// are all a result card needs; the remaining fields pass through for
// NDJSON output.
type UserSummary struct {
	Login     string  `json:"login"`
	ID        int64   `json:"id"`
	AvatarURL string  `json:"avatar_url"`
	HTMLURL   string  `json:"html_url"`
	Type      string  `json:"type"`
	Score     float64 `json:"score"`
}

// UserProfile is the full public profile returned by /users/<login>.
// Nullable string fields decode to the empty string.
type UserProfile struct {
	Login           string    `json:"login"`
	ID              int64     `json:"id"`
	AvatarURL       string    `json:"avatar_url"`
	HTMLURL         string    `json:"html_url"`
	Name            string    `json:"name"`
	Company         string    `json:"company"`
	Blog            string    `json:"blog"`
	Location        string    `json:"location"`
	Email           string    `json:"email"`
	Bio             string    `json:"bio"`
	TwitterUsername string    `json:"twitter_username"`
	PublicRepos     int       `json:"public_repos"`
	Followers       int       `json:"followers"`
	Following       int       `json:"following"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// IsZero reports whether the profile is empty, i.e. nothing is selected.
func (p UserProfile) IsZero() bool {
	return p.Login == "" && p.ID == 0
}

// RepositoriesURL returns the link to the user's repository tab.
func (p UserProfile) RepositoriesURL() string {
	return "https://www.github.com/" + p.Login + "?tab=repositories"
}

// SearchPage is one decoded page of a user search.
//
// Items is nil when the payload carried no "items" array at all, and
// an empty non-nil slice when the array was present but empty. The
// controller only replaces its result list in the second case.
type SearchPage struct {
	TotalCount        int
	IncompleteResults bool
	Items             []UserSummary
}

// SearchOptions configures a user search request.
type SearchOptions struct {
	// Term is matched against the name and email fields.
	Term string

	// Page is the 1-based page number. Values below 1 request page 1.
	Page int

	// PerPage defaults to PageSize when zero.
	PerPage int
}
