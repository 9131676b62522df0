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
	"net/url"
	"strconv"
	"strings"

	scouterrors "github.com/sirseerhq/sirseer-scout/internal/errors"
)

// BuildSearchQuery returns the q parameter for term, restricted to the
// name and email fields.
func BuildSearchQuery(term string) string {
	return term + " in:name in:email"
}

// SearchUsers retrieves one page of the user search for opts.Term.
func (c *RESTClient) SearchUsers(ctx context.Context, opts SearchOptions) (*SearchPage, error) {
	if strings.TrimSpace(opts.Term) == "" {
		return nil, scouterrors.ErrEmptyTerm
	}

	page := opts.Page
	if page < 1 {
		page = 1
	}
	perPage := opts.PerPage
	if perPage <= 0 {
		perPage = PageSize
	}

	query := url.Values{}
	query.Set("q", BuildSearchQuery(opts.Term))
	query.Set("per_page", strconv.Itoa(perPage))
	query.Set("page", strconv.Itoa(page))

	var wire struct {
		TotalCount        int           `json:"total_count"`
		IncompleteResults bool          `json:"incomplete_results"`
		Items             []UserSummary `json:"items"`
	}
	if err := c.getJSON(ctx, "/search/users", query, &wire); err != nil {
		return nil, fmt.Errorf("searching users for %q page %d: %w", opts.Term, page, err)
	}

	return &SearchPage{
		TotalCount:        wire.TotalCount,
		IncompleteResults: wire.IncompleteResults,
		Items:             wire.Items,
	}, nil
}

// GetUser retrieves the public profile for login.
func (c *RESTClient) GetUser(ctx context.Context, login string) (*UserProfile, error) {
	if login == "" {
		return nil, fmt.Errorf("fetching user: login is required")
	}

	var profile UserProfile
	if err := c.getJSON(ctx, "/users/"+url.PathEscape(login), nil, &profile); err != nil {
		return nil, fmt.Errorf("fetching user %q: %w", login, err)
	}

	return &profile, nil
}
