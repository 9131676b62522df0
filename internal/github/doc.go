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

// Package github provides a client for the two GitHub REST endpoints
// sirseer-scout depends on: user search and user profiles. It hides URL
// construction, header conventions and error payload detection behind a
// small interface so the search controller can be tested with a mock.
//
// The package includes:
//   - A Client interface for searching users and fetching a profile
//   - A REST implementation over net/http
//   - Mock client for testing
//   - Type definitions for user search results and profiles
//
// Basic usage:
//
//	client := github.NewRESTClient("https://api.github.com")
//	page, err := client.SearchUsers(ctx, github.SearchOptions{
//	    Term: "alice",
//	    Page: 1,
//	})
//	if err != nil {
//	    // errors.Is(err, scouterrors.ErrAPI) for API error payloads
//	}
//	for _, user := range page.Items {
//	    // Render user.Login and user.AvatarURL
//	}
package github
