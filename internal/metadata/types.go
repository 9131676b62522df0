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

// Package metadata types define the structures used to record what a
// scripted search did.
package metadata

import (
	"time"
)

// SearchMetadata is the record written by `search --metadata`.
type SearchMetadata struct {
	ScoutVersion string        `json:"scout_version"`
	SessionID    string        `json:"session_id"`
	Parameters   SearchParams  `json:"parameters"`
	Results      SearchResults `json:"results"`
}

// SearchParams captures the inputs of the search so a run can be repeated.
type SearchParams struct {
	Term        string `json:"term"`
	Query       string `json:"query"`
	PageSize    int    `json:"page_size"`
	MaxPages    int    `json:"max_pages"`
	FetchAll    bool   `json:"fetch_all"`
	APIEndpoint string `json:"api_endpoint"`
}

// SearchResults contains the statistics of a completed search.
type SearchResults struct {
	TotalCount   int       `json:"total_count"`
	UsersWritten int       `json:"users_written"`
	Duplicates   int       `json:"duplicates_skipped"`
	PagesFetched int       `json:"pages_fetched"`
	EndOfResults bool      `json:"end_of_results"`
	APICallCount int       `json:"api_calls_made"`
	Duration     string    `json:"search_duration"`
	StartedAt    time.Time `json:"started_at"`
	CompletedAt  time.Time `json:"completed_at"`
}
