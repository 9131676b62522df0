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

// Package errors defines sentinel errors for consistent error handling across the application.
// These errors map to specific exit codes in the CLI for proper scripting support.
package errors

import "errors"

// Sentinel errors for consistent error handling and exit code mapping
var (
	// ErrAPI indicates the GitHub API answered with an error payload
	// (a body carrying a "message" field). Rate limiting, malformed
	// queries and unknown users all surface as this one kind.
	// Maps to exit code 2.
	ErrAPI = errors.New("github api returned an error")

	// ErrNetworkFailure indicates the request never completed.
	// Maps to exit code 3.
	ErrNetworkFailure = errors.New("network connection failed")

	// ErrMalformedResponse indicates the response body was not valid JSON.
	// Maps to exit code 3.
	ErrMalformedResponse = errors.New("malformed api response")

	// ErrEmptyTerm indicates a search was requested without a term.
	// Maps to exit code 1.
	ErrEmptyTerm = errors.New("search term is empty")
)
