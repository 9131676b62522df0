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

// Package main implements the sirseer-scout command-line interface.
// This tool searches GitHub users by name or email through the public
// REST API, without authentication.
//
// The CLI supports:
//   - An interactive browser that loads more users as you scroll
//   - Profile details for a selected user, with links to open in a browser
//   - Scripted searches that write users as NDJSON
//   - Printing a single profile as a card or as JSON
//
// Usage:
//
//	sirseer-scout [term]
//	sirseer-scout browse [term]
//	sirseer-scout search <term> [--pages N] [--all] [--output FILE] [--metadata FILE]
//	sirseer-scout user <login> [--json]
//
// Example:
//
//	sirseer-scout search alice --all --output users.ndjson
//
// Exit codes:
//   - 0: Success
//   - 1: General error
//   - 2: GitHub API returned an error
//   - 3: Network error
package main
