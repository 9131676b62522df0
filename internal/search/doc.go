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

// Package search implements the search and pagination controller behind
// both the interactive browser and the scripted search command.
//
// A Controller holds the current term, the next page to request, the
// running result list and the selected profile. Scroll events pass
// through OnScroll, which applies a fixed 300 unit threshold and a
// throttle before a page fetch is allowed to start. At most one page
// fetch is in flight at a time.
package search
