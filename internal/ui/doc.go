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

// Package ui implements the interactive user browser: a search box, a
// grid of result cards that loads more users as it is scrolled, and a
// profile modal.
//
// The Model is a bubbletea model. It never changes search state itself;
// every search, page fetch and profile lookup goes through a
// search.Controller, and network calls run as tea.Cmd functions whose
// results return as messages.
package ui
