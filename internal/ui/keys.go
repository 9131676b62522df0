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

package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the user browser.
type KeyMap struct {
	// Grid navigation.
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Search box.
	FocusSearch key.Binding
	Submit      key.Binding
	FocusToggle key.Binding

	// Profile modal.
	Select      key.Binding
	Close       key.Binding
	OpenProfile key.Binding
	OpenRepos   key.Binding
	OpenBlog    key.Binding

	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (h/j/k/l) alongside standard arrow keys and page up/down.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "right"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("C-u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("C-d", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	FocusSearch: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "search"),
	),
	FocusToggle: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "switch focus"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "more info"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "close"),
	),
	OpenProfile: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "profile"),
	),
	OpenRepos: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "repositories"),
	),
	OpenBlog: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "blog"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("C-c", "quit"),
	),
}

// ShortHelp implements help.KeyMap for the results grid.
func (keys KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.Up, keys.Down, keys.Select, keys.FocusSearch, keys.Quit}
}

// FullHelp implements help.KeyMap.
func (keys KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keys.Up, keys.Down, keys.Left, keys.Right},
		{keys.PageUp, keys.PageDown, keys.Home, keys.End},
		{keys.Select, keys.FocusSearch, keys.FocusToggle, keys.Quit},
	}
}

// modalHelp is the binding set shown while the profile modal is open.
type modalHelp struct {
	keys    KeyMap
	hasBlog bool
}

func (h modalHelp) ShortHelp() []key.Binding {
	bindings := []key.Binding{h.keys.OpenProfile, h.keys.OpenRepos}
	if h.hasBlog {
		bindings = append(bindings, h.keys.OpenBlog)
	}
	return append(bindings, h.keys.Close)
}

func (h modalHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}

// searchHelp is the binding set shown while the search box has focus.
type searchHelp struct {
	keys KeyMap
}

func (h searchHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.keys.Submit, h.keys.FocusToggle, h.keys.ForceQuit}
}

func (h searchHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}
