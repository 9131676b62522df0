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

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Card geometry in terminal cells. CardWidth and CardHeight include the
// border.
const (
	cardInnerWidth = 18
	CardWidth      = cardInnerWidth + 2
	CardHeight     = avatarHeight + 1 + 2
	cardGap        = 1

	avatarWidth  = 8
	avatarHeight = 3
)

// RenderCard draws one search result: an avatar tile above the username.
// The tile color is derived from avatarURL (or the username when the URL
// is empty), so the same user always looks the same.
func RenderCard(theme Theme, avatarURL, username string, selected bool) string {
	borderColor := theme.BorderColor
	if selected {
		borderColor = theme.SelectedBorder
	}

	seed := avatarURL
	if seed == "" {
		seed = username
	}

	nameStyle := lipgloss.NewStyle().Foreground(theme.NormalText)
	if selected {
		nameStyle = nameStyle.Bold(true).Foreground(theme.HeaderForeground)
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		renderAvatar(theme.AvatarColor(seed), username, avatarWidth, avatarHeight),
		nameStyle.Render(ansi.Truncate(username, cardInnerWidth, "…")),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(cardInnerWidth).
		Align(lipgloss.Center).
		Render(body)
}

// renderAvatar draws a solid tile with the user's initial in the middle.
func renderAvatar(color lipgloss.Color, username string, width, height int) string {
	return lipgloss.NewStyle().
		Background(color).
		Foreground(lipgloss.Color("255")).
		Bold(true).
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(initial(username))
}

func initial(username string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(username))
	if r == utf8.RuneError {
		return "?"
	}
	return string(unicode.ToUpper(r))
}

// gridColumns returns how many cards fit side by side in width.
func gridColumns(width int) int {
	columns := (width + cardGap) / (CardWidth + cardGap)
	if columns < 1 {
		return 1
	}
	return columns
}

// renderGrid lays cards out in rows of columns. Each row is CardHeight
// lines tall.
func renderGrid(cards []string, columns int) string {
	if len(cards) == 0 {
		return ""
	}

	gap := strings.Repeat(" ", cardGap)
	var rows []string
	for start := 0; start < len(cards); start += columns {
		end := start + columns
		if end > len(cards) {
			end = len(cards)
		}
		cells := make([]string, 0, 2*(end-start))
		for i, card := range cards[start:end] {
			if i > 0 {
				cells = append(cells, gap)
			}
			cells = append(cells, card)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}
