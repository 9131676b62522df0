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
	"hash/fnv"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for the browser. All colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	SelectedBorder   lipgloss.Color
	HelpText         lipgloss.Color
	LinkForeground   lipgloss.Color

	// Alerts.
	ErrorForeground lipgloss.Color
	ErrorBorder     lipgloss.Color

	// Overlay boxes.
	ModalBackground lipgloss.Color

	// AvatarColors is the palette avatar tiles are drawn from.
	AvatarColors [8]lipgloss.Color
}

// AvatarColor picks a palette entry for seed. The same seed always
// maps to the same color.
func (theme Theme) AvatarColor(seed string) lipgloss.Color {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(seed))
	return theme.AvatarColors[hash.Sum32()%uint32(len(theme.AvatarColors))]
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	SelectedBorder:   lipgloss.Color("75"), // blue
	HelpText:         lipgloss.Color("241"),
	LinkForeground:   lipgloss.Color("75"),

	ErrorForeground: lipgloss.Color("255"),
	ErrorBorder:     lipgloss.Color("196"), // red

	ModalBackground: lipgloss.Color("235"),

	AvatarColors: [8]lipgloss.Color{
		lipgloss.Color("160"),
		lipgloss.Color("166"),
		lipgloss.Color("136"),
		lipgloss.Color("64"),
		lipgloss.Color("30"),
		lipgloss.Color("25"),
		lipgloss.Color("61"),
		lipgloss.Color("127"),
	},
}
