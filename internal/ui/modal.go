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
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/sirseerhq/sirseer-scout/internal/github"
)

// DateLayout is how join and update dates are shown.
const DateLayout = "Jan 02, 2006"

const (
	noLocation = "no location given"
	noEmail    = "no email available"
)

// ModalWidth returns the profile box width for a screen of the given width.
func ModalWidth(screenWidth int) int {
	width := screenWidth - 8
	if width > 64 {
		width = 64
	}
	if width < 24 {
		width = 24
	}
	return width
}

// formatDate renders t with DateLayout, or "unknown" for the zero time.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Format(DateLayout)
}

// RenderModal draws the profile detail box for profile, width cells wide
// including its border.
func RenderModal(theme Theme, profile github.UserProfile, width int) string {
	inner := width - 4
	if inner < 10 {
		inner = 10
	}

	background := lipgloss.NewStyle().Background(theme.ModalBackground)
	text := background.Foreground(theme.NormalText)
	faint := background.Foreground(theme.FaintText)
	link := background.Foreground(theme.LinkForeground).Underline(true)
	title := background.Foreground(theme.HeaderForeground).Bold(true)

	heading := title.Render(profile.Login)
	if profile.Name != "" {
		heading = title.Render(profile.Name) + faint.Render(" ("+profile.Login+")")
	}

	location := profile.Location
	if location == "" {
		location = noLocation
	}
	email := profile.Email
	if email == "" {
		email = noEmail
	}

	seed := profile.AvatarURL
	if seed == "" {
		seed = profile.Login
	}

	lines := []string{
		renderAvatar(theme.AvatarColor(seed), profile.Login, avatarWidth, avatarHeight),
		"",
		heading,
		text.Render(location),
		text.Render(email),
		link.Render(fmt.Sprintf("%d public repos", profile.PublicRepos)),
		text.Render("Joined: " + formatDate(profile.CreatedAt)),
		text.Render("Last updated: " + formatDate(profile.UpdatedAt)),
	}

	if bio := strings.TrimSpace(profile.Bio); bio != "" {
		lines = append(lines, "", text.Width(inner).Render(bio))
	}

	actions := []string{"[o] Profile", "[r] Repositories"}
	if profile.Blog != "" {
		actions = append(actions, "[b] Blog")
	}
	lines = append(lines, "", link.Render(strings.Join(actions, "  ")))
	lines = append(lines, faint.Render("Esc to close"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.SelectedBorder).
		BorderBackground(theme.ModalBackground).
		Background(theme.ModalBackground).
		Padding(0, 1).
		Width(width - 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// blogURL normalizes a profile blog field into an openable URL.
// GitHub stores whatever the user typed, often without a scheme.
func blogURL(blog string) string {
	blog = strings.TrimSpace(blog)
	if blog == "" {
		return ""
	}
	if strings.HasPrefix(blog, "http://") || strings.HasPrefix(blog, "https://") {
		return blog
	}
	return "https://" + blog
}
