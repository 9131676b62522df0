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
	"errors"

	"github.com/charmbracelet/lipgloss"

	scouterrors "github.com/sirseerhq/sirseer-scout/internal/errors"
	"github.com/sirseerhq/sirseer-scout/internal/github"
)

// alertTitle heads every error alert.
const alertTitle = "An error occurred"

// alertMessage returns the text shown for err. API error payloads show
// GitHub's own message.
func alertMessage(err error) string {
	var apiErr *github.APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.Is(err, scouterrors.ErrNetworkFailure):
		return "Could not reach GitHub. Check your connection and try again."
	case errors.Is(err, scouterrors.ErrMalformedResponse):
		return "GitHub returned a response that could not be read."
	default:
		return err.Error()
	}
}

// RenderAlert draws the blocking error box, width cells wide including
// its border.
func RenderAlert(theme Theme, message string, width int) string {
	background := lipgloss.NewStyle().Background(theme.ModalBackground)
	inner := width - 4
	if inner < 10 {
		inner = 10
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		background.Foreground(theme.ErrorBorder).Bold(true).Render(alertTitle),
		"",
		background.Foreground(theme.ErrorForeground).Width(inner).Render(message),
		"",
		background.Foreground(theme.FaintText).Render("Enter to dismiss"),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(theme.ErrorBorder).
		BorderBackground(theme.ModalBackground).
		Background(theme.ModalBackground).
		Padding(0, 1).
		Width(width - 2).
		Render(body)
}
