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

	"github.com/charmbracelet/x/ansi"
)

// spliceOverlay replaces a rectangular region of a rendered view with
// overlay content placed at (anchorX, anchorY). ANSI-aware truncation
// keeps the escape sequences on both sides of the overlay intact.
func spliceOverlay(view string, overlayLines []string, anchorX, anchorY int) string {
	if len(overlayLines) == 0 {
		return view
	}

	viewLines := strings.Split(view, "\n")
	overlayWidth := ansi.StringWidth(overlayLines[0])

	for index, overlayLine := range overlayLines {
		lineIndex := anchorY + index
		if lineIndex < 0 || lineIndex >= len(viewLines) {
			continue
		}

		viewLine := viewLines[lineIndex]
		viewLineWidth := ansi.StringWidth(viewLine)

		var result strings.Builder
		if anchorX > 0 {
			prefix := ansi.Truncate(viewLine, anchorX, "")
			result.WriteString(prefix)
			if gap := anchorX - ansi.StringWidth(prefix); gap > 0 {
				result.WriteString(strings.Repeat(" ", gap))
			}
		}
		result.WriteString("\x1b[0m")
		result.WriteString(overlayLine)
		result.WriteString("\x1b[0m")

		suffixStart := anchorX + overlayWidth
		if suffixStart < viewLineWidth {
			result.WriteString(ansi.TruncateLeft(viewLine, suffixStart, ""))
		}

		viewLines[lineIndex] = result.String()
	}

	return strings.Join(viewLines, "\n")
}

// centerOverlay splices box into the middle of a width x height view.
func centerOverlay(view, box string, width, height int) string {
	lines := strings.Split(box, "\n")
	boxWidth := ansi.StringWidth(lines[0])

	x := (width - boxWidth) / 2
	if x < 0 {
		x = 0
	}
	y := (height - len(lines)) / 2
	if y < 0 {
		y = 0
	}
	return spliceOverlay(view, lines, x, y)
}
