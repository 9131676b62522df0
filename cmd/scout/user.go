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

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sirseerhq/sirseer-scout/internal/github"
	"github.com/sirseerhq/sirseer-scout/internal/output"
	"github.com/sirseerhq/sirseer-scout/internal/search"
	"github.com/sirseerhq/sirseer-scout/internal/ui"
)

// defaultCardWidth is used when the terminal size cannot be read.
const defaultCardWidth = 80

func newUserCommand(global *globalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "user <login>",
		Short: "Show the profile of a GitHub user",
		Long: `Show the public profile of a GitHub user.

On a terminal the profile is printed as a card. When stdout is not a
terminal, or with --json, it is printed as a single JSON object.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, global)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			controller := search.NewController(newClient(cfg, logger), search.WithLogger(logger))
			if err := controller.GetMoreInfo(cmd.Context(), args[0]); err != nil {
				return err
			}
			profile := controller.Snapshot().Profile

			out := cmd.OutOrStdout()
			width, tty := terminalWidth(out)
			if asJSON || !tty {
				return writeProfileJSON(out, profile)
			}
			lipgloss.SetColorProfile(termenv.NewOutput(out).EnvColorProfile())
			_, err = fmt.Fprintln(out, ui.RenderModal(ui.DefaultTheme, profile, ui.ModalWidth(width)))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the profile as JSON")

	return cmd
}

// terminalWidth reports whether w is a terminal and, if so, its width.
func terminalWidth(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultCardWidth, true
	}
	return width, true
}

func writeProfileJSON(w io.Writer, profile github.UserProfile) error {
	writer := output.NewWriter(w)
	if err := writer.Write(profile); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return writer.Close()
}
