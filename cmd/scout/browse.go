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
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/xid"
	"github.com/spf13/cobra"

	"github.com/sirseerhq/sirseer-scout/internal/search"
	"github.com/sirseerhq/sirseer-scout/internal/ui"
)

func newBrowseCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "browse [term]",
		Short: "Browse GitHub users interactively",
		Long: `Browse GitHub users interactively.

Type a name or email and press Enter to search. Scroll the results with the
arrow keys, PgUp/PgDn or the mouse wheel; more users load as you approach
the bottom. Press Enter or click a card to see the profile, and o, r or b
to open the profile, repositories or blog in your browser.

The browser owns the terminal, so logs go to the file set by log.file or
SCOUT_LOG_FILE and are discarded otherwise.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, opts, firstArg(args))
		},
	}
}

// runBrowse starts the interactive browser, optionally searching for term
// right away.
func runBrowse(cmd *cobra.Command, opts *globalOptions, term string) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	var logOutput io.Writer = io.Discard
	if cfg.Log.File != "" {
		f, fErr := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if fErr != nil {
			return fmt.Errorf("failed to open log file: %w", fErr)
		}
		defer f.Close()
		logOutput = f
	}
	logger, err := newLogger(cfg, logOutput)
	if err != nil {
		return err
	}
	if logOutput == io.Discard {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("session", xid.New().String())

	ctx := cmd.Context()
	controller := search.NewController(newClient(cfg, logger),
		search.WithThrottleInterval(cfg.Search.ScrollThrottle),
		search.WithLogger(logger),
	)
	model := ui.NewModel(ctx, controller, ui.Options{
		Logger:      logger,
		InitialTerm: term,
	})

	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("browser exited: %w", err)
	}
	return nil
}
