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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sirseerhq/sirseer-scout/internal/config"
	scouterrors "github.com/sirseerhq/sirseer-scout/internal/errors"
	"github.com/sirseerhq/sirseer-scout/internal/github"
	"github.com/sirseerhq/sirseer-scout/pkg/version"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	endpoint   string
	timeout    time.Duration
	verbose    bool
}

func main() {
	rootCmd := newRootCommand()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(mapErrorToExitCode(err))
	}
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "sirseer-scout [term]",
		Short: "Find GitHub users from the terminal",
		Long: `SirSeer Scout searches GitHub users by name or email and lets you
browse the results as cards. More results load as you scroll toward the
bottom of the list, and selecting a card shows the user's profile.

Running without a subcommand starts the interactive browser.`,
		Version:       version.Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, opts, firstArg(args))
		},
	}

	addGlobalFlags(rootCmd.PersistentFlags(), opts)

	rootCmd.AddCommand(newBrowseCommand(opts))
	rootCmd.AddCommand(newSearchCommand(opts))
	rootCmd.AddCommand(newUserCommand(opts))

	return rootCmd
}

func addGlobalFlags(flags *pflag.FlagSet, opts *globalOptions) {
	flags.StringVar(&opts.configPath, "config", "", "Path to config file (default: .sirseer-scout.yaml or ~/.sirseer/scout.yaml)")
	flags.StringVar(&opts.endpoint, "endpoint", "", "GitHub REST API endpoint (overrides config and GITHUB_API_ENDPOINT)")
	flags.DurationVar(&opts.timeout, "timeout", 0, "Per-request timeout (overrides config and SCOUT_REQUEST_TIMEOUT)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
}

// loadConfig resolves configuration and applies flag overrides, which
// take precedence over every other source.
func loadConfig(cmd *cobra.Command, opts *globalOptions) (*config.Config, error) {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("endpoint") {
		cfg.GitHub.APIEndpoint = opts.endpoint
	}
	if flags.Changed("timeout") {
		cfg.GitHub.RequestTimeout = opts.timeout
	}
	if opts.verbose {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger builds a text logger writing to w at the configured level.
func newLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// newClient creates the REST client described by cfg.
func newClient(cfg *config.Config, logger *slog.Logger) github.Client {
	return github.NewRESTClient(cfg.GitHub.APIEndpoint,
		github.WithTimeout(cfg.GitHub.RequestTimeout),
		github.WithLogger(logger),
	)
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	if errors.Is(err, scouterrors.ErrAPI) {
		return 2 // GitHub answered with an error payload
	}

	if errors.Is(err, scouterrors.ErrNetworkFailure) ||
		errors.Is(err, scouterrors.ErrMalformedResponse) {
		return 3 // Network errors
	}

	return 1 // General error
}
