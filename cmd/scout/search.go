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
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/sirseerhq/sirseer-scout/internal/github"
	"github.com/sirseerhq/sirseer-scout/internal/metadata"
	"github.com/sirseerhq/sirseer-scout/internal/output"
	"github.com/sirseerhq/sirseer-scout/internal/search"
	"github.com/sirseerhq/sirseer-scout/pkg/version"
)

// maxSearchResults is how deep GitHub lets a search be paged. Requests
// past it are answered with an error payload.
const maxSearchResults = 1000

// searchOptions holds the flags of the search command.
type searchOptions struct {
	pages        int
	fetchAll     bool
	outputFile   string
	metadataFile string
}

func newSearchCommand(global *globalOptions) *cobra.Command {
	opts := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search GitHub users and write them as NDJSON",
		Long: `Search GitHub users whose name or email matches the term and write
each user as one JSON object per line.

By default only the first page of 20 users is fetched. Use --pages to fetch
more pages, or --all to keep fetching until the results are exhausted.
Users that appear on more than one page are written once.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, global)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("pages") {
				opts.pages = cfg.Search.MaxPages
			}
			if opts.pages < 0 {
				return fmt.Errorf("--pages must not be negative, got %d", opts.pages)
			}

			logger, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			tracker := metadata.New(nil)
			logger = logger.With("session", tracker.SessionID())

			client := &trackedClient{Client: newClient(cfg, logger), tracker: tracker}

			params := metadata.SearchParams{
				Term:        args[0],
				Query:       github.BuildSearchQuery(args[0]),
				PageSize:    github.PageSize,
				MaxPages:    opts.pages,
				FetchAll:    opts.fetchAll,
				APIEndpoint: cfg.GitHub.APIEndpoint,
			}
			return runSearch(cmd.Context(), client, tracker, logger, params, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().IntVar(&opts.pages, "pages", 1, "Number of pages to fetch (default from search.max_pages, else 1)")
	cmd.Flags().BoolVar(&opts.fetchAll, "all", false, "Fetch pages until the results are exhausted")
	cmd.Flags().StringVar(&opts.outputFile, "output", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&opts.metadataFile, "metadata", "", "Write search statistics as JSON to this file")

	return cmd
}

// trackedClient counts every request made through it.
type trackedClient struct {
	github.Client
	tracker *metadata.Tracker
}

func (c *trackedClient) SearchUsers(ctx context.Context, opts github.SearchOptions) (*github.SearchPage, error) {
	c.tracker.IncrementAPICall()
	return c.Client.SearchUsers(ctx, opts)
}

func (c *trackedClient) GetUser(ctx context.Context, login string) (*github.UserProfile, error) {
	c.tracker.IncrementAPICall()
	return c.Client.GetUser(ctx, login)
}

// runSearch drives the controller through the first page and as many
// following pages as requested, streaming users to stdout or a file.
func runSearch(ctx context.Context, client github.Client, tracker *metadata.Tracker, logger *slog.Logger,
	params metadata.SearchParams, opts *searchOptions, stdout, stderr io.Writer) error {
	var writer output.RecordWriter
	if opts.outputFile == "" {
		writer = output.NewWriter(stdout)
	} else {
		fileWriter, err := output.NewFileWriter(opts.outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		writer = fileWriter
	}
	defer writer.Close()

	controller := search.NewController(client, search.WithLogger(logger))

	startTime := time.Now()
	if err := controller.Search(ctx, params.Term); err != nil {
		return err
	}

	written := 0
	flush := func() error {
		users := controller.Snapshot().Users
		added, dups := 0, 0
		for _, user := range users[written:] {
			ok, err := writer.WriteUnique(user.Login, user)
			if err != nil {
				return fmt.Errorf("failed to write user %s: %w", user.Login, err)
			}
			if ok {
				added++
			} else {
				dups++
			}
		}
		written = len(users)
		tracker.RecordPage(added, dups)
		return nil
	}
	if err := flush(); err != nil {
		return err
	}

	maxPages := opts.pages
	if maxPages == 0 {
		maxPages = 1
	}
	showProgress := opts.fetchAll || maxPages > 1
	pagesFetched := 1

	for opts.fetchAll || pagesFetched < maxPages {
		state := controller.State()
		if exhausted(state, written) {
			break
		}
		if showProgress {
			updateProgress(stderr, written, state.Results, pagesFetched, startTime)
		}

		fetched, err := controller.FetchNextPage(ctx)
		if err != nil {
			if showProgress {
				fmt.Fprintln(stderr)
			}
			return err
		}
		if !fetched {
			break
		}
		pagesFetched++
		if err := flush(); err != nil {
			return err
		}
	}

	state := controller.State()
	if showProgress {
		updateProgress(stderr, written, state.Results, pagesFetched, startTime)
		fmt.Fprintln(stderr)
	}
	logger.Debug("search complete",
		"term", params.Term,
		"total", state.Results,
		"written", writer.Count(),
		"skipped", writer.Skipped(),
		"pages", pagesFetched,
		"duration", time.Since(startTime).Round(time.Millisecond))

	if opts.metadataFile != "" {
		md := tracker.GenerateMetadata(version.Version, params, state.Results, exhausted(state, written))
		if err := metadata.SaveMetadata(md, opts.metadataFile); err != nil {
			return fmt.Errorf("failed to save metadata: %w", err)
		}
	}

	return nil
}

// exhausted reports whether no further page can yield users: the
// controller saw a short page, every reported result has been received,
// or GitHub's paging limit has been reached.
func exhausted(state search.State, received int) bool {
	if state.EndOfResults {
		return true
	}
	if received >= state.Results {
		return true
	}
	return received >= maxSearchResults
}

// updateProgress displays progress with percentage and ETA
func updateProgress(w io.Writer, current, total, pageNum int, startTime time.Time) {
	if total > maxSearchResults {
		total = maxSearchResults
	}
	if total == 0 {
		return
	}

	percent := float64(current) * 100 / float64(total)
	elapsed := time.Since(startTime)

	var eta string
	if current > 0 && current < total {
		totalTime := elapsed.Seconds() * float64(total) / float64(current)
		remaining := time.Duration(totalTime-elapsed.Seconds()) * time.Second

		if remaining > 0 {
			eta = fmt.Sprintf(" | ETA: %s", remaining.Round(time.Second))
		}
	}

	fmt.Fprintf(w, "\rProgress: %d / %d users [%.1f%%] | Page %d%s",
		current, total, percent, pageNum, eta)
}
