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

// Package metadata records statistics about a scripted search: pages
// fetched, users written, API calls made and timing. Each run gets a
// session ID that also tags its log lines.
package metadata

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/xid"

	"github.com/sirseerhq/sirseer-scout/internal/clock"
)

// Tracker collects statistics during a search. Create one at the start of
// a run. It is safe for concurrent use.
type Tracker struct {
	mu           sync.Mutex
	clock        clock.Clock
	sessionID    string
	startTime    time.Time
	apiCallCount int
	pages        int
	users        int
	duplicates   int
}

// New creates a tracker with a fresh session ID, started now.
func New(clk clock.Clock) *Tracker {
	if clk == nil {
		clk = clock.Real()
	}
	return &Tracker{
		clock:     clk,
		sessionID: xid.New().String(),
		startTime: clk.Now(),
	}
}

// SessionID returns the identifier for this run.
func (t *Tracker) SessionID() string {
	return t.sessionID
}

// IncrementAPICall records that an API request was made.
func (t *Tracker) IncrementAPICall() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.apiCallCount++
}

// RecordPage records a fetched page and how many of its users were
// written or dropped as duplicates.
func (t *Tracker) RecordPage(written, duplicates int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pages++
	t.users += written
	t.duplicates += duplicates
}

// GenerateMetadata creates the record for the completed search.
func (t *Tracker) GenerateMetadata(version string, params SearchParams, totalCount int, endOfResults bool) *SearchMetadata {
	t.mu.Lock()
	defer t.mu.Unlock()

	completedAt := t.clock.Now()

	return &SearchMetadata{
		ScoutVersion: version,
		SessionID:    t.sessionID,
		Parameters:   params,
		Results: SearchResults{
			TotalCount:   totalCount,
			UsersWritten: t.users,
			Duplicates:   t.duplicates,
			PagesFetched: t.pages,
			EndOfResults: endOfResults,
			APICallCount: t.apiCallCount,
			Duration:     completedAt.Sub(t.startTime).String(),
			StartedAt:    t.startTime,
			CompletedAt:  completedAt,
		},
	}
}

// SaveMetadata writes metadata as indented JSON to path. The file is
// written to a temporary name and renamed so readers never see a partial
// record.
func SaveMetadata(metadata *SearchMetadata, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create metadata directory: %w", err)
		}
	}

	tmpFile := path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return fmt.Errorf("failed to create metadata file: %w", err)
	}

	if err := WriteMetadataToWriter(metadata, file); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to write metadata: %w", err)
	}

	if err := file.Close(); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to close metadata file: %w", err)
	}

	if err := os.Rename(tmpFile, path); err != nil {
		return fmt.Errorf("failed to save metadata file: %w", err)
	}

	return nil
}

// LoadMetadata reads a record written by SaveMetadata.
func LoadMetadata(path string) (*SearchMetadata, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open metadata file: %w", err)
	}
	defer file.Close()

	var metadata SearchMetadata
	if err := json.NewDecoder(file).Decode(&metadata); err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}
	return &metadata, nil
}

// WriteMetadataToWriter serializes metadata as indented JSON to w.
func WriteMetadataToWriter(metadata *SearchMetadata, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(metadata)
}
