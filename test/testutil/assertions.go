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

package testutil

import (
	"bufio"
	"encoding/json"
	"os"
	"strings"
	"testing"
)

// ParseNDJSONUsers validates that data is NDJSON of search users and
// returns their logins in order
func ParseNDJSONUsers(t *testing.T, data string) []string {
	t.Helper()

	scanner := bufio.NewScanner(strings.NewReader(data))
	var logins []string
	line := 0

	for scanner.Scan() {
		line++
		text := scanner.Text()
		if text == "" {
			continue
		}

		var user map[string]interface{}
		if err := json.Unmarshal([]byte(text), &user); err != nil {
			t.Errorf("Line %d: invalid JSON: %v", line, err)
			continue
		}

		// Validate user has the fields a card needs
		requiredFields := []string{"login", "id", "avatar_url", "html_url"}
		for _, field := range requiredFields {
			if _, ok := user[field]; !ok {
				t.Errorf("Line %d: missing required field '%s'", line, field)
			}
		}

		login, _ := user["login"].(string)
		logins = append(logins, login)
	}

	if err := scanner.Err(); err != nil {
		t.Fatalf("Error reading output: %v", err)
	}

	return logins
}

// AssertNDJSONOutput validates that a file contains NDJSON with the
// expected number of users
func AssertNDJSONOutput(t *testing.T, filePath string, expectedUsers int) []string {
	t.Helper()

	data, err := os.ReadFile(filePath)
	if err != nil {
		t.Fatalf("Failed to open output file: %v", err)
	}

	logins := ParseNDJSONUsers(t, string(data))
	if len(logins) != expectedUsers {
		t.Errorf("Expected %d users, got %d", expectedUsers, len(logins))
	}
	return logins
}

// AssertMetadataFile validates metadata file contents and returns the
// decoded results section
func AssertMetadataFile(t *testing.T, path string) map[string]interface{} {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read metadata file: %v", err)
	}

	var metadata map[string]interface{}
	if err := json.Unmarshal(data, &metadata); err != nil {
		t.Fatalf("Invalid metadata JSON: %v", err)
	}

	requiredFields := []string{"scout_version", "session_id", "parameters", "results"}
	for _, field := range requiredFields {
		if _, ok := metadata[field]; !ok {
			t.Errorf("Missing required metadata field: %s", field)
		}
	}

	results, _ := metadata["results"].(map[string]interface{})
	return results
}

// AssertContainsString checks if a string contains a substring
func AssertContainsString(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Errorf("Expected string to contain %q, got: %s", needle, haystack)
	}
}

// AssertNotContainsString checks if a string does not contain a substring
func AssertNotContainsString(t *testing.T, haystack, needle string) {
	t.Helper()
	if strings.Contains(haystack, needle) {
		t.Errorf("Expected string to NOT contain %q, got: %s", needle, haystack)
	}
}

// AssertEqual compares two values and fails if they're not equal
func AssertEqual(t *testing.T, got, want interface{}) {
	t.Helper()
	if got != want {
		t.Errorf("Got %v, want %v", got, want)
	}
}
