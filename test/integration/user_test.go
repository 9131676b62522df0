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

package integration

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/sirseerhq/sirseer-scout/test/testutil"
)

func TestUser_JSONOutput(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") != "true" {
		t.Skip("Skipping integration test. Set INTEGRATION_TEST=true to run.")
	}

	server := testutil.NewGitHubServer(t, []*testutil.UserBuilder{
		testutil.NewUserBuilder("octocat").
			WithName("The Octocat").
			WithLocation("San Francisco").
			WithBlog("https://github.blog").
			WithPublicRepos(8).
			WithCreatedAt(time.Date(2011, time.January, 25, 18, 44, 36, 0, time.UTC)),
	})

	// stdout is a pipe, so the profile is printed as JSON without --json
	for _, args := range [][]string{{"user", "octocat"}, {"user", "octocat", "--json"}} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			result := testutil.RunWithMockServer(t, server, args...)
			testutil.AssertCLISuccess(t, result)

			var profile map[string]interface{}
			if err := json.Unmarshal([]byte(strings.TrimSpace(result.Stdout)), &profile); err != nil {
				t.Fatalf("Expected a JSON profile, got: %s", result.Stdout)
			}
			testutil.AssertEqual(t, profile["login"], "octocat")
			testutil.AssertEqual(t, profile["name"], "The Octocat")
			testutil.AssertEqual(t, profile["location"], "San Francisco")
			testutil.AssertEqual(t, profile["public_repos"], float64(8))
			testutil.AssertEqual(t, profile["created_at"], "2011-01-25T18:44:36Z")
		})
	}
}

func TestUser_NotFound(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") != "true" {
		t.Skip("Skipping integration test. Set INTEGRATION_TEST=true to run.")
	}

	server := testutil.NewGitHubServer(t, nil)

	result := testutil.RunWithMockServer(t, server, "user", "nobody")
	testutil.AssertCLIError(t, result, "Not Found")
	testutil.AssertExitCode(t, result, 2)
}
