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
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/sirseerhq/sirseer-scout/test/testutil"
)

// TestNetworkFailures checks that every failure kind is reported once,
// without retries, with the documented exit code
func TestNetworkFailures(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") != "true" {
		t.Skip("Skipping integration test. Set INTEGRATION_TEST=true to run.")
	}

	tests := []struct {
		name        string
		setupMock   func(t *testing.T) *testutil.MockServer
		extraArgs   []string
		wantCode    int
		errContains string
	}{
		{
			name: "rate limit payload",
			setupMock: func(t *testing.T) *testutil.MockServer {
				return testutil.NewErrorServer(t, http.StatusForbidden, "API rate limit exceeded for 127.0.0.1.")
			},
			wantCode:    2,
			errContains: "API rate limit exceeded",
		},
		{
			name: "validation failure",
			setupMock: func(t *testing.T) *testutil.MockServer {
				return testutil.NewErrorServer(t, http.StatusUnprocessableEntity, "Validation Failed")
			},
			wantCode:    2,
			errContains: "Validation Failed",
		},
		{
			name: "malformed body",
			setupMock: func(t *testing.T) *testutil.MockServer {
				return testutil.NewMalformedServer(t)
			},
			wantCode:    3,
			errContains: "malformed api response",
		},
		{
			name: "request timeout",
			setupMock: func(t *testing.T) *testutil.MockServer {
				return testutil.NewSlowServer(t, 5*time.Second)
			},
			extraArgs:   []string{"--timeout", "200ms"},
			wantCode:    3,
			errContains: "network connection failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := tt.setupMock(t)

			args := append([]string{"search", "alice"}, tt.extraArgs...)
			result := testutil.RunWithMockServer(t, server, args...)

			testutil.AssertCLIError(t, result, tt.errContains)
			testutil.AssertExitCode(t, result, tt.wantCode)
			testutil.AssertEqual(t, server.RequestCount(), 1)
		})
	}
}

func TestNetworkFailure_ConnectionRefused(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") != "true" {
		t.Skip("Skipping integration test. Set INTEGRATION_TEST=true to run.")
	}

	server := testutil.NewMockServer(t, func(w http.ResponseWriter, r *http.Request) {})
	endpoint := server.URL
	server.Close()

	result := testutil.RunCLI(t, []string{"search", "alice"}, testutil.IsolatedEnv(t, endpoint))
	testutil.AssertCLIError(t, result, "network connection failed")
	testutil.AssertExitCode(t, result, 3)
}
