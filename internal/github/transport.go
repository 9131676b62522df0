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

package github

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sirseerhq/sirseer-scout/pkg/version"
)

// maxResponseBytes caps every response body read from the API.
const maxResponseBytes = 10 * 1024 * 1024

// apiVersion is the REST API version pinned on every request.
const apiVersion = "2022-11-28"

var errResponseTooLarge = errors.New("response size exceeded limit")

// limitedReader wraps a ReadCloser with a size limit to prevent excessive memory usage.
type limitedReader struct {
	io.ReadCloser
	limit int64
	read  int64
}

// Read implements io.Reader with size limit enforcement.
func (lr *limitedReader) Read(p []byte) (n int, err error) {
	if lr.read >= lr.limit {
		return 0, fmt.Errorf("%w of %d bytes", errResponseTooLarge, lr.limit)
	}

	remaining := lr.limit - lr.read
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err = lr.ReadCloser.Read(p)
	lr.read += int64(n)

	return n, err
}

// headerTransport sets the REST API headers and the response size limit.
// Requests are unauthenticated.
type headerTransport struct {
	base  http.RoundTripper
	limit int64
}

// RoundTrip implements http.RoundTripper
func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	req = req.Clone(req.Context())

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.Body != nil {
		limit := t.limit
		if limit <= 0 {
			limit = maxResponseBytes
		}
		resp.Body = &limitedReader{
			ReadCloser: resp.Body,
			limit:      limit,
		}
	}

	return resp, nil
}
