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
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	scouterrors "github.com/sirseerhq/sirseer-scout/internal/errors"
)

// APIError is a response from the GitHub REST API that carries an error
// payload: any body with a "message" field, or any non-2xx status. It
// unwraps to scouterrors.ErrAPI so callers can treat every cause alike.
type APIError struct {
	// StatusCode is the HTTP response status code.
	StatusCode int

	// Message is the top-level error description from GitHub.
	Message string

	// DocumentationURL points to the relevant API documentation.
	DocumentationURL string
}

func (err *APIError) Error() string {
	return fmt.Sprintf("github: HTTP %d: %s", err.StatusCode, err.Message)
}

// Unwrap lets errors.Is(err, scouterrors.ErrAPI) match.
func (err *APIError) Unwrap() error {
	return scouterrors.ErrAPI
}

// parseAPIError returns an *APIError when the body is an error payload
// or the status is not 2xx. It returns nil for a normal payload.
func parseAPIError(statusCode int, body []byte) *APIError {
	var wireError struct {
		Message          string `json:"message"`
		DocumentationURL string `json:"documentation_url"`
	}
	if json.Unmarshal(body, &wireError) == nil && wireError.Message != "" {
		return &APIError{
			StatusCode:       statusCode,
			Message:          wireError.Message,
			DocumentationURL: wireError.DocumentationURL,
		}
	}

	if statusCode < 200 || statusCode >= 300 {
		message := strings.TrimSpace(string(body))
		if message == "" {
			message = http.StatusText(statusCode)
		}
		return &APIError{StatusCode: statusCode, Message: message}
	}

	return nil
}
