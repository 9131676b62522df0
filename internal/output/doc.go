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

// Package output writes search results as NDJSON (Newline Delimited JSON),
// one user per line, so results can be piped into jq or loaded as a
// stream.
//
// Example usage:
//
//	w, err := output.NewFileWriter("users.ndjson")
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//
//	for _, user := range snapshot.Users {
//	    if _, err := w.WriteUnique(user.Login, user); err != nil {
//	        return err
//	    }
//	}
package output
