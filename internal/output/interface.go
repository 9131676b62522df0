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

package output

// RecordWriter is what the search and user commands write through.
// Writer is the NDJSON implementation.
type RecordWriter interface {
	// Write writes a single record to the output.
	Write(record any) error

	// WriteUnique writes record unless key was seen before.
	WriteUnique(key string, record any) (bool, error)

	// Count returns the number of records written.
	Count() int

	// Skipped returns the number of records dropped by WriteUnique.
	Skipped() int

	// Close releases the underlying output. It must be called once all
	// records are written.
	Close() error
}

var _ RecordWriter = (*Writer)(nil)
