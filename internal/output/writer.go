package output

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
)

// Writer streams records as NDJSON to a file or io.Writer.
// Records are never accumulated in memory; only keys passed to
// WriteUnique are remembered.
type Writer struct {
	mu        sync.Mutex
	encoder   *json.Encoder
	buffered  *bufio.Writer
	count     int
	skipped   int
	seen      map[string]struct{}
	closeFunc func() error
}

// NewWriter creates a new NDJSON writer that writes to the specified output.
// Each record reaches w as soon as Write returns.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		encoder: json.NewEncoder(w),
		seen:    make(map[string]struct{}),
	}
}

// NewFileWriter creates a buffered NDJSON writer for filename.
// The caller must call Close() to flush and close the file.
func NewFileWriter(filename string) (*Writer, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	buffered := bufio.NewWriter(file)
	return &Writer{
		encoder:  json.NewEncoder(buffered),
		buffered: buffered,
		seen:     make(map[string]struct{}),
		closeFunc: func() error {
			if err := buffered.Flush(); err != nil {
				file.Close()
				return fmt.Errorf("failed to flush output file: %w", err)
			}
			return file.Close()
		},
	}, nil
}

// Write writes a single record as one NDJSON line.
func (w *Writer) Write(record any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.encode(record)
}

// WriteUnique writes record unless a record with the same key was already
// written. It reports whether the record was written. Search pages can
// overlap when results shift between requests.
func (w *Writer) WriteUnique(key string, record any) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, dup := w.seen[key]; dup {
		w.skipped++
		return false, nil
	}
	if err := w.encode(record); err != nil {
		return false, err
	}
	w.seen[key] = struct{}{}
	return true, nil
}

func (w *Writer) encode(record any) error {
	if err := w.encoder.Encode(record); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	w.count++
	return nil
}

// Count returns the number of records written.
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Skipped returns the number of duplicates dropped by WriteUnique.
func (w *Writer) Skipped() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.skipped
}

// Close flushes and closes the underlying file, if any.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closeFunc != nil {
		closeFunc := w.closeFunc
		w.closeFunc = nil
		return closeFunc()
	}
	return nil
}
