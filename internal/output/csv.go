/*
PURPOSE:
  Writes probe results to a CSV file, one row per probed model.

REQUIREMENTS:
  User-specified:
  - Optional spreadsheet-friendly export next to the JSON summary.

  Implementation-discovered:
  - Rows are written as results arrive so an interrupted run still leaves
    the rows it finished.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Consumes: internal/model.ProbeResult

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Use encoding/csv.
  - Flush() after every write (critical for crash resilience).

USAGE:
  w, err := output.NewCSVWriter("results.csv")
  w.Write(result)
  w.Close()

MAINTENANCE:
  - Update Write() mapping when ProbeResult changes.
*/

package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/daryltucker/gateway-probe/internal/model"
)

var csvHeader = []string{"model", "status", "response_time_s", "timestamp", "response", "error"}

// CSVWriter handles writing results to a CSV file.
type CSVWriter struct {
	path   string
	file   *os.File
	writer *csv.Writer
	mu     sync.Mutex
}

// NewCSVWriter creates a new CSVWriter.
// It overwrites the file if it exists.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()

	return &CSVWriter{
		path:   path,
		file:   f,
		writer: w,
	}, nil
}

// Path is the file being written.
func (cw *CSVWriter) Path() string { return cw.path }

// Write writes a single result to the CSV file.
func (cw *CSVWriter) Write(r model.ProbeResult) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	record := []string{
		r.Model,
		string(r.Status),
		fmt.Sprintf("%.2f", r.ResponseTime),
		r.Timestamp.Format(time.RFC3339),
		r.Response,
		r.Error,
	}

	if err := cw.writer.Write(record); err != nil {
		return err
	}
	cw.writer.Flush()
	return cw.writer.Error()
}

// Close closes the underlying file.
func (cw *CSVWriter) Close() error {
	cw.writer.Flush()
	return cw.file.Close()
}
