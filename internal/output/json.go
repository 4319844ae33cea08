/*
PURPOSE:
  Writes a run summary to a single indented JSON file.

REQUIREMENTS:
  User-specified:
  - One human-readable result file per run, timestamp in the name.

  Implementation-discovered:
  - Model replies contain non-ASCII text; keep it verbatim (no \u escapes,
    no HTML escaping of <, >, &).

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine (Runner.Persist)
  - Consumes: internal/model.RunSummary

ERROR HANDLING:
  - Returns error on file creation or write failure; the caller decides
    whether that is fatal (it never is for a finished run).

USAGE:
  path, err := output.SaveSummaryJSON(dir, "", summary)
*/

package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/daryltucker/gateway-probe/internal/model"
)

// DefaultResultName returns the timestamped file name for a run.
func DefaultResultName(at time.Time, ext string) string {
	return fmt.Sprintf("model_test_results_%s.%s", at.Format("20060102_150405"), ext)
}

// SaveSummaryJSON writes the summary to dir/filename. An empty filename uses
// DefaultResultName. The final path is returned.
func SaveSummaryJSON(dir, filename string, s *model.RunSummary) (string, error) {
	if filename == "" {
		filename = DefaultResultName(s.Timestamp, "json")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}
