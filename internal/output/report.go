/*
PURPOSE:
  Human-readable progress and summary lines for a probe run.

REQUIREMENTS:
  User-specified:
  - One progress header and one outcome line per model.
  - Summary with totals, success rate and models grouped by status.

  Implementation-discovered:
  - Writes to the command's output writer so tests can capture it.
  - Diagnostics go through Logger, never through the Reporter.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine.Runner, internal/cli

IMPLEMENTATION RULES:
  - Truncate appends "..."; Head does not. Stored replies use Truncate,
    HTTP error bodies use Head.
*/

package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/daryltucker/gateway-probe/internal/catalog"
	"github.com/daryltucker/gateway-probe/internal/model"
)

const rule = 60

// ProviderConnection is one entry of the gateway's provider status map.
type ProviderConnection struct {
	Provider  string
	Connected bool
}

// Reporter prints human-readable run progress.
type Reporter struct {
	w     io.Writer
	title cases.Caser
}

// NewReporter returns a Reporter writing to w.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w, title: cases.Title(language.English)}
}

func (r *Reporter) printf(format string, args ...any) {
	fmt.Fprintf(r.w, format, args...)
}

// Catalog prints a numbered list of catalog entries with their provider.
func (r *Reporter) Catalog(entries []catalog.Entry) {
	r.printf("\n📋 Available Models (%d):\n", len(entries))
	for i, e := range entries {
		provider := e.Provider
		if provider == "" {
			provider = "unknown"
		}
		r.printf("  %2d. %-32s %s %s\n", i+1, e.ID, catalog.ProviderLabel(e.Provider), provider)
	}
}

// Reachable reports the connectivity check outcome.
func (r *Reporter) Reachable(ok bool, detail string) {
	if ok {
		r.printf("✅ Server is running and accessible\n")
		return
	}
	r.printf("❌ %s\n", detail)
}

// RunStart announces the run.
func (r *Reporter) RunStart(total int, at time.Time) {
	r.printf("\n🚀 Starting comprehensive test of %d AI models\n", total)
	r.printf("📅 Test started at: %s\n", at.Format("2006-01-02 15:04:05"))
	r.printf("%s\n", strings.Repeat("=", rule))
}

// Providers prints the gateway's provider connection map.
func (r *Reporter) Providers(conns []ProviderConnection) {
	if len(conns) == 0 {
		return
	}
	r.printf("\n📊 Model Connection Status:\n")
	for _, c := range conns {
		status := "❌ Not Connected"
		if c.Connected {
			status = "✅ Connected"
		}
		r.printf("   %s: %s\n", r.title.String(c.Provider), status)
	}
}

// ProbeStart prints the progress header for one model.
func (r *Reporter) ProbeStart(i, n int, id string) {
	r.printf("\n[%d/%d] Testing %s\n", i, n, id)
}

// ProbeDone prints the outcome line(s) of one probe.
func (r *Reporter) ProbeDone(res model.ProbeResult) {
	switch res.Status {
	case model.StatusSuccess:
		r.printf("✅ %s: SUCCESS (%.2fs)\n", res.Model, res.ResponseTime)
		r.printf("   Response: %s\n", res.Response)
	case model.StatusError:
		r.printf("❌ %s: %s\n", res.Model, Truncate(res.Error, 100))
	case model.StatusTimeout:
		r.printf("⏰ %s: TIMEOUT\n", res.Model)
	case model.StatusConnectionError:
		r.printf("🔌 %s: CONNECTION ERROR - %s\n", res.Model, res.Error)
	default:
		r.printf("💥 %s: UNEXPECTED ERROR - %s\n", res.Model, res.Error)
	}
}

// Summary prints totals and the per-status grouping.
func (r *Reporter) Summary(s *model.RunSummary) {
	r.printf("\n%s\n", strings.Repeat("=", rule))
	r.printf("📋 TEST SUMMARY\n")
	r.printf("%s\n", strings.Repeat("=", rule))
	r.printf("✅ Successful: %d\n", s.Summary.Successful)
	r.printf("❌ Failed: %d\n", s.Summary.Failed)
	r.printf("📊 Success Rate: %.1f%%\n", s.Summary.SuccessRate)

	for _, st := range s.StatusOrder() {
		models := s.ByStatus[st]
		r.printf("\n%s (%d):\n", strings.ToUpper(string(st)), len(models))
		for _, m := range models {
			r.printf("  • %s\n", m)
		}
	}
}

// Saved reports where the summary was written.
func (r *Reporter) Saved(path string) {
	r.printf("\n💾 Results saved to: %s\n", path)
}

// Done prints the closing line.
func (r *Reporter) Done(s *model.RunSummary) {
	r.printf("\n🎉 Testing completed!\n")
	r.printf("📊 Final Results: %d/%d models working\n", s.Summary.Successful, s.Summary.Total)
}

// Truncate shortens s to at most n runes, appending "..." when it cut.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// Head returns at most the first n runes of s.
func Head(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
