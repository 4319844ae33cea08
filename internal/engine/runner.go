/*
PURPOSE:
  High-level runner that orchestrates a probe run.
  Connectivity check -> provider status -> probe each model -> summary.

REQUIREMENTS:
  User-specified:
  - Refuse to start when the gateway is not reachable.
  - Probe models strictly one after another, in catalog order,
    with a fixed pause between probes.
  - Save the summary to a file at the end of the run.

  Implementation-discovered:
  - Needs to report progress to CLI.
  - The provider status display is informative only; its failure is a warning.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Uses: internal/engine (Gateway, Prober), internal/output,
    internal/metrics, internal/history

ERROR HANDLING:
  - ErrGatewayUnreachable is the only fatal condition.
  - Per-probe failures are recorded; persistence failures are logged.

IMPLEMENTATION RULES:
  - Exactly one ProbeResult per identifier handed to Run.
  - No goroutines. No retries.

USAGE:
  r := engine.NewRunner(cfg, os.Stdout)
  sum, err := r.Run(ctx, ids)
  r.Persist(sum)

RELATED FILES:
  - internal/engine/client.go
  - internal/engine/probe.go
*/

package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/daryltucker/gateway-probe/internal/config"
	"github.com/daryltucker/gateway-probe/internal/history"
	"github.com/daryltucker/gateway-probe/internal/metrics"
	"github.com/daryltucker/gateway-probe/internal/model"
	"github.com/daryltucker/gateway-probe/internal/output"
)

// ErrGatewayUnreachable aborts a run before any probe is sent.
var ErrGatewayUnreachable = errors.New("gateway unreachable")

// Runner drives one probe run.
type Runner struct {
	Gateway        *Gateway
	Prober         *Prober
	ConnectTimeout time.Duration
	StatusTimeout  time.Duration
	Delay          time.Duration

	Report  *output.Reporter
	Metrics *metrics.Recorder
	// CSV, when set, receives every result as soon as it is classified.
	// Otherwise ExportCSV opens one in OutputDir for the duration of Run.
	CSV       *output.CSVWriter
	ExportCSV bool

	// Persistence settings used by Persist.
	OutputDir   string
	Save        bool
	MetricsFile string
	HistoryPath string

	Sleep func(time.Duration)
	Now   func() time.Time
	NewID func() string

	// started is when the current run passed the connectivity check; result
	// files of one run share it in their names.
	started time.Time
}

// NewRunner wires a Runner from configuration.
func NewRunner(cfg *config.Config, w io.Writer) *Runner {
	gw := NewGateway(cfg.BaseURL)
	return &Runner{
		Gateway: gw,
		Prober: &Prober{
			Gateway: gw,
			Prompt:  cfg.Prompt,
			Timeout: cfg.ProbeTimeout,
		},
		ConnectTimeout: cfg.ConnectTimeout,
		StatusTimeout:  cfg.StatusTimeout,
		Delay:          cfg.Delay,
		Report:         output.NewReporter(w),
		Metrics:        metrics.New(),
		OutputDir:      cfg.OutputDir,
		Save:           cfg.Save,
		ExportCSV:      cfg.CSV,
		MetricsFile:    cfg.MetricsFile,
		HistoryPath:    cfg.HistoryPath,
	}
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *Runner) sleep(d time.Duration) {
	if r.Sleep != nil {
		r.Sleep(d)
		return
	}
	time.Sleep(d)
}

func (r *Runner) newID() string {
	if r.NewID != nil {
		return r.NewID()
	}
	return uuid.NewString()
}

// Run probes every identifier in ids, in order.
// If ctx is cancelled mid-run the results gathered so far are returned
// together with the context error.
func (r *Runner) Run(ctx context.Context, ids []string) (*model.RunSummary, error) {
	if err := r.Gateway.CheckConnectivity(ctx, r.ConnectTimeout); err != nil {
		r.Report.Reachable(false, err.Error())
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnreachable, err)
	}
	r.Report.Reachable(true, "")

	runID := r.newID()
	r.started = r.now()
	r.Report.RunStart(len(ids), r.started)

	if r.CSV == nil && r.ExportCSV {
		w, err := output.NewCSVWriter(r.CSVPath(r.started))
		if err != nil {
			output.Logger.Error("Failed to init CSV writer", "error", err)
		} else {
			r.CSV = w
			defer func() {
				if err := w.Close(); err != nil {
					output.Logger.Error("Failed to close CSV file", "path", w.Path(), "error", err)
				} else {
					r.Report.Saved(w.Path())
				}
				r.CSV = nil
			}()
		}
	}

	conns, err := r.Gateway.ProviderStatus(ctx, r.StatusTimeout)
	if err != nil {
		output.Logger.Warn("Provider status unavailable", "url", r.Gateway.BaseURL, "error", err)
	} else {
		r.Report.Providers(conns)
	}

	results := make([]model.ProbeResult, 0, len(ids))
	for i, id := range ids {
		if i > 0 && r.Delay > 0 {
			r.sleep(r.Delay)
		}

		r.Report.ProbeStart(i+1, len(ids), id)
		res := r.Prober.Probe(ctx, id)
		results = append(results, res)
		r.Report.ProbeDone(res)
		output.Logger.Debug("Probe finished", "run_id", runID, "model", id, "status", res.Status, "seconds", res.ResponseTime)

		if r.Metrics != nil {
			r.Metrics.Observe(res)
		}
		if r.CSV != nil {
			if err := r.CSV.Write(res); err != nil {
				output.Logger.Error("Failed to write result to CSV", "model", id, "error", err)
			}
		}

		if err := ctx.Err(); err != nil {
			sum := model.NewSummary(runID, r.Gateway.BaseURL, results, r.now())
			return sum, fmt.Errorf("run interrupted after %d of %d models: %w", len(results), len(ids), err)
		}
	}

	sum := model.NewSummary(runID, r.Gateway.BaseURL, results, r.now())
	if r.Metrics != nil {
		r.Metrics.Finish(sum)
	}
	r.Report.Summary(sum)
	return sum, nil
}

// Persist writes the summary to every configured sink. Failures are logged
// and collected but never returned as fatal; the run already finished.
func (r *Runner) Persist(sum *model.RunSummary) []error {
	var errs []error

	if r.Save {
		path, err := output.SaveSummaryJSON(r.OutputDir, output.DefaultResultName(r.resultTime(sum), "json"), sum)
		if err != nil {
			output.Logger.Error("Failed to save results", "dir", r.OutputDir, "error", err)
			errs = append(errs, err)
		} else {
			r.Report.Saved(path)
		}
	}

	if r.MetricsFile != "" && r.Metrics != nil {
		if err := r.Metrics.WriteFile(r.MetricsFile); err != nil {
			output.Logger.Error("Failed to write metrics file", "path", r.MetricsFile, "error", err)
			errs = append(errs, err)
		}
	}

	if r.HistoryPath != "" {
		if err := recordHistory(r.HistoryPath, sum); err != nil {
			output.Logger.Warn("Failed to record run history", "path", r.HistoryPath, "error", err)
			errs = append(errs, err)
		}
	}

	return errs
}

// resultTime is the timestamp used in result file names: the run start when
// known, the summary time otherwise.
func (r *Runner) resultTime(sum *model.RunSummary) time.Time {
	if !r.started.IsZero() {
		return r.started
	}
	return sum.Timestamp
}

// CSVPath returns where the CSV export for a run started at `at` goes.
func (r *Runner) CSVPath(at time.Time) string {
	return filepath.Join(r.OutputDir, output.DefaultResultName(at, "csv"))
}

func recordHistory(path string, sum *model.RunSummary) error {
	st, err := history.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()
	return st.Record(sum)
}
