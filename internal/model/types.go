/*
PURPOSE:
  Defines the core data structures used throughout Gateway Probe.
  These models represent probe outcomes and the per-run summary.

REQUIREMENTS:
  User-specified:
  - One result per probed model: status, truncated response, error, timing.
  - Aggregate counts, success rate and a grouping by status.

  Implementation-discovered:
  - JSON tags must match the result files produced by earlier tooling
    (summary/results/by_status/timestamp).
  - Status is a closed set; anything else is a programming error.

ARCHITECTURE INTEGRATION:
  - Used by: internal/engine, internal/output, internal/history, internal/metrics
  - Shared across boundaries.

ERROR HANDLING:
  - None (pure data structs and arithmetic).

IMPLEMENTATION RULES:
  - Results are values; never mutate one after it is appended to a summary.
  - NewSummary is the only way a RunSummary is built.

USAGE:
  sum := model.NewSummary(runID, baseURL, results, time.Now())

SELF-HEALING INSTRUCTIONS:
  - If a new status is added, update AllStatuses and the engine classifier.

RELATED FILES:
  - internal/output/json.go
  - internal/output/csv.go

MAINTENANCE:
  - Update when the persisted file layout changes.
*/

package model

import (
	"math"
	"time"
)

// Status is the outcome of a single probe.
type Status string

const (
	StatusSuccess         Status = "success"
	StatusError           Status = "error"
	StatusTimeout         Status = "timeout"
	StatusConnectionError Status = "connection_error"
	StatusUnexpectedError Status = "unexpected_error"
)

// AllStatuses lists every outcome in display order.
var AllStatuses = []Status{
	StatusSuccess,
	StatusError,
	StatusTimeout,
	StatusConnectionError,
	StatusUnexpectedError,
}

// Valid reports whether s is one of the known outcomes.
func (s Status) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ProbeResult represents the outcome of a single probe.
type ProbeResult struct {
	Model        string    `json:"model"`
	Status       Status    `json:"status"`
	Response     string    `json:"response,omitempty"`
	Error        string    `json:"error,omitempty"`
	ResponseTime float64   `json:"response_time"` // seconds, two decimals
	Timestamp    time.Time `json:"timestamp"`
}

// Totals is the counting part of a run summary.
type Totals struct {
	Total       int     `json:"total"`
	Successful  int     `json:"successful"`
	Failed      int     `json:"failed"`
	SuccessRate float64 `json:"success_rate"`
}

// RunSummary aggregates every ProbeResult of one invocation.
type RunSummary struct {
	RunID     string              `json:"run_id"`
	BaseURL   string              `json:"base_url"`
	Summary   Totals              `json:"summary"`
	Results   []ProbeResult       `json:"results"`
	ByStatus  map[Status][]string `json:"by_status"`
	Timestamp time.Time           `json:"timestamp"`
}

// NewSummary computes totals and the status grouping over results.
// The results slice is kept in the order given.
func NewSummary(runID, baseURL string, results []ProbeResult, at time.Time) *RunSummary {
	sum := &RunSummary{
		RunID:     runID,
		BaseURL:   baseURL,
		Results:   results,
		ByStatus:  make(map[Status][]string),
		Timestamp: at,
	}
	if sum.Results == nil {
		sum.Results = []ProbeResult{}
	}

	for _, r := range results {
		if r.Status == StatusSuccess {
			sum.Summary.Successful++
		} else {
			sum.Summary.Failed++
		}
		sum.ByStatus[r.Status] = append(sum.ByStatus[r.Status], r.Model)
	}
	sum.Summary.Total = len(results)
	sum.Summary.SuccessRate = SuccessRate(sum.Summary.Successful, sum.Summary.Total)
	return sum
}

// StatusOrder returns the statuses present in the summary in the order
// they first appear in the results.
func (s *RunSummary) StatusOrder() []Status {
	seen := make(map[Status]bool)
	var order []Status
	for _, r := range s.Results {
		if !seen[r.Status] {
			seen[r.Status] = true
			order = append(order, r.Status)
		}
	}
	return order
}

// SuccessRate is successful/total as a percentage rounded to one decimal.
// An empty run has a rate of 0.
func SuccessRate(successful, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(successful)/float64(total)*1000) / 10
}

// Seconds rounds d to two decimals of a second.
func Seconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*100) / 100
}

// GatewayModel is one entry of the gateway's model listing.
type GatewayModel struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Provider      string `json:"provider"`
	Description   string `json:"description"`
	ContextLength int64  `json:"contextLength"`
	// Available is free text on most gateways ("API key required") but some
	// report a boolean, so it is kept untyped.
	Available any  `json:"available"`
	Connected bool `json:"connected"`
}

// DisplayName is the model name, or its id when the gateway sent none.
func (m GatewayModel) DisplayName() string {
	if m.Name != "" {
		return m.Name
	}
	return m.ID
}

// ModelListing is the decoded /api/models document.
type ModelListing struct {
	Models          []GatewayModel `json:"models"`
	TotalModels     int            `json:"totalModels"`
	ConnectedModels int            `json:"connectedModels"`
	Error           string         `json:"error,omitempty"`
}
