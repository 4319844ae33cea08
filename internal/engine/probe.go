/*
PURPOSE:
  Sends the test prompt to a single model and classifies the outcome.

REQUIREMENTS:
  User-specified:
  - One POST /api/ask-ai per model, bounded by the probe timeout.
  - Exactly one of success, error, timeout, connection_error,
    unexpected_error per probe.
  - Reply text capped at 200 characters plus "...".

  Implementation-discovered:
  - Only a JSON string in "response" is a reply. null, numbers, objects
    and arrays carry no text and are unexpected_error.
  - A cancelled context is not a timeout.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine.Runner
  - Uses: internal/engine.Gateway (Ask)

ERROR HANDLING:
  - Probe never returns an error; every failure becomes a ProbeResult.

IMPLEMENTATION RULES:
  - All status decisions live in classify.
*/

package engine

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"github.com/daryltucker/gateway-probe/internal/model"
	"github.com/daryltucker/gateway-probe/internal/output"
)

const (
	// ResponsePreviewLen caps the stored reply text.
	ResponsePreviewLen = 200
	// ErrorBodyPreviewLen caps the raw body quoted in an HTTP error.
	ErrorBodyPreviewLen = 100
)

// Prober sends the test prompt to one model at a time.
type Prober struct {
	Gateway *Gateway
	Prompt  string
	Timeout time.Duration
	Now     func() time.Time
}

// Probe runs one attempt against modelID. It always returns a result;
// no error escapes.
func (p *Prober) Probe(ctx context.Context, modelID string) model.ProbeResult {
	now := p.Now
	if now == nil {
		now = time.Now
	}

	start := now()
	code, body, err := p.Gateway.Ask(ctx, modelID, p.Prompt, p.Timeout)
	elapsed := now().Sub(start)

	status, response, detail := classify(code, body, err, p.Timeout)
	return model.ProbeResult{
		Model:        modelID,
		Status:       status,
		Response:     response,
		Error:        detail,
		ResponseTime: model.Seconds(elapsed),
		Timestamp:    start,
	}
}

// classify maps the outcome of one ask-ai exchange onto exactly one status.
func classify(code int, body []byte, err error, timeout time.Duration) (model.Status, string, string) {
	if err != nil {
		var te *TransportError
		if !errors.As(err, &te) {
			return model.StatusUnexpectedError, "", err.Error()
		}
		if isTimeout(err) {
			return model.StatusTimeout, "", fmt.Sprintf("Request timed out after %g seconds", timeout.Seconds())
		}
		if errors.Is(err, context.Canceled) {
			return model.StatusUnexpectedError, "", "probe cancelled: " + err.Error()
		}
		return model.StatusConnectionError, "", err.Error()
	}

	if code != http.StatusOK {
		return model.StatusError, "", fmt.Sprintf("HTTP %d: %s", code, output.Head(string(body), ErrorBodyPreviewLen))
	}
	if !gjson.ValidBytes(body) {
		return model.StatusUnexpectedError, "", "invalid JSON in response body: " + output.Head(string(body), ErrorBodyPreviewLen)
	}

	field := gjson.GetBytes(body, "response")
	if !field.Exists() {
		return model.StatusError, "", "No response field in API response"
	}
	if field.Type != gjson.String {
		return model.StatusUnexpectedError, "", fmt.Sprintf("response field is not text: %s", output.Head(field.Raw, ErrorBodyPreviewLen))
	}
	return model.StatusSuccess, output.Truncate(field.String(), ResponsePreviewLen), ""
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
