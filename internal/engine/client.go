/*
PURPOSE:
  HTTP client for the AI gateway.
  Handles model listing, provider status and the ask-ai completion call.

REQUIREMENTS:
  User-specified:
  - Check that the gateway is up before probing anything.
  - Send {"prompt", "model"} to /api/ask-ai.

  Implementation-discovered:
  - Each call gets its own deadline; the shared http.Client has none so
    the 5s/10s/60s bounds can differ per endpoint.
  - Transport failures must be distinguishable from request construction
    failures so the probe can classify them (see TransportError).

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine (Prober, Runner), internal/cli (status)
  - Uses: internal/output

ERROR HANDLING:
  - No retries anywhere. A failed call is reported once.

IMPLEMENTATION RULES:
  - Use net/http with context deadlines.
  - Close every response body.

USAGE:
  g := engine.NewGateway("http://localhost:3001")
  err := g.CheckConnectivity(ctx, 5*time.Second)
  code, body, err := g.Ask(ctx, "gemini-2.5-pro", prompt, 60*time.Second)

SELF-HEALING INSTRUCTIONS:
  - If the gateway API changes, update the endpoint constants.

RELATED FILES:
  - internal/engine/probe.go
*/

package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/daryltucker/gateway-probe/internal/model"
	"github.com/daryltucker/gateway-probe/internal/output"
)

const (
	modelsPath = "/api/models"
	askPath    = "/api/ask-ai"
)

// Gateway talks to one gateway base URL.
type Gateway struct {
	BaseURL string
	Client  *http.Client
}

// NewGateway creates a Gateway for baseURL.
func NewGateway(baseURL string) *Gateway {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	return &Gateway{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Transport: transport},
	}
}

// TransportError wraps a failure that happened on the wire: connecting,
// sending, waiting for or reading the response.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// CheckConnectivity issues a bounded GET against the model listing.
// A nil error means the gateway answered 200.
func (g *Gateway) CheckConnectivity(ctx context.Context, timeout time.Duration) error {
	code, _, err := g.get(ctx, modelsPath, timeout)
	if err != nil {
		return fmt.Errorf("cannot connect to server: %w", err)
	}
	if code != http.StatusOK {
		return fmt.Errorf("server responded with status %d", code)
	}
	return nil
}

// ProviderStatus returns the gateway's "connected" map in document order.
func (g *Gateway) ProviderStatus(ctx context.Context, timeout time.Duration) ([]output.ProviderConnection, error) {
	code, body, err := g.get(ctx, modelsPath, timeout)
	if err != nil {
		return nil, err
	}
	if code != http.StatusOK {
		return nil, fmt.Errorf("failed to get model status: %d", code)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("model status is not valid JSON")
	}

	var conns []output.ProviderConnection
	gjson.GetBytes(body, "connected").ForEach(func(key, value gjson.Result) bool {
		conns = append(conns, output.ProviderConnection{Provider: key.String(), Connected: value.Bool()})
		return true
	})
	return conns, nil
}

// ListModels fetches and decodes the model listing.
func (g *Gateway) ListModels(ctx context.Context, timeout time.Duration) (*model.ModelListing, error) {
	code, body, err := g.get(ctx, modelsPath, timeout)
	if err != nil {
		return nil, err
	}
	if code != http.StatusOK {
		return nil, fmt.Errorf("failed to get models: %d", code)
	}
	var list model.ModelListing
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("invalid model listing: %w", err)
	}
	return &list, nil
}

// Ask posts a prompt to one model and returns the raw status and body.
// Wire-level failures are returned as *TransportError.
func (g *Gateway) Ask(ctx context.Context, modelID, prompt string, timeout time.Duration) (int, []byte, error) {
	reqBody, err := json.Marshal(map[string]string{
		"prompt": prompt,
		"model":  modelID,
	})
	if err != nil {
		return 0, nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+askPath, bytes.NewReader(reqBody))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return g.do(req)
}

func (g *Gateway) get(ctx context.Context, path string, timeout time.Duration) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.BaseURL+path, nil)
	if err != nil {
		return 0, nil, err
	}
	return g.do(req)
}

func (g *Gateway) do(req *http.Request) (int, []byte, error) {
	resp, err := g.Client.Do(req)
	if err != nil {
		return 0, nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, &TransportError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	return resp.StatusCode, body, nil
}
