/*
PURPOSE:
  Sends a single prompt straight to the Gemini API, bypassing the gateway.
  Used to tell "the gateway is broken" apart from "Gemini is broken".

REQUIREMENTS:
  User-specified:
  - Prompt from the command line, reply printed as "Gemini: <text>".
  - Dump the raw response when it has no text.

  Implementation-discovered:
  - The API key comes from configuration/env, never from source.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli (gemini command)
  - Dependencies: google.golang.org/genai

ERROR HANDLING:
  - Missing API key and SDK errors are returned to the caller.
*/

package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

// ErrNoAPIKey is returned when no key is configured.
var ErrNoAPIKey = errors.New("no Gemini API key configured (set GEMINI_API_KEY)")

// Options configures the client.
type Options struct {
	APIKey string
	Model  string
	// BaseURL overrides the API endpoint; empty uses the SDK default.
	BaseURL    string
	HTTPClient *http.Client
}

// Client wraps a genai client bound to one model.
type Client struct {
	client *genai.Client
	model  string
}

// Reply is the outcome of one prompt.
type Reply struct {
	Text string
	// Raw is the indented response document, for replies without text.
	Raw string
}

// New creates a Client.
func New(ctx context.Context, opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	if opts.Model == "" {
		return nil, errors.New("gemini model is required")
	}

	cc := &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if opts.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	c, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &Client{client: c, model: opts.Model}, nil
}

// Send posts prompt to the configured model.
func (c *Client) Send(ctx context.Context, prompt string) (Reply, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return Reply{}, err
	}

	if text := resp.Text(); text != "" {
		return Reply{Text: text}, nil
	}

	raw, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return Reply{}, fmt.Errorf("unexpected response format: %w", err)
	}
	return Reply{Raw: string(raw)}, nil
}
