package gemini

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeGemini(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/models/gemini-2.5-flash:generateContent") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewRequiresKey(t *testing.T) {
	_, err := New(context.Background(), Options{Model: "gemini-2.5-flash"})
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestSendText(t *testing.T) {
	srv := fakeGemini(t, `{"candidates":[{"content":{"role":"model","parts":[{"text":"Bonjour!"}]}}]}`)

	c, err := New(context.Background(), Options{APIKey: "test-key", Model: "gemini-2.5-flash", BaseURL: srv.URL + "/", HTTPClient: srv.Client()})
	require.NoError(t, err)

	reply, err := c.Send(context.Background(), "say hi")
	require.NoError(t, err)
	assert.Equal(t, "Bonjour!", reply.Text)
	assert.Empty(t, reply.Raw)
}

func TestSendWithoutText(t *testing.T) {
	srv := fakeGemini(t, `{"candidates":[],"promptFeedback":{"blockReason":"SAFETY"}}`)

	c, err := New(context.Background(), Options{APIKey: "test-key", Model: "gemini-2.5-flash", BaseURL: srv.URL + "/", HTTPClient: srv.Client()})
	require.NoError(t, err)

	reply, err := c.Send(context.Background(), "say hi")
	require.NoError(t, err)
	assert.Empty(t, reply.Text)
	assert.Contains(t, reply.Raw, "SAFETY")
}
