package engine

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daryltucker/gateway-probe/internal/model"
)

func newProber(g *Gateway, timeout time.Duration) *Prober {
	return &Prober{Gateway: g, Prompt: "hello", Timeout: timeout}
}

func TestProbeSuccess(t *testing.T) {
	fg := newFakeGateway(t)
	fg.on("gemini-2.5-pro", respondJSON(http.StatusOK, `{"response":"Hello there!","model":"gemini-2.5-pro"}`))

	res := newProber(fg.gateway(), time.Second).Probe(context.Background(), "gemini-2.5-pro")

	assert.Equal(t, model.StatusSuccess, res.Status)
	assert.Equal(t, "Hello there!", res.Response)
	assert.Empty(t, res.Error)
	assert.Equal(t, "gemini-2.5-pro", res.Model)
	assert.False(t, res.Timestamp.IsZero())
	assert.GreaterOrEqual(t, res.ResponseTime, 0.0)
}

func TestProbeTruncatesLongResponse(t *testing.T) {
	fg := newFakeGateway(t)
	long := repeat("x", 250)
	exact := repeat("y", 200)
	fg.on("long", respondJSON(http.StatusOK, `{"response":`+jsonString(long)+`}`))
	fg.on("exact", respondJSON(http.StatusOK, `{"response":`+jsonString(exact)+`}`))
	p := newProber(fg.gateway(), time.Second)

	res := p.Probe(context.Background(), "long")
	require.Equal(t, model.StatusSuccess, res.Status)
	assert.Equal(t, repeat("x", 200)+"...", res.Response)

	res = p.Probe(context.Background(), "exact")
	require.Equal(t, model.StatusSuccess, res.Status)
	assert.Equal(t, exact, res.Response)
}

func TestProbeHTTPError(t *testing.T) {
	fg := newFakeGateway(t)
	fg.on("broken", respondJSON(http.StatusInternalServerError, repeat("e", 150)))

	res := newProber(fg.gateway(), time.Second).Probe(context.Background(), "broken")

	assert.Equal(t, model.StatusError, res.Status)
	assert.Equal(t, "HTTP 500: "+repeat("e", 100), res.Error)
	assert.Empty(t, res.Response)
}

func TestProbeMissingResponseField(t *testing.T) {
	fg := newFakeGateway(t)
	fg.on("quiet", respondJSON(http.StatusOK, `{"message":"nothing to see"}`))

	res := newProber(fg.gateway(), time.Second).Probe(context.Background(), "quiet")

	assert.Equal(t, model.StatusError, res.Status)
	assert.Equal(t, "No response field in API response", res.Error)
}

func TestProbeNullResponseIsNotSuccess(t *testing.T) {
	fg := newFakeGateway(t)
	fg.on("null", respondJSON(http.StatusOK, `{"response":null}`))

	res := newProber(fg.gateway(), time.Second).Probe(context.Background(), "null")

	assert.Equal(t, model.StatusUnexpectedError, res.Status)
	assert.Empty(t, res.Response)
	assert.Equal(t, "response field is not text: null", res.Error)
}

func TestProbeTimeout(t *testing.T) {
	fg := newFakeGateway(t)
	fg.on("slow", respondSlow(2*time.Second))

	res := newProber(fg.gateway(), 100*time.Millisecond).Probe(context.Background(), "slow")

	assert.Equal(t, model.StatusTimeout, res.Status)
	assert.Equal(t, "Request timed out after 0.1 seconds", res.Error)
	assert.GreaterOrEqual(t, res.ResponseTime, 0.1)
}

func TestProbeConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	g := NewGateway(url)
	t.Cleanup(g.Client.CloseIdleConnections)
	res := newProber(g, time.Second).Probe(context.Background(), "any")

	assert.Equal(t, model.StatusConnectionError, res.Status)
	assert.Contains(t, res.Error, "connect")
}

func TestProbeConnectionDropped(t *testing.T) {
	fg := newFakeGateway(t)
	fg.on("drop", dropConnection(t))

	res := newProber(fg.gateway(), time.Second).Probe(context.Background(), "drop")

	assert.Equal(t, model.StatusConnectionError, res.Status)
	assert.NotEmpty(t, res.Error)
}

func TestProbeInvalidURL(t *testing.T) {
	g := NewGateway("http://bad host")
	res := newProber(g, time.Second).Probe(context.Background(), "any")

	assert.Equal(t, model.StatusUnexpectedError, res.Status)
	assert.NotEmpty(t, res.Error)
}

type fakeNetTimeout struct{}

func (fakeNetTimeout) Error() string   { return "i/o timeout" }
func (fakeNetTimeout) Timeout() bool   { return true }
func (fakeNetTimeout) Temporary() bool { return true }

var _ net.Error = fakeNetTimeout{}

func TestClassify(t *testing.T) {
	timeout := 60 * time.Second
	cases := []struct {
		name   string
		code   int
		body   string
		err    error
		status model.Status
		detail string
	}{
		{name: "success", code: 200, body: `{"response":"ok"}`, status: model.StatusSuccess},
		{name: "empty string response", code: 200, body: `{"response":""}`, status: model.StatusSuccess},
		{name: "null response", code: 200, body: `{"response":null}`, status: model.StatusUnexpectedError, detail: "response field is not text: null"},
		{name: "object response", code: 200, body: `{"response":{"text":"ok"}}`, status: model.StatusUnexpectedError, detail: `response field is not text: {"text":"ok"}`},
		{name: "number response", code: 200, body: `{"response":42}`, status: model.StatusUnexpectedError, detail: "response field is not text: 42"},
		{name: "array response", code: 200, body: `{"response":["a"]}`, status: model.StatusUnexpectedError, detail: `response field is not text: ["a"]`},
		{name: "missing field", code: 200, body: `{"other":1}`, status: model.StatusError, detail: "No response field in API response"},
		{name: "http 404", code: 404, body: "not found", status: model.StatusError, detail: "HTTP 404: not found"},
		{name: "invalid json", code: 200, body: "<html>", status: model.StatusUnexpectedError, detail: "invalid JSON in response body: <html>"},
		{name: "deadline", err: &TransportError{Err: context.DeadlineExceeded}, status: model.StatusTimeout, detail: "Request timed out after 60 seconds"},
		{name: "net timeout", err: &TransportError{Err: fakeNetTimeout{}}, status: model.StatusTimeout, detail: "Request timed out after 60 seconds"},
		{name: "refused", err: &TransportError{Err: errors.New("dial tcp: connection refused")}, status: model.StatusConnectionError, detail: "dial tcp: connection refused"},
		{name: "cancelled", err: &TransportError{Err: context.Canceled}, status: model.StatusUnexpectedError, detail: "probe cancelled: context canceled"},
		{name: "other", err: errors.New("marshal failed"), status: model.StatusUnexpectedError, detail: "marshal failed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, _, detail := classify(tc.code, []byte(tc.body), tc.err, timeout)
			assert.Equal(t, tc.status, status)
			assert.Contains(t, model.AllStatuses, status)
			if tc.detail != "" {
				assert.Equal(t, tc.detail, detail)
			}
			if status == model.StatusSuccess {
				assert.Empty(t, detail)
			}
		})
	}
}
