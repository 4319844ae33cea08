package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/daryltucker/gateway-probe/internal/model"
)

func listing() *model.ModelListing {
	return &model.ModelListing{
		TotalModels:     3,
		ConnectedModels: 1,
		Models: []model.GatewayModel{
			{ID: "gemini-2.5-pro", Name: "Gemini 2.5 Pro", Provider: "google", ContextLength: 1048576, Available: "API key required"},
			{ID: "ollama", Provider: "ollama", ContextLength: 128000, Connected: true},
			{ID: "gemini-2.0-flash", Name: "Gemini 2.0 Flash", Provider: "google", ContextLength: 1000000, Available: true},
		},
	}
}

func TestGroupByProvider(t *testing.T) {
	order, groups := GroupByProvider(append(listing().Models, model.GatewayModel{ID: "mystery"}))
	assert.Equal(t, []string{"google", "ollama", "unknown"}, order)
	assert.Len(t, groups["google"], 2)
	assert.Equal(t, "mystery", groups["unknown"][0].ID)
}

func TestModelStatus(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf).ModelStatus(listing(), time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
	out := buf.String()

	assert.Contains(t, out, "📊 Total Models: 3")
	assert.Contains(t, out, "🕒 Test Time: 2025-01-02 03:04:05")
	assert.Contains(t, out, "🔵 GOOGLE MODELS:")
	assert.Contains(t, out, "⚫ OLLAMA MODELS:")
	assert.Contains(t, out, "Context: 1,048,576 tokens")
	assert.Contains(t, out, "Status: API key required")
	assert.Contains(t, out, "Status: true")
	assert.Contains(t, out, "  ✅ ollama\n", "name falls back to id")
	assert.Contains(t, out, "Status: Unknown")
	assert.Less(t, strings.Index(out, "Gemini 2.5 Pro"), strings.Index(out, "Gemini 2.0 Flash"))
	assert.Less(t, strings.Index(out, "Gemini 2.0 Flash"), strings.Index(out, "OLLAMA MODELS"), "models grouped by provider")
}

func TestFirstConnected(t *testing.T) {
	m, ok := FirstConnected(listing())
	assert.True(t, ok)
	assert.Equal(t, "ollama", m.ID)

	_, ok = FirstConnected(&model.ModelListing{})
	assert.False(t, ok)
}

func TestSmokeTest(t *testing.T) {
	m := model.GatewayModel{ID: "ollama"}

	var buf bytes.Buffer
	NewReporter(&buf).SmokeTest(m, 200, []byte(strings.Repeat("z", 120)), nil)
	assert.Contains(t, buf.String(), "Response preview: "+strings.Repeat("z", 100)+"...")

	buf.Reset()
	NewReporter(&buf).SmokeTest(m, 502, nil, nil)
	assert.Contains(t, buf.String(), "❌ Test failed: 502")

	buf.Reset()
	NewReporter(&buf).SmokeTest(m, 0, nil, errors.New("refused"))
	assert.Contains(t, buf.String(), "❌ Test failed: refused")
}
