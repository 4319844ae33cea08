package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSummaryCounts(t *testing.T) {
	results := []ProbeResult{
		{Model: "a", Status: StatusSuccess},
		{Model: "b", Status: StatusTimeout},
		{Model: "c", Status: StatusSuccess},
		{Model: "d", Status: StatusError},
		{Model: "e", Status: StatusTimeout},
		{Model: "f", Status: StatusConnectionError},
	}
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	sum := NewSummary("run-1", "http://gw", results, at)

	require.Equal(t, 6, sum.Summary.Total)
	assert.Equal(t, 2, sum.Summary.Successful)
	assert.Equal(t, 4, sum.Summary.Failed)
	assert.Equal(t, sum.Summary.Total, sum.Summary.Successful+sum.Summary.Failed)
	assert.Equal(t, 33.3, sum.Summary.SuccessRate)
	assert.Equal(t, []string{"b", "e"}, sum.ByStatus[StatusTimeout])
	assert.Equal(t, []Status{StatusSuccess, StatusTimeout, StatusError, StatusConnectionError}, sum.StatusOrder())
	assert.Equal(t, at, sum.Timestamp)
}

func TestNewSummaryEmpty(t *testing.T) {
	sum := NewSummary("run", "http://gw", nil, time.Now())
	assert.Equal(t, 0, sum.Summary.Total)
	assert.Equal(t, 0.0, sum.Summary.SuccessRate)
	assert.NotNil(t, sum.Results)
	assert.Empty(t, sum.StatusOrder())
}

func TestSuccessRate(t *testing.T) {
	cases := []struct {
		successful, total int
		want              float64
	}{
		{0, 0, 0},
		{0, 5, 0},
		{5, 5, 100},
		{1, 3, 33.3},
		{2, 3, 66.7},
		{17, 25, 68},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SuccessRate(tc.successful, tc.total), "%d/%d", tc.successful, tc.total)
	}
}

func TestSeconds(t *testing.T) {
	assert.Equal(t, 1.23, Seconds(1234*time.Millisecond))
	assert.Equal(t, 0.0, Seconds(0))
	assert.Equal(t, 60.01, Seconds(60*time.Second+7*time.Millisecond))
}

func TestStatusValid(t *testing.T) {
	for _, s := range AllStatuses {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, Status("unknown").Valid())
}
