package report_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/duim/internal/report"
)

func TestRenderBar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		percent float64
		width   int
		want    string
	}{
		{name: "empty", percent: 0, width: 10, want: "          "},
		{name: "full", percent: 100, width: 10, want: "=========="},
		{name: "half", percent: 50, width: 10, want: "=====     "},
		{name: "rounds down", percent: 61, width: 20, want: "============        "},
		{name: "half to even down", percent: 25, width: 10, want: "==        "},
		{name: "half to even up", percent: 35, width: 10, want: "====      "},
		{name: "zero width", percent: 40, width: 0, want: ""},
		{name: "negative width", percent: 40, width: -3, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := report.RenderBar(tt.percent, tt.width)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderBarShape(t *testing.T) {
	t.Parallel()

	for _, width := range []int{0, 1, 7, 20, 33} {
		prev := -1

		for p := 0.0; p <= 100; p += 0.5 {
			bar, err := report.RenderBar(p, width)
			require.NoError(t, err)
			require.Len(t, bar, width)
			require.Empty(t, strings.Trim(bar, "= "), "bar %q has unexpected characters", bar)
			require.False(t, strings.Contains(strings.TrimRight(bar, " "), " "), "fill is not contiguous: %q", bar)

			filled := strings.Count(bar, "=")
			assert.GreaterOrEqual(t, filled, prev, "fill decreased at %v%% width %d", p, width)
			prev = filled
		}
	}
}

func TestRenderBarOutOfRange(t *testing.T) {
	t.Parallel()

	for _, p := range []float64{-0.1, -50, 100.01, 250, math.NaN(), math.Inf(1)} {
		_, err := report.RenderBar(p, 20)
		require.ErrorIs(t, err, report.ErrPercentRange, "percent %v", p)
	}
}
