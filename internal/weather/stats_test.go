package weather

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seriesAt(values ...float64) []Point {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]Point, len(values))
	for i, v := range values {
		points[i] = Point{Timestamp: base.Add(time.Duration(i) * time.Hour), Value: v}
	}
	return points
}

func TestSummarizeEmpty(t *testing.T) {
	_, err := Summarize(nil)
	assert.ErrorIs(t, err, ErrEmptySeries)

	_, err = Summarize([]Point{})
	assert.ErrorIs(t, err, ErrEmptySeries)
}

func TestSummarizeSinglePoint(t *testing.T) {
	points := seriesAt(7.5)

	sum, err := Summarize(points)

	require.NoError(t, err)
	assert.Equal(t, 7.5, sum.Mean)
	assert.Equal(t, 0.0, sum.StdDev)
	assert.False(t, sum.HasBand())
	assert.Equal(t, points, sum.Upper)
	assert.Equal(t, points, sum.Lower)
}

func TestSummarizePopulationStdDev(t *testing.T) {
	sum, err := Summarize(seriesAt(1, 2, 3))

	require.NoError(t, err)
	assert.InDelta(t, 2.0, sum.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(2.0/3.0), sum.StdDev, 1e-12)
	assert.InDelta(t, 0.8165, sum.StdDev, 1e-4)
	assert.True(t, sum.HasBand())
}

func TestSummarizeBandFollowsEachPoint(t *testing.T) {
	points := seriesAt(2, 4, 4, 4, 5, 5, 7, 9)

	sum, err := Summarize(points)

	require.NoError(t, err)
	assert.InDelta(t, 5.0, sum.Mean, 1e-12)
	assert.InDelta(t, 2.0, sum.StdDev, 1e-12)
	require.Len(t, sum.Upper, len(points))
	require.Len(t, sum.Lower, len(points))
	for i, p := range points {
		assert.Equal(t, p.Timestamp, sum.Upper[i].Timestamp)
		assert.Equal(t, p.Timestamp, sum.Lower[i].Timestamp)
		assert.InDelta(t, p.Value+2, sum.Upper[i].Value, 1e-12)
		assert.InDelta(t, p.Value-2, sum.Lower[i].Value, 1e-12)
	}
}

func TestSummarizeConstantSeriesHasNoBand(t *testing.T) {
	sum, err := Summarize(seriesAt(-3, -3, -3))

	require.NoError(t, err)
	assert.Equal(t, -3.0, sum.Mean)
	assert.Equal(t, 0.0, sum.StdDev)
	assert.False(t, sum.HasBand())
}

func TestSummarizeDoesNotModifyInput(t *testing.T) {
	points := seriesAt(1, 5)
	orig := append([]Point(nil), points...)

	_, err := Summarize(points)

	require.NoError(t, err)
	assert.Equal(t, orig, points)
}
