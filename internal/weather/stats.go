package weather

import (
	"errors"
	"math"
)

// ErrEmptySeries is returned when statistics are requested for no points.
var ErrEmptySeries = errors.New("series has no points")

// Summary holds the mean and population standard deviation of a series
// together with its deviation band.
type Summary struct {
	Mean   float64
	StdDev float64

	// Upper and Lower are offset by StdDev from each point's own value,
	// not from Mean.
	Upper []Point
	Lower []Point
}

// HasBand reports whether the deviation band carries any spread worth drawing.
func (s Summary) HasBand() bool {
	return s.StdDev > 0
}

// Summarize computes the mean, the population standard deviation (divided by
// N) and the per-point deviation band of points.
func Summarize(points []Point) (Summary, error) {
	if len(points) == 0 {
		return Summary{}, ErrEmptySeries
	}

	n := float64(len(points))

	var sum float64
	for _, p := range points {
		sum += p.Value
	}
	mean := sum / n

	var sq float64
	for _, p := range points {
		d := p.Value - mean
		sq += d * d
	}
	stddev := math.Sqrt(sq / n)

	upper := make([]Point, len(points))
	lower := make([]Point, len(points))
	for i, p := range points {
		upper[i] = Point{Timestamp: p.Timestamp, Value: p.Value + stddev}
		lower[i] = Point{Timestamp: p.Timestamp, Value: p.Value - stddev}
	}

	return Summary{
		Mean:   mean,
		StdDev: stddev,
		Upper:  upper,
		Lower:  lower,
	}, nil
}
