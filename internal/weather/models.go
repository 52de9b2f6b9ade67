package weather

import (
	"strings"
	"time"
)

// Location represents a logical place for which we chart weather.
// City must be provided; Country is optional.
type Location struct {
	City    string `json:"city"`
	Country string `json:"country,omitempty"`
}

// Key returns a canonical string key for indexing this location in stores.
func (l Location) Key() string {
	return strings.ToLower(l.City) + ":" + strings.ToLower(l.Country)
}

// Query returns the "city,country" form accepted by both upstream services.
func (l Location) Query() string {
	if l.Country == "" {
		return l.City
	}
	return l.City + "," + l.Country
}

// Sample is one reconstructed weather reading at a point in time.
type Sample struct {
	Timestamp   time.Time `json:"timestamp"`
	Temperature float64   `json:"temperatureC"`
	Pressure    float64   `json:"pressureHpa"`
	Humidity    float64   `json:"humidityPercent"`
	WindSpeed   float64   `json:"windSpeed"`
}

// Point is a single (timestamp, value) pair of a chartable series.
type Point struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// Current is the latest observation returned by the current-weather endpoint.
type Current struct {
	Timestamp   time.Time `json:"timestamp"`
	Temperature float64   `json:"temperatureC"`
	FeelsLike   float64   `json:"feelsLikeC"`
	Humidity    float64   `json:"humidityPercent"`
	Pressure    float64   `json:"pressureHpa"`
	WindSpeed   float64   `json:"windSpeed"`
	Color       Color     `json:"color"`
}

// Report is a stored snapshot of current weather plus the short forecast.
type Report struct {
	ID        string    `json:"id"`
	Provider  string    `json:"provider"`
	Location  Location  `json:"location"`
	FetchedAt time.Time `json:"fetchedAt"` // always UTC
	Current   Current   `json:"current"`

	// Forecast holds up to nine three-hour spaced samples, ordered by Timestamp.
	Forecast []Sample `json:"forecast"`
}

// SeriesStats is one metric of a timeline with its summary and optional band.
type SeriesStats struct {
	Metric Metric  `json:"metric"`
	Title  string  `json:"title"`
	Unit   string  `json:"unit"`
	Color  Color   `json:"color"`
	Points []Point `json:"points"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdDev"`
	Upper  []Point `json:"upper,omitempty"`
	Lower  []Point `json:"lower,omitempty"`
}

// StatsReport is the response of a timeline statistics query.
type StatsReport struct {
	Provider string        `json:"provider"`
	Location Location      `json:"location"`
	From     time.Time     `json:"from"`
	To       time.Time     `json:"to"`
	Interval Interval      `json:"interval"`
	Series   []SeriesStats `json:"series"`
}

// Lookup returns the series for metric m.
func (r StatsReport) Lookup(m Metric) (SeriesStats, bool) {
	for _, s := range r.Series {
		if s.Metric == m {
			return s, true
		}
	}
	return SeriesStats{}, false
}
