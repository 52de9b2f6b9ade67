package charts

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/i474232898/weather-charts/internal/weather"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func hourly(values ...float64) []weather.Point {
	base := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	out := make([]weather.Point, len(values))
	for i, v := range values {
		out[i] = weather.Point{Timestamp: base.Add(time.Duration(i) * time.Hour), Value: v}
	}
	return out
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": PNG, "png": PNG, "PNG": PNG, " svg ": SVG} {
		got, err := ParseFormat(in)
		if err != nil {
			t.Fatalf("ParseFormat(%q): unexpected error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseFormat(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := ParseFormat("jpg"); err == nil {
		t.Fatal("expected error for jpg")
	}
	if SVG.ContentType() != "image/svg+xml" || PNG.ContentType() != "image/png" {
		t.Fatal("unexpected content types")
	}
}

func TestForecastBarPNG(t *testing.T) {
	base := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	var samples []weather.Sample
	for i, temp := range []float64{-12, -3, 4, 12, 19, 23, 28, 31, 8} {
		samples = append(samples, weather.Sample{Timestamp: base.Add(time.Duration(3*i) * time.Hour), Temperature: temp})
	}

	var buf bytes.Buffer
	if err := ForecastBar(&buf, samples, PNG); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Fatal("output is not a PNG")
	}
}

func TestForecastBarConstantTemperatureSVG(t *testing.T) {
	samples := []weather.Sample{
		{Timestamp: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), Temperature: 0},
		{Timestamp: time.Date(2024, 4, 1, 3, 0, 0, 0, time.UTC), Temperature: 0},
	}

	var buf bytes.Buffer
	if err := ForecastBar(&buf, samples, SVG); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "<svg") {
		t.Fatal("output is not an SVG document")
	}
}

func TestForecastBarEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := ForecastBar(&buf, nil, PNG)
	if !errors.Is(err, weather.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatal("nothing should be written for an empty forecast")
	}
}

func TestLineStatWithDeviation(t *testing.T) {
	l := Line{
		Title:         "Temperature",
		Unit:          "°C",
		Color:         weather.MetricTemperature.Color(),
		Points:        hourly(1, 4, 2, 8, 5, 7),
		Interval:      weather.Hourly,
		ShowDeviation: true,
	}

	var buf bytes.Buffer
	if err := LineStat(&buf, l, SVG); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<svg") {
		t.Fatal("output is not an SVG document")
	}
	for _, name := range []string{"Mean", "+σ", "-σ"} {
		if !strings.Contains(out, name) {
			t.Fatalf("legend is missing %q", name)
		}
	}
}

func TestLineStatOmitsBandWhenNotRequested(t *testing.T) {
	l := Line{Title: "Humidity", Unit: "%", Color: "#808000", Points: hourly(40, 55, 60), Interval: weather.ThreeHourly}

	var buf bytes.Buffer
	if err := LineStat(&buf, l, SVG); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(buf.String(), "+σ") {
		t.Fatal("band drawn although deviation was not requested")
	}
}

func TestLineStatSinglePointAndFlatSeries(t *testing.T) {
	cases := map[string][]weather.Point{
		"single point": hourly(12.5),
		"flat series":  hourly(1013, 1013, 1013),
	}
	for name, points := range cases {
		t.Run(name, func(t *testing.T) {
			l := Line{Title: "Pressure", Unit: "hPa", Color: "#008000", Points: points, Interval: weather.Daily, ShowDeviation: true}

			var buf bytes.Buffer
			if err := LineStat(&buf, l, PNG); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
				t.Fatal("output is not a PNG")
			}
		})
	}
}

func TestLineStatEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := LineStat(&buf, Line{Title: "Temperature", Interval: weather.Hourly}, PNG)
	if !errors.Is(err, weather.ErrEmptySeries) {
		t.Fatalf("expected ErrEmptySeries, got %v", err)
	}
}

func TestLineFromSeries(t *testing.T) {
	s := weather.SeriesStats{Title: "Wind speed", Unit: "m/s", Color: "#FF00FF", Points: hourly(1, 2)}

	l := LineFromSeries(s, weather.SixHourly, true)

	if l.Title != "Wind speed" || l.Unit != "m/s" || l.Color != "#FF00FF" || len(l.Points) != 2 {
		t.Fatalf("unexpected line: %+v", l)
	}
	if l.Interval != weather.SixHourly || !l.ShowDeviation {
		t.Fatalf("unexpected line settings: %+v", l)
	}
}
