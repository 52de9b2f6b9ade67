// Package charts renders weather series to PNG or SVG with go-chart.
package charts

import (
	"fmt"
	"io"
	"strings"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/i474232898/weather-charts/internal/weather"
)

// Format selects the output encoding.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

const (
	defaultWidth  = 1024
	defaultHeight = 400
)

var (
	meanColor = drawing.ColorFromHex("FF0000")
	bandColor = drawing.ColorFromHex("A0A0A4")
)

// ParseFormat accepts "png" or "svg" in any case; empty means PNG.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return PNG, nil
	case "svg":
		return SVG, nil
	default:
		return "", fmt.Errorf("unsupported chart format %q (allowed: png, svg)", s)
	}
}

// ContentType is the MIME type of the rendered output.
func (f Format) ContentType() string {
	if f == SVG {
		return "image/svg+xml"
	}
	return "image/png"
}

func (f Format) renderer() chart.RendererProvider {
	if f == SVG {
		return chart.SVG
	}
	return chart.PNG
}

// LoadFont parses the default chart font. Call it before rendering from
// several goroutines.
func LoadFont() error {
	_, err := chart.GetDefaultFont()
	return err
}

func colorOf(c weather.Color) drawing.Color {
	return drawing.ColorFromHex(c.Hex())
}

// ForecastBar draws forecast temperatures as bars, each filled with its
// palette colour. The value axis spans 5 °C beyond the extremes.
func ForecastBar(w io.Writer, samples []weather.Sample, f Format) error {
	if len(samples) == 0 {
		return weather.ErrNoData
	}

	minT, maxT := samples[0].Temperature, samples[0].Temperature
	bars := make([]chart.Value, 0, len(samples))
	for _, s := range samples {
		if s.Temperature < minT {
			minT = s.Temperature
		}
		if s.Temperature > maxT {
			maxT = s.Temperature
		}

		c := colorOf(weather.ColorForTemperature(s.Temperature))
		bars = append(bars, chart.Value{
			Value: s.Temperature,
			Label: s.Timestamp.Format("15:04"),
			Style: chart.Style{FillColor: c, StrokeColor: c},
		})
	}

	bc := chart.BarChart{
		Title:        "Temperature, next 24 hours",
		Width:        defaultWidth,
		Height:       defaultHeight,
		BarWidth:     60,
		BarSpacing:   30,
		UseBaseValue: true,
		BaseValue:    0,
		Background:   chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		YAxis: chart.YAxis{
			Name:  weather.MetricTemperature.Unit(),
			Range: &chart.ContinuousRange{Min: minT - 5, Max: maxT + 5},
		},
		Bars: bars,
	}

	return bc.Render(f.renderer(), w)
}

// Line describes one metric line chart.
type Line struct {
	Title    string
	Unit     string
	Color    weather.Color
	Points   []weather.Point
	Interval weather.Interval

	// ShowDeviation adds the ±σ band; it is dropped when the series has no spread.
	ShowDeviation bool
}

// LineFromSeries builds a Line from a summarised series.
func LineFromSeries(s weather.SeriesStats, interval weather.Interval, showDeviation bool) Line {
	return Line{
		Title:         s.Title,
		Unit:          s.Unit,
		Color:         s.Color,
		Points:        s.Points,
		Interval:      interval,
		ShowDeviation: showDeviation,
	}
}

// LineStat draws the series together with its mean line and, when requested,
// the per-point ±σ band.
func LineStat(w io.Writer, l Line, f Format) error {
	sum, err := weather.Summarize(l.Points)
	if err != nil {
		return err
	}

	xs := make([]time.Time, len(l.Points))
	ys := make([]float64, len(l.Points))
	means := make([]float64, len(l.Points))
	for i, p := range l.Points {
		xs[i] = p.Timestamp
		ys[i] = p.Value
		means[i] = sum.Mean
	}

	series := []chart.Series{
		chart.TimeSeries{
			Name:    l.Title,
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeColor: colorOf(l.Color), StrokeWidth: 2},
		},
		chart.TimeSeries{
			Name:    "Mean",
			XValues: xs,
			YValues: means,
			Style:   chart.Style{StrokeColor: meanColor, StrokeWidth: 1},
		},
	}

	lo, hi := extent(ys)
	if l.ShowDeviation && sum.HasBand() {
		upper := values(sum.Upper)
		lower := values(sum.Lower)
		dashed := chart.Style{StrokeColor: bandColor, StrokeWidth: 1, StrokeDashArray: []float64{5, 5}}
		series = append(series,
			chart.TimeSeries{Name: "+σ", XValues: xs, YValues: upper, Style: dashed},
			chart.TimeSeries{Name: "-σ", XValues: xs, YValues: lower, Style: dashed},
		)
		_, hi = extent(upper)
		lo, _ = extent(lower)
	}

	ch := chart.Chart{
		Title:      l.Title,
		Width:      defaultWidth,
		Height:     defaultHeight,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 28}},
		XAxis: chart.XAxis{
			Name:           "Time",
			ValueFormatter: chart.TimeValueFormatterWithFormat(l.Interval.TimeLayout()),
			Range:          timeRange(xs, l.Interval),
		},
		YAxis: chart.YAxis{
			Name:  l.Unit,
			Range: valueRange(lo, hi),
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	return ch.Render(f.renderer(), w)
}

func values(points []weather.Point) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Value
	}
	return out
}

func extent(vs []float64) (float64, float64) {
	lo, hi := vs[0], vs[0]
	for _, v := range vs[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// timeRange pads a single-instant series out by one interval; go-chart refuses
// a zero-width x range. Otherwise the range is derived from the data.
func timeRange(xs []time.Time, interval weather.Interval) chart.Range {
	first, last := xs[0], xs[0]
	for _, t := range xs[1:] {
		if t.Before(first) {
			first = t
		}
		if t.After(last) {
			last = t
		}
	}
	if last.After(first) {
		return nil
	}
	step := time.Duration(interval) * time.Hour
	if step <= 0 {
		step = time.Hour
	}
	return &chart.ContinuousRange{
		Min: chart.TimeToFloat64(first),
		Max: chart.TimeToFloat64(first.Add(step)),
	}
}

// valueRange pads a flat series by one unit either side for the same reason.
func valueRange(lo, hi float64) chart.Range {
	if hi > lo {
		return nil
	}
	return &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
}
