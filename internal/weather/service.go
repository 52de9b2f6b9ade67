package weather

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNoData is returned when a query produced nothing to display.
	ErrNoData = errors.New("no data to display")

	// ErrProviderNotConfigured is returned when the service lacks the provider a call needs.
	ErrProviderNotConfigured = errors.New("weather provider not configured")

	// ErrLocationNotFound is returned by providers when upstream does not know the location.
	ErrLocationNotFound = errors.New("location not found")
)

// StatsQuery selects a timeline range and how to summarise it.
type StatsQuery struct {
	Location      Location
	From          time.Time
	To            time.Time
	Interval      Interval
	ShowDeviation bool
}

// Service orchestrates the upstream providers and persists current reports.
type Service struct {
	store    Store
	current  CurrentProvider
	timeline TimelineProvider
	log      *slog.Logger
	now      func() time.Time
}

// NewService creates a new Service. Either provider may be nil; calls that
// need a missing provider fail with ErrProviderNotConfigured.
func NewService(store Store, current CurrentProvider, timeline TimelineProvider, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:    store,
		current:  current,
		timeline: timeline,
		log:      logger.With("component", "weather.service"),
		now:      time.Now,
	}
}

// Current fetches the current observation and the short forecast for loc and
// stores the resulting report. A failed forecast does not fail the report; it
// is logged and the forecast is left empty.
func (s *Service) Current(ctx context.Context, loc Location) (Report, error) {
	if s.current == nil {
		return Report{}, ErrProviderNotConfigured
	}

	cur, err := s.current.FetchCurrent(ctx, loc)
	if err != nil {
		return Report{}, fmt.Errorf("%s current weather for %s: %w", s.current.Name(), loc.Key(), err)
	}
	cur.Color = ColorForTemperature(cur.Temperature)

	forecast, err := s.current.FetchForecast(ctx, loc)
	if err != nil {
		s.log.Warn("forecast fetch failed", "provider", s.current.Name(), "location", loc.Key(), "err", err)
		forecast = []Sample{}
	}

	report := Report{
		ID:        uuid.NewString(),
		Provider:  s.current.Name(),
		Location:  loc,
		FetchedAt: s.now().UTC(),
		Current:   cur,
		Forecast:  forecast,
	}

	if s.store != nil {
		s.store.SaveReport(loc, report)
	}
	s.log.Debug("current report stored", "location", loc.Key(), "id", report.ID, "forecast", len(forecast))

	return report, nil
}

// FetchAndStore refreshes the current report for loc. It is the scheduler's
// periodic job.
func (s *Service) FetchAndStore(ctx context.Context, loc Location) error {
	_, err := s.Current(ctx, loc)
	return err
}

// Statistics fetches the timeline for q and summarises every metric.
// An empty timeline yields ErrNoData.
func (s *Service) Statistics(ctx context.Context, q StatsQuery) (StatsReport, error) {
	if s.timeline == nil {
		return StatsReport{}, ErrProviderNotConfigured
	}
	if q.To.Before(q.From) {
		return StatsReport{}, fmt.Errorf("range end %s is before start %s", q.To.Format(time.DateOnly), q.From.Format(time.DateOnly))
	}

	samples, err := s.timeline.FetchTimeline(ctx, q.Location, q.From, q.To, q.Interval)
	if err != nil {
		return StatsReport{}, fmt.Errorf("%s timeline for %s: %w", s.timeline.Name(), q.Location.Key(), err)
	}
	if len(samples) == 0 {
		s.log.Info("timeline returned no samples", "location", q.Location.Key(), "from", q.From, "to", q.To)
		return StatsReport{}, ErrNoData
	}

	report := StatsReport{
		Provider: s.timeline.Name(),
		Location: q.Location,
		From:     q.From,
		To:       q.To,
		Interval: q.Interval,
		Series:   make([]SeriesStats, 0, len(Metrics)),
	}

	for _, m := range Metrics {
		series, err := BuildSeriesStats(samples, m, q.ShowDeviation)
		if err != nil {
			return StatsReport{}, err
		}
		report.Series = append(report.Series, series)
	}

	return report, nil
}

// BuildSeriesStats projects samples onto m and summarises them. The band is
// attached only when withBand is set and the series has spread.
func BuildSeriesStats(samples []Sample, m Metric, withBand bool) (SeriesStats, error) {
	points := SeriesOf(samples, m)
	sum, err := Summarize(points)
	if err != nil {
		return SeriesStats{}, fmt.Errorf("summarize %s: %w", m, err)
	}

	series := SeriesStats{
		Metric: m,
		Title:  m.Title(),
		Unit:   m.Unit(),
		Color:  m.Color(),
		Points: points,
		Mean:   sum.Mean,
		StdDev: sum.StdDev,
	}
	if withBand && sum.HasBand() {
		series.Upper = sum.Upper
		series.Lower = sum.Lower
	}
	return series, nil
}

// GetLatest delegates to the underlying store.
func (s *Service) GetLatest(loc Location) (Report, error) {
	return s.store.GetLatest(loc)
}

// GetRange delegates to the underlying store.
func (s *Service) GetRange(loc Location, from, to time.Time) ([]Report, error) {
	return s.store.GetRange(loc, from, to)
}
