package weather

import (
	"context"
	"time"
)

// CurrentProvider abstracts the "current + short forecast" service
// (e.g. OpenWeatherMap).
type CurrentProvider interface {
	Name() string
	FetchCurrent(ctx context.Context, loc Location) (Current, error)
	FetchForecast(ctx context.Context, loc Location) ([]Sample, error)
}

// TimelineProvider abstracts the historical/range service (e.g. Visual
// Crossing) that returns a day -> hours schedule.
type TimelineProvider interface {
	Name() string
	FetchTimeline(ctx context.Context, loc Location, from, to time.Time, interval Interval) ([]Sample, error)
}

// Store is the contract the in-memory store (and any future persistent store) must satisfy.
type Store interface {
	SaveReport(loc Location, report Report)
	GetLatest(loc Location) (Report, error)
	GetRange(loc Location, from, to time.Time) ([]Report, error)
}
