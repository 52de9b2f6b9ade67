package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-charts/internal/weather"
)

// Fetcher refreshes the stored report of one location.
type Fetcher interface {
	FetchAndStore(ctx context.Context, loc weather.Location) error
}

// Scheduler periodically refreshes current weather for configured locations.
type Scheduler struct {
	scheduler    *gocron.Scheduler
	fetcher      Fetcher
	locations    []weather.Location
	interval     time.Duration
	fetchTimeout time.Duration
	log          *slog.Logger
}

// New creates a new Scheduler.
func New(locations []weather.Location, interval time.Duration, fetcher Fetcher, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		scheduler:    gocron.NewScheduler(time.UTC),
		fetcher:      fetcher,
		locations:    locations,
		interval:     interval,
		fetchTimeout: 30 * time.Second,
		log:          logger.With("component", "scheduler"),
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// The first run happens immediately.
func (s *Scheduler) Start() error {
	if len(s.locations) == 0 {
		s.log.Info("no locations configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(s.RunOnce)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce refreshes every location concurrently and waits for all of them.
func (s *Scheduler) RunOnce() {
	s.log.Debug("running weather fetch job", "locations", len(s.locations))

	var wg sync.WaitGroup
	for _, loc := range s.locations {
		wg.Add(1)
		go func(loc weather.Location) {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), s.fetchTimeout)
			defer cancel()

			if err := s.fetcher.FetchAndStore(ctx, loc); err != nil {
				s.log.Error("fetch failed", "location", loc.Key(), "err", err)
			}
		}(loc)
	}
	wg.Wait()

	s.log.Debug("completed weather fetch job")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
