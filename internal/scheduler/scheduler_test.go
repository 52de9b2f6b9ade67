package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/i474232898/weather-charts/internal/weather"
)

type countingFetcher struct {
	mu   sync.Mutex
	seen map[string]int
	fail string
}

func (f *countingFetcher) FetchAndStore(ctx context.Context, loc weather.Location) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("fetch without deadline")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.seen == nil {
		f.seen = map[string]int{}
	}
	f.seen[loc.Key()]++
	if loc.City == f.fail {
		return errors.New("upstream down")
	}
	return nil
}

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunOnceFetchesEveryLocation(t *testing.T) {
	locs := []weather.Location{{City: "Paris", Country: "FR"}, {City: "Oslo"}, {City: "Lima", Country: "PE"}}
	f := &countingFetcher{fail: "Oslo"}

	New(locs, time.Minute, f, quiet()).RunOnce()

	for _, loc := range locs {
		if f.seen[loc.Key()] != 1 {
			t.Fatalf("expected one fetch for %s, got %d", loc.Key(), f.seen[loc.Key()])
		}
	}
}

func TestStartWithoutLocations(t *testing.T) {
	f := &countingFetcher{}
	s := New(nil, time.Minute, f, quiet())

	if err := s.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Stop()

	if len(f.seen) != 0 {
		t.Fatalf("expected no fetches, got %v", f.seen)
	}
}
