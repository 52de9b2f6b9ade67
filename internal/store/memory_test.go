package store

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/i474232898/weather-charts/internal/weather"
)

var (
	berlin = weather.Location{City: "Berlin", Country: "DE"}
	t0     = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
)

func reportAt(id string, at time.Time) weather.Report {
	return weather.Report{ID: id, Location: berlin, FetchedAt: at}
}

func TestMemoryStoreLatestAndRange(t *testing.T) {
	s := NewMemoryStore(0, 0)

	if _, err := s.GetLatest(berlin); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	for i := 0; i < 4; i++ {
		s.SaveReport(berlin, reportAt(fmt.Sprint(i), t0.Add(time.Duration(i)*time.Hour)))
	}

	latest, err := s.GetLatest(weather.Location{City: "BERLIN", Country: "de"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if latest.ID != "3" {
		t.Fatalf("expected latest report 3, got %s", latest.ID)
	}

	got, err := s.GetRange(berlin, t0.Add(time.Hour), t0.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "2" {
		t.Fatalf("range is not inclusive: %+v", got)
	}

	if _, err := s.GetRange(berlin, t0.Add(10*time.Hour), t0.Add(11*time.Hour)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty window, got %v", err)
	}
}

func TestMemoryStoreMaxHistory(t *testing.T) {
	s := NewMemoryStore(2, 0)

	for i := 0; i < 5; i++ {
		s.SaveReport(berlin, reportAt(fmt.Sprint(i), t0.Add(time.Duration(i)*time.Minute)))
	}

	got, err := s.GetRange(berlin, t0, t0.Add(time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "3" || got[1].ID != "4" {
		t.Fatalf("expected the two newest reports, got %+v", got)
	}
}

func TestMemoryStoreMaxAgeKeepsNewest(t *testing.T) {
	s := NewMemoryStore(0, time.Hour)
	s.now = func() time.Time { return t0.Add(24 * time.Hour) }

	s.SaveReport(berlin, reportAt("old", t0))
	s.SaveReport(berlin, reportAt("older-but-last", t0.Add(time.Minute)))

	latest, err := s.GetLatest(berlin)
	if err != nil {
		t.Fatalf("newest report must survive age retention: %v", err)
	}
	if latest.ID != "older-but-last" {
		t.Fatalf("unexpected latest %s", latest.ID)
	}

	got, _ := s.GetRange(berlin, t0.Add(-time.Hour), t0.Add(time.Hour))
	if len(got) != 1 {
		t.Fatalf("expected expired reports to be dropped, got %d", len(got))
	}

	s.SaveReport(berlin, reportAt("fresh", t0.Add(24*time.Hour)))
	got, _ = s.GetRange(berlin, t0.Add(-time.Hour), t0.Add(48*time.Hour))
	if len(got) != 1 || got[0].ID != "fresh" {
		t.Fatalf("expected only the fresh report, got %+v", got)
	}
}

func TestMemoryStoreConcurrentSaves(t *testing.T) {
	s := NewMemoryStore(1000, 0)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.SaveReport(berlin, reportAt(fmt.Sprint(i), t0))
			_, _ = s.GetLatest(berlin)
		}(i)
	}
	wg.Wait()

	got, err := s.GetRange(berlin, t0, t0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 50 {
		t.Fatalf("expected 50 reports, got %d", len(got))
	}
}
