package providers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-charts/internal/weather"
)

const visualCrossingBaseURL = "https://weather.visualcrossing.com/VisualCrossingWebServices/rest/services"

// maxTimelineBody bounds how much of a timeline response is read.
const maxTimelineBody = 32 << 20

// VisualCrossingProvider implements weather.TimelineProvider for the Visual
// Crossing timeline API.
type VisualCrossingProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewVisualCrossingProvider(client *http.Client, apiKey string, opts ...Option) *VisualCrossingProvider {
	o := newOptions(visualCrossingBaseURL, opts)

	return &VisualCrossingProvider{
		name:    "visualcrossing",
		apiKey:  apiKey,
		baseURL: o.baseURL,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: o.backoff,
		},
		circuit: newCircuitBreaker("visualcrossing"),
	}
}

func (p *VisualCrossingProvider) Name() string {
	return p.name
}

// FetchTimeline requests the metric day -> hours schedule between from and to
// (whole days, inclusive) and samples it at interval.
func (p *VisualCrossingProvider) FetchTimeline(ctx context.Context, loc weather.Location, from, to time.Time, interval weather.Interval) ([]weather.Sample, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("visualcrossing api key is not configured: %w", weather.ErrProviderNotConfigured)
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("unitGroup", "metric")
		values.Set("include", "hours")
		values.Set("key", p.apiKey)

		u := fmt.Sprintf("%s/timeline/%s/%s/%s?%s",
			p.baseURL,
			url.PathEscape(loc.Query()),
			from.Format(time.DateOnly),
			to.Format(time.DateOnly),
			values.Encode(),
		)
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTimelineBody))
	if err != nil {
		return nil, fmt.Errorf("read visualcrossing timeline: %w", err)
	}

	return weather.ParseSchedule(body, interval), nil
}
