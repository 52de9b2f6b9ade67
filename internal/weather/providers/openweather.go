package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-charts/internal/weather"
)

const (
	openWeatherBaseURL = "https://api.openweathermap.org/data/2.5"

	// forecastPoints covers the next 24 hours at the service's 3-hour spacing.
	forecastPoints = 9

	kelvinOffset = 273.15
)

// OpenWeatherProvider implements weather.CurrentProvider for OpenWeatherMap.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *http.Client, apiKey string, opts ...Option) *OpenWeatherProvider {
	o := newOptions(openWeatherBaseURL, opts)

	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: o.baseURL,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: o.backoff,
		},
		circuit: newCircuitBreaker("openweather"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

type owMain struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Pressure  float64 `json:"pressure"`
	Humidity  float64 `json:"humidity"`
}

type owWind struct {
	Speed float64 `json:"speed"`
}

// FetchCurrent returns the current observation. Temperatures arrive in Kelvin
// and are converted to °C.
func (p *OpenWeatherProvider) FetchCurrent(ctx context.Context, loc weather.Location) (weather.Current, error) {
	var payload struct {
		Dt   int64  `json:"dt"`
		Main owMain `json:"main"`
		Wind owWind `json:"wind"`
	}

	if err := p.get(ctx, "/weather", loc, nil, &payload); err != nil {
		return weather.Current{}, err
	}

	ts := time.Unix(payload.Dt, 0).UTC()
	if payload.Dt == 0 {
		ts = time.Now().UTC()
	}

	return weather.Current{
		Timestamp:   ts,
		Temperature: payload.Main.Temp - kelvinOffset,
		FeelsLike:   payload.Main.FeelsLike - kelvinOffset,
		Humidity:    payload.Main.Humidity,
		Pressure:    payload.Main.Pressure,
		WindSpeed:   payload.Wind.Speed,
	}, nil
}

// FetchForecast returns the next nine 3-hour forecast points in service order.
func (p *OpenWeatherProvider) FetchForecast(ctx context.Context, loc weather.Location) ([]weather.Sample, error) {
	var payload struct {
		List []struct {
			Dt    int64  `json:"dt"`
			DtTxt string `json:"dt_txt"`
			Main  owMain `json:"main"`
			Wind  owWind `json:"wind"`
		} `json:"list"`
	}

	extra := url.Values{}
	extra.Set("cnt", fmt.Sprintf("%d", forecastPoints))

	if err := p.get(ctx, "/forecast", loc, extra, &payload); err != nil {
		return nil, err
	}

	samples := make([]weather.Sample, 0, len(payload.List))
	for _, item := range payload.List {
		ts, err := time.ParseInLocation(weather.ScheduleLayout, item.DtTxt, time.UTC)
		if err != nil {
			ts = time.Unix(item.Dt, 0).UTC()
		}

		samples = append(samples, weather.Sample{
			Timestamp:   ts,
			Temperature: item.Main.Temp - kelvinOffset,
			Pressure:    item.Main.Pressure,
			Humidity:    item.Main.Humidity,
			WindSpeed:   item.Wind.Speed,
		})
	}

	return samples, nil
}

func (p *OpenWeatherProvider) get(ctx context.Context, path string, loc weather.Location, extra url.Values, out any) error {
	if p.apiKey == "" {
		return fmt.Errorf("openweather api key is not configured: %w", weather.ErrProviderNotConfigured)
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("appid", p.apiKey)
		values.Set("q", loc.Query())
		for k, vs := range extra {
			for _, v := range vs {
				values.Add(k, v)
			}
		}

		u := fmt.Sprintf("%s%s?%s", p.baseURL, path, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode openweather %s response: %w", path, err)
	}
	return nil
}
