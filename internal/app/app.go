// Package app wires configuration into the providers, store and service shared
// by the HTTP server and the CLI.
package app

import (
	"log/slog"
	"net/http"

	"github.com/i474232898/weather-charts/internal/config"
	"github.com/i474232898/weather-charts/internal/store"
	"github.com/i474232898/weather-charts/internal/weather"
	"github.com/i474232898/weather-charts/internal/weather/providers"
)

// Components are the long-lived objects built from configuration.
type Components struct {
	Store   *store.MemoryStore
	Service *weather.Service
}

// New builds the store, both upstream providers and the service.
func New(cfg *config.AppConfig, logger *slog.Logger) Components {
	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	backoff := providers.DefaultBackoff()
	backoff.MaxRetries = cfg.HTTPMaxRetries

	current := providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey,
		providers.WithBaseURL(cfg.OpenWeatherBaseURL),
		providers.WithBackoff(backoff),
	)
	timeline := providers.NewVisualCrossingProvider(httpClient, cfg.VisualCrossingAPIKey,
		providers.WithBaseURL(cfg.VisualCrossingBaseURL),
		providers.WithBackoff(backoff),
	)

	if cfg.OpenWeatherAPIKey == "" {
		logger.Warn("OPENWEATHER_API_KEY is not set; current weather requests will fail")
	}
	if cfg.VisualCrossingAPIKey == "" {
		logger.Warn("VISUALCROSSING_API_KEY is not set; statistics requests will fail")
	}

	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	return Components{
		Store:   memStore,
		Service: weather.NewService(memStore, current, timeline, logger),
	}
}
