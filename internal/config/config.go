package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/i474232898/weather-charts/internal/weather"
)

type AppConfig struct {
	AppEnv   string `envconfig:"APP_ENV" default:"dev" validate:"oneof=dev prod"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
	Port     string `envconfig:"PORT" default:"8080" validate:"required,numeric"`

	OpenWeatherAPIKey    string `envconfig:"OPENWEATHER_API_KEY"`
	VisualCrossingAPIKey string `envconfig:"VISUALCROSSING_API_KEY"`

	// Base URL overrides, mostly for tests and proxies. Empty keeps the public endpoints.
	OpenWeatherBaseURL    string `envconfig:"OPENWEATHER_BASE_URL" validate:"omitempty,url"`
	VisualCrossingBaseURL string `envconfig:"VISUALCROSSING_BASE_URL" validate:"omitempty,url"`

	HTTPTimeout    time.Duration `envconfig:"HTTP_TIMEOUT" default:"15s"`
	HTTPMaxRetries int           `envconfig:"HTTP_MAX_RETRIES" default:"0" validate:"min=0,max=10"`

	// FetchInterval controls how often the current report is refreshed for each location.
	FetchInterval time.Duration `envconfig:"FETCH_INTERVAL" default:"15m"`

	// In-memory store retention.
	StoreMaxHistory int           `envconfig:"STORE_MAX_HISTORY" default:"96"` // roughly 24h at 15-minute intervals
	StoreMaxAge     time.Duration `envconfig:"STORE_MAX_AGE" default:"24h"`

	LocationCities    string `envconfig:"WEATHER_LOCATION_CITY"`
	LocationCountries string `envconfig:"WEATHER_LOCATION_COUNTRY"`

	// Locations to refresh periodically, built from the two lists above.
	Locations []weather.Location `ignored:"true"`
}

var validate = validator.New()

// Load reads configuration from a .env file (if any) and the environment.
func Load() (*AppConfig, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	return cfg, cfg.finish()
}

// fileConfig is the YAML overlay accepted by ApplyYAML.
type fileConfig struct {
	OpenWeather struct {
		APIKey  string `yaml:"apiKey"`
		BaseURL string `yaml:"baseURL"`
	} `yaml:"openweathermap"`
	VisualCrossing struct {
		APIKey  string `yaml:"apiKey"`
		BaseURL string `yaml:"baseURL"`
	} `yaml:"visualcrossing"`
	HTTPTimeout string `yaml:"httpTimeout"`
	LogLevel    string `yaml:"logLevel"`
}

// ApplyYAML overlays non-empty values from a YAML document onto cfg.
func (cfg *AppConfig) ApplyYAML(data []byte) error {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	setIfNotEmpty(&cfg.OpenWeatherAPIKey, fc.OpenWeather.APIKey)
	setIfNotEmpty(&cfg.OpenWeatherBaseURL, fc.OpenWeather.BaseURL)
	setIfNotEmpty(&cfg.VisualCrossingAPIKey, fc.VisualCrossing.APIKey)
	setIfNotEmpty(&cfg.VisualCrossingBaseURL, fc.VisualCrossing.BaseURL)
	setIfNotEmpty(&cfg.LogLevel, fc.LogLevel)

	if fc.HTTPTimeout != "" {
		d, err := time.ParseDuration(fc.HTTPTimeout)
		if err != nil {
			return fmt.Errorf("invalid httpTimeout: %w", err)
		}
		cfg.HTTPTimeout = d
	}

	return cfg.finish()
}

// SlogLevel converts LogLevel for the logger.
func (cfg *AppConfig) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(cfg.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (cfg *AppConfig) finish() error {
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	locs, err := parseLocations(cfg.LocationCities, cfg.LocationCountries)
	if err != nil {
		return err
	}
	cfg.Locations = locs
	return nil
}

func parseLocations(city, country string) ([]weather.Location, error) {
	if strings.TrimSpace(city) == "" {
		return nil, nil
	}

	cities := strings.Split(city, ",")
	countries := make([]string, len(cities))
	if strings.TrimSpace(country) != "" {
		countries = strings.Split(country, ",")
		if len(cities) != len(countries) {
			return nil, fmt.Errorf("number of cities and countries must be the same")
		}
	}

	var locs []weather.Location
	for i := range cities {
		locs = append(locs, weather.Location{
			City:    strings.TrimSpace(cities[i]),
			Country: strings.TrimSpace(countries[i]),
		})
	}

	return locs, nil
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
