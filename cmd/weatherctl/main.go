package main

import (
	"context"
	"fmt"
	"os"

	"github.com/i474232898/weather-charts/internal/app"
	"github.com/i474232898/weather-charts/internal/cli"
	"github.com/i474232898/weather-charts/internal/config"
	"github.com/i474232898/weather-charts/internal/logging"
)

var version = "dev"

func main() {
	cmd := cli.New(func(configPath string) (cli.Service, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}

		if configPath != "" {
			raw, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}
			if err := cfg.ApplyYAML(raw); err != nil {
				return nil, err
			}
		}

		log := logging.New(os.Stderr, cfg, version, "weatherctl")
		return app.New(cfg, log).Service, nil
	})

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
