package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/i474232898/weather-charts/internal/charts"
	"github.com/i474232898/weather-charts/internal/weather"
)

// Service is the part of weather.Service the CLI drives.
type Service interface {
	Current(ctx context.Context, loc weather.Location) (weather.Report, error)
	Statistics(ctx context.Context, q weather.StatsQuery) (weather.StatsReport, error)
}

// Builder constructs the service once flags are parsed. configPath is the
// optional --config file.
type Builder func(configPath string) (Service, error)

func New(build Builder) *cobra.Command {
	var (
		configPath string
		service    Service
	)

	root := &cobra.Command{
		Use:           "weatherctl",
		Short:         "CLI application for charting current weather and timeline statistics",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s, err := build(configPath)
			if err != nil {
				return err
			}
			service = s
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML file with API keys (overrides environment)")

	root.AddCommand(
		newCurrentCmd(func() Service { return service }),
		newForecastChartCmd(func() Service { return service }),
		newStatsCmd(func() Service { return service }),
	)

	return root
}

func locationFromArgs(args []string) weather.Location {
	loc := weather.Location{City: args[0]}
	if len(args) > 1 {
		loc.Country = args[1]
	}
	return loc
}

func newCurrentCmd(service func() Service) *cobra.Command {
	return &cobra.Command{
		Use:   "current <city> [country]",
		Args:  cobra.RangeArgs(1, 2),
		Short: "Print current weather and the 24 hour forecast",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := service().Current(cmd.Context(), locationFromArgs(args))
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			cur := report.Current
			fmt.Fprintf(w, "PROVIDER\t %s\n", report.Provider)
			fmt.Fprintf(w, "LOCATION\t %s\n", report.Location.Query())
			fmt.Fprintf(w, "CURRENT\t\t %.0f°C, feels like %.0f°C | humidity %.0f%% | pressure %.0f hPa | wind %.1f m/s | %s\n",
				cur.Temperature, cur.FeelsLike, cur.Humidity, cur.Pressure, cur.WindSpeed, cur.Color)

			if len(report.Forecast) == 0 {
				fmt.Fprintf(w, "FORECAST\t unavailable\n")
				return nil
			}

			fmt.Fprintf(w, "TIME\t\t")
			for _, s := range report.Forecast {
				fmt.Fprintf(w, "%7s  ", s.Timestamp.Format("15:04"))
			}
			fmt.Fprintf(w, "\nTEMP\t\t")
			for _, s := range report.Forecast {
				fmt.Fprintf(w, "%7.1f  ", s.Temperature)
			}
			fmt.Fprintf(w, "\nCOLOR\t\t")
			for _, s := range report.Forecast {
				fmt.Fprintf(w, "%7s  ", weather.ColorForTemperature(s.Temperature))
			}
			fmt.Fprintf(w, "\n")

			return nil
		},
	}
}

func newForecastChartCmd(service func() Service) *cobra.Command {
	var out, format string

	cmd := &cobra.Command{
		Use:   "forecast-chart <city> [country]",
		Args:  cobra.RangeArgs(1, 2),
		Short: "Save the 24 hour forecast as a temperature bar chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := charts.ParseFormat(format)
			if err != nil {
				return err
			}

			report, err := service().Current(cmd.Context(), locationFromArgs(args))
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := charts.ForecastBar(&buf, report.Forecast, f); err != nil {
				return err
			}

			path := out
			if path == "" {
				path = "forecast." + string(f)
			}
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("save chart: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default forecast.<format>)")
	cmd.Flags().StringVar(&format, "format", "png", "png or svg")

	return cmd
}

func newStatsCmd(service func() Service) *cobra.Command {
	var (
		from, to, interval, outDir, format string
		deviation                          bool
	)

	cmd := &cobra.Command{
		Use:   "stats <city> [country]",
		Args:  cobra.RangeArgs(1, 2),
		Short: "Save mean (and optionally ±σ) charts of every metric over a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := charts.ParseFormat(format)
			if err != nil {
				return err
			}

			today := time.Now().UTC().Truncate(24 * time.Hour)
			start, err := parseDateOr(from, today.AddDate(0, 0, -7))
			if err != nil {
				return fmt.Errorf("invalid --from: %w", err)
			}
			end, err := parseDateOr(to, today)
			if err != nil {
				return fmt.Errorf("invalid --to: %w", err)
			}

			q := weather.StatsQuery{
				Location:      locationFromArgs(args),
				From:          start,
				To:            end,
				Interval:      weather.ParseInterval(interval),
				ShowDeviation: deviation,
			}

			report, err := service().Statistics(cmd.Context(), q)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}

			if err := charts.LoadFont(); err != nil {
				return err
			}

			paths := make([]string, len(report.Series))
			var g errgroup.Group
			g.SetLimit(len(weather.Metrics))
			for i, s := range report.Series {
				i, s := i, s
				paths[i] = filepath.Join(outDir, string(s.Metric)+"."+string(f))
				g.Go(func() error {
					var buf bytes.Buffer
					if err := charts.LineStat(&buf, charts.LineFromSeries(s, q.Interval, q.ShowDeviation), f); err != nil {
						return fmt.Errorf("render %s: %w", s.Metric, err)
					}
					if err := os.WriteFile(paths[i], buf.Bytes(), 0o644); err != nil {
						return fmt.Errorf("save chart: %w", err)
					}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for i, s := range report.Series {
				fmt.Fprintf(w, "%s\tmean %.2f %s\tσ %.2f\t%s\n", s.Title, s.Mean, s.Unit, s.StdDev, paths[i])
			}

			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "start date YYYY-MM-DD (default 7 days ago)")
	cmd.Flags().StringVar(&to, "to", "", "end date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&interval, "interval", "1h", "sampling interval: 1h, 3h, 6h, 12h or 1d")
	cmd.Flags().BoolVar(&deviation, "deviation", false, "draw the ±σ band")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	cmd.Flags().StringVar(&format, "format", "png", "png or svg")

	return cmd
}

func parseDateOr(s string, def time.Time) (time.Time, error) {
	if s == "" {
		return def, nil
	}
	return time.Parse(time.DateOnly, s)
}
