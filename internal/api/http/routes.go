package httpapi

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-charts/internal/charts"
	"github.com/i474232898/weather-charts/internal/store"
	"github.com/i474232898/weather-charts/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	v1 := app.Group("/api/v1/weather")

	v1.Get("/current", func(c *fiber.Ctx) error {
		locReq, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		report, err := service.Current(c.UserContext(), locReq.toLocation())
		if err != nil {
			return serviceError(err)
		}

		return c.JSON(report)
	})

	v1.Get("/forecast/chart", func(c *fiber.Ctx) error {
		locReq, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		format, err := charts.ParseFormat(c.Query("format"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		report, err := service.Current(c.UserContext(), locReq.toLocation())
		if err != nil {
			return serviceError(err)
		}

		var buf bytes.Buffer
		if err := charts.ForecastBar(&buf, report.Forecast, format); err != nil {
			return chartError(err)
		}
		return sendChart(c, format, buf.Bytes())
	})

	v1.Get("/forecast/chart/:metric", func(c *fiber.Ctx) error {
		metric, ok := weather.ParseMetric(c.Params("metric"))
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "unknown metric "+strconv.Quote(c.Params("metric")))
		}
		locReq, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		format, err := charts.ParseFormat(c.Query("format"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		report, err := service.Current(c.UserContext(), locReq.toLocation())
		if err != nil {
			return serviceError(err)
		}
		series, err := weather.BuildSeriesStats(report.Forecast, metric, false)
		if err != nil {
			return chartError(err)
		}

		var buf bytes.Buffer
		if err := charts.LineStat(&buf, charts.LineFromSeries(series, weather.ThreeHourly, false), format); err != nil {
			return chartError(err)
		}
		return sendChart(c, format, buf.Bytes())
	})

	v1.Get("/stats", func(c *fiber.Ctx) error {
		var req statsQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		report, err := service.Statistics(c.UserContext(), req.toQuery())
		if err != nil {
			return serviceError(err)
		}

		return c.JSON(report)
	})

	v1.Get("/stats/chart/:metric", func(c *fiber.Ctx) error {
		metric, ok := weather.ParseMetric(c.Params("metric"))
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "unknown metric "+strconv.Quote(c.Params("metric")))
		}
		var req statsQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		format, err := charts.ParseFormat(c.Query("format"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		q := req.toQuery()
		report, err := service.Statistics(c.UserContext(), q)
		if err != nil {
			return serviceError(err)
		}
		series, _ := report.Lookup(metric)

		var buf bytes.Buffer
		if err := charts.LineStat(&buf, charts.LineFromSeries(series, q.Interval, q.ShowDeviation), format); err != nil {
			return chartError(err)
		}
		return sendChart(c, format, buf.Bytes())
	})

	v1.Get("/history", func(c *fiber.Ctx) error {
		var req historyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		loc := req.Location.toLocation()
		reports, err := service.GetRange(loc, req.From, req.To)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no weather history for requested range")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather history")
		}

		return c.JSON(fiber.Map{
			"location": loc,
			"from":     req.From,
			"to":       req.To,
			"reports":  reports,
		})
	})
}

func sendChart(c *fiber.Ctx, format charts.Format, body []byte) error {
	c.Set(fiber.HeaderContentType, format.ContentType())
	return c.Send(body)
}

// serviceError maps service failures onto HTTP statuses.
func serviceError(err error) error {
	switch {
	case errors.Is(err, weather.ErrNoData):
		return fiber.NewError(fiber.StatusNotFound, weather.ErrNoData.Error())
	case errors.Is(err, weather.ErrLocationNotFound):
		return fiber.NewError(fiber.StatusNotFound, "location not found")
	case errors.Is(err, weather.ErrProviderNotConfigured):
		return fiber.NewError(fiber.StatusServiceUnavailable, "weather provider is not configured")
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.NewError(fiber.StatusGatewayTimeout, "weather service timed out")
	default:
		return fiber.NewError(fiber.StatusBadGateway, "failed to fetch weather data")
	}
}

func chartError(err error) error {
	if errors.Is(err, weather.ErrNoData) || errors.Is(err, weather.ErrEmptySeries) {
		return fiber.NewError(fiber.StatusNotFound, weather.ErrNoData.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, "failed to render chart")
}

// locationQuery holds query parameters for identifying a location.
type locationQuery struct {
	City    string `validate:"required"`
	Country string
}

func (l locationQuery) toLocation() weather.Location {
	return weather.Location{
		City:    l.City,
		Country: l.Country,
	}
}

func parseLocationQuery(c *fiber.Ctx) (locationQuery, error) {
	var q locationQuery

	q.City = strings.TrimSpace(c.Query("city"))
	q.Country = strings.TrimSpace(c.Query("country"))

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}

// statsQuery holds query parameters for the statistics endpoints.
type statsQuery struct {
	Location  locationQuery
	From      time.Time `validate:"required"`
	To        time.Time `validate:"required,gtefield=From"`
	Interval  weather.Interval
	Deviation bool
}

func (q *statsQuery) bind(c *fiber.Ctx) error {
	var h historyQuery
	if err := h.bind(c); err != nil {
		return err
	}

	q.Location = h.Location
	q.From = h.From
	q.To = h.To
	q.Interval = weather.ParseInterval(c.Query("interval"))
	q.Deviation = c.QueryBool("deviation", false)

	return validate.Struct(q)
}

func (q statsQuery) toQuery() weather.StatsQuery {
	return weather.StatsQuery{
		Location:      q.Location.toLocation(),
		From:          q.From,
		To:            q.To,
		Interval:      q.Interval,
		ShowDeviation: q.Deviation,
	}
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	Location locationQuery
	From     time.Time `validate:"required"`
	To       time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	loc, err := parseLocationQuery(c)
	if err != nil {
		return err
	}
	h.Location = loc

	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	h.From = from
	h.To = to
	return nil
}

// parseTime accepts a calendar date, RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.DateOnly, s); err == nil {
		return ts, nil
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use YYYY-MM-DD, RFC3339 or unix seconds")
}
