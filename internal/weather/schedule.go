package weather

import (
	"encoding/json"
	"time"
)

// ScheduleLayout is the layout of "date time" pairs in a timeline schedule.
const ScheduleLayout = "2006-01-02 15:04:05"

// ParseSchedule decodes a timeline body and extracts its samples.
// A body that is not valid JSON yields no samples.
func ParseSchedule(body []byte, interval Interval) []Sample {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return []Sample{}
	}
	return ExtractSchedule(doc, interval)
}

// ExtractSchedule flattens a decoded day -> hours schedule into samples.
//
// Days are visited in document order. Within each day the hours are sampled at
// indexes 0, interval, 2*interval, ...; the stride restarts at every day. Days
// without an "hours" key are skipped. Missing or non-numeric fields read as
// zero, and a timestamp that does not parse is left as the zero time.
func ExtractSchedule(doc any, interval Interval) []Sample {
	result := []Sample{}

	root, ok := doc.(map[string]any)
	if !ok {
		return result
	}

	loc := scheduleLocation(root)
	stride := interval.stride()

	days, _ := root["days"].([]any)
	for _, dayV := range days {
		day := objectOf(dayV)
		date := stringField(day, "datetime")

		hoursV, ok := day["hours"]
		if !ok {
			continue
		}
		hours, _ := hoursV.([]any)

		for i := 0; i < len(hours); i += stride {
			hour := objectOf(hours[i])
			result = append(result, Sample{
				Timestamp:   parseScheduleTime(date, stringField(hour, "datetime"), loc),
				Temperature: numberField(hour, "temp"),
				Pressure:    numberField(hour, "pressure"),
				Humidity:    numberField(hour, "humidity"),
				WindSpeed:   numberField(hour, "windspeed"),
			})
		}
	}

	return result
}

// scheduleLocation resolves the document's IANA "timezone", falling back to UTC.
func scheduleLocation(root map[string]any) *time.Location {
	name := stringField(root, "timezone")
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func parseScheduleTime(date, clock string, loc *time.Location) time.Time {
	ts, err := time.ParseInLocation(ScheduleLayout, date+" "+clock, loc)
	if err != nil {
		return time.Time{}
	}
	return ts
}

func objectOf(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func numberField(m map[string]any, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
