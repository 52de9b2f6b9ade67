package weather

// Metric names one of the measured fields of a Sample.
type Metric string

const (
	MetricTemperature Metric = "temperature"
	MetricPressure    Metric = "pressure"
	MetricHumidity    Metric = "humidity"
	MetricWindSpeed   Metric = "windspeed"
)

// Metrics lists every metric in chart order.
var Metrics = []Metric{MetricTemperature, MetricPressure, MetricHumidity, MetricWindSpeed}

// ParseMetric reports whether s names a known metric.
func ParseMetric(s string) (Metric, bool) {
	for _, m := range Metrics {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}

// Value selects the metric's field from s.
func (m Metric) Value(s Sample) float64 {
	switch m {
	case MetricTemperature:
		return s.Temperature
	case MetricPressure:
		return s.Pressure
	case MetricHumidity:
		return s.Humidity
	case MetricWindSpeed:
		return s.WindSpeed
	default:
		return 0
	}
}

func (m Metric) Title() string {
	switch m {
	case MetricTemperature:
		return "Temperature"
	case MetricPressure:
		return "Pressure"
	case MetricHumidity:
		return "Humidity"
	case MetricWindSpeed:
		return "Wind speed"
	default:
		return string(m)
	}
}

func (m Metric) Unit() string {
	switch m {
	case MetricTemperature:
		return "°C"
	case MetricPressure:
		return "hPa"
	case MetricHumidity:
		return "%"
	case MetricWindSpeed:
		return "m/s"
	default:
		return ""
	}
}

// Color is the line colour used when charting the metric.
func (m Metric) Color() Color {
	switch m {
	case MetricTemperature:
		return "#0000FF"
	case MetricPressure:
		return "#008000"
	case MetricHumidity:
		return "#808000"
	case MetricWindSpeed:
		return "#FF00FF"
	default:
		return "#000000"
	}
}

// SeriesOf projects samples onto metric m, preserving order.
func SeriesOf(samples []Sample, m Metric) []Point {
	points := make([]Point, 0, len(samples))
	for _, s := range samples {
		points = append(points, Point{Timestamp: s.Timestamp, Value: m.Value(s)})
	}
	return points
}
