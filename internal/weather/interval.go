package weather

import "strings"

// Interval is the sampling stride, in hourly entries, used to downsample a
// schedule.
type Interval int

const (
	Hourly       Interval = 1
	ThreeHourly  Interval = 3
	SixHourly    Interval = 6
	TwelveHourly Interval = 12
	Daily        Interval = 24
)

var intervalNames = map[string]Interval{
	"1h":  Hourly,
	"3h":  ThreeHourly,
	"6h":  SixHourly,
	"12h": TwelveHourly,
	"1d":  Daily,
}

// ParseInterval maps "1h", "3h", "6h", "12h" and "1d" to an Interval.
// Anything else falls back to Hourly.
func ParseInterval(s string) Interval {
	if i, ok := intervalNames[strings.TrimSpace(s)]; ok {
		return i
	}
	return Hourly
}

func (i Interval) String() string {
	switch i {
	case ThreeHourly:
		return "3h"
	case SixHourly:
		return "6h"
	case TwelveHourly:
		return "12h"
	case Daily:
		return "1d"
	default:
		return "1h"
	}
}

// MarshalText renders the interval in its query-string form.
func (i Interval) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText accepts the query-string form; unknown values become Hourly.
func (i *Interval) UnmarshalText(b []byte) error {
	*i = ParseInterval(string(b))
	return nil
}

// TimeLayout is the time axis label layout used when charting samples taken at
// this interval.
func (i Interval) TimeLayout() string {
	switch i {
	case Hourly, ThreeHourly, SixHourly, TwelveHourly:
		return "15:04 02.01"
	default:
		return "02.01.2006"
	}
}

func (i Interval) stride() int {
	if i <= 0 {
		return 1
	}
	return int(i)
}
