package weather

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInterval(t *testing.T) {
	for in, want := range map[string]Interval{
		"1h":    Hourly,
		"3h":    ThreeHourly,
		"6h":    SixHourly,
		"12h":   TwelveHourly,
		"1d":    Daily,
		" 6h ":  SixHourly,
		"":      Hourly,
		"24h":   Hourly,
		"daily": Hourly,
	} {
		assert.Equal(t, want, ParseInterval(in), "input %q", in)
	}
}

func TestIntervalText(t *testing.T) {
	b, err := json.Marshal(struct {
		I Interval `json:"i"`
	}{I: TwelveHourly})
	require.NoError(t, err)
	assert.JSONEq(t, `{"i":"12h"}`, string(b))

	var out struct {
		I Interval `json:"i"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"i":"1d"}`), &out))
	assert.Equal(t, Daily, out.I)
}

func TestIntervalTimeLayout(t *testing.T) {
	assert.Equal(t, "15:04 02.01", ThreeHourly.TimeLayout())
	assert.Equal(t, "15:04 02.01", TwelveHourly.TimeLayout())
	assert.Equal(t, "02.01.2006", Daily.TimeLayout())
}

func TestParseMetric(t *testing.T) {
	m, ok := ParseMetric("windspeed")
	assert.True(t, ok)
	assert.Equal(t, MetricWindSpeed, m)

	_, ok = ParseMetric("rain")
	assert.False(t, ok)
}

func TestSeriesOf(t *testing.T) {
	samples := ParseSchedule([]byte(twoHourSchedule), Hourly)

	pressure := SeriesOf(samples, MetricPressure)

	require.Len(t, pressure, 2)
	assert.Equal(t, samples[1].Timestamp, pressure[1].Timestamp)
	assert.Equal(t, 1011.0, pressure[1].Value)
}
