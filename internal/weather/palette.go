package weather

import "strings"

// Color is an "#RRGGBB" hex colour.
type Color string

// Hex returns the colour without the leading '#'.
func (c Color) Hex() string {
	return strings.TrimPrefix(string(c), "#")
}

type temperatureBand struct {
	limit     float64
	inclusive bool
	color     Color
}

// Evaluated top to bottom; the first matching band wins. Bounds are not
// uniformly inclusive and must stay exactly as listed.
var temperatureBands = []temperatureBand{
	{limit: -20, inclusive: false, color: "#191970"},
	{limit: -10, inclusive: true, color: "#4682B4"},
	{limit: -5, inclusive: true, color: "#B0E0E6"},
	{limit: 0, inclusive: true, color: "#E0FFFF"},
	{limit: 10, inclusive: true, color: "#FFE4B5"},
	{limit: 15, inclusive: true, color: "#DEB887"},
	{limit: 21, inclusive: false, color: "#DAA520"},
	{limit: 26, inclusive: false, color: "#FF8C00"},
}

const hottestColor Color = "#B22222"

// ColorForTemperature maps a temperature in °C onto the background palette,
// from deep blue for severe frost to deep red for heat.
func ColorForTemperature(tempC float64) Color {
	for _, b := range temperatureBands {
		if tempC < b.limit || (b.inclusive && tempC == b.limit) {
			return b.color
		}
	}
	return hottestColor
}
