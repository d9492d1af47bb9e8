package export

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// category10 is the d3 categorical palette; countries take colours in
// selection order and wrap around after ten.
var category10 = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// SeriesColor returns the hex colour of the i-th selected country.
func SeriesColor(i int) string {
	if i < 0 {
		i = -i
	}
	return category10[i%len(category10)]
}

// DeathsColor is the darker shade used for the deaths line of a country
// whose cases line is drawn in hex.
func DeathsColor(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	return colorful.Color{R: c.R * 0.7, G: c.G * 0.7, B: c.B * 0.7}.Clamped().Hex()
}
