package oklch

import colorful "github.com/lucasb-eyer/go-colorful"

// namedPalette maps the 16 standard ANSI color names to their canonical
// sRGB values, expressed as hex literals and parsed through go-colorful so
// the source of truth is a human-readable swatch table rather than raw byte
// triples.
var namedPalette = map[string]Color{}

var namedHex = map[string]string{
	"black":          "#000000",
	"red":            "#800000",
	"green":          "#008000",
	"yellow":         "#808000",
	"blue":           "#000080",
	"magenta":        "#800080",
	"cyan":           "#008080",
	"white":          "#c0c0c0",
	"bright-black":   "#808080",
	"bright-red":     "#ff0000",
	"bright-green":   "#00ff00",
	"bright-yellow":  "#ffff00",
	"bright-blue":    "#0000ff",
	"bright-magenta": "#ff00ff",
	"bright-cyan":    "#00ffff",
	"bright-white":   "#ffffff",
}

func init() {
	for name, hex := range namedHex {
		c, err := colorful.Hex(hex)
		if err != nil {
			panic("oklch: invalid built-in palette hex " + hex + ": " + err.Error())
		}
		r, g, b := c.RGB255()
		namedPalette[name] = FromSRGB(r, g, b)
	}
}

// Named looks up one of the 16 standard ANSI color names (e.g. "bright-red").
// "default" is not in this table; it is the terminal-default sentinel and
// must be requested via Default instead.
func Named(name string) (Color, bool) {
	c, ok := namedPalette[name]
	return c, ok
}
