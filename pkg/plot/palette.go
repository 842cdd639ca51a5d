package plot

import (
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"

	csverrors "github.com/r3d91ll/csvplot/pkg/errors"
)

// DefaultPalette is the interactive column color cycle.
var DefaultPalette = []string{"red", "blue", "green", "orange", "purple", "cyan"}

var namedColors = map[string]drawing.Color{
	"red":    {R: 255, G: 0, B: 0, A: 255},
	"blue":   {R: 0, G: 0, B: 255, A: 255},
	"green":  {R: 0, G: 128, B: 0, A: 255},
	"orange": {R: 255, G: 165, B: 0, A: 255},
	"purple": {R: 128, G: 0, B: 128, A: 255},
	"cyan":   {R: 0, G: 255, B: 255, A: 255},
	"black":  {R: 0, G: 0, B: 0, A: 255},
	"white":  {R: 255, G: 255, B: 255, A: 255},
	"yellow": {R: 255, G: 255, B: 0, A: 255},
	"gray":   {R: 128, G: 128, B: 128, A: 255},
}

var (
	edgeColor = drawing.Color{R: 0, G: 0, B: 0, A: 255}
	fitColor  = namedColors["red"]
	gridColor = drawing.Color{R: 224, G: 224, B: 224, A: 255}
)

// Palette is an ordered color cycle.
type Palette []drawing.Color

// ParsePalette resolves color names or "#rrggbb" values.
func ParsePalette(names []string) (Palette, error) {
	if len(names) == 0 {
		return nil, csverrors.ConfigInvalid("palette", "at least one color is required")
	}
	p := make(Palette, 0, len(names))
	for _, n := range names {
		c, ok := ParseColor(n)
		if !ok {
			return nil, csverrors.ConfigInvalid("palette", "unknown color "+n)
		}
		p = append(p, c)
	}
	return p, nil
}

// ParseColor resolves a color name or a "#rrggbb" value.
func ParseColor(name string) (drawing.Color, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if c, ok := namedColors[name]; ok {
		return c, true
	}
	if strings.HasPrefix(name, "#") && len(name) == 7 {
		for _, r := range name[1:] {
			if !strings.ContainsRune("0123456789abcdef", r) {
				return drawing.Color{}, false
			}
		}
		return drawing.ColorFromHex(name[1:]), true
	}
	return drawing.Color{}, false
}

// Color returns the color for the column drawn at position i, cycling.
func (p Palette) Color(i int) drawing.Color {
	if len(p) == 0 {
		p = defaultPalette
	}
	return p[i%len(p)]
}

var defaultPalette = mustPalette(DefaultPalette)

func mustPalette(names []string) Palette {
	p, err := ParsePalette(names)
	if err != nil {
		panic(err)
	}
	return p
}
