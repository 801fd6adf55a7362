// Package oklch implements bidirectional sRGB<->Oklch color conversion and
// the perceptual blending and distance functions the solver and interpolator
// build on. The transform pipeline (sRGB -> linear RGB -> Oklab -> Oklch) and
// its matrices follow Bjorn Ottosson's reference Oklab derivation.
package oklch

import (
	"math"

	"github.com/lixenwraith/tuimorph/cell"
)

// chromaEpsilon is the threshold below which hue is considered undefined
// (meaningless) for a color, per the near-zero-chroma edge case.
const chromaEpsilon = 1e-6

// hueTermFloor snaps a negligible chroma-weighted hue term to exactly zero,
// avoiding float noise when both colors are near-gray; see Distance.
const hueTermFloor = 1e-6

// Color is a triple (L, C, H) in Oklch space, plus a Valid flag. Valid=false
// marks the "terminal default" sentinel: it carries no numeric color and
// never takes part in numeric blending, only the t=0.5 snap rule below.
type Color struct {
	L, C, H float64
	Valid   bool
}

// Default is the sentinel Oklch color corresponding to cell.DefaultColor.
var Default = Color{Valid: false}

func srgbToLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

func linearToSRGB(c float64) float64 {
	if c <= 0.0031308 {
		return c * 12.92
	}
	return 1.055*math.Pow(c, 1.0/2.4) - 0.055
}

func linearRGBToOklab(r, g, b float64) (l, a, bb float64) {
	lc := 0.4122214708*r + 0.5363325363*g + 0.0514459929*b
	mc := 0.2119034982*r + 0.6806995451*g + 0.1073969566*b
	sc := 0.0883024619*r + 0.2817188376*g + 0.6299787005*b

	lc = math.Cbrt(lc)
	mc = math.Cbrt(mc)
	sc = math.Cbrt(sc)

	l = 0.2104542553*lc + 0.7936177850*mc - 0.0040720468*sc
	a = 1.9779984951*lc - 2.4285922050*mc + 0.4505937099*sc
	bb = 0.0259040371*lc + 0.7827717662*mc - 0.8086757660*sc
	return
}

func oklabToLinearRGB(l, a, b float64) (r, g, bb float64) {
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	lc := l_ * l_ * l_
	mc := m_ * m_ * m_
	sc := s_ * s_ * s_

	r = 4.0767416621*lc - 3.3077115913*mc + 0.2309699292*sc
	g = -1.2684380046*lc + 2.6097574011*mc - 0.3413193965*sc
	bb = -0.0041960863*lc - 0.7034186147*mc + 1.7076147010*sc
	return
}

func oklabToOklch(l, a, b float64) Color {
	c := math.Sqrt(a*a + b*b)
	h := 0.0
	if c >= chromaEpsilon {
		h = normalizeHue(math.Atan2(b, a))
	}
	return Color{L: l, C: c, H: h, Valid: true}
}

func oklchToOklab(c Color) (l, a, b float64) {
	l = c.L
	a = c.C * math.Cos(c.H)
	b = c.C * math.Sin(c.H)
	return
}

func normalizeHue(h float64) float64 {
	const twoPi = 2 * math.Pi
	h = math.Mod(h, twoPi)
	if h < 0 {
		h += twoPi
	}
	return h
}

// FromSRGB converts an 8-bit sRGB triple to Oklch.
func FromSRGB(r, g, b uint8) Color {
	lr := srgbToLinear(float64(r) / 255.0)
	lg := srgbToLinear(float64(g) / 255.0)
	lb := srgbToLinear(float64(b) / 255.0)
	l, a, bb := linearRGBToOklab(lr, lg, lb)
	return oklabToOklch(l, a, bb)
}

// ToSRGB converts back to an 8-bit sRGB triple, clamping each channel to
// [0,255] after rounding.
func (c Color) ToSRGB() (r, g, b uint8) {
	l, a, bb := oklchToOklab(c)
	lr, lg, lb := oklabToLinearRGB(l, a, bb)

	conv := func(v float64) uint8 {
		v = linearToSRGB(clamp01(v))
		v = math.Round(v*255.0) + 0.0
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		return uint8(v)
	}
	return conv(lr), conv(lg), conv(lb)
}

// FromCellColor converts a grid cell color to Oklch. The default sentinel
// maps to the Oklch Default sentinel and is never assigned a numeric value.
func FromCellColor(c cell.Color) Color {
	if c.Default {
		return Default
	}
	return FromSRGB(c.R, c.G, c.B)
}

// ToCellColor is the inverse of FromCellColor.
func (c Color) ToCellColor() cell.Color {
	if !c.Valid {
		return cell.DefaultColor
	}
	r, g, b := c.ToSRGB()
	return cell.Color{R: r, G: g, B: b}
}

// Darken returns a zero-lightness version of c, preserving chroma and hue.
// Used by the interpolator to crossfade orphan cells through black.
func Darken(c Color) Color {
	if !c.Valid {
		return c
	}
	return Color{L: 0, C: c.C, H: c.H, Valid: true}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Blend interpolates between two Oklch colors at u in [0,1]. Lightness and
// chroma are linear; hue takes the shortest circular arc. If either endpoint
// is the terminal-default sentinel, the pair doesn't interpolate numerically
// at all: it snaps at u=0.5. If either endpoint has near-zero chroma (hue
// undefined), the blend borrows the other endpoint's hue so a gray doesn't
// spuriously rotate through color on its way to a saturated target.
func Blend(a, b Color, u float64) Color {
	if math.IsNaN(u) {
		u = 0
	}
	u = clamp01(u)

	if !a.Valid || !b.Valid {
		if u < 0.5 {
			return a
		}
		return b
	}

	l := a.L + (b.L-a.L)*u
	c := a.C + (b.C-a.C)*u

	ha, hb := a.H, b.H
	if a.C < chromaEpsilon && b.C >= chromaEpsilon {
		ha = hb
	} else if b.C < chromaEpsilon && a.C >= chromaEpsilon {
		hb = ha
	}

	dh := hb - ha
	if dh > math.Pi {
		dh -= 2 * math.Pi
	} else if dh < -math.Pi {
		dh += 2 * math.Pi
	}

	h := normalizeHue(ha + dh*u)

	return Color{L: l, C: c, H: h, Valid: true}
}

// defaultMismatchCost is the distance assigned when comparing a concrete
// color against the terminal-default sentinel: they're incomparable
// numerically, but the solver still needs a finite cost to rank candidates.
const defaultMismatchCost = 0.5

// Distance is the perceptual distance between two Oklch colors, hue-weighted
// by mean chroma so near-gray colors don't pay for a hue rotation they can't
// perceive.
func Distance(a, b Color) float64 {
	if !a.Valid || !b.Valid {
		if a.Valid != b.Valid {
			return defaultMismatchCost
		}
		return 0
	}

	dl := a.L - b.L
	dc := a.C - b.C

	dh := b.H - a.H
	if dh > math.Pi {
		dh -= 2 * math.Pi
	} else if dh < -math.Pi {
		dh += 2 * math.Pi
	}
	cMean := (a.C + b.C) / 2
	dhTerm := dh * cMean
	if math.Abs(dhTerm) < hueTermFloor {
		dhTerm = 0
	}

	return math.Sqrt(dl*dl + dc*dc + dhTerm*dhTerm)
}
