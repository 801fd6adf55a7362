// Package weights holds the named cost-function profiles the solver builds
// its assignment matrix from.
package weights

// Weights controls the relative influence of the spatial, glyph, and color
// terms in the solver's cost function, plus the displacement ceiling beyond
// which a match is abandoned in favor of leaving both sides as orphans.
type Weights struct {
	Spatial         float64
	Glyph           float64
	Color           float64
	GlyphMismatch   float64
	MaxDisplacement float64
}

// LIQUID favors spatial continuity: cells flow toward their destination
// position rather than rewriting in place.
var LIQUID = Weights{
	Spatial:         1.0,
	Glyph:           0.1,
	Color:           0.2,
	GlyphMismatch:   5.0,
	MaxDisplacement: 10000,
}

// CRISP favors in-place rewrites: text mutates rather than moves.
var CRISP = Weights{
	Spatial:         0.2,
	Glyph:           1.0,
	Color:           0.3,
	GlyphMismatch:   20.0,
	MaxDisplacement: 16,
}

// FADE favors color continuity: most transitions resolve to a whole-frame
// Oklch crossfade rather than moving or rewriting cells.
var FADE = Weights{
	Spatial:         0.1,
	Glyph:           0.1,
	Color:           1.0,
	GlyphMismatch:   2.0,
	MaxDisplacement: 4,
}

// maxColorCost is the largest value oklch.Distance can realistically return
// between two valid colors (lightness and chroma each contribute at most 1,
// and the chroma-weighted hue term is bounded by chroma itself).
const maxColorCost = 1.5

// OrphanCost is the sentinel cost used to pad the assignment matrix to
// square and to decide when a match is too expensive to keep: any candidate
// match costing at least this much is left as a pair of orphans instead.
func (w Weights) OrphanCost() float64 {
	return w.Spatial*w.MaxDisplacement + w.Glyph*w.GlyphMismatch + w.Color*maxColorCost
}
