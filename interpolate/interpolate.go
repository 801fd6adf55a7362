// Package interpolate turns a frozen plan.Plan and a point in time into a
// concrete cell.Buffer. Render is a pure function of its inputs: the same
// (plan, t) pair always yields the same buffer.
package interpolate

import (
	"log"
	"math"

	"github.com/lixenwraith/tuimorph/cell"
	"github.com/lixenwraith/tuimorph/oklch"
	"github.com/lixenwraith/tuimorph/plan"
)

// DefaultGlyphThreshold is the lightness below which a glyph is treated as
// illegible and swapped for the background's glyph during a crossfade.
const DefaultGlyphThreshold = 0.15

// Render evaluates plan p at time tRaw, clamped to [0,1] and passed through
// p.Easing. A NaN tRaw is treated as t=0 and, if logger is non-nil, reported
// as a diagnostic rather than failing the call.
func Render(p *plan.Plan, tRaw, glyphThreshold float64, logger *log.Logger) *cell.Buffer {
	if math.IsNaN(tRaw) {
		if logger != nil {
			logger.Printf("interpolate: render called with NaN t, treating as 0")
		}
		tRaw = 0
	}
	t := p.Easing.Apply(clamp01(tRaw))

	buf := cell.NewBuffer(p.Width, p.Height, p.Background)

	for _, s := range p.Stable {
		buf.Set(s.Pos, s.Cell)
	}

	for _, m := range p.Mutating {
		buf.Set(m.Pos, renderCrossfade(m.FromCell, m.ToCell, t, glyphThreshold, p.Background))
	}

	for _, o := range p.Orphans {
		buf.Set(o.Pos, renderOrphan(o, t, glyphThreshold, p.Background))
	}

	renderDisplaced(buf, p.Displaced, t, glyphThreshold, p.Background)

	return buf
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

// crossoverTau finds τ ∈ [0,1] where lerp(la, lb, τ) crosses threshold. If
// both endpoints lie on the same side of threshold, the crossover is
// undefined and the midpoint is used instead.
func crossoverTau(la, lb, threshold float64) float64 {
	aboveA := la >= threshold
	aboveB := lb >= threshold
	if aboveA == aboveB {
		return 0.5
	}
	if lb == la {
		return 0.5
	}
	tau := (threshold - la) / (lb - la)
	return clamp01(tau)
}

func renderCrossfade(a, b cell.Cell, t, glyphThreshold float64, background cell.Cell) cell.Cell {
	aFg := oklch.FromCellColor(a.Fg)
	bFg := oklch.FromCellColor(b.Fg)
	aBg := oklch.FromCellColor(a.Bg)
	bBg := oklch.FromCellColor(b.Bg)

	tau := crossoverTau(lightnessOf(aFg), lightnessOf(bFg), glyphThreshold)

	glyph, attrs := a.Glyph, a.Attrs
	if t >= tau {
		glyph, attrs = b.Glyph, b.Attrs
	}

	return cell.Cell{
		Glyph: glyph,
		Fg:    oklch.Blend(aFg, bFg, t).ToCellColor(),
		Bg:    oklch.Blend(aBg, bBg, t).ToCellColor(),
		Attrs: attrs,
	}
}

func lightnessOf(c oklch.Color) float64 {
	if !c.Valid {
		return 1
	}
	return c.L
}

func renderOrphan(o plan.Orphan, t, glyphThreshold float64, background cell.Cell) cell.Cell {
	// At the exact boundary where this cell doesn't exist in one of the two
	// logical frames (t=0 for an entering cell, t=1 for an exiting one), the
	// position is genuinely empty there: render it as background verbatim so
	// render(plan,0)/render(plan,1) reproduce the source/target buffers.
	if (o.Direction == plan.Enter && t <= 0) || (o.Direction == plan.Exit && t >= 1) {
		return background
	}

	fg := oklch.FromCellColor(o.Cell.Fg)
	bg := oklch.FromCellColor(o.Cell.Bg)
	darkFg := oklch.Darken(fg)
	darkBg := oklch.Darken(bg)

	tau := crossoverTau(0, lightnessOf(fg), glyphThreshold)

	var visible bool
	var blendedFg, blendedBg oklch.Color
	switch o.Direction {
	case plan.Enter:
		visible = t >= tau
		blendedFg = oklch.Blend(darkFg, fg, t)
		blendedBg = oklch.Blend(darkBg, bg, t)
	default: // plan.Exit
		visible = t < (1 - tau)
		blendedFg = oklch.Blend(fg, darkFg, t)
		blendedBg = oklch.Blend(bg, darkBg, t)
	}

	glyph := o.Cell.Glyph
	attrs := o.Cell.Attrs
	if !visible {
		glyph = background.Glyph
		attrs = cell.AttrNone
	}

	return cell.Cell{
		Glyph: glyph,
		Fg:    blendedFg.ToCellColor(),
		Bg:    blendedBg.ToCellColor(),
		Attrs: attrs,
	}
}

// displacedWinner tracks, per destination position, the displaced entry
// currently occupying it: the one with the higher source lightness wins,
// tiebroken by the lower row-major source position.
type displacedWinner struct {
	cellVal   cell.Cell
	lightness float64
	fromPos   cell.Position
}

func renderDisplaced(buf *cell.Buffer, entries []plan.Displaced, t, glyphThreshold float64, background cell.Cell) {
	winners := make(map[cell.Position]displacedWinner, len(entries))

	for _, d := range entries {
		pos := roundLerpPos(d.FromPos, d.ToPos, t)
		rendered := renderCrossfade(d.FromCell, d.ToCell, t, glyphThreshold, background)
		lightness := lightnessOf(oklch.FromCellColor(d.FromCell.Fg))

		cur, exists := winners[pos]
		if !exists || lightness > cur.lightness ||
			(lightness == cur.lightness && d.FromPos.Less(cur.fromPos)) {
			winners[pos] = displacedWinner{cellVal: rendered, lightness: lightness, fromPos: d.FromPos}
		}
	}

	for pos, w := range winners {
		buf.Set(pos, w.cellVal)
	}
}

func roundLerpPos(from, to cell.Position, t float64) cell.Position {
	col := float64(from.Col) + float64(to.Col-from.Col)*t
	row := float64(from.Row) + float64(to.Row-from.Row)*t
	return cell.Position{Col: int(math.Round(col)), Row: int(math.Round(row))}
}
