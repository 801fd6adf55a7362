// Package solver diffs two logical buffers and produces a plan.Plan: a
// classification of every cell that is not background in both frames into
// Stable, Mutating, Displaced, or Orphan, with displaced cells chosen by
// minimum-cost bipartite assignment.
package solver

import (
	"errors"
	"sort"

	"github.com/lixenwraith/tuimorph/cell"
	"github.com/lixenwraith/tuimorph/easing"
	"github.com/lixenwraith/tuimorph/oklch"
	"github.com/lixenwraith/tuimorph/plan"
	"github.com/lixenwraith/tuimorph/weights"
)

// ErrDimensionMismatch is returned when prev and next do not share the same
// width and height.
var ErrDimensionMismatch = errors.New("solver: prev and next buffers have different dimensions")

// candidate is a non-empty, differing cell on one side of the diff, carrying
// enough to both cost it against the other side and emit it verbatim.
type candidate struct {
	pos  cell.Position
	cell cell.Cell
}

// Diff classifies every cell between prev and next and assigns displaced
// cells via the Hungarian algorithm, returning a frozen Plan. background is
// the fill cell used both as the "empty" test during partitioning and as
// the plan's out-of-entry background.
func Diff(prev, next *cell.Buffer, background cell.Cell, w weights.Weights, e easing.Spec) (*plan.Plan, error) {
	if prev.Width != next.Width || prev.Height != next.Height {
		return nil, ErrDimensionMismatch
	}
	width, height := prev.Width, prev.Height

	// isEmpty is the literal "this position needs no plan entry at all"
	// test: the cell is exactly the background fill. glyphBlank is weaker —
	// it only asks whether the cell looks like background-shaped space,
	// regardless of color — and decides whether a position participates in
	// the appear/disappear/mutate candidate sets versus a direct style snap.
	isEmpty := func(c cell.Cell) bool {
		return c.Equal(background)
	}
	glyphBlank := func(c cell.Cell) bool {
		return c.Glyph == background.Glyph
	}

	var stable []plan.Stable
	var srcCandidates, dstCandidates []candidate

	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			pos := cell.Position{Col: col, Row: row}
			sc := prev.At(pos)
			dc := next.At(pos)

			switch {
			case isEmpty(sc) && isEmpty(dc):
				// Both the literal background fill: nothing changed here.
			case sc.Equal(dc):
				stable = append(stable, plan.Stable{Pos: pos, Cell: sc})
			case glyphBlank(sc) && !glyphBlank(dc):
				dstCandidates = append(dstCandidates, candidate{pos: pos, cell: dc})
			case !glyphBlank(sc) && glyphBlank(dc):
				srcCandidates = append(srcCandidates, candidate{pos: pos, cell: sc})
			case !glyphBlank(sc) && !glyphBlank(dc):
				srcCandidates = append(srcCandidates, candidate{pos: pos, cell: sc})
				dstCandidates = append(dstCandidates, candidate{pos: pos, cell: dc})
			default:
				// Both glyph-blank (e.g. a colored blank) but differing in
				// style from each other — neither side is interesting to the
				// assignment step, so snap straight to the target's style
				// rather than dropping the position from the plan.
				stable = append(stable, plan.Stable{Pos: pos, Cell: dc})
			}
		}
	}

	mutating, displaced, orphans := assign(srcCandidates, dstCandidates, w)

	sort.Slice(stable, func(i, j int) bool { return stable[i].Pos.Less(stable[j].Pos) })
	sort.Slice(mutating, func(i, j int) bool { return mutating[i].Pos.Less(mutating[j].Pos) })
	sort.Slice(displaced, func(i, j int) bool { return displaced[i].ToPos.Less(displaced[j].ToPos) })
	sort.Slice(orphans, func(i, j int) bool { return orphans[i].Pos.Less(orphans[j].Pos) })

	return &plan.Plan{
		Width:      width,
		Height:     height,
		Stable:     stable,
		Mutating:   mutating,
		Displaced:  displaced,
		Orphans:    orphans,
		Background: background,
		Weights:    w,
		Easing:     e,
	}, nil
}

// assign runs the cost-matrix construction and Hungarian assignment over
// the interesting candidates on both sides, then classifies each matched or
// unmatched pair.
func assign(src, dst []candidate, w weights.Weights) ([]plan.Mutating, []plan.Displaced, []plan.Orphan) {
	var mutating []plan.Mutating
	var displaced []plan.Displaced
	var orphans []plan.Orphan

	if len(src) == 0 && len(dst) == 0 {
		return mutating, displaced, orphans
	}
	if len(src) == 0 {
		for _, d := range dst {
			orphans = append(orphans, plan.Orphan{Pos: d.pos, Cell: d.cell, Direction: plan.Enter})
		}
		return mutating, displaced, orphans
	}
	if len(dst) == 0 {
		for _, s := range src {
			orphans = append(orphans, plan.Orphan{Pos: s.pos, Cell: s.cell, Direction: plan.Exit})
		}
		return mutating, displaced, orphans
	}

	n, m := len(src), len(dst)
	cost := make([][]float64, n)
	for i := range cost {
		cost[i] = make([]float64, m)
		for j := range cost[i] {
			cost[i][j] = cellCost(src[i], dst[j], w)
		}
	}

	orphanCost := w.OrphanCost()
	matchedDst := make([]bool, m)

	assignment := hungarian(cost, n, m)

	for i, j := range assignment {
		if j < 0 || cost[i][j] >= orphanCost {
			orphans = append(orphans, plan.Orphan{Pos: src[i].pos, Cell: src[i].cell, Direction: plan.Exit})
			continue
		}

		matchedDst[j] = true
		if src[i].pos == dst[j].pos {
			mutating = append(mutating, plan.Mutating{Pos: src[i].pos, FromCell: src[i].cell, ToCell: dst[j].cell})
		} else {
			displaced = append(displaced, plan.Displaced{
				FromPos:  src[i].pos,
				ToPos:    dst[j].pos,
				FromCell: src[i].cell,
				ToCell:   dst[j].cell,
			})
		}
	}

	for j, d := range dst {
		if !matchedDst[j] {
			orphans = append(orphans, plan.Orphan{Pos: d.pos, Cell: d.cell, Direction: plan.Enter})
		}
	}

	return mutating, displaced, orphans
}

func cellCost(s, d candidate, w weights.Weights) float64 {
	dCol := float64(d.pos.Col - s.pos.Col)
	dRow := float64(d.pos.Row - s.pos.Row)
	spatial := dCol*dCol + dRow*dRow

	glyph := 0.0
	if s.cell.Glyph != d.cell.Glyph {
		glyph = w.GlyphMismatch
	}

	color := oklch.Distance(oklch.FromCellColor(s.cell.Fg), oklch.FromCellColor(d.cell.Fg)) +
		oklch.Distance(oklch.FromCellColor(s.cell.Bg), oklch.FromCellColor(d.cell.Bg))

	return w.Spatial*spatial + w.Glyph*glyph + w.Color*color
}
