// Package plan defines the frozen diff artifact produced by the solver and
// consumed by the interpolator: pure data, no behavior of its own.
package plan

import (
	"github.com/lixenwraith/tuimorph/cell"
	"github.com/lixenwraith/tuimorph/easing"
	"github.com/lixenwraith/tuimorph/weights"
)

// Direction distinguishes an orphan cell appearing in the target-only frame
// from one vanishing from the source-only frame.
type Direction uint8

const (
	Enter Direction = iota
	Exit
)

// Stable is a cell identical at an identical position in both frames; it is
// emitted verbatim for the whole transition.
type Stable struct {
	Pos  cell.Position
	Cell cell.Cell
}

// Mutating is a cell at a position shared by both frames whose content
// differs.
type Mutating struct {
	Pos      cell.Position
	FromCell cell.Cell
	ToCell   cell.Cell
}

// Displaced is a cell matched across frames to a different position by the
// solver's assignment step.
type Displaced struct {
	FromPos  cell.Position
	ToPos    cell.Position
	FromCell cell.Cell
	ToCell   cell.Cell
}

// Orphan is a cell present in only one of the two frames.
type Orphan struct {
	Pos       cell.Position
	Cell      cell.Cell
	Direction Direction
}

// Plan is the immutable record produced by solver.Diff and consumed by
// interpolate.Render. Once built, none of its fields are ever mutated; two
// Plans built from equal inputs compare deep-equal.
type Plan struct {
	Width, Height int
	Stable        []Stable
	Mutating      []Mutating
	Displaced     []Displaced
	Orphans       []Orphan
	Background    cell.Cell
	Weights       weights.Weights
	Easing        easing.Spec
}

// EmptyFrame reports whether the plan is a pure appear/disappear transition
// with no in-place or moving content: it has at least one Orphan entry and no
// Mutating or Displaced entries. Stable entries do not affect the result.
func (p *Plan) EmptyFrame() bool {
	return len(p.Mutating) == 0 && len(p.Displaced) == 0 && len(p.Orphans) > 0
}
