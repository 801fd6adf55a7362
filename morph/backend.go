// Package morph wraps an arbitrary cell-buffer backend with transition
// morphing: draws accumulate into a staging buffer, and flush smoothly
// interpolates from the previous logical frame to the new one instead of
// handing the backend an abrupt cut.
package morph

import (
	"errors"

	"github.com/lixenwraith/tuimorph/cell"
)

// Backend is the capability set MorphBackend requires from, and in turn
// provides to, its caller: dimensions, cell writes, flush, and cursor/clear
// passthroughs. Any terminal-cell renderer that implements this can be
// wrapped.
type Backend interface {
	Size() (width, height int)
	Draw(updates []CellUpdate) error
	Flush() error
	HideCursor()
	ShowCursor()
	GetCursor() (col, row int)
	SetCursor(col, row int)
	Clear()
}

// CellUpdate is a single (position, cell) write handed to the wrapped
// backend.
type CellUpdate struct {
	Pos  cell.Position
	Cell cell.Cell
}

// ErrBackend wraps any error surfaced by the wrapped backend.
type ErrBackend struct {
	Err error
}

func (e *ErrBackend) Error() string { return "morph: backend error: " + e.Err.Error() }
func (e *ErrBackend) Unwrap() error { return e.Err }

// ErrConfig is returned by New when the supplied Config is invalid.
var ErrConfig = errors.New("morph: invalid configuration")
