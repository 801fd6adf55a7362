package morph

import (
	"errors"

	"github.com/lixenwraith/tuimorph/cell"
)

var errBackendFailure = errors.New("fake backend: simulated draw failure")

// fakeBackend is an in-memory Backend used by unit tests: it records every
// flushed frame and can be made to fail on demand to exercise recovery.
type fakeBackend struct {
	width, height int
	current       *cell.Buffer
	flushes       []*cell.Buffer
	cursorCol     int
	cursorRow     int
	cursorHidden  bool
	failNextDraw  bool
}

func newFakeBackend(width, height int) *fakeBackend {
	return &fakeBackend{
		width:   width,
		height:  height,
		current: cell.NewBuffer(width, height, cell.Blank),
	}
}

func (f *fakeBackend) Size() (int, int) { return f.width, f.height }

func (f *fakeBackend) Draw(updates []CellUpdate) error {
	if f.failNextDraw {
		f.failNextDraw = false
		return errBackendFailure
	}
	for _, u := range updates {
		f.current.Set(u.Pos, u.Cell)
	}
	return nil
}

func (f *fakeBackend) Flush() error {
	f.flushes = append(f.flushes, f.current.Clone())
	return nil
}

func (f *fakeBackend) HideCursor()            { f.cursorHidden = true }
func (f *fakeBackend) ShowCursor()            { f.cursorHidden = false }
func (f *fakeBackend) GetCursor() (int, int)  { return f.cursorCol, f.cursorRow }
func (f *fakeBackend) SetCursor(col, row int) { f.cursorCol, f.cursorRow = col, row }
func (f *fakeBackend) Clear()                 { f.current.Fill(cell.Blank) }
