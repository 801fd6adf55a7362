package tcellbackend

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tuimorph/cell"
	"github.com/lixenwraith/tuimorph/morph"
)

func newSimScreen(t *testing.T, width, height int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	screen.SetSize(width, height)
	return screen
}

func TestSizeReportsScreenDimensions(t *testing.T) {
	screen := newSimScreen(t, 10, 4)
	defer screen.Fini()

	b := New(screen)
	w, h := b.Size()
	if w != 10 || h != 4 {
		t.Errorf("got (%d,%d), want (10,4)", w, h)
	}
}

func TestDrawAndFlushWritesGlyph(t *testing.T) {
	screen := newSimScreen(t, 5, 2)
	defer screen.Fini()

	b := New(screen)
	err := b.Draw([]morph.CellUpdate{
		{Pos: cell.Position{Col: 1, Row: 0}, Cell: cell.NewCell("X", cell.Color{R: 255}, cell.DefaultColor, cell.AttrNone)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.Flush(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r, _, _, _ := screen.GetContent(1, 0)
	if r != 'X' {
		t.Errorf("got rune %q, want 'X'", r)
	}
}

func TestDrawPreservesCombiningGraphemeCluster(t *testing.T) {
	screen := newSimScreen(t, 5, 2)
	defer screen.Fini()

	flag := "\U0001F1FA\U0001F1F8"
	b := New(screen)
	err := b.Draw([]morph.CellUpdate{
		{Pos: cell.Position{Col: 0, Row: 0}, Cell: cell.NewCell(flag, cell.DefaultColor, cell.DefaultColor, cell.AttrNone)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.Flush(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mainc, combc, _, _ := screen.GetContent(0, 0)
	runes := append([]rune{mainc}, combc...)
	if string(runes) != flag {
		t.Errorf("got %q, want combining sequence %q preserved intact", string(runes), flag)
	}
}

func TestCursorRoundTrip(t *testing.T) {
	screen := newSimScreen(t, 5, 5)
	defer screen.Fini()

	b := New(screen)
	b.SetCursor(2, 3)
	col, row := b.GetCursor()
	if col != 2 || row != 3 {
		t.Errorf("got (%d,%d), want (2,3)", col, row)
	}
}

func TestClearWipesContent(t *testing.T) {
	screen := newSimScreen(t, 3, 1)
	defer screen.Fini()

	b := New(screen)
	b.Draw([]morph.CellUpdate{
		{Pos: cell.Position{Col: 0, Row: 0}, Cell: cell.NewCell("Z", cell.Color{G: 255}, cell.DefaultColor, cell.AttrNone)},
	})
	b.Flush()

	b.Clear()
	b.Flush()

	r, _, _, _ := screen.GetContent(0, 0)
	if r == 'Z' {
		t.Error("expected Clear to remove prior content")
	}
}

func TestDefaultColorLeavesStyleUnset(t *testing.T) {
	screen := newSimScreen(t, 3, 1)
	defer screen.Fini()

	b := New(screen)
	b.Draw([]morph.CellUpdate{
		{Pos: cell.Position{Col: 0, Row: 0}, Cell: cell.NewCell("A", cell.DefaultColor, cell.DefaultColor, cell.AttrNone)},
	})
	b.Flush()

	_, _, style, _ := screen.GetContent(0, 0)
	fg, bg, _ := style.Decompose()
	if fg != tcell.ColorDefault || bg != tcell.ColorDefault {
		t.Errorf("expected default style, got fg=%v bg=%v", fg, bg)
	}
}
