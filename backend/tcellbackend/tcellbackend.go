// Package tcellbackend adapts a tcell.Screen to morph.Backend, so
// MorphBackend can wrap a real terminal screen (or tcell.SimulationScreen
// in tests) without either side knowing about the other.
package tcellbackend

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tuimorph/cell"
	"github.com/lixenwraith/tuimorph/morph"
)

// Backend wraps a tcell.Screen. tcell has no native cursor-position query,
// so the last position set via SetCursor is tracked locally.
type Backend struct {
	screen tcell.Screen
	col    int
	row    int
}

// New wraps an already-initialized tcell.Screen.
func New(screen tcell.Screen) *Backend {
	return &Backend{screen: screen}
}

// Size returns the screen's current dimensions.
func (b *Backend) Size() (int, int) {
	return b.screen.Size()
}

// Draw writes each update to the screen's content buffer; nothing reaches
// the terminal until Flush.
func (b *Backend) Draw(updates []morph.CellUpdate) error {
	for _, u := range updates {
		mainc, combc, style := toTcell(u.Cell)
		b.screen.SetContent(u.Pos.Col, u.Pos.Row, mainc, combc, style)
	}
	return nil
}

// Flush pushes the accumulated content buffer to the terminal.
func (b *Backend) Flush() error {
	b.screen.Show()
	return nil
}

// HideCursor hides the terminal cursor.
func (b *Backend) HideCursor() {
	b.screen.HideCursor()
}

// ShowCursor restores the cursor at the last position set via SetCursor.
func (b *Backend) ShowCursor() {
	b.screen.ShowCursor(b.col, b.row)
}

// GetCursor returns the last position set via SetCursor.
func (b *Backend) GetCursor() (int, int) {
	return b.col, b.row
}

// SetCursor moves the cursor and shows it there.
func (b *Backend) SetCursor(col, row int) {
	b.col, b.row = col, row
	b.screen.ShowCursor(col, row)
}

// Clear wipes the screen's content buffer.
func (b *Backend) Clear() {
	b.screen.Clear()
}

// toTcell splits c.Glyph into its mainc/combc runes so combining sequences
// (the cell package's grapheme-cluster invariant can hold more than one
// rune — a flag emoji is a regional-indicator pair, an accented letter may
// be base+combining-mark) reach tcell's SetContent intact instead of being
// truncated to their first code point.
func toTcell(c cell.Cell) (rune, []rune, tcell.Style) {
	runes := []rune(c.Glyph)
	mainc := ' '
	var combc []rune
	if len(runes) > 0 {
		mainc = runes[0]
		if len(runes) > 1 {
			combc = runes[1:]
		}
	}

	style := tcell.StyleDefault
	if !c.Fg.Default {
		style = style.Foreground(tcell.NewRGBColor(int32(c.Fg.R), int32(c.Fg.G), int32(c.Fg.B)))
	}
	if !c.Bg.Default {
		style = style.Background(tcell.NewRGBColor(int32(c.Bg.R), int32(c.Bg.G), int32(c.Bg.B)))
	}

	if c.Attrs&cell.Bold != 0 {
		style = style.Bold(true)
	}
	if c.Attrs&cell.Italic != 0 {
		style = style.Italic(true)
	}
	if c.Attrs&cell.Underline != 0 {
		style = style.Underline(true)
	}
	if c.Attrs&cell.Reverse != 0 {
		style = style.Reverse(true)
	}
	if c.Attrs&cell.Dim != 0 {
		style = style.Dim(true)
	}

	return mainc, combc, style
}
