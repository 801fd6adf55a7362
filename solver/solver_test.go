package solver

import (
	"testing"

	"github.com/lixenwraith/tuimorph/cell"
	"github.com/lixenwraith/tuimorph/easing"
	"github.com/lixenwraith/tuimorph/interpolate"
	"github.com/lixenwraith/tuimorph/plan"
	"github.com/lixenwraith/tuimorph/weights"
)

func gridOf(width, height int, glyph string, fg cell.Color) *cell.Buffer {
	c := cell.NewCell(glyph, fg, cell.DefaultColor, cell.AttrNone)
	return cell.NewBuffer(width, height, c)
}

func TestIdenticalBuffersAllStable(t *testing.T) {
	a := gridOf(10, 3, "A", cell.Color{})
	b := gridOf(10, 3, "A", cell.Color{})

	p, err := Diff(a, b, cell.Blank, weights.LIQUID, easing.Spec{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Stable) != 30 {
		t.Errorf("expected 30 stable entries, got %d", len(p.Stable))
	}
	if len(p.Mutating) != 0 || len(p.Displaced) != 0 || len(p.Orphans) != 0 {
		t.Error("identical buffers should produce only stable entries")
	}
}

func TestColorChangeIsMutating(t *testing.T) {
	a := gridOf(1, 1, "X", cell.Color{R: 255})
	b := gridOf(1, 1, "X", cell.Color{B: 255})

	p, err := Diff(a, b, cell.Blank, weights.LIQUID, easing.Spec{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Mutating) != 1 {
		t.Fatalf("expected 1 mutating entry, got %d", len(p.Mutating))
	}
	if p.Mutating[0].FromCell.Glyph != "X" || p.Mutating[0].ToCell.Glyph != "X" {
		t.Error("mutating glyph should stay X")
	}
}

func TestAppearingCell(t *testing.T) {
	a := cell.NewBuffer(2, 1, cell.Blank)
	b := cell.NewBuffer(2, 1, cell.Blank)
	b.Set(cell.Position{Col: 1, Row: 0}, cell.NewCell("Z", cell.Color{G: 255}, cell.DefaultColor, cell.AttrNone))

	p, err := Diff(a, b, cell.Blank, weights.LIQUID, easing.Spec{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Orphans) != 1 {
		t.Fatalf("expected 1 orphan entry, got %d", len(p.Orphans))
	}
	if p.Orphans[0].Direction != plan.Enter || p.Orphans[0].Cell.Glyph != "Z" {
		t.Errorf("expected entering orphan Z, got %+v", p.Orphans[0])
	}
}

func TestDisappearingCell(t *testing.T) {
	a := cell.NewBuffer(2, 1, cell.Blank)
	a.Set(cell.Position{Col: 0, Row: 0}, cell.NewCell("Z", cell.Color{G: 255}, cell.DefaultColor, cell.AttrNone))
	b := cell.NewBuffer(2, 1, cell.Blank)

	p, err := Diff(a, b, cell.Blank, weights.LIQUID, easing.Spec{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Orphans) != 1 {
		t.Fatalf("expected 1 orphan entry, got %d", len(p.Orphans))
	}
	if p.Orphans[0].Direction != plan.Exit {
		t.Error("expected an exiting orphan")
	}
}

func TestDisplacedCell(t *testing.T) {
	a := cell.NewBuffer(3, 1, cell.Blank)
	a.Set(cell.Position{Col: 0, Row: 0}, cell.NewCell("M", cell.Color{R: 255}, cell.DefaultColor, cell.AttrNone))
	b := cell.NewBuffer(3, 1, cell.Blank)
	b.Set(cell.Position{Col: 2, Row: 0}, cell.NewCell("M", cell.Color{R: 255}, cell.DefaultColor, cell.AttrNone))

	p, err := Diff(a, b, cell.Blank, weights.LIQUID, easing.Spec{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Displaced) != 1 {
		t.Fatalf("expected 1 displaced entry, got %d (orphans=%d)", len(p.Displaced), len(p.Orphans))
	}
	if p.Displaced[0].FromPos.Col != 0 || p.Displaced[0].ToPos.Col != 2 {
		t.Errorf("unexpected displacement: %+v", p.Displaced[0])
	}
}

func TestDimensionMismatch(t *testing.T) {
	a := cell.NewBuffer(3, 3, cell.Blank)
	b := cell.NewBuffer(4, 4, cell.Blank)

	_, err := Diff(a, b, cell.Blank, weights.LIQUID, easing.Spec{})
	if err != ErrDimensionMismatch {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestEnterAndExitUnderCrispWithSmallMaxDisplacement(t *testing.T) {
	a := cell.NewBuffer(5, 1, cell.Blank)
	a.Set(cell.Position{Col: 0, Row: 0}, cell.NewCell("A", cell.Color{R: 255}, cell.DefaultColor, cell.AttrNone))
	b := cell.NewBuffer(5, 1, cell.Blank)
	b.Set(cell.Position{Col: 4, Row: 0}, cell.NewCell("B", cell.Color{R: 255}, cell.DefaultColor, cell.AttrNone))

	w := weights.CRISP
	w.MaxDisplacement = 1

	p, err := Diff(a, b, cell.Blank, w, easing.Spec{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Displaced) != 0 {
		t.Errorf("expected no displacement beyond max_displacement, got %+v", p.Displaced)
	}
	if len(p.Orphans) != 2 {
		t.Fatalf("expected one exit and one enter orphan, got %d", len(p.Orphans))
	}
}

func TestColoredBlankAgainstColoredBlankStaysInPlan(t *testing.T) {
	background := cell.Blank
	a := cell.NewBuffer(2, 1, background)
	b := cell.NewBuffer(2, 1, background)

	coloredBlankA := cell.NewCell(" ", cell.Color{R: 100}, cell.DefaultColor, cell.AttrNone)
	coloredBlankB := cell.NewCell(" ", cell.Color{B: 200}, cell.DefaultColor, cell.AttrNone)
	pos := cell.Position{Col: 0, Row: 0}
	a.Set(pos, coloredBlankA)
	b.Set(pos, coloredBlankB)

	p, err := Diff(a, b, background, weights.LIQUID, easing.Spec{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(p.Mutating) != 0 || len(p.Displaced) != 0 || len(p.Orphans) != 0 {
		t.Fatalf("a colored blank changing color should stay Stable, got mutating=%d displaced=%d orphans=%d",
			len(p.Mutating), len(p.Displaced), len(p.Orphans))
	}
	if len(p.Stable) != 1 {
		t.Fatalf("expected only the colored-blank position as a Stable entry (the other is background in both frames), got %d", len(p.Stable))
	}

	var found bool
	for _, s := range p.Stable {
		if s.Pos == pos {
			found = true
			if !s.Cell.Equal(coloredBlankB) {
				t.Errorf("expected the colored blank to snap to the target's style, got %+v", s.Cell)
			}
		}
	}
	if !found {
		t.Fatal("colored-blank position is missing from the plan entirely")
	}

	rendered := interpolate.Render(p, 1.0, interpolate.DefaultGlyphThreshold, nil)
	if !rendered.Equal(b) {
		t.Error("render(plan, 1) should reproduce the target buffer exactly")
	}
}

func TestPlanIsDeterministicAcrossEqualInputs(t *testing.T) {
	a := gridOf(4, 4, "A", cell.Color{R: 10, G: 20, B: 30})
	b := gridOf(4, 4, "B", cell.Color{R: 40, G: 50, B: 60})

	p1, err := Diff(a, b, cell.Blank, weights.LIQUID, easing.Spec{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p2, err := Diff(a, b, cell.Blank, weights.LIQUID, easing.Spec{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(p1.Mutating) != len(p2.Mutating) {
		t.Fatal("two solves of identical inputs should produce the same entry counts")
	}
	for i := range p1.Mutating {
		if p1.Mutating[i] != p2.Mutating[i] {
			t.Errorf("mutating entry %d differs between solves: %+v vs %+v", i, p1.Mutating[i], p2.Mutating[i])
		}
	}
}
