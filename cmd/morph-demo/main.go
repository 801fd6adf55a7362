// Command morph-demo cycles a handful of static layouts through a
// MorphBackend so the interpolated transition between them can be watched
// in a real terminal.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tuimorph/backend/tcellbackend"
	"github.com/lixenwraith/tuimorph/cell"
	"github.com/lixenwraith/tuimorph/clock"
	"github.com/lixenwraith/tuimorph/easing"
	"github.com/lixenwraith/tuimorph/morph"
	"github.com/lixenwraith/tuimorph/weights"
)

type scene func(width, height int) []morph.CellUpdate

func main() {
	weightName := flag.String("weights", "liquid", "transition feel: liquid, crisp, or fade")
	transitionMS := flag.Uint("transition-ms", 300, "transition duration in milliseconds")
	flag.Parse()

	w, err := parseWeights(*weightName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "morph-demo: %v\n", err)
		os.Exit(1)
	}

	app, err := newApp(w, uint32(*transitionMS))
	if err != nil {
		fmt.Fprintf(os.Stderr, "morph-demo: failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer app.cleanup()

	app.run()
}

func parseWeights(name string) (weights.Weights, error) {
	switch name {
	case "liquid":
		return weights.LIQUID, nil
	case "crisp":
		return weights.CRISP, nil
	case "fade":
		return weights.FADE, nil
	default:
		return weights.Weights{}, fmt.Errorf("unknown weights preset %q (want liquid, crisp, or fade)", name)
	}
}

type app struct {
	screen tcell.Screen
	mb     *morph.MorphBackend
	scenes []scene
	logger *log.Logger
}

func newApp(w weights.Weights, transitionMS uint32) (*app, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	cfg := morph.DefaultConfig()
	cfg.Weights = w
	cfg.TransitionMS = transitionMS
	cfg.Easing = easing.Spec{Kind: easing.EaseInOut}

	inner := tcellbackend.New(screen)
	logger := log.New(os.Stderr, "morph-demo: ", log.LstdFlags)

	mb, err := morph.New(inner, cfg, clock.New(), morph.WithLogger(logger))
	if err != nil {
		screen.Fini()
		return nil, err
	}

	return &app{
		screen: screen,
		mb:     mb,
		scenes: []scene{sceneRedLeft, sceneBlueRight, sceneGreenSplit, sceneCenteredPanel},
		logger: logger,
	}, nil
}

func (a *app) cleanup() {
	a.screen.Fini()
}

func (a *app) render(index int) {
	width, height := a.mb.Size()
	a.mb.Clear()
	a.mb.Draw(headerUpdates(width))
	a.mb.Draw(a.scenes[index](width, height))
	if err := a.mb.Flush(); err != nil {
		a.logger.Printf("flush failed: %v", err)
	}
}

func (a *app) run() {
	defer func() {
		if r := recover(); r != nil {
			a.screen.Fini()
			fmt.Fprintf(os.Stderr, "morph-demo: panic: %v\n", r)
			os.Exit(1)
		}
	}()

	current := 0
	a.render(current)

	for {
		ev := a.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
				return
			case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
				return
			case ev.Key() == tcell.KeyRight || (ev.Key() == tcell.KeyRune && ev.Rune() == ' ') || ev.Key() == tcell.KeyEnter:
				current = (current + 1) % len(a.scenes)
				a.render(current)
			case ev.Key() == tcell.KeyLeft:
				current = (current - 1 + len(a.scenes)) % len(a.scenes)
				a.render(current)
			}
		case *tcell.EventResize:
			a.screen.Sync()
			a.render(current)
		}
	}
}

func headerUpdates(width int) []morph.CellUpdate {
	label := "tui-morph demo  [<-/-> cycle scenes]  [q quit]"
	updates := make([]morph.CellUpdate, 0, width)
	for col := 0; col < width && col < len(label); col++ {
		updates = append(updates, morph.CellUpdate{
			Pos:  cell.Position{Col: col, Row: 0},
			Cell: cell.NewCell(string(label[col]), cell.Color{R: 140, G: 140, B: 140}, cell.DefaultColor, cell.AttrNone),
		})
	}
	return updates
}

func fillRect(updates []morph.CellUpdate, x0, y0, w, h int, glyph string, fg, bg cell.Color) []morph.CellUpdate {
	for row := y0; row < y0+h; row++ {
		for col := x0; col < x0+w; col++ {
			updates = append(updates, morph.CellUpdate{
				Pos:  cell.Position{Col: col, Row: row},
				Cell: cell.NewCell(glyph, fg, bg, cell.AttrNone),
			})
		}
	}
	return updates
}

func sceneRedLeft(width, height int) []morph.CellUpdate {
	w := width * 40 / 100
	return fillRect(nil, 0, 1, w, height-1, "A", cell.Color{R: 255, G: 80, B: 80}, cell.Color{R: 40})
}

func sceneBlueRight(width, height int) []morph.CellUpdate {
	w := width * 40 / 100
	return fillRect(nil, width-w, 1, w, height-1, "B", cell.Color{R: 80, G: 120, B: 255}, cell.Color{B: 40})
}

func sceneGreenSplit(width, height int) []morph.CellUpdate {
	half := width / 2
	updates := fillRect(nil, 0, 1, half, height-1, "C", cell.Color{R: 80, G: 255, B: 80}, cell.Color{G: 40})
	return fillRect(updates, half, 1, width-half, height-1, "D", cell.Color{R: 255, G: 200, B: 80}, cell.Color{R: 40, G: 30})
}

func sceneCenteredPanel(width, height int) []morph.CellUpdate {
	w, h := width/2, (height-1)/2
	x0, y0 := (width-w)/2, 1+(height-1-h)/2
	return fillRect(nil, x0, y0, w, h, "E", cell.Color{R: 200, G: 80, B: 255}, cell.Color{R: 30, B: 40})
}
