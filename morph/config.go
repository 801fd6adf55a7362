package morph

import (
	"fmt"
	"math"

	"github.com/lixenwraith/tuimorph/easing"
	"github.com/lixenwraith/tuimorph/weights"
)

// Mode selects how the tick loop advances during a transition.
type Mode uint8

const (
	// Blocking sleeps between ticks for the configured transition duration.
	Blocking Mode = iota
	// Driven expects the caller to invoke Tick(elapsedMS) from its own loop.
	Driven
)

// Config configures a MorphBackend. TransitionMS and TickCount must both be
// positive; Bezier easing parameters, if used, must be finite.
type Config struct {
	TransitionMS   uint32
	TickCount      uint32
	Mode           Mode
	Weights        weights.Weights
	Easing         easing.Spec
	GlyphThreshold float64
}

// DefaultConfig mirrors the contract's default transition: 200ms over 12
// ticks, liquid movement, linear easing.
func DefaultConfig() Config {
	return Config{
		TransitionMS:   200,
		TickCount:      12,
		Mode:           Blocking,
		Weights:        weights.LIQUID,
		Easing:         easing.Spec{Kind: easing.Linear},
		GlyphThreshold: 0.15,
	}
}

func (c Config) validate() error {
	if c.TransitionMS == 0 {
		return fmt.Errorf("%w: transition_ms must be positive", ErrConfig)
	}
	if c.TickCount == 0 {
		return fmt.Errorf("%w: tick_count must be positive", ErrConfig)
	}
	if c.Easing.Kind == easing.CubicBezier {
		for _, v := range []float64{c.Easing.X1, c.Easing.Y1, c.Easing.X2, c.Easing.Y2} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: cubic bezier control point must be finite", ErrConfig)
			}
		}
	}
	return nil
}
