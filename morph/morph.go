package morph

import (
	"log"
	"time"

	"github.com/lixenwraith/tuimorph/cell"
	"github.com/lixenwraith/tuimorph/clock"
	"github.com/lixenwraith/tuimorph/diagnostics"
	"github.com/lixenwraith/tuimorph/interpolate"
	"github.com/lixenwraith/tuimorph/plan"
	"github.com/lixenwraith/tuimorph/solver"
)

// TickResult reports the outcome of a driven-mode Tick call.
type TickResult uint8

const (
	Idle TickResult = iota
	InProgress
	Completed
)

// MorphBackend wraps an inner Backend, smoothing each logical frame change
// into a short animated transition instead of an abrupt cut. It implements
// Backend itself, so a host can use it as a drop-in replacement for the
// backend it wraps.
type MorphBackend struct {
	inner Backend
	cfg   Config
	clk   clock.Clock
	log   *log.Logger
	stats *diagnostics.Registry

	width, height int
	background    cell.Cell

	prevLogical *cell.Buffer
	staging     *cell.Buffer

	// driven-mode in-flight transition state
	activePlan   *plan.Plan
	elapsedMS    uint32
	inTransition bool
}

// Option configures optional collaborators on a MorphBackend.
type Option func(*MorphBackend)

// WithLogger attaches an optional diagnostic sink; nil is valid and disables
// diagnostic logging (e.g. the NaN-time notice).
func WithLogger(l *log.Logger) Option {
	return func(m *MorphBackend) { m.log = l }
}

// WithMetrics attaches an optional metrics registry.
func WithMetrics(r *diagnostics.Registry) Option {
	return func(m *MorphBackend) { m.stats = r }
}

// WithBackground overrides the fill cell used for "empty" classification
// and out-of-plan positions; the default is cell.Blank.
func WithBackground(c cell.Cell) Option {
	return func(m *MorphBackend) { m.background = c }
}

// New wraps inner with morphing behavior per cfg. Fails with ErrConfig if
// cfg is not constructible.
func New(inner Backend, cfg Config, clk clock.Clock, opts ...Option) (*MorphBackend, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	width, height := inner.Size()
	mb := &MorphBackend{
		inner:      inner,
		cfg:        cfg,
		clk:        clk,
		width:      width,
		height:     height,
		background: cell.Blank,
	}
	for _, opt := range opts {
		opt(mb)
	}

	mb.prevLogical = cell.NewBuffer(width, height, mb.background)
	mb.staging = cell.NewBuffer(width, height, mb.background)
	return mb, nil
}

// Size returns the wrapped backend's dimensions.
func (m *MorphBackend) Size() (int, int) { return m.width, m.height }

// Draw accumulates cell writes into the in-memory staging buffer; nothing
// reaches the wrapped backend until Flush.
func (m *MorphBackend) Draw(updates []CellUpdate) error {
	for _, u := range updates {
		m.staging.Set(u.Pos, u.Cell)
	}
	return nil
}

// HideCursor, ShowCursor, GetCursor, SetCursor, and Clear pass through to
// the wrapped backend unchanged; MorphBackend only intercepts Draw/Flush.
func (m *MorphBackend) HideCursor()            { m.inner.HideCursor() }
func (m *MorphBackend) ShowCursor()            { m.inner.ShowCursor() }
func (m *MorphBackend) GetCursor() (int, int)  { return m.inner.GetCursor() }
func (m *MorphBackend) SetCursor(col, row int) { m.inner.SetCursor(col, row) }
func (m *MorphBackend) Clear()                 { m.inner.Clear() }

// InTransition reports whether a driven-mode transition is currently in
// flight.
func (m *MorphBackend) InTransition() bool { return m.inTransition }

// Flush commits the staging buffer. If it is unchanged from the previous
// logical frame, it is forwarded with no animation. Otherwise a plan is
// solved and, in Blocking mode, driven to completion here; in Driven mode
// the plan becomes active and the caller must drive it via Tick.
func (m *MorphBackend) Flush() error {
	if m.staging.Equal(m.prevLogical) {
		if err := m.flushBufferToInner(m.staging); err != nil {
			return &ErrBackend{Err: err}
		}
		return nil
	}

	source := m.prevLogical
	if m.cfg.Mode == Driven && m.inTransition {
		source = interpolate.Render(m.activePlan, m.currentT(), m.cfg.GlyphThreshold, m.log)
		m.stats.Incr(diagnostics.CounterTransitionsInterrupted)
	}

	p, err := solver.Diff(source, m.staging, m.background, m.cfg.Weights, m.cfg.Easing)
	if err != nil {
		return err
	}

	if m.cfg.Mode == Driven {
		m.activePlan = p
		m.elapsedMS = 0
		m.inTransition = true
		m.inner.HideCursor()
		m.stats.Incr(diagnostics.CounterTransitionsStarted)
		return nil
	}

	return m.runBlockingTransition(p)
}

// runBlockingTransition drives plan p to completion synchronously, sleeping
// between ticks on the injected clock.
func (m *MorphBackend) runBlockingTransition(p *plan.Plan) error {
	m.stats.Incr(diagnostics.CounterTransitionsStarted)
	m.inner.HideCursor()
	defer m.inner.ShowCursor()

	tickDuration := m.cfg.TransitionMS / m.cfg.TickCount
	n := m.cfg.TickCount

	for k := uint32(1); k <= n; k++ {
		t := float64(k) / float64(n)
		buf := interpolate.Render(p, t, m.cfg.GlyphThreshold, m.log)

		if err := m.flushBufferToInner(buf); err != nil {
			m.recoverToTarget()
			return &ErrBackend{Err: err}
		}
		m.stats.Incr(diagnostics.CounterTicksRendered)

		if k < n {
			m.clk.Sleep(time.Duration(tickDuration) * time.Millisecond)
		}
	}

	m.prevLogical = m.staging.Clone()
	m.stats.Incr(diagnostics.CounterTransitionsCompleted)
	return nil
}

// Tick advances a driven-mode transition by elapsedMS of wall-clock time.
// It is a no-op returning Idle when no transition is in flight.
func (m *MorphBackend) Tick(elapsedMS uint32) (TickResult, error) {
	if !m.inTransition {
		return Idle, nil
	}

	m.elapsedMS += elapsedMS
	t := float64(m.elapsedMS) / float64(m.cfg.TransitionMS)
	if t > 1 {
		m.stats.Incr(diagnostics.CounterTickOvershoot)
		t = 1
	}

	buf := interpolate.Render(m.activePlan, t, m.cfg.GlyphThreshold, m.log)
	if err := m.flushBufferToInner(buf); err != nil {
		m.inTransition = false
		m.recoverToTarget()
		return Idle, &ErrBackend{Err: err}
	}
	m.stats.Incr(diagnostics.CounterTicksRendered)

	if t >= 1 {
		m.prevLogical = m.staging.Clone()
		m.inTransition = false
		m.inner.ShowCursor()
		m.stats.Incr(diagnostics.CounterTransitionsCompleted)
		return Completed, nil
	}
	return InProgress, nil
}

// currentT returns the driven-mode transition's current progress fraction.
func (m *MorphBackend) currentT() float64 {
	if m.cfg.TransitionMS == 0 {
		return 1
	}
	t := float64(m.elapsedMS) / float64(m.cfg.TransitionMS)
	if t > 1 {
		return 1
	}
	return t
}

// recoverToTarget abandons the in-flight plan and snaps the previous-logical
// buffer straight to the target, so the next frame starts clean.
func (m *MorphBackend) recoverToTarget() {
	m.prevLogical = m.staging.Clone()
	m.inner.ShowCursor()
}

func (m *MorphBackend) flushBufferToInner(buf *cell.Buffer) error {
	updates := make([]CellUpdate, 0, m.width*m.height)
	for row := 0; row < buf.Height; row++ {
		for col := 0; col < buf.Width; col++ {
			pos := cell.Position{Col: col, Row: row}
			updates = append(updates, CellUpdate{Pos: pos, Cell: buf.At(pos)})
		}
	}
	if err := m.inner.Draw(updates); err != nil {
		return err
	}
	return m.inner.Flush()
}
