package blockdrop

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
)

// Loop owns a single session and drives it from player input and a
// level-dependent gravity timer. Run is the only goroutine that changes
// the session; other goroutines talk to it through Send and read it
// through Snapshot.
type Loop struct {
	engine *Engine
	clock  clock.Clock
	logger *zap.Logger
	input  chan Command

	mu       sync.RWMutex
	state    State
	ticker   *clock.Ticker
	interval time.Duration
	active   bool

	observers []func(Snapshot)
	gameOver  []func(State)
}

// LoopOption configures a Loop
type LoopOption func(*Loop)

// WithClock sets the clock that drives gravity
func WithClock(c clock.Clock) LoopOption {
	return func(l *Loop) { l.clock = c }
}

// WithLogger sets the loop logger
func WithLogger(logger *zap.Logger) LoopOption {
	return func(l *Loop) { l.logger = logger }
}

// WithObserver registers a function called with a fresh snapshot after
// every change to the session.
func WithObserver(fn func(Snapshot)) LoopOption {
	return func(l *Loop) { l.observers = append(l.observers, fn) }
}

// LatestObserver returns an observer that keeps only the newest
// snapshot in ch, so a slow reader skips stale frames instead of stalling
// the loop. ch should have capacity one.
func LatestObserver(ch chan Snapshot) func(Snapshot) {
	return func(snap Snapshot) {
		select {
		case ch <- snap:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

// WithGameOver registers a function called once when a session ends
func WithGameOver(fn func(State)) LoopOption {
	return func(l *Loop) { l.gameOver = append(l.gameOver, fn) }
}

// NewLoop creates a loop with a freshly started session
func NewLoop(engine *Engine, opts ...LoopOption) *Loop {
	l := &Loop{
		engine: engine,
		clock:  clock.New(),
		logger: zap.NewNop(),
		input:  make(chan Command, 16),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.state = engine.NewSession()
	return l
}

// Send queues a command for the Run goroutine
func (l *Loop) Send(ctx context.Context, cmd Command) error {
	select {
	case l.input <- cmd:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes input and gravity ticks until ctx is cancelled
func (l *Loop) Run(ctx context.Context) error {
	l.mu.Lock()
	l.active = true
	l.mu.Unlock()
	l.reschedule()

	defer func() {
		l.mu.Lock()
		l.active = false
		l.stopTimerLocked()
		l.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd := <-l.input:
			l.Handle(cmd)
		case <-l.tickChan():
			l.Tick()
		}
	}
}

// Handle applies a command to the session immediately. It must only be
// called from the goroutine running the loop, or when Run is not active.
func (l *Loop) Handle(cmd Command) {
	l.apply(cmd, false)
}

// Tick applies one gravity step
func (l *Loop) Tick() {
	l.apply(SoftDrop, true)
}

// State returns a copy of the current session
func (l *Loop) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// Snapshot returns the current render view of the session
func (l *Loop) Snapshot() Snapshot {
	return l.State().Snapshot()
}

// Interval returns the period of the armed gravity timer, or zero when
// gravity is stopped.
func (l *Loop) Interval() time.Duration {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.interval
}

func (l *Loop) apply(cmd Command, gravity bool) {
	l.mu.Lock()
	before := l.state
	after := l.engine.Apply(before, cmd)
	l.state = after
	l.mu.Unlock()

	if !gravity {
		l.logger.Debug("input applied", zap.Stringer("command", cmd))
	}
	if after.Lines != before.Lines && cmd != NewGame {
		l.logger.Info("lines cleared",
			zap.Int("cleared", after.Lines-before.Lines),
			zap.Int("score", after.Score),
			zap.Int("level", after.Level),
		)
	}

	if after.Level != before.Level || after.Running() != before.Running() {
		l.reschedule()
	}

	if after.Over && !before.Over {
		l.logger.Info("game over",
			zap.Int("score", after.Score),
			zap.Int("lines", after.Lines),
			zap.Int("level", after.Level),
		)
		for _, fn := range l.gameOver {
			fn(after)
		}
	}

	snap := after.Snapshot()
	for _, fn := range l.observers {
		fn(snap)
	}
}

// reschedule tears down the gravity timer and starts a new one for the
// current level if the session is running.
func (l *Loop) reschedule() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.stopTimerLocked()
	if !l.active || !l.state.Running() {
		return
	}

	l.interval = l.engine.Rules().GravityInterval(l.state.Level)
	l.ticker = l.clock.Ticker(l.interval)
	l.logger.Debug("gravity rescheduled",
		zap.Duration("interval", l.interval),
		zap.Int("level", l.state.Level),
	)
}

func (l *Loop) stopTimerLocked() {
	if l.ticker != nil {
		l.ticker.Stop()
		l.ticker = nil
	}
	l.interval = 0
}

func (l *Loop) tickChan() <-chan time.Time {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.ticker == nil {
		return nil
	}
	return l.ticker.C
}
