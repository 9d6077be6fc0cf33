// internal/pump/pump.go
//
// Package pump implements the polling state machine that drives progressive
// result loading to completion before extraction begins. The machine is
// pure: each tick takes an observation of the page and updates counters; a
// separate predicate decides termination. The scheduling primitive (sleeps
// in the browser driver) lives outside this package.
package pump

import "time"

// Observation is one snapshot of the page taken at a poll tick.
type Observation struct {
	ScrollY        float64
	ViewportHeight float64
	DocumentHeight float64
	ResultCount    int
	LoadingVisible bool
}

// Config tunes the pump. Zero values are replaced by defaults.
type Config struct {
	BaseDelay   time.Duration
	MaxAttempts int
}

// DefaultConfig returns the standard pump tuning.
func DefaultConfig() Config {
	return Config{
		BaseDelay:   400 * time.Millisecond,
		MaxAttempts: 150,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.BaseDelay <= 0 {
		c.BaseDelay = d.BaseDelay
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = d.MaxAttempts
	}
	return c
}

// State holds the pump counters. Create one per invocation with New, feed
// it one observation per tick, and discard it once Done reports true.
type State struct {
	cfg Config

	ScrollY        float64
	DocumentHeight float64
	ResultCount    int

	NoScrollChange int
	NoHeightChange int
	Attempts       int

	lastLoading bool
	started     bool
}

// New creates a pump state with the given tuning.
func New(cfg Config) *State {
	return &State{cfg: cfg.withDefaults()}
}

// Tick folds one observation into the counters. The scroll counter resets
// when the scroll offset changes, the height counter when the document
// height changes; a change in the visible result count resets both, since
// new results mean the page is still loading regardless of geometry.
func (s *State) Tick(o Observation) {
	s.Attempts++

	scrollChanged := !s.started || o.ScrollY != s.ScrollY
	heightChanged := !s.started || o.DocumentHeight != s.DocumentHeight
	countChanged := !s.started || o.ResultCount != s.ResultCount

	if scrollChanged || countChanged {
		s.NoScrollChange = 0
	} else {
		s.NoScrollChange++
	}
	if heightChanged || countChanged {
		s.NoHeightChange = 0
	} else {
		s.NoHeightChange++
	}

	s.ScrollY = o.ScrollY
	s.DocumentHeight = o.DocumentHeight
	s.ResultCount = o.ResultCount
	s.lastLoading = o.LoadingVisible
	s.started = true
}

// Done is the termination predicate, evaluated after Tick with the same
// observation. Any one condition ends polling:
//
//   - at viewport bottom with no loading indicator and height stable for
//     more than 2 ticks;
//   - scroll offset stable for at least 5 ticks with no loading indicator;
//   - height stable for at least 10 ticks with scroll fraction above 70%;
//   - the hard attempt cap, regardless of anything else.
func (s *State) Done(o Observation) bool {
	if s.Attempts >= s.cfg.MaxAttempts {
		return true
	}
	atBottom := o.ScrollY+o.ViewportHeight >= o.DocumentHeight-2
	if atBottom && !o.LoadingVisible && s.NoHeightChange > 2 {
		return true
	}
	if s.NoScrollChange >= 5 && !o.LoadingVisible {
		return true
	}
	if s.NoHeightChange >= 10 && s.ScrollFraction() > 0.7 {
		return true
	}
	return false
}

// NextDelay is the wait before the following tick: the base delay, tripled
// while a loading indicator is visible.
func (s *State) NextDelay() time.Duration {
	if s.lastLoading {
		return s.cfg.BaseDelay * 3
	}
	return s.cfg.BaseDelay
}

// ScrollFraction reports how far down the document the last observed scroll
// offset sits, in [0, 1].
func (s *State) ScrollFraction() float64 {
	if s.DocumentHeight <= 0 {
		return 0
	}
	f := s.ScrollY / s.DocumentHeight
	if f > 1 {
		f = 1
	}
	if f < 0 {
		f = 0
	}
	return f
}

// ScrollPercent is ScrollFraction scaled to 0-100 for reporting.
func (s *State) ScrollPercent() float64 {
	return s.ScrollFraction() * 100
}
