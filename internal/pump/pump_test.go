// internal/pump/pump_test.go
package pump

import (
	"testing"
	"time"
)

func TestPumpStopsAtAttemptCap(t *testing.T) {
	s := New(Config{MaxAttempts: 150})

	// A page that grows forever never satisfies any stability condition, so
	// only the attempt cap can stop the loop.
	var o Observation
	ticks := 0
	for {
		o = Observation{
			ScrollY:        float64(ticks) * 100,
			ViewportHeight: 800,
			DocumentHeight: float64(10000 + ticks*500),
			ResultCount:    ticks,
			LoadingVisible: true,
		}
		s.Tick(o)
		ticks++
		if s.Done(o) {
			break
		}
		if ticks > 1000 {
			t.Fatal("pump did not terminate within 1000 ticks")
		}
	}
	if ticks != 150 {
		t.Errorf("pump ran %d ticks, want exactly 150", ticks)
	}
}

func TestPumpBottomTermination(t *testing.T) {
	s := New(DefaultConfig())

	// Settle at the bottom: height stable, no loading indicator. Needs the
	// height counter to exceed 2 before the bottom condition fires.
	o := Observation{
		ScrollY:        9200,
		ViewportHeight: 800,
		DocumentHeight: 10000,
		ResultCount:    40,
	}
	for i := 0; i < 3; i++ {
		s.Tick(o)
		if s.Done(o) {
			t.Fatalf("terminated after %d ticks, height counter not yet stable", i+1)
		}
	}
	s.Tick(o)
	if !s.Done(o) {
		t.Error("expected termination at bottom with stable height and no loading")
	}
}

func TestPumpBottomBlockedByLoadingIndicator(t *testing.T) {
	s := New(DefaultConfig())

	o := Observation{
		ScrollY:        9200,
		ViewportHeight: 800,
		DocumentHeight: 10000,
		ResultCount:    40,
		LoadingVisible: true,
	}
	// Scroll is frozen, so after 5 unchanged ticks the scroll-stability
	// condition would fire without the indicator. With loading visible the
	// only way out is the attempt cap.
	for i := 0; i < 8; i++ {
		s.Tick(o)
		if s.Done(o) {
			t.Fatalf("terminated after %d ticks while loading indicator visible", i+1)
		}
	}
	o.LoadingVisible = false
	s.Tick(o)
	if !s.Done(o) {
		t.Error("expected termination once loading indicator cleared")
	}
}

func TestPumpScrollStableTermination(t *testing.T) {
	s := New(DefaultConfig())

	// Mid-page, scroll frozen, height still growing slowly. The scroll
	// counter must reach 5 with no loading indicator; the first tick only
	// establishes the baseline.
	for i := 0; i < 6; i++ {
		o := Observation{
			ScrollY:        3000,
			ViewportHeight: 800,
			DocumentHeight: float64(10000 + i),
			ResultCount:    20,
		}
		s.Tick(o)
		if i < 5 && s.Done(o) {
			t.Fatalf("terminated after %d ticks, scroll counter not yet at 5", i+1)
		}
		if i == 5 && !s.Done(o) {
			t.Error("expected termination after 5 unchanged scroll ticks")
		}
	}
}

func TestPumpHeightStableDeepScrollTermination(t *testing.T) {
	s := New(DefaultConfig())

	// Height frozen, scroll still creeping, position past 70%. Only the
	// height-stability condition applies; it needs 10 unchanged ticks.
	for i := 0; i < 11; i++ {
		o := Observation{
			ScrollY:        float64(7500 + i),
			ViewportHeight: 800,
			DocumentHeight: 10000,
			ResultCount:    30,
			LoadingVisible: true, // loading does not block this condition
		}
		s.Tick(o)
		if i < 10 && s.Done(o) {
			t.Fatalf("terminated after %d ticks, height counter not yet at 10", i+1)
		}
		if i == 10 && !s.Done(o) {
			t.Error("expected termination with stable height past 70% scroll")
		}
	}
}

func TestPumpResultCountresetsCounters(t *testing.T) {
	s := New(DefaultConfig())

	o := Observation{ScrollY: 3000, ViewportHeight: 800, DocumentHeight: 10000, ResultCount: 10}
	for i := 0; i < 4; i++ {
		s.Tick(o)
	}
	if s.NoScrollChange != 3 {
		t.Fatalf("NoScrollChange = %d after 4 identical ticks, want 3", s.NoScrollChange)
	}

	// New results arrived without any geometry change.
	o.ResultCount = 15
	s.Tick(o)
	if s.NoScrollChange != 0 || s.NoHeightChange != 0 {
		t.Errorf("counters = (%d, %d) after result-count change, want (0, 0)",
			s.NoScrollChange, s.NoHeightChange)
	}
}

func TestPumpNextDelayBackoff(t *testing.T) {
	s := New(Config{BaseDelay: 400 * time.Millisecond})

	s.Tick(Observation{DocumentHeight: 1000})
	if got := s.NextDelay(); got != 400*time.Millisecond {
		t.Errorf("NextDelay() = %v without loading, want 400ms", got)
	}

	s.Tick(Observation{DocumentHeight: 1000, LoadingVisible: true})
	if got := s.NextDelay(); got != 1200*time.Millisecond {
		t.Errorf("NextDelay() = %v while loading, want 1200ms", got)
	}

	s.Tick(Observation{DocumentHeight: 1000})
	if got := s.NextDelay(); got != 400*time.Millisecond {
		t.Errorf("NextDelay() = %v after loading cleared, want 400ms", got)
	}
}

func TestPumpScrollFraction(t *testing.T) {
	tests := []struct {
		name   string
		scroll float64
		height float64
		want   float64
	}{
		{"zero height", 500, 0, 0},
		{"mid page", 3000, 10000, 0.3},
		{"past end clamps", 12000, 10000, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(DefaultConfig())
			s.Tick(Observation{ScrollY: tt.scroll, DocumentHeight: tt.height})
			if got := s.ScrollFraction(); got != tt.want {
				t.Errorf("ScrollFraction() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfigDefaults(t *testing.T) {
	c := Config{}.withDefaults()
	if c.BaseDelay != 400*time.Millisecond {
		t.Errorf("BaseDelay = %v, want 400ms", c.BaseDelay)
	}
	if c.MaxAttempts != 150 {
		t.Errorf("MaxAttempts = %d, want 150", c.MaxAttempts)
	}
}
