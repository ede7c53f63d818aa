package core

import (
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/config"
)

func TestArenaStableHandles(t *testing.T) {
	var a Arena[int]
	h1 := a.Add(10)
	h2 := a.Add(20)
	h3 := a.Add(30)

	if !a.Remove(h2) {
		t.Fatal("expected first removal to succeed")
	}
	if a.Remove(h2) {
		t.Error("second removal should be a no-op")
	}
	if a.Remove(Handle(99)) || a.Remove(NoHandle) {
		t.Error("removing unknown handles should be a no-op")
	}

	if v, ok := a.Get(h3); !ok || *v != 30 {
		t.Errorf("handle %d should still refer to 30, got %v %v", h3, v, ok)
	}
	if _, ok := a.Get(h2); ok {
		t.Error("removed handle should not resolve")
	}
	if a.Len() != 2 || a.Slots() != 3 {
		t.Errorf("expected 2 live of 3 slots, got %d of %d", a.Len(), a.Slots())
	}

	var seen []int
	a.Each(func(h Handle, v *int) {
		seen = append(seen, *v)
		if h == h1 {
			a.Add(40)
		}
	})
	if len(seen) != 2 || seen[0] != 10 || seen[1] != 30 {
		t.Errorf("unexpected iteration %v", seen)
	}
	if a.Len() != 3 {
		t.Errorf("value added during iteration should be kept, len %d", a.Len())
	}
}

func TestLedgerBonusLives(t *testing.T) {
	rules := config.DefaultPlatformerConfig().Scoring

	tests := []struct {
		name      string
		run       func(l *Ledger)
		wantLives int
		wantPts   int
		wantCoins int
	}{
		{
			name:      "hundred coins",
			run:       func(l *Ledger) { repeat(100, l.AddCoin) },
			wantLives: 4,
			wantPts:   20000,
			wantCoins: 100,
		},
		{
			name: "points threshold",
			run: func(l *Ledger) {
				l.AddScore(99950)
				l.AddScore(100)
			},
			wantLives: 4,
			wantPts:   100050,
		},
		{
			name:      "jump across two thresholds",
			run:       func(l *Ledger) { l.AddScore(200000) },
			wantLives: 5,
			wantPts:   200000,
		},
		{
			name:      "block coins",
			run:       func(l *Ledger) { repeat(3, l.AwardBlockCoin) },
			wantLives: 3,
			wantPts:   150,
			wantCoins: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLedger(rules)
			tt.run(l)
			if l.Lives != tt.wantLives || l.Points != tt.wantPts || l.Coins != tt.wantCoins {
				t.Errorf("got lives=%d points=%d coins=%d, want %d/%d/%d",
					l.Lives, l.Points, l.Coins, tt.wantLives, tt.wantPts, tt.wantCoins)
			}
		})
	}
}

func TestLedgerLoseLifeClamps(t *testing.T) {
	l := NewLedger(config.DefaultPlatformerConfig().Scoring)
	l.Lives = 1
	if !l.LoseLife() {
		t.Error("losing the last life should end the game")
	}
	if l.LoseLife(); l.Lives != 0 {
		t.Errorf("lives went below zero: %d", l.Lives)
	}
	l.Points = 500
	l.Reset()
	if l.Points != 0 || l.Coins != 0 || l.Lives != 3 {
		t.Errorf("reset left %+v", l)
	}
}

func repeat(n int, fn func()) {
	for i := 0; i < n; i++ {
		fn()
	}
}

func TestSchedulerRunsInOrder(t *testing.T) {
	var s Scheduler
	var got []int
	s.After(2, func() { got = append(got, 2) })
	s.After(1, func() { got = append(got, 1) })
	s.After(0, func() { got = append(got, 0) })
	s.After(2, func() { got = append(got, 3) })

	if ran := s.Advance(); ran != 2 {
		t.Errorf("expected 2 effects on first tick, ran %d", ran)
	}
	s.Advance()
	want := []int{1, 0, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if s.Pending() != 0 {
		t.Errorf("queue not drained: %d", s.Pending())
	}
}

func TestSchedulerEpochCancels(t *testing.T) {
	var s Scheduler
	fired := false
	s.After(3, func() { fired = true })
	s.Bump()
	for i := 0; i < 5; i++ {
		s.Advance()
	}
	if fired {
		t.Error("effect from a stale epoch ran")
	}

	// An effect that bumps the epoch cancels the ones due after it.
	later := false
	s.After(1, func() { s.Bump() })
	s.After(1, func() { later = true })
	s.Advance()
	if later {
		t.Error("effect scheduled before the bump ran after it")
	}
}

func TestViewportFollow(t *testing.T) {
	tests := []struct {
		name   string
		start  float64
		center float64
		world  float64
		want   float64
	}{
		{"left edge clamps to zero", 0, 50, 3400, 0},
		{"right edge clamps to world", 0, 3500, 3600, 2840},
		{"inside dead zone", 100, 400, 3400, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Viewport{X: tt.start, W: 760, H: 240}
			v.Follow(R(tt.center-8, 100, 16, 16), tt.world, 6)
			if v.X != tt.want {
				t.Errorf("X = %v, want %v", v.X, tt.want)
			}
		})
	}
}

func TestViewportVisible(t *testing.T) {
	v := Viewport{X: 100, W: 760, H: 240}
	if v.Visible(R(0, 0, 50, 50)) {
		t.Error("rect left of the viewport reported visible")
	}
	if !v.Visible(R(90, 0, 20, 20)) {
		t.Error("rect straddling the left edge should be visible")
	}
}

func TestKeysPressedIsEdgeTriggered(t *testing.T) {
	var k Keys
	k.Press(Jump)
	if !k.Pressed(Jump) {
		t.Fatal("first query after press should report true")
	}
	if k.Pressed(Jump) {
		t.Error("second query while held should report false")
	}
	k.Press(Jump)
	if k.Pressed(Jump) {
		t.Error("repeat press while held should not re-arm")
	}
	if !k.Held(Jump) {
		t.Error("key should still be held")
	}
	k.Release(Jump)
	k.Press(Jump)
	if !k.Pressed(Jump) {
		t.Error("release and press should re-arm")
	}
	k.ReleaseAll()
	if k.Held(Jump) || k.Held(MoveLeft) {
		t.Error("ReleaseAll left keys down")
	}
}

func TestRectOverlapsIsStrict(t *testing.T) {
	a := R(0, 0, 16, 16)
	if a.Overlaps(R(16, 0, 16, 16)) {
		t.Error("shared edge should not overlap")
	}
	if !a.Overlaps(R(15, 15, 16, 16)) {
		t.Error("corner intersection should overlap")
	}
}

func TestStateNames(t *testing.T) {
	if PlayerBigJumping.String() != "big-jumping" {
		t.Errorf("got %q", PlayerBigJumping.String())
	}
	if StateID(999).String() != "none" {
		t.Errorf("unknown state should map to none")
	}
	for s := StateNone; s < stateCount; s++ {
		d := s.Def()
		if d.Movement == nil || d.Animation == nil || d.Name == "" {
			t.Errorf("state %d is incomplete", s)
		}
	}
}
