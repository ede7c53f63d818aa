package platformer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	platformcore "github.com/vovakirdan/tui-platformer/internal/core"
)

var testRuntime = platformcore.RuntimeConfig{
	ScreenW:  80,
	ScreenH:  24,
	TickRate: 60,
}

// useLevelDir points the game at dir for the duration of the test.
func useLevelDir(t *testing.T, dir string) {
	t.Helper()
	SetLevelDir(dir)
	t.Cleanup(func() { SetLevelDir("") })
}

func writeLevel(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write level: %v", err)
	}
}

func held(actions ...platformcore.Action) platformcore.InputFrame {
	in := platformcore.NewInputFrame()
	for _, a := range actions {
		in.Hold(a)
	}
	return in
}

func pressed(a platformcore.Action) platformcore.InputFrame {
	in := platformcore.NewInputFrame()
	in.Set(a)
	return in
}

func TestGameDeterminism(t *testing.T) {
	inputSequence := make([]platformcore.InputFrame, 600)
	for i := range inputSequence {
		switch {
		case i%90 == 30:
			inputSequence[i] = pressed(platformcore.ActionJump)
		case i%7 < 5:
			inputSequence[i] = held(platformcore.ActionRight)
		default:
			inputSequence[i] = held(platformcore.ActionLeft, platformcore.ActionJump)
		}
	}

	run := func() Snapshot {
		g := New()
		g.Reset(testRuntime)
		for _, in := range inputSequence {
			if g.Step(in).State.GameOver {
				break
			}
		}
		return g.Snapshot()
	}

	snap1 := run()
	snap2 := run()

	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1.Points != snap2.Points {
		t.Errorf("Determinism failed: scores differ. Run1=%d, Run2=%d", snap1.Points, snap2.Points)
	}
	if snap1.Player != snap2.Player {
		t.Errorf("Determinism failed: player differs. Run1=%+v, Run2=%+v", snap1.Player, snap2.Player)
	}
}

func TestGameReset(t *testing.T) {
	g := New()
	g.Reset(testRuntime)

	for range 120 {
		g.Step(held(platformcore.ActionRight))
	}
	if g.Snapshot().Tick == 0 {
		t.Fatal("game should have advanced")
	}

	g.Reset(testRuntime)
	snap := g.Snapshot()
	if snap.Tick != 0 || snap.Points != 0 || snap.Level != "1-1" {
		t.Errorf("Reset should start a fresh run, got tick=%d points=%d level=%s", snap.Tick, snap.Points, snap.Level)
	}
	if st := g.State(); st.Lives != 3 || st.GameOver {
		t.Errorf("unexpected state after reset: %+v", st)
	}
}

func TestStartLevel(t *testing.T) {
	t.Cleanup(func() { SetStartLevel("") })

	SetStartLevel("1-2")
	g := New()
	g.Reset(testRuntime)
	if lvl := g.State().Level; lvl != "1-2" {
		t.Errorf("expected to start on 1-2, got %s", lvl)
	}

	g.StartAt("1-3")
	g.Reset(testRuntime)
	if lvl := g.State().Level; lvl != "1-3" {
		t.Errorf("StartAt should override the package setting, got %s", lvl)
	}

	g.StartAt("no-such-level")
	g.Reset(testRuntime)
	if lvl := g.State().Level; lvl != "1-1" {
		t.Errorf("unknown start level should fall back to 1-1, got %s", lvl)
	}
}

func TestHeldRightWalks(t *testing.T) {
	g := New()
	g.Reset(testRuntime)
	startX := g.World().Player.X

	for range 30 {
		g.Step(held(platformcore.ActionRight))
	}
	if x := g.World().Player.X; x < startX+50 {
		t.Errorf("holding right should move the player, x went from %.1f to %.1f", startX, x)
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	g := New()
	g.Reset(testRuntime)
	g.Step(platformcore.NewInputFrame())

	g.Step(pressed(platformcore.ActionPause))
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}
	tick := g.Snapshot().Tick
	for range 10 {
		g.Step(held(platformcore.ActionRight))
	}
	if g.Snapshot().Tick != tick {
		t.Error("paused game should not advance")
	}

	g.Step(pressed(platformcore.ActionPause))
	if g.State().Paused {
		t.Error("second pause should resume")
	}
}

func TestMilestoneOnLevelClear(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "short.yaml", `
id: "1-1"
name: Short
next: "1-2"
spawn: [60, 176]
ground: [[0, 192, 800, 16]]
flagpole: [100, 100, 16, 92]
`)
	useLevelDir(t, dir)

	g := New()
	g.Reset(testRuntime)

	var milestone *platformcore.Milestone
	for range 600 {
		res := g.Step(held(platformcore.ActionRight))
		if res.Milestone != nil {
			milestone = res.Milestone
			break
		}
	}
	if milestone == nil {
		t.Fatal("expected a milestone when the level is cleared")
	}
	if milestone.LevelID != "1-1" || milestone.Lives != 3 || milestone.Ticks < 360 {
		t.Errorf("unexpected milestone %+v", milestone)
	}
	if lvl := g.State().Level; lvl != "1-2" {
		t.Errorf("expected 1-2 to be loaded, got %s", lvl)
	}
}

func TestGameOverWaitsForRestart(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "pit.yaml", "id: \"1-1\"\nspawn: [60, 0]\n")
	useLevelDir(t, dir)
	SetDifficultyPreset("hard")
	t.Cleanup(func() { SetDifficultyPreset("") })

	g := New()
	g.Reset(testRuntime)
	if lives := g.State().Lives; lives != 1 {
		t.Fatalf("hard preset should start with 1 life, got %d", lives)
	}

	for range 600 {
		if g.Step(platformcore.NewInputFrame()).State.GameOver {
			break
		}
	}
	st := g.State()
	if !st.GameOver || st.Won || st.Lives != 0 {
		t.Fatalf("expected game over, got %+v", st)
	}

	tick := g.Snapshot().Tick
	g.Step(held(platformcore.ActionRight))
	if g.Snapshot().Tick != tick {
		t.Error("game over should freeze the simulation")
	}

	g.Step(pressed(platformcore.ActionRestart))
	if st := g.State(); st.GameOver || st.Lives != 1 || st.Score != 0 {
		t.Errorf("restart should begin a new run, got %+v", st)
	}
}

func TestReloadLevels(t *testing.T) {
	dir := t.TempDir()
	useLevelDir(t, dir)

	g := New()
	g.Reset(testRuntime)
	if _, ok := g.World().Campaign().Get("9-9"); ok {
		t.Fatal("9-9 should not exist yet")
	}

	writeLevel(t, dir, "extra.yaml", "id: \"9-9\"\n")
	if err := g.ReloadLevels(); err != nil {
		t.Fatalf("ReloadLevels failed: %v", err)
	}
	if _, ok := g.World().Campaign().Get("9-9"); !ok {
		t.Error("reloaded campaign should contain 9-9")
	}
	if lvl := g.State().Level; lvl != "1-1" {
		t.Errorf("reload should not change the running level, got %s", lvl)
	}
}

func TestRenderShowsHUDAndPlayer(t *testing.T) {
	g := New()
	g.Reset(testRuntime)
	for range 5 {
		g.Step(platformcore.NewInputFrame())
	}

	screen := platformcore.NewScreen(testRuntime.ScreenW, testRuntime.ScreenH)
	g.Render(screen)

	hud := screen.Row(0)
	if !strings.Contains(hud, "1-1") || !strings.Contains(hud, "Score") || !strings.Contains(hud, "Lives 3") {
		t.Errorf("unexpected HUD %q", hud)
	}
	if !strings.ContainsRune(screen.String(), '@') {
		t.Error("player glyph should be on screen")
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := New()
	small := platformcore.RuntimeConfig{ScreenW: 30, ScreenH: 10, TickRate: 60}
	g.Reset(small)

	g.Step(held(platformcore.ActionRight))
	if g.Snapshot().Tick != 0 {
		t.Error("a too small screen should not advance the game")
	}

	screen := platformcore.NewScreen(small.ScreenW, small.ScreenH)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too small") {
		t.Error("expected the too small message")
	}
}

func TestResizeKeepsRun(t *testing.T) {
	g := New()
	g.Reset(testRuntime)
	for range 30 {
		g.Step(held(platformcore.ActionRight))
	}
	tick := g.Snapshot().Tick

	g.Resize(platformcore.RuntimeConfig{ScreenW: 20, ScreenH: 8, TickRate: 60})
	g.Step(held(platformcore.ActionRight))
	if g.Snapshot().Tick != tick {
		t.Error("a too small screen should hold the run")
	}

	g.Resize(testRuntime)
	g.Step(held(platformcore.ActionRight))
	if g.Snapshot().Tick != tick+1 {
		t.Errorf("run should continue after resizing back, tick %d", g.Snapshot().Tick)
	}
}
