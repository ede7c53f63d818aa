// Package platformer exposes the side-scrolling platformer as a registry
// game. The simulation lives in the core subpackage; this package loads
// configuration and levels, translates platform input into key state and
// projects the camera viewport onto the terminal screen.
package platformer

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/config"
	platformcore "github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

// GameID is the registry id of the platformer.
const GameID = "platformer"

const (
	minScreenW = 40
	minScreenH = 12
	hudHeight  = 2
)

// Package-level settings applied on the next Reset. CLI commands call the
// setters before registry.Create.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	startLevel       string
	levelDir         string
	logger           = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	switch p := config.DifficultyPreset(preset); p {
	case config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard, config.DifficultyFixed:
		difficultyPreset = p
	default:
		difficultyPreset = ""
	}
}

// SetStartLevel selects the level id a new run starts on. Empty means the
// first level of the campaign.
func SetStartLevel(id string) {
	startLevel = id
}

// SetLevelDir adds a directory of level files to the built-in campaign.
func SetLevelDir(dir string) {
	levelDir = dir
}

// LevelDir returns the directory set with SetLevelDir.
func LevelDir() string {
	return levelDir
}

// SetLogger routes game logging to l. A nil logger discards output.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game adapts a core.World to the registry interface.
type Game struct {
	runtime    platformcore.RuntimeConfig
	cfg        config.PlatformerConfig
	difficulty *config.DifficultyManager
	world      *core.World
	keys       core.Keys
	log        *log.Logger

	start      string
	cleared    int
	levelID    string
	finalScore int
	gameOver   bool
	won        bool
	paused     bool
	tooSmall   bool
	loadErr    error
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// New creates a platformer game. Reset must be called before Step.
func New() *Game {
	return &Game{log: logger, start: startLevel}
}

// StartAt selects the level this game's runs start on, overriding
// SetStartLevel for this instance.
func (g *Game) StartAt(id string) {
	g.start = id
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Platformer"
}

// Reset loads configuration and levels and starts a new run.
func (g *Game) Reset(runtime platformcore.RuntimeConfig) {
	g.runtime = runtime
	g.log = logger

	cfg, err := config.LoadPlatformer(configPath)
	if err != nil {
		g.log.Warn("using default config", "err", err)
		cfg = config.DefaultPlatformerConfig()
	}
	if difficultyPreset != "" {
		config.ApplyPlatformerPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.tooSmall = runtime.ScreenW < minScreenW || runtime.ScreenH < minScreenH
	g.finalScore = 0
	g.cleared = 0
	g.gameOver = false
	g.won = false
	g.paused = false
	g.keys.ReleaseAll()

	campaign, err := levels.LoadCampaign(levelDir, g.skipped)
	if err != nil {
		g.log.Error("cannot load levels", "dir", levelDir, "err", err)
		g.loadErr = err
		g.world = nil
		return
	}
	g.loadErr = nil

	g.world = core.NewWorld(cfg, campaign)
	g.world.SetSpeedScale(g.speedScale())
	if err := g.world.Start(g.start); err != nil {
		g.log.Warn("start level not found, starting from the first level", "level", g.start, "err", err)
		g.world.Reset()
	}
	g.levelID = ""
	g.noteLevel()
}

// Resize adapts to a new screen size without restarting the run.
func (g *Game) Resize(runtime platformcore.RuntimeConfig) {
	g.runtime = runtime
	g.tooSmall = runtime.ScreenW < minScreenW || runtime.ScreenH < minScreenH
}

// ReloadLevels re-reads the campaign. The running level is unaffected; the
// new definitions apply from the next level load.
func (g *Game) ReloadLevels() error {
	if g.world == nil {
		return nil
	}
	campaign, err := levels.LoadCampaign(levelDir, g.skipped)
	if err != nil {
		return err
	}
	g.world.SetCampaign(campaign)
	g.log.Info("levels reloaded", "count", campaign.Len())
	return nil
}

// skipped logs a level file that could not be loaded.
func (g *Game) skipped(file string, err error) {
	g.log.Warn("skipping level file", "file", file, "err", err)
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	if in.Has(platformcore.ActionRestart) && g.gameOver {
		g.Reset(g.runtime)
		return platformcore.StepResult{State: g.State()}
	}
	if in.Has(platformcore.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.world == nil || g.gameOver || g.paused || g.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	g.applyInput(in)
	g.world.SetSpeedScale(g.speedScale())
	levelTicks := g.world.LevelTicks

	var milestone *platformcore.Milestone
	for _, e := range g.world.Step(&g.keys) {
		g.logEvent(e)
		switch e.Kind {
		case core.EventLevelCleared:
			g.cleared++
			milestone = &platformcore.Milestone{
				LevelID: e.Level,
				Score:   e.Score,
				Coins:   g.world.Ledger.Coins,
				Lives:   g.world.Ledger.Lives,
				Ticks:   levelTicks,
			}
		case core.EventGameOver:
			g.gameOver = true
			g.finalScore = e.Score
		case core.EventGameComplete:
			g.gameOver = true
			g.won = true
			g.finalScore = e.Score
		}
	}
	g.noteLevel()

	return platformcore.StepResult{State: g.State(), Milestone: milestone}
}

// applyInput mirrors the platform's held actions onto the key latch. A tap
// that was pressed and released between two ticks still counts as held for
// this tick. Jump is down only on ticks carrying a jump press, so each press
// re-arms its edge.
func (g *Game) applyInput(in platformcore.InputFrame) {
	for _, m := range [...]struct {
		action  platformcore.Action
		binding core.Binding
	}{
		{platformcore.ActionLeft, core.MoveLeft},
		{platformcore.ActionRight, core.MoveRight},
	} {
		if in.IsHeld(m.action) || in.Has(m.action) {
			g.keys.Press(m.binding)
		} else {
			g.keys.Release(m.binding)
		}
	}
	if in.Has(platformcore.ActionJump) {
		g.keys.Press(core.Jump)
	} else {
		g.keys.Release(core.Jump)
	}
}

// speedScale is the enemy speed multiplier for the next level build.
func (g *Game) speedScale() float64 {
	if g.world == nil {
		return 1
	}
	return g.difficulty.EnemySpeed(config.Progress{
		Points:  g.world.Ledger.Points,
		Ticks:   int(g.world.Tick), //#nosec G115 -- tick count fits in int
		Cleared: g.cleared,
	})
}

func (g *Game) logEvent(e core.Event) {
	g.log.Debug(e.Kind.String(), "level", e.Level, "tick", e.Tick, "x", e.X, "y", e.Y, "score", e.Score)
}

// noteLevel logs level loads.
func (g *Game) noteLevel() {
	if g.world == nil {
		return
	}
	if l := g.world.Level(); l.ID != g.levelID {
		g.levelID = l.ID
		g.log.Info("level loaded", "level", l.ID, "name", l.Name)
	}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	st := platformcore.GameState{
		GameOver: g.gameOver,
		Won:      g.won,
		Paused:   g.paused,
	}
	if g.world == nil {
		st.GameOver = true
		return st
	}
	st.Score = g.world.Ledger.Points
	st.Coins = g.world.Ledger.Coins
	st.Lives = g.world.Ledger.Lives
	st.Level = g.world.Level().ID
	if g.gameOver {
		st.Score = g.finalScore
		if !g.won {
			st.Lives = 0
		}
	}
	return st
}

// World returns the running simulation, or nil when no levels could be
// loaded.
func (g *Game) World() *core.World {
	return g.world
}

// LevelIDs lists the campaign level ids, built-in levels first.
func LevelIDs() []string {
	c, err := levels.Campaign(levelDir)
	if err != nil {
		return nil
	}
	return c.IDs()
}
