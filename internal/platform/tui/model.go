package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// Options configures a game model.
type Options struct {
	// Watcher, when set, triggers a level reload on every reported change.
	Watcher *levels.Watcher
	// Logger receives host events. Nil discards them.
	Logger *log.Logger
	// Player names the score owner in logs.
	Player string
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	opts       Options
	log        *log.Logger
	keyMapper  *KeyMapper
	holds      *HoldTracker
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		opts:       opts,
		log:        logger,
		keyMapper:  NewKeyMapper(),
		holds:      NewHoldTracker(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	if m.opts.Watcher != nil {
		cmds = append(cmds, watchLevels(m.opts.Watcher))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case LevelsChangedMsg:
		return m.handleLevelsChanged(msg)

	case levelWatchErrMsg:
		m.log.Warn("level watcher", "err", msg.err)
		return m, watchLevels(m.opts.Watcher)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch action {
	case core.ActionNone:
		return m, nil

	case core.ActionQuit:
		if isQuit {
			m.quitting = true
			return m, tea.Quit
		}

	case core.ActionLeft, core.ActionRight:
		// Only a fresh press is an edge; auto-repeats just extend the hold.
		if m.holds.Press(action) {
			m.inputFrame.Set(action)
		}

	case core.ActionJump:
		// A repeat cannot be told apart from a quick second tap, so every
		// jump key is an edge. Jumping only takes effect from the ground.
		m.inputFrame.Set(action)

	case core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			return m, tea.Quit
		}

	case core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(action)
		}

	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(m.config)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.holds.Fill(&m.inputFrame)

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if result.Milestone != nil {
		m.saveLevelResult(*result.Milestone)
	}

	if !m.gameState.GameOver {
		m.scoreSaved = false
	} else if !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
		m.holds.ReleaseAll()
	}

	// Clear input for next frame
	m.holds.Advance()
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveLevelResult persists a cleared level.
func (m Model) saveLevelResult(ms core.Milestone) {
	m.log.Info("level cleared", "player", m.opts.Player, "level", ms.LevelID, "score", ms.Score, "ticks", ms.Ticks)
	if m.store == nil {
		return
	}
	_, err := m.store.SaveLevelResult(storage.LevelResult{
		GameID:  m.game.ID(),
		LevelID: ms.LevelID,
		Score:   ms.Score,
		Coins:   ms.Coins,
		Lives:   ms.Lives,
		Ticks:   ms.Ticks,
	})
	if err != nil {
		m.log.Warn("cannot save level result", "err", err)
	}
}

// saveScore persists the final result of a run.
func (m Model) saveScore() {
	st := m.gameState
	m.log.Info("run finished", "player", m.opts.Player, "score", st.Score, "level", st.Level, "won", st.Won)
	if m.store == nil || st.Score <= 0 {
		return
	}
	_, err := m.store.SaveScore(storage.ScoreEntry{
		GameID:  m.game.ID(),
		Score:   st.Score,
		Coins:   st.Coins,
		LevelID: st.Level,
		Won:     st.Won,
	})
	if err != nil {
		m.log.Warn("cannot save score", "err", err)
	}
}

// handleLevelsChanged reloads the campaign after a level file changed.
func (m Model) handleLevelsChanged(msg LevelsChangedMsg) (tea.Model, tea.Cmd) {
	if r, ok := m.game.(registry.LevelReloader); ok {
		if err := r.ReloadLevels(); err != nil {
			m.log.Warn("cannot reload levels", "file", msg.Path, "err", err)
		} else {
			m.log.Info("level file changed", "file", msg.Path)
		}
	}
	return m, watchLevels(m.opts.Watcher)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.log.Warn("cannot save screenshot", "err", err)
		return
	}
	dir := filepath.Join(home, ".platformer", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.log.Warn("cannot save screenshot", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.log.Warn("cannot save screenshot", "err", err)
		return
	}
	m.log.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last reported game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program with the given game. It returns true
// when the player asked to go back to the menu.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) (backToMenu bool, err error) {
	model := NewModel(game, store, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
