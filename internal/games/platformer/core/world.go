package core

import (
	"fmt"

	"github.com/vovakirdan/tui-platformer/internal/config"
)

// Frame is the per-tick context handed to state rules.
type Frame struct {
	Tick  uint64
	Input InputView
	World *World
	Cfg   *config.PlatformerConfig
}

func (f *Frame) emit(kind EventKind, a *Actor) {
	f.World.emit(kind, a)
}

// World is one play session: the campaign, the loaded stage, the player,
// the ledger and the deferred effect queue.
type World struct {
	cfg      config.PlatformerConfig
	campaign *Campaign
	builder  Builder

	Stage  *Stage
	Player Actor
	Ledger *Ledger
	Sched  Scheduler
	View   Viewport

	Tick       uint64 // global animation tick, never reset
	LevelTicks int    // ticks since the current level was loaded

	// UserControl is false while the death sequence runs.
	UserControl bool
	// Finishing is set on the first finish contact of a level.
	Finishing bool
	// Complete is set after the last level of the campaign is cleared.
	Complete bool

	events []Event
}

// NewWorld creates a session on the first level of campaign.
func NewWorld(cfg config.PlatformerConfig, campaign *Campaign) *World {
	w := &World{
		cfg:      cfg,
		campaign: campaign,
		builder:  NewBuilder(cfg),
		Ledger:   NewLedger(cfg.Scoring),
		View:     Viewport{W: cfg.Camera.ViewportWidth, H: cfg.Camera.ViewportHeight},
	}
	w.load(campaign.First())
	return w
}

// Config returns the tunables the world was created with.
func (w *World) Config() config.PlatformerConfig {
	return w.cfg
}

// Campaign returns the level sequence.
func (w *World) Campaign() *Campaign {
	return w.campaign
}

// Level returns the loaded level description.
func (w *World) Level() Level {
	return w.Stage.Level
}

// SetCampaign replaces the level sequence. The loaded stage keeps running;
// the new levels apply from the next load.
func (w *World) SetCampaign(c *Campaign) {
	w.campaign = c
}

// SetSpeedScale changes the enemy speed multiplier used by the next level
// build.
func (w *World) SetSpeedScale(scale float64) {
	w.builder.SpeedScale = scale
}

// Start resets the session and loads the level with the given id, or the
// first level when id is empty.
func (w *World) Start(id string) error {
	l := w.campaign.First()
	if id != "" {
		var ok bool
		l, ok = w.campaign.Get(id)
		if !ok {
			return fmt.Errorf("core: unknown level %q", id)
		}
	}
	w.Ledger.Reset()
	w.Complete = false
	w.load(l)
	return nil
}

// Reset restarts the session from the first level.
func (w *World) Reset() {
	w.Ledger.Reset()
	w.Complete = false
	w.load(w.campaign.First())
}

// NearExit reports whether the player is close to the flag or castle.
func (w *World) NearExit() bool {
	return w.Stage.NearExit(Point{X: w.Player.X, Y: w.Player.Y}, w.cfg.World.FinishProximity)
}

// load builds l into a fresh stage. Pending effects of the previous stage
// are invalidated.
func (w *World) load(l Level) {
	w.Sched.Bump()
	w.Stage = w.builder.Build(l)
	w.Finishing = false
	w.UserControl = true
	w.LevelTicks = 0
	w.View.X, w.View.Y = 0, 0
	w.spawn()
}

func (w *World) spawn() {
	sp := w.Stage.Spawn
	w.Player = Actor{
		Rect:   R(sp.X, sp.Y, w.cfg.Player.Width, w.cfg.Player.SmallHeight),
		Kind:   KindPlayer,
		State:  PlayerStanding,
		Speed:  w.cfg.Player.Speed,
		Dir:    Right,
		Visual: Visual{Sprite: SpriteStand},
	}
}

// Step advances the session by one tick and returns the events it raised.
func (w *World) Step(in InputView) []Event {
	w.events = nil
	if w.Complete {
		return nil
	}

	w.Sched.Advance()
	if w.Complete {
		return w.events
	}

	f := &Frame{Tick: w.Tick, Input: in, World: w, Cfg: &w.cfg}
	w.input(f)
	w.animate(f)
	w.move(f)
	w.physics()
	w.checkFall()
	w.View.Follow(w.Player.Rect, w.Stage.Width, w.cfg.Camera.MarginDivisor)

	w.Tick++
	w.LevelTicks++
	return w.events
}

func (w *World) emit(kind EventKind, at *Actor) {
	e := Event{Kind: kind, Tick: w.Tick, Score: w.Ledger.Points}
	if w.Stage != nil {
		e.Level = w.Stage.Level.ID
	}
	if at != nil {
		e.X, e.Y = at.X, at.Y
	}
	w.events = append(w.events, e)
}

// input maps held and pressed bindings onto the player's state. On the
// ground a direction key starts walking; in the air it steers directly.
// Walking off a ledge turns into a fall.
func (w *World) input(f *Frame) {
	p := &w.Player
	if w.Finishing {
		return
	}
	if !w.UserControl {
		p.State = PlayerDead
		return
	}

	if !p.Grounded && walking(p.State) {
		p.State = jumpingState(p.Big)
	}

	moving := false
	for _, k := range [...]struct {
		bind Binding
		dir  Dir
	}{{MoveLeft, Left}, {MoveRight, Right}} {
		if !f.Input.Held(k.bind) {
			continue
		}
		moving = true
		if p.Grounded {
			p.State = walkingState(p.Big)
		} else {
			p.X += p.Speed * float64(k.dir)
		}
		p.Dir = k.dir
	}
	if !moving && walking(p.State) {
		p.State = standingState(p.Big)
	}

	if f.Input.Pressed(Jump) {
		p.State = jumpingState(p.Big)
	}
}

func (w *World) animate(f *Frame) {
	w.Player.State.Def().Animation(&w.Player, f)
	for _, set := range w.actorSets() {
		set.Each(func(_ Handle, a *Actor) {
			a.State.Def().Animation(a, f)
		})
	}
}

func (w *World) actorSets() []*Arena[Actor] {
	return []*Arena[Actor]{&w.Stage.PowerUps, &w.Stage.Enemies, &w.Stage.Coins}
}

// move runs platforms first so riders are carried before they act, then
// the player, power-ups and enemies.
func (w *World) move(f *Frame) {
	w.Stage.Scenery.Each(func(_ Handle, sc *Scenery) {
		before := sc.Rect
		dx := sc.advance()
		if dx == 0 {
			return
		}
		carry := func(a *Actor) {
			if riding(a, before) {
				a.X += dx
			}
		}
		carry(&w.Player)
		w.Stage.Enemies.Each(func(_ Handle, a *Actor) { carry(a) })
		w.Stage.PowerUps.Each(func(_ Handle, a *Actor) { carry(a) })
	})

	w.Player.State.Def().Movement(&w.Player, f)
	w.Stage.PowerUps.Each(func(_ Handle, a *Actor) {
		a.State.Def().Movement(a, f)
	})
	w.Stage.Enemies.Each(func(_ Handle, a *Actor) {
		a.State.Def().Movement(a, f)
	})
}

// riding reports whether a stood on r during the last physics pass.
func riding(a *Actor, r Rect) bool {
	return a.Grounded && abs(a.Bottom()-r.Y) < 0.5 && a.Right() > r.X && a.X < r.Right()
}

// physics integrates gravity for every falling actor, then resolves
// actor contacts and scenery contacts in that order.
func (w *World) physics() {
	g := w.cfg.Physics.Gravity
	fall := func(a *Actor) {
		a.prevY = a.Y
		a.VelY += g
		a.Y += a.VelY
		a.Grounded = false
	}
	fall(&w.Player)
	w.Stage.PowerUps.Each(func(_ Handle, a *Actor) { fall(a) })
	w.Stage.Enemies.Each(func(_ Handle, a *Actor) { fall(a) })

	w.resolveActors()

	w.resolveScenery(&w.Player)
	w.Stage.PowerUps.Each(func(_ Handle, a *Actor) { w.resolveScenery(a) })
	w.Stage.Enemies.Each(func(_ Handle, a *Actor) { w.resolveScenery(a) })
}

// checkFall kills a player that dropped below the stage.
func (w *World) checkFall() {
	if w.Player.Y >= w.Stage.FallLimit && w.UserControl && !w.Finishing {
		w.kill()
	}
}

// damage shrinks a big player or kills a small one.
func (w *World) damage() {
	if w.Finishing || w.Player.Invulnerable {
		return
	}
	if w.Player.Big {
		w.shrink()
		return
	}
	w.kill()
}

// grow turns the player big, keeping the feet in place.
func (w *World) grow() {
	p := &w.Player
	p.Big = true
	w.resize(p, w.cfg.Player.BigHeight)
	if p.State != PlayerDead {
		p.State = PlayerResizing
	}
	w.emit(EventPowerUp, p)
	w.Sched.After(w.cfg.Timers.ResizeEnd, func() {
		if p.State == PlayerResizing {
			p.State = standingState(p.Big)
		}
	})
}

// shrink starts the power-down sequence: the player stays tall while the
// resize animation runs and is invulnerable a little longer.
func (w *World) shrink() {
	p := &w.Player
	p.Big = false
	p.Invulnerable = true
	p.State = PlayerResizing
	w.emit(EventPowerDown, p)
	w.Sched.After(w.cfg.Timers.ResizeEnd, func() {
		if p.State == PlayerDead {
			return
		}
		if p.State == PlayerResizing {
			p.State = PlayerStanding
		}
		if !p.Big {
			w.resize(p, w.cfg.Player.SmallHeight)
		}
	})
	w.Sched.After(w.cfg.Timers.InvincibleEnd, func() {
		p.Invulnerable = false
	})
}

func (w *World) resize(a *Actor, h float64) {
	a.Y += a.H - h
	a.H = h
}

// kill starts the death sequence once; repeated calls while it runs are
// ignored.
func (w *World) kill() {
	if !w.UserControl {
		return
	}
	p := &w.Player
	p.State = PlayerDead
	w.UserControl = false
	gameOver := w.Ledger.LoseLife()
	w.emit(EventDeath, p)

	w.Sched.After(w.cfg.Timers.DeathDrop, func() {
		p.Big = false
		p.H = w.cfg.Player.SmallHeight
		p.FallThrough = true
		p.VelY -= w.cfg.Physics.DeathKick
	})
	if gameOver {
		w.Sched.After(w.cfg.Timers.GameOverReset, w.gameOver)
		return
	}
	w.Sched.After(w.cfg.Timers.Respawn, w.respawn)
}

func (w *World) respawn() {
	w.spawn()
	w.UserControl = true
	w.emit(EventRespawn, &w.Player)
}

func (w *World) gameOver() {
	w.emit(EventGameOver, &w.Player)
	w.Ledger.Reset()
	w.load(w.campaign.First())
}

// finish handles contact with finish scenery. The creep applies on every
// overlapping tick; the level advance is scheduled on the first only.
func (w *World) finish() {
	p := &w.Player
	p.Speed = 0
	p.VelY = 0
	p.X += w.cfg.Player.FinishCreep
	if w.Finishing || !w.UserControl {
		return
	}
	w.Finishing = true
	w.emit(EventLevelFinish, p)
	w.Sched.After(w.cfg.Timers.LevelAdvance, w.advance)
}

// advance loads the level after the current one or completes the game.
func (w *World) advance() {
	w.emit(EventLevelCleared, &w.Player)
	next, ok := w.campaign.After(w.Stage.Level)
	if !ok {
		w.Complete = true
		w.emit(EventGameComplete, &w.Player)
		return
	}
	w.load(next)
}
