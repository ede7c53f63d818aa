package platformer

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer/core"
)

// Snapshot is a flat copy of the simulation state for determinism checks
// and debugging. Hash mixes positions by their float64 bit patterns.
type Snapshot struct {
	Tick       uint64
	LevelTicks int
	Level      string
	Points     int
	CoinCount  int
	Lives      int

	Player      ActorSnapshot
	UserControl bool
	Finishing   bool
	Complete    bool
	ViewX       float64

	Enemies  []ActorSnapshot
	Coins    []ActorSnapshot
	PowerUps []ActorSnapshot
	Scenery  int // live scenery objects
	Pending  int // queued deferred effects
}

// ActorSnapshot is the observable state of one actor.
type ActorSnapshot struct {
	Kind       string
	State      string
	X, Y, W, H float64
	VelY       float64
	Dir        int
	Big        bool
}

func actorSnapshot(a *core.Actor) ActorSnapshot {
	return ActorSnapshot{
		Kind:  a.Kind.String(),
		State: a.State.String(),
		X:     a.X,
		Y:     a.Y,
		W:     a.W,
		H:     a.H,
		VelY:  a.VelY,
		Dir:   int(a.Dir),
		Big:   a.Big,
	}
}

func collect(set *core.Arena[core.Actor]) []ActorSnapshot {
	out := make([]ActorSnapshot, 0, set.Len())
	set.Each(func(_ core.Handle, a *core.Actor) {
		out = append(out, actorSnapshot(a))
	})
	return out
}

// Snapshot returns the current simulation state. It returns the zero
// snapshot when no levels are loaded.
func (g *Game) Snapshot() Snapshot {
	w := g.world
	if w == nil {
		return Snapshot{}
	}
	return Snapshot{
		Tick:        w.Tick,
		LevelTicks:  w.LevelTicks,
		Level:       w.Level().ID,
		Points:      w.Ledger.Points,
		CoinCount:   w.Ledger.Coins,
		Lives:       w.Ledger.Lives,
		Player:      actorSnapshot(&w.Player),
		UserControl: w.UserControl,
		Finishing:   w.Finishing,
		Complete:    w.Complete,
		ViewX:       w.View.X,
		Enemies:     collect(&w.Stage.Enemies),
		Coins:       collect(&w.Stage.Coins),
		PowerUps:    collect(&w.Stage.PowerUps),
		Scenery:     w.Stage.Scenery.Len(),
		Pending:     w.Sched.Pending(),
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	mix := func(v uint64) { h = h*31 + v }
	mixInt := func(v int) { mix(uint64(v)) } //#nosec G115 -- hash computation
	mixStr := func(s string) {
		for i := 0; i < len(s); i++ {
			mix(uint64(s[i]))
		}
	}
	mixBool := func(b bool) {
		if b {
			mix(1)
		} else {
			mix(0)
		}
	}
	mixActor := func(a ActorSnapshot) {
		mixStr(a.Kind)
		mixStr(a.State)
		for _, f := range [...]float64{a.X, a.Y, a.W, a.H, a.VelY} {
			mix(math.Float64bits(f))
		}
		mixInt(a.Dir)
		mixBool(a.Big)
	}

	mixInt(snap.LevelTicks)
	mixStr(snap.Level)
	mixInt(snap.Points)
	mixInt(snap.CoinCount)
	mixInt(snap.Lives)
	mixActor(snap.Player)
	mixBool(snap.UserControl)
	mixBool(snap.Finishing)
	mixBool(snap.Complete)
	mix(math.Float64bits(snap.ViewX))
	for _, set := range [][]ActorSnapshot{snap.Enemies, snap.Coins, snap.PowerUps} {
		mixInt(len(set))
		for _, a := range set {
			mixActor(a)
		}
	}
	mixInt(snap.Scenery)
	mixInt(snap.Pending)
	return h
}
