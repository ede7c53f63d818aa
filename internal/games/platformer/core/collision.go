package core

// resolveActors handles the player's contacts with coins, power-ups and
// enemies. Actor pairs not involving the player are not resolved.
func (w *World) resolveActors() {
	p := &w.Player
	if p.State == PlayerDead {
		return
	}
	st := w.Stage

	st.Coins.Each(func(h Handle, c *Actor) {
		if c.State != CoinSpinning || c.Collected || !p.Overlaps(c.Rect) {
			return
		}
		c.Collected = true
		w.Ledger.AddCoin()
		w.emit(EventCoin, c)
		w.Sched.After(w.cfg.Timers.CollectibleRemove, func() {
			st.Coins.Remove(h)
		})
	})

	st.PowerUps.Each(func(h Handle, m *Actor) {
		if !p.Overlaps(m.Rect) {
			return
		}
		st.PowerUps.Remove(h)
		w.grow()
	})

	st.Enemies.Each(func(h Handle, e *Actor) {
		if p.State == PlayerDead || p.Invulnerable {
			return
		}
		if e.Dying() || e.Invulnerable || !p.Overlaps(e.Rect) {
			return
		}
		switch {
		case p.Y < e.Y && p.VelY > e.VelY:
			w.stomp(h, e)
			w.resolveUnderside(e)
		case p.VelY <= e.VelY:
			w.sideHit(h, e)
		}
	})
}

// stomp resolves a contact from above: the player lands on the enemy and
// the enemy advances along its defeat sequence.
func (w *World) stomp(h Handle, e *Actor) {
	p := &w.Player
	p.Y = e.Y - p.H
	p.VelY = 0
	p.Grounded = true
	if p.State != PlayerResizing {
		p.State = standingState(p.Big)
	}
	w.emit(EventStomp, e)

	switch e.Kind {
	case KindGoomba:
		w.flattenGoomba(h, e)
	case KindKoopa:
		switch e.State {
		case KoopaHiding:
			away := Right
			if p.CenterX() > e.CenterX() {
				away = Left
			}
			w.slideShell(h, e, away)
		case KoopaSliding:
			w.killShell(h, e)
		default:
			w.hideShell(h, e)
		}
	}
}

// resolveUnderside hurts the player when the stomp left it below the
// enemy's top edge with horizontal overlap.
func (w *World) resolveUnderside(e *Actor) bool {
	p := &w.Player
	if p.Y <= e.Y || p.Right() < e.X || p.X >= e.Right() {
		return false
	}
	p.VelY = w.cfg.Physics.BumpVelocity
	p.X = e.X
	w.damage()
	return true
}

// sideHit resolves a horizontal contact. The player is pushed out of the
// enemy on the side it came from; a hiding shell gets kicked, anything
// else hurts.
func (w *World) sideHit(h Handle, e *Actor) {
	p := &w.Player
	kick := Right
	if p.CenterX() <= e.CenterX() {
		p.X = e.X - p.W
	} else {
		p.X = e.Right()
		kick = Left
	}

	if e.Kind == KindKoopa && e.State == KoopaHiding {
		w.kickShell(h, e, kick)
		return
	}
	w.damage()
}

func (w *World) flattenGoomba(h Handle, e *Actor) {
	w.Ledger.AddScore(w.cfg.Scoring.StompPoints)
	e.State = GoombaDead
	e.Speed = 0
	st := w.Stage
	w.Sched.After(w.cfg.Timers.GoombaRemove, func() {
		st.Enemies.Remove(h)
	})
}

// hideShell retracts a walking koopa into its shell, keeping its feet on
// the ground.
func (w *World) hideShell(h Handle, e *Actor) {
	en := w.cfg.Enemies
	e.Y += e.H - en.ShellHeight
	e.W = en.ShellWidth
	e.H = en.ShellHeight
	e.Speed = 0
	e.State = KoopaHiding
	w.shield(h, e)
}

func (w *World) slideShell(h Handle, e *Actor, dir Dir) {
	e.State = KoopaSliding
	e.Speed = w.cfg.Enemies.ShellSpeed
	e.Dir = dir
	w.shield(h, e)
}

// kickShell nudges a hiding shell away from the player. It starts sliding
// shortly after unless something else changed it meanwhile.
func (w *World) kickShell(h Handle, e *Actor, dir Dir) {
	e.Dir = dir
	e.X += w.cfg.Enemies.ShellNudge * float64(dir)
	e.Invulnerable = true
	w.emit(EventShellKick, e)

	st := w.Stage
	w.Sched.After(w.cfg.Timers.ShellKick, func() {
		e, ok := st.Enemies.Get(h)
		if !ok || e.State != KoopaHiding {
			return
		}
		w.slideShell(h, e, e.Dir)
	})
}

func (w *World) killShell(h Handle, e *Actor) {
	w.Ledger.AddScore(w.cfg.Scoring.StompPoints)
	e.State = KoopaDead
	e.Speed = 0
	e.VelY -= w.cfg.Physics.ShellKillKick
	e.FallThrough = true
	st := w.Stage
	w.Sched.After(w.cfg.Timers.ShellRemove, func() {
		st.Enemies.Remove(h)
	})
}

// shield makes e ignore the player until the rearm delay has passed.
func (w *World) shield(h Handle, e *Actor) {
	e.Invulnerable = true
	st := w.Stage
	w.Sched.After(w.cfg.Timers.ShellRearm, func() {
		if e, ok := st.Enemies.Get(h); ok {
			e.Invulnerable = false
		}
	})
}

// resolveScenery pushes a out of every solid scenery object it overlaps.
// Side faces are checked first, then the top, then the underside.
func (w *World) resolveScenery(a *Actor) {
	if a.FallThrough {
		return
	}
	w.Stage.Scenery.Each(func(h Handle, sc *Scenery) {
		if sc.Kind.Decorative() || !a.Overlaps(sc.Rect) {
			return
		}
		if sc.Kind.Finish() {
			if a.Kind == KindPlayer {
				w.finish()
			}
			return
		}
		w.collideScenery(a, h, sc)
	})
}

func (w *World) collideScenery(a *Actor, h Handle, sc *Scenery) {
	// A head strike that started below the object skips the side faces.
	fromBelow := a.VelY < 0 && a.prevY >= sc.Bottom()
	if !fromBelow && a.Y >= sc.Y {
		if a.X < sc.X {
			a.X = sc.X - a.W - sc.Kind.clearance()
			turn(a)
		} else if a.X > sc.X {
			a.X = sc.Right()
			turn(a)
		}
	}

	if a.VelY >= 0 && a.Y < sc.Y && a.Right() > sc.X && a.X < sc.Right() {
		a.Y = sc.Y - a.H
		a.VelY = 0
		a.Grounded = true
		if a.Kind == KindPlayer && jumping(a.State) {
			a.State = standingState(a.Big)
		}
		return
	}

	if a.VelY < 0 && a.Y >= sc.Y && a.Right() >= sc.X && a.X < sc.Right() {
		if a.Kind == KindPlayer {
			w.strike(h, sc)
		}
		a.Y = sc.Bottom()
		a.VelY = w.cfg.Physics.BumpVelocity
	}
}

// turn reverses walkers that ran into a wall.
func turn(a *Actor) {
	if a.Kind != KindPlayer {
		a.Dir = a.Dir.Reverse()
	}
}

// strike applies the effect of the player hitting sc from below.
func (w *World) strike(h Handle, sc *Scenery) {
	st := w.Stage
	switch sc.Kind {
	case SceneryBlock:
		switch sc.Contents {
		case ContentsCoin:
			w.Ledger.AwardBlockCoin()
			ch := st.Coins.Add(Actor{
				Rect:  R(sc.X-2, sc.Y-18, 18, 18),
				Kind:  KindCoin,
				State: CoinBlock,
				Dir:   Right,
			})
			c, _ := st.Coins.Get(ch)
			w.emit(EventCoin, c)
			w.Sched.After(w.cfg.Timers.CollectibleRemove, func() {
				st.Coins.Remove(ch)
			})
		case ContentsPowerUp:
			mh := st.PowerUps.Add(w.builder.mushroom(R(sc.X, sc.Y-18, 0, 0)))
			m, _ := st.PowerUps.Get(mh)
			w.emit(EventPowerUpSpawn, m)
		default:
			w.emit(EventBump, &w.Player)
		}
		sc.Contents = ContentsEmpty
		sc.Used = true
	case SceneryBreakable:
		if w.Player.Big {
			st.Scenery.Remove(h)
			w.emit(EventBreak, &w.Player)
			return
		}
		w.emit(EventBump, &w.Player)
	}
}
