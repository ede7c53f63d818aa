package core

import "testing"

// openWorld returns a world whose only scenery is ground far below the
// test area, so hand-placed actors only touch what a test adds.
func openWorld(t *testing.T) *World {
	t.Helper()
	lvl := Level{ID: "open", Width: 800, Spawn: Point{X: 600, Y: 0}, Ground: []Rect{R(500, 400, 200, 16)}}
	return newTestWorld(t, lvl)
}

func addEnemy(w *World, kind Kind, r Rect) Handle {
	state := GoombaWalking
	if kind == KindKoopa {
		state = KoopaWalking
	}
	return w.Stage.Enemies.Add(Actor{Rect: r, Kind: kind, State: state, Speed: 0.5, Dir: Left, VelY: 1.2})
}

func placePlayer(w *World, r Rect, velY float64) *Actor {
	p := &w.Player
	p.Rect = r
	p.VelY = velY
	p.prevY = r.Y - velY
	return p
}

func TestTopSnap(t *testing.T) {
	tests := []struct {
		name string
		kind SceneryKind
		a    Rect
		velY float64
	}{
		{"ground", SceneryGround, R(100, 178, 16, 16), 4},
		{"pipe", SceneryPipe, R(104, 165, 16, 32), 6},
		{"block corner", SceneryBlock, R(90, 180, 16, 16), 1.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := openWorld(t)
			sc := Scenery{Rect: R(100, 192, 32, 16), Kind: tt.kind}
			a := Actor{Rect: tt.a, Kind: KindGoomba, VelY: tt.velY}
			w.collideScenery(&a, NoHandle, &sc)
			if a.Bottom() != sc.Y || a.VelY != 0 || !a.Grounded {
				t.Errorf("bottom=%v velY=%v grounded=%v", a.Bottom(), a.VelY, a.Grounded)
			}
		})
	}
}

func TestSidePush(t *testing.T) {
	tests := []struct {
		name      string
		kind      SceneryKind
		x         float64
		wantX     float64
		wantDir   Dir
		startDir  Dir
		playerish bool
	}{
		{"left face of ground", SceneryGround, 190, 184, Left, Right, false},
		{"left face of pipe keeps a gap", SceneryPipe, 190, 183, Left, Right, false},
		{"right face", SceneryBrick, 210, 232, Right, Left, false},
		{"player does not turn", SceneryGround, 190, 184, Right, Right, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := openWorld(t)
			sc := Scenery{Rect: R(200, 160, 32, 32), Kind: tt.kind}
			a := Actor{Rect: R(tt.x, 170, 16, 16), Kind: KindGoomba, VelY: 1.2, Dir: tt.startDir}
			if tt.playerish {
				a.Kind = KindPlayer
			}
			w.collideScenery(&a, NoHandle, &sc)
			if a.X != tt.wantX {
				t.Errorf("x = %v, want %v", a.X, tt.wantX)
			}
			if a.Dir != tt.wantDir {
				t.Errorf("dir = %v, want %v", a.Dir, tt.wantDir)
			}
		})
	}
}

func TestCoinBlockStrike(t *testing.T) {
	w := openWorld(t)
	h := w.Stage.Scenery.Add(Scenery{Rect: R(100, 100, 16, 16), Kind: SceneryBlock, Contents: ContentsCoin})
	coins := w.Stage.Coins.Len()

	p := placePlayer(w, R(100, 110, 16, 16), -8)
	w.resolveScenery(p)

	sc, _ := w.Stage.Scenery.Get(h)
	if w.Ledger.Points != 50 || w.Ledger.Coins != 1 {
		t.Errorf("ledger after strike: %+v", w.Ledger)
	}
	if sc.Contents != ContentsEmpty || !sc.Used {
		t.Errorf("block should be used and empty: %+v", sc)
	}
	if p.Y != sc.Bottom() || p.VelY != 1.2 {
		t.Errorf("player should bounce off the underside: y=%v velY=%v", p.Y, p.VelY)
	}
	if w.Stage.Coins.Len() != coins+1 {
		t.Fatalf("expected a block coin to appear")
	}
	w.Stage.Coins.Each(func(_ Handle, c *Actor) {
		if c.State == CoinBlock && p.Overlaps(c.Rect) {
			t.Error("block coin should not overlap the player")
		}
	})

	// A second strike has no further effect.
	p = placePlayer(w, R(100, 110, 16, 16), -8)
	w.events = nil
	w.resolveScenery(p)
	if w.Ledger.Points != 50 || w.Ledger.Coins != 1 {
		t.Errorf("second strike changed the ledger: %+v", w.Ledger)
	}
	if count(w.events, EventBump) != 1 {
		t.Errorf("expected a bump, got %v", w.events)
	}
}

func TestBlockCoinIsNotCollectable(t *testing.T) {
	w := openWorld(t)
	w.Stage.Coins.Add(Actor{Rect: R(100, 100, 18, 18), Kind: KindCoin, State: CoinBlock})
	placePlayer(w, R(100, 100, 16, 16), 0)
	w.resolveActors()
	if w.Ledger.Coins != 0 {
		t.Error("block coin was collected by touch")
	}
}

func TestPowerUpBlockSpawnsMushroom(t *testing.T) {
	w := openWorld(t)
	w.Stage.Scenery.Add(Scenery{Rect: R(100, 100, 16, 16), Kind: SceneryBlock, Contents: ContentsPowerUp})
	p := placePlayer(w, R(100, 110, 16, 16), -8)
	w.resolveScenery(p)

	if w.Stage.PowerUps.Len() != 1 {
		t.Fatalf("expected one mushroom, got %d", w.Stage.PowerUps.Len())
	}
	m, _ := w.Stage.PowerUps.Get(0)
	if m.X != 100 || m.Y != 82 || m.State != MushroomMoving {
		t.Errorf("unexpected mushroom %+v", m)
	}
	if count(w.events, EventPowerUpSpawn) != 1 {
		t.Errorf("expected spawn event, got %v", w.events)
	}
}

func TestBreakableNeedsBigPlayer(t *testing.T) {
	w := openWorld(t)
	h := w.Stage.Scenery.Add(Scenery{Rect: R(100, 100, 16, 16), Kind: SceneryBreakable})

	p := placePlayer(w, R(100, 110, 16, 16), -8)
	w.resolveScenery(p)
	if !w.Stage.Scenery.Alive(h) {
		t.Fatal("small player broke a block")
	}

	p = placePlayer(w, R(100, 110, 16, 32), -8)
	p.Big = true
	w.resolveScenery(p)
	if w.Stage.Scenery.Alive(h) {
		t.Error("big player should break the block")
	}
	if count(w.events, EventBreak) != 1 {
		t.Errorf("expected break event, got %v", w.events)
	}
}

func TestCoinTouchCollectsOnce(t *testing.T) {
	w := openWorld(t)
	h := w.Stage.Coins.Add(Actor{Rect: R(100, 100, 16, 16), Kind: KindCoin, State: CoinSpinning})
	placePlayer(w, R(104, 104, 16, 16), 0)

	w.resolveActors()
	w.resolveActors()
	if w.Ledger.Coins != 1 || w.Ledger.Points != 200 {
		t.Errorf("ledger %+v", w.Ledger)
	}
	for i := 0; i < 3; i++ {
		w.Sched.Advance()
	}
	if w.Stage.Coins.Alive(h) {
		t.Error("collected coin should be removed after the grace delay")
	}
}

func TestMushroomGrowsPlayer(t *testing.T) {
	w := openWorld(t)
	h := w.Stage.PowerUps.Add(Actor{Rect: R(100, 100, 16, 16), Kind: KindMushroom, State: MushroomMoving})
	p := placePlayer(w, R(104, 100, 16, 16), 0)

	w.resolveActors()
	if !p.Big || p.H != 32 || p.Bottom() != 116 {
		t.Errorf("player did not grow in place: %+v", p.Rect)
	}
	if w.Stage.PowerUps.Alive(h) {
		t.Error("mushroom should be consumed")
	}
	if count(w.events, EventPowerUp) != 1 {
		t.Errorf("expected power-up event")
	}
}

func TestStompGoomba(t *testing.T) {
	w := openWorld(t)
	h := addEnemy(w, KindGoomba, R(100, 176, 16, 16))
	p := placePlayer(w, R(102, 162, 16, 16), 5)

	w.resolveActors()

	e, _ := w.Stage.Enemies.Get(h)
	if e.State != GoombaDead {
		t.Errorf("goomba state %s", e.State)
	}
	if p.Bottom() != e.Y || p.VelY != 0 {
		t.Errorf("player should land on the goomba: bottom=%v velY=%v", p.Bottom(), p.VelY)
	}
	if w.Ledger.Points != 100 || w.Ledger.Lives != 3 {
		t.Errorf("ledger %+v", w.Ledger)
	}
	for i := 0; i < 48; i++ {
		w.Sched.Advance()
	}
	if w.Stage.Enemies.Alive(h) {
		t.Error("flattened goomba should be removed")
	}
}

func TestSideHitDamages(t *testing.T) {
	t.Run("small player dies", func(t *testing.T) {
		w := openWorld(t)
		addEnemy(w, KindGoomba, R(100, 176, 16, 16))
		p := placePlayer(w, R(90, 176, 16, 16), 1.2)

		w.resolveActors()
		if p.Right() != 100 {
			t.Errorf("player should be pushed out, right=%v", p.Right())
		}
		if p.State != PlayerDead || w.UserControl || w.Ledger.Lives != 2 {
			t.Errorf("state=%s control=%v lives=%d", p.State, w.UserControl, w.Ledger.Lives)
		}
	})

	t.Run("big player shrinks", func(t *testing.T) {
		w := openWorld(t)
		addEnemy(w, KindGoomba, R(100, 176, 16, 16))
		p := placePlayer(w, R(108, 160, 16, 32), 1.2)
		p.Big = true

		w.resolveActors()
		if p.Big || !p.Invulnerable || p.State != PlayerResizing {
			t.Fatalf("expected shrink, got %+v", p)
		}
		if p.X != 116 {
			t.Errorf("player should be pushed right, x=%v", p.X)
		}
		for i := 0; i < 60; i++ {
			w.Sched.Advance()
		}
		if p.H != 16 || p.Bottom() != 192 || p.State != PlayerStanding {
			t.Errorf("resize did not finish: %+v", p)
		}
		if !p.Invulnerable {
			t.Error("invulnerability should outlast the resize")
		}
		for i := 0; i < 30; i++ {
			w.Sched.Advance()
		}
		if p.Invulnerable {
			t.Error("invulnerability should have ended")
		}
	})

	t.Run("invulnerable player ignores enemies", func(t *testing.T) {
		w := openWorld(t)
		addEnemy(w, KindGoomba, R(100, 176, 16, 16))
		p := placePlayer(w, R(90, 176, 16, 16), 1.2)
		p.Invulnerable = true
		w.resolveActors()
		if w.Ledger.Lives != 3 || p.X != 90 {
			t.Errorf("invulnerable player was hit")
		}
	})
}

func TestKoopaShellSequence(t *testing.T) {
	w := openWorld(t)
	h := addEnemy(w, KindKoopa, R(100, 168, 16, 24))
	e, _ := w.Stage.Enemies.Get(h)
	advance := func(n int) {
		for i := 0; i < n; i++ {
			w.Sched.Advance()
		}
	}

	placePlayer(w, R(100, 155, 16, 16), 5)
	w.resolveActors()
	if e.State != KoopaHiding || !e.Invulnerable {
		t.Fatalf("expected hiding shell, got %s", e.State)
	}
	if e.Bottom() != 192 || e.H != 17 {
		t.Errorf("shell should keep its feet: %+v", e.Rect)
	}
	if w.Ledger.Points != 0 {
		t.Errorf("hiding should not score, got %d", w.Ledger.Points)
	}

	// Still shielded: a second stomp right away is ignored.
	placePlayer(w, R(100, 162, 16, 16), 5)
	w.resolveActors()
	if e.State != KoopaHiding {
		t.Fatalf("shielded shell changed state to %s", e.State)
	}

	advance(12)
	if e.Invulnerable {
		t.Fatal("shell should re-arm")
	}
	placePlayer(w, R(106, 162, 16, 16), 5)
	w.resolveActors()
	if e.State != KoopaSliding || e.Dir != Left || e.Speed != 3 {
		t.Fatalf("expected shell sliding away from player: %s dir=%s speed=%v", e.State, e.Dir, e.Speed)
	}

	advance(12)
	placePlayer(w, R(100, 162, 16, 16), 5)
	w.resolveActors()
	if e.State != KoopaDead || !e.FallThrough || e.VelY >= 0 {
		t.Fatalf("expected dead shell, got %s fall=%v velY=%v", e.State, e.FallThrough, e.VelY)
	}
	if w.Ledger.Points != 100 {
		t.Errorf("killing the shell should score, got %d", w.Ledger.Points)
	}
	advance(24)
	if w.Stage.Enemies.Alive(h) {
		t.Error("dead shell should be removed")
	}
}

func TestSideKickShell(t *testing.T) {
	w := openWorld(t)
	h := w.Stage.Enemies.Add(Actor{Rect: R(100, 175, 16, 17), Kind: KindKoopa, State: KoopaHiding, VelY: 1.2, Dir: Left})
	p := placePlayer(w, R(90, 176, 16, 16), 1.2)

	w.resolveActors()
	e, _ := w.Stage.Enemies.Get(h)
	if w.Ledger.Lives != 3 || p.State == PlayerDead {
		t.Fatal("kicking a shell should not hurt")
	}
	if e.Dir != Right || e.X != 105 || !e.Invulnerable {
		t.Errorf("shell not kicked: %+v", e)
	}
	if count(w.events, EventShellKick) != 1 {
		t.Errorf("expected kick event")
	}

	for i := 0; i < 3; i++ {
		w.Sched.Advance()
	}
	if e.State != KoopaSliding || e.Dir != Right {
		t.Errorf("kicked shell should slide right, got %s %s", e.State, e.Dir)
	}
}

func TestSlidingShellHurtsOnSideHit(t *testing.T) {
	w := openWorld(t)
	w.Stage.Enemies.Add(Actor{Rect: R(100, 175, 16, 17), Kind: KindKoopa, State: KoopaSliding, Speed: 3, VelY: 1.2, Dir: Left})
	placePlayer(w, R(90, 176, 16, 16), 1.2)
	w.resolveActors()
	if w.Ledger.Lives != 2 {
		t.Errorf("sliding shell should kill a small player, lives=%d", w.Ledger.Lives)
	}
}

func TestResolveUnderside(t *testing.T) {
	w := openWorld(t)
	e := &Actor{Rect: R(100, 100, 16, 16), Kind: KindGoomba}

	placePlayer(w, R(100, 84, 16, 16), 0)
	if w.resolveUnderside(e) {
		t.Fatal("player above the enemy should not be hit from below")
	}

	p := placePlayer(w, R(104, 110, 16, 16), -2)
	if !w.resolveUnderside(e) {
		t.Fatal("expected underside contact")
	}
	if p.X != e.X || p.VelY != 1.2 {
		t.Errorf("player not realigned: x=%v velY=%v", p.X, p.VelY)
	}
	if w.Ledger.Lives != 2 {
		t.Errorf("small player should lose a life, lives=%d", w.Ledger.Lives)
	}
}

func TestDeadPlayerIgnoresActors(t *testing.T) {
	w := openWorld(t)
	addEnemy(w, KindGoomba, R(100, 176, 16, 16))
	w.Stage.Coins.Add(Actor{Rect: R(92, 176, 16, 16), Kind: KindCoin, State: CoinSpinning})
	placePlayer(w, R(90, 176, 16, 16), 1.2)
	w.kill()
	lives := w.Ledger.Lives

	w.resolveActors()
	if w.Ledger.Lives != lives || w.Ledger.Coins != 0 {
		t.Errorf("dead player interacted: %+v", w.Ledger)
	}
}
