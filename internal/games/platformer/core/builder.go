package core

import "github.com/vovakirdan/tui-platformer/internal/config"

// Stage holds the live collections built from one level. A new Stage is
// built for every level load; nothing is carried over except what lives
// outside it (the player and the ledger).
type Stage struct {
	Level     Level
	Width     float64
	FallLimit float64
	Spawn     Point

	Scenery  Arena[Scenery]
	Enemies  Arena[Actor]
	Coins    Arena[Actor]
	PowerUps Arena[Actor]

	flag   Handle
	castle Handle
}

// Builder turns Level descriptions into Stages.
type Builder struct {
	Cfg        config.PlatformerConfig
	SpeedScale float64 // multiplier applied to enemy walking speed
}

// NewBuilder creates a builder with unscaled enemy speeds.
func NewBuilder(cfg config.PlatformerConfig) Builder {
	return Builder{Cfg: cfg, SpeedScale: 1}
}

// Build instantiates every category of l.
func (b Builder) Build(l Level) *Stage {
	s := &Stage{
		Level:     l,
		Width:     l.Width,
		FallLimit: l.FallLimit,
		Spawn:     l.Spawn,
		flag:      NoHandle,
		castle:    NoHandle,
	}
	if s.Width <= 0 {
		s.Width = b.Cfg.World.DefaultWidth
	}
	if s.FallLimit <= 0 {
		s.FallLimit = b.Cfg.Physics.FallLimit
	}

	for _, r := range l.Ground {
		b.addScenery(s, SceneryGround, r)
	}
	for _, r := range l.Shrubs {
		b.addScenery(s, SceneryShrub, r)
	}
	for _, r := range l.Mountains {
		b.addScenery(s, SceneryMountain, r)
	}
	for _, r := range l.Pipes {
		b.addScenery(s, SceneryPipe, r)
	}
	for _, c := range l.Clouds {
		h := b.addScenery(s, SceneryCloud, c.Rect)
		sc, _ := s.Scenery.Get(h)
		sc.Variant = c.Variant
	}
	for _, blk := range l.Blocks {
		if blk.Breakable {
			b.addScenery(s, SceneryBreakable, blk.Rect)
			continue
		}
		h := b.addScenery(s, SceneryBlock, blk.Rect)
		sc, _ := s.Scenery.Get(h)
		sc.Contents = blk.Contents
	}
	for _, r := range l.Breakables {
		b.addScenery(s, SceneryBreakable, r)
	}
	for _, r := range l.Bricks {
		b.addScenery(s, SceneryBrick, r)
	}
	for _, p := range l.Platforms {
		b.addPlatform(s, p)
	}
	for _, o := range l.Objects {
		b.addObject(s, o)
	}
	if l.Flag != nil {
		b.addScenery(s, SceneryFlag, *l.Flag)
	}
	if l.Flagpole != nil {
		b.addScenery(s, SceneryFlagpole, *l.Flagpole)
	}
	if l.Castle != nil {
		b.addScenery(s, SceneryCastle, *l.Castle)
	}
	if l.Exit != nil {
		b.addExit(s, *l.Exit)
	}

	for _, e := range l.Enemies {
		b.addEnemy(s, e)
	}
	for _, r := range l.Coins {
		s.Coins.Add(Actor{
			Rect:   b.sized(r),
			Kind:   KindCoin,
			State:  CoinSpinning,
			Dir:    Right,
			Visual: Visual{Sprite: SpriteCoin},
		})
	}
	for _, r := range l.PowerUps {
		s.PowerUps.Add(b.mushroom(r))
	}
	return s
}

func (b Builder) sized(r Rect) Rect {
	if r.W <= 0 {
		r.W = b.Cfg.World.Tile
	}
	if r.H <= 0 {
		r.H = b.Cfg.World.Tile
	}
	return r
}

func (b Builder) addScenery(s *Stage, kind SceneryKind, r Rect) Handle {
	h := s.Scenery.Add(Scenery{Rect: b.sized(r), Kind: kind})
	switch {
	case kind == SceneryFlag && s.flag == NoHandle:
		s.flag = h
	case kind == SceneryCastle && s.castle == NoHandle:
		s.castle = h
	}
	return h
}

func (b Builder) addPlatform(s *Stage, p PlatformDef) {
	speed := p.Speed
	if speed == 0 {
		speed = 1
	}
	path := p.PathLength
	if path <= 0 {
		path = 4 * b.Cfg.World.Tile
	}
	s.Scenery.Add(Scenery{
		Rect:       b.sized(p.Rect),
		Kind:       SceneryPlatform,
		Speed:      speed,
		PathLength: path,
		Dir:        Right,
	})
}

// addObject handles the typed scenery form.
func (b Builder) addObject(s *Stage, o Object) {
	switch o.Type {
	case "pipe":
		b.addScenery(s, SceneryPipe, o.Rect)
	case "ceiling", "brickPlatform", "pillarPlatform", "brick":
		b.addScenery(s, SceneryBrick, o.Rect)
	case "pillar", "ground":
		b.addScenery(s, SceneryGround, o.Rect)
	case "stair":
		b.addStair(s, o)
	case "movingPlatform":
		b.addPlatform(s, PlatformDef{Rect: o.Rect, PathLength: o.PathLength, Speed: o.Speed})
	case "flag":
		b.addScenery(s, SceneryFlag, o.Rect)
	case "flagpole":
		r := o.Rect
		if r.H <= 0 {
			r.H = b.Cfg.World.FlagpoleHeight
		}
		b.addScenery(s, SceneryFlagpole, r)
	case "castle":
		b.addScenery(s, SceneryCastle, o.Rect)
	case "cloud":
		h := b.addScenery(s, SceneryCloud, o.Rect)
		sc, _ := s.Scenery.Get(h)
		sc.Variant = o.Variant
	case "mountain":
		b.addScenery(s, SceneryMountain, o.Rect)
	case "shrub":
		b.addScenery(s, SceneryShrub, o.Rect)
	}
}

// addStair expands a staircase into brick columns standing on the row
// whose top is o.Y. Column i is i+1 steps tall.
func (b Builder) addStair(s *Stage, o Object) {
	sw, sh := o.StepWidth, o.StepHeight
	if sw <= 0 {
		sw = b.Cfg.World.Tile
	}
	if sh <= 0 {
		sh = b.Cfg.World.Tile
	}
	steps := o.Steps
	if steps <= 0 {
		b.addScenery(s, SceneryBrick, o.Rect)
		return
	}
	for i := 0; i < steps; i++ {
		col := i
		if o.Direction == "left" {
			col = steps - 1 - i
		}
		height := float64(i+1) * sh
		b.addScenery(s, SceneryBrick, R(o.X+float64(col)*sw, o.Y+sh-height, sw, height))
	}
}

// addExit places finish scenery for the exit descriptor. A pipe exit gets
// a trigger zone on top of the pipe. Flag exits only add a flagpole when
// the level has no finish scenery of its own.
func (b Builder) addExit(s *Stage, e Exit) {
	tile := b.Cfg.World.Tile
	switch e.Type {
	case "pipe":
		w := e.W
		if w <= 0 {
			w = 2 * tile
		}
		b.addScenery(s, SceneryExit, R(e.X, e.Y-tile, w, tile))
	default:
		found := false
		s.Scenery.Each(func(_ Handle, sc *Scenery) {
			if sc.Kind.Finish() {
				found = true
			}
		})
		if found {
			return
		}
		h := e.H
		if h <= 0 {
			h = b.Cfg.World.FlagpoleHeight
		}
		b.addScenery(s, SceneryFlagpole, R(e.X, e.Y, e.W, h))
	}
}

func (b Builder) addEnemy(s *Stage, e EnemyDef) {
	r := e.Rect
	dir := e.Dir
	if dir == 0 {
		dir = Right
	}
	scale := b.SpeedScale
	if scale <= 0 {
		scale = 1
	}

	switch e.Kind {
	case KindGoomba:
		s.Enemies.Add(Actor{
			Rect:   b.sized(r),
			Kind:   KindGoomba,
			State:  GoombaWalking,
			Speed:  b.Cfg.Enemies.GoombaSpeed * scale,
			Dir:    dir,
			Visual: Visual{Sprite: SpriteGoomba},
		})
	case KindKoopa:
		if r.H <= 0 {
			r.H = b.Cfg.Enemies.KoopaHeight
		}
		s.Enemies.Add(Actor{
			Rect:   b.sized(r),
			Kind:   KindKoopa,
			State:  KoopaWalking,
			Speed:  b.Cfg.Enemies.KoopaSpeed * scale,
			Dir:    dir,
			Visual: Visual{Sprite: SpriteKoopa},
		})
	}
}

func (b Builder) mushroom(r Rect) Actor {
	return Actor{
		Rect:   b.sized(r),
		Kind:   KindMushroom,
		State:  MushroomMoving,
		Speed:  b.Cfg.Enemies.MushroomSpeed,
		Dir:    Right,
		Visual: Visual{Sprite: SpriteMushroom},
	}
}

// NearExit reports whether p is within the finish proximity of the flag
// or the castle on both axes.
func (s *Stage) NearExit(p Point, proximity float64) bool {
	for _, h := range []Handle{s.flag, s.castle} {
		sc, ok := s.Scenery.Get(h)
		if !ok {
			continue
		}
		if abs(p.X-sc.X) < proximity && abs(p.Y-sc.Y) < proximity {
			return true
		}
	}
	return false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
