// Package core is the platformer simulation: actors driven by per-kind state
// tables, the world builder, collision resolution, the camera, the
// score/lives ledger and an epoch-checked scheduler for deferred effects.
//
// The package is deterministic and has no knowledge of terminals, files or
// wall-clock time. One call to World.Step advances the simulation by one
// tick.
package core

// Kind tags an actor for collision dispatch.
type Kind int

const (
	KindPlayer Kind = iota
	KindGoomba
	KindKoopa
	KindCoin
	KindMushroom
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindGoomba:
		return "goomba"
	case KindKoopa:
		return "koopa"
	case KindCoin:
		return "coin"
	case KindMushroom:
		return "mushroom"
	default:
		return "unknown"
	}
}

// Enemy reports whether the kind hurts the player on contact.
func (k Kind) Enemy() bool {
	return k == KindGoomba || k == KindKoopa
}

// Dir is a facing direction and the sign of horizontal movement.
type Dir int

const (
	Left  Dir = -1
	Right Dir = 1
)

// Reverse returns the opposite direction.
func (d Dir) Reverse() Dir {
	if d == Left {
		return Right
	}
	return Left
}

func (d Dir) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

// Sprite names the image an actor shows. Renderers map sprites to glyphs.
type Sprite string

const (
	SpriteStand      Sprite = "stand"
	SpriteBigStand   Sprite = "big-stand"
	SpriteWalk       Sprite = "walk"
	SpriteBigWalk    Sprite = "big-walk"
	SpriteJump       Sprite = "jump"
	SpriteBigJump    Sprite = "big-jump"
	SpriteResize     Sprite = "resize"
	SpriteDead       Sprite = "dead"
	SpriteGoomba     Sprite = "goomba"
	SpriteGoombaFlat Sprite = "goomba-flat"
	SpriteKoopa      Sprite = "koopa"
	SpriteShell      Sprite = "shell"
	SpriteCoin       Sprite = "coin"
	SpriteBlockCoin  Sprite = "block-coin"
	SpriteMushroom   Sprite = "mushroom"
)

// Visual is the resolved image of an actor for the current frame.
type Visual struct {
	Sprite Sprite
	Frame  int
}

// Actor is any dynamic participant: the player, enemies, coins and
// power-ups. Static world geometry is Scenery.
type Actor struct {
	Rect
	Kind   Kind
	State  StateID
	Visual Visual

	VelY  float64 // vertical velocity, positive is downward
	Speed float64 // horizontal speed applied along Dir by walking states
	Dir   Dir

	Big          bool // player only: tall variant
	Grounded     bool // rested on something during the last physics pass
	FallThrough  bool // ignores solid scenery (dying actors)
	Invulnerable bool // enemies: ignores player contact; player: cannot be hurt
	Collected    bool // coins: already picked up, waiting for removal

	prevY float64 // y before this tick's vertical integration
}

// Dying reports whether the actor is in a terminal state and must not
// take part in combat any more.
func (a *Actor) Dying() bool {
	switch a.State {
	case PlayerDead, GoombaDead, KoopaDead:
		return true
	}
	return false
}
