package core

// StateID names a behavior state. Each actor has exactly one current state
// and changes it only by explicit assignment from input, collision
// outcomes or timers.
type StateID int

const (
	StateNone StateID = iota
	PlayerStanding
	PlayerBigStanding
	PlayerWalking
	PlayerBigWalking
	PlayerJumping
	PlayerBigJumping
	PlayerResizing
	PlayerDead
	GoombaWalking
	GoombaDead
	KoopaWalking
	KoopaHiding
	KoopaSliding
	KoopaDead
	CoinSpinning
	CoinBlock
	MushroomMoving
	stateCount
)

// StateDef pairs the two rules of a state. Movement may change only the
// actor's own position, velocity and direction. Animation may change only
// the actor's Visual.
type StateDef struct {
	Name      string
	Movement  func(a *Actor, f *Frame)
	Animation func(a *Actor, f *Frame)
}

var states = [stateCount]StateDef{
	StateNone:         {Name: "none", Movement: moveNone, Animation: animNone},
	PlayerStanding:    {Name: "standing", Movement: moveNone, Animation: still(SpriteStand)},
	PlayerBigStanding: {Name: "big-standing", Movement: moveNone, Animation: still(SpriteBigStand)},
	PlayerWalking:     {Name: "walking", Movement: moveWalk, Animation: playerWalk(SpriteWalk)},
	PlayerBigWalking:  {Name: "big-walking", Movement: moveWalk, Animation: playerWalk(SpriteBigWalk)},
	PlayerJumping:     {Name: "jumping", Movement: moveJump, Animation: still(SpriteJump)},
	PlayerBigJumping:  {Name: "big-jumping", Movement: moveJump, Animation: still(SpriteBigJump)},
	PlayerResizing:    {Name: "resizing", Movement: moveNone, Animation: animResize},
	PlayerDead:        {Name: "dead", Movement: moveDead, Animation: still(SpriteDead)},
	GoombaWalking:     {Name: "goomba-walking", Movement: moveWalk, Animation: enemyWalk(SpriteGoomba)},
	GoombaDead:        {Name: "goomba-dead", Movement: moveNone, Animation: still(SpriteGoombaFlat)},
	KoopaWalking:      {Name: "koopa-walking", Movement: moveWalk, Animation: enemyWalk(SpriteKoopa)},
	KoopaHiding:       {Name: "koopa-hiding", Movement: moveNone, Animation: still(SpriteShell)},
	KoopaSliding:      {Name: "koopa-sliding", Movement: moveWalk, Animation: still(SpriteShell)},
	KoopaDead:         {Name: "koopa-dead", Movement: moveNone, Animation: still(SpriteShell)},
	CoinSpinning:      {Name: "coin-spinning", Movement: moveNone, Animation: animCoin},
	CoinBlock:         {Name: "coin-block", Movement: moveNone, Animation: still(SpriteBlockCoin)},
	MushroomMoving:    {Name: "mushroom-moving", Movement: moveWalk, Animation: still(SpriteMushroom)},
}

// Def returns the definition of s. Unknown ids map to StateNone.
func (s StateID) Def() StateDef {
	if s < 0 || s >= stateCount {
		return states[StateNone]
	}
	return states[s]
}

func (s StateID) String() string {
	return s.Def().Name
}

// standingState returns the resting state for the player's current size.
func standingState(big bool) StateID {
	if big {
		return PlayerBigStanding
	}
	return PlayerStanding
}

func walkingState(big bool) StateID {
	if big {
		return PlayerBigWalking
	}
	return PlayerWalking
}

func walking(s StateID) bool {
	return s == PlayerWalking || s == PlayerBigWalking
}

func jumping(s StateID) bool {
	return s == PlayerJumping || s == PlayerBigJumping
}

func jumpingState(big bool) StateID {
	if big {
		return PlayerBigJumping
	}
	return PlayerJumping
}

func moveNone(*Actor, *Frame) {}

func moveWalk(a *Actor, _ *Frame) {
	a.X += a.Speed * float64(a.Dir)
}

// moveJump applies the jump impulse once, from the ground. Horizontal
// control in the air comes from the input stage.
func moveJump(a *Actor, f *Frame) {
	if !a.Grounded {
		return
	}
	a.VelY = -f.Cfg.Physics.JumpVelocity
	a.Grounded = false
	f.emit(EventJump, a)
}

func moveDead(a *Actor, _ *Frame) {
	a.Speed = 0
}

func animNone(*Actor, *Frame) {}

func still(s Sprite) func(*Actor, *Frame) {
	return func(a *Actor, _ *Frame) {
		a.Visual = Visual{Sprite: s}
	}
}

// cycle advances through n frames of sprite s, one frame every `every`
// global animation ticks.
func cycle(a *Actor, f *Frame, s Sprite, every, n int) {
	if a.Visual.Sprite != s {
		a.Visual = Visual{Sprite: s}
	}
	if every > 0 && f.Tick%uint64(every) == 0 {
		a.Visual.Frame = (a.Visual.Frame + 1) % n
	}
}

func playerWalk(s Sprite) func(*Actor, *Frame) {
	return func(a *Actor, f *Frame) {
		cycle(a, f, s, f.Cfg.Animation.PlayerWalkEvery, 3)
	}
}

func enemyWalk(s Sprite) func(*Actor, *Frame) {
	return func(a *Actor, f *Frame) {
		cycle(a, f, s, f.Cfg.Animation.EnemyWalkEvery, 2)
	}
}

// animResize alternates small and big frames while the player changes size.
func animResize(a *Actor, f *Frame) {
	cycle(a, f, SpriteResize, f.Cfg.Animation.ResizeEvery, 4)
}

func animCoin(a *Actor, f *Frame) {
	cycle(a, f, SpriteCoin, f.Cfg.Animation.CoinSpinEvery, 4)
}
