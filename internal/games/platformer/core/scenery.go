package core

// SceneryKind classifies static world geometry.
type SceneryKind int

const (
	SceneryGround SceneryKind = iota
	SceneryBrick
	SceneryPipe
	SceneryBlock
	SceneryBreakable
	SceneryPlatform
	SceneryCloud
	SceneryMountain
	SceneryShrub
	SceneryFlag
	SceneryFlagpole
	SceneryCastle
	SceneryExit
)

var sceneryNames = [...]string{
	SceneryGround:    "ground",
	SceneryBrick:     "brick",
	SceneryPipe:      "pipe",
	SceneryBlock:     "block",
	SceneryBreakable: "breakable",
	SceneryPlatform:  "platform",
	SceneryCloud:     "cloud",
	SceneryMountain:  "mountain",
	SceneryShrub:     "shrub",
	SceneryFlag:      "flag",
	SceneryFlagpole:  "flagpole",
	SceneryCastle:    "castle",
	SceneryExit:      "exit",
}

func (k SceneryKind) String() string {
	if k < 0 || int(k) >= len(sceneryNames) {
		return "unknown"
	}
	return sceneryNames[k]
}

// Decorative scenery is drawn but never collides.
func (k SceneryKind) Decorative() bool {
	return k == SceneryCloud || k == SceneryMountain || k == SceneryShrub
}

// Finish scenery ends the level when the player touches it.
func (k SceneryKind) Finish() bool {
	return k == SceneryFlag || k == SceneryFlagpole || k == SceneryCastle || k == SceneryExit
}

// clearance is the extra gap left when pushing an actor off the left face.
func (k SceneryKind) clearance() float64 {
	if k == SceneryPipe || k == SceneryBrick {
		return 1
	}
	return 0
}

// Contents is what a block releases when struck from below.
type Contents int

const (
	ContentsEmpty Contents = iota
	ContentsCoin
	ContentsPowerUp
)

func (c Contents) String() string {
	switch c {
	case ContentsCoin:
		return "coin"
	case ContentsPowerUp:
		return "powerup"
	default:
		return "empty"
	}
}

// Scenery is a static world object. Moving platforms are scenery too: they
// follow a fixed path and carry actors standing on them.
type Scenery struct {
	Rect
	Kind     SceneryKind
	Contents Contents
	Used     bool   // block has been emptied and shows its used image
	Variant  string // render hint, e.g. cloud size

	Speed      float64 // moving platforms
	PathLength float64
	Dir        Dir
	travelled  float64
}

// advance moves a platform one tick along its path and returns the
// horizontal displacement.
func (s *Scenery) advance() float64 {
	if s.Kind != SceneryPlatform || s.Speed == 0 {
		return 0
	}
	dx := s.Speed * float64(s.Dir)
	s.X += dx
	s.travelled += s.Speed
	if s.travelled >= s.PathLength {
		s.Dir = s.Dir.Reverse()
		s.travelled = 0
	}
	return dx
}
