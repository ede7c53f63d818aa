package core

import (
	"errors"
	"fmt"
)

// ErrNoLevels is returned when a campaign is built from an empty set.
var ErrNoLevels = errors.New("core: no levels")

// Level is a read-only, declarative level description. Any category may be
// empty. Zero widths and heights are filled with the tile size by the
// builder.
type Level struct {
	ID    string
	Name  string
	Theme string
	Next  string // id of the following level; empty ends the campaign

	Width     float64 // world width for camera clamping; 0 uses the default
	FallLimit float64 // y beyond which the player dies; 0 uses the default
	Spawn     Point

	Ground     []Rect
	Bricks     []Rect
	Pipes      []Rect
	Breakables []Rect
	Blocks     []BlockDef
	Platforms  []PlatformDef
	Clouds     []Decoration
	Mountains  []Rect
	Shrubs     []Rect
	Enemies    []EnemyDef
	Coins      []Rect
	PowerUps   []Rect
	Flag       *Rect
	Flagpole   *Rect
	Castle     *Rect

	// Objects is the typed form: each carries a type discriminator and
	// its own fields. Unknown types are ignored by the builder.
	Objects []Object

	Exit *Exit
}

// BlockDef is a block with hidden contents.
type BlockDef struct {
	Rect
	Contents  Contents
	Breakable bool // brick-type block: breakable instead of holding contents
}

// PlatformDef is a horizontally moving platform.
type PlatformDef struct {
	Rect
	PathLength float64
	Speed      float64
}

// Decoration is background scenery with a size variant.
type Decoration struct {
	Rect
	Variant string
}

// EnemyDef places an enemy. A zero Dir means the kind's default.
type EnemyDef struct {
	Rect
	Kind Kind
	Dir  Dir
}

// Object is a typed scenery entry.
type Object struct {
	Type string
	Rect

	Steps      int     // stair
	Direction  string  // stair: "right" ascends to the right, "left" to the left
	StepWidth  float64 // stair
	StepHeight float64 // stair
	PathLength float64 // movingPlatform
	Speed      float64 // movingPlatform
	Variant    string
}

// Exit describes how a level ends.
type Exit struct {
	Type string // "flag", "flagpole" or "pipe"
	X, Y float64
	W, H float64
	Next string
}

// NextID returns the id of the level that follows.
func (l Level) NextID() string {
	if l.Next != "" {
		return l.Next
	}
	if l.Exit != nil {
		return l.Exit.Next
	}
	return ""
}

// Campaign is an ordered set of levels linked by their next ids.
type Campaign struct {
	levels []Level
	index  map[string]int
}

// NewCampaign builds a campaign. The first level is where new sessions
// start. Duplicate ids are rejected.
func NewCampaign(levels []Level) (*Campaign, error) {
	if len(levels) == 0 {
		return nil, ErrNoLevels
	}
	c := &Campaign{
		levels: append([]Level(nil), levels...),
		index:  make(map[string]int, len(levels)),
	}
	for i, l := range c.levels {
		if _, dup := c.index[l.ID]; dup {
			return nil, fmt.Errorf("core: duplicate level id %q", l.ID)
		}
		c.index[l.ID] = i
	}
	return c, nil
}

// First returns the starting level.
func (c *Campaign) First() Level {
	return c.levels[0]
}

// Get returns the level with the given id.
func (c *Campaign) Get(id string) (Level, bool) {
	i, ok := c.index[id]
	if !ok {
		return Level{}, false
	}
	return c.levels[i], true
}

// After returns the level following cur. It reports false when cur is the
// last level or names a level the campaign does not have.
func (c *Campaign) After(cur Level) (Level, bool) {
	next := cur.NextID()
	if next == "" {
		return Level{}, false
	}
	return c.Get(next)
}

// IDs returns the level ids in campaign order.
func (c *Campaign) IDs() []string {
	ids := make([]string, len(c.levels))
	for i, l := range c.levels {
		ids[i] = l.ID
	}
	return ids
}

// Levels returns a copy of the levels in campaign order.
func (c *Campaign) Levels() []Level {
	return append([]Level(nil), c.levels...)
}

// Len returns the number of levels.
func (c *Campaign) Len() int {
	return len(c.levels)
}
