// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer/core"
	"gopkg.in/yaml.v3"
)

// YAMLLevel is the on-disk shape of a level file. Two styles may be mixed
// in one file: flat categories of rectangles (ground, bricks, goombas, ...)
// and typed entries (scenery with a type, enemies with a type and a
// direction, blocks with contents).
type YAMLLevel struct {
	ID        string  `yaml:"id"`
	Name      string  `yaml:"name"`
	Theme     string  `yaml:"theme,omitempty"`
	Next      string  `yaml:"next,omitempty"`
	Width     float64 `yaml:"width,omitempty"`
	FallLimit float64 `yaml:"fall_limit,omitempty"`
	Spawn     YAMLPos `yaml:"spawn"`

	Ground     []YAMLRect `yaml:"ground,omitempty"`
	Bricks     []YAMLRect `yaml:"bricks,omitempty"`
	Pipes      []YAMLRect `yaml:"pipes,omitempty"`
	Breakables []YAMLRect `yaml:"breakables,omitempty"`
	Mushrooms  []YAMLRect `yaml:"mushrooms,omitempty"` // blocks holding a power-up
	Goombas    []YAMLRect `yaml:"goombas,omitempty"`
	Koopas     []YAMLRect `yaml:"koopas,omitempty"`
	Mountains  []YAMLRect `yaml:"mountains,omitempty"`
	Shrubs     []YAMLRect `yaml:"shrubs,omitempty"`

	SmallClouds  []YAMLRect `yaml:"small_clouds,omitempty"`
	MediumClouds []YAMLRect `yaml:"medium_clouds,omitempty"`
	LargeClouds  []YAMLRect `yaml:"large_clouds,omitempty"`

	Flag     *YAMLRect `yaml:"flag,omitempty"`
	Flagpole *YAMLRect `yaml:"flagpole,omitempty"`
	Castle   *YAMLRect `yaml:"castle,omitempty"`

	Blocks          []YAMLBlock    `yaml:"blocks,omitempty"`
	Scenery         []YAMLObject   `yaml:"scenery,omitempty"`
	MovingPlatforms []YAMLObject   `yaml:"moving_platforms,omitempty"`
	Enemies         []YAMLEnemy    `yaml:"enemies,omitempty"`
	Coins           []YAMLRect     `yaml:"coins,omitempty"`
	PowerUps        []YAMLPowerUp  `yaml:"powerups,omitempty"`
	Exit            *YAMLExit      `yaml:"exit,omitempty"`
	Metadata        map[string]any `yaml:"metadata,omitempty"`
}

// YAMLPos is a point written as [x, y] or {x: .., y: ..}.
type YAMLPos struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// UnmarshalYAML accepts both the sequence and the mapping form.
func (p *YAMLPos) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.SequenceNode {
		var v []float64
		if err := n.Decode(&v); err != nil {
			return err
		}
		if len(v) != 2 {
			return fmt.Errorf("line %d: position needs 2 numbers, got %d", n.Line, len(v))
		}
		p.X, p.Y = v[0], v[1]
		return nil
	}
	type plain YAMLPos
	return n.Decode((*plain)(p))
}

// YAMLRect is a rectangle written as [x, y, w, h] (w and h optional) or as
// a mapping. The mapping form may carry repeat and step to describe a row
// of identical rectangles.
type YAMLRect struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	W      float64 `yaml:"w"`
	H      float64 `yaml:"h"`
	Repeat int     `yaml:"repeat,omitempty"`
	Step   float64 `yaml:"step,omitempty"`
}

// UnmarshalYAML accepts both the sequence and the mapping form.
func (r *YAMLRect) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.SequenceNode {
		var v []float64
		if err := n.Decode(&v); err != nil {
			return err
		}
		if len(v) < 2 || len(v) > 4 {
			return fmt.Errorf("line %d: rectangle needs 2 to 4 numbers, got %d", n.Line, len(v))
		}
		v = append(v, 0, 0)
		r.X, r.Y, r.W, r.H = v[0], v[1], v[2], v[3]
		return nil
	}
	type plain YAMLRect
	return n.Decode((*plain)(r))
}

// Rect returns the first rectangle of the entry.
func (r YAMLRect) Rect() core.Rect {
	return core.R(r.X, r.Y, r.W, r.H)
}

// Expand returns every rectangle the entry describes.
func (r YAMLRect) Expand() []core.Rect {
	n := max(r.Repeat, 1)
	step := r.Step
	if step == 0 {
		step = r.W
	}
	out := make([]core.Rect, n)
	for i := range out {
		out[i] = core.R(r.X+float64(i)*step, r.Y, r.W, r.H)
	}
	return out
}

// YAMLBlock is a block with contents, a coin unless stated otherwise. A
// block of type brick is breakable instead.
type YAMLBlock struct {
	YAMLRect `yaml:",inline"`
	Type     string `yaml:"type,omitempty"`
	Contents string `yaml:"contents,omitempty"`
}

// UnmarshalYAML allows a bare rectangle for a coin block.
func (b *YAMLBlock) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.SequenceNode {
		return b.YAMLRect.UnmarshalYAML(n)
	}
	var m struct {
		X        float64 `yaml:"x"`
		Y        float64 `yaml:"y"`
		W        float64 `yaml:"w"`
		H        float64 `yaml:"h"`
		Repeat   int     `yaml:"repeat"`
		Step     float64 `yaml:"step"`
		Type     string  `yaml:"type"`
		Contents string  `yaml:"contents"`
	}
	if err := n.Decode(&m); err != nil {
		return err
	}
	b.YAMLRect = YAMLRect{X: m.X, Y: m.Y, W: m.W, H: m.H, Repeat: m.Repeat, Step: m.Step}
	b.Type, b.Contents = m.Type, m.Contents
	return nil
}

// YAMLObject is a typed scenery entry.
type YAMLObject struct {
	Type       string  `yaml:"type"`
	X          float64 `yaml:"x"`
	Y          float64 `yaml:"y"`
	W          float64 `yaml:"width,omitempty"`
	H          float64 `yaml:"height,omitempty"`
	Steps      int     `yaml:"steps,omitempty"`
	Direction  string  `yaml:"direction,omitempty"`
	StepWidth  float64 `yaml:"stepWidth,omitempty"`
	StepHeight float64 `yaml:"stepHeight,omitempty"`
	PathLength float64 `yaml:"pathLength,omitempty"`
	Speed      float64 `yaml:"speed,omitempty"`
	Variant    string  `yaml:"variant,omitempty"`
}

// YAMLEnemy places an enemy. Direction is left, right, -1 or 1.
type YAMLEnemy struct {
	Type      string  `yaml:"type"`
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	W         float64 `yaml:"width,omitempty"`
	H         float64 `yaml:"height,omitempty"`
	Direction string  `yaml:"direction,omitempty"`
	Variant   string  `yaml:"variant,omitempty"`
}

// YAMLPowerUp places a free power-up.
type YAMLPowerUp struct {
	Type string  `yaml:"type"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

// YAMLExit describes how the level ends.
type YAMLExit struct {
	Type string  `yaml:"type"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	W    float64 `yaml:"width,omitempty"`
	H    float64 `yaml:"height,omitempty"`
	Next string  `yaml:"next,omitempty"`
}

// ParseYAML parses a YAML level file into a core level description.
// Entries of unknown enemy or power-up types are skipped.
func ParseYAML(data []byte) (core.Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return core.Level{}, fmt.Errorf("formats: yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return core.Level{}, fmt.Errorf("formats: level has no id")
	}

	l := core.Level{
		ID:         yl.ID,
		Name:       yl.Name,
		Theme:      yl.Theme,
		Next:       yl.Next,
		Width:      yl.Width,
		FallLimit:  yl.FallLimit,
		Spawn:      core.Point{X: yl.Spawn.X, Y: yl.Spawn.Y},
		Ground:     expandAll(yl.Ground),
		Bricks:     expandAll(yl.Bricks),
		Pipes:      expandAll(yl.Pipes),
		Breakables: expandAll(yl.Breakables),
		Mountains:  expandAll(yl.Mountains),
		Shrubs:     expandAll(yl.Shrubs),
		Coins:      expandAll(yl.Coins),
	}
	if l.Name == "" {
		l.Name = l.ID
	}

	for _, c := range []struct {
		rects   []YAMLRect
		variant string
	}{
		{yl.SmallClouds, "small"},
		{yl.MediumClouds, "medium"},
		{yl.LargeClouds, "large"},
	} {
		for _, r := range expandAll(c.rects) {
			l.Clouds = append(l.Clouds, core.Decoration{Rect: r, Variant: c.variant})
		}
	}

	for _, r := range expandAll(yl.Goombas) {
		l.Enemies = append(l.Enemies, core.EnemyDef{Rect: r, Kind: core.KindGoomba, Dir: core.Left})
	}
	for _, r := range expandAll(yl.Koopas) {
		l.Enemies = append(l.Enemies, core.EnemyDef{Rect: r, Kind: core.KindKoopa, Dir: core.Left})
	}
	for _, e := range yl.Enemies {
		def, ok := enemy(e)
		if ok {
			l.Enemies = append(l.Enemies, def)
		}
	}

	for _, b := range yl.Blocks {
		c := contents(b.Contents)
		if b.Contents == "" {
			c = core.ContentsCoin
		}
		for _, r := range b.Expand() {
			l.Blocks = append(l.Blocks, core.BlockDef{
				Rect:      r,
				Contents:  c,
				Breakable: b.Type == "brick",
			})
		}
	}
	for _, r := range expandAll(yl.Mushrooms) {
		l.Blocks = append(l.Blocks, core.BlockDef{Rect: r, Contents: core.ContentsPowerUp})
	}

	for _, p := range yl.PowerUps {
		// Fire flowers are not part of the game; only mushrooms spawn.
		if p.Type != "" && p.Type != "mushroom" {
			continue
		}
		l.PowerUps = append(l.PowerUps, core.R(p.X, p.Y, 0, 0))
	}

	for _, o := range yl.Scenery {
		l.Objects = append(l.Objects, object(o))
	}
	for _, o := range yl.MovingPlatforms {
		l.Platforms = append(l.Platforms, core.PlatformDef{
			Rect:       core.R(o.X, o.Y, o.W, o.H),
			PathLength: o.PathLength,
			Speed:      o.Speed,
		})
	}

	l.Flag = optional(yl.Flag)
	l.Flagpole = optional(yl.Flagpole)
	l.Castle = optional(yl.Castle)
	if yl.Exit != nil {
		l.Exit = &core.Exit{
			Type: yl.Exit.Type,
			X:    yl.Exit.X,
			Y:    yl.Exit.Y,
			W:    yl.Exit.W,
			H:    yl.Exit.H,
			Next: yl.Exit.Next,
		}
	}
	return l, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}

func expandAll(rs []YAMLRect) []core.Rect {
	var out []core.Rect
	for _, r := range rs {
		out = append(out, r.Expand()...)
	}
	return out
}

func optional(r *YAMLRect) *core.Rect {
	if r == nil {
		return nil
	}
	v := r.Rect()
	return &v
}

func object(o YAMLObject) core.Object {
	return core.Object{
		Type:       o.Type,
		Rect:       core.R(o.X, o.Y, o.W, o.H),
		Steps:      o.Steps,
		Direction:  o.Direction,
		StepWidth:  o.StepWidth,
		StepHeight: o.StepHeight,
		PathLength: o.PathLength,
		Speed:      o.Speed,
		Variant:    o.Variant,
	}
}

func enemy(e YAMLEnemy) (core.EnemyDef, bool) {
	def := core.EnemyDef{
		Rect: core.R(e.X, e.Y, e.W, e.H),
		Dir:  direction(e.Direction),
	}
	switch strings.ToLower(e.Type) {
	case "goomba":
		def.Kind = core.KindGoomba
	case "koopa":
		def.Kind = core.KindKoopa
	default:
		return core.EnemyDef{}, false
	}
	return def, true
}

func direction(s string) core.Dir {
	switch strings.ToLower(s) {
	case "left", "-1":
		return core.Left
	case "right", "1":
		return core.Right
	}
	return 0
}

func contents(s string) core.Contents {
	switch strings.ToLower(s) {
	case "coin":
		return core.ContentsCoin
	case "powerup", "mushroom":
		return core.ContentsPowerUp
	}
	return core.ContentsEmpty
}
