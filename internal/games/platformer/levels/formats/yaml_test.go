package formats

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer/core"
)

func TestParseRectForms(t *testing.T) {
	l, err := ParseYAML([]byte(`
id: t
spawn: {x: 5, y: 6}
ground:
  - [0, 192, 16, 16]
  - [32, 192]
  - {x: 64, y: 192, w: 16, h: 16, repeat: 3}
  - {x: 200, y: 100, w: 8, h: 8, repeat: 2, step: 40}
`))
	if err != nil {
		t.Fatalf("ParseYAML failed: %v", err)
	}
	want := []core.Rect{
		core.R(0, 192, 16, 16),
		core.R(32, 192, 0, 0),
		core.R(64, 192, 16, 16),
		core.R(80, 192, 16, 16),
		core.R(96, 192, 16, 16),
		core.R(200, 100, 8, 8),
		core.R(240, 100, 8, 8),
	}
	if len(l.Ground) != len(want) {
		t.Fatalf("expected %d rects, got %d", len(want), len(l.Ground))
	}
	for i := range want {
		if l.Ground[i] != want[i] {
			t.Errorf("rect %d: got %+v, want %+v", i, l.Ground[i], want[i])
		}
	}
	if l.Spawn != (core.Point{X: 5, Y: 6}) {
		t.Errorf("spawn %+v", l.Spawn)
	}
	if l.Name != "t" {
		t.Errorf("name should default to id, got %q", l.Name)
	}
}

func TestParseTypedEntries(t *testing.T) {
	l, err := ParseYAML([]byte(`
id: typed
spawn: [1, 2]
blocks:
  - [10, 10]
  - {type: question, x: 20, y: 10, contents: powerup}
  - {type: question, x: 30, y: 10, contents: empty}
  - {type: brick, x: 40, y: 10}
mushrooms:
  - [50, 10]
enemies:
  - {type: goomba, x: 1, y: 2, direction: left}
  - {type: koopa, x: 3, y: 4, direction: "1"}
  - {type: hammerbro, x: 5, y: 6}
scenery:
  - {type: stair, x: 0, y: 208, steps: 3, direction: left, stepWidth: 16, stepHeight: 16}
moving_platforms:
  - {x: 100, y: 80, width: 48, height: 8, pathLength: 96, speed: 2}
exit: {type: pipe, x: 300, y: 144, next: "2-1"}
`))
	if err != nil {
		t.Fatalf("ParseYAML failed: %v", err)
	}

	wantContents := []core.Contents{core.ContentsCoin, core.ContentsPowerUp, core.ContentsEmpty, core.ContentsCoin, core.ContentsPowerUp}
	if len(l.Blocks) != len(wantContents) {
		t.Fatalf("expected %d blocks, got %d", len(wantContents), len(l.Blocks))
	}
	for i, c := range wantContents {
		if l.Blocks[i].Contents != c {
			t.Errorf("block %d contents %s, want %s", i, l.Blocks[i].Contents, c)
		}
	}
	if !l.Blocks[3].Breakable {
		t.Error("brick block should be breakable")
	}

	if len(l.Enemies) != 2 {
		t.Fatalf("unknown enemy types should be skipped, got %d", len(l.Enemies))
	}
	if l.Enemies[0].Dir != core.Left || l.Enemies[1].Dir != core.Right || l.Enemies[1].Kind != core.KindKoopa {
		t.Errorf("enemies %+v", l.Enemies)
	}
	if len(l.Objects) != 1 || l.Objects[0].Steps != 3 || l.Objects[0].Direction != "left" {
		t.Errorf("objects %+v", l.Objects)
	}
	if len(l.Platforms) != 1 || l.Platforms[0].PathLength != 96 || l.Platforms[0].Speed != 2 {
		t.Errorf("platforms %+v", l.Platforms)
	}
	if l.Exit == nil || l.NextID() != "2-1" {
		t.Errorf("exit %+v", l.Exit)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"no id", "name: x\n", "no id"},
		{"bad rect", "id: x\nground: [[1, 2, 3, 4, 5]]\n", "rectangle needs"},
		{"bad spawn", "id: x\nspawn: [1]\n", "position needs"},
		{"not yaml", "id: [\n", "yaml unmarshal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
