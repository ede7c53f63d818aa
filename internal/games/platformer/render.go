package platformer

import (
	"fmt"
	"math"

	platformcore "github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/core"
)

// glyph is how one sprite or scenery kind is drawn.
type glyph struct {
	r rune
	c platformcore.Color
}

var sceneryGlyphs = map[core.SceneryKind]glyph{
	core.SceneryGround:    {'█', platformcore.ColorBrown},
	core.SceneryBrick:     {'▓', platformcore.ColorOrange},
	core.SceneryPipe:      {'█', platformcore.ColorGreen},
	core.SceneryBreakable: {'▒', platformcore.ColorOrange},
	core.SceneryPlatform:  {'═', platformcore.ColorWhite},
	core.SceneryCloud:     {'░', platformcore.ColorBrightWhite},
	core.SceneryMountain:  {'▲', platformcore.ColorGreen},
	core.SceneryShrub:     {'"', platformcore.ColorBrightGreen},
	core.SceneryFlag:      {'▶', platformcore.ColorBrightGreen},
	core.SceneryFlagpole:  {'│', platformcore.ColorWhite},
	core.SceneryCastle:    {'▓', platformcore.ColorGray},
}

var spriteGlyphs = map[core.Sprite]glyph{
	core.SpriteStand:      {'@', platformcore.ColorRed},
	core.SpriteWalk:       {'@', platformcore.ColorRed},
	core.SpriteJump:       {'^', platformcore.ColorRed},
	core.SpriteBigStand:   {'@', platformcore.ColorBrightRed},
	core.SpriteBigWalk:    {'@', platformcore.ColorBrightRed},
	core.SpriteBigJump:    {'^', platformcore.ColorBrightRed},
	core.SpriteResize:     {'*', platformcore.ColorBrightRed},
	core.SpriteDead:       {'x', platformcore.ColorRed},
	core.SpriteGoomba:     {'g', platformcore.ColorBrown},
	core.SpriteGoombaFlat: {'_', platformcore.ColorBrown},
	core.SpriteKoopa:      {'k', platformcore.ColorGreen},
	core.SpriteShell:      {'o', platformcore.ColorGreen},
	core.SpriteCoin:       {'$', platformcore.ColorYellow},
	core.SpriteBlockCoin:  {'$', platformcore.ColorBrightYellow},
	core.SpriteMushroom:   {'M', platformcore.ColorBrightRed},
}

// animFrames are indexed by the actor's animation frame.
var animFrames = map[core.Sprite][]rune{
	core.SpriteWalk:    {'@', 'a', '@'},
	core.SpriteBigWalk: {'@', 'A', '@'},
	core.SpriteResize:  {'*', '@', '*', '@'},
	core.SpriteGoomba:  {'g', 'G'},
	core.SpriteKoopa:   {'k', 'K'},
	core.SpriteCoin:    {'$', '|', '$', '|'},
}

// projection maps world units onto the play area below the HUD.
type projection struct {
	view   core.Viewport
	ux, uy float64 // world units per cell
	top    int     // first screen row of the play area
	w, h   int     // play area size in cells
}

func newProjection(v core.Viewport, screenW, screenH int) projection {
	p := projection{view: v, top: hudHeight, w: screenW, h: screenH - hudHeight}
	p.ux = v.W / float64(max(p.w, 1))
	p.uy = v.H / float64(max(p.h, 1))
	return p
}

// cells returns the screen rectangle covering r. Every visible object
// covers at least one cell.
func (p projection) cells(r core.Rect) platformcore.Rect {
	x0 := int(math.Floor((r.X - p.view.X) / p.ux))
	y0 := int(math.Floor((r.Y - p.view.Y) / p.uy))
	x1 := max(int(math.Ceil((r.Right()-p.view.X)/p.ux)), x0+1)
	y1 := max(int(math.Ceil((r.Bottom()-p.view.Y)/p.uy)), y0+1)
	return platformcore.NewRect(x0, y0+p.top, x1-x0, y1-y0)
}

func (p projection) fill(dst *platformcore.Screen, r core.Rect, g glyph) {
	if !p.view.Visible(r) {
		return
	}
	c := p.cells(r).Intersect(platformcore.NewRect(0, p.top, p.w, p.h))
	for y := c.Y; y < c.Bottom(); y++ {
		for x := c.X; x < c.Right(); x++ {
			dst.SetColored(x, y, g.r, g.c)
		}
	}
}

// Render draws the visible part of the world and the HUD.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need at least %dx%d", minScreenW, minScreenH))
		return
	}
	if g.world == nil {
		g.renderOverlay(dst, "No levels found", "Check the levels directory")
		return
	}

	g.renderHUD(dst)
	p := newProjection(g.world.View, dst.Width(), dst.Height())
	g.renderScenery(dst, p)
	g.renderActors(dst, p)

	switch {
	case g.won:
		g.renderOverlay(dst, "You Win!", fmt.Sprintf("Final score %d - press R to play again", g.finalScore))
	case g.gameOver:
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("Final score %d - press R to restart", g.finalScore))
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	case g.world.Finishing:
		g.renderBanner(dst, "Course clear!")
	}
}

func (g *Game) renderHUD(dst *platformcore.Screen) {
	w := g.world
	lvl := w.Level()
	hud := fmt.Sprintf(" %s  %s | Score %06d | Coins %02d | Lives %d", lvl.ID, lvl.Name, w.Ledger.Points, w.Ledger.Coins, w.Ledger.Lives)
	dst.DrawTextColored(0, 0, hud, platformcore.ColorCyan)
	if w.NearExit() {
		dst.DrawTextColored(len([]rune(hud))+1, 0, "| goal ▶", platformcore.ColorBrightGreen)
	}
	for x := range dst.Width() {
		dst.SetColored(x, 1, '─', platformcore.ColorGray)
	}
}

// renderScenery draws decorations first so solid scenery covers them.
func (g *Game) renderScenery(dst *platformcore.Screen, p projection) {
	st := g.world.Stage
	for _, decorative := range []bool{true, false} {
		st.Scenery.Each(func(_ core.Handle, sc *core.Scenery) {
			if sc.Kind.Decorative() != decorative {
				return
			}
			gl, ok := sceneryGlyphs[sc.Kind]
			if sc.Kind == core.SceneryBlock {
				gl, ok = glyph{'?', platformcore.ColorBrightYellow}, true
				if sc.Used {
					gl = glyph{'■', platformcore.ColorBrown}
				}
			}
			if !ok {
				return
			}
			p.fill(dst, sc.Rect, gl)
		})
	}
}

func (g *Game) renderActors(dst *platformcore.Screen, p projection) {
	st := g.world.Stage
	draw := func(_ core.Handle, a *core.Actor) {
		p.fill(dst, a.Rect, actorGlyph(a))
	}
	st.Coins.Each(draw)
	st.PowerUps.Each(draw)
	st.Enemies.Each(draw)

	pl := &g.world.Player
	// Blink while invulnerable.
	if pl.Invulnerable && g.world.Tick/4%2 == 1 {
		return
	}
	draw(core.NoHandle, pl)
}

func actorGlyph(a *core.Actor) glyph {
	gl, ok := spriteGlyphs[a.Visual.Sprite]
	if !ok {
		return glyph{'?', platformcore.ColorWhite}
	}
	if frames, ok := animFrames[a.Visual.Sprite]; ok {
		gl.r = frames[a.Visual.Frame%len(frames)]
	}
	return gl
}

// renderBanner draws a one-line message under the HUD.
func (g *Game) renderBanner(dst *platformcore.Screen, msg string) {
	x := (dst.Width() - len([]rune(msg))) / 2
	dst.DrawTextColored(x, hudHeight, msg, platformcore.ColorBrightYellow)
}

// renderOverlay draws a centered box with two lines of text.
func (g *Game) renderOverlay(dst *platformcore.Screen, line1, line2 string) {
	boxW := max(len([]rune(line1)), len([]rune(line2))) + 4
	boxH := 5
	box := platformcore.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', platformcore.ColorDefault)
	dst.DrawBox(box)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
