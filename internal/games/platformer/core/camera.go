package core

// Viewport is the visible window into world space.
type Viewport struct {
	X, Y float64
	W, H float64
}

// Follow scrolls horizontally so the target stays out of the dead zones.
// The margin is W/marginDivisor; scrolling starts once the target's center
// comes within two margins of either edge, and the origin is clamped to
// [0, worldWidth-W].
func (v *Viewport) Follow(target Rect, worldWidth, marginDivisor float64) {
	if marginDivisor <= 0 {
		marginDivisor = 6
	}
	margin := v.W / marginDivisor
	center := target.CenterX()

	switch {
	case center < v.X+2*margin:
		v.X = max(center-margin, 0)
	case center > v.X+v.W-2*margin:
		v.X = min(center+margin-v.W, max(worldWidth-v.W, 0))
	}
}

// Visible reports whether r intersects the viewport. Renderers skip
// anything fully outside.
func (v Viewport) Visible(r Rect) bool {
	return r.Right() >= v.X && r.X <= v.X+v.W && r.Bottom() >= v.Y && r.Y <= v.Y+v.H
}
