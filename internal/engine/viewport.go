package engine

import "github.com/inamate/geokernel/internal/geom"

// ViewportAwareDelta returns the pan that would center rect in viewport, or
// false when rect already overlaps or touches the viewport and no pan is
// needed. Callers apply the delta to their own scroll state.
func ViewportAwareDelta(viewport, rect geom.Rect) (geom.Vec2, bool) {
	if viewport.Intersects(rect) {
		return geom.Vec2{}, false
	}
	return viewport.Center().Sub(rect.Center()), true
}
