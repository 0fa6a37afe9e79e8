package geom

import (
	"fmt"
	"math"
)

// Vec2 is a 2D point or vector.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Rect represents an axis-aligned rectangle in world space.
// Width and Height are never negative; a zero-area rect is valid.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RectFromBounds builds a rect from its min and max corners.
func RectFromBounds(minX, minY, maxX, maxY float64) Rect {
	return Rect{
		X:      minX,
		Y:      minY,
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}

// Valid reports whether the rect has non-negative extents.
func (r Rect) Valid() bool {
	return r.Width >= 0 && r.Height >= 0
}

// Validate returns ErrInvalidArgument for negative or non-finite extents and
// non-finite origins.
func (r Rect) Validate() error {
	for _, v := range [4]float64{r.X, r.Y, r.Width, r.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: rect %+v is not finite", ErrInvalidArgument, r)
		}
	}
	if !r.Valid() {
		return fmt.Errorf("%w: rect %+v has negative size", ErrInvalidArgument, r)
	}
	return nil
}

// IsEmpty checks if the rect has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Max returns the far corner.
func (r Rect) Max() Vec2 {
	return Vec2{r.X + r.Width, r.Y + r.Height}
}

// Center returns the center point of the rect.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// XRange returns the horizontal extent.
func (r Rect) XRange() Range { return Range{Min: r.X, Max: r.X + r.Width} }

// YRange returns the vertical extent.
func (r Rect) YRange() Range { return Range{Min: r.Y, Max: r.Y + r.Height} }

// Contains checks if a point is inside the rect (edges included).
func (r Rect) Contains(p Vec2) bool {
	return r.XRange().Contains(p.X) && r.YRange().Contains(p.Y)
}

// ContainsRect reports whether o lies fully inside r, edges included.
func (r Rect) ContainsRect(o Rect) bool {
	return r.XRange().ContainsRange(o.XRange()) && r.YRange().ContainsRange(o.YRange())
}

// Intersects reports whether the rects overlap or touch.
func (r Rect) Intersects(o Rect) bool {
	return r.XRange().Overlaps(o.XRange()) && r.YRange().Overlaps(o.YRange())
}

// Union returns the smallest rect containing both rects. Zero-area rects
// still contribute their position.
func (r Rect) Union(other Rect) Rect {
	return RectFromBounds(
		min(r.X, other.X),
		min(r.Y, other.Y),
		max(r.X+r.Width, other.X+other.Width),
		max(r.Y+r.Height, other.Y+other.Height),
	)
}

// Translate returns the rect moved by d.
func (r Rect) Translate(d Vec2) Rect {
	return Rect{X: r.X + d.X, Y: r.Y + d.Y, Width: r.Width, Height: r.Height}
}

// Range is a closed interval [Min, Max].
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// NewRange validates min <= max.
func NewRange(lo, hi float64) (Range, error) {
	if lo > hi {
		return Range{}, fmt.Errorf("%w: range min %g > max %g", ErrInvalidArgument, lo, hi)
	}
	return Range{Min: lo, Max: hi}, nil
}

// Length returns Max - Min.
func (r Range) Length() float64 { return r.Max - r.Min }

// Contains reports whether v is in the closed interval.
func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// ContainsRange reports whether o is inside r, bounds included.
func (r Range) ContainsRange(o Range) bool { return o.Min >= r.Min && o.Max <= r.Max }

// Overlaps reports whether the intervals share at least one point.
func (r Range) Overlaps(o Range) bool { return r.Min <= o.Max && o.Min <= r.Max }
