package geom

import (
	"fmt"
	"math"
)

// Quantize rounds value to the nearest multiple of step, halves away from zero.
// step must be positive.
func Quantize(value, step float64) (float64, error) {
	if !(step > 0) || math.IsInf(step, 1) {
		return 0, fmt.Errorf("%w: quantize step %g", ErrInvalidArgument, step)
	}
	return math.Round(value/step) * step, nil
}

// QuantizeVec2 snaps both coordinates to the grid.
func QuantizeVec2(v Vec2, step float64) (Vec2, error) {
	x, err := Quantize(v.X, step)
	if err != nil {
		return Vec2{}, err
	}
	y, err := Quantize(v.Y, step)
	if err != nil {
		return Vec2{}, err
	}
	return Vec2{x, y}, nil
}

// QuantizeRect snaps the origin and the far corner of r to the grid.
func QuantizeRect(r Rect, step float64) (Rect, error) {
	lo, err := QuantizeVec2(Vec2{r.X, r.Y}, step)
	if err != nil {
		return Rect{}, err
	}
	hi, err := QuantizeVec2(r.Max(), step)
	if err != nil {
		return Rect{}, err
	}
	return RectFromBounds(lo.X, lo.Y, hi.X, hi.Y), nil
}
