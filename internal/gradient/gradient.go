// Package gradient maps between the three-handle gradient editor and the
// affine transform stored on a gradient paint.
//
// Handles live in a normalized [0,1]x[0,1] space: A is the origin, B the end
// of the primary axis and C the end of the secondary axis. Each kind has a base
// layout that corresponds to the identity transform.
package gradient

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/inamate/geokernel/internal/geom"
)

var ErrUnknownKind = errors.New("unknown gradient kind")

// Kind selects the base handle layout.
type Kind string

const (
	Linear Kind = "linear"
	Radial Kind = "radial"
)

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case Linear, Radial:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// ControlPoints are the three gradient handles.
type ControlPoints struct {
	A geom.Vec2 `json:"a"`
	B geom.Vec2 `json:"b"`
	C geom.Vec2 `json:"c"`
}

// BaseControlPoints returns the untransformed handle layout for kind.
// Linear runs left to right through the vertical middle; radial is centered
// with both radii reaching the unit square's edges.
func BaseControlPoints(kind Kind) (ControlPoints, error) {
	switch kind {
	case Linear:
		return ControlPoints{
			A: geom.Vec2{X: 0, Y: 0.5},
			B: geom.Vec2{X: 1, Y: 0.5},
			C: geom.Vec2{X: 0, Y: 1},
		}, nil
	case Radial:
		return ControlPoints{
			A: geom.Vec2{X: 0.5, Y: 0.5},
			B: geom.Vec2{X: 1, Y: 0.5},
			C: geom.Vec2{X: 0.5, Y: 1},
		}, nil
	default:
		return ControlPoints{}, fmt.Errorf("%w: %q", ErrUnknownKind, string(kind))
	}
}

// homogeneous lays the points out as the columns of a 3x3 matrix with a
// bottom row of ones.
func (p ControlPoints) homogeneous() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		p.A.X, p.B.X, p.C.X,
		p.A.Y, p.B.Y, p.C.Y,
		1, 1, 1,
	})
}

// TransformFromControlPoints returns the affine transform that carries the
// base handles of kind onto points. Its linear part maps the base axes
// (B-A, C-A) onto the given axes, and its translation places base A on the
// given A. Collinear handles produce a singular transform, not an error.
func TransformFromControlPoints(points ControlPoints, kind Kind) (geom.Transform, error) {
	base, err := BaseControlPoints(kind)
	if err != nil {
		return geom.Transform{}, err
	}

	// T * P_base = P_given  =>  T = P_given * P_base^-1
	var inv mat.Dense
	if err := inv.Inverse(base.homogeneous()); err != nil {
		return geom.Transform{}, fmt.Errorf("invert %s base layout: %w", kind, err)
	}
	var t mat.Dense
	t.Mul(points.homogeneous(), &inv)

	return geom.Transform{
		t.At(0, 0), t.At(0, 1), t.At(0, 2),
		t.At(1, 0), t.At(1, 1), t.At(1, 2),
	}, nil
}

// ControlPointsFromTransform places the handles of kind for a gradient
// carrying transform t.
func ControlPointsFromTransform(t geom.Transform, kind Kind) (ControlPoints, error) {
	base, err := BaseControlPoints(kind)
	if err != nil {
		return ControlPoints{}, err
	}
	return ControlPoints{
		A: t.Apply(base.A),
		B: t.Apply(base.B),
		C: t.Apply(base.C),
	}, nil
}
