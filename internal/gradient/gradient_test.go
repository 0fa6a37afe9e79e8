package gradient

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/geokernel/internal/geom"
)

const tol = 1e-9

func translate(p ControlPoints, d geom.Vec2) ControlPoints {
	return ControlPoints{A: p.A.Add(d), B: p.B.Add(d), C: p.C.Add(d)}
}

func TestBaseControlPointsRoundTrip(t *testing.T) {
	for _, kind := range []Kind{Linear, Radial} {
		t.Run(string(kind), func(t *testing.T) {
			base, err := BaseControlPoints(kind)
			require.NoError(t, err)

			got, err := TransformFromControlPoints(base, kind)
			require.NoError(t, err)
			assert.True(t, got.ApproxEqual(geom.Identity(), tol), "got %v", got)
		})
	}
}

func TestTranslatedControlPoints(t *testing.T) {
	for _, kind := range []Kind{Linear, Radial} {
		t.Run(string(kind), func(t *testing.T) {
			base, err := BaseControlPoints(kind)
			require.NoError(t, err)

			got, err := TransformFromControlPoints(translate(base, geom.Vec2{X: 0.2, Y: 0.3}), kind)
			require.NoError(t, err)

			assert.InDelta(t, 0.2, got[2], tol)
			assert.InDelta(t, 0.3, got[5], tol)
			assert.InDelta(t, 1, got[0], tol)
			assert.InDelta(t, 0, got[1], tol)
			assert.InDelta(t, 0, got[3], tol)
			assert.InDelta(t, 1, got[4], tol)
		})
	}
}

func TestRotatedPrimaryAxis(t *testing.T) {
	// Rotate the radial handles a quarter turn about the center: B moves to
	// where the secondary axis was, C to the opposite side of the primary.
	points := ControlPoints{
		A: geom.Vec2{X: 0.5, Y: 0.5},
		B: geom.Vec2{X: 0.5, Y: 1},
		C: geom.Vec2{X: 0, Y: 0.5},
	}
	got, err := TransformFromControlPoints(points, Radial)
	require.NoError(t, err)

	rot := geom.Rotate(math.Pi / 2)
	assert.InDelta(t, rot[0], got[0], tol)
	assert.InDelta(t, rot[1], got[1], tol)
	assert.InDelta(t, rot[3], got[3], tol)
	assert.InDelta(t, rot[4], got[4], tol)
	assert.InDelta(t, 1, got.Determinant(), tol)

	// The center is fixed, so the translation only compensates the rotation
	// about the origin.
	center := got.Apply(geom.Vec2{X: 0.5, Y: 0.5})
	assert.InDelta(t, 0.5, center.X, tol)
	assert.InDelta(t, 0.5, center.Y, tol)
}

func TestControlPointsFromTransformRoundTrip(t *testing.T) {
	m := geom.Translate(0.1, -0.2).Multiply(geom.RotateDegrees(25)).Multiply(geom.Scale(1.5, 0.75))
	for _, kind := range []Kind{Linear, Radial} {
		t.Run(string(kind), func(t *testing.T) {
			points, err := ControlPointsFromTransform(m, kind)
			require.NoError(t, err)

			got, err := TransformFromControlPoints(points, kind)
			require.NoError(t, err)
			assert.True(t, got.ApproxEqual(m, tol), "got %v want %v", got, m)
		})
	}
}

func TestCollinearHandlesAreSingular(t *testing.T) {
	points := ControlPoints{
		A: geom.Vec2{X: 0, Y: 0},
		B: geom.Vec2{X: 1, Y: 1},
		C: geom.Vec2{X: 2, Y: 2},
	}
	got, err := TransformFromControlPoints(points, Linear)
	require.NoError(t, err)

	_, err = got.Invert()
	assert.ErrorIs(t, err, geom.ErrNotInvertible)
}

func TestUnknownKind(t *testing.T) {
	_, err := BaseControlPoints("conic")
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = TransformFromControlPoints(ControlPoints{}, "conic")
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = ParseKind("diamond")
	assert.ErrorIs(t, err, ErrUnknownKind)

	k, err := ParseKind("radial")
	require.NoError(t, err)
	assert.Equal(t, Radial, k)
}
