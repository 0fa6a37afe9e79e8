package geom

import (
	"fmt"
	"math"

	"golang.org/x/image/math/f64"
	"gonum.org/v1/gonum/floats/scalar"
)

// Epsilon is the determinant magnitude below which a transform is treated as
// singular.
const Epsilon = 1e-9

// Transform represents a 2D affine transformation matrix.
// Layout (row-major, same as f64.Aff3): [a, b, tx, c, d, ty] representing:
// | a  b  tx |
// | c  d  ty |
// | 0  0  1  |
//
// A point (x, y) maps to (a*x + b*y + tx, c*x + d*y + ty).
type Transform [6]float64

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{1, 0, 0, 0, 1, 0}
}

// Translate returns a translation transform.
func Translate(tx, ty float64) Transform {
	return Transform{1, 0, tx, 0, 1, ty}
}

// Scale returns a scale transform.
func Scale(sx, sy float64) Transform {
	return Transform{sx, 0, 0, 0, sy, 0}
}

// Rotate returns a rotation transform (angle in radians, counter-clockwise in a
// y-up frame).
func Rotate(radians float64) Transform {
	cos := math.Cos(radians)
	sin := math.Sin(radians)
	return Transform{cos, -sin, 0, sin, cos, 0}
}

// RotateDegrees returns a rotation transform (angle in degrees).
func RotateDegrees(degrees float64) Transform {
	return Rotate(degrees * math.Pi / 180.0)
}

// Skew returns a shear transform. kx shears x along y and ky shears y along x;
// both angles are in radians.
func Skew(kx, ky float64) Transform {
	return Transform{1, math.Tan(kx), 0, math.Tan(ky), 1, 0}
}

// FromAff3 converts an f64.Aff3 to a Transform.
func FromAff3(m f64.Aff3) Transform {
	return Transform(m)
}

// Aff3 returns the transform in the layout used by golang.org/x/image/draw.
func (m Transform) Aff3() f64.Aff3 {
	return f64.Aff3(m)
}

// Multiply composes two transforms: the result applies t2 first, then t1.
func Multiply(t1, t2 Transform) Transform {
	return t1.Multiply(t2)
}

// Multiply multiplies this transform by another: result = m * other.
// This applies 'other' first, then 'm'.
func (m Transform) Multiply(other Transform) Transform {
	return Transform{
		m[0]*other[0] + m[1]*other[3],        // a
		m[0]*other[1] + m[1]*other[4],        // b
		m[0]*other[2] + m[1]*other[5] + m[2], // tx
		m[3]*other[0] + m[4]*other[3],        // c
		m[3]*other[1] + m[4]*other[4],        // d
		m[3]*other[2] + m[4]*other[5] + m[5], // ty
	}
}

// Determinant returns the determinant of the linear part.
func (m Transform) Determinant() float64 {
	return m[0]*m[4] - m[1]*m[3]
}

// Invert returns the inverse of t. It fails with ErrNotInvertible when
// |det(t)| < Epsilon.
func Invert(t Transform) (Transform, error) {
	return t.Invert()
}

// Invert returns the inverse of the transform, or ErrNotInvertible.
func (m Transform) Invert() (Transform, error) {
	det := m.Determinant()
	if math.Abs(det) < Epsilon {
		return Transform{}, fmt.Errorf("%w: determinant %g", ErrNotInvertible, det)
	}

	invDet := 1.0 / det
	return Transform{
		m[4] * invDet,
		-m[1] * invDet,
		(m[1]*m[5] - m[4]*m[2]) * invDet,
		-m[3] * invDet,
		m[0] * invDet,
		(m[3]*m[2] - m[0]*m[5]) * invDet,
	}, nil
}

// Apply applies the transform to a point.
func (m Transform) Apply(p Vec2) Vec2 {
	return Vec2{
		X: m[0]*p.X + m[1]*p.Y + m[2],
		Y: m[3]*p.X + m[4]*p.Y + m[5],
	}
}

// ApplyVector applies the linear part only (no translation).
func (m Transform) ApplyVector(v Vec2) Vec2 {
	return Vec2{
		X: m[0]*v.X + m[1]*v.Y,
		Y: m[3]*v.X + m[4]*v.Y,
	}
}

// Translation returns the translation column.
func (m Transform) Translation() Vec2 {
	return Vec2{X: m[2], Y: m[5]}
}

// TransformRect transforms a rectangle and returns its axis-aligned bounding box.
func (m Transform) TransformRect(r Rect) Rect {
	p0 := m.Apply(Vec2{r.X, r.Y})
	p1 := m.Apply(Vec2{r.X + r.Width, r.Y})
	p2 := m.Apply(Vec2{r.X + r.Width, r.Y + r.Height})
	p3 := m.Apply(Vec2{r.X, r.Y + r.Height})

	minX := min(p0.X, p1.X, p2.X, p3.X)
	minY := min(p0.Y, p1.Y, p2.Y, p3.Y)
	maxX := max(p0.X, p1.X, p2.X, p3.X)
	maxY := max(p0.Y, p1.Y, p2.Y, p3.Y)

	return RectFromBounds(minX, minY, maxX, maxY)
}

// ApproxEqual reports whether every component of m is within tol of other.
func (m Transform) ApproxEqual(other Transform, tol float64) bool {
	for i := range m {
		if !scalar.EqualWithinAbs(m[i], other[i], tol) {
			return false
		}
	}
	return true
}

// IsIdentity checks if this is the identity transform (within Epsilon).
func (m Transform) IsIdentity() bool {
	return m.ApproxEqual(Identity(), Epsilon)
}

// Components is the editor-facing decomposition of a transform.
// Rotation and Skew are in degrees.
type Components struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	SX       float64 `json:"sx"`
	SY       float64 `json:"sy"`
	Rotation float64 `json:"rotation"`
	Skew     float64 `json:"skew"`
}

// Decompose splits the transform into Translate * Rotate * Skew(x) * Scale.
// Compose(m.Decompose()) reproduces m for every invertible m. Singular
// transforms decompose without error but may not round-trip.
func (m Transform) Decompose() Components {
	a, b, c, d := m[0], m[1], m[3], m[4]
	out := Components{X: m[2], Y: m[5]}

	sx := math.Hypot(a, c)
	if sx < Epsilon {
		// Only the second column carries information.
		out.SY = math.Hypot(b, d)
		out.Rotation = math.Atan2(-b, d) * 180 / math.Pi
		return out
	}

	theta := math.Atan2(c, a)
	cos, sin := a/sx, c/sx
	sy := m.Determinant() / sx

	out.SX = sx
	out.SY = sy
	out.Rotation = theta * 180 / math.Pi
	if math.Abs(sy) >= Epsilon {
		out.Skew = math.Atan((cos*b+sin*d)/sy) * 180 / math.Pi
	}
	return out
}

// Compose is the inverse of Decompose.
func Compose(c Components) Transform {
	return Translate(c.X, c.Y).
		Multiply(RotateDegrees(c.Rotation)).
		Multiply(Skew(c.Skew*math.Pi/180, 0)).
		Multiply(Scale(c.SX, c.SY))
}

// FromAnchored creates a transform from editor transform properties.
// It composes T(x+ax, y+ay) * R(r) * S(sx, sy) * T(-ax, -ay): the anchor
// (ax, ay) is the rotation/scale center, and with no rotation or scale the
// object's origin sits at (x, y).
func FromAnchored(x, y, sx, sy, rDegrees, ax, ay float64) Transform {
	return Translate(x+ax, y+ay).
		Multiply(RotateDegrees(rDegrees)).
		Multiply(Scale(sx, sy)).
		Multiply(Translate(-ax, -ay))
}
