// Package geom holds the affine transform algebra and the value types
// (points, rectangles, ranges) shared by every canvas query.
package geom

import "errors"

var (
	ErrNotInvertible   = errors.New("transform not invertible")
	ErrInvalidArgument = errors.New("invalid argument")
)
