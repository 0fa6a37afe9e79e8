package geom

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRectIntersects(t *testing.T) {
	viewport := Rect{0, 0, 100, 100}
	tests := []struct {
		name string
		r    Rect
		want bool
	}{
		{"inside", Rect{10, 10, 20, 20}, true},
		{"partial overlap", Rect{90, 90, 20, 20}, true},
		{"touching right edge", Rect{100, 10, 20, 20}, true},
		{"touching corner", Rect{-20, -20, 20, 20}, true},
		{"right of", Rect{101, 10, 5, 5}, false},
		{"below", Rect{10, 200, 5, 5}, false},
		{"zero area inside", Rect{50, 50, 0, 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, viewport.Intersects(tt.r))
			assert.Equal(t, tt.want, tt.r.Intersects(viewport))
		})
	}
}

func TestRectContainsRect(t *testing.T) {
	outer := Rect{50, 50, 200, 200}
	assert.True(t, outer.ContainsRect(Rect{60, 60, 10, 10}))
	assert.True(t, outer.ContainsRect(outer))
	assert.True(t, outer.ContainsRect(Rect{50, 50, 0, 0}))
	assert.False(t, outer.ContainsRect(Rect{40, 60, 20, 10}))
	assert.False(t, outer.ContainsRect(Rect{245, 60, 10, 10}))
}

func TestRectUnionKeepsZeroArea(t *testing.T) {
	a := Rect{10, 10, 0, 0}
	b := Rect{40, 40, 20, 20}
	assert.Equal(t, Rect{10, 10, 50, 50}, a.Union(b))
}

func TestRectCenterAndTranslate(t *testing.T) {
	r := Rect{200, 200, 20, 20}
	assert.Equal(t, Vec2{210, 210}, r.Center())
	assert.Equal(t, Rect{190, 195, 20, 20}, r.Translate(Vec2{-10, -5}))
	assert.Equal(t, Vec2{220, 220}, r.Max())
}

func TestRectValid(t *testing.T) {
	assert.True(t, Rect{0, 0, 0, 0}.Valid())
	assert.False(t, Rect{0, 0, -1, 2}.Valid())
	assert.True(t, Rect{0, 0, 0, 5}.IsEmpty())
}

func TestRectValidate(t *testing.T) {
	assert.NoError(t, Rect{X: -5, Y: -5, Width: 0, Height: 3}.Validate())

	tests := map[string]Rect{
		"negative width":  {X: 60, Y: 60, Width: -10, Height: 10},
		"negative height": {X: 60, Y: 60, Width: 10, Height: -10},
		"nan origin":      {X: math.NaN(), Width: 1, Height: 1},
		"infinite size":   {Width: math.Inf(1), Height: 1},
	}
	for name, r := range tests {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, r.Validate(), ErrInvalidArgument)
		})
	}
}

func TestNewRange(t *testing.T) {
	r, err := NewRange(1, 3)
	require.NoError(t, err)
	assert.Equal(t, 2.0, r.Length())
	assert.True(t, r.Contains(3))
	assert.True(t, r.Overlaps(Range{3, 4}))
	assert.False(t, r.Overlaps(Range{3.5, 4}))

	_, err = NewRange(3, 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRectJSON(t *testing.T) {
	data, err := json.Marshal(Rect{1, 2, 3, 4})
	require.NoError(t, err)
	assert.JSONEq(t, `{"x":1,"y":2,"width":3,"height":4}`, string(data))
}
