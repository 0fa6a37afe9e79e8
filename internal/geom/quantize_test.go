package geom

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantize(t *testing.T) {
	tests := []struct {
		value, step, want float64
	}{
		{15, 10, 20},
		{14, 10, 10},
		{-15, 10, -20},
		{0.05, 0.1, 0.1},
		{7, 1, 7},
		{0, 8, 0},
	}
	for _, tt := range tests {
		got, err := Quantize(tt.value, tt.step)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, got, 1e-12, "Quantize(%v, %v)", tt.value, tt.step)
	}
}

func TestQuantizeIdempotent(t *testing.T) {
	for _, step := range []float64{0.1, 0.25, 1, 8, 10} {
		for _, v := range []float64{-13.7, -0.05, 0, 0.05, 3.3, 14, 15, 1234.5678} {
			once, err := Quantize(v, step)
			require.NoError(t, err)
			twice, err := Quantize(once, step)
			require.NoError(t, err)
			assert.Equal(t, once, twice, "value %v step %v", v, step)
		}
	}
}

func TestQuantizeRejectsBadStep(t *testing.T) {
	for _, step := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := Quantize(5, step)
		assert.ErrorIs(t, err, ErrInvalidArgument, "step %v", step)
	}
}

func TestQuantizeRect(t *testing.T) {
	got, err := QuantizeRect(Rect{X: 3, Y: 14, Width: 12, Height: 2}, 10)
	require.NoError(t, err)
	assert.Equal(t, Rect{X: 0, Y: 10, Width: 20, Height: 10}, got)

	_, err = QuantizeRect(Rect{}, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDirectionText(t *testing.T) {
	for _, d := range Directions() {
		parsed, err := ParseDirection(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, parsed)
	}

	var got struct {
		Anchor Direction `json:"anchor"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"anchor":"sw"}`), &got))
	assert.Equal(t, SW, got.Anchor)

	_, err := ParseDirection("up")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, "Direction(42)", Direction(42).String())
}
