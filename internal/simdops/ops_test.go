package simdops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFor(t *testing.T) {
	assert.Same(t, Float64Ops(), For[float64]())
	assert.NotNil(t, For[float32]())
}

func TestOps64(t *testing.T) {
	ops := Float64Ops()
	a := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}

	assert.InDelta(t, 45.0, ops.Sum(a), 1e-12)
	assert.InDelta(t, 285.0, ops.DotProductUnsafe(a, a), 1e-12)

	dst := make([]float64, len(a))
	ops.Scale(dst, a, 0.5)
	assert.InDelta(t, 4.5, dst[8], 1e-12)
}

func TestSumSquares(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want float64
	}{
		{"empty", nil, 0},
		{"single", []float64{-3}, 9},
		{"mixed", []float64{1, -2, 3, -4}, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SumSquares(tt.in), 1e-12)
		})
	}

	assert.InDelta(t, float32(30), SumSquares([]float32{1, -2, 3, -4}), 1e-5)
}

func TestInfo(t *testing.T) {
	assert.NotEmpty(t, Info())
}
