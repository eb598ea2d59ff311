package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineSentinelZeros(t *testing.T) {
	assert.Zero(t, Cosine(nil, []float32{1, 2, 3}))
	assert.Zero(t, Cosine([]float32{1, 2, 3}, nil))
	assert.Zero(t, Cosine([]float32{}, []float32{1, 2, 3}))
	assert.Zero(t, Cosine([]float32{1, 2}, []float32{1, 2, 3}))
	assert.Zero(t, Cosine([]float32{0, 0}, []float32{0, 0}))
	assert.Zero(t, Cosine([]float32{0, 0}, []float32{1, 1}))
}

func TestCosineKnownValues(t *testing.T) {
	assert.InDelta(t, 1.0, Cosine([]float32{1, 2, 3}, []float32{1, 2, 3}), 1e-9)
	assert.InDelta(t, 1.0, Cosine([]float32{1, 0}, []float32{5, 0}), 1e-9)
	assert.InDelta(t, 0.0, Cosine([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, Cosine([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	// cos(45°)
	assert.InDelta(t, 0.7071067811865475, Cosine([]float32{1, 0}, []float32{1, 1}), 1e-6)
}
