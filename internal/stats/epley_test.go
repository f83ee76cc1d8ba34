package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateOneRepMax_TrueSingle(t *testing.T) {
	// A single returns the weight exactly, including non-integer weights.
	assert.Equal(t, 315.0, EstimateOneRepMax(315, 1))
	assert.Equal(t, 132.5, EstimateOneRepMax(132.5, 1))
}

func TestEstimateOneRepMax_Epley(t *testing.T) {
	tests := []struct {
		name   string
		weight float64
		reps   int
		want   float64
	}{
		{"225x5", 225, 5, 263}, // 225 * 1.1666 = 262.5, half rounds up
		{"100x10", 100, 10, 133},
		{"300x3", 300, 3, 330},
		{"135x2", 135, 2, 144},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateOneRepMax(tt.weight, tt.reps))
		})
	}
}
