package safeconv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampUint64(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   int64
		want uint64
	}{
		{"zero", 0, 0},
		{"positive", 2048, 2048},
		{"max", math.MaxInt64, math.MaxInt64},
		{"negative", -1, 0},
		{"min", math.MinInt64, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampUint64(tt.in), tt.name)
	}
}
