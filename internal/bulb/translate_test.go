package bulb_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hrolfurgylfa/vrchat-light-sync/internal/bulb"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		prevStart float64
		prevEnd   float64
		newStart  float64
		newEnd    float64
		want      float64
	}{
		{"hue midpoint", 180, 0, 360, 0, 1, 0.5},
		{"hue full turn", 360, 0, 360, 0, 1, 1},
		{"hue zero", 0, 0, 360, 0, 1, 0},
		{"brightness full", 255, 0, 255, 0, 1, 1},
		{"brightness half", 127, 0, 255, 0, 1, 127.0 / 255.0},
		{"offset source interval", 150, 100, 200, 0, 10, 5},
		{"inverted target interval", 0.25, 0, 1, 1, 0, 0.75},
		{"identity", 0.25, 0, 1, 0, 1, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bulb.Translate(tt.value, tt.prevStart, tt.prevEnd, tt.newStart, tt.newEnd)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestTranslateDoesNotClamp(t *testing.T) {
	// Out-of-range input passes through proportionally.
	assert.InDelta(t, 1.5, bulb.Translate(540, 0, 360, 0, 1), 1e-9)
	assert.InDelta(t, -0.5, bulb.Translate(-180, 0, 360, 0, 1), 1e-9)
}

func TestTranslateRoundTrip(t *testing.T) {
	normalized := bulb.Translate(213, 0, 360, 0, 1)
	assert.InDelta(t, 213, bulb.Translate(normalized, 0, 1, 0, 360), 1e-9)
}

func TestTranslateZeroSpanSource(t *testing.T) {
	// A zero-width source interval divides by zero; callers are expected
	// to pass distinct endpoints.
	assert.True(t, math.IsInf(bulb.Translate(5, 2, 2, 0, 1), 1))
	assert.True(t, math.IsNaN(bulb.Translate(2, 2, 2, 0, 1)))
}
