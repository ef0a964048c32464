package chartrender

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSmoothPassesThroughPoints(t *testing.T) {
	xs := []float64{0, 1, 2, 3}
	ys := []float64{250, 480, 690, 850}

	sx, sy := smooth(xs, ys, 0.4, 4)
	assert.Len(t, sx, 3*4+1)
	assert.Len(t, sy, 3*4+1)

	for i := range xs {
		assert.InDelta(t, xs[i], sx[i*4], 1e-9)
		assert.InDelta(t, ys[i], sy[i*4], 1e-9)
	}
}

func TestSmoothXIsMonotonic(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4, 5}
	ys := []float64{0, 1000, 0, 1000, 0, 1000}

	sx, _ := smooth(xs, ys, 0.4, 8)
	for i := 1; i < len(sx); i++ {
		assert.GreaterOrEqual(t, sx[i], sx[i-1])
	}
}

func TestSmoothZeroTensionIsLinear(t *testing.T) {
	xs := []float64{0, 1, 2}
	ys := []float64{0, 10, 20}

	sx, sy := smooth(xs, ys, 0, 2)
	assert.Equal(t, []float64{0, 0.5, 1, 1.5, 2}, sx)
	assert.Equal(t, []float64{0, 5, 10, 15, 20}, sy)
}

func TestSmoothShortInput(t *testing.T) {
	xs := []float64{0, 1}
	ys := []float64{3, 4}

	sx, sy := smooth(xs, ys, 0.4, 8)
	assert.Equal(t, xs, sx)
	assert.Equal(t, ys, sy)
}
