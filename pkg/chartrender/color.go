package chartrender

import (
	"math"
	"progress_charts/internal/model"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// toDrawing 把 0~1 的透明度换算成 0~255
func toDrawing(c model.Color) drawing.Color {
	a := math.Round(math.Max(0, math.Min(1, c.A)) * 255)
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: uint8(a)}
}
