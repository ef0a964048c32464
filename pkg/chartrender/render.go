// Package chartrender 使用 go-chart 把 ChartSpec 绘制成 PNG/SVG 图片
package chartrender

import (
	"errors"
	"fmt"
	"io"
	"math"
	"progress_charts/internal/model"

	"github.com/golang/freetype/truetype"
	chart "github.com/wcharczuk/go-chart/v2"
)

var (
	ErrEmptySeries       = errors.New("chart has no data to draw")
	ErrNothingToDraw     = errors.New("pie chart values sum to zero")
	ErrInvalidValue      = errors.New("chart data contains NaN or Inf")
	ErrUnsupportedKind   = errors.New("unsupported chart kind")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrInvalidSize       = errors.New("image size must be positive")
)

// Settings 输出图片的格式与尺寸
type Settings struct {
	Format model.ImageFormat
	Width  int
	Height int
	// 为 nil 时使用 go-chart 默认字体（不含中文字形）
	Font *truetype.Font
}

// Draw 把 spec 绘制到 w
func Draw(w io.Writer, spec model.ChartSpec, s Settings) error {
	provider, err := rendererFor(s.Format)
	if err != nil {
		return err
	}
	if s.Width <= 0 || s.Height <= 0 {
		return ErrInvalidSize
	}
	if len(spec.Series) == 0 || len(spec.Series[0].Data) == 0 {
		return ErrEmptySeries
	}
	for _, v := range spec.Series[0].Data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrInvalidValue
		}
	}

	switch spec.Kind {
	case model.ChartBar:
		return drawBar(w, provider, spec, s)
	case model.ChartPie:
		return drawPie(w, provider, spec, s)
	case model.ChartLine:
		return drawLine(w, provider, spec, s)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedKind, spec.Kind)
	}
}

func ContentType(format model.ImageFormat) string {
	if format == model.FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

func rendererFor(format model.ImageFormat) (chart.RendererProvider, error) {
	switch format {
	case model.FormatPNG:
		return chart.PNG, nil
	case model.FormatSVG:
		return chart.SVG, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func drawBar(w io.Writer, provider chart.RendererProvider, spec model.ChartSpec, s Settings) error {
	series := spec.Series[0]

	bars := make([]chart.Value, len(series.Data))
	for i, v := range series.Data {
		bars[i] = chart.Value{
			Label: labelAt(spec.Labels, i),
			Value: v,
			Style: chart.Style{
				FillColor:   toDrawing(series.Fill.At(i)),
				StrokeColor: toDrawing(series.Stroke.At(i)),
				StrokeWidth: strokeWidth(series.StrokeWidth),
			},
		}
	}

	bc := chart.BarChart{
		Title:      series.Name,
		Width:      s.Width,
		Height:     s.Height,
		Font:       s.Font,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		BarWidth:   barWidth(s.Width, len(bars)),
		Bars:       bars,
	}
	// 只有一根柱子或数值全相同时 go-chart 无法自动推算 Y 轴
	if spec.Options.BeginAtZero() || flat(series.Data) {
		lo, hi := valueRange(series.Data)
		bc.YAxis.Range = &chart.ContinuousRange{Min: lo, Max: hi}
	}

	return bc.Render(provider, w)
}

func drawPie(w io.Writer, provider chart.RendererProvider, spec model.ChartSpec, s Settings) error {
	series := spec.Series[0]

	var total float64
	values := make([]chart.Value, len(series.Data))
	for i, v := range series.Data {
		total += v
		values[i] = chart.Value{
			Label: labelAt(spec.Labels, i),
			Value: v,
			Style: chart.Style{
				FillColor:   toDrawing(series.Fill.At(i)),
				StrokeColor: toDrawing(series.Stroke.At(i)),
				StrokeWidth: strokeWidth(series.StrokeWidth),
			},
		}
	}
	if total <= 0 {
		return ErrNothingToDraw
	}

	pc := chart.PieChart{
		Title:  series.Name,
		Width:  s.Width,
		Height: s.Height,
		Font:   s.Font,
		Values: values,
	}
	return pc.Render(provider, w)
}

func drawLine(w io.Writer, provider chart.RendererProvider, spec model.ChartSpec, s Settings) error {
	series := spec.Series[0]
	n := len(series.Data)

	// X 轴范围由刻度决定，两端各补一个空刻度留出半格
	xs := make([]float64, n)
	ticks := make([]chart.Tick, 0, n+2)
	ticks = append(ticks, chart.Tick{Value: -0.5})
	for i := range series.Data {
		xs[i] = float64(i)
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: labelAt(spec.Labels, i)})
	}
	ticks = append(ticks, chart.Tick{Value: float64(n) - 0.5})
	ys := series.Data

	lo, hi := valueRange(series.Data)
	switch {
	case n == 1:
		// 单点画不出线段，补成横跨该格的水平线
		xs = []float64{-0.5, 0.5}
		ys = []float64{ys[0], ys[0]}
	case series.Tension > 0 && n > 2:
		xs, ys = smooth(xs, ys, series.Tension, splineSteps)
		ys = clamp(ys, lo, hi)
	}

	style := chart.Style{
		StrokeColor: toDrawing(series.Stroke.At(0)),
		StrokeWidth: 2,
		DotColor:    toDrawing(series.Stroke.At(0)),
	}
	if series.StrokeWidth > 0 {
		style.StrokeWidth = series.StrokeWidth
	}
	if series.AreaFill {
		style.FillColor = toDrawing(series.Fill.At(0))
	}

	ch := chart.Chart{
		Width:      s.Width,
		Height:     s.Height,
		Font:       s.Font,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Ticks: ticks,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    series.Name,
				XValues: xs,
				YValues: ys,
				Style:   style,
			},
		},
	}
	if spec.Options.BeginAtZero() || flat(series.Data) {
		ch.YAxis.Range = &chart.ContinuousRange{Min: lo, Max: hi}
	}
	if series.Name != "" {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}

	return ch.Render(provider, w)
}

func labelAt(labels []string, i int) string {
	if i < len(labels) {
		return labels[i]
	}
	return ""
}

func strokeWidth(w float64) float64 {
	if w <= 0 {
		return 1
	}
	return w
}

func barWidth(width, n int) int {
	bw := (width - 64) / (n * 2)
	if bw < 4 {
		return 4
	}
	return bw
}

// valueRange 从 0 开始的数值轴范围，顶部留 10% 空白
func valueRange(data []float64) (float64, float64) {
	lo, hi := 0.0, 0.0
	for _, v := range data {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}
	return lo, hi + (hi-lo)*0.1
}

func flat(data []float64) bool {
	for _, v := range data[1:] {
		if v != data[0] {
			return false
		}
	}
	return true
}

func clamp(ys []float64, lo, hi float64) []float64 {
	for i, y := range ys {
		ys[i] = math.Max(lo, math.Min(hi, y))
	}
	return ys
}
