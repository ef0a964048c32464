package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type ChartKind string

const (
	ChartBar  ChartKind = "bar"
	ChartPie  ChartKind = "pie"
	ChartLine ChartKind = "line"
)

// Color RGBA 颜色，Alpha 取值 0~1
type Color struct {
	R uint8
	G uint8
	B uint8
	A float64
}

// RGBA 构造颜色
func RGBA(r, g, b uint8, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// WithAlpha 返回同色但透明度不同的颜色
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

func (c Color) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, strconv.FormatFloat(c.A, 'f', -1, 64))
}

func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// ColorSet 一个颜色作用于整个数据集，多个颜色按数据点一一对应（饼图）
type ColorSet []Color

// At 返回第 i 个数据点的颜色，只有一个颜色时所有点共用
func (cs ColorSet) At(i int) Color {
	if len(cs) == 0 {
		return Color{}
	}
	if len(cs) == 1 || i < 0 {
		return cs[0]
	}
	return cs[i%len(cs)]
}

// MarshalJSON 与 Chart.js 一致：单个颜色输出字符串，多个颜色输出数组
func (cs ColorSet) MarshalJSON() ([]byte, error) {
	if len(cs) == 1 {
		return json.Marshal(cs[0])
	}
	return json.Marshal([]Color(cs))
}

// Series 一个数据集及其颜色编码
type Series struct {
	Name        string    `json:"label,omitempty"`
	Data        []float64 `json:"data"`
	Fill        ColorSet  `json:"backgroundColor,omitempty"`
	Stroke      ColorSet  `json:"borderColor,omitempty"`
	StrokeWidth float64   `json:"borderWidth,omitempty"`
	Tension     float64   `json:"tension,omitempty"`
	AreaFill    bool      `json:"fill,omitempty"`
}

type AxisOptions struct {
	BeginAtZero bool `json:"beginAtZero"`
}

type Scales struct {
	Y AxisOptions `json:"y"`
}

// Options 图表的显示行为
type Options struct {
	Responsive          bool    `json:"responsive"`
	MaintainAspectRatio bool    `json:"maintainAspectRatio"`
	Scales              *Scales `json:"scales,omitempty"`
}

// BeginAtZero 数值轴是否从 0 开始
func (o Options) BeginAtZero() bool {
	return o.Scales != nil && o.Scales.Y.BeginAtZero
}

// ChartSpec 一个可渲染图表的完整描述
// swagger:model ChartSpec
type ChartSpec struct {
	Kind     ChartKind `json:"type"`
	TargetID string    `json:"targetId"`
	Labels   []string  `json:"labels"`
	Series   []Series  `json:"datasets"`
	Options  Options   `json:"options"`
}

// ChartJSData Chart.js 的 data 字段
type ChartJSData struct {
	Labels   []string `json:"labels"`
	Datasets []Series `json:"datasets"`
}

// ChartJSConfig 可直接传给 new Chart(ctx, config) 的配置
type ChartJSConfig struct {
	Type    ChartKind   `json:"type"`
	Data    ChartJSData `json:"data"`
	Options Options     `json:"options"`
}

// ChartJS 转换为 Chart.js 配置
func (s ChartSpec) ChartJS() ChartJSConfig {
	return ChartJSConfig{
		Type: s.Kind,
		Data: ChartJSData{
			Labels:   s.Labels,
			Datasets: s.Series,
		},
		Options: s.Options,
	}
}
