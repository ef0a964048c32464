package service

import (
	"progress_charts/internal/model"
)

const (
	DailyWordsChartID    = "daily-words-chart"
	MasteryChartID       = "mastery-chart"
	LearningTrendChartID = "learning-trend-chart"
)

// 默认值，每次构建都会复制一份，不会被调用方修改
var (
	defaultDailyLabels = []string{"周一", "周二", "周三", "周四", "周五", "周六", "周日"}
	defaultDailyData   = []float64{45, 63, 78, 52, 91, 105, 68}

	masteryLabels = []string{"已掌握", "学习中", "未掌握"}

	defaultMastered   = 87.0
	defaultLearning   = 10.0
	defaultUnmastered = 3.0

	defaultTrendLabels = []string{"第1周", "第2周", "第3周", "第4周", "第5周", "第6周"}
	defaultTrendData   = []float64{250, 480, 690, 850, 1020, 1254}
)

var (
	blue   = model.RGBA(52, 152, 219, 1)
	green  = model.RGBA(39, 174, 96, 1)
	orange = model.RGBA(243, 156, 18, 1)
	red    = model.RGBA(231, 76, 60, 1)
)

// BuildProgressCharts 按 每日单词量、掌握程度、学习趋势 的顺序构建三个图表
func BuildProgressCharts(stats *model.StatsInput) []model.ChartSpec {
	return []model.ChartSpec{
		BuildDailyWordsChart(stats),
		BuildMasteryChart(stats),
		BuildTrendChart(stats),
	}
}

// BuildDailyWordsChart 每日学习单词量柱状图
func BuildDailyWordsChart(stats *model.StatsInput) model.ChartSpec {
	var in *model.SeriesInput
	if stats != nil {
		in = stats.DailyWords
	}
	labels, data := resolveSeries(in, defaultDailyLabels, defaultDailyData)

	return model.ChartSpec{
		Kind:     model.ChartBar,
		TargetID: DailyWordsChartID,
		Labels:   labels,
		Series: []model.Series{{
			Name:        "学习单词数",
			Data:        data,
			Fill:        model.ColorSet{blue.WithAlpha(0.6)},
			Stroke:      model.ColorSet{blue},
			StrokeWidth: 1,
		}},
		Options: axisOptions(),
	}
}

// BuildMasteryChart 单词掌握程度饼图，标签固定，三个数值各自独立取默认值
func BuildMasteryChart(stats *model.StatsInput) model.ChartSpec {
	var in model.StatsInput
	if stats != nil {
		in = *stats
	}

	return model.ChartSpec{
		Kind:     model.ChartPie,
		TargetID: MasteryChartID,
		Labels:   cloneStrings(masteryLabels),
		Series: []model.Series{{
			Data: []float64{
				valueOr(in.MasteredWords, defaultMastered),
				valueOr(in.LearningWords, defaultLearning),
				valueOr(in.UnmasteredWords, defaultUnmastered),
			},
			Fill:        model.ColorSet{green.WithAlpha(0.7), orange.WithAlpha(0.7), red.WithAlpha(0.7)},
			Stroke:      model.ColorSet{green, orange, red},
			StrokeWidth: 1,
		}},
		Options: model.Options{
			Responsive:          true,
			MaintainAspectRatio: false,
		},
	}
}

// BuildTrendChart 累计学习单词折线图
func BuildTrendChart(stats *model.StatsInput) model.ChartSpec {
	var in *model.SeriesInput
	if stats != nil {
		in = stats.WeeklyTrend
	}
	labels, data := resolveSeries(in, defaultTrendLabels, defaultTrendData)

	return model.ChartSpec{
		Kind:     model.ChartLine,
		TargetID: LearningTrendChartID,
		Labels:   labels,
		Series: []model.Series{{
			Name:     "累计学习单词",
			Data:     data,
			Fill:     model.ColorSet{blue.WithAlpha(0.1)},
			Stroke:   model.ColorSet{blue},
			Tension:  0.4,
			AreaFill: true,
		}},
		Options: axisOptions(),
	}
}

// resolveSeries labels 与 data 分别判断：labels 需存在且非空，data 只需存在
func resolveSeries(in *model.SeriesInput, fallbackLabels []string, fallbackData []float64) ([]string, []float64) {
	labels, data := fallbackLabels, fallbackData
	if in != nil {
		if len(in.Labels) > 0 {
			labels = in.Labels
		}
		if in.Data != nil {
			data = in.Data
		}
	}
	return cloneStrings(labels), cloneFloats(data)
}

func axisOptions() model.Options {
	return model.Options{
		Responsive:          true,
		MaintainAspectRatio: false,
		Scales:              &model.Scales{Y: model.AxisOptions{BeginAtZero: true}},
	}
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

func cloneStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func cloneFloats(f []float64) []float64 {
	out := make([]float64, len(f))
	copy(out, f)
	return out
}
