package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorString(t *testing.T) {
	assert.Equal(t, "rgba(52, 152, 219, 0.6)", RGBA(52, 152, 219, 0.6).String())
	assert.Equal(t, "rgba(231, 76, 60, 1)", RGBA(231, 76, 60, 1).String())
	assert.Equal(t, "rgba(1, 2, 3, 0.1)", RGBA(1, 2, 3, 1).WithAlpha(0.1).String())
}

func TestColorSetJSON(t *testing.T) {
	single, err := json.Marshal(ColorSet{RGBA(52, 152, 219, 1)})
	require.NoError(t, err)
	assert.JSONEq(t, `"rgba(52, 152, 219, 1)"`, string(single))

	many, err := json.Marshal(ColorSet{RGBA(1, 1, 1, 1), RGBA(2, 2, 2, 0.5)})
	require.NoError(t, err)
	assert.JSONEq(t, `["rgba(1, 1, 1, 1)", "rgba(2, 2, 2, 0.5)"]`, string(many))
}

func TestColorSetAt(t *testing.T) {
	one := ColorSet{RGBA(1, 1, 1, 1)}
	assert.Equal(t, RGBA(1, 1, 1, 1), one.At(5))

	three := ColorSet{RGBA(1, 1, 1, 1), RGBA(2, 2, 2, 1), RGBA(3, 3, 3, 1)}
	assert.Equal(t, RGBA(2, 2, 2, 1), three.At(1))
	assert.Equal(t, RGBA(1, 1, 1, 1), three.At(3))

	assert.Equal(t, Color{}, ColorSet{}.At(0))
}

func TestChartJSConfig(t *testing.T) {
	spec := ChartSpec{
		Kind:     ChartLine,
		TargetID: "learning-trend-chart",
		Labels:   []string{"w1", "w2"},
		Series: []Series{{
			Name:     "total",
			Data:     []float64{1, 2},
			Fill:     ColorSet{RGBA(52, 152, 219, 0.1)},
			Stroke:   ColorSet{RGBA(52, 152, 219, 1)},
			Tension:  0.4,
			AreaFill: true,
		}},
		Options: Options{
			Responsive: true,
			Scales:     &Scales{Y: AxisOptions{BeginAtZero: true}},
		},
	}

	data, err := json.Marshal(spec.ChartJS())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "line",
		"data": {
			"labels": ["w1", "w2"],
			"datasets": [{
				"label": "total",
				"data": [1, 2],
				"backgroundColor": "rgba(52, 152, 219, 0.1)",
				"borderColor": "rgba(52, 152, 219, 1)",
				"tension": 0.4,
				"fill": true
			}]
		},
		"options": {
			"responsive": true,
			"maintainAspectRatio": false,
			"scales": {"y": {"beginAtZero": true}}
		}
	}`, string(data))
}

func TestStatsInputJSONPresence(t *testing.T) {
	var stats StatsInput
	err := json.Unmarshal([]byte(`{"daily_words": {"data": []}, "mastered_words": 0}`), &stats)
	require.NoError(t, err)

	require.NotNil(t, stats.DailyWords)
	assert.Nil(t, stats.DailyWords.Labels)
	assert.NotNil(t, stats.DailyWords.Data)
	require.NotNil(t, stats.MasteredWords)
	assert.Equal(t, 0.0, *stats.MasteredWords)
	assert.Nil(t, stats.LearningWords)
	assert.Nil(t, stats.WeeklyTrend)
}
