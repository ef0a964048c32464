package model

// SeriesInput 调用方提供的一组标签与数值
// nil 切片表示字段缺失，非 nil 的空切片表示字段存在但为空
type SeriesInput struct {
	Labels []string  `json:"labels,omitempty"`
	Data   []float64 `json:"data,omitempty" validate:"omitempty,dive,finite"`
}

// StatsInput 学习进度统计，所有字段都是可选的
// swagger:model StatsInput
type StatsInput struct {
	DailyWords      *SeriesInput `json:"daily_words,omitempty"`
	MasteredWords   *float64     `json:"mastered_words,omitempty" validate:"omitempty,finite,gte=0"`
	LearningWords   *float64     `json:"learning_words,omitempty" validate:"omitempty,finite,gte=0"`
	UnmasteredWords *float64     `json:"unmastered_words,omitempty" validate:"omitempty,finite,gte=0"`
	WeeklyTrend     *SeriesInput `json:"weekly_trend,omitempty"`
}

// Float 返回指向 v 的指针，方便构造 StatsInput
func Float(v float64) *float64 {
	return &v
}
