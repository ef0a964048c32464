package model

import (
	"time"
)

type ImageFormat string

const (
	FormatPNG ImageFormat = "png"
	FormatSVG ImageFormat = "svg"
)

// Surface 可寻址的渲染目标，ID 与 ChartSpec.TargetID 对应
// swagger:model Surface
type Surface struct {
	ID             string      `gorm:"primaryKey;type:varchar(64)" json:"id"`
	// 为空时每次渲染取当前默认格式
	Format         ImageFormat `gorm:"type:varchar(8)" json:"format"`
	Width          int         `gorm:"not null" json:"width"`
	Height         int         `gorm:"not null" json:"height"`
	ImageURL       string      `gorm:"type:varchar(255)" json:"imageUrl,omitempty"`
	// 最近一次渲染实际使用的格式
	RenderedFormat ImageFormat `gorm:"type:varchar(8)" json:"renderedFormat,omitempty"`
	RenderedAt     *time.Time  `json:"renderedAt,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

func (Surface) TableName() string {
	return "chart_surfaces"
}

// OutputFormat 最近一次渲染实际使用的格式，旧记录没有 RenderedFormat 时退回 Format
func (s *Surface) OutputFormat() ImageFormat {
	if s.RenderedFormat != "" {
		return s.RenderedFormat
	}
	return s.Format
}

// ImageName 最近一次渲染结果在存储中的对象名
func (s *Surface) ImageName() string {
	return ImageObjectName(s.ID, s.OutputFormat())
}

func ImageObjectName(id string, format ImageFormat) string {
	return "charts/" + id + "." + string(format)
}
