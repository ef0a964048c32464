package chartrender

import (
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
)

// LoadFont 读取 TrueType 字体，用于绘制中文标签
func LoadFont(path string) (*truetype.Font, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	font, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	return font, nil
}
