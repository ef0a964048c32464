package util

import (
	"errors"
	"fmt"
)

var (
	ErrSurfaceNotFound  = errors.New("surface not found")
	ErrSurfaceExists    = errors.New("surface already exists")
	ErrInvalidSurfaceID = errors.New("invalid surface id")
	ErrInvalidFormat    = errors.New("unsupported image format")
	ErrInvalidSize      = errors.New("surface size out of range")
	ErrImageNotRendered = errors.New("surface has no rendered image")
)

// ValidationError 统计数据不符合约定结构
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
