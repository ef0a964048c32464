package repository

import (
	"errors"
	"fmt"
	"progress_charts/internal/util"
	"testing"

	sqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateCreateError(t *testing.T) {
	assert.NoError(t, translateCreateError(nil))

	// 开启 TranslateError 后 gorm 返回的主键冲突
	assert.ErrorIs(t, translateCreateError(gorm.ErrDuplicatedKey), util.ErrSurfaceExists)
	assert.ErrorIs(t, translateCreateError(fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey)), util.ErrSurfaceExists)

	// 未开启时驱动原始错误
	dup := &sqldriver.MySQLError{Number: 1062, Message: "Duplicate entry 'mastery-chart' for key 'PRIMARY'"}
	assert.ErrorIs(t, translateCreateError(dup), util.ErrSurfaceExists)

	other := &sqldriver.MySQLError{Number: 1406, Message: "Data too long for column 'id'"}
	assert.Same(t, other, translateCreateError(other))

	plain := errors.New("connection refused")
	assert.Equal(t, plain, translateCreateError(plain))
}
