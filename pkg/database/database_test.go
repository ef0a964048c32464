package database

import (
	"progress_charts/internal/config"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	dsn := DSN(&config.DatabaseConfig{
		Host:      "db",
		Port:      3306,
		User:      "charts",
		Password:  "secret",
		DBName:    "progress",
		Charset:   "utf8mb4",
		ParseTime: true,
	})
	assert.Equal(t, "charts:secret@tcp(db:3306)/progress?charset=utf8mb4&parseTime=true&loc=Local", dsn)
}
