package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
)

// newTestDB 每个测试一个独立的SQLite内存库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "test"},
		Database: config.DatabaseConfig{
			Driver:      config.DriverSQLite,
			SQLitePath:  ":memory:",
			AutoMigrate: true,
		},
	}
	db, err := NewDB(cfg)
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func uintPtr(v uint) *uint { return &v }

var bg = context.Background()
