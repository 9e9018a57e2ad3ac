package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	t.Run("读取YAML并补齐默认值", func(t *testing.T) {
		path := writeConfig(t, `
server:
  port: 9090
database:
  driver: sqlite
  sqlite_path: ":memory:"
jwt:
  secret: test-secret
  access_token_expire: 30m
`)

		cfg, err := LoadFile(path)
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, ":9090", cfg.Server.Addr())
		assert.Equal(t, DriverSQLite, cfg.Database.Driver)
		assert.Equal(t, ":memory:", cfg.Database.DSN())
		assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTokenExpire)
		assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshTokenExpire)

		// 上传限制默认值
		assert.Equal(t, int64(1<<20), cfg.Upload.MaxFileSize)
		assert.Equal(t, int64(5<<20), cfg.Upload.MaxBatchSize)
		assert.Equal(t, 10, cfg.Upload.MaxFiles)
		assert.Equal(t, []string{"jpg", "jpeg", "png"}, cfg.Upload.AllowedExtensions)
	})

	t.Run("环境变量覆盖文件配置", func(t *testing.T) {
		path := writeConfig(t, `
jwt:
  secret: test-secret
`)
		t.Setenv("BOOKCATALOG_DATABASE_DRIVER", "postgres")
		t.Setenv("BOOKCATALOG_DATABASE_PORT", "5432")

		cfg, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, DriverPostgres, cfg.Database.Driver)
		assert.Contains(t, cfg.Database.DSN(), "port=5432")
		assert.Contains(t, cfg.Database.DSN(), "sslmode=disable")
	})

	t.Run("缺少JWT密钥", func(t *testing.T) {
		path := writeConfig(t, "server:\n  port: 8080\n")

		_, err := LoadFile(path)
		assert.Error(t, err)
	})

	t.Run("不支持的数据库驱动", func(t *testing.T) {
		path := writeConfig(t, `
database:
  driver: oracle
jwt:
  secret: test-secret
`)

		_, err := LoadFile(path)
		assert.ErrorContains(t, err, "oracle")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Driver:    DriverMySQL,
		Host:      "127.0.0.1",
		Port:      3306,
		User:      "root",
		Password:  "pwd",
		DBName:    "bookcatalog",
		Charset:   "utf8mb4",
		ParseTime: true,
		Loc:       "Asia/Shanghai",
	}

	assert.Equal(t,
		"root:pwd@tcp(127.0.0.1:3306)/bookcatalog?charset=utf8mb4&parseTime=true&loc=Asia%2FShanghai",
		d.DSN())
}
