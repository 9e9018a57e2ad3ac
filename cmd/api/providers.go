package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	appuser "github.com/xiebiao/bookcatalog/internal/application/user"
	"github.com/xiebiao/bookcatalog/internal/domain/event"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/events"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/database"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/storage"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/internal/interface/http/router"
	"github.com/xiebiao/bookcatalog/pkg/jwt"
	"github.com/xiebiao/bookcatalog/pkg/mq"
)

// 这里的Provider同时被main.go的手动组装和wire.go使用
// 构造函数的参数不能直接从其他Provider得到时（需要从Config里取字段），在这里包一层

// provideDB 创建数据库连接，cleanup关闭连接池
func provideDB(cfg *config.Config) (*gorm.DB, func(), error) {
	db, err := database.NewDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, cleanup, nil
}

// provideRedis 创建Redis客户端
func provideRedis(ctx context.Context, cfg *config.Config) (*goredis.Client, func(), error) {
	client, err := redis.NewClient(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return client, func() { _ = client.Close() }, nil
}

func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

func providePasswordHasher() user.PasswordHasher {
	return user.NewBcryptHasher(bcrypt.DefaultCost)
}

// provideEventPublisher 未启用MQ时丢弃事件
// 启用时连接失败直接报错，不在运行中悄悄降级
func provideEventPublisher(cfg *config.Config, log *zap.Logger) (event.Publisher, func(), error) {
	if !cfg.MQ.Enabled {
		log.Info("消息队列未启用，目录事件不会发布")
		return event.Nop{}, func() {}, nil
	}

	pub, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, mq.ExchangeTopic, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := pub.Close(); err != nil {
			log.Warn("关闭RabbitMQ连接失败", zap.Error(err))
		}
	}
	return events.NewPublisher(pub, events.DefaultOptions, log), cleanup, nil
}

// provideLoginUseCase 会话有效期与Refresh Token一致
func provideLoginUseCase(
	cfg *config.Config,
	userService user.Service,
	jwtManager *jwt.Manager,
	sessionStore appuser.SessionStore,
) *appuser.LoginUseCase {
	return appuser.NewLoginUseCase(userService, jwtManager, sessionStore, cfg.JWT.RefreshTokenExpire)
}

func provideLocalStore(cfg *config.Config) (*storage.LocalStore, error) {
	return storage.NewLocalStore(cfg.Upload)
}

func provideUploadHandler(cfg *config.Config, store handler.FileStore) *handler.UploadHandler {
	return handler.NewUploadHandler(store, cfg.Upload.MaxBatchSize)
}

func provideAuthLimiter(cfg *config.Config) *middleware.IPRateLimiter {
	return middleware.NewIPRateLimiter(cfg.Server.AuthRateLimit, cfg.Server.AuthRateBurst)
}

// provideEngine 创建Gin引擎并注册路由
// Swagger只在非release模式下暴露
func provideEngine(cfg *config.Config, handlers router.Handlers, log *zap.Logger) *gin.Engine {
	opts := router.Options{
		Mode:    cfg.Server.Mode,
		Swagger: cfg.Server.Mode != gin.ReleaseMode,
		Tracing: cfg.Tracing.Enabled,
	}
	if cfg.Metrics.Enabled {
		opts.MetricsPath = cfg.Metrics.Path
	}
	return router.New(opts, handlers, log)
}

func provideHTTPServer(cfg *config.Config, engine *gin.Engine) *http.Server {
	return &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
