//go:build wireinject
// +build wireinject

// Wire依赖注入配置
//
// 运行 `wire gen ./cmd/api` 生成wire_gen.go后，可以用生成的initializeApp替换app.go中的手动组装。
// 两者的Provider相同（见providers.go），组装顺序一致。

package main

import (
	"context"
	"net/http"

	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/application/catalog"
	appuser "github.com/xiebiao/bookcatalog/internal/application/user"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/category"
	"github.com/xiebiao/bookcatalog/internal/domain/publisher"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/database"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/storage"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/internal/interface/http/router"
)

// infrastructureSet 数据库、Redis、消息队列、文件存储
var infrastructureSet = wire.NewSet(
	provideDB,
	provideRedis,
	provideSessionStore,
	provideEventPublisher,
	provideLocalStore,
	provideJWTManager,
	database.NewTxManager,
	wire.Bind(new(appuser.SessionStore), new(*redis.SessionStore)),
	wire.Bind(new(middleware.TokenBlacklist), new(*redis.SessionStore)),
	wire.Bind(new(handler.FileStore), new(*storage.LocalStore)),
)

// repositorySet 仓储
var repositorySet = wire.NewSet(
	database.NewUserRepository,
	database.NewBookRepository,
	database.NewImageRepository,
	database.NewCategoryRepository,
	database.NewPublisherRepository,
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	providePasswordHasher,
	user.NewService,
	book.NewService,
	category.NewService,
	publisher.NewService,
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	catalog.NewCascade,
	catalog.NewBookUseCase,
	catalog.NewCategoryUseCase,
	catalog.NewPublisherUseCase,
	appuser.NewRegisterUseCase,
	provideLoginUseCase,
	appuser.NewRefreshUseCase,
	appuser.NewLogoutUseCase,
	appuser.NewUserUseCase,
)

// interfaceSet 中间件、Handler、路由
var interfaceSet = wire.NewSet(
	middleware.NewAuthMiddleware,
	provideAuthLimiter,
	handler.NewAuthHandler,
	handler.NewUserHandler,
	handler.NewBookHandler,
	handler.NewCategoryHandler,
	handler.NewPublisherHandler,
	provideUploadHandler,
	wire.Struct(new(router.Handlers), "*"),
	provideEngine,
	provideHTTPServer,
)

// initializeApp Injector
// 返回的cleanup按创建的逆序关闭消息队列、Redis和数据库连接
func initializeApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (*http.Server, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		interfaceSet,
	)
	return nil, nil, nil
}
