//go:build !wireinject

package main

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/application/catalog"
	appuser "github.com/xiebiao/bookcatalog/internal/application/user"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/category"
	"github.com/xiebiao/bookcatalog/internal/domain/publisher"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/database"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/internal/interface/http/router"
)

// initializeApp 手动依赖注入，与wire.go中的Injector组装顺序一致
// 依赖链：Repository ← Service ← UseCase ← Handler ← Router
func initializeApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (*http.Server, func(), error) {
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}
	fail := func(err error) (*http.Server, func(), error) {
		cleanup()
		return nil, nil, err
	}

	// 1. 基础设施
	db, closeDB, err := provideDB(cfg)
	if err != nil {
		return fail(err)
	}
	cleanups = append(cleanups, closeDB)

	redisClient, closeRedis, err := provideRedis(ctx, cfg)
	if err != nil {
		return fail(err)
	}
	cleanups = append(cleanups, closeRedis)

	eventPublisher, closePublisher, err := provideEventPublisher(cfg, log)
	if err != nil {
		return fail(err)
	}
	cleanups = append(cleanups, closePublisher)

	fileStore, err := provideLocalStore(cfg)
	if err != nil {
		return fail(err)
	}

	sessionStore := provideSessionStore(redisClient)
	jwtManager := provideJWTManager(cfg)
	txManager := database.NewTxManager(db)

	// 2. 仓储
	userRepo := database.NewUserRepository(db)
	bookRepo := database.NewBookRepository(db)
	imageRepo := database.NewImageRepository(db)
	categoryRepo := database.NewCategoryRepository(db)
	publisherRepo := database.NewPublisherRepository(db)

	// 3. 领域服务
	userService := user.NewService(userRepo, providePasswordHasher())
	bookService := book.NewService(bookRepo, imageRepo)
	categoryService := category.NewService(categoryRepo)
	publisherService := publisher.NewService(publisherRepo)

	// 4. 用例
	cascade := catalog.NewCascade(txManager, bookRepo, imageRepo)
	bookUseCase := catalog.NewBookUseCase(bookService, categoryRepo, publisherRepo, cascade, txManager, eventPublisher)
	categoryUseCase := catalog.NewCategoryUseCase(categoryService, categoryRepo, cascade, eventPublisher)
	publisherUseCase := catalog.NewPublisherUseCase(publisherService, publisherRepo, cascade, eventPublisher)

	// 5. 接口层
	handlers := router.Handlers{
		Auth: handler.NewAuthHandler(
			appuser.NewRegisterUseCase(userService),
			provideLoginUseCase(cfg, userService, jwtManager, sessionStore),
			appuser.NewRefreshUseCase(jwtManager),
			appuser.NewLogoutUseCase(sessionStore, jwtManager),
		),
		User:           handler.NewUserHandler(appuser.NewUserUseCase(userService)),
		Book:           handler.NewBookHandler(bookUseCase),
		Category:       handler.NewCategoryHandler(categoryUseCase),
		Publisher:      handler.NewPublisherHandler(publisherUseCase),
		Upload:         provideUploadHandler(cfg, fileStore),
		AuthMiddleware: middleware.NewAuthMiddleware(jwtManager, sessionStore),
		AuthLimiter:    provideAuthLimiter(cfg),
	}

	engine := provideEngine(cfg, handlers, log)
	return provideHTTPServer(cfg, engine), cleanup, nil
}
