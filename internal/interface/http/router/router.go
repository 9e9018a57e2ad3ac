// Package router 注册HTTP路由
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// Options 路由开关
type Options struct {
	Mode        string // debug | release | test
	MetricsPath string // 为空时不暴露/metrics
	Swagger     bool
	Tracing     bool
}

// Handlers 所有HTTP处理器和需要的中间件
type Handlers struct {
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Book      *handler.BookHandler
	Category  *handler.CategoryHandler
	Publisher *handler.PublisherHandler
	Upload    *handler.UploadHandler

	AuthMiddleware *middleware.AuthMiddleware
	AuthLimiter    *middleware.IPRateLimiter
}

// New 创建Gin引擎并注册全部路由
// 中间件顺序：Tracing → Logger → Recovery → Metrics → 限流/认证（按路由） → Handler
func New(opts Options, h Handlers, log *zap.Logger) *gin.Engine {
	switch opts.Mode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(opts.Mode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()
	if opts.Tracing {
		r.Use(middleware.Tracing())
	}
	r.Use(middleware.Logger(log), middleware.Recovery(), middleware.Metrics())

	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"message": "pong", "status": "healthy"})
	})
	if opts.MetricsPath != "" {
		r.GET(opts.MetricsPath, gin.WrapH(promhttp.Handler()))
	}
	if opts.Swagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireAuth := h.AuthMiddleware.RequireAuth()

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			limited := auth.Group("", h.AuthLimiter.Middleware())
			limited.POST("/signup", h.Auth.Signup)
			limited.POST("/signin", h.Auth.Signin)
			limited.POST("/refresh", h.Auth.Refresh)

			auth.POST("/signout", requireAuth, h.Auth.Signout)
		}

		users := v1.Group("/users")
		{
			users.PATCH("/change-password/:id", requireAuth, h.User.ChangePassword)
		}
		registerResource(users, requireAuth, resource{
			list:       h.User.List,
			get:        h.User.Get,
			create:     h.User.Create,
			update:     h.User.Update,
			delete:     h.User.Delete,
			deleteMany: h.User.DeleteMany,
			deleteAll:  h.User.DeleteAll,
		})

		registerResource(v1.Group("/books"), requireAuth, resource{
			list:       h.Book.List,
			get:        h.Book.Get,
			create:     h.Book.Create,
			update:     h.Book.Update,
			delete:     h.Book.Delete,
			deleteMany: h.Book.DeleteMany,
			deleteAll:  h.Book.DeleteAll,
		})

		registerResource(v1.Group("/categories"), requireAuth, resource{
			list:       h.Category.List,
			get:        h.Category.Get,
			create:     h.Category.Create,
			update:     h.Category.Update,
			delete:     h.Category.Delete,
			deleteMany: h.Category.DeleteMany,
			deleteAll:  h.Category.DeleteAll,
		})

		registerResource(v1.Group("/publishers"), requireAuth, resource{
			list:       h.Publisher.List,
			get:        h.Publisher.Get,
			create:     h.Publisher.Create,
			update:     h.Publisher.Update,
			delete:     h.Publisher.Delete,
			deleteMany: h.Publisher.DeleteMany,
			deleteAll:  h.Publisher.DeleteAll,
		})

		upload := v1.Group("/upload-file")
		{
			upload.POST("", requireAuth, h.Upload.Upload)
			upload.POST("/multiple", requireAuth, h.Upload.UploadMultiple)
			upload.GET("/:filename", h.Upload.Serve)
		}
	}

	return r
}

// resource 四类资源共用的一组路由
type resource struct {
	list       gin.HandlerFunc
	get        gin.HandlerFunc
	create     gin.HandlerFunc
	update     gin.HandlerFunc
	delete     gin.HandlerFunc
	deleteMany gin.HandlerFunc
	deleteAll  gin.HandlerFunc
}

// registerResource 查询公开，写操作需要登录
func registerResource(g *gin.RouterGroup, requireAuth gin.HandlerFunc, res resource) {
	g.GET("", res.list)
	g.GET("/:id", res.get)

	g.POST("", requireAuth, res.create)
	g.PATCH("/:id", requireAuth, res.update)
	g.DELETE("/all", requireAuth, res.deleteAll)
	g.DELETE("/:id", requireAuth, res.delete)
	g.DELETE("", requireAuth, res.deleteMany)
}
