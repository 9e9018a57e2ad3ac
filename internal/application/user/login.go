package user

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookcatalog/pkg/jwt"
	"github.com/xiebiao/bookcatalog/pkg/logger"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

const tracerName = "bookcatalog/user"

// LoginUseCase 用户登录用例
// 设计说明：
// 1. 验证邮箱密码
// 2. 生成JWT Token对
// 3. 保存会话到Redis（失败不影响登录）
type LoginUseCase struct {
	userService  user.Service
	jwtManager   *jwt.Manager
	sessionStore SessionStore
	sessionTTL   time.Duration
}

// NewLoginUseCase 创建登录用例
// sessionTTL与Refresh Token有效期一致
func NewLoginUseCase(
	userService user.Service,
	jwtManager *jwt.Manager,
	sessionStore SessionStore,
	sessionTTL time.Duration,
) *LoginUseCase {
	return &LoginUseCase{
		userService:  userService,
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
		sessionTTL:   sessionTTL,
	}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string
	Password string
}

// LoginResponse 登录响应
type LoginResponse struct {
	User         *user.User
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // Access Token有效期（秒）
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (resp *LoginResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "LoginUseCase.Execute")
	defer func() { tracing.EndSpan(span, err) }()

	// 1. 验证邮箱密码，失败统一返回ErrInvalidCredentials
	u, err := uc.userService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	// 2. 生成JWT Token对
	tokenPair, err := uc.jwtManager.GenerateToken(u.ID, u.Email)
	if err != nil {
		return nil, err
	}

	// 3. 保存会话
	sess := redis.Session{
		UserID:  u.ID,
		Email:   u.Email,
		IP:      clientIP(ctx),
		LoginAt: time.Now(),
	}
	if err := uc.sessionStore.SaveSession(ctx, sess, uc.sessionTTL); err != nil {
		logger.FromContext(ctx).Warn("保存会话失败", zap.Uint("user_id", u.ID), zap.Error(err))
	}

	return &LoginResponse{
		User:         u,
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

// RefreshUseCase 用Refresh Token换取新的Access Token
type RefreshUseCase struct {
	jwtManager *jwt.Manager
}

func NewRefreshUseCase(jwtManager *jwt.Manager) *RefreshUseCase {
	return &RefreshUseCase{jwtManager: jwtManager}
}

// RefreshResponse 刷新响应
type RefreshResponse struct {
	AccessToken string
	ExpiresIn   int64
}

func (uc *RefreshUseCase) Execute(ctx context.Context, refreshToken string) (*RefreshResponse, error) {
	accessToken, err := uc.jwtManager.RefreshAccessToken(refreshToken)
	if err != nil {
		return nil, err
	}
	return &RefreshResponse{
		AccessToken: accessToken,
		ExpiresIn:   int64(uc.jwtManager.AccessTokenExpire().Seconds()),
	}, nil
}

// LogoutUseCase 用户登出用例
type LogoutUseCase struct {
	sessionStore SessionStore
	jwtManager   *jwt.Manager
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(sessionStore SessionStore, jwtManager *jwt.Manager) *LogoutUseCase {
	return &LogoutUseCase{sessionStore: sessionStore, jwtManager: jwtManager}
}

// Execute 执行登出
// Access Token在过期前一直有效，所以要放进黑名单，TTL取Token剩余有效期
func (uc *LogoutUseCase) Execute(ctx context.Context, userID uint, accessToken string) (err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "LogoutUseCase.Execute")
	defer func() { tracing.EndSpan(span, err) }()

	if err := uc.sessionStore.DeleteSession(ctx, userID); err != nil {
		return err
	}

	ttl := uc.jwtManager.AccessTokenExpire()
	if claims, err := uc.jwtManager.ParseToken(accessToken); err == nil && claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	return uc.sessionStore.AddToBlacklist(ctx, accessToken, ttl)
}
