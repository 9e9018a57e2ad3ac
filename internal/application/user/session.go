package user

import (
	"context"
	"time"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/redis"
)

// SessionStore 会话存储（Redis实现见infrastructure/persistence/redis）
type SessionStore interface {
	SaveSession(ctx context.Context, sess redis.Session, ttl time.Duration) error
	DeleteSession(ctx context.Context, userID uint) error
	AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error
}

type clientIPKey struct{}

// WithClientIP 把请求IP放进context，登录时写入会话
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

func clientIP(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey{}).(string)
	return ip
}
