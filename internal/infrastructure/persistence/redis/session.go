package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

const keyPrefix = "bookcatalog:"

// Session 登录会话
type Session struct {
	UserID  uint
	Email   string
	IP      string
	LoginAt time.Time
}

// SessionStore 会话与Token黑名单
// Key设计：
// - bookcatalog:session:<user_id>      Hash，有效期与Refresh Token一致
// - bookcatalog:blacklist:<sha256>     String，有效期与Access Token一致
type SessionStore struct {
	client redis.Cmdable
}

// NewSessionStore 创建会话存储
func NewSessionStore(client redis.Cmdable) *SessionStore {
	return &SessionStore{client: client}
}

func sessionKey(userID uint) string {
	return fmt.Sprintf("%ssession:%d", keyPrefix, userID)
}

// blacklistKey Token较长，只保存其摘要
func blacklistKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return keyPrefix + "blacklist:" + hex.EncodeToString(sum[:])
}

// SaveSession 保存会话（同一用户再次登录会覆盖旧会话）
func (s *SessionStore) SaveSession(ctx context.Context, sess Session, ttl time.Duration) error {
	key := sessionKey(sess.UserID)

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key,
		"user_id", sess.UserID,
		"email", sess.Email,
		"ip", sess.IP,
		"login_at", sess.LoginAt.Unix(),
	)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return apperrors.New(apperrors.ErrCodeRedisError, "保存会话失败").Wrap(err)
	}
	return nil
}

// GetSession 查询会话，不存在返回ErrUnauthorized
func (s *SessionStore) GetSession(ctx context.Context, userID uint) (*Session, error) {
	result, err := s.client.HGetAll(ctx, sessionKey(userID)).Result()
	if err != nil {
		return nil, apperrors.New(apperrors.ErrCodeRedisError, "获取会话失败").Wrap(err)
	}
	if len(result) == 0 {
		return nil, apperrors.ErrUnauthorized
	}

	loginAt, _ := strconv.ParseInt(result["login_at"], 10, 64)
	return &Session{
		UserID:  userID,
		Email:   result["email"],
		IP:      result["ip"],
		LoginAt: time.Unix(loginAt, 0),
	}, nil
}

// DeleteSession 删除会话
func (s *SessionStore) DeleteSession(ctx context.Context, userID uint) error {
	if err := s.client.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return apperrors.New(apperrors.ErrCodeRedisError, "删除会话失败").Wrap(err)
	}
	return nil
}

// AddToBlacklist 把Token加入黑名单，ttl<=0时不写入（Token已经过期）
func (s *SessionStore) AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, blacklistKey(token), "revoked", ttl).Err(); err != nil {
		return apperrors.New(apperrors.ErrCodeRedisError, "添加Token到黑名单失败").Wrap(err)
	}
	return nil
}

// IsInBlacklist 检查Token是否已注销
func (s *SessionStore) IsInBlacklist(ctx context.Context, token string) (bool, error) {
	exists, err := s.client.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		return false, apperrors.New(apperrors.ErrCodeRedisError, "检查黑名单失败").Wrap(err)
	}
	return exists > 0, nil
}
