package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

func TestBlacklistKey(t *testing.T) {
	k1 := blacklistKey("token-a")
	k2 := blacklistKey("token-b")

	assert.NotEqual(t, k1, k2)
	assert.Equal(t, k1, blacklistKey("token-a"))
	assert.Len(t, k1, len(keyPrefix+"blacklist:")+64)
	assert.Equal(t, "bookcatalog:session:42", sessionKey(42))
}

// 需要真实的Redis：BOOKCATALOG_TEST_REDIS_ADDR=127.0.0.1:6379
func newTestStore(t *testing.T) *SessionStore {
	t.Helper()
	addr := os.Getenv("BOOKCATALOG_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("未设置BOOKCATALOG_TEST_REDIS_ADDR")
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})
	return NewSessionStore(client)
}

func TestSessionStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("保存并读取会话", func(t *testing.T) {
		loginAt := time.Unix(1700000000, 0)
		require.NoError(t, store.SaveSession(ctx, Session{UserID: 1, Email: "a@b.com", IP: "10.0.0.1", LoginAt: loginAt}, time.Minute))

		sess, err := store.GetSession(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "a@b.com", sess.Email)
		assert.Equal(t, loginAt, sess.LoginAt)
	})

	t.Run("删除会话", func(t *testing.T) {
		require.NoError(t, store.DeleteSession(ctx, 1))

		_, err := store.GetSession(ctx, 1)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("黑名单", func(t *testing.T) {
		revoked, err := store.IsInBlacklist(ctx, "tkn")
		require.NoError(t, err)
		assert.False(t, revoked)

		require.NoError(t, store.AddToBlacklist(ctx, "tkn", time.Minute))
		revoked, err = store.IsInBlacklist(ctx, "tkn")
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("已过期的Token不写入黑名单", func(t *testing.T) {
		require.NoError(t, store.AddToBlacklist(ctx, "old", 0))
		revoked, err := store.IsInBlacklist(ctx, "old")
		require.NoError(t, err)
		assert.False(t, revoked)
	})
}
