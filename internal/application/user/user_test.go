package user

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/xiebiao/bookcatalog/internal/domain/listing"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/database"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/redis"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/jwt"
)

type memorySessions struct {
	mu        sync.Mutex
	sessions  map[uint]redis.Session
	blacklist map[string]time.Duration
	saveErr   error
}

func newMemorySessions() *memorySessions {
	return &memorySessions{
		sessions:  map[uint]redis.Session{},
		blacklist: map[string]time.Duration{},
	}
}

func (m *memorySessions) SaveSession(_ context.Context, sess redis.Session, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.sessions[sess.UserID] = sess
	return nil
}

func (m *memorySessions) DeleteSession(_ context.Context, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
	return nil
}

func (m *memorySessions) AddToBlacklist(_ context.Context, token string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blacklist[token] = ttl
	return nil
}

func newUserService(t *testing.T) user.Service {
	t.Helper()
	db, err := database.NewDB(&config.Config{
		Server: config.ServerConfig{Mode: "test"},
		Database: config.DatabaseConfig{
			Driver:      config.DriverSQLite,
			SQLitePath:  ":memory:",
			AutoMigrate: true,
		},
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return user.NewService(database.NewUserRepository(db), user.NewBcryptHasher(bcrypt.MinCost))
}

var alice = RegisterRequest{
	Email:     "alice@example.com",
	Password:  "password123",
	FirstName: "Alice",
	LastName:  "Wang",
}

func TestAuthFlow(t *testing.T) {
	ctx := WithClientIP(context.Background(), "10.0.0.8")
	svc := newUserService(t)
	sessions := newMemorySessions()
	jwtManager := jwt.NewManager("test-secret", time.Hour, 24*time.Hour)

	register := NewRegisterUseCase(svc)
	login := NewLoginUseCase(svc, jwtManager, sessions, 24*time.Hour)
	refresh := NewRefreshUseCase(jwtManager)
	logout := NewLogoutUseCase(sessions, jwtManager)

	registered, err := register.Execute(ctx, alice)
	require.NoError(t, err)
	assert.NotEqual(t, alice.Password, registered.Password)

	t.Run("重复注册", func(t *testing.T) {
		_, err := register.Execute(ctx, alice)
		assert.ErrorIs(t, err, user.ErrEmailDuplicate)
	})

	var tokens *LoginResponse
	t.Run("登录成功保存会话", func(t *testing.T) {
		tokens, err = login.Execute(ctx, LoginRequest{Email: alice.Email, Password: alice.Password})
		require.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.Equal(t, int64(3600), tokens.ExpiresIn)
		assert.Equal(t, registered.ID, tokens.User.ID)

		sess, ok := sessions.sessions[registered.ID]
		require.True(t, ok)
		assert.Equal(t, "10.0.0.8", sess.IP)
	})

	t.Run("密码错误与邮箱不存在返回同一错误", func(t *testing.T) {
		_, err := login.Execute(ctx, LoginRequest{Email: alice.Email, Password: "wrong-password"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

		_, err = login.Execute(ctx, LoginRequest{Email: "nobody@example.com", Password: alice.Password})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("刷新Token", func(t *testing.T) {
		resp, err := refresh.Execute(ctx, tokens.RefreshToken)
		require.NoError(t, err)

		claims, err := jwtManager.ParseToken(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, registered.ID, claims.UserID)

		_, err = refresh.Execute(ctx, tokens.AccessToken)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("登出后Token进入黑名单", func(t *testing.T) {
		require.NoError(t, logout.Execute(ctx, registered.ID, tokens.AccessToken))

		_, ok := sessions.sessions[registered.ID]
		assert.False(t, ok)

		ttl, ok := sessions.blacklist[tokens.AccessToken]
		require.True(t, ok)
		assert.True(t, ttl > 0 && ttl <= time.Hour)
	})
}

func TestLogin_SessionFailureIgnored(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(t)
	sessions := newMemorySessions()
	sessions.saveErr = errors.New("redis down")

	_, err := NewRegisterUseCase(svc).Execute(ctx, alice)
	require.NoError(t, err)

	login := NewLoginUseCase(svc, jwt.NewManager("s", time.Hour, time.Hour), sessions, time.Hour)
	resp, err := login.Execute(ctx, LoginRequest{Email: alice.Email, Password: alice.Password})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestUserUseCase(t *testing.T) {
	ctx := context.Background()
	uc := NewUserUseCase(newUserService(t))

	a, err := uc.Create(ctx, alice)
	require.NoError(t, err)
	b, err := uc.Create(ctx, RegisterRequest{Email: "bob@example.com", Password: "password456", FirstName: "Bob", LastName: "Alison"})
	require.NoError(t, err)

	t.Run("名和姓之间搜索", func(t *testing.T) {
		page, err := uc.List(ctx, listing.RawQuery{Search: "Ali"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Paging.Total)
	})

	t.Run("修改他人密码被拒绝", func(t *testing.T) {
		err := uc.ChangePassword(ctx, b.ID, a.ID, alice.Password, "new-password")
		assert.ErrorIs(t, err, user.ErrNotOwner)
	})

	t.Run("旧密码不正确", func(t *testing.T) {
		err := uc.ChangePassword(ctx, a.ID, a.ID, "bad-old-pass", "new-password")
		assert.ErrorIs(t, err, user.ErrOldPasswordMismatch)
	})

	t.Run("修改自己的密码", func(t *testing.T) {
		require.NoError(t, uc.ChangePassword(ctx, a.ID, a.ID, alice.Password, "new-password"))

		got, err := uc.Get(ctx, a.ID)
		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.Password), []byte("new-password")))
	})

	t.Run("编辑邮箱冲突", func(t *testing.T) {
		email := "bob@example.com"
		_, err := uc.Edit(ctx, a.ID, user.Patch{Email: &email})
		assert.ErrorIs(t, err, user.ErrEmailDuplicate)
	})

	t.Run("批量删除需要id", func(t *testing.T) {
		_, err := uc.DeleteMany(ctx, []uint{})
		assert.ErrorIs(t, err, ErrEmptyIDList)
	})

	t.Run("清空用户", func(t *testing.T) {
		n, err := uc.DeleteAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		assert.ErrorIs(t, uc.Delete(ctx, a.ID), user.ErrUserNotFound)
	})
}
