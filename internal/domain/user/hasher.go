package user

import (
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// PasswordHasher 密码加密与比对
type PasswordHasher interface {
	Hash(plain string) (string, error)
	// Check 明文与哈希匹配时返回true
	Check(plain, hashed string) bool
}

// bcryptHasher 基于bcrypt的实现
// 学习要点：
// - bcrypt自动加盐，同一密码每次哈希结果不同，所以比较必须用Check而不是字符串相等
// - cost每+1耗时翻倍
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher cost不在合法范围时使用bcrypt.DefaultCost
func NewBcryptHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", apperrors.Wrap(err, "密码加密失败")
	}
	return string(hashed), nil
}

func (h *bcryptHasher) Check(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
