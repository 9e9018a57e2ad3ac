package user

import (
	"strings"

	"github.com/xiebiao/bookcatalog/internal/domain/patch"
)

// Patch 用户编辑请求
type Patch struct {
	Email     *string
	Password  *string
	FirstName *string
	LastName  *string
}

func (p Patch) Validate() error {
	if p.Email != nil && !isValidEmail(*p.Email) {
		return ErrInvalidEmail
	}
	if p.Password != nil {
		if err := validatePassword(*p.Password); err != nil {
			return err
		}
	}
	if (p.FirstName != nil && strings.TrimSpace(*p.FirstName) == "") ||
		(p.LastName != nil && strings.TrimSpace(*p.LastName) == "") {
		return ErrInvalidName
	}
	return nil
}

// Diff 计算用户变更集
// 密码特殊处理：存的是哈希，只能用hasher.Check判断是否与当前密码相同；
// 不同才重新加密后放进变更集，明文永远不会进入变更集
func (p Patch) Diff(u *User, hasher PasswordHasher) (patch.Set, error) {
	s := patch.Set{}
	patch.Put(s, FieldEmail, p.Email, u.Email)
	patch.Put(s, FieldFirstName, p.FirstName, u.FirstName)
	patch.Put(s, FieldLastName, p.LastName, u.LastName)

	if p.Password != nil && !hasher.Check(*p.Password, u.Password) {
		hashed, err := hasher.Hash(*p.Password)
		if err != nil {
			return nil, err
		}
		s[FieldPassword] = hashed
	}
	return s, nil
}
