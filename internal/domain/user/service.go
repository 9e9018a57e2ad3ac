package user

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/xiebiao/bookcatalog/internal/domain/listing"
	"github.com/xiebiao/bookcatalog/internal/domain/patch"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// Service 用户领域服务
// 设计说明：
// 1. 密码加密、比对通过PasswordHasher完成，测试时可替换
// 2. 邮箱唯一性先查后写，数据库唯一索引兜底并发场景
type Service interface {
	// Register 注册或后台新增用户
	Register(ctx context.Context, email, password, firstName, lastName string) (*User, error)

	// Authenticate 校验邮箱和密码，失败统一返回ErrInvalidCredentials
	Authenticate(ctx context.Context, email, password string) (*User, error)

	GetByID(ctx context.Context, id uint) (*User, error)

	List(ctx context.Context, f listing.Filter) ([]*User, int64, error)

	// Edit 部分更新用户资料
	Edit(ctx context.Context, id uint, p Patch) (*User, error)

	// ChangePassword 修改密码，只允许本人操作
	ChangePassword(ctx context.Context, callerID, id uint, oldPassword, newPassword string) error

	Delete(ctx context.Context, id uint) error

	DeleteMany(ctx context.Context, ids []uint) (int64, error)

	// DeleteAll 清空用户表
	DeleteAll(ctx context.Context) (int64, error)
}

type service struct {
	repo   Repository
	hasher PasswordHasher
}

// NewService 创建用户服务
func NewService(repo Repository, hasher PasswordHasher) Service {
	return &service{repo: repo, hasher: hasher}
}

// Register 用户注册
// 业务规则：
// 1. 邮箱格式校验，密码至少8位
// 2. 邮箱不能重复
// 3. 密码加密后保存
func (s *service) Register(ctx context.Context, email, password, firstName, lastName string) (*User, error) {
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if strings.TrimSpace(firstName) == "" || strings.TrimSpace(lastName) == "" {
		return nil, ErrInvalidName
	}

	if err := s.ensureEmailAvailable(ctx, email, 0); err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	u := NewUser(email, hashed, firstName, lastName)
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate 登录校验
// 邮箱不存在和密码错误返回同一个错误，避免暴露哪些邮箱已注册
func (s *service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !s.hasher.Check(password, u.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return u, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) List(ctx context.Context, f listing.Filter) ([]*User, int64, error) {
	return s.repo.List(ctx, listing.Build(f, ListSpec))
}

// Edit 编辑用户
// 1. 读取当前记录并计算变更集（密码与当前哈希比对）
// 2. 变更集为空不写库
// 3. 邮箱变化时检查是否被其他用户占用
func (s *service) Edit(ctx context.Context, id uint, p Patch) (*User, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changes, err := p.Diff(current, s.hasher)
	if err != nil {
		return nil, err
	}
	if changes.Empty() {
		return current, nil
	}

	if changes.Has(FieldEmail) {
		if err := s.ensureEmailAvailable(ctx, *p.Email, id); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, id, changes); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// ChangePassword 修改密码
// 1. 用户不存在 → NotFound
// 2. 不是本人 → Forbidden
// 3. 旧密码不匹配 → InvalidInput
func (s *service) ChangePassword(ctx context.Context, callerID, id uint, oldPassword, newPassword string) error {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !u.IsOwnedBy(callerID) {
		return ErrNotOwner
	}

	if err := validatePassword(newPassword); err != nil {
		return err
	}

	if !s.hasher.Check(oldPassword, u.Password) {
		return ErrOldPasswordMismatch
	}

	hashed, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, id, patch.Set{FieldPassword: hashed})
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) DeleteMany(ctx context.Context, ids []uint) (int64, error) {
	return s.repo.DeleteByIDs(ctx, ids)
}

func (s *service) DeleteAll(ctx context.Context) (int64, error) {
	return s.repo.DeleteAll(ctx)
}

func (s *service) ensureEmailAvailable(ctx context.Context, email string, selfID uint) error {
	existing, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != selfID {
		return ErrEmailDuplicate
	}
	return nil
}

// =========================================
// 辅助函数：业务规则校验
// =========================================

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func isValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// validatePassword bcrypt只使用前72字节，超出部分会被忽略，所以直接拒绝
func validatePassword(password string) error {
	if len(password) < 8 || len(password) > 72 {
		return ErrWeakPassword
	}
	return nil
}
