package user

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/listing"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// ErrEmptyIDList 批量删除用户时没有给出id
var ErrEmptyIDList = apperrors.ErrInvalidParams.WithMessage("listIds不能为空")

// UserUseCase 用户管理用例（列表、详情、后台新增、编辑、删除）
// 用户不拥有图书，删除时没有级联
type UserUseCase struct {
	userService user.Service
}

// NewUserUseCase 创建用户管理用例
func NewUserUseCase(userService user.Service) *UserUseCase {
	return &UserUseCase{userService: userService}
}

// List 在名和姓之间搜索
func (uc *UserUseCase) List(ctx context.Context, raw listing.RawQuery) (*listing.Page[*user.User], error) {
	f := listing.Normalize(raw)
	users, total, err := uc.userService.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return listing.NewPage(users, f, total), nil
}

func (uc *UserUseCase) Get(ctx context.Context, id uint) (*user.User, error) {
	return uc.userService.GetByID(ctx, id)
}

// Create 后台新增用户，规则与注册相同
func (uc *UserUseCase) Create(ctx context.Context, req RegisterRequest) (*user.User, error) {
	return uc.userService.Register(ctx, req.Email, req.Password, req.FirstName, req.LastName)
}

func (uc *UserUseCase) Edit(ctx context.Context, id uint, p user.Patch) (*user.User, error) {
	return uc.userService.Edit(ctx, id, p)
}

// ChangePassword 只能修改自己的密码
func (uc *UserUseCase) ChangePassword(ctx context.Context, callerID, id uint, oldPassword, newPassword string) error {
	return uc.userService.ChangePassword(ctx, callerID, id, oldPassword, newPassword)
}

func (uc *UserUseCase) Delete(ctx context.Context, id uint) error {
	if err := uc.userService.Delete(ctx, id); err != nil {
		return err
	}
	metrics.RecordDelete("user", "single", 1)
	return nil
}

func (uc *UserUseCase) DeleteMany(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, ErrEmptyIDList
	}
	n, err := uc.userService.DeleteMany(ctx, ids)
	if err != nil {
		return 0, err
	}
	metrics.RecordDelete("user", "many", n)
	return n, nil
}

// DeleteAll 清空用户表
func (uc *UserUseCase) DeleteAll(ctx context.Context) (int64, error) {
	n, err := uc.userService.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	metrics.RecordDelete("user", "all", n)
	return n, nil
}
