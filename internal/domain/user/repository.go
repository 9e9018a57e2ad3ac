package user

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/listing"
	"github.com/xiebiao/bookcatalog/internal/domain/patch"
)

// Repository 用户仓储接口
// 1. 接口定义在domain层（依赖倒置原则）
// 2. 查不到记录返回ErrUserNotFound，邮箱唯一索引冲突返回ErrEmailDuplicate
type Repository interface {
	Create(ctx context.Context, user *User) error

	FindByID(ctx context.Context, id uint) (*User, error)

	FindByEmail(ctx context.Context, email string) (*User, error)

	List(ctx context.Context, pred listing.Predicate) ([]*User, int64, error)

	Update(ctx context.Context, id uint, changes patch.Set) error

	Delete(ctx context.Context, id uint) error

	DeleteByIDs(ctx context.Context, ids []uint) (int64, error)

	DeleteAll(ctx context.Context) (int64, error)
}
