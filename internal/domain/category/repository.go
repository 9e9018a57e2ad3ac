package category

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/listing"
	"github.com/xiebiao/bookcatalog/internal/domain/patch"
)

// Repository 分类仓储接口
// 查不到记录时返回ErrCategoryNotFound
type Repository interface {
	Create(ctx context.Context, c *Category) error

	FindByID(ctx context.Context, id uint) (*Category, error)

	FindByName(ctx context.Context, name string) (*Category, error)

	// List 按谓词分页查询，同时返回满足条件的总数
	List(ctx context.Context, pred listing.Predicate) ([]*Category, int64, error)

	// Update 只写入变更集中的字段
	Update(ctx context.Context, id uint, changes patch.Set) error

	// Delete 删除单个分类，记录不存在返回ErrCategoryNotFound
	Delete(ctx context.Context, id uint) error

	// DeleteByIDs 批量删除，不存在的id直接忽略，返回实际删除行数
	DeleteByIDs(ctx context.Context, ids []uint) (int64, error)

	// DeleteAll 清空分类表
	DeleteAll(ctx context.Context) (int64, error)
}
