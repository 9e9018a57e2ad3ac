package book

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/listing"
	"github.com/xiebiao/bookcatalog/internal/domain/patch"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 所有方法都从ctx中取事务,应用层可以把多次调用放进同一个事务
type Repository interface {
	Create(ctx context.Context, b *Book) error

	// FindByID 查询图书详情(含分类、出版社、图片)
	FindByID(ctx context.Context, id uint) (*Book, error)

	FindByName(ctx context.Context, name string) (*Book, error)

	// List 分页查询,同时返回满足谓词的总数
	List(ctx context.Context, pred listing.Predicate) ([]*Book, int64, error)

	// Update 只写入变更集中的字段
	Update(ctx context.Context, id uint, changes patch.Set) error

	Delete(ctx context.Context, id uint) error

	DeleteByIDs(ctx context.Context, ids []uint) (int64, error)

	// DeleteAll 清空图书表(调用方负责先清空图片)
	DeleteAll(ctx context.Context) (int64, error)

	// ClearReference 把引用了parentIDs的图书外键置空
	// 没有匹配的图书时是无操作
	ClearReference(ctx context.Context, ref Reference, parentIDs []uint) (int64, error)
}

// ImageRepository 图书图片仓储
type ImageRepository interface {
	ListByBook(ctx context.Context, bookID uint) ([]Image, error)

	// Create 为图书批量新增图片
	Create(ctx context.Context, bookID uint, sources []string) error

	// UpdateSource 原地覆盖一张图片的地址
	UpdateSource(ctx context.Context, id uint, source string) error

	DeleteByIDs(ctx context.Context, ids []uint) error

	// DeleteByBooks 删除这些图书的全部图片
	DeleteByBooks(ctx context.Context, bookIDs []uint) (int64, error)

	DeleteAll(ctx context.Context) (int64, error)
}
