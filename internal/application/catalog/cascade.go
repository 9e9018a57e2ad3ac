package catalog

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/database"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// parentStore 分类/出版社仓储中与删除有关的方法
type parentStore interface {
	Delete(ctx context.Context, id uint) error
	DeleteByIDs(ctx context.Context, ids []uint) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// Cascade 级联安全的删除
// 教学要点:
// 1. 图书对分类/出版社是可空引用:删除父记录前先把图书外键置空,图书保留
// 2. 图片从属于图书:删除图书前先删除它的图片
// 3. 每个删除序列都在一个事务里,任何一步失败整体回滚
type Cascade struct {
	tx     *database.TxManager
	books  book.Repository
	images book.ImageRepository
}

// NewCascade 创建级联删除器
func NewCascade(tx *database.TxManager, books book.Repository, images book.ImageRepository) *Cascade {
	return &Cascade{tx: tx, books: books, images: images}
}

// DeleteParent 删除单个分类/出版社
// 记录不存在时返回store的NotFound错误,已经置空的外键随事务回滚
func (c *Cascade) DeleteParent(ctx context.Context, ref book.Reference, store parentStore, id uint) error {
	return c.tx.Transaction(ctx, func(ctx context.Context) error {
		detached, err := c.books.ClearReference(ctx, ref, []uint{id})
		if err != nil {
			return err
		}
		if err := store.Delete(ctx, id); err != nil {
			return err
		}
		metrics.RecordDetached(string(ref), detached)
		return nil
	})
}

// DeleteParents 按id列表删除,不存在的id直接忽略
func (c *Cascade) DeleteParents(ctx context.Context, ref book.Reference, store parentStore, ids []uint) (int64, error) {
	var deleted int64
	err := c.tx.Transaction(ctx, func(ctx context.Context) error {
		detached, err := c.books.ClearReference(ctx, ref, ids)
		if err != nil {
			return err
		}
		if deleted, err = store.DeleteByIDs(ctx, ids); err != nil {
			return err
		}
		metrics.RecordDetached(string(ref), detached)
		return nil
	})
	return deleted, err
}

// DeleteBook 先删图片再删图书
func (c *Cascade) DeleteBook(ctx context.Context, id uint) error {
	return c.tx.Transaction(ctx, func(ctx context.Context) error {
		if _, err := c.images.DeleteByBooks(ctx, []uint{id}); err != nil {
			return err
		}
		return c.books.Delete(ctx, id)
	})
}

// DeleteBooks 按id列表删除图书及其图片
func (c *Cascade) DeleteBooks(ctx context.Context, ids []uint) (int64, error) {
	var deleted int64
	err := c.tx.Transaction(ctx, func(ctx context.Context) error {
		if _, err := c.images.DeleteByBooks(ctx, ids); err != nil {
			return err
		}
		var err error
		deleted, err = c.books.DeleteByIDs(ctx, ids)
		return err
	})
	return deleted, err
}

// Wipe 清空全部图片和图书,store非nil时再清空该表
// 返回目标表被删除的行数(store为nil时是图书数)
func (c *Cascade) Wipe(ctx context.Context, store parentStore) (int64, error) {
	var deleted int64
	err := c.tx.Transaction(ctx, func(ctx context.Context) error {
		if _, err := c.images.DeleteAll(ctx); err != nil {
			return err
		}
		books, err := c.books.DeleteAll(ctx)
		if err != nil {
			return err
		}
		if store == nil {
			deleted = books
			return nil
		}
		deleted, err = store.DeleteAll(ctx)
		return err
	})
	return deleted, err
}
