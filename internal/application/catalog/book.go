package catalog

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/category"
	"github.com/xiebiao/bookcatalog/internal/domain/event"
	"github.com/xiebiao/bookcatalog/internal/domain/listing"
	"github.com/xiebiao/bookcatalog/internal/domain/publisher"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/database"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

const resourceBook = "book"

// BookUseCase 图书用例
// 教学要点:
// 1. 新增和编辑图书在一个事务里完成:检查分类/出版社存在、写图书行、调整图片
// 2. 删除经过Cascade,图片先于图书删除
type BookUseCase struct {
	service    book.Service
	categories category.Repository
	publishers publisher.Repository
	cascade    *Cascade
	txManager  *database.TxManager
	events     event.Publisher
}

// NewBookUseCase 创建图书用例
func NewBookUseCase(
	service book.Service,
	categories category.Repository,
	publishers publisher.Repository,
	cascade *Cascade,
	txManager *database.TxManager,
	events event.Publisher,
) *BookUseCase {
	return &BookUseCase{
		service:    service,
		categories: categories,
		publishers: publishers,
		cascade:    cascade,
		txManager:  txManager,
		events:     events,
	}
}

// CreateBookInput 新增图书参数
type CreateBookInput struct {
	Name            string
	Description     string
	Price           float64
	QuantitySold    int
	QuantityInStock int
	CategoryID      *uint
	PublisherID     *uint
	Images          []string
}

// List 按书名搜索,支持价格区间
func (uc *BookUseCase) List(ctx context.Context, raw listing.RawQuery) (*listing.Page[*book.Book], error) {
	return paginate(ctx, raw, uc.service.List)
}

// Get 图书详情(含分类、出版社、图片)
func (uc *BookUseCase) Get(ctx context.Context, id uint) (*book.Book, error) {
	return uc.service.GetByID(ctx, id)
}

// Create 新增图书
// 流程:
// 1. 构造实体,校验价格和数量
// 2. 事务内检查分类/出版社存在,写入图书和图片
// 3. 提交后发布created事件
func (uc *BookUseCase) Create(ctx context.Context, in CreateBookInput) (b *book.Book, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "BookUseCase.Create")
	defer func() { tracing.EndSpan(span, err) }()

	entity, err := book.NewBook(in.Name, in.Description, in.Price, in.QuantitySold, in.QuantityInStock, in.CategoryID, in.PublisherID)
	if err != nil {
		return nil, err
	}

	err = uc.txManager.Transaction(ctx, func(ctx context.Context) error {
		if err := uc.ensureReferences(ctx, in.CategoryID, in.PublisherID); err != nil {
			return err
		}
		created, err := uc.service.Create(ctx, entity, in.Images)
		if err != nil {
			return err
		}
		b = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	publishCreated(ctx, uc.events, resourceBook, b.ID)
	return b, nil
}

// Edit 部分更新图书,Images非nil时按列表调整图片
func (uc *BookUseCase) Edit(ctx context.Context, id uint, p book.Patch) (b *book.Book, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "BookUseCase.Edit")
	defer func() { tracing.EndSpan(span, err) }()

	err = uc.txManager.Transaction(ctx, func(ctx context.Context) error {
		if err := uc.ensureReferences(ctx, p.CategoryID, p.PublisherID); err != nil {
			return err
		}
		updated, err := uc.service.Edit(ctx, id, p)
		if err != nil {
			return err
		}
		b = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (uc *BookUseCase) Delete(ctx context.Context, id uint) (err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "BookUseCase.Delete")
	defer func() { tracing.EndSpan(span, err) }()

	if err = uc.cascade.DeleteBook(ctx, id); err != nil {
		return err
	}
	recordDeleted(ctx, uc.events, resourceBook, modeSingle, []uint{id}, 1)
	return nil
}

func (uc *BookUseCase) DeleteMany(ctx context.Context, ids []uint) (n int64, err error) {
	if err := validateIDs(ids); err != nil {
		return 0, err
	}

	ctx, span := tracing.StartSpan(ctx, tracerName, "BookUseCase.DeleteMany")
	defer func() { tracing.EndSpan(span, err) }()

	if n, err = uc.cascade.DeleteBooks(ctx, ids); err != nil {
		return 0, err
	}
	recordDeleted(ctx, uc.events, resourceBook, modeMany, ids, n)
	return n, nil
}

// DeleteAll 清空全部图书和图片
func (uc *BookUseCase) DeleteAll(ctx context.Context) (n int64, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "BookUseCase.DeleteAll")
	defer func() { tracing.EndSpan(span, err) }()

	if n, err = uc.cascade.Wipe(ctx, nil); err != nil {
		return 0, err
	}
	recordDeleted(ctx, uc.events, resourceBook, modeAll, nil, n)
	return n, nil
}

// ensureReferences 提供了分类/出版社id时必须存在
func (uc *BookUseCase) ensureReferences(ctx context.Context, categoryID, publisherID *uint) error {
	if categoryID != nil {
		if _, err := uc.categories.FindByID(ctx, *categoryID); err != nil {
			return err
		}
	}
	if publisherID != nil {
		if _, err := uc.publishers.FindByID(ctx, *publisherID); err != nil {
			return err
		}
	}
	return nil
}
