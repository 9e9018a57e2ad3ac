package catalog

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/category"
	"github.com/xiebiao/bookcatalog/internal/domain/event"
	"github.com/xiebiao/bookcatalog/internal/domain/listing"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

const resourceCategory = "category"

// CategoryUseCase 分类用例
// 查询和编辑交给领域服务,删除经过Cascade先解除图书的分类引用
type CategoryUseCase struct {
	service category.Service
	repo    category.Repository
	cascade *Cascade
	events  event.Publisher
}

// NewCategoryUseCase 创建分类用例
func NewCategoryUseCase(
	service category.Service,
	repo category.Repository,
	cascade *Cascade,
	events event.Publisher,
) *CategoryUseCase {
	return &CategoryUseCase{
		service: service,
		repo:    repo,
		cascade: cascade,
		events:  events,
	}
}

// List 分页查询,search为数字时按id精确匹配
func (uc *CategoryUseCase) List(ctx context.Context, raw listing.RawQuery) (*listing.Page[*category.Category], error) {
	return paginate(ctx, raw, uc.service.List)
}

func (uc *CategoryUseCase) Get(ctx context.Context, id uint) (*category.Category, error) {
	return uc.service.GetByID(ctx, id)
}

func (uc *CategoryUseCase) Create(ctx context.Context, name string) (c *category.Category, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "CategoryUseCase.Create")
	defer func() { tracing.EndSpan(span, err) }()

	c, err = uc.service.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	publishCreated(ctx, uc.events, resourceCategory, c.ID)
	return c, nil
}

// Edit 部分更新,没有变化时不写库
func (uc *CategoryUseCase) Edit(ctx context.Context, id uint, p category.Patch) (c *category.Category, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "CategoryUseCase.Edit")
	defer func() { tracing.EndSpan(span, err) }()

	return uc.service.Edit(ctx, id, p)
}

// Delete 删除单个分类,引用它的图书分类置空
func (uc *CategoryUseCase) Delete(ctx context.Context, id uint) (err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "CategoryUseCase.Delete")
	defer func() { tracing.EndSpan(span, err) }()

	if err = uc.cascade.DeleteParent(ctx, book.RefCategory, uc.repo, id); err != nil {
		return err
	}
	recordDeleted(ctx, uc.events, resourceCategory, modeSingle, []uint{id}, 1)
	return nil
}

// DeleteMany 按id列表删除,返回实际删除的数量
func (uc *CategoryUseCase) DeleteMany(ctx context.Context, ids []uint) (n int64, err error) {
	if err := validateIDs(ids); err != nil {
		return 0, err
	}

	ctx, span := tracing.StartSpan(ctx, tracerName, "CategoryUseCase.DeleteMany")
	defer func() { tracing.EndSpan(span, err) }()

	if n, err = uc.cascade.DeleteParents(ctx, book.RefCategory, uc.repo, ids); err != nil {
		return 0, err
	}
	recordDeleted(ctx, uc.events, resourceCategory, modeMany, ids, n)
	return n, nil
}

// DeleteAll 清空分类
// 注意:会同时删除全部图书和图片
func (uc *CategoryUseCase) DeleteAll(ctx context.Context) (n int64, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "CategoryUseCase.DeleteAll")
	defer func() { tracing.EndSpan(span, err) }()

	if n, err = uc.cascade.Wipe(ctx, uc.repo); err != nil {
		return 0, err
	}
	recordDeleted(ctx, uc.events, resourceCategory, modeAll, nil, n)
	return n, nil
}
