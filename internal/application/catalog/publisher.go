package catalog

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/event"
	"github.com/xiebiao/bookcatalog/internal/domain/listing"
	"github.com/xiebiao/bookcatalog/internal/domain/publisher"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

const resourcePublisher = "publisher"

// PublisherUseCase 出版社用例
type PublisherUseCase struct {
	service publisher.Service
	repo    publisher.Repository
	cascade *Cascade
	events  event.Publisher
}

// NewPublisherUseCase 创建出版社用例
func NewPublisherUseCase(
	service publisher.Service,
	repo publisher.Repository,
	cascade *Cascade,
	events event.Publisher,
) *PublisherUseCase {
	return &PublisherUseCase{
		service: service,
		repo:    repo,
		cascade: cascade,
		events:  events,
	}
}

func (uc *PublisherUseCase) List(ctx context.Context, raw listing.RawQuery) (*listing.Page[*publisher.Publisher], error) {
	return paginate(ctx, raw, uc.service.List)
}

func (uc *PublisherUseCase) Get(ctx context.Context, id uint) (*publisher.Publisher, error) {
	return uc.service.GetByID(ctx, id)
}

func (uc *PublisherUseCase) Create(ctx context.Context, name, information string) (pub *publisher.Publisher, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "PublisherUseCase.Create")
	defer func() { tracing.EndSpan(span, err) }()

	pub, err = uc.service.Create(ctx, name, information)
	if err != nil {
		return nil, err
	}
	publishCreated(ctx, uc.events, resourcePublisher, pub.ID)
	return pub, nil
}

// Edit 部分更新,没有变化时不写库
func (uc *PublisherUseCase) Edit(ctx context.Context, id uint, p publisher.Patch) (pub *publisher.Publisher, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "PublisherUseCase.Edit")
	defer func() { tracing.EndSpan(span, err) }()

	return uc.service.Edit(ctx, id, p)
}

// Delete 删除单个出版社,引用它的图书出版社置空
func (uc *PublisherUseCase) Delete(ctx context.Context, id uint) (err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "PublisherUseCase.Delete")
	defer func() { tracing.EndSpan(span, err) }()

	if err = uc.cascade.DeleteParent(ctx, book.RefPublisher, uc.repo, id); err != nil {
		return err
	}
	recordDeleted(ctx, uc.events, resourcePublisher, modeSingle, []uint{id}, 1)
	return nil
}

// DeleteMany 按id列表删除,返回实际删除的数量
func (uc *PublisherUseCase) DeleteMany(ctx context.Context, ids []uint) (n int64, err error) {
	if err := validateIDs(ids); err != nil {
		return 0, err
	}

	ctx, span := tracing.StartSpan(ctx, tracerName, "PublisherUseCase.DeleteMany")
	defer func() { tracing.EndSpan(span, err) }()

	if n, err = uc.cascade.DeleteParents(ctx, book.RefPublisher, uc.repo, ids); err != nil {
		return 0, err
	}
	recordDeleted(ctx, uc.events, resourcePublisher, modeMany, ids, n)
	return n, nil
}

// DeleteAll 清空出版社
// 注意:会同时删除全部图书和图片
func (uc *PublisherUseCase) DeleteAll(ctx context.Context) (n int64, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "PublisherUseCase.DeleteAll")
	defer func() { tracing.EndSpan(span, err) }()

	if n, err = uc.cascade.Wipe(ctx, uc.repo); err != nil {
		return 0, err
	}
	recordDeleted(ctx, uc.events, resourcePublisher, modeAll, nil, n)
	return n, nil
}
