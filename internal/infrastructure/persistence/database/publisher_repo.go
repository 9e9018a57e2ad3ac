package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/listing"
	"github.com/xiebiao/bookcatalog/internal/domain/patch"
	"github.com/xiebiao/bookcatalog/internal/domain/publisher"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

type publisherRepository struct {
	db *gorm.DB
}

// NewPublisherRepository 创建出版社仓储
func NewPublisherRepository(db *gorm.DB) publisher.Repository {
	return &publisherRepository{db: db}
}

func (r *publisherRepository) Create(ctx context.Context, p *publisher.Publisher) error {
	model := &PublisherModel{Name: p.Name, Information: p.Information}
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return publisher.ErrNameDuplicate
		}
		return apperrors.Wrap(err, "创建出版社失败")
	}

	p.ID = model.ID
	p.CreatedAt = model.CreatedAt
	p.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *publisherRepository) FindByID(ctx context.Context, id uint) (*publisher.Publisher, error) {
	var model PublisherModel
	if err := conn(ctx, r.db).First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return nil, publisher.ErrPublisherNotFound
		}
		return nil, apperrors.Wrap(err, "查询出版社失败")
	}
	return toPublisherEntity(&model), nil
}

func (r *publisherRepository) FindByName(ctx context.Context, name string) (*publisher.Publisher, error) {
	var model PublisherModel
	if err := conn(ctx, r.db).Where("name = ?", name).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, publisher.ErrPublisherNotFound
		}
		return nil, apperrors.Wrap(err, "查询出版社失败")
	}
	return toPublisherEntity(&model), nil
}

func (r *publisherRepository) List(ctx context.Context, pred listing.Predicate) ([]*publisher.Publisher, int64, error) {
	models, total, err := listModels[PublisherModel](conn(ctx, r.db), pred)
	if err != nil {
		return nil, 0, wrapError(err, "查询出版社列表失败")
	}

	list := make([]*publisher.Publisher, 0, len(models))
	for i := range models {
		list = append(list, toPublisherEntity(&models[i]))
	}
	return list, total, nil
}

func (r *publisherRepository) Update(ctx context.Context, id uint, changes patch.Set) error {
	if changes.Empty() {
		return nil
	}

	affected, err := updateColumns[PublisherModel](conn(ctx, r.db), id, changes)
	if err != nil {
		if isDuplicateError(err) {
			return publisher.ErrNameDuplicate
		}
		return apperrors.Wrap(err, "更新出版社失败")
	}
	if affected == 0 {
		return publisher.ErrPublisherNotFound
	}
	return nil
}

func (r *publisherRepository) Delete(ctx context.Context, id uint) error {
	result := conn(ctx, r.db).Delete(&PublisherModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除出版社失败")
	}
	if result.RowsAffected == 0 {
		return publisher.ErrPublisherNotFound
	}
	return nil
}

func (r *publisherRepository) DeleteByIDs(ctx context.Context, ids []uint) (int64, error) {
	n, err := deleteByIDs[PublisherModel](conn(ctx, r.db), ids)
	if err != nil {
		return 0, apperrors.Wrap(err, "批量删除出版社失败")
	}
	return n, nil
}

func (r *publisherRepository) DeleteAll(ctx context.Context) (int64, error) {
	n, err := deleteAll[PublisherModel](conn(ctx, r.db))
	if err != nil {
		return 0, apperrors.Wrap(err, "清空出版社失败")
	}
	return n, nil
}

func toPublisherEntity(model *PublisherModel) *publisher.Publisher {
	return &publisher.Publisher{
		ID:          model.ID,
		Name:        model.Name,
		Information: model.Information,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
