package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/category"
	"github.com/xiebiao/bookcatalog/internal/domain/listing"
	"github.com/xiebiao/bookcatalog/internal/domain/patch"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓储
func NewCategoryRepository(db *gorm.DB) category.Repository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, c *category.Category) error {
	model := &CategoryModel{Name: c.Name}
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return category.ErrNameDuplicate
		}
		return apperrors.Wrap(err, "创建分类失败")
	}

	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*category.Category, error) {
	var model CategoryModel
	if err := conn(ctx, r.db).First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(err, "查询分类失败")
	}
	return toCategoryEntity(&model), nil
}

func (r *categoryRepository) FindByName(ctx context.Context, name string) (*category.Category, error) {
	var model CategoryModel
	if err := conn(ctx, r.db).Where("name = ?", name).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(err, "查询分类失败")
	}
	return toCategoryEntity(&model), nil
}

func (r *categoryRepository) List(ctx context.Context, pred listing.Predicate) ([]*category.Category, int64, error) {
	models, total, err := listModels[CategoryModel](conn(ctx, r.db), pred)
	if err != nil {
		return nil, 0, wrapError(err, "查询分类列表失败")
	}

	list := make([]*category.Category, 0, len(models))
	for i := range models {
		list = append(list, toCategoryEntity(&models[i]))
	}
	return list, total, nil
}

func (r *categoryRepository) Update(ctx context.Context, id uint, changes patch.Set) error {
	if changes.Empty() {
		return nil
	}

	affected, err := updateColumns[CategoryModel](conn(ctx, r.db), id, changes)
	if err != nil {
		if isDuplicateError(err) {
			return category.ErrNameDuplicate
		}
		return apperrors.Wrap(err, "更新分类失败")
	}
	if affected == 0 {
		return category.ErrCategoryNotFound
	}
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	result := conn(ctx, r.db).Delete(&CategoryModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除分类失败")
	}
	if result.RowsAffected == 0 {
		return category.ErrCategoryNotFound
	}
	return nil
}

func (r *categoryRepository) DeleteByIDs(ctx context.Context, ids []uint) (int64, error) {
	n, err := deleteByIDs[CategoryModel](conn(ctx, r.db), ids)
	if err != nil {
		return 0, apperrors.Wrap(err, "批量删除分类失败")
	}
	return n, nil
}

func (r *categoryRepository) DeleteAll(ctx context.Context) (int64, error) {
	n, err := deleteAll[CategoryModel](conn(ctx, r.db))
	if err != nil {
		return 0, apperrors.Wrap(err, "清空分类失败")
	}
	return n, nil
}

func toCategoryEntity(model *CategoryModel) *category.Category {
	return &category.Category{
		ID:        model.ID,
		Name:      model.Name,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
