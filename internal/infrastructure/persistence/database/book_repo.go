package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/listing"
	"github.com/xiebiao/bookcatalog/internal/domain/patch"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// bookRepository 图书仓储实现
// 学习要点：
// 1. 查询详情和列表都预加载分类、出版社和图片，避免N+1
// 2. 图片按id排序，保证与创建顺序一致
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// withAssociations 预加载图书的只读关联
func withAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Category").
		Preload("Publisher").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		})
}

func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := &BookModel{
		Name:            b.Name,
		Description:     b.Description,
		Price:           b.Price,
		QuantitySold:    b.QuantitySold,
		QuantityInStock: b.QuantityInStock,
		CategoryID:      b.CategoryID,
		PublisherID:     b.PublisherID,
	}

	if err := conn(ctx, r.db).Omit("Category", "Publisher", "Images").Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrNameDuplicate
		}
		return apperrors.Wrap(err, "创建图书失败")
	}

	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	if err := conn(ctx, r.db).Scopes(withAssociations).First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

// FindByName 书名唯一性检查使用，不加载关联
func (r *bookRepository) FindByName(ctx context.Context, name string) (*book.Book, error) {
	var model BookModel
	if err := conn(ctx, r.db).Where("name = ?", name).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

func (r *bookRepository) List(ctx context.Context, pred listing.Predicate) ([]*book.Book, int64, error) {
	models, total, err := listModels[BookModel](conn(ctx, r.db), pred, withAssociations)
	if err != nil {
		return nil, 0, wrapError(err, "查询图书列表失败")
	}

	books := make([]*book.Book, 0, len(models))
	for i := range models {
		books = append(books, toBookEntity(&models[i]))
	}
	return books, total, nil
}

func (r *bookRepository) Update(ctx context.Context, id uint, changes patch.Set) error {
	if changes.Empty() {
		return nil
	}

	affected, err := updateColumns[BookModel](conn(ctx, r.db), id, changes)
	if err != nil {
		if isDuplicateError(err) {
			return book.ErrNameDuplicate
		}
		return apperrors.Wrap(err, "更新图书失败")
	}
	if affected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := conn(ctx, r.db).Delete(&BookModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除图书失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

func (r *bookRepository) DeleteByIDs(ctx context.Context, ids []uint) (int64, error) {
	n, err := deleteByIDs[BookModel](conn(ctx, r.db), ids)
	if err != nil {
		return 0, apperrors.Wrap(err, "批量删除图书失败")
	}
	return n, nil
}

func (r *bookRepository) DeleteAll(ctx context.Context) (int64, error) {
	n, err := deleteAll[BookModel](conn(ctx, r.db))
	if err != nil {
		return 0, apperrors.Wrap(err, "清空图书失败")
	}
	return n, nil
}

// ClearReference 把指向parentIDs的外键批量置为NULL
// UPDATE books SET category_id = NULL WHERE category_id IN (...)
func (r *bookRepository) ClearReference(ctx context.Context, ref book.Reference, parentIDs []uint) (int64, error) {
	if len(parentIDs) == 0 {
		return 0, nil
	}

	db := conn(ctx, r.db)
	col := column(db, string(ref)).Name
	result := db.Model(&BookModel{}).Where(col+" IN ?", parentIDs).Update(col, nil)
	if result.Error != nil {
		return 0, apperrors.Wrap(result.Error, "解除图书关联失败")
	}
	return result.RowsAffected, nil
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	b := &book.Book{
		ID:              model.ID,
		Name:            model.Name,
		Description:     model.Description,
		Price:           model.Price,
		QuantitySold:    model.QuantitySold,
		QuantityInStock: model.QuantityInStock,
		CategoryID:      model.CategoryID,
		PublisherID:     model.PublisherID,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
		Images:          make([]book.Image, 0, len(model.Images)),
	}

	if model.Category != nil {
		b.Category = &book.Ref{ID: model.Category.ID, Name: model.Category.Name}
	}
	if model.Publisher != nil {
		b.Publisher = &book.Ref{ID: model.Publisher.ID, Name: model.Publisher.Name}
	}
	for _, img := range model.Images {
		b.Images = append(b.Images, toImageEntity(img))
	}
	return b
}
