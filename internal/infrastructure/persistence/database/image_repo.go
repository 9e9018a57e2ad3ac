package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

type imageRepository struct {
	db *gorm.DB
}

// NewImageRepository 创建图书图片仓储
func NewImageRepository(db *gorm.DB) book.ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) ListByBook(ctx context.Context, bookID uint) ([]book.Image, error) {
	var models []ImageModel
	if err := conn(ctx, r.db).Where("book_id = ?", bookID).Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询图书图片失败")
	}

	images := make([]book.Image, 0, len(models))
	for _, m := range models {
		images = append(images, toImageEntity(m))
	}
	return images, nil
}

// Create 一条INSERT写入多张图片
func (r *imageRepository) Create(ctx context.Context, bookID uint, sources []string) error {
	if len(sources) == 0 {
		return nil
	}

	models := make([]ImageModel, 0, len(sources))
	for _, src := range sources {
		models = append(models, ImageModel{Source: src, BookID: bookID})
	}
	if err := conn(ctx, r.db).Create(&models).Error; err != nil {
		return apperrors.Wrap(err, "保存图书图片失败")
	}
	return nil
}

func (r *imageRepository) UpdateSource(ctx context.Context, id uint, source string) error {
	if err := conn(ctx, r.db).Model(&ImageModel{}).Where("id = ?", id).Update("source", source).Error; err != nil {
		return apperrors.Wrap(err, "更新图书图片失败")
	}
	return nil
}

func (r *imageRepository) DeleteByIDs(ctx context.Context, ids []uint) error {
	if _, err := deleteByIDs[ImageModel](conn(ctx, r.db), ids); err != nil {
		return apperrors.Wrap(err, "删除图书图片失败")
	}
	return nil
}

func (r *imageRepository) DeleteByBooks(ctx context.Context, bookIDs []uint) (int64, error) {
	if len(bookIDs) == 0 {
		return 0, nil
	}

	result := conn(ctx, r.db).Where("book_id IN ?", bookIDs).Delete(&ImageModel{})
	if result.Error != nil {
		return 0, apperrors.Wrap(result.Error, "删除图书图片失败")
	}
	return result.RowsAffected, nil
}

func (r *imageRepository) DeleteAll(ctx context.Context) (int64, error) {
	n, err := deleteAll[ImageModel](conn(ctx, r.db))
	if err != nil {
		return 0, apperrors.Wrap(err, "清空图书图片失败")
	}
	return n, nil
}

func toImageEntity(m ImageModel) book.Image {
	return book.Image{ID: m.ID, Source: m.Source, BookID: m.BookID}
}
