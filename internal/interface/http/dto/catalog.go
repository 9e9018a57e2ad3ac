package dto

import (
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/category"
	"github.com/xiebiao/bookcatalog/internal/domain/publisher"
)

// CreateCategoryRequest 新增分类
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// UpdateCategoryRequest 编辑分类
type UpdateCategoryRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=255"`
}

func (r UpdateCategoryRequest) ToPatch() category.Patch {
	return category.Patch{Name: r.Name}
}

type CategoryResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewCategoryResponse(c *category.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func NewCategoryList(categories []*category.Category) []CategoryResponse {
	list := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		list = append(list, NewCategoryResponse(c))
	}
	return list
}

// CreatePublisherRequest 新增出版社
type CreatePublisherRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Information string `json:"information" binding:"required"`
}

// UpdatePublisherRequest 编辑出版社
type UpdatePublisherRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Information *string `json:"information" binding:"omitempty,min=1"`
}

func (r UpdatePublisherRequest) ToPatch() publisher.Patch {
	return publisher.Patch{Name: r.Name, Information: r.Information}
}

type PublisherResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Information string    `json:"information"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewPublisherResponse(p *publisher.Publisher) PublisherResponse {
	return PublisherResponse{
		ID:          p.ID,
		Name:        p.Name,
		Information: p.Information,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func NewPublisherList(publishers []*publisher.Publisher) []PublisherResponse {
	list := make([]PublisherResponse, 0, len(publishers))
	for _, p := range publishers {
		list = append(list, NewPublisherResponse(p))
	}
	return list
}
