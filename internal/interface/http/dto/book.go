package dto

import (
	"time"

	"github.com/xiebiao/bookcatalog/internal/application/catalog"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// CreateBookRequest 新增图书请求
// price用指针接收，0是合法价格，缺失才报错
type CreateBookRequest struct {
	Name            string   `json:"name" binding:"required,max=255"`
	Description     string   `json:"description"`
	Price           *float64 `json:"price" binding:"required,gte=0"`
	QuantitySold    int      `json:"quantity_sold" binding:"gte=0"`
	QuantityInStock int      `json:"quantity_in_stock" binding:"gte=0"`
	CategoryID      *uint    `json:"category_id"`
	PublisherID     *uint    `json:"publisher_id"`
	Images          []string `json:"images" binding:"omitempty,dive,required"`
}

// ToInput 转换为应用层参数
func (r CreateBookRequest) ToInput() catalog.CreateBookInput {
	return catalog.CreateBookInput{
		Name:            r.Name,
		Description:     r.Description,
		Price:           *r.Price,
		QuantitySold:    r.QuantitySold,
		QuantityInStock: r.QuantityInStock,
		CategoryID:      r.CategoryID,
		PublisherID:     r.PublisherID,
		Images:          r.Images,
	}
}

// UpdateBookRequest 编辑图书请求
// images缺失或为null表示不修改图片，[]表示删除全部图片
type UpdateBookRequest struct {
	Name            *string   `json:"name" binding:"omitempty,min=1,max=255"`
	Description     *string   `json:"description"`
	Price           *float64  `json:"price" binding:"omitempty,gte=0"`
	QuantitySold    *int      `json:"quantity_sold" binding:"omitempty,gte=0"`
	QuantityInStock *int      `json:"quantity_in_stock" binding:"omitempty,gte=0"`
	CategoryID      *uint     `json:"category_id"`
	PublisherID     *uint     `json:"publisher_id"`
	Images          *[]string `json:"images"`
}

func (r UpdateBookRequest) ToPatch() book.Patch {
	return book.Patch{
		Name:            r.Name,
		Description:     r.Description,
		Price:           r.Price,
		QuantitySold:    r.QuantitySold,
		QuantityInStock: r.QuantityInStock,
		CategoryID:      r.CategoryID,
		PublisherID:     r.PublisherID,
		Images:          r.Images,
	}
}

// RefResponse 图书关联的分类/出版社
type RefResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type ImageResponse struct {
	ID     uint   `json:"id"`
	Source string `json:"source"`
}

// BookResponse 图书详情，包含分类、出版社和图片
type BookResponse struct {
	ID              uint            `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           float64         `json:"price"`
	QuantitySold    int             `json:"quantity_sold"`
	QuantityInStock int             `json:"quantity_in_stock"`
	CategoryID      *uint           `json:"category_id"`
	PublisherID     *uint           `json:"publisher_id"`
	Category        *RefResponse    `json:"category"`
	Publisher       *RefResponse    `json:"publisher"`
	Images          []ImageResponse `json:"images"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func NewBookResponse(b *book.Book) BookResponse {
	images := make([]ImageResponse, 0, len(b.Images))
	for _, img := range b.Images {
		images = append(images, ImageResponse{ID: img.ID, Source: img.Source})
	}

	return BookResponse{
		ID:              b.ID,
		Name:            b.Name,
		Description:     b.Description,
		Price:           b.Price,
		QuantitySold:    b.QuantitySold,
		QuantityInStock: b.QuantityInStock,
		CategoryID:      b.CategoryID,
		PublisherID:     b.PublisherID,
		Category:        newRef(b.Category),
		Publisher:       newRef(b.Publisher),
		Images:          images,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func NewBookList(books []*book.Book) []BookResponse {
	list := make([]BookResponse, 0, len(books))
	for _, b := range books {
		list = append(list, NewBookResponse(b))
	}
	return list
}

func newRef(r *book.Ref) *RefResponse {
	if r == nil {
		return nil
	}
	return &RefResponse{ID: r.ID, Name: r.Name}
}
