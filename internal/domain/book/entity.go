package book

import (
	"strings"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/listing"
)

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. Book与其Image组成一个聚合,图片只能随图书一起创建、修改、删除
// 2. CategoryID/PublisherID是可空的弱引用,分类或出版社被删除时置空而不是级联删除图书
// 3. 书名是业务唯一键
type Book struct {
	ID              uint
	Name            string
	Description     string
	Price           float64
	QuantitySold    int
	QuantityInStock int
	CategoryID      *uint
	PublisherID     *uint
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// 只读关联,查询时加载
	Category  *Ref
	Publisher *Ref
	Images    []Image
}

// Ref 关联的分类/出版社摘要
type Ref struct {
	ID   uint
	Name string
}

// Image 图书图片
type Image struct {
	ID     uint
	Source string // URL或存储路径
	BookID uint
}

// 可编辑字段名(与存储层列名一一映射)
const (
	FieldName            = "name"
	FieldDescription     = "description"
	FieldPrice           = "price"
	FieldQuantitySold    = "quantitySold"
	FieldQuantityInStock = "quantityInStock"
	FieldCategoryID      = "categoryId"
	FieldPublisherID     = "publisherId"
)

// ListSpec 图书列表按书名搜索,支持价格区间
var ListSpec = listing.Spec{
	SearchFields: []string{FieldName},
	PriceField:   FieldPrice,
}

// Reference 图书上指向父实体的外键
type Reference string

const (
	RefCategory  Reference = FieldCategoryID
	RefPublisher Reference = FieldPublisherID
)

// NewBook 创建新图书(工厂方法)
// 业务规则:书名不能为空,价格和数量不能为负
func NewBook(name, description string, price float64, sold, inStock int, categoryID, publisherID *uint) (*Book, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidName
	}
	if price < 0 {
		return nil, ErrInvalidPrice
	}
	if sold < 0 || inStock < 0 {
		return nil, ErrInvalidQuantity
	}

	now := time.Now()
	return &Book{
		Name:            name,
		Description:     description,
		Price:           price,
		QuantitySold:    sold,
		QuantityInStock: inStock,
		CategoryID:      categoryID,
		PublisherID:     publisherID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Sources 当前图片地址列表(按存储顺序)
func (b *Book) Sources() []string {
	sources := make([]string, 0, len(b.Images))
	for _, img := range b.Images {
		sources = append(sources, img.Source)
	}
	return sources
}
