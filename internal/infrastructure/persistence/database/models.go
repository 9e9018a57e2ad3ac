package database

import "time"

// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain层实体不依赖GORM，Repository负责两者之间的转换
// 3. 统一使用物理删除：业务唯一键（邮箱、名称）需要在删除后可以复用

// UserModel 用户表
type UserModel struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"uniqueIndex;size:100;not null"`
	Password  string    `gorm:"size:255;not null"`
	FirstName string    `gorm:"size:100;not null"`
	LastName  string    `gorm:"size:100;not null"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (UserModel) TableName() string {
	return "users"
}

// CategoryModel 分类表
type CategoryModel struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"uniqueIndex;size:191;not null"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (CategoryModel) TableName() string {
	return "categories"
}

// PublisherModel 出版社表
type PublisherModel struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"uniqueIndex;size:191;not null"`
	Information string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
}

func (PublisherModel) TableName() string {
	return "publishers"
}

// BookModel 图书表
// 外键约束不带ON DELETE动作：删除分类/出版社前必须由应用层先把外键置空
type BookModel struct {
	ID              uint            `gorm:"primaryKey"`
	Name            string          `gorm:"uniqueIndex;size:191;not null"`
	Description     string          `gorm:"type:text"`
	Price           float64         `gorm:"index;not null;default:0"`
	QuantitySold    int             `gorm:"not null;default:0"`
	QuantityInStock int             `gorm:"not null;default:0"`
	CategoryID      *uint           `gorm:"index"`
	PublisherID     *uint           `gorm:"index"`
	Category        *CategoryModel  `gorm:"foreignKey:CategoryID"`
	Publisher       *PublisherModel `gorm:"foreignKey:PublisherID"`
	Images          []ImageModel    `gorm:"foreignKey:BookID"`
	CreatedAt       time.Time       `gorm:"index"`
	UpdatedAt       time.Time
}

func (BookModel) TableName() string {
	return "books"
}

// ImageModel 图书图片表
type ImageModel struct {
	ID        uint   `gorm:"primaryKey"`
	Source    string `gorm:"size:500;not null"`
	BookID    uint   `gorm:"index;not null"`
	CreatedAt time.Time
}

func (ImageModel) TableName() string {
	return "images"
}
