package category

import (
	"strings"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/listing"
	"github.com/xiebiao/bookcatalog/internal/domain/patch"
)

// Category 图书分类
// 名称是业务唯一键（数据库唯一索引兜底）
type Category struct {
	ID        uint
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// 可编辑字段名
const FieldName = "name"

// ListSpec 列表搜索规则：按名称子串搜索，搜索词是数字时按id精确匹配
var ListSpec = listing.Spec{
	SearchFields:   []string{FieldName},
	NumericIDField: "id",
}

// NewCategory 创建分类实体
func NewCategory(name string) (*Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidName
	}
	now := time.Now()
	return &Category{
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Patch 分类编辑请求，nil字段表示不修改
type Patch struct {
	Name *string
}

// Validate 校验提供了的字段
func (p Patch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return ErrInvalidName
	}
	return nil
}

// Diff 计算与当前记录的差异
func (p Patch) Diff(c *Category) patch.Set {
	s := patch.Set{}
	patch.Put(s, FieldName, p.Name, c.Name)
	return s
}
