package book

import (
	"slices"
	"strings"

	"github.com/xiebiao/bookcatalog/internal/domain/patch"
)

// Patch 图书编辑请求,nil字段表示不修改
// Images为nil表示不动图片;指向空切片表示删除全部图片
type Patch struct {
	Name            *string
	Description     *string
	Price           *float64
	QuantitySold    *int
	QuantityInStock *int
	CategoryID      *uint
	PublisherID     *uint
	Images          *[]string
}

// Validate 校验提供了的字段
func (p Patch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return ErrInvalidName
	}
	if p.Price != nil && *p.Price < 0 {
		return ErrInvalidPrice
	}
	if (p.QuantitySold != nil && *p.QuantitySold < 0) || (p.QuantityInStock != nil && *p.QuantityInStock < 0) {
		return ErrInvalidQuantity
	}
	if p.Images != nil {
		if err := validateSources(*p.Images); err != nil {
			return err
		}
	}
	return nil
}

// Diff 计算图书行本身的变更集(不含图片)
func (p Patch) Diff(b *Book) patch.Set {
	s := patch.Set{}
	patch.Put(s, FieldName, p.Name, b.Name)
	patch.Put(s, FieldDescription, p.Description, b.Description)
	patch.Put(s, FieldPrice, p.Price, b.Price)
	patch.Put(s, FieldQuantitySold, p.QuantitySold, b.QuantitySold)
	patch.Put(s, FieldQuantityInStock, p.QuantityInStock, b.QuantityInStock)
	patch.PutRef(s, FieldCategoryID, p.CategoryID, b.CategoryID)
	patch.PutRef(s, FieldPublisherID, p.PublisherID, b.PublisherID)
	return s
}

// ImagePlan 计算图片的调整计划,列表与当前完全一致时返回空计划
func (p Patch) ImagePlan(b *Book) ImagePlan {
	if p.Images == nil || slices.Equal(*p.Images, b.Sources()) {
		return ImagePlan{}
	}
	return ReconcileImages(b.Images, *p.Images)
}

func validateSources(sources []string) error {
	for _, src := range sources {
		if strings.TrimSpace(src) == "" {
			return ErrInvalidImage
		}
	}
	return nil
}
