package dto

import "github.com/xiebiao/bookcatalog/internal/domain/listing"

// ListQuery 列表接口的查询参数
// 全部按字符串接收，非法值由listing.Normalize回退为默认值，不会返回参数错误
type ListQuery struct {
	Page      string `form:"page"`
	PageSize  string `form:"pageSize"`
	Search    string `form:"search"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder"`
	PriceFrom string `form:"priceFrom"`
	PriceTo   string `form:"priceTo"`
}

// Raw 转换为领域层的原始查询
// 价格区间只对图书生效，其他资源的ListSpec不会使用
func (q ListQuery) Raw() listing.RawQuery {
	return listing.RawQuery{
		Page:      q.Page,
		PageSize:  q.PageSize,
		Search:    q.Search,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
		PriceFrom: q.PriceFrom,
		PriceTo:   q.PriceTo,
	}
}

// DeleteResponse 删除结果
type DeleteResponse struct {
	Deleted int64 `json:"deleted"`
}

// UploadResponse 上传结果
type UploadResponse struct {
	URL string `json:"url"`
}
