package listing

// Paging 分页元数据
// NextPage/PrevPage在边界处为null
type Paging struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
	NextPage  *int  `json:"next_page"`
	PrevPage  *int  `json:"prev_page"`
	TotalPage int   `json:"total_page"`
	Total     int64 `json:"total"`
}

// NewPaging 根据过滤条件和总数计算分页元数据
func NewPaging(f Filter, total int64) Paging {
	size := int64(f.PageSize)
	if size <= 0 {
		size = DefaultPageSize
	}
	totalPage := int((total + size - 1) / size)

	p := Paging{
		Page:      f.Page,
		PageSize:  int(size),
		TotalPage: totalPage,
		Total:     total,
	}
	if next := f.Page + 1; next <= totalPage {
		p.NextPage = &next
	}
	if prev := f.Page - 1; prev >= 1 {
		p.PrevPage = &prev
	}
	return p
}

// Page 一页数据及其分页信息
type Page[T any] struct {
	List   []T    `json:"list"`
	Paging Paging `json:"paging"`
}

// NewPage 组装分页结果，List为nil时返回空数组
func NewPage[T any](list []T, f Filter, total int64) *Page[T] {
	if list == nil {
		list = []T{}
	}
	return &Page[T]{List: list, Paging: NewPaging(f, total)}
}
