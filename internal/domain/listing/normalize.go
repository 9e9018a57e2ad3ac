package listing

import (
	"math"
	"strconv"
	"strings"
)

// SortOrder 排序方向
type SortOrder string

const (
	SortDesc SortOrder = "desc"
	SortAsc  SortOrder = "asc"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10

	// 与JSON数字可精确表示的整数范围一致（2^53-1）
	maxSafeInteger = 1<<53 - 1
)

// RawQuery 列表接口的原始查询参数，全部是未经校验的字符串
type RawQuery struct {
	Page      string
	PageSize  string
	Search    string
	SortBy    string
	SortOrder string
	PriceFrom string
	PriceTo   string
}

// Filter 规范化后的分页与过滤参数
// PriceFrom/PriceTo为nil表示不过滤
type Filter struct {
	Page      int
	PageSize  int
	Search    string
	SortBy    string
	SortOrder SortOrder
	PriceFrom *int64
	PriceTo   *int64
}

// Offset 当前页的起始偏移量
func (f Filter) Offset() int {
	if f.Page <= 1 || f.PageSize <= 0 {
		return 0
	}
	// 超大页码时避免溢出，数据库会返回空页
	if f.Page-1 > math.MaxInt/f.PageSize {
		return math.MaxInt
	}
	return (f.Page - 1) * f.PageSize
}

// Normalize 把原始查询参数转换为合法的分页与过滤条件
// 规则：
// 1. page/pageSize必须是正的安全整数，否则取默认值1/10
// 2. priceFrom必须是非负安全整数，否则视为未提供
// 3. priceTo必须是安全整数且大于priceFrom（未提供时按0计），否则视为未提供
// 任何非法输入都回退为默认值，不返回错误
func Normalize(raw RawQuery) Filter {
	f := Filter{
		Page:      positiveOr(raw.Page, DefaultPage),
		PageSize:  positiveOr(raw.PageSize, DefaultPageSize),
		Search:    raw.Search,
		SortBy:    raw.SortBy,
		SortOrder: SortDesc,
	}

	if strings.EqualFold(strings.TrimSpace(raw.SortOrder), string(SortAsc)) {
		f.SortOrder = SortAsc
	}

	var lower int64
	if v, ok := parseSafeInteger(raw.PriceFrom); ok && v >= 0 {
		f.PriceFrom = &v
		lower = v
	}
	if v, ok := parseSafeInteger(raw.PriceTo); ok && v > lower {
		f.PriceTo = &v
	}

	return f
}

func positiveOr(s string, def int) int {
	v, ok := parseSafeInteger(s)
	if !ok || v <= 0 {
		return def
	}
	return int(v)
}

// parseSafeInteger 解析整数值，接受"12"、"12.0"、"1e2"、"0x10"这类写法
// 空串视为未提供
func parseSafeInteger(s string) (int64, bool) {
	if strings.TrimSpace(s) == "" {
		return 0, false
	}
	n, ok := parseNumber(s)
	if !ok || n != math.Trunc(n) || math.Abs(n) > maxSafeInteger {
		return 0, false
	}
	return int64(n), true
}

// parseNumber 宽松的数字解析
// 首尾空白会被忽略，纯空白按0处理；Inf/NaN这类字面量不算数字
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}

	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "0x") || strings.HasPrefix(lower, "0o") || strings.HasPrefix(lower, "0b") {
		if strings.Contains(lower, "_") {
			return 0, false
		}
		v, err := strconv.ParseUint(lower, 0, 64)
		if err != nil {
			return 0, false
		}
		return float64(v), true
	}

	if strings.ContainsAny(lower, "_xpn") || strings.Contains(lower, "inf") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
