package listing

// Operator 条件运算符
type Operator string

const (
	OpContains Operator = "contains"
	OpEq       Operator = "eq"
	OpGte      Operator = "gte"
	OpLte      Operator = "lte"
)

// DefaultSortField 未指定sortBy时按创建时间排序
const DefaultSortField = "createdAt"

// Condition 单个字段条件
// Field是领域字段名（如firstName），由存储层映射为列名
type Condition struct {
	Field string
	Op    Operator
	Value interface{}
}

// Sort 单列排序
type Sort struct {
	Field string
	Order SortOrder
}

// Predicate 与存储无关的查询谓词
// All中的条件用AND连接；Any非空时作为一个OR分组再与All做AND
// 计数和分页查询必须使用同一个Predicate，保证total与当前页一致
type Predicate struct {
	All    []Condition
	Any    []Condition
	Sort   Sort
	Offset int
	Limit  int
}

// Spec 资源的可搜索字段定义
type Spec struct {
	// SearchFields 子串搜索字段，多个字段之间是OR关系
	SearchFields []string
	// NumericIDField 非空时，search能解析为数字就改为按该字段精确匹配
	NumericIDField string
	// PriceField 非空时启用价格区间过滤
	PriceField string
}

// Build 根据规范化后的过滤条件生成查询谓词
func Build(f Filter, spec Spec) Predicate {
	p := Predicate{
		Sort:   Sort{Field: DefaultSortField, Order: SortDesc},
		Offset: f.Offset(),
		Limit:  f.PageSize,
	}

	// 1. 搜索条件
	if f.Search != "" {
		if id, ok := numericSearch(f.Search, spec); ok {
			p.All = append(p.All, Condition{Field: spec.NumericIDField, Op: OpEq, Value: id})
		} else if len(spec.SearchFields) == 1 {
			p.All = append(p.All, Condition{Field: spec.SearchFields[0], Op: OpContains, Value: f.Search})
		} else {
			for _, field := range spec.SearchFields {
				p.Any = append(p.Any, Condition{Field: field, Op: OpContains, Value: f.Search})
			}
		}
	}

	// 2. 价格区间
	if spec.PriceField != "" {
		if f.PriceFrom != nil {
			p.All = append(p.All, Condition{Field: spec.PriceField, Op: OpGte, Value: *f.PriceFrom})
		}
		if f.PriceTo != nil {
			p.All = append(p.All, Condition{Field: spec.PriceField, Op: OpLte, Value: *f.PriceTo})
		}
	}

	// 3. 排序，sortBy不做列名校验，交给存储层
	if f.SortBy != "" {
		p.Sort = Sort{Field: f.SortBy, Order: f.SortOrder}
	}

	return p
}

func numericSearch(search string, spec Spec) (interface{}, bool) {
	if spec.NumericIDField == "" {
		return nil, false
	}
	n, ok := parseNumber(search)
	if !ok {
		return nil, false
	}
	if v, ok := parseSafeInteger(search); ok {
		return v, true
	}
	// 非整数不可能等于任何id，但仍按精确匹配处理
	return n, true
}
