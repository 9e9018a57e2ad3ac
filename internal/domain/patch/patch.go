// Package patch 部分更新的变更集
//
// 编辑请求只携带要修改的字段（指针为nil表示未提供），
// 与数据库中的当前值逐字段比较，只有真正变化的字段才进入变更集。
// 变更集为空时调用方不应发起任何写操作。
package patch

import "sort"

// Set 变更集：领域字段名 -> 新值
type Set map[string]interface{}

// Put 当incoming非nil且与stored不同时记录变更
func Put[T comparable](s Set, field string, incoming *T, stored T) {
	if incoming == nil || *incoming == stored {
		return
	}
	s[field] = *incoming
}

// PutRef 可空外键字段的比较，stored为nil表示当前没有关联
func PutRef[T comparable](s Set, field string, incoming *T, stored *T) {
	if incoming == nil {
		return
	}
	if stored != nil && *stored == *incoming {
		return
	}
	s[field] = *incoming
}

// Empty 变更集是否为空
func (s Set) Empty() bool {
	return len(s) == 0
}

// Has 是否包含某个字段
func (s Set) Has(field string) bool {
	_, ok := s[field]
	return ok
}

// Fields 按字母序返回变更的字段名（日志和事件使用）
func (s Set) Fields() []string {
	fields := make([]string, 0, len(s))
	for f := range s {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}
