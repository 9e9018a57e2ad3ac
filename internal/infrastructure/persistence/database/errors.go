package database

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// isDuplicateError 判断是否为唯一索引冲突
// 开启TranslateError后各驱动都会返回gorm.ErrDuplicatedKey,
// 下面的字符串匹配兼容未翻译的错误:
// - MySQL 1062: Duplicate entry 'xxx' for key 'yyy'
// - PostgreSQL 23505: duplicate key value violates unique constraint
// - SQLite: UNIQUE constraint failed
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// wrapError 已经是业务错误的直接返回，其余包装为内部错误
func wrapError(err error, message string) error {
	if apperrors.IsAppError(err) {
		return err
	}
	return apperrors.Wrap(err, message)
}
