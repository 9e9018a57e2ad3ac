package book

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrNameDuplicate 书名已存在
	ErrNameDuplicate = apperrors.New(apperrors.ErrCodeNameDuplicate, "图书已存在")

	ErrInvalidName     = apperrors.New(apperrors.ErrCodeInvalidParams, "书名不能为空")
	ErrInvalidPrice    = apperrors.New(apperrors.ErrCodeInvalidParams, "价格不能为负数")
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "数量不能为负数")
	ErrInvalidImage    = apperrors.New(apperrors.ErrCodeInvalidParams, "图片地址不能为空")
)
