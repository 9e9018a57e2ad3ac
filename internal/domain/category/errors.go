package category

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 分类领域错误定义
var (
	ErrCategoryNotFound = apperrors.New(apperrors.ErrCodeCategoryNotFound, "分类不存在")

	ErrNameDuplicate = apperrors.New(apperrors.ErrCodeNameDuplicate, "分类名称已存在")

	ErrInvalidName = apperrors.New(apperrors.ErrCodeInvalidParams, "分类名称不能为空")
)
