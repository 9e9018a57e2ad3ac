package publisher

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

var (
	ErrPublisherNotFound = apperrors.New(apperrors.ErrCodePublisherNotFound, "出版社不存在")

	ErrNameDuplicate = apperrors.New(apperrors.ErrCodeNameDuplicate, "出版社名称已存在")

	ErrInvalidName        = apperrors.New(apperrors.ErrCodeInvalidParams, "出版社名称不能为空")
	ErrInvalidInformation = apperrors.New(apperrors.ErrCodeInvalidParams, "出版社简介不能为空")
)
