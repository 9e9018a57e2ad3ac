package user

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

var (
	ErrUserNotFound = apperrors.New(apperrors.ErrCodeUserNotFound, "用户不存在")

	ErrEmailDuplicate = apperrors.New(apperrors.ErrCodeEmailDuplicate, "邮箱已被注册")

	ErrInvalidEmail = apperrors.New(apperrors.ErrCodeInvalidParams, "邮箱格式不正确")
	ErrWeakPassword = apperrors.New(apperrors.ErrCodeInvalidParams, "密码长度应为8-72个字符")
	ErrInvalidName  = apperrors.New(apperrors.ErrCodeInvalidParams, "姓名不能为空")

	// ErrOldPasswordMismatch 修改密码时旧密码不正确
	ErrOldPasswordMismatch = apperrors.New(apperrors.ErrCodeInvalidParams, "旧密码不正确")

	// ErrNotOwner 只能修改自己的密码
	ErrNotOwner = apperrors.New(apperrors.ErrCodeForbidden, "只能修改自己的账号")
)
