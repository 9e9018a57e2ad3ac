package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code是业务错误码，前三位与HTTP状态码一致（40401 -> 404），方便网关和客户端按类别处理
// 2. Message是用户友好的提示信息
// 3. Err是内部错误，仅记录到日志，不返回给客户端
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus 按错误码前三位推导HTTP状态码
func (e *AppError) HTTPStatus() int {
	return HTTPStatus(e.Code)
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
// 原始错误保留在Err中，errors.Is仍然可以穿透到底层
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// WithMessage 复制一个错误码相同、提示不同的错误
// 用于参数校验时给出具体字段信息，不修改预定义错误本身
func (e *AppError) WithMessage(message string) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: message,
		Err:     e.Err,
	}
}

// Wrap 复制一个携带底层错误的同码错误
// 例：apperrors.New(apperrors.ErrCodeRedisError, "保存会话失败").Wrap(err)
func (e *AppError) Wrap(err error) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：错误码 = HTTP状态码 * 100 + 序号
// - 400xx: 参数错误
// - 401xx: 认证失败
// - 403xx: 无权限
// - 404xx: 资源不存在
// - 409xx: 唯一键冲突
// - 413xx/415xx: 上传文件限制
// - 500xx: 服务端错误

const (
	// 系统级错误码
	ErrCodeInternal      = 50000
	ErrCodeDatabaseError = 50001
	ErrCodeRedisError    = 50002
	ErrCodeStorageError  = 50003

	// 参数错误
	ErrCodeInvalidParams = 40000
	ErrCodeBindError     = 40001

	// 认证
	ErrCodeUnauthorized       = 40100
	ErrCodeInvalidToken       = 40101
	ErrCodeTokenExpired       = 40102
	ErrCodeInvalidCredentials = 40103
	ErrCodeTokenRevoked       = 40104

	// 权限
	ErrCodeForbidden = 40300

	// 资源不存在
	ErrCodeNotFound          = 40400
	ErrCodeUserNotFound      = 40401
	ErrCodeBookNotFound      = 40402
	ErrCodeCategoryNotFound  = 40403
	ErrCodePublisherNotFound = 40404
	ErrCodeFileNotFound      = 40405

	// 唯一键冲突
	ErrCodeConflict       = 40900
	ErrCodeEmailDuplicate = 40901
	ErrCodeNameDuplicate  = 40902

	// 上传限制
	ErrCodeFileTooLarge    = 41300
	ErrCodeUnsupportedFile = 41500

	// 限流
	ErrCodeTooManyRequests = 42900
)

// =========================================
// 预定义错误
// =========================================

var (
	ErrInternal      = New(ErrCodeInternal, "系统内部错误")
	ErrDatabaseError = New(ErrCodeDatabaseError, "数据库错误")
	ErrRedisError    = New(ErrCodeRedisError, "缓存服务错误")

	ErrInvalidParams = New(ErrCodeInvalidParams, "参数错误")
	ErrBindError     = New(ErrCodeBindError, "参数格式错误")

	ErrUnauthorized       = New(ErrCodeUnauthorized, "请先登录")
	ErrInvalidToken       = New(ErrCodeInvalidToken, "无效的Token")
	ErrTokenExpired       = New(ErrCodeTokenExpired, "Token已过期")
	ErrInvalidCredentials = New(ErrCodeInvalidCredentials, "邮箱或密码错误")
	ErrTokenRevoked       = New(ErrCodeTokenRevoked, "Token已失效，请重新登录")

	ErrForbidden = New(ErrCodeForbidden, "无权限访问")

	ErrNotFound     = New(ErrCodeNotFound, "资源不存在")
	ErrFileNotFound = New(ErrCodeFileNotFound, "文件不存在")

	ErrConflict = New(ErrCodeConflict, "记录已存在")

	ErrFileTooLarge    = New(ErrCodeFileTooLarge, "文件过大")
	ErrUnsupportedFile = New(ErrCodeUnsupportedFile, "不支持的文件类型")

	ErrTooManyRequests = New(ErrCodeTooManyRequests, "请求过于频繁，请稍后再试")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "系统内部错误")
}

// HTTPStatus 错误码到HTTP状态码的映射，无法识别的一律视为500
func HTTPStatus(code int) int {
	status := code / 100
	if http.StatusText(status) == "" || status < 400 {
		return http.StatusInternalServerError
	}
	return status
}

// IsClientError 判断是否为4xx类错误
func IsClientError(err error) bool {
	status := GetAppError(err).HTTPStatus()
	return status >= 400 && status < 500
}
