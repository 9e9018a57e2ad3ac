package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code int
		want int
	}{
		{ErrCodeInvalidParams, http.StatusBadRequest},
		{ErrCodeBindError, http.StatusBadRequest},
		{ErrCodeTokenRevoked, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeBookNotFound, http.StatusNotFound},
		{ErrCodeNameDuplicate, http.StatusConflict},
		{ErrCodeFileTooLarge, http.StatusRequestEntityTooLarge},
		{ErrCodeUnsupportedFile, http.StatusUnsupportedMediaType},
		{ErrCodeTooManyRequests, http.StatusTooManyRequests},
		{ErrCodeDatabaseError, http.StatusInternalServerError},
		// 无法识别的错误码
		{12345, http.StatusInternalServerError},
		{99900, http.StatusInternalServerError},
		{0, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.code))
		})
	}
}

func TestAppError(t *testing.T) {
	cause := errors.New("connection refused")

	t.Run("Wrap保留底层错误", func(t *testing.T) {
		err := Wrap(cause, "查询失败")
		assert.Equal(t, ErrCodeInternal, err.Code)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "[50000] 查询失败: connection refused", err.Error())
	})

	t.Run("同码包装", func(t *testing.T) {
		err := ErrDatabaseError.Wrap(cause)
		assert.Equal(t, ErrCodeDatabaseError, err.Code)
		assert.Equal(t, ErrDatabaseError.Message, err.Message)
		assert.ErrorIs(t, err, cause)
		// 预定义错误本身不被修改
		assert.Nil(t, ErrDatabaseError.Err)
	})

	t.Run("替换提示信息", func(t *testing.T) {
		err := ErrInvalidParams.WithMessage("pageSize必须大于0")
		assert.Equal(t, ErrCodeInvalidParams, err.Code)
		assert.Equal(t, "pageSize必须大于0", err.Message)
		assert.Equal(t, "参数错误", ErrInvalidParams.Message)
	})

	t.Run("Wrapf格式化", func(t *testing.T) {
		err := Wrapf(cause, "删除%s失败", "books")
		assert.Equal(t, "删除books失败", err.Message)
	})
}

func TestGetAppError(t *testing.T) {
	t.Run("多层包装后仍能提取", func(t *testing.T) {
		err := fmt.Errorf("handler: %w", ErrForbidden)
		assert.True(t, IsAppError(err))
		assert.Same(t, ErrForbidden, GetAppError(err))
		assert.True(t, IsClientError(err))
	})

	t.Run("普通错误视为内部错误", func(t *testing.T) {
		err := errors.New("boom")
		assert.False(t, IsAppError(err))

		appErr := GetAppError(err)
		assert.Equal(t, ErrCodeInternal, appErr.Code)
		assert.Equal(t, http.StatusInternalServerError, appErr.HTTPStatus())
		assert.ErrorIs(t, appErr, err)
		assert.False(t, IsClientError(err))
	})
}
