// Package handler HTTP处理器
// Handler只负责HTTP相关的事情：解析请求、调用应用层、返回响应，不包含业务逻辑
package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookcatalog/internal/domain/listing"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// bindJSON 绑定并校验请求体，失败时直接写入400响应
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, apperrors.ErrBindError.WithMessage("参数错误: "+err.Error()))
		return false
	}
	return true
}

// listQuery 读取列表查询参数
// ListQuery全是字符串字段，绑定不会失败；非法值由listing.Normalize回退为默认值
func listQuery(c *gin.Context) listing.RawQuery {
	var q dto.ListQuery
	_ = c.ShouldBindQuery(&q)
	return q.Raw()
}

// pathID 解析路径参数中的id
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, apperrors.ErrInvalidParams.WithMessage("id必须是正整数"))
		return 0, false
	}
	return uint(id), true
}

// queryIDs 解析批量删除的listIds
// 支持 listIds=1&listIds=2 和 listIds=1,2 两种写法；为空时交给应用层判断
func queryIDs(c *gin.Context) ([]uint, bool) {
	var ids []uint
	for _, raw := range c.QueryArray("listIds") {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseUint(part, 10, 64)
			if err != nil {
				response.Error(c, apperrors.ErrInvalidParams.WithMessage("listIds必须是整数列表"))
				return nil, false
			}
			ids = append(ids, uint(id))
		}
	}
	return ids, true
}
