package handler

import (
	"github.com/gin-gonic/gin"

	appuser "github.com/xiebiao/bookcatalog/internal/application/user"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// UserHandler 用户管理HTTP处理器
// 所有响应都经过dto.UserResponse，密码哈希不会出现在响应里
type UserHandler struct {
	useCase *appuser.UserUseCase
}

func NewUserHandler(useCase *appuser.UserUseCase) *UserHandler {
	return &UserHandler{useCase: useCase}
}

// List 用户列表
// @Summary      用户列表
// @Description  在名和姓之间搜索
// @Tags         用户
// @Produce      json
// @Param        page      query int    false "页码"
// @Param        pageSize  query int    false "每页数量"
// @Param        search    query string false "姓名关键词"
// @Param        sortBy    query string false "排序字段"
// @Param        sortOrder query string false "asc或desc"
// @Success      200 {object} response.Response{data=response.PageData{list=[]dto.UserResponse}}
// @Router       /api/v1/users [get]
func (h *UserHandler) List(c *gin.Context) {
	page, err := h.useCase.List(c.Request.Context(), listQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, dto.NewUserList(page.List), page.Paging)
}

// Get 用户详情
// @Summary      用户详情
// @Tags         用户
// @Produce      json
// @Param        id path int true "用户ID"
// @Success      200 {object} response.Response{data=dto.UserResponse}
// @Failure      404 {object} response.Response "用户不存在"
// @Router       /api/v1/users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	u, err := h.useCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewUserResponse(u))
}

// Create 后台新增用户
// @Summary      新增用户
// @Tags         用户
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.SignupRequest true "用户信息"
// @Success      201 {object} response.Response{data=dto.UserResponse}
// @Failure      409 {object} response.Response "邮箱已存在"
// @Router       /api/v1/users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.SignupRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.useCase.Create(c.Request.Context(), appuser.RegisterRequest{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewUserResponse(u))
}

// Update 编辑用户
// @Summary      编辑用户
// @Tags         用户
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                   true "用户ID"
// @Param        request body dto.UpdateUserRequest true "要修改的字段"
// @Success      200 {object} response.Response{data=dto.UserResponse}
// @Failure      404 {object} response.Response "用户不存在"
// @Failure      409 {object} response.Response "邮箱已存在"
// @Router       /api/v1/users/{id} [patch]
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.useCase.Edit(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewUserResponse(u))
}

// ChangePassword 修改自己的密码
// @Summary      修改密码
// @Tags         用户
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                       true "用户ID"
// @Param        request body dto.ChangePasswordRequest true "旧密码和新密码"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "旧密码不正确"
// @Failure      403 {object} response.Response "不能修改他人密码"
// @Failure      404 {object} response.Response "用户不存在"
// @Router       /api/v1/users/change-password/{id} [patch]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	err := h.useCase.ChangePassword(c.Request.Context(), middleware.GetUserID(c), id, req.OldPassword, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Delete 删除用户
// @Summary      删除用户
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "用户ID"
// @Success      200 {object} response.Response{data=dto.DeleteResponse}
// @Router       /api/v1/users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.useCase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.DeleteResponse{Deleted: 1})
}

// DeleteMany 批量删除用户
// @Summary      批量删除用户
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Param        listIds query []int true "用户ID列表" collectionFormat(multi)
// @Success      200 {object} response.Response{data=dto.DeleteResponse}
// @Router       /api/v1/users [delete]
func (h *UserHandler) DeleteMany(c *gin.Context) {
	ids, ok := queryIDs(c)
	if !ok {
		return
	}
	n, err := h.useCase.DeleteMany(c.Request.Context(), ids)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.DeleteResponse{Deleted: n})
}

// DeleteAll 清空用户表
// @Summary      清空用户
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.DeleteResponse}
// @Router       /api/v1/users/all [delete]
func (h *UserHandler) DeleteAll(c *gin.Context) {
	n, err := h.useCase.DeleteAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.DeleteResponse{Deleted: n})
}
