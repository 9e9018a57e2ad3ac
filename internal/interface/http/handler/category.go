package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookcatalog/internal/application/catalog"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// CategoryHandler 分类HTTP处理器
type CategoryHandler struct {
	useCase *catalog.CategoryUseCase
}

func NewCategoryHandler(useCase *catalog.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{useCase: useCase}
}

// List 分类列表
// @Summary      分类列表
// @Description  按名称搜索，搜索词是数字时按id精确匹配
// @Tags         分类
// @Produce      json
// @Param        page      query int    false "页码"
// @Param        pageSize  query int    false "每页数量"
// @Param        search    query string false "搜索词"
// @Param        sortBy    query string false "排序字段"
// @Param        sortOrder query string false "asc或desc"
// @Success      200 {object} response.Response{data=response.PageData{list=[]dto.CategoryResponse}}
// @Router       /api/v1/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	page, err := h.useCase.List(c.Request.Context(), listQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, dto.NewCategoryList(page.List), page.Paging)
}

// Get 分类详情
// @Summary      分类详情
// @Tags         分类
// @Produce      json
// @Param        id path int true "分类ID"
// @Success      200 {object} response.Response{data=dto.CategoryResponse}
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /api/v1/categories/{id} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	category, err := h.useCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewCategoryResponse(category))
}

// Create 新增分类
// @Summary      新增分类
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateCategoryRequest true "分类信息"
// @Success      201 {object} response.Response{data=dto.CategoryResponse}
// @Failure      409 {object} response.Response "分类名称已存在"
// @Router       /api/v1/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	category, err := h.useCase.Create(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewCategoryResponse(category))
}

// Update 编辑分类
// @Summary      编辑分类
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                       true "分类ID"
// @Param        request body dto.UpdateCategoryRequest true "要修改的字段"
// @Success      200 {object} response.Response{data=dto.CategoryResponse}
// @Failure      404 {object} response.Response "分类不存在"
// @Failure      409 {object} response.Response "分类名称已存在"
// @Router       /api/v1/categories/{id} [patch]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	category, err := h.useCase.Edit(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewCategoryResponse(category))
}

// Delete 删除分类，引用它的图书保留但分类置空
// @Summary      删除分类
// @Tags         分类
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "分类ID"
// @Success      200 {object} response.Response{data=dto.DeleteResponse}
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /api/v1/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
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

// DeleteMany 批量删除分类
// @Summary      批量删除分类
// @Tags         分类
// @Produce      json
// @Security     BearerAuth
// @Param        listIds query []int true "分类ID列表" collectionFormat(multi)
// @Success      200 {object} response.Response{data=dto.DeleteResponse}
// @Failure      400 {object} response.Response "listIds为空"
// @Router       /api/v1/categories [delete]
func (h *CategoryHandler) DeleteMany(c *gin.Context) {
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

// DeleteAll 清空分类
// @Summary      清空分类
// @Tags         分类
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.DeleteResponse}
// @Router       /api/v1/categories/all [delete]
func (h *CategoryHandler) DeleteAll(c *gin.Context) {
	n, err := h.useCase.DeleteAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.DeleteResponse{Deleted: n})
}
