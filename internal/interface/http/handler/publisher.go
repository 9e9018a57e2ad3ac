package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookcatalog/internal/application/catalog"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// PublisherHandler 出版社HTTP处理器
type PublisherHandler struct {
	useCase *catalog.PublisherUseCase
}

func NewPublisherHandler(useCase *catalog.PublisherUseCase) *PublisherHandler {
	return &PublisherHandler{useCase: useCase}
}

// List 出版社列表
// @Summary      出版社列表
// @Tags         出版社
// @Produce      json
// @Param        page      query int    false "页码"
// @Param        pageSize  query int    false "每页数量"
// @Param        search    query string false "搜索词"
// @Param        sortBy    query string false "排序字段"
// @Param        sortOrder query string false "asc或desc"
// @Success      200 {object} response.Response{data=response.PageData{list=[]dto.PublisherResponse}}
// @Router       /api/v1/publishers [get]
func (h *PublisherHandler) List(c *gin.Context) {
	page, err := h.useCase.List(c.Request.Context(), listQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, dto.NewPublisherList(page.List), page.Paging)
}

// Get 出版社详情
// @Summary      出版社详情
// @Tags         出版社
// @Produce      json
// @Param        id path int true "出版社ID"
// @Success      200 {object} response.Response{data=dto.PublisherResponse}
// @Failure      404 {object} response.Response "出版社不存在"
// @Router       /api/v1/publishers/{id} [get]
func (h *PublisherHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	pub, err := h.useCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewPublisherResponse(pub))
}

// Create 新增出版社
// @Summary      新增出版社
// @Tags         出版社
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreatePublisherRequest true "出版社信息"
// @Success      201 {object} response.Response{data=dto.PublisherResponse}
// @Failure      409 {object} response.Response "出版社名称已存在"
// @Router       /api/v1/publishers [post]
func (h *PublisherHandler) Create(c *gin.Context) {
	var req dto.CreatePublisherRequest
	if !bindJSON(c, &req) {
		return
	}
	pub, err := h.useCase.Create(c.Request.Context(), req.Name, req.Information)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewPublisherResponse(pub))
}

// Update 编辑出版社
// @Summary      编辑出版社
// @Tags         出版社
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                        true "出版社ID"
// @Param        request body dto.UpdatePublisherRequest true "要修改的字段"
// @Success      200 {object} response.Response{data=dto.PublisherResponse}
// @Router       /api/v1/publishers/{id} [patch]
func (h *PublisherHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdatePublisherRequest
	if !bindJSON(c, &req) {
		return
	}
	pub, err := h.useCase.Edit(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewPublisherResponse(pub))
}

// Delete 删除出版社
// @Summary      删除出版社
// @Tags         出版社
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "出版社ID"
// @Success      200 {object} response.Response{data=dto.DeleteResponse}
// @Router       /api/v1/publishers/{id} [delete]
func (h *PublisherHandler) Delete(c *gin.Context) {
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

// DeleteMany 批量删除出版社
// @Summary      批量删除出版社
// @Tags         出版社
// @Produce      json
// @Security     BearerAuth
// @Param        listIds query []int true "出版社ID列表" collectionFormat(multi)
// @Success      200 {object} response.Response{data=dto.DeleteResponse}
// @Router       /api/v1/publishers [delete]
func (h *PublisherHandler) DeleteMany(c *gin.Context) {
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

// DeleteAll 清空出版社
// @Summary      清空出版社
// @Tags         出版社
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.DeleteResponse}
// @Router       /api/v1/publishers/all [delete]
func (h *PublisherHandler) DeleteAll(c *gin.Context) {
	n, err := h.useCase.DeleteAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.DeleteResponse{Deleted: n})
}
