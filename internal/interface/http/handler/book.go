package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookcatalog/internal/application/catalog"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	useCase *catalog.BookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(useCase *catalog.BookUseCase) *BookHandler {
	return &BookHandler{useCase: useCase}
}

// List 图书列表
// @Summary      图书列表
// @Description  按书名搜索，支持价格区间过滤，结果包含分类、出版社和图片
// @Tags         图书
// @Produce      json
// @Param        page      query int    false "页码，默认1"
// @Param        pageSize  query int    false "每页数量，默认10"
// @Param        search    query string false "书名关键词"
// @Param        sortBy    query string false "排序字段，默认createdAt"
// @Param        sortOrder query string false "asc或desc，默认desc"
// @Param        priceFrom query number false "最低价格"
// @Param        priceTo   query number false "最高价格"
// @Success      200 {object} response.Response{data=response.PageData{list=[]dto.BookResponse}}
// @Failure      400 {object} response.Response "不支持的排序字段"
// @Router       /api/v1/books [get]
func (h *BookHandler) List(c *gin.Context) {
	page, err := h.useCase.List(c.Request.Context(), listQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, dto.NewBookList(page.List), page.Paging)
}

// Get 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	b, err := h.useCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewBookResponse(b))
}

// Create 新增图书
// @Summary      新增图书
// @Description  分类和出版社必须存在，图书和图片在一个事务中写入
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      201 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "分类或出版社不存在"
// @Failure      409 {object} response.Response "书名已存在"
// @Router       /api/v1/books [post]
func (h *BookHandler) Create(c *gin.Context) {
	var req dto.CreateBookRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.useCase.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewBookResponse(b))
}

// Update 编辑图书
// @Summary      编辑图书
// @Description  只修改提供了且与当前值不同的字段；images为[]时删除全部图片
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                   true "图书ID"
// @Param        request body dto.UpdateBookRequest true "要修改的字段"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      404 {object} response.Response "图书、分类或出版社不存在"
// @Failure      409 {object} response.Response "书名已存在"
// @Router       /api/v1/books/{id} [patch]
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateBookRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.useCase.Edit(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewBookResponse(b))
}

// Delete 删除图书及其图片
// @Summary      删除图书
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.DeleteResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) Delete(c *gin.Context) {
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

// DeleteMany 批量删除图书，不存在的id被忽略
// @Summary      批量删除图书
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        listIds query []int true "图书ID列表" collectionFormat(multi)
// @Success      200 {object} response.Response{data=dto.DeleteResponse}
// @Failure      400 {object} response.Response "listIds为空"
// @Router       /api/v1/books [delete]
func (h *BookHandler) DeleteMany(c *gin.Context) {
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

// DeleteAll 清空图书和图片
// @Summary      清空图书
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.DeleteResponse}
// @Router       /api/v1/books/all [delete]
func (h *BookHandler) DeleteAll(c *gin.Context) {
	n, err := h.useCase.DeleteAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.DeleteResponse{Deleted: n})
}
