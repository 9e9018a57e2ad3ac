package handler

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// multipart边界和表单头的额外开销
const multipartOverhead = 1 << 20

// FileStore 上传文件的存储
type FileStore interface {
	Save(ctx context.Context, fh *multipart.FileHeader) (string, error)
	SaveBatch(ctx context.Context, files []*multipart.FileHeader) ([]string, error)
	Open(filename string) (string, error)
}

// UploadHandler 图片上传与访问
type UploadHandler struct {
	store   FileStore
	maxBody int64
}

// NewUploadHandler maxBatchSize是一次请求允许的文件总大小
func NewUploadHandler(store FileStore, maxBatchSize int64) *UploadHandler {
	return &UploadHandler{store: store, maxBody: maxBatchSize + multipartOverhead}
}

// Upload 上传单张图片
// @Summary      上传图片
// @Description  字段名file，最大1MB，只支持jpg/jpeg/png
// @Tags         上传
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file formData file true "图片"
// @Success      200 {object} response.Response{data=dto.UploadResponse}
// @Failure      413 {object} response.Response "文件过大"
// @Failure      415 {object} response.Response "不支持的文件类型"
// @Router       /api/v1/upload-file [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBody)

	fh, err := c.FormFile("file")
	if err != nil {
		response.Error(c, formError(err))
		return
	}

	url, err := h.store.Save(c.Request.Context(), fh)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.UploadResponse{URL: url})
}

// UploadMultiple 批量上传图片
// @Summary      批量上传图片
// @Description  字段名files，最多10个文件，总大小不超过5MB
// @Tags         上传
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        files formData file true "图片（可多选）"
// @Success      200 {object} response.Response{data=[]dto.UploadResponse}
// @Failure      413 {object} response.Response "文件过大"
// @Router       /api/v1/upload-file/multiple [post]
func (h *UploadHandler) UploadMultiple(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBody)

	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, formError(err))
		return
	}

	urls, err := h.store.SaveBatch(c.Request.Context(), form.File["files"])
	if err != nil {
		response.Error(c, err)
		return
	}

	result := make([]dto.UploadResponse, 0, len(urls))
	for _, url := range urls {
		result = append(result, dto.UploadResponse{URL: url})
	}
	response.Success(c, result)
}

// Serve 访问已上传的图片
// @Summary      访问图片
// @Tags         上传
// @Produce      image/png,image/jpeg
// @Param        filename path string true "文件名"
// @Success      200 {file} file
// @Failure      404 {object} response.Response "文件不存在"
// @Router       /api/v1/upload-file/{filename} [get]
func (h *UploadHandler) Serve(c *gin.Context) {
	path, err := h.store.Open(c.Param("filename"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.File(path)
}

func formError(err error) error {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return apperrors.ErrFileTooLarge.WithMessage("请求体超过大小限制")
	case errors.Is(err, http.ErrMissingFile):
		return apperrors.ErrInvalidParams.WithMessage("没有上传文件")
	default:
		return apperrors.ErrBindError.WithMessage("解析上传表单失败")
	}
}
