package admin

import (
	"errors"

	"github.com/portrait-next/internal/http/response"
	"github.com/portrait-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminListArtwork 画作文件列表
func (h *Handler) AdminListArtwork(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	artwork, paths, err := h.ArtworkService.List(id)
	if err != nil {
		if errors.Is(err, service.ErrArtworkNotFound) {
			respondError(c, response.CodeNotFound, "artwork record not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "artwork fetch failed", err)
		return
	}

	response.Success(c, gin.H{
		"artwork": artwork,
		"paths":   paths,
	})
}

// AdminUploadArtwork 上传画作文件（multipart 字段 images，可多选）
func (h *Handler) AdminUploadArtwork(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid multipart form", err)
		return
	}
	files := form.File["images"]

	result, err := h.ArtworkService.Upload(id, files)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrArtworkNoFiles):
			respondError(c, response.CodeBadRequest, "no files received", nil)
		case errors.Is(err, service.ErrArtworkFileTooLarge):
			respondError(c, response.CodeBadRequest, "file exceeds the size limit", nil)
		case errors.Is(err, service.ErrArtworkTypeNotAllowed):
			respondError(c, response.CodeBadRequest, "file type not allowed", nil)
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "order not found", nil)
		case errors.Is(err, service.ErrArtworkNotFound):
			respondError(c, response.CodeNotFound, "artwork record not found", nil)
		default:
			respondError(c, response.CodeInternal, "artwork upload failed", err)
		}
		return
	}

	response.Success(c, result)
}

// DeleteArtworkRequest 删除画作文件请求
type DeleteArtworkRequest struct {
	Filename string `json:"filename" binding:"required"`
}

// AdminDeleteArtworkFile 删除单个画作文件（文件名在请求体中）
func (h *Handler) AdminDeleteArtworkFile(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req DeleteArtworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "filename is required", err)
		return
	}

	if err := h.ArtworkService.Delete(id, req.Filename); err != nil {
		switch {
		case errors.Is(err, service.ErrArtworkNotFound):
			respondError(c, response.CodeNotFound, "artwork record not found", nil)
		case errors.Is(err, service.ErrArtworkFileMissing):
			respondError(c, response.CodeNotFound, "file not found in artwork list", nil)
		default:
			respondError(c, response.CodeInternal, "artwork delete failed", err)
		}
		return
	}

	response.Success(c, nil)
}
