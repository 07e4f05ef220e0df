package controller

import (
	"fmt"
	"path/filepath"
	"strings"

	"cyberhub_backend/internal/model"
	"cyberhub_backend/internal/util"
	"cyberhub_backend/pkg/storage"

	"github.com/gin-gonic/gin"
)

// 10 MiB, plenty for course illustrations.
const maxUploadSize = 10 << 20

var allowedUploadExt = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".svg":  true,
	".webp": true,
	".pdf":  true,
}

type UploadController struct {
	Store storage.Provider
}

func NewUploadController(store storage.Provider) *UploadController {
	return &UploadController{Store: store}
}

// @Summary Upload a content asset (exercise images, attachments)
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "asset file"
// @Success 200 {object} util.Response
// @Router /api/admin/uploads [post]
func (c *UploadController) Upload(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file field is required")
		return
	}

	if header.Size > maxUploadSize {
		util.BadRequest(ctx, "file exceeds the 10MB limit")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedUploadExt[ext] {
		util.BadRequest(ctx, fmt.Sprintf("file type %s is not allowed", ext))
		return
	}

	src, err := header.Open()
	if err != nil {
		util.ServerError(ctx, err)
		return
	}
	defer src.Close()

	filename := model.GenerateUUID() + ext
	url, err := c.Store.Upload(ctx.Request.Context(), filename, src, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		util.ServerError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"filename": filename,
		"url":      url,
	})
}
