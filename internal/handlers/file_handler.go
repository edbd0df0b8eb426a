package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"uploadhub_backend/internal/logger"
	"uploadhub_backend/internal/services"
	"uploadhub_backend/internal/services/dto"
	"uploadhub_backend/pkg/apperrors"
)

type FileHandler struct {
	*BaseHandler
	uploadService   services.UploadService
	metadataService services.MetadataService
}

func NewFileHandler(base *BaseHandler, uploadService services.UploadService, metadataService services.MetadataService) *FileHandler {
	return &FileHandler{
		BaseHandler:     base,
		uploadService:   uploadService,
		metadataService: metadataService,
	}
}

func (h *FileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/files/:id", h.Get)
	rg.GET("/files/:id/download", h.Download)
	rg.POST("/files/:id/metadata", h.WriteMetadata)
}

func (h *FileHandler) Get(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	file, err := h.uploadService.GetFile(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, file)
}

func (h *FileHandler) Download(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	file, reader, err := h.uploadService.OpenFile(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	c.Header("Content-Length", strconv.FormatInt(file.Size, 10))
	contentType := file.Type
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)

	if _, err := io.Copy(c.Writer, reader); err != nil {
		logger.CtxWithError(c.Request.Context(), "file download interrupted", err, "file_id", file.ID)
	}
}

// WriteMetadata applies a batch of key/value pairs to the file (and to
// its siblings when the upload shares metadata).
func (h *FileHandler) WriteMetadata(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var pairs []dto.MetadataPair
	if err := c.ShouldBindJSON(&pairs); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return
	}

	file, err := h.metadataService.Write(c.Request.Context(), actor, id, pairs)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, file)
}
