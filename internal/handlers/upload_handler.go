package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"uploadhub_backend/internal/models"
	"uploadhub_backend/internal/services"
	"uploadhub_backend/internal/services/dto"
	"uploadhub_backend/internal/types"
)

type UploadHandler struct {
	*BaseHandler
	uploadService services.UploadService
}

func NewUploadHandler(base *BaseHandler, uploadService services.UploadService) *UploadHandler {
	return &UploadHandler{BaseHandler: base, uploadService: uploadService}
}

func (h *UploadHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/uploads", h.Open)
	rg.GET("/uploads", h.List)
	rg.GET("/uploads/:id", h.Get)
	rg.PATCH("/uploads/:id/status", h.SetStatus)
	rg.POST("/uploads/:id/files", h.AttachFile)
	rg.GET("/uploads/:id/files", h.ListFiles)
	rg.GET("/pipelines/:id/uploads", h.ListByPipeline)
}

// Open returns the caller's resumable draft when one exists, otherwise
// a fresh upload.
func (h *UploadHandler) Open(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	var req dto.OpenUploadRequest
	if c.Request.ContentLength > 0 {
		if !h.BindAndValidateJSON(c, &req) {
			return
		}
	}

	upload, err := h.uploadService.OpenOrResume(c.Request.Context(), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, upload)
}

func (h *UploadHandler) Get(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	upload, err := h.uploadService.Get(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, upload)
}

func (h *UploadHandler) SetStatus(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.SetStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	upload, err := h.uploadService.SetStatus(c.Request.Context(), actor, id, req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, upload)
}

func (h *UploadHandler) List(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	var filters types.UploadFilters
	if !h.BindAndValidateQuery(c, &filters) {
		return
	}

	uploads, err := h.uploadService.List(c.Request.Context(), actor, filters)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UploadListResponse{Count: len(uploads), Results: uploads})
}

func (h *UploadHandler) ListByPipeline(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	pipelineID, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var filters types.UploadFilters
	if !h.BindAndValidateQuery(c, &filters) {
		return
	}

	status := models.UploadStatus(c.Query("status"))
	uploads, err := h.uploadService.ListByPipeline(c.Request.Context(), actor, pipelineID, status, filters)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UploadListResponse{Count: len(uploads), Results: uploads})
}

// AttachFile takes a multipart form: the file part plus optional
// "checksum" and "type" fields.
func (h *UploadHandler) AttachFile(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	uploadID, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer src.Close()

	declaredType := c.PostForm("type")
	if declaredType == "" {
		declaredType = fileHeader.Header.Get("Content-Type")
	}

	req := &dto.AttachFileRequest{
		Filename:     fileHeader.Filename,
		DeclaredType: declaredType,
		Checksum:     c.PostForm("checksum"),
		Size:         fileHeader.Size,
		Content:      src,
	}

	file, err := h.uploadService.AttachFile(c.Request.Context(), actor, uploadID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, file)
}

func (h *UploadHandler) ListFiles(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	uploadID, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	files, err := h.uploadService.ListFiles(c.Request.Context(), actor, uploadID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, files)
}
