package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"uploadhub_backend/internal/services"
	"uploadhub_backend/internal/services/dto"
)

type NoteHandler struct {
	*BaseHandler
	noteService services.NoteService
}

func NewNoteHandler(base *BaseHandler, noteService services.NoteService) *NoteHandler {
	return &NoteHandler{BaseHandler: base, noteService: noteService}
}

func (h *NoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/notes", h.Create)
	rg.GET("/uploads/:id/notes", h.ListByUpload)
}

func (h *NoteHandler) Create(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	var req dto.NoteRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	note, err := h.noteService.Create(c.Request.Context(), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

func (h *NoteHandler) ListByUpload(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	uploadID, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	notes, err := h.noteService.ListByUpload(c.Request.Context(), actor, uploadID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}
