package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"uploadhub_backend/internal/services"
)

type PipelineHandler struct {
	*BaseHandler
	pipelineService services.PipelineService
}

func NewPipelineHandler(base *BaseHandler, pipelineService services.PipelineService) *PipelineHandler {
	return &PipelineHandler{BaseHandler: base, pipelineService: pipelineService}
}

func (h *PipelineHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/pipelines", h.List)
	rg.GET("/pipelines/:id", h.Get)
}

func (h *PipelineHandler) List(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	views, err := h.pipelineService.List(c.Request.Context(), actor)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *PipelineHandler) Get(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	view, err := h.pipelineService.Get(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
