package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"uploadhub_backend/internal/services"
	"uploadhub_backend/internal/services/dto"
	"uploadhub_backend/internal/types"
)

type ValidationHandler struct {
	*BaseHandler
	validationService services.ValidationService
}

func NewValidationHandler(base *BaseHandler, validationService services.ValidationService) *ValidationHandler {
	return &ValidationHandler{BaseHandler: base, validationService: validationService}
}

func (h *ValidationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/validations", h.List)
	rg.GET("/validations/:id", h.Get)
	rg.PATCH("/validations/:id", h.Update)
	rg.GET("/pipelines/:id/validated-uploads", h.FullyValidated)
}

// List serves the validator worklist: every task assigned to one of the
// caller's groups. Ordering accepts id, upload__id, -upload__id,
// upload__uploaded_at and -upload__uploaded_at.
func (h *ValidationHandler) List(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	ordering := types.ValidationOrdering(c.DefaultQuery("ordering", string(types.OrderByID)))
	validations, err := h.validationService.ListForValidator(c.Request.Context(), actor, ordering)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, validations)
}

func (h *ValidationHandler) Get(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	validation, err := h.validationService.Get(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, validation)
}

func (h *ValidationHandler) Update(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.ValidationUpdateRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	validation, err := h.validationService.Mutate(c.Request.Context(), actor, id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, validation)
}

// FullyValidated returns the pipeline's uploads whose complete task set
// is VALIDATED_OK, the hand-off point for downstream automation.
func (h *ValidationHandler) FullyValidated(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	pipelineID, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	uploads, err := h.validationService.FullyValidatedUploads(c.Request.Context(), actor, pipelineID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UploadListResponse{Count: len(uploads), Results: uploads})
}
