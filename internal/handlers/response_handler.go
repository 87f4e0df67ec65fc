package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/formforge/formbuilder-service/internal/repositories"
	"github.com/formforge/formbuilder-service/internal/services"
	"github.com/formforge/formbuilder-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type ResponseHandler struct {
	BaseHandler
	responseService services.ResponseService
	exportService   services.ExportService
}

func NewResponseHandler(
	responseService services.ResponseService,
	exportService services.ExportService,
	logger utils.Logger,
) *ResponseHandler {
	return &ResponseHandler{
		BaseHandler:     NewBaseHandler(logger),
		responseService: responseService,
		exportService:   exportService,
	}
}

// SubmitResponse handles POST /responses/:form_id
func (h *ResponseHandler) SubmitResponse(c *gin.Context) {
	formID, ok := parseIDParam(c, "form_id")
	if !ok {
		h.RespondWithError(c, http.StatusBadRequest, "invalid form id", nil)
		return
	}

	var req services.SubmitResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	meta := services.RequestMeta{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}

	response, err := h.responseService.Submit(c.Request.Context(), formID, &req, meta)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ListResponses handles GET /responses/:form_id
func (h *ResponseHandler) ListResponses(c *gin.Context) {
	formID, ok := parseIDParam(c, "form_id")
	if !ok {
		h.RespondWithError(c, http.StatusBadRequest, "invalid form id", nil)
		return
	}

	filters := repositories.ResponseFilters{}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		filters.Limit = limit
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil {
		filters.Offset = offset
	}

	responses, total, err := h.responseService.GetByForm(c.Request.Context(), formID, filters)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ListResponse{Data: responses, Total: total})
}

// DeleteResponse handles DELETE /responses/:response_id
func (h *ResponseHandler) DeleteResponse(c *gin.Context) {
	responseID, ok := parseIDParam(c, "response_id")
	if !ok {
		h.RespondWithError(c, http.StatusBadRequest, "invalid response id", nil)
		return
	}

	if err := h.responseService.Delete(c.Request.Context(), responseID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "response deleted successfully", nil)
}

// GetStats handles GET /responses/:form_id/stats
func (h *ResponseHandler) GetStats(c *gin.Context) {
	formID, ok := parseIDParam(c, "form_id")
	if !ok {
		h.RespondWithError(c, http.StatusBadRequest, "invalid form id", nil)
		return
	}

	stats, err := h.responseService.GetStats(c.Request.Context(), formID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ExportResponses handles GET /responses/:form_id/export
func (h *ResponseHandler) ExportResponses(c *gin.Context) {
	formID, ok := parseIDParam(c, "form_id")
	if !ok {
		h.RespondWithError(c, http.StatusBadRequest, "invalid form id", nil)
		return
	}

	data, err := h.exportService.ExportResponses(c.Request.Context(), formID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("form-%d-responses.xlsx", formID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
