package handlers

import (
	"net/http"
	"strconv"

	"github.com/formforge/formbuilder-service/internal/repositories"
	"github.com/formforge/formbuilder-service/internal/services"
	"github.com/formforge/formbuilder-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type FormHandler struct {
	BaseHandler
	formService services.FormService
}

func NewFormHandler(formService services.FormService, logger utils.Logger) *FormHandler {
	return &FormHandler{
		BaseHandler: NewBaseHandler(logger),
		formService: formService,
	}
}

// CreateForm handles POST /forms
func (h *FormHandler) CreateForm(c *gin.Context) {
	var req services.SaveFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	form, err := h.formService.Create(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, form)
}

// ListForms handles GET /forms
func (h *FormHandler) ListForms(c *gin.Context) {
	filters := repositories.FormFilters{
		Search: c.Query("search"),
	}

	if published := c.Query("published"); published != "" {
		value := published == "true"
		filters.Published = &value
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		filters.Limit = limit
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil {
		filters.Offset = offset
	}
	filters.SortBy = c.Query("sort_by")
	filters.SortOrder = c.Query("sort_order")

	forms, total, err := h.formService.List(c.Request.Context(), filters)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ListResponse{Data: forms, Total: total})
}

// GetForm handles GET /forms/:id
func (h *FormHandler) GetForm(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.RespondWithError(c, http.StatusBadRequest, "invalid form id", nil)
		return
	}

	form, err := h.formService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

// UpdateForm handles PUT /forms/:id
func (h *FormHandler) UpdateForm(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.RespondWithError(c, http.StatusBadRequest, "invalid form id", nil)
		return
	}

	var req services.SaveFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	form, err := h.formService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

// DeleteForm handles DELETE /forms/:id
func (h *FormHandler) DeleteForm(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.RespondWithError(c, http.StatusBadRequest, "invalid form id", nil)
		return
	}

	if err := h.formService.Delete(c.Request.Context(), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "form deleted successfully", nil)
}

type publishRequest struct {
	IsPublished bool `json:"isPublished"`
}

// PublishForm handles PATCH /forms/:id/publish
func (h *FormHandler) PublishForm(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.RespondWithError(c, http.StatusBadRequest, "invalid form id", nil)
		return
	}

	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	form, err := h.formService.SetPublished(c.Request.Context(), id, req.IsPublished)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

type imageRequest struct {
	ImageURL string `json:"imageUrl" binding:"required"`
}

// SetHeaderImage handles POST /forms/:id/header-image
func (h *FormHandler) SetHeaderImage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.RespondWithError(c, http.StatusBadRequest, "invalid form id", nil)
		return
	}

	var req imageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	form, err := h.formService.SetHeaderImage(c.Request.Context(), id, req.ImageURL)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"headerImage": form.HeaderImage})
}

// SetQuestionImage handles POST /forms/:id/questions/:question_index/image
func (h *FormHandler) SetQuestionImage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.RespondWithError(c, http.StatusBadRequest, "invalid form id", nil)
		return
	}

	questionIndex, err := strconv.Atoi(c.Param("question_index"))
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid question index", err)
		return
	}

	var req imageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	form, err := h.formService.SetQuestionImage(c.Request.Context(), id, questionIndex, req.ImageURL)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"image": form.Questions[questionIndex].Image})
}
