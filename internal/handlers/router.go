package handlers

import (
	"github.com/formforge/formbuilder-service/internal/services"
	"github.com/formforge/formbuilder-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	formHandler     *FormHandler
	responseHandler *ResponseHandler
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		formHandler:     NewFormHandler(serviceManager.Form(), logger),
		responseHandler: NewResponseHandler(serviceManager.Response(), serviceManager.Export(), logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "formbuilder-service",
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Form routes
		forms := v1.Group("/forms")
		{
			forms.POST("", hm.formHandler.CreateForm)
			forms.GET("", hm.formHandler.ListForms)
			forms.GET("/:id", hm.formHandler.GetForm)
			forms.PUT("/:id", hm.formHandler.UpdateForm)
			forms.DELETE("/:id", hm.formHandler.DeleteForm)
			forms.PATCH("/:id/publish", hm.formHandler.PublishForm)

			// Image references (upload/storage happens elsewhere)
			forms.POST("/:id/header-image", hm.formHandler.SetHeaderImage)
			forms.POST("/:id/questions/:question_index/image", hm.formHandler.SetQuestionImage)
		}

		// Response routes
		responses := v1.Group("/responses")
		{
			responses.POST("/:form_id", hm.responseHandler.SubmitResponse)
			responses.GET("/:form_id", hm.responseHandler.ListResponses)
			responses.GET("/:form_id/stats", hm.responseHandler.GetStats)
			responses.GET("/:form_id/export", hm.responseHandler.ExportResponses)
			responses.DELETE("/by-id/:response_id", hm.responseHandler.DeleteResponse)
		}
	}
}
