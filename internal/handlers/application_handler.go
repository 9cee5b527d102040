package handlers

import (
	"net/http"

	"brandlink_backend/internal/services"
	"brandlink_backend/internal/services/dto"
	"brandlink_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	*BaseHandler
	applicationService *services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applicationService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        base,
		applicationService: applicationService,
	}
}

func (h *ApplicationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	applications := rg.Group("/applications")
	{
		applications.POST("", h.Apply)
		applications.POST("/cancel", h.Cancel)
		applications.GET("/check-applied", h.CheckApplied)
	}
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	var req dto.ApplyRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	application, err := h.applicationService.Apply(userID, &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    application,
	})
}

func (h *ApplicationHandler) Cancel(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	var req dto.CancelApplicationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	applicationID, err := h.applicationService.Cancel(userID, &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        "Application cancelled",
		"application_id": applicationID,
	})
}

func (h *ApplicationHandler) CheckApplied(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	targetID := c.Query("target_id")
	if targetID == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("target_id is required"))
		return
	}

	status, err := h.applicationService.CheckStatus(userID, targetID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}
