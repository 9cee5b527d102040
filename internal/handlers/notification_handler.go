package handlers

import (
	"net/http"
	"strconv"

	"brandlink_backend/internal/services"
	"brandlink_backend/internal/services/dto"
	"brandlink_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	*BaseHandler
	notificationService *services.NotificationService
}

func NewNotificationHandler(base *BaseHandler, notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler:         base,
		notificationService: notificationService,
	}
}

func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	notifications := rg.Group("/notifications")
	{
		notifications.POST("", h.Create)
		notifications.GET("", h.List)
		notifications.GET("/unread-count", h.UnreadCount)
		notifications.PUT("/:notificationId/read", h.MarkRead)
		notifications.PUT("/read-all", h.MarkAllRead)
		notifications.POST("/invitation-response", h.RespondToInvitation)
	}
}

func (h *NotificationHandler) Create(c *gin.Context) {
	if _, ok := h.UserID(c); !ok {
		return
	}

	var req dto.CreateNotificationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	notification, err := h.notificationService.Create(&req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    notification,
	})
}

func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	unreadOnly := c.Query("unread_only") == "true"

	notifications, total, err := h.notificationService.List(userID, unreadOnly, page, pageSize)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    notifications,
		"total":   total,
		"page":    page,
	})
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	count, err := h.notificationService.UnreadCount(userID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"unread_count": count,
	})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(c.Param("notificationId"), userID); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Notification marked as read",
	})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	result, err := h.notificationService.MarkAllRead(userID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"updated":          result.Updated,
		"remaining_unread": result.RemainingUnread,
	})
}

func (h *NotificationHandler) RespondToInvitation(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	var req dto.InvitationResponseRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.notificationService.RespondToInvitation(userID, &req); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Invitation response recorded",
	})
}
