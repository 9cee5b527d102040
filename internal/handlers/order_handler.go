package handlers

import (
	"net/http"

	"brandlink_backend/internal/middleware"
	"brandlink_backend/internal/models"
	"brandlink_backend/internal/services"
	"brandlink_backend/internal/services/dto"
	"brandlink_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	*BaseHandler
	orderService *services.OrderService
}

func NewOrderHandler(base *BaseHandler, orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		BaseHandler:  base,
		orderService: orderService,
	}
}

func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.GET("/:orderId/milestones", h.ListMilestones)

		// approval and completion are reviewer actions
		reviews := orders.Group("")
		reviews.Use(middleware.RequireRoles(models.UserRoleBrand, models.UserRoleAdmin))
		reviews.POST("/:orderId/approve", h.Approve)
		reviews.POST("/:orderId/complete", h.Complete)
	}
}

func (h *OrderHandler) Approve(c *gin.Context) {
	if _, ok := h.UserID(c); !ok {
		return
	}

	order, err := h.orderService.Approve(c.Param("orderId"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Order approved",
		"order_id": order.ID,
		"status":   order.Status,
	})
}

func (h *OrderHandler) Complete(c *gin.Context) {
	if _, ok := h.UserID(c); !ok {
		return
	}

	var req dto.CompleteOrderRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	order, err := h.orderService.Complete(c.Param("orderId"), req.CompletedBy, req.CompletionNotes)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Order completed",
		"order_id": order.ID,
		"status":   order.Status,
	})
}

func (h *OrderHandler) ListMilestones(c *gin.Context) {
	if _, ok := h.UserID(c); !ok {
		return
	}

	milestones, err := h.orderService.ListMilestones(c.Param("orderId"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    milestones,
	})
}
