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

type PaymentHandler struct {
	*BaseHandler
	paymentService *services.PaymentService
}

func NewPaymentHandler(base *BaseHandler, paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler:    base,
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	{
		payments.POST("/checkout-session", h.CreateCheckoutSession)

		// capture and cancel move real money
		actions := payments.Group("")
		actions.Use(middleware.RequireRoles(models.UserRoleBrand, models.UserRoleAdmin))
		actions.POST("/capture", h.Capture)
		actions.POST("/cancel", h.Cancel)
	}
}

func (h *PaymentHandler) Capture(c *gin.Context) {
	if _, ok := h.UserID(c); !ok {
		return
	}

	var req dto.PaymentActionRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	intent, err := h.paymentService.Capture(req.PaymentIntentID, req.PaymentID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"payment_intent": intent,
	})
}

func (h *PaymentHandler) Cancel(c *gin.Context) {
	if _, ok := h.UserID(c); !ok {
		return
	}

	var req dto.PaymentActionRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	intent, err := h.paymentService.Cancel(req.PaymentIntentID, req.PaymentID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"payment_intent": intent,
	})
}

func (h *PaymentHandler) CreateCheckoutSession(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	var req dto.CheckoutSessionRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	session, err := h.paymentService.CreateCheckoutSession(userID, &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    session,
	})
}
