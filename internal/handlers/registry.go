package handlers

import (
	"brandlink_backend/internal/services"
	"brandlink_backend/internal/validator"

	"github.com/gin-gonic/gin"
)

// AppHandlers aggregates every route handler for registration.
type AppHandlers struct {
	Application  *ApplicationHandler
	Submission   *SubmissionHandler
	Order        *OrderHandler
	Notification *NotificationHandler
	Payment      *PaymentHandler
	Health       *HealthHandler
}

func NewAppHandlers(v *validator.Validator, sc *services.ServiceContainer) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		Application:  NewApplicationHandler(base, sc.Application),
		Submission:   NewSubmissionHandler(base, sc.Submission),
		Order:        NewOrderHandler(base, sc.Order),
		Notification: NewNotificationHandler(base, sc.Notification),
		Payment:      NewPaymentHandler(base, sc.Payment),
		Health:       NewHealthHandler(base),
	}
}

// RegisterProtected wires every authenticated route group.
func (h *AppHandlers) RegisterProtected(rg *gin.RouterGroup) {
	h.Application.RegisterRoutes(rg)
	h.Submission.RegisterRoutes(rg)
	h.Order.RegisterRoutes(rg)
	h.Notification.RegisterRoutes(rg)
	h.Payment.RegisterRoutes(rg)
}
