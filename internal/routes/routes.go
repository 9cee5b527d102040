package routes

import (
	"brandlink_backend/internal/auth"
	"brandlink_backend/internal/handlers"
	"brandlink_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Register wires the public and protected route trees under /api/v1.
func Register(router *gin.Engine, h *handlers.AppHandlers, tokens *auth.TokenManager) {
	v1 := router.Group("/api/v1")

	h.Health.RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(tokens))
	h.RegisterProtected(protected)
}
