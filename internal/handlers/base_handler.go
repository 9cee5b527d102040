package handlers

import (
	"fmt"

	"brandlink_backend/internal/logger"
	"brandlink_backend/internal/validator"
	"brandlink_backend/pkg/apperrors"
	"brandlink_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{validator: v}
}

// GetDB extracts the *gorm.DB handle that DBMiddleware stored in the gin
// context. Misconfiguration here is a programming error, hence the panic.
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	dbKey := string(contextkeys.DBContextKey)

	val, ok := c.Get(dbKey)
	if !ok {
		logger.CtxError(c.Request.Context(), "db key not found in context", "key", dbKey)
		panic("DBMiddleware did not set the db key")
	}

	db, ok := val.(*gorm.DB)
	if !ok {
		logger.CtxError(c.Request.Context(), "db in context has wrong type", "key", dbKey, "type", fmt.Sprintf("%T", val))
		panic("db in context has incorrect type")
	}

	return db
}

// BindAndValidateJSON binds the JSON body and runs struct validation,
// writing the error response itself on failure.
func (h *BaseHandler) BindAndValidateJSON(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindJSON(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind JSON body", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}

	if err := h.validator.Struct(obj); err != nil {
		logger.CtxWarn(ctx, "Validation failed", "error", err.Error(), "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.ValidationError(err.Error()))
		return false
	}
	return true
}

// UserID returns the authenticated user from the gin context, writing a 401
// when the auth middleware did not run.
func (h *BaseHandler) UserID(c *gin.Context) (string, bool) {
	val, exists := c.Get("userID")
	if !exists {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("authentication required"))
		return "", false
	}
	id, ok := val.(string)
	if !ok || id == "" {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("authentication required"))
		return "", false
	}
	return id, true
}
