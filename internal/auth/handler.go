// File: internal/auth/handler.go
package auth

import (
	"errors"

	"donation_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for auth handlers.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes sets up the routes for authentication operations.
// Login is public; logout requires an authenticated user.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", h.login)
		authGroup.POST("/logout", authMW, h.logout)
	}
}

func (h *Handler) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Login: Invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	common.RespondOK(c, "Login successful.", resp)
}

func (h *Handler) logout(c *gin.Context) {
	uid := common.GetUserUIDFromContext(c)
	if uid == "" {
		h.logger.Error("User UID not found in context for logout")
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}

	resp, err := h.service.Logout(c.Request.Context(), uid)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	common.RespondOK(c, "You have been logged out.", resp)
}
