// File: internal/profile/handler.go
package profile

import (
	"donation_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for profile handlers.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new profile handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes sets up the routes for profile operations.
// All profile routes require an authenticated user.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	profileGroup := router.Group("/profile", authMW)
	{
		profileGroup.GET("", h.getProfile)
		profileGroup.PUT("", h.updateProfile)
	}
}

func (h *Handler) getProfile(c *gin.Context) {
	uid := common.GetUserUIDFromContext(c)
	if uid == "" {
		h.logger.Error("User UID not found in context for profile fetch")
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}

	p, err := h.service.GetProfile(c.Request.Context(), uid)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	common.RespondOK(c, "Profile retrieved successfully.", p)
}

func (h *Handler) updateProfile(c *gin.Context) {
	uid := common.GetUserUIDFromContext(c)
	if uid == "" {
		h.logger.Error("User UID not found in context for profile update")
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Profile update: Invalid request body", zap.Error(err))
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	p, err := h.service.UpdateProfile(c.Request.Context(), uid, &req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	common.RespondOK(c, "Profile updated successfully!", p)
}
