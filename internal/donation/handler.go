// File: internal/donation/handler.go
package donation

import (
	"errors"

	"donation_backend/internal/common"
	"donation_backend/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for donation handlers.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new donation handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes sets up the routes for donation operations. Donor
// routes require authentication; the listing additionally requires the
// admin address.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	donationGroup := router.Group("/donations", authMW)
	{
		donationGroup.POST("/checkout", h.checkout)
		donationGroup.POST("/confirm", h.confirm)
		donationGroup.POST("/upi/complete", h.completeUPI)
	}

	adminGroup := router.Group("/admin", authMW, adminMW)
	{
		adminGroup.GET("/donations", h.listDonations)
	}
}

func sessionUser(c *gin.Context) shared.User {
	return shared.User{
		UID:         common.GetUserUIDFromContext(c),
		DisplayName: common.GetUserNameFromContext(c),
		Email:       common.GetUserEmailFromContext(c),
	}
}

func (h *Handler) checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Checkout: Invalid request body", zap.Error(err))
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	resp, err := h.service.Checkout(c.Request.Context(), sessionUser(c), &req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	common.RespondOK(c, "Checkout prepared.", resp)
}

func (h *Handler) confirm(c *gin.Context) {
	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Confirm: Invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	result, err := h.service.Confirm(c.Request.Context(), sessionUser(c), &req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	common.RespondCreated(c, "Payment successful! Donation recorded.", result)
}

func (h *Handler) completeUPI(c *gin.Context) {
	var req UPICompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("UPI complete: Invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	result, err := h.service.CompleteUPI(c.Request.Context(), sessionUser(c), &req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	common.RespondOK(c, "Payment successful via Google Pay!", result)
}

func (h *Handler) listDonations(c *gin.Context) {
	page, pageSize := common.GetPaginationParams(c)

	records, pagination, err := h.service.ListDonations(c.Request.Context(), page, pageSize)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	common.RespondPaginated(c, "Donations retrieved successfully.", records, pagination)
}
