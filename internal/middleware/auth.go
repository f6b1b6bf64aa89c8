// File: internal/middleware/auth.go
package middleware

import (
	"strings"

	"donation_backend/internal/common"
	"donation_backend/internal/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware creates a Gin middleware that authenticates requests
// by verifying the bearer ID token against the identity service.
func AuthMiddleware(verifier shared.TokenVerifier, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(common.AuthorizationHeader)
		if authHeader == "" {
			logger.Debug("Authorization header missing")
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header is required."))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], common.AuthorizationTypeBearer) {
			logger.Debug("Authorization header format invalid")
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header format must be 'Bearer <token>'."))
			return
		}

		token, err := verifier.VerifyIDToken(c.Request.Context(), parts[1])
		if err != nil {
			logger.Warn("ID token verification failed", zap.Error(err))
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Invalid or expired ID token."))
			return
		}

		email, _ := token.Claims["email"].(string)
		name, _ := token.Claims["name"].(string)

		c.Set(common.UserUIDKey, token.UID)
		c.Set(common.UserEmailKey, email)
		c.Set(common.UserNameKey, name)

		logger.Debug("User authenticated successfully",
			zap.String("uid", token.UID),
			zap.String("email", email),
		)

		c.Next()
	}
}

// AdminOnlyMiddleware restricts a route to the configured administrator
// address. There is no role model; admin is a single fixed email.
func AdminOnlyMiddleware(adminEmail string) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := common.GetUserEmailFromContext(c)
		if email == "" {
			common.RespondWithError(c, common.ErrForbidden.WithDetails("User email not found in context."))
			return
		}
		if !strings.EqualFold(email, adminEmail) {
			common.RespondWithError(c, common.ErrForbidden.WithDetails("You do not have sufficient permissions for this resource."))
			return
		}
		c.Next()
	}
}
