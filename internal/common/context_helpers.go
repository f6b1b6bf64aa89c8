// File: internal/common/context_helpers.go
package common

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// GetTokenFromContext retrieves the ID token string from the Authorization header.
// Returns an empty string if not found.
func GetTokenFromContext(c *gin.Context) string {
	authHeader := c.GetHeader(AuthorizationHeader)
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], AuthorizationTypeBearer) {
		return ""
	}
	return parts[1]
}

// GetUserUIDFromContext retrieves the identity-service UID from the Gin context.
// Returns an empty string if not found.
func GetUserUIDFromContext(c *gin.Context) string {
	val, exists := c.Get(UserUIDKey)
	if !exists {
		return ""
	}
	uid, ok := val.(string)
	if !ok {
		return ""
	}
	return uid
}

// GetUserEmailFromContext retrieves the authenticated user's email from the Gin context.
func GetUserEmailFromContext(c *gin.Context) string {
	val, exists := c.Get(UserEmailKey)
	if !exists {
		return ""
	}
	email, ok := val.(string)
	if !ok {
		return ""
	}
	return email
}

// GetUserNameFromContext retrieves the authenticated user's display name from the Gin context.
func GetUserNameFromContext(c *gin.Context) string {
	val, exists := c.Get(UserNameKey)
	if !exists {
		return ""
	}
	name, ok := val.(string)
	if !ok {
		return ""
	}
	return name
}
