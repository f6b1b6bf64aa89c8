// File: internal/common/context_keys.go
package common

const (
	// AuthorizationHeader is the header name for authorization token
	AuthorizationHeader = "Authorization"
	// AuthorizationTypeBearer is the prefix for Bearer tokens
	AuthorizationTypeBearer = "Bearer"
	// UserUIDKey is the context key for storing the authenticated user's identity-service UID
	UserUIDKey = "userUID"
	// UserEmailKey is the context key for storing the authenticated user's email
	UserEmailKey = "userEmail"
	// UserNameKey is the context key for storing the authenticated user's display name
	UserNameKey = "userName"
)
