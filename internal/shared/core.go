package shared

import (
	"context"

	firebaseauth "firebase.google.com/go/v4/auth"
)

// User represents the identity-service view of a user. The app only
// reads it; the identity service owns it.
type User struct {
	UID         string `json:"uid"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}

// SignInResult is the outcome of a successful credential sign-in.
type SignInResult struct {
	User         User
	IDToken      string
	RefreshToken string
	ExpiresIn    int64 // seconds until the ID token expires
}

// IdentityService defines the operations delegated to the hosted
// identity provider.
type IdentityService interface {
	SignInWithPassword(ctx context.Context, email, password string) (*SignInResult, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
}

// TokenVerifier validates an identity-service ID token. Split from
// IdentityService so middleware can be tested with a small mock.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*firebaseauth.Token, error)
}
