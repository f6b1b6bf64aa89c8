// File: internal/auth/model.go
package auth

import "donation_backend/internal/shared"

// LoginRequest defines the structure for a credential sign-in attempt.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is returned on a successful sign-in. Redirect tells the
// frontend which screen to navigate to; the admin address goes to the
// admin dashboard, everyone else to the donation screen.
type LoginResponse struct {
	User         shared.User `json:"user"`
	IDToken      string      `json:"id_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresIn    int64       `json:"expires_in"`
	Redirect     string      `json:"redirect"`
}

// LogoutResponse carries the landing route the frontend should return to.
type LogoutResponse struct {
	Redirect string `json:"redirect"`
}
