// File: internal/auth/service.go
package auth

import (
	"context"
	"strings"

	"donation_backend/internal/common"
	"donation_backend/internal/config"
	"donation_backend/internal/shared"

	"go.uber.org/zap"
)

// Service handles credential sign-in and sign-out against the identity
// service, and decides the post-login redirect.
type Service struct {
	identity shared.IdentityService
	cfg      *config.Config
	logger   *zap.Logger
}

// NewService creates a new auth service.
func NewService(identity shared.IdentityService, cfg *config.Config, logger *zap.Logger) *Service {
	return &Service{
		identity: identity,
		cfg:      cfg,
		logger:   logger,
	}
}

// Login verifies credentials with the identity service. There is no
// retry, lockout, or rate limiting; a failure is surfaced to the user
// with the identity service's own message.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	result, err := s.identity.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}

	redirect := common.RouteDonation
	if strings.EqualFold(email, s.cfg.AdminEmail) {
		redirect = common.RouteAdminDashboard
	}

	s.logger.Info("User logged in",
		zap.String("uid", result.User.UID),
		zap.String("redirect", redirect),
	)

	return &LoginResponse{
		User:         result.User,
		IDToken:      result.IDToken,
		RefreshToken: result.RefreshToken,
		ExpiresIn:    result.ExpiresIn,
		Redirect:     redirect,
	}, nil
}

// Logout revokes the user's refresh tokens and returns the landing route.
func (s *Service) Logout(ctx context.Context, uid string) (*LogoutResponse, error) {
	if err := s.identity.RevokeRefreshTokens(ctx, uid); err != nil {
		s.logger.Error("Failed to revoke refresh tokens on logout", zap.Error(err), zap.String("uid", uid))
		return nil, common.ErrInternalServer.WithDetails("Could not complete sign-out.")
	}
	s.logger.Info("User logged out", zap.String("uid", uid))
	return &LogoutResponse{Redirect: common.RouteLanding}, nil
}
