// File: internal/profile/service.go
package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"donation_backend/internal/common"
	"donation_backend/internal/config"

	"go.uber.org/zap"
)

// Service handles profile reads and updates.
type Service struct {
	repo   Repository
	cfg    *config.Config
	logger *zap.Logger
}

// NewService creates a new profile service.
func NewService(repo Repository, cfg *config.Config, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		cfg:    cfg,
		logger: logger,
	}
}

// GetProfile fetches the profile for the given UID. A missing document
// is not an error: the caller gets the zero-value profile, matching a
// form that renders with empty defaults.
func (s *Service) GetProfile(ctx context.Context, uid string) (*Profile, error) {
	p, err := s.repo.Get(ctx, uid)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.logger.Debug("No profile document for user, returning empty profile", zap.String("uid", uid))
			return &Profile{}, nil
		}
		s.logger.Error("Failed to fetch profile", zap.Error(err), zap.String("uid", uid))
		return nil, err
	}
	return p, nil
}

// ValidateEmail checks the domain-suffix rule. Returns the error
// message shown to the user, or an empty string when the email passes.
func (s *Service) ValidateEmail(email string) string {
	if !strings.HasSuffix(email, s.cfg.ProfileEmailDomain) {
		return fmt.Sprintf("Email must end with %s", s.cfg.ProfileEmailDomain)
	}
	return ""
}

// UpdateProfile overwrites the stored profile document after the
// email-domain check passes. The store is never called when validation
// fails. There is no conflict detection; a concurrent external update
// is silently clobbered.
func (s *Service) UpdateProfile(ctx context.Context, uid string, req *UpdateProfileRequest) (*Profile, error) {
	if msg := s.ValidateEmail(req.Email); msg != "" {
		s.logger.Debug("Profile update rejected by email validation",
			zap.String("uid", uid),
			zap.String("email", req.Email),
		)
		return nil, common.NewValidationAPIError(map[string]string{"email": msg})
	}

	p := req.ToProfile()
	if err := s.repo.Set(ctx, uid, p); err != nil {
		s.logger.Error("Failed to update profile", zap.Error(err), zap.String("uid", uid))
		return nil, common.ErrInternalServer.WithDetails("Could not update profile.")
	}

	s.logger.Info("Profile updated successfully", zap.String("uid", uid))
	return p, nil
}
