package firebase

import (
	"context"
	"fmt"
	"path/filepath"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"donation_backend/internal/config"
)

// Service wraps the Firebase Admin SDK clients used by the app:
// the Auth client for token verification and sign-out, and the
// Firestore client backing the document store.
type Service struct {
	authClient      *auth.Client
	firestoreClient *firestore.Client
	logger          *zap.Logger
}

// NewService initializes the Firebase Admin SDK and creates a new Service.
func NewService(cfg *config.Config, logger *zap.Logger) (*Service, error) {
	if cfg.FirebaseServiceAccountKeyPath == "" {
		logger.Error("Firebase service account key path is not configured.")
		return nil, fmt.Errorf("firebase service account key path is required")
	}

	// Clean the path to prevent issues with relative paths or symlinks
	cleanPath := filepath.Clean(cfg.FirebaseServiceAccountKeyPath)

	opt := option.WithCredentialsFile(cleanPath)

	var app *firebase.App
	var err error

	if cfg.FirebaseProjectID != "" {
		conf := &firebase.Config{ProjectID: cfg.FirebaseProjectID}
		app, err = firebase.NewApp(context.Background(), conf, opt)
	} else {
		// If ProjectID is not specified in config, let SDK infer from credentials
		app, err = firebase.NewApp(context.Background(), nil, opt)
	}

	if err != nil {
		logger.Error("Failed to initialize Firebase Admin SDK app", zap.Error(err), zap.String("keyPath", cleanPath))
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	authClient, err := app.Auth(context.Background())
	if err != nil {
		logger.Error("Failed to get Firebase Auth client", zap.Error(err))
		return nil, fmt.Errorf("error getting Firebase Auth client: %w", err)
	}

	firestoreClient, err := app.Firestore(context.Background())
	if err != nil {
		logger.Error("Failed to get Firestore client", zap.Error(err))
		return nil, fmt.Errorf("error getting Firestore client: %w", err)
	}

	logger.Info("Firebase Admin SDK initialized successfully.")
	return &Service{
		authClient:      authClient,
		firestoreClient: firestoreClient,
		logger:          logger,
	}, nil
}

// Firestore exposes the document-store client for repositories.
func (s *Service) Firestore() *firestore.Client {
	return s.firestoreClient
}

// VerifyIDToken verifies a Firebase ID token and returns the token claims.
func (s *Service) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	if idToken == "" {
		return nil, fmt.Errorf("ID token must not be empty")
	}

	token, err := s.authClient.VerifyIDToken(ctx, idToken)
	if err != nil {
		s.logger.Warn("Firebase ID token verification failed", zap.Error(err))
		return nil, fmt.Errorf("failed to verify Firebase ID token: %w", err)
	}

	s.logger.Debug("Firebase ID token verified successfully", zap.String("uid", token.UID))
	return token, nil
}

// RevokeRefreshTokens revokes all refresh tokens for a given user.
// This is the server side of the logout flow.
func (s *Service) RevokeRefreshTokens(ctx context.Context, uid string) error {
	if err := s.authClient.RevokeRefreshTokens(ctx, uid); err != nil {
		s.logger.Error("Failed to revoke refresh tokens", zap.Error(err), zap.String("uid", uid))
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}
	s.logger.Info("Successfully revoked refresh tokens for user", zap.String("uid", uid))
	return nil
}

// Close releases the Firestore client connection.
func (s *Service) Close() error {
	return s.firestoreClient.Close()
}
