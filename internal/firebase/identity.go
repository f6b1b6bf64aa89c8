package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"donation_backend/internal/common"
	"donation_backend/internal/config"
	"donation_backend/internal/shared"
)

// signInEndpoint is the Identity Toolkit REST operation for verifying
// email/password credentials. The Admin SDK deliberately has no
// password verification, so sign-in goes through the same REST API the
// client SDKs use, keyed by the project's Web API key.
const signInEndpoint = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"

// IdentityClient performs credential sign-in against the hosted
// identity service. It implements shared.IdentityService together with
// the Admin SDK backed Service.
type IdentityClient struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	service    *Service
	logger     *zap.Logger
}

var _ shared.IdentityService = (*IdentityClient)(nil)

// NewIdentityClient creates a new identity client using the configured
// Web API key.
func NewIdentityClient(cfg *config.Config, service *Service, logger *zap.Logger) *IdentityClient {
	return &IdentityClient{
		apiKey:     cfg.FirebaseWebAPIKey,
		endpoint:   signInEndpoint,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		service:    service,
		logger:     logger,
	}
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

type identityErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// SignInWithPassword verifies the given credentials with the identity
// service. On failure, the upstream error message is surfaced verbatim
// in the returned APIError details.
func (c *IdentityClient) SignInWithPassword(ctx context.Context, email, password string) (*shared.SignInResult, error) {
	body, err := json.Marshal(signInRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode sign-in request: %w", err)
	}

	url := fmt.Sprintf("%s?key=%s", c.endpoint, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build sign-in request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Identity service sign-in request failed", zap.Error(err))
		return nil, common.ErrServiceUnavailable.WithDetails("Could not reach the identity service.")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read sign-in response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var idErr identityErrorResponse
		if err := json.Unmarshal(respBody, &idErr); err != nil || idErr.Error.Message == "" {
			c.logger.Error("Identity service returned an unreadable error",
				zap.Int("status", resp.StatusCode))
			return nil, common.ErrUnauthorized.WithDetails("Sign-in failed.")
		}
		c.logger.Info("Credential sign-in rejected by identity service",
			zap.String("email", email),
			zap.String("reason", idErr.Error.Message))
		return nil, common.ErrUnauthorized.WithDetails(idErr.Error.Message)
	}

	var signIn signInResponse
	if err := json.Unmarshal(respBody, &signIn); err != nil {
		return nil, fmt.Errorf("failed to decode sign-in response: %w", err)
	}

	expiresIn, err := strconv.ParseInt(signIn.ExpiresIn, 10, 64)
	if err != nil {
		expiresIn = 3600
	}

	c.logger.Info("Credential sign-in succeeded", zap.String("uid", signIn.LocalID))
	return &shared.SignInResult{
		User: shared.User{
			UID:         signIn.LocalID,
			DisplayName: signIn.DisplayName,
			Email:       signIn.Email,
		},
		IDToken:      signIn.IDToken,
		RefreshToken: signIn.RefreshToken,
		ExpiresIn:    expiresIn,
	}, nil
}

// RevokeRefreshTokens delegates to the Admin SDK.
func (c *IdentityClient) RevokeRefreshTokens(ctx context.Context, uid string) error {
	return c.service.RevokeRefreshTokens(ctx, uid)
}
