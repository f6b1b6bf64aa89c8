package firebase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"donation_backend/internal/common"
)

func newTestIdentityClient(serverURL string) *IdentityClient {
	return &IdentityClient{
		apiKey:     "test-api-key",
		endpoint:   serverURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		logger:     zap.NewNop(),
	}
}

func TestIdentityClient_SignInWithPassword_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-api-key", r.URL.Query().Get("key"))

		var req signInRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "asha@gmail.com", req.Email)
		assert.Equal(t, "secret", req.Password)
		assert.True(t, req.ReturnSecureToken)

		json.NewEncoder(w).Encode(signInResponse{
			LocalID:      "uid-1",
			Email:        "asha@gmail.com",
			DisplayName:  "Asha Rao",
			IDToken:      "id-token",
			RefreshToken: "refresh-token",
			ExpiresIn:    "3600",
		})
	}))
	defer server.Close()

	client := newTestIdentityClient(server.URL)

	result, err := client.SignInWithPassword(context.Background(), "asha@gmail.com", "secret")

	assert.NoError(t, err)
	assert.Equal(t, "uid-1", result.User.UID)
	assert.Equal(t, "Asha Rao", result.User.DisplayName)
	assert.Equal(t, "id-token", result.IDToken)
	assert.Equal(t, int64(3600), result.ExpiresIn)
}

func TestIdentityClient_SignInWithPassword_InvalidCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"INVALID_PASSWORD"}}`))
	}))
	defer server.Close()

	client := newTestIdentityClient(server.URL)

	result, err := client.SignInWithPassword(context.Background(), "asha@gmail.com", "wrong")

	assert.Nil(t, result)
	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, "UNAUTHORIZED", apiErr.Code)
	// The upstream reason is surfaced as-is.
	assert.Equal(t, "INVALID_PASSWORD", apiErr.Details)
}

func TestIdentityClient_SignInWithPassword_UnreadableError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("upstream blew up"))
	}))
	defer server.Close()

	client := newTestIdentityClient(server.URL)

	result, err := client.SignInWithPassword(context.Background(), "asha@gmail.com", "secret")

	assert.Nil(t, result)
	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, "UNAUTHORIZED", apiErr.Code)
	assert.Equal(t, "Sign-in failed.", apiErr.Details)
}

func TestIdentityClient_SignInWithPassword_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := newTestIdentityClient(server.URL)

	result, err := client.SignInWithPassword(context.Background(), "asha@gmail.com", "secret")

	assert.Nil(t, result)
	assert.True(t, errors.Is(err, common.ErrServiceUnavailable))
}

func TestIdentityClient_SignInWithPassword_BadExpiresInDefaults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(signInResponse{
			LocalID: "uid-1",
			IDToken: "id-token",
			// ExpiresIn missing
		})
	}))
	defer server.Close()

	client := newTestIdentityClient(server.URL)

	result, err := client.SignInWithPassword(context.Background(), "asha@gmail.com", "secret")

	assert.NoError(t, err)
	assert.Equal(t, int64(3600), result.ExpiresIn)
}
