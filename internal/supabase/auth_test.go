package supabase

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignInWithPasswordDecodesSession(t *testing.T) {
	userID := uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))

		creds := credentials{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "maria@example.com", creds.Email)

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"access_token": "token-abc",
			"refresh_token": "refresh-xyz",
			"token_type": "bearer",
			"expires_in": 3600,
			"user": {"id": "`+userID.String()+`", "email": "maria@example.com"}
		}`)
	}))
	defer server.Close()

	session, err := newTestClient(server.URL).
		SignInWithPassword(context.Background(), "maria@example.com", "hunter2secret")

	require.NoError(t, err)
	assert.Equal(t, "token-abc", session.AccessToken)
	assert.Equal(t, userID, session.User.ID)
}

func TestSignInWithPasswordSurfacesInvalidCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error":"invalid_grant","error_description":"Invalid login credentials"}`)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).
		SignInWithPassword(context.Background(), "maria@example.com", "wrong")

	require.Error(t, err)
	apiErr := &Error{}
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid login credentials", apiErr.Message)
}

func TestResetPasswordForEmailSendsRedirect(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/recover", r.URL.Path)
		body := struct {
			Email      string `json:"email"`
			RedirectTo string `json:"redirect_to"`
		}{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "maria@example.com", body.Email)
		assert.Equal(t, "https://shop.example.com/reset", body.RedirectTo)
		io.WriteString(w, `{}`)
	}))
	defer server.Close()

	err := newTestClient(server.URL).
		ResetPasswordForEmail(context.Background(), "maria@example.com", "https://shop.example.com/reset")

	assert.NoError(t, err)
}

func TestUpdatePasswordUsesAccessToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "Bearer token-abc", r.Header.Get("Authorization"))
		io.WriteString(w, `{}`)
	}))
	defer server.Close()

	err := newTestClient(server.URL).
		UpdatePassword(context.Background(), "token-abc", "newpassword1")

	assert.NoError(t, err)
}

func TestAuthenticatedUser(t *testing.T) {
	userID := uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "Bearer token-abc", r.Header.Get("Authorization"))
		io.WriteString(w, `{"id": "`+userID.String()+`", "email": "maria@example.com"}`)
	}))
	defer server.Close()

	user, err := newTestClient(server.URL).AuthenticatedUser(context.Background(), "token-abc")

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "maria@example.com", user.Email)
}
