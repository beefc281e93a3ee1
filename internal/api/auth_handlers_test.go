package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// refreshCookieFrom extracts the refresh token cookie from a response.
func refreshCookieFrom(t *testing.T, resp *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, c := range resp.Result().Cookies() {
		if c.Name == refreshCookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", refreshCookieName)
	return nil
}


// cookieHeader formats a request Cookie header carrying the refresh token.
func cookieHeader(c *http.Cookie) string {
	return "Cookie: " + c.Name + "=" + c.Value
}

func TestRegister(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"username": "ada",
		"email":    "ada@example.com",
		"password": "correct horse battery",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var body AuthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.NotEmpty(t, body.AccessToken)
	assert.Equal(t, "Bearer", body.TokenType)
	assert.Equal(t, "ada", body.User.Username)

	// The refresh token travels only in the HTTP-only cookie.
	assert.NotContains(t, resp.Body.String(), "refresh_token")
	cookie := refreshCookieFrom(t, resp)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, refreshCookiePath, cookie.Path)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ts := setupTestServer(t)
	ts.registerUser(t, "ada")

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"username": "other",
		"email":    "ada@example.com",
		"password": "correct horse battery",
	})
	assert.Equal(t, http.StatusConflict, resp.Code)
	assert.Contains(t, resp.Body.String(), "email already in use")
}

func TestRegister_InvalidBody(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"username": "ab",
		"email":    "not-an-email",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestLogin(t *testing.T) {
	ts := setupTestServer(t)
	ts.registerUser(t, "ada")

	resp := ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    "ada@example.com",
		"password": "correct horse battery",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body AuthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.NotEmpty(t, body.AccessToken)
	refreshCookieFrom(t, resp)
}

func TestLogin_BadCredentials(t *testing.T) {
	ts := setupTestServer(t)
	ts.registerUser(t, "ada")

	resp := ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    "ada@example.com",
		"password": "wrong password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "invalid email or password")
}

func TestRefresh(t *testing.T) {
	ts := setupTestServer(t)

	register := ts.api.Post("/api/v1/auth/register", map[string]any{
		"username": "ada",
		"email":    "ada@example.com",
		"password": "correct horse battery",
	})
	require.Equal(t, http.StatusCreated, register.Code)
	cookie := refreshCookieFrom(t, register)

	resp := ts.api.Post("/api/v1/auth/refresh", cookieHeader(cookie))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body AuthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.NotEmpty(t, body.AccessToken)

	// The cookie rotates on every refresh.
	rotated := refreshCookieFrom(t, resp)
	assert.NotEqual(t, cookie.Value, rotated.Value)

	// Replaying the old cookie fails.
	replay := ts.api.Post("/api/v1/auth/refresh", cookieHeader(cookie))
	assert.Equal(t, http.StatusUnauthorized, replay.Code)
}

func TestRefresh_MissingCookie(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/auth/refresh")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestLogout(t *testing.T) {
	ts := setupTestServer(t)

	register := ts.api.Post("/api/v1/auth/register", map[string]any{
		"username": "ada",
		"email":    "ada@example.com",
		"password": "correct horse battery",
	})
	require.Equal(t, http.StatusCreated, register.Code)
	cookie := refreshCookieFrom(t, register)

	resp := ts.api.Post("/api/v1/auth/logout", cookieHeader(cookie))
	require.Equal(t, http.StatusOK, resp.Code)

	// The cookie is cleared.
	cleared := refreshCookieFrom(t, resp)
	assert.Empty(t, cleared.Value)
	assert.Less(t, cleared.MaxAge, 0)

	// The revoked token no longer refreshes.
	replay := ts.api.Post("/api/v1/auth/refresh", cookieHeader(cookie))
	assert.Equal(t, http.StatusUnauthorized, replay.Code)

	// Logging out again with the dead cookie still succeeds.
	again := ts.api.Post("/api/v1/auth/logout", cookieHeader(cookie))
	assert.Equal(t, http.StatusOK, again.Code)
}

func TestLogoutAll(t *testing.T) {
	ts := setupTestServer(t)

	first := ts.api.Post("/api/v1/auth/register", map[string]any{
		"username": "ada",
		"email":    "ada@example.com",
		"password": "correct horse battery",
	})
	require.Equal(t, http.StatusCreated, first.Code)
	var auth AuthResponse
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &auth))
	firstCookie := refreshCookieFrom(t, first)

	second := ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    "ada@example.com",
		"password": "correct horse battery",
	})
	require.Equal(t, http.StatusOK, second.Code)
	secondCookie := refreshCookieFrom(t, second)

	resp := ts.api.Post("/api/v1/auth/logout-all", bearer(auth.AccessToken))
	require.Equal(t, http.StatusOK, resp.Code)

	for _, cookie := range []*http.Cookie{firstCookie, secondCookie} {
		replay := ts.api.Post("/api/v1/auth/refresh", cookieHeader(cookie))
		assert.Equal(t, http.StatusUnauthorized, replay.Code)
	}
}

func TestGetCurrentUser(t *testing.T) {
	ts := setupTestServer(t)
	auth := ts.registerUser(t, "ada")

	resp := ts.api.Get("/api/v1/auth/me", bearer(auth.AccessToken))
	require.Equal(t, http.StatusOK, resp.Code)

	var body UserResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "ada", body.Username)
	assert.Equal(t, "ada@example.com", body.Email)

	unauthed := ts.api.Get("/api/v1/auth/me")
	assert.Equal(t, http.StatusUnauthorized, unauthed.Code)
}
