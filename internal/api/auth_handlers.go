package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/inkwellapp/inkwell-server/internal/service"
)

// refreshCookieName is the HTTP-only cookie carrying the refresh token.
const refreshCookieName = "refresh_token"

// refreshCookiePath scopes the cookie to the auth endpoints so it is not
// sent with every API request.
const refreshCookiePath = "/api/v1/auth"

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "register",
		Method:        http.MethodPost,
		Path:          "/api/v1/auth/register",
		Summary:       "Register new user",
		Description:   "Creates a new user account and starts a session",
		Tags:          []string{"Authentication"},
		DefaultStatus: http.StatusCreated,
	}, s.handleRegister)

	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/login",
		Summary:     "User login",
		Description: "Authenticates a user and returns an access token; the refresh token is set as an HTTP-only cookie",
		Tags:        []string{"Authentication"},
	}, s.handleLogin)

	huma.Register(s.api, huma.Operation{
		OperationID: "refresh",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/refresh",
		Summary:     "Refresh tokens",
		Description: "Rotates the refresh token cookie and returns a new access token",
		Tags:        []string{"Authentication"},
	}, s.handleRefresh)

	huma.Register(s.api, huma.Operation{
		OperationID: "logout",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/logout",
		Summary:     "Logout",
		Description: "Revokes the current session and clears the refresh token cookie",
		Tags:        []string{"Authentication"},
	}, s.handleLogout)

	huma.Register(s.api, huma.Operation{
		OperationID: "logoutAll",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/logout-all",
		Summary:     "Logout everywhere",
		Description: "Revokes every session belonging to the current user",
		Tags:        []string{"Authentication"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleLogoutAll)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCurrentUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/auth/me",
		Summary:     "Current user",
		Description: "Returns the authenticated user",
		Tags:        []string{"Authentication"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetCurrentUser)
}

// === DTOs ===

// RegisterRequest is the request body for user registration.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50" doc:"Unique username"`
	Email    string `json:"email" validate:"required,email,max=255" doc:"User email address"`
	Password string `json:"password" validate:"required,min=8,max=1024" doc:"User password"`
}

// RegisterInput wraps the register request for Huma.
type RegisterInput struct {
	Body RegisterRequest
}

// LoginRequest is the request body for user login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" doc:"User email"`
	Password string `json:"password" validate:"required" doc:"User password"`
}

// LoginInput wraps the login request for Huma.
type LoginInput struct {
	Body LoginRequest
}

// UserResponse contains user information in auth responses.
type UserResponse struct {
	ID       string `json:"id" doc:"User ID"`
	Username string `json:"username" doc:"Username"`
	Email    string `json:"email" doc:"Email address"`
}

// AuthResponse contains the access token and authenticated user.
type AuthResponse struct {
	AccessToken string       `json:"access_token" doc:"JWT access token"`
	TokenType   string       `json:"token_type" doc:"Token type (Bearer)"`
	ExpiresIn   int          `json:"expires_in" doc:"Access token expiry in seconds"`
	User        UserResponse `json:"user" doc:"Authenticated user"`
}

// AuthOutput wraps the auth response and refresh cookie for Huma.
type AuthOutput struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      AuthResponse
}

// RefreshInput carries the refresh token cookie.
type RefreshInput struct {
	RefreshToken http.Cookie `cookie:"refresh_token"`
}

// LogoutInput carries the refresh token cookie, which may be absent.
type LogoutInput struct {
	RefreshToken http.Cookie `cookie:"refresh_token"`
}

// LogoutOutput clears the refresh cookie.
type LogoutOutput struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      MessageResponse
}

// UserOutput wraps the user response for Huma.
type UserOutput struct {
	Body UserResponse
}

// === Handlers ===

func (s *Server) handleRegister(ctx context.Context, input *RegisterInput) (*AuthOutput, error) {
	resp, err := s.services.Auth.Register(ctx, service.RegisterRequest{
		Username: input.Body.Username,
		Email:    input.Body.Email,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, err
	}
	return s.authOutput(resp), nil
}

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*AuthOutput, error) {
	resp, err := s.services.Auth.Login(ctx, service.LoginRequest{
		Email:    input.Body.Email,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, err
	}
	return s.authOutput(resp), nil
}

func (s *Server) handleRefresh(ctx context.Context, input *RefreshInput) (*AuthOutput, error) {
	resp, err := s.services.Auth.Refresh(ctx, input.RefreshToken.Value)
	if err != nil {
		return nil, err
	}
	return s.authOutput(resp), nil
}

func (s *Server) handleLogout(ctx context.Context, input *LogoutInput) (*LogoutOutput, error) {
	if err := s.services.Auth.Logout(ctx, input.RefreshToken.Value); err != nil {
		return nil, err
	}
	return &LogoutOutput{
		SetCookie: s.clearRefreshCookie(),
		Body:      MessageResponse{Message: "Logged out successfully"},
	}, nil
}

func (s *Server) handleLogoutAll(ctx context.Context, _ *struct{}) (*LogoutOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.services.Auth.LogoutAll(ctx, userID); err != nil {
		return nil, err
	}
	return &LogoutOutput{
		SetCookie: s.clearRefreshCookie(),
		Body:      MessageResponse{Message: "Logged out everywhere"},
	}, nil
}

func (s *Server) handleGetCurrentUser(ctx context.Context, _ *struct{}) (*UserOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}
	info, err := s.services.Auth.CurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: UserResponse{
		ID:       info.ID,
		Username: info.Username,
		Email:    info.Email,
	}}, nil
}

// === Helpers ===

func (s *Server) authOutput(resp *service.AuthResponse) *AuthOutput {
	return &AuthOutput{
		SetCookie: s.refreshCookie(resp.RefreshToken),
		Body: AuthResponse{
			AccessToken: resp.AccessToken,
			TokenType:   resp.TokenType,
			ExpiresIn:   resp.ExpiresIn,
			User: UserResponse{
				ID:       resp.User.ID,
				Username: resp.User.Username,
				Email:    resp.User.Email,
			},
		},
	}
}

func (s *Server) refreshCookie(value string) http.Cookie {
	return http.Cookie{
		Name:     refreshCookieName,
		Value:    value,
		Path:     refreshCookiePath,
		MaxAge:   int(s.refreshTTL.Seconds()),
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}

func (s *Server) clearRefreshCookie() http.Cookie {
	return http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     refreshCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}
