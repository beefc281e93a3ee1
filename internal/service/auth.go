package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/inkwellapp/inkwell-server/internal/auth"
	"github.com/inkwellapp/inkwell-server/internal/domain"
	domainerrors "github.com/inkwellapp/inkwell-server/internal/errors"
	"github.com/inkwellapp/inkwell-server/internal/id"
	"github.com/inkwellapp/inkwell-server/internal/store"
)

// AuthService orchestrates registration, login, token refresh and logout.
// It coordinates the identity store, the refresh-token ledger and the
// access-token issuer.
type AuthService struct {
	store        store.Store
	tokenService *auth.TokenService
	ledger       *TokenLedger
	logger       *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	store store.Store,
	tokenService *auth.TokenService,
	ledger *TokenLedger,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		store:        store,
		tokenService: tokenService,
		ledger:       ledger,
		logger:       logger,
	}
}

// RegisterRequest contains user registration data.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=1024"`
}

// LoginRequest contains user credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserInfo is the user projection returned by auth operations.
type UserInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AuthResponse contains an access token and the authenticated user.
// The refresh token is delivered out of band (HTTP-only cookie), so it is
// excluded from the JSON body.
type AuthResponse struct {
	AccessToken  string   `json:"access_token"`
	TokenType    string   `json:"token_type"`
	ExpiresIn    int      `json:"expires_in"`
	User         UserInfo `json:"user"`
	RefreshToken string   `json:"-"`
}

// userInfo projects a domain user into the auth response shape.
func userInfo(u *domain.User) UserInfo {
	return UserInfo{ID: u.ID, Username: u.Username, Email: u.Email}
}

// issuePair creates the access token + refresh token pair for a user.
func (s *AuthService) issuePair(ctx context.Context, user *domain.User) (*AuthResponse, error) {
	accessToken, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	opaque, _, err := s.ledger.Issue(ctx, user)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		AccessToken:  accessToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(s.tokenService.AccessTokenDuration().Seconds()),
		User:         userInfo(user),
		RefreshToken: opaque,
	}, nil
}

// Register creates a new user account and immediately issues a session
// pair, exactly as login would.
// Email uniqueness is checked before username; the store's unique
// constraints remain the enforcement authority under concurrent submits.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	if _, err := s.store.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, domainerrors.Conflict("email already in use")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	if _, err := s.store.GetUserByUsername(ctx, req.Username); err == nil {
		return nil, domainerrors.Conflict("username already in use")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID, err := id.Generate("user")
	if err != nil {
		return nil, fmt.Errorf("generate user ID: %w", err)
	}

	user := &domain.User{
		ID:           userID,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Roles:        domain.DefaultRoles(),
	}
	user.InitTimestamps()

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Lost the race to a concurrent registration.
			return nil, domainerrors.Conflict("email or username already in use")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("User registered", "user_id", userID, "username", user.Username)
	}

	return s.issuePair(ctx, user)
}

// Login authenticates by email and password. Failures are reported with a
// single generic message so callers cannot probe which emails exist.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.InvalidCredentials("invalid email or password")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	valid, err := auth.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return nil, domainerrors.InvalidCredentials("invalid email or password")
	}

	if s.logger != nil {
		s.logger.Info("User logged in", "user_id", user.ID)
	}

	return s.issuePair(ctx, user)
}

// Refresh rotates a refresh token: the presented token is revoked and a
// brand-new pair is issued. A replayed token fails validity on the second
// attempt because the first refresh already revoked it.
func (s *AuthService) Refresh(ctx context.Context, opaqueToken string) (*AuthResponse, error) {
	token, err := s.ledger.FindValid(ctx, opaqueToken)
	if err != nil {
		return nil, err
	}

	user, err := s.store.GetUser(ctx, token.UserID)
	if err != nil {
		return nil, domainerrors.Unauthorized("user no longer exists").WithCause(err)
	}

	// Revoke before issuing so the old token is single-use even if
	// issuance fails.
	if err := s.ledger.Revoke(ctx, token.ID); err != nil {
		return nil, err
	}

	return s.issuePair(ctx, user)
}

// Logout revokes the presented refresh token. Unknown or already-invalid
// tokens are a silent no-op; logout never fails for a stale cookie.
func (s *AuthService) Logout(ctx context.Context, opaqueToken string) error {
	if opaqueToken == "" {
		return nil
	}
	token, err := s.ledger.FindValid(ctx, opaqueToken)
	if err != nil {
		return nil
	}
	return s.ledger.Revoke(ctx, token.ID)
}

// LogoutAll revokes every refresh token belonging to the user.
func (s *AuthService) LogoutAll(ctx context.Context, userID string) error {
	return s.ledger.RevokeAll(ctx, userID)
}

// CurrentUser projects the already-authenticated identity.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*UserInfo, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.Unauthorized("user no longer exists")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	info := userInfo(user)
	return &info, nil
}
