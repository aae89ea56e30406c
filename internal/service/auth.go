package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/config"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/domain"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/domain/user"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/port/database"
)

const (
	tokenIssuer   = "folio"
	tokenAudience = "folio-api"
)

// Identity provider errors. Messages are shown to end users.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token has been revoked")
)

// accessClaims is the JWT payload of an access token.
type accessClaims struct {
	Email       string `json:"email"`
	DisplayName string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// AuthService is the identity provider: accounts, password checks and
// access tokens.
type AuthService struct {
	store  database.Store
	cfg    *config.Auth
	secret []byte
}

// NewAuthService creates a new authentication service.
func NewAuthService(store database.Store, cfg *config.Auth) *AuthService {
	return &AuthService{
		store:  store,
		cfg:    cfg,
		secret: []byte(cfg.JWTSecret),
	}
}

// NewUserID returns a 32-character alphanumeric account ID.
func NewUserID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// SignUp creates an account and signs it in.
func (s *AuthService) SignUp(ctx context.Context, req user.SignUpRequest) (*user.Session, error) {
	u, err := s.CreateUser(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.newSession(u)
}

// CreateUser creates an enabled account with a bcrypt-hashed password.
func (s *AuthService) CreateUser(ctx context.Context, req user.SignUpRequest) (*user.User, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &user.User{
		ID:           NewUserID(),
		Email:        req.Email,
		DisplayName:  req.DisplayName,
		PasswordHash: string(hash),
		Enabled:      true,
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("%w: Email is already in use", domain.ErrConflict)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	slog.Info("account created", "user_id", u.ID)
	return u, nil
}

// SignIn checks the password and issues an access token.
func (s *AuthService) SignIn(ctx context.Context, req user.SignInRequest) (*user.Session, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}

	u, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !u.Enabled {
		return nil, ErrAccountDisabled
	}
	return s.newSession(u)
}

// SignOut revokes the given access token until it would have expired.
func (s *AuthService) SignOut(ctx context.Context, claims *user.Claims) error {
	if claims == nil || claims.JTI == "" {
		return nil
	}
	if err := s.store.RevokeToken(ctx, claims.JTI, claims.ExpiresAt); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// ValidateAccessToken verifies signature, expiry, issuer and audience, then
// checks revocation. A failing revocation check denies the token.
func (s *AuthService) ValidateAccessToken(ctx context.Context, tokenStr string) (*user.Claims, error) {
	var ac accessClaims
	_, err := jwt.ParseWithClaims(tokenStr, &ac, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if ac.Subject == "" || ac.ID == "" {
		return nil, ErrInvalidToken
	}

	revoked, err := s.store.IsTokenRevoked(ctx, ac.ID)
	if err != nil {
		slog.Error("token revocation check failed, denying token", "jti", ac.ID, "error", err)
		return nil, errors.New("unable to verify token status")
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	return &user.Claims{
		UserID:      ac.Subject,
		Email:       ac.Email,
		DisplayName: ac.DisplayName,
		JTI:         ac.ID,
		ExpiresAt:   ac.ExpiresAt.Time,
	}, nil
}

// CurrentUser returns the account behind a valid access token.
func (s *AuthService) CurrentUser(ctx context.Context, tokenStr string) (*user.User, error) {
	claims, err := s.ValidateAccessToken(ctx, tokenStr)
	if err != nil {
		return nil, err
	}
	return s.GetUser(ctx, claims.UserID)
}

// GetUser returns an enabled account by ID.
func (s *AuthService) GetUser(ctx context.Context, id string) (*user.User, error) {
	u, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if !u.Enabled {
		return nil, ErrAccountDisabled
	}
	return u, nil
}

// ListUsers returns all accounts.
func (s *AuthService) ListUsers(ctx context.Context) ([]user.User, error) {
	return s.store.ListUsers(ctx)
}

// ResetPassword replaces the password of the account with the given email.
func (s *AuthService) ResetPassword(ctx context.Context, email, password string) error {
	if len(password) < user.MinPasswordLength {
		return fmt.Errorf("%w: Password is too weak", domain.ErrValidation)
	}
	u, err := s.store.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = string(hash)
	if err := s.store.UpdateUser(ctx, u); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// StartTokenCleanup starts a background goroutine that periodically purges
// expired revoked tokens. It stops when ctx is cancelled.
func (s *AuthService) StartTokenCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := s.store.PurgeExpiredTokens(ctx)
				if err != nil {
					slog.Warn("failed to purge expired tokens", "error", err)
				} else if n > 0 {
					slog.Info("purged expired revoked tokens", "count", n)
				}
			}
		}
	}()
}

func (s *AuthService) newSession(u *user.User) (*user.Session, error) {
	token, err := s.signAccessToken(u)
	if err != nil {
		return nil, fmt.Errorf("sign jwt: %w", err)
	}
	return &user.Session{
		AccessToken: token,
		ExpiresIn:   int(s.cfg.AccessTokenExpiry.Seconds()),
		User:        *u,
	}, nil
}

func (s *AuthService) signAccessToken(u *user.User) (string, error) {
	now := time.Now()
	claims := accessClaims{
		Email:       u.Email,
		DisplayName: u.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTokenExpiry)),
			ID:        uuid.NewString(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
