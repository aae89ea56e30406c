package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/domain/user"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/logger"
)

// DevUserID is the owner injected when authentication is disabled.
const DevUserID = "devuser0000000000000000000000000"

type claimsCtxKey struct{}

// TokenValidator checks an access token. *service.AuthService implements it.
type TokenValidator interface {
	ValidateAccessToken(ctx context.Context, token string) (*user.Claims, error)
}

// Auth returns middleware that requires a valid access token, read from the
// Authorization header or, for WebSocket upgrades, the token query parameter.
// When authEnabled is false, a fixed development owner is injected.
func Auth(tokens TokenValidator, authEnabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !authEnabled {
				dev := &user.Claims{
					UserID:    DevUserID,
					Email:     "dev@localhost",
					ExpiresAt: time.Now().Add(time.Hour),
				}
				next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), dev)))
				return
			}

			token, ok := bearerToken(r)
			if !ok {
				writeAuthError(w, "authorization required")
				return
			}

			claims, err := tokens.ValidateAccessToken(r.Context(), token)
			if err != nil {
				writeAuthError(w, err.Error())
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// bearerToken reads "Authorization: Bearer <token>", falling back to
// ?token= on WebSocket upgrade requests, which cannot set headers from a
// browser.
func bearerToken(r *http.Request) (string, bool) {
	if h := r.Header.Get("Authorization"); h != "" {
		token, found := strings.CutPrefix(h, "Bearer ")
		return token, found && token != ""
	}
	if strings.EqualFold(r.Header.Get("Upgrade"), "websocket") {
		if token := r.URL.Query().Get("token"); token != "" {
			return token, true
		}
	}
	return "", false
}

func writeAuthError(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// WithClaims stores the authenticated identity in ctx and tags the logger
// context with its user ID.
func WithClaims(ctx context.Context, c *user.Claims) context.Context {
	ctx = context.WithValue(ctx, claimsCtxKey{}, c)
	return logger.WithUserID(ctx, c.UserID)
}

// ClaimsFromContext returns the authenticated identity, or nil.
func ClaimsFromContext(ctx context.Context) *user.Claims {
	c, _ := ctx.Value(claimsCtxKey{}).(*user.Claims)
	return c
}

// UserIDFromContext returns the authenticated user ID, or "".
func UserIDFromContext(ctx context.Context) string {
	if c := ClaimsFromContext(ctx); c != nil {
		return c.UserID
	}
	return ""
}
