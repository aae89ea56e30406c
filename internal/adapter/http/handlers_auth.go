package http

import (
	"log/slog"
	"net/http"

	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/domain/user"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/middleware"
)

// SignUp handles POST /api/v1/auth/signup
func (h *Handlers) SignUp(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[user.SignUpRequest](w, r)
	if !ok {
		return
	}

	sess, err := h.Auth.SignUp(r.Context(), req)
	if err != nil {
		writeDomainError(w, err, "sign up failed")
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

// SignIn handles POST /api/v1/auth/signin
func (h *Handlers) SignIn(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[user.SignInRequest](w, r)
	if !ok {
		return
	}

	sess, err := h.Auth.SignIn(r.Context(), req)
	if err != nil {
		slog.Debug("sign in failed", "email", req.Email, "error", err)
		writeDomainError(w, err, "sign in failed")
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// SignOut handles POST /api/v1/auth/signout
func (h *Handlers) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.Auth.SignOut(r.Context(), middleware.ClaimsFromContext(r.Context())); err != nil {
		writeInternalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/v1/auth/me
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	u, err := h.Auth.GetUser(r.Context(), claims.UserID)
	if err != nil {
		writeDomainError(w, err, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, u)
}
