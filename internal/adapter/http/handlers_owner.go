package http

import (
	"net/http"

	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/domain/portfolio"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/domain/tenant"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/middleware"
)

// ownerID returns the authenticated user ID, writing 401 when there is none.
func ownerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := middleware.UserIDFromContext(r.Context())
	if id == "" {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return "", false
	}
	return id, true
}

// --- Settings ---

// GetSettings handles GET /api/v1/settings
func (h *Handlers) GetSettings(w http.ResponseWriter, r *http.Request) {
	uid, ok := ownerID(w, r)
	if !ok {
		return
	}
	s, err := h.Tenants.GetSettings(r.Context(), uid)
	if err != nil {
		writeDomainError(w, err, "settings not found")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// UpdateSettings handles PUT /api/v1/settings
func (h *Handlers) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	uid, ok := ownerID(w, r)
	if !ok {
		return
	}
	req, ok := readJSON[tenant.SettingsRequest](w, r)
	if !ok {
		return
	}
	s, err := h.Tenants.SaveSettings(r.Context(), uid, req)
	if err != nil {
		writeDomainError(w, err, "settings not found")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// --- Portfolio ---

// GetDraft handles GET /api/v1/portfolio/draft
func (h *Handlers) GetDraft(w http.ResponseWriter, r *http.Request) {
	uid, ok := ownerID(w, r)
	if !ok {
		return
	}
	p, err := h.Portfolios.GetDraft(r.Context(), uid)
	if err != nil {
		writeDomainError(w, err, "draft not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// SaveDraft handles PUT /api/v1/portfolio/draft
func (h *Handlers) SaveDraft(w http.ResponseWriter, r *http.Request) {
	uid, ok := ownerID(w, r)
	if !ok {
		return
	}
	p, ok := readJSON[portfolio.Portfolio](w, r)
	if !ok {
		return
	}
	saved, err := h.Portfolios.SaveDraft(r.Context(), uid, &p)
	if err != nil {
		writeDomainError(w, err, "draft not found")
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// DiscardDraft handles DELETE /api/v1/portfolio/draft
func (h *Handlers) DiscardDraft(w http.ResponseWriter, r *http.Request) {
	uid, ok := ownerID(w, r)
	if !ok {
		return
	}
	p, err := h.Portfolios.DiscardDraft(r.Context(), uid)
	if err != nil {
		writeDomainError(w, err, "draft not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Publish handles POST /api/v1/portfolio/publish
func (h *Handlers) Publish(w http.ResponseWriter, r *http.Request) {
	uid, ok := ownerID(w, r)
	if !ok {
		return
	}
	p, err := h.Portfolios.Publish(r.Context(), uid)
	if err != nil {
		writeDomainError(w, err, "save a draft before publishing")
		return
	}
	writeJSON(w, http.StatusOK, p)
}
