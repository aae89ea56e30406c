package http

import (
	"net/http"

	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/domain/template"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/service"
)

// Handlers holds the HTTP handler dependencies.
type Handlers struct {
	Auth       *service.AuthService
	Resolver   *service.ResolverService
	Tenants    *service.TenantService
	Portfolios *service.PortfolioService
	CVImport   *service.CVImportService
	Templates  *template.Registry
}

// Health handles GET /health
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListTemplates handles GET /api/v1/templates
func (h *Handlers) ListTemplates(w http.ResponseWriter, _ *http.Request) {
	list := h.Templates.List()
	if list == nil {
		list = []template.Template{}
	}
	writeJSON(w, http.StatusOK, list)
}
