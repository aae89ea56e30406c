package http

import (
	"net/http"

	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/domain/portfolio"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/domain/tenant"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/middleware"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/service"
)

const maxSignalLength = 255

// resolveResponse is the body of GET /api/v1/public/resolve.
type resolveResponse struct {
	service.Resolution
	Found   bool   `json:"found"`
	Message string `json:"message,omitempty"`
}

// publicPortfolioResponse is a published portfolio and how it was found.
type publicPortfolioResponse struct {
	UserID    string               `json:"userId"`
	Source    service.Source       `json:"source"`
	Portfolio *portfolio.Portfolio `json:"portfolio"`
}

// signalsFromQuery reads the resolution inputs of the public API. The host
// always comes from the request.
func signalsFromQuery(r *http.Request) (service.Signals, bool) {
	q := r.URL.Query()
	sig := service.Signals{
		RouteUserID:   q.Get("userId"),
		RouteUsername: q.Get("username"),
		DomainPath:    q.Get("domainPath"),
		Host:          requestHost(r),
	}
	for _, v := range []string{sig.RouteUserID, sig.RouteUsername, sig.DomainPath} {
		if len(v) > maxSignalLength {
			return sig, false
		}
	}
	return sig, true
}

func requestHost(r *http.Request) string {
	if h := middleware.HostFromContext(r.Context()); h != "" {
		return h
	}
	return r.Host
}

// Resolve handles GET /api/v1/public/resolve
func (h *Handlers) Resolve(w http.ResponseWriter, r *http.Request) {
	sig, ok := signalsFromQuery(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "query parameter too long")
		return
	}
	res := h.Resolver.Resolve(r.Context(), sig)
	resp := resolveResponse{Resolution: res, Found: res.Found()}
	if !res.Found() {
		resp.Message = res.NotFoundMessage()
	}
	writeJSON(w, http.StatusOK, resp)
}

// PublicPortfolio handles GET /api/v1/public/portfolio
func (h *Handlers) PublicPortfolio(w http.ResponseWriter, r *http.Request) {
	sig, ok := signalsFromQuery(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "query parameter too long")
		return
	}
	h.servePublic(w, r, sig)
}

// PortfolioByHost handles GET / for visitors arriving on a custom domain.
func (h *Handlers) PortfolioByHost(w http.ResponseWriter, r *http.Request) {
	h.servePublic(w, r, service.Signals{Host: requestHost(r)})
}

// PortfolioByUserID handles GET /portfolio/{userId}
func (h *Handlers) PortfolioByUserID(w http.ResponseWriter, r *http.Request) {
	h.servePublic(w, r, service.Signals{
		RouteUserID: urlParam(r, "userId"),
		Host:        requestHost(r),
	})
}

// PortfolioByUsername handles GET /u/{username}
func (h *Handlers) PortfolioByUsername(w http.ResponseWriter, r *http.Request) {
	h.servePublic(w, r, service.Signals{
		RouteUsername: urlParam(r, "username"),
		Host:          requestHost(r),
	})
}

// PortfolioByDomainPath handles GET /{domainPath}. Segments that are reserved
// or do not look like a domain are not portfolio routes.
func (h *Handlers) PortfolioByDomainPath(w http.ResponseWriter, r *http.Request) {
	segment := urlParam(r, "domainPath")
	if !tenant.IsDomainPath(segment) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	h.servePublic(w, r, service.Signals{
		DomainPath: segment,
		Host:       requestHost(r),
	})
}

func (h *Handlers) servePublic(w http.ResponseWriter, r *http.Request, sig service.Signals) {
	res := h.Resolver.Resolve(r.Context(), sig)
	if !res.Found() {
		writeError(w, http.StatusNotFound, res.NotFoundMessage())
		return
	}

	p, err := h.Portfolios.GetPublic(r.Context(), res.UserID)
	if err != nil {
		writeDomainError(w, err, res.NotFoundMessage())
		return
	}
	writeJSON(w, http.StatusOK, publicPortfolioResponse{
		UserID:    res.UserID,
		Source:    res.Source,
		Portfolio: p,
	})
}
