package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/adapter/ws"
)

// passthrough is used when no middleware is configured for a group.
func passthrough(next http.Handler) http.Handler { return next }

// MountRoutes registers all routes on the given chi router. auth guards the
// owner routes; rateLimit wraps the public and sign-in routes. Either may be
// nil.
func MountRoutes(r chi.Router, h *Handlers, live *ws.Hub, auth, rateLimit func(http.Handler) http.Handler) {
	if auth == nil {
		auth = passthrough
	}
	if rateLimit == nil {
		rateLimit = passthrough
	}

	r.Get("/health", h.Health)

	// Public portfolio pages
	r.Group(func(r chi.Router) {
		r.Use(rateLimit)
		r.Get("/", h.PortfolioByHost)
		r.Get("/portfolio/{userId}", h.PortfolioByUserID)
		r.Get("/u/{username}", h.PortfolioByUsername)
		r.Get("/{domainPath}", h.PortfolioByDomainPath)
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Version
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"version":"0.1.0"}`))
		})

		r.Group(func(r chi.Router) {
			r.Use(rateLimit)

			r.Get("/public/resolve", h.Resolve)
			r.Get("/public/portfolio", h.PublicPortfolio)
			r.Get("/templates", h.ListTemplates)

			r.Post("/auth/signup", h.SignUp)
			r.Post("/auth/signin", h.SignIn)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth)

			r.Post("/auth/signout", h.SignOut)
			r.Get("/auth/me", h.Me)

			// Tenant settings
			r.Get("/settings", h.GetSettings)
			r.Put("/settings", h.UpdateSettings)

			// Portfolio draft
			r.Get("/portfolio/draft", h.GetDraft)
			r.Put("/portfolio/draft", h.SaveDraft)
			r.Delete("/portfolio/draft", h.DiscardDraft)
			r.Post("/portfolio/publish", h.Publish)
			if live != nil {
				r.Get("/portfolio/draft/ws", live.HandleDraft)
			}

			// CV import
			r.Post("/cv/extract", h.ExtractCV)
			r.Post("/cv/import", h.ImportCV)
		})
	})
}
