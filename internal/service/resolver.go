package service

import (
	"context"
	"log/slog"
	"net"
	"strings"
	"time"

	cfotel "github.com/HamzaKhandev1446/Portfolio-builder-app/internal/adapter/otel"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/domain/tenant"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/port/docstore"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/resilience"
)

// Source names the signal a resolution was decided by.
type Source string

const (
	SourceDomainPath   Source = "domain_path"
	SourceCustomDomain Source = "custom_domain"
	SourceUserID       Source = "user_id"
	SourceUsername     Source = "username"
	SourceNone         Source = "none"
)

// Signals are the identifying inputs of a public page visit. Any may be empty.
type Signals struct {
	RouteUserID   string
	RouteUsername string
	DomainPath    string
	Host          string
}

// Resolution is the outcome of resolving Signals. UserID is empty when
// nothing resolved. DomainSignal is set when a domain path or a custom host
// was considered, found or not.
type Resolution struct {
	UserID       string `json:"userId,omitempty"`
	Source       Source `json:"source"`
	DomainSignal bool   `json:"domainSignal"`
}

// Found reports whether a user ID was resolved.
func (r Resolution) Found() bool { return r.UserID != "" }

// NotFoundMessage is the user-facing explanation for a failed resolution.
func (r Resolution) NotFoundMessage() string {
	if r.DomainSignal {
		return "Domain not configured or portfolio not found"
	}
	return "Portfolio not found"
}

// ResolverService maps a visitor's route and host signals to the canonical
// user ID whose public portfolio should be shown. Store failures never
// surface: a failed lookup is a miss.
type ResolverService struct {
	store         docstore.Store
	breaker       *resilience.Breaker
	primaryHost   string
	lookupTimeout time.Duration
	metrics       *cfotel.Metrics
}

// NewResolverService creates a resolver. breaker may be nil.
func NewResolverService(store docstore.Store, breaker *resilience.Breaker, primaryHost string, lookupTimeout time.Duration) *ResolverService {
	return &ResolverService{
		store:         store,
		breaker:       breaker,
		primaryHost:   strings.ToLower(stripPort(primaryHost)),
		lookupTimeout: lookupTimeout,
	}
}

// SetMetrics attaches metric instruments.
func (s *ResolverService) SetMetrics(m *cfotel.Metrics) { s.metrics = m }

// Resolve applies, in order: a domain-like path segment, a custom request
// host, then the route user ID or username. A domain miss falls through to
// the route parameters.
func (s *ResolverService) Resolve(ctx context.Context, sig Signals) Resolution {
	ctx, span := cfotel.StartResolveSpan(ctx, sig.Host)
	defer span.End()

	res := s.resolve(ctx, sig)

	outcome := "miss"
	if res.Found() {
		outcome = "hit"
	}
	s.metrics.RecordResolve(ctx, string(res.Source), outcome)
	return res
}

func (s *ResolverService) resolve(ctx context.Context, sig Signals) Resolution {
	var res Resolution

	if sig.DomainPath != "" && tenant.IsDomainPath(sig.DomainPath) {
		res.DomainSignal = true
		if uid := s.LookupDomain(ctx, sig.DomainPath); uid != "" {
			return Resolution{UserID: uid, Source: SourceDomainPath, DomainSignal: true}
		}
	} else if host := stripPort(sig.Host); tenant.IsCustomHost(strings.ToLower(host), s.primaryHost) {
		res.DomainSignal = true
		if uid := s.LookupDomain(ctx, host); uid != "" {
			return Resolution{UserID: uid, Source: SourceCustomDomain, DomainSignal: true}
		}
	}

	id := sig.RouteUserID
	if id == "" {
		id = sig.RouteUsername
	}
	if id == "" {
		res.Source = SourceNone
		return res
	}

	if tenant.LooksLikeUserID(id) {
		res.UserID, res.Source = id, SourceUserID
		return res
	}
	res.Source = SourceUsername
	res.UserID = s.LookupUsername(ctx, id)
	if res.UserID == "" {
		res.Source = SourceNone
	}
	return res
}

// LookupDomain returns the owner of a domain, or "" on a miss or failure.
func (s *ResolverService) LookupDomain(ctx context.Context, d string) string {
	d = tenant.NormalizeDomain(d)
	if d == "" {
		return ""
	}
	return s.lookup(ctx, "domain", docstore.DomainPath(d))
}

// LookupUsername returns the owner of a username, or "" on a miss or failure.
func (s *ResolverService) LookupUsername(ctx context.Context, username string) string {
	username = tenant.NormalizeUsername(username)
	if !tenant.IsUsernameKey(username) {
		return ""
	}
	return s.lookup(ctx, "username", docstore.UsernamePath(username))
}

func (s *ResolverService) lookup(ctx context.Context, kind, path string) string {
	var uid string
	get := func(ctx context.Context) error {
		_, err := docstore.GetJSON(ctx, s.store, path, &uid)
		return err
	}

	var err error
	switch {
	case s.breaker != nil:
		err = s.breaker.Do(ctx, s.lookupTimeout, get)
	case s.lookupTimeout > 0:
		lctx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
		err = get(lctx)
		cancel()
	default:
		err = get(ctx)
	}
	if err != nil {
		slog.Warn("resolver lookup failed", "kind", kind, "path", path, "error", err)
		s.metrics.RecordLookupFailure(ctx, kind)
		return ""
	}
	return uid
}

// stripPort drops a ":port" suffix from a Host header value.
func stripPort(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}
