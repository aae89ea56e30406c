package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	cfotel "github.com/HamzaKhandev1446/Portfolio-builder-app/internal/adapter/otel"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/config"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/domain"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/domain/tenant"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/port/docstore"
)

// ErrStoreUnavailable wraps document store failures on the write path.
var ErrStoreUnavailable = errors.New("store unavailable")

// TenantSettings is a saved tenant record plus its public address.
type TenantSettings struct {
	Config       tenant.Config `json:"config"`
	PortfolioURL string        `json:"portfolioUrl"`
}

// TenantService owns tenant records and the username and domain indexes.
type TenantService struct {
	store     docstore.Store
	claimMode string
	origin    string
	metrics   *cfotel.Metrics
	now       func() time.Time
}

// NewTenantService creates a TenantService. claimMode is config.ClaimOverwrite
// or config.ClaimExclusive; origin is the base URL of the application.
func NewTenantService(store docstore.Store, claimMode, origin string) *TenantService {
	return &TenantService{
		store:     store,
		claimMode: claimMode,
		origin:    origin,
		now:       time.Now,
	}
}

// SetMetrics attaches metric instruments.
func (s *TenantService) SetMetrics(m *cfotel.Metrics) { s.metrics = m }

// GetConfig returns the tenant record of userID.
func (s *TenantService) GetConfig(ctx context.Context, userID string) (*tenant.Config, error) {
	var cfg tenant.Config
	found, err := docstore.GetJSON(ctx, s.store, docstore.TenantPath(userID), &cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: get tenant %s: %w", ErrStoreUnavailable, userID, err)
	}
	if !found {
		return nil, fmt.Errorf("tenant %s: %w", userID, domain.ErrNotFound)
	}
	return &cfg, nil
}

// GetSettings returns the tenant record and public URL of userID. A user who
// never saved settings gets an active record with no aliases.
func (s *TenantService) GetSettings(ctx context.Context, userID string) (*TenantSettings, error) {
	cfg, err := s.GetConfig(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		cfg = &tenant.Config{UserID: userID, IsActive: true}
	} else if err != nil {
		return nil, err
	}
	return &TenantSettings{Config: *cfg, PortfolioURL: s.PortfolioURL(cfg)}, nil
}

// SaveSettings writes the tenant record and then registers its username and
// custom domain. Aliases that were replaced or cleared are released when they
// still point at userID.
func (s *TenantService) SaveSettings(ctx context.Context, userID string, req tenant.SettingsRequest) (*TenantSettings, error) {
	ctx, span := cfotel.StartSettingsSpan(ctx, userID)
	defer span.End()

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	prev, err := s.GetConfig(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if s.claimMode == config.ClaimExclusive {
		if err := s.checkClaims(ctx, userID, req); err != nil {
			return nil, err
		}
	}

	now := s.now().UTC()
	cfg := tenant.Config{
		UserID:       userID,
		Username:     req.Username,
		CustomDomain: req.CustomDomain,
		IsActive:     true,
		Plan:         req.Plan,
		CreatedAt:    now,
		LastUpdated:  now,
	}
	if prev != nil {
		cfg.CreatedAt = prev.CreatedAt
		cfg.Subdomain = prev.Subdomain
		cfg.IsActive = prev.IsActive
		if cfg.Plan == "" {
			cfg.Plan = prev.Plan
		}
	}
	if req.IsActive != nil {
		cfg.IsActive = *req.IsActive
	}

	if err := docstore.SetJSON(ctx, s.store, docstore.TenantPath(userID), cfg); err != nil {
		slog.Error("save tenant failed", "user_id", userID, "error", err)
		return nil, fmt.Errorf("%w: save tenant: %w", ErrStoreUnavailable, err)
	}

	var claimedUsername, claimedDomain bool
	g, gctx := errgroup.WithContext(ctx)
	if cfg.Username != "" {
		g.Go(func() error {
			err := s.RegisterUsername(gctx, cfg.Username, userID)
			claimedUsername = err == nil
			return err
		})
	}
	if cfg.CustomDomain != "" {
		g.Go(func() error {
			err := s.RegisterDomain(gctx, cfg.CustomDomain, userID)
			claimedDomain = err == nil
			return err
		})
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// Aliases this save newly took are handed back; ones already
			// held before stay with the user.
			if claimedUsername && (prev == nil || prev.Username != cfg.Username) {
				s.release(ctx, docstore.UsernamePath(cfg.Username), userID)
			}
			if claimedDomain && (prev == nil || prev.CustomDomain != cfg.CustomDomain) {
				s.release(ctx, docstore.DomainPath(cfg.CustomDomain), userID)
			}
			s.restore(ctx, userID, prev)
		}
		return nil, err
	}

	if prev != nil {
		if prev.Username != "" && prev.Username != cfg.Username {
			s.release(ctx, docstore.UsernamePath(prev.Username), userID)
		}
		if prev.CustomDomain != "" && prev.CustomDomain != cfg.CustomDomain {
			s.release(ctx, docstore.DomainPath(prev.CustomDomain), userID)
		}
	}

	slog.Info("tenant settings saved", "user_id", userID, "username", cfg.Username, "custom_domain", cfg.CustomDomain)
	return &TenantSettings{Config: cfg, PortfolioURL: s.PortfolioURL(&cfg)}, nil
}

// RegisterUsername points usernames/<username> at userID. Any name the
// resolver can look up is accepted; only names that cannot form an index
// key are refused.
func (s *TenantService) RegisterUsername(ctx context.Context, username, userID string) error {
	username = tenant.NormalizeUsername(username)
	if !tenant.IsUsernameKey(username) {
		return fmt.Errorf("%w: username %q cannot be indexed", domain.ErrValidation, username)
	}
	return s.claim(ctx, "username", docstore.UsernamePath(username), userID)
}

// RegisterDomain points domains/<encoded domain> at userID.
func (s *TenantService) RegisterDomain(ctx context.Context, d, userID string) error {
	return s.claim(ctx, "domain", docstore.DomainPath(tenant.NormalizeDomain(d)), userID)
}

// PortfolioURL is the public address of a tenant: its custom domain, its
// username page, or its user ID page.
func (s *TenantService) PortfolioURL(cfg *tenant.Config) string {
	switch {
	case cfg.CustomDomain != "":
		return "https://" + cfg.CustomDomain
	case cfg.Username != "":
		return s.origin + "/u/" + cfg.Username
	default:
		return s.origin + "/portfolio/" + cfg.UserID
	}
}

// claim writes an index entry. In overwrite mode the last writer wins; in
// exclusive mode an entry owned by another user is a conflict.
func (s *TenantService) claim(ctx context.Context, kind, path, userID string) error {
	var err error
	if s.claimMode == config.ClaimExclusive {
		err = docstore.CreateJSON(ctx, s.store, path, userID)
		if errors.Is(err, domain.ErrConflict) {
			owner, ownerErr := s.owner(ctx, path)
			switch {
			case ownerErr != nil:
				err = ownerErr
			case owner == userID || owner == "":
				err = docstore.SetJSON(ctx, s.store, path, userID)
			default:
				s.metrics.RecordRegistration(ctx, kind, "conflict")
				return fmt.Errorf("%w: %s is already taken", domain.ErrConflict, kind)
			}
		}
	} else {
		err = docstore.SetJSON(ctx, s.store, path, userID)
	}

	if err != nil {
		s.metrics.RecordRegistration(ctx, kind, "error")
		slog.Error("alias registration failed", "kind", kind, "path", path, "user_id", userID, "error", err)
		return fmt.Errorf("%w: register %s: %w", ErrStoreUnavailable, kind, err)
	}
	s.metrics.RecordRegistration(ctx, kind, "ok")
	return nil
}

// checkClaims fails early when an alias in req belongs to someone else.
func (s *TenantService) checkClaims(ctx context.Context, userID string, req tenant.SettingsRequest) error {
	check := func(kind, path string) error {
		owner, err := s.owner(ctx, path)
		if err != nil {
			return fmt.Errorf("%w: check %s: %w", ErrStoreUnavailable, kind, err)
		}
		if owner != "" && owner != userID {
			s.metrics.RecordRegistration(ctx, kind, "conflict")
			return fmt.Errorf("%w: %s is already taken", domain.ErrConflict, kind)
		}
		return nil
	}
	if req.Username != "" {
		if err := check("username", docstore.UsernamePath(req.Username)); err != nil {
			return err
		}
	}
	if req.CustomDomain != "" {
		if err := check("domain", docstore.DomainPath(req.CustomDomain)); err != nil {
			return err
		}
	}
	return nil
}

func (s *TenantService) owner(ctx context.Context, path string) (string, error) {
	var owner string
	if _, err := docstore.GetJSON(ctx, s.store, path, &owner); err != nil {
		return "", err
	}
	return owner, nil
}

// release removes an index entry if it still points at userID.
func (s *TenantService) release(ctx context.Context, path, userID string) {
	owner, err := s.owner(ctx, path)
	if err == nil && owner == userID {
		err = s.store.Remove(ctx, path)
	}
	if err != nil {
		slog.Warn("release alias failed", "path", path, "user_id", userID, "error", err)
	}
}

// restore puts back the previous tenant record after a lost claim race.
func (s *TenantService) restore(ctx context.Context, userID string, prev *tenant.Config) {
	var err error
	if prev == nil {
		err = s.store.Remove(ctx, docstore.TenantPath(userID))
	} else {
		err = docstore.SetJSON(ctx, s.store, docstore.TenantPath(userID), prev)
	}
	if err != nil {
		slog.Error("restore tenant failed", "user_id", userID, "error", err)
	}
}
