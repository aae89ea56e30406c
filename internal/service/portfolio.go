package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/domain"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/domain/portfolio"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/domain/template"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/port/cache"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/port/docstore"
)

const publicCachePrefix = "public:"

// ImportResult is the draft after a CV import and what was added to it.
type ImportResult struct {
	Draft portfolio.Portfolio  `json:"draft"`
	Stats portfolio.MergeStats `json:"stats"`
}

// PortfolioService manages the draft and published copies of portfolios.
type PortfolioService struct {
	store     docstore.Store
	templates *template.Registry
	cache     cache.Cache
	cacheTTL  time.Duration
	now       func() time.Time
	newID     func() string
}

// NewPortfolioService creates a PortfolioService. c may be nil to disable
// caching of published portfolios.
func NewPortfolioService(store docstore.Store, templates *template.Registry, c cache.Cache, cacheTTL time.Duration) *PortfolioService {
	return &PortfolioService{
		store:     store,
		templates: templates,
		cache:     c,
		cacheTTL:  cacheTTL,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// GetDraft returns the owner's draft, or a new default portfolio when none
// has been saved.
func (s *PortfolioService) GetDraft(ctx context.Context, userID string) (*portfolio.Portfolio, error) {
	var p portfolio.Portfolio
	found, err := docstore.GetJSON(ctx, s.store, docstore.DraftPath(userID), &p)
	if err != nil {
		return nil, fmt.Errorf("%w: get draft: %w", ErrStoreUnavailable, err)
	}
	if !found {
		p = portfolio.New(s.now().UTC())
	}
	return &p, nil
}

// SaveDraft validates and stores the owner's draft. Records without an ID
// are given one.
func (s *PortfolioService) SaveDraft(ctx context.Context, userID string, p *portfolio.Portfolio) (*portfolio.Portfolio, error) {
	if err := s.validate(p); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.LastUpdated = now
	p.Status = portfolio.StatusDraft
	s.assignIDs(p)

	if err := docstore.SetJSON(ctx, s.store, docstore.DraftPath(userID), p); err != nil {
		return nil, fmt.Errorf("%w: save draft: %w", ErrStoreUnavailable, err)
	}
	return p, nil
}

// Publish copies the draft to the published path and marks both published.
func (s *PortfolioService) Publish(ctx context.Context, userID string) (*portfolio.Portfolio, error) {
	var p portfolio.Portfolio
	found, err := docstore.GetJSON(ctx, s.store, docstore.DraftPath(userID), &p)
	if err != nil {
		return nil, fmt.Errorf("%w: get draft: %w", ErrStoreUnavailable, err)
	}
	if !found {
		return nil, fmt.Errorf("draft of %s: %w", userID, domain.ErrNotFound)
	}
	if err := s.validate(&p); err != nil {
		return nil, err
	}

	p.Status = portfolio.StatusPublished
	p.LastUpdated = s.now().UTC()

	if err := docstore.SetJSON(ctx, s.store, docstore.PublishedPath(userID), p); err != nil {
		return nil, fmt.Errorf("%w: publish: %w", ErrStoreUnavailable, err)
	}
	if err := docstore.SetJSON(ctx, s.store, docstore.DraftPath(userID), p); err != nil {
		return nil, fmt.Errorf("%w: mark draft published: %w", ErrStoreUnavailable, err)
	}
	s.invalidate(ctx, userID)

	slog.Info("portfolio published", "user_id", userID)
	return &p, nil
}

// GetPublic returns the published portfolio of userID.
func (s *PortfolioService) GetPublic(ctx context.Context, userID string) (*portfolio.Portfolio, error) {
	data, err := s.publicBytes(ctx, userID)
	if err != nil {
		return nil, err
	}
	var p portfolio.Portfolio
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode published %s: %w", userID, err)
	}
	return &p, nil
}

func (s *PortfolioService) publicBytes(ctx context.Context, userID string) ([]byte, error) {
	key := publicCachePrefix + userID
	if s.cache != nil {
		if data, ok, err := s.cache.Get(ctx, key); err == nil && ok {
			return data, nil
		}
	}

	data, found, err := s.store.Get(ctx, docstore.PublishedPath(userID))
	if err != nil {
		return nil, fmt.Errorf("%w: get published: %w", ErrStoreUnavailable, err)
	}
	if !found {
		return nil, fmt.Errorf("published portfolio of %s: %w", userID, domain.ErrNotFound)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
			slog.Warn("cache set failed", "key", key, "error", err)
		}
	}
	return data, nil
}

// DiscardDraft throws away unpublished changes. The draft is reset to the
// published copy, or removed when nothing was published.
func (s *PortfolioService) DiscardDraft(ctx context.Context, userID string) (*portfolio.Portfolio, error) {
	var pub portfolio.Portfolio
	found, err := docstore.GetJSON(ctx, s.store, docstore.PublishedPath(userID), &pub)
	if err != nil {
		return nil, fmt.Errorf("%w: get published: %w", ErrStoreUnavailable, err)
	}
	if !found {
		if err := s.store.Remove(ctx, docstore.DraftPath(userID)); err != nil {
			return nil, fmt.Errorf("%w: remove draft: %w", ErrStoreUnavailable, err)
		}
		p := portfolio.New(s.now().UTC())
		return &p, nil
	}
	if err := docstore.SetJSON(ctx, s.store, docstore.DraftPath(userID), pub); err != nil {
		return nil, fmt.Errorf("%w: reset draft: %w", ErrStoreUnavailable, err)
	}
	return &pub, nil
}

// WatchDraft streams the draft on every change until ctx is canceled. A
// removed draft is reported as a new default portfolio.
func (s *PortfolioService) WatchDraft(ctx context.Context, userID string) (<-chan portfolio.Portfolio, error) {
	events, err := s.store.Watch(ctx, docstore.DraftPath(userID))
	if err != nil {
		return nil, fmt.Errorf("%w: watch draft: %w", ErrStoreUnavailable, err)
	}

	out := make(chan portfolio.Portfolio)
	go func() {
		defer close(out)
		for ev := range events {
			var p portfolio.Portfolio
			if ev.Deleted {
				p = portfolio.New(s.now().UTC())
			} else if err := json.Unmarshal(ev.Value, &p); err != nil {
				slog.Warn("skip undecodable draft", "user_id", userID, "error", err)
				continue
			}
			select {
			case out <- p:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// ApplyImport merges an extracted CV into the owner's draft and saves it.
func (s *PortfolioService) ApplyImport(ctx context.Context, userID string, imp *portfolio.Partial) (*ImportResult, error) {
	draft, err := s.GetDraft(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats := draft.Merge(imp, s.newID)
	saved, err := s.SaveDraft(ctx, userID, draft)
	if err != nil {
		return nil, err
	}
	return &ImportResult{Draft: *saved, Stats: stats}, nil
}

// Templates returns the template catalogue.
func (s *PortfolioService) Templates() []template.Template {
	return s.templates.List()
}

func (s *PortfolioService) validate(p *portfolio.Portfolio) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if !s.templates.Has(p.TemplateID) {
		return fmt.Errorf("%w: unknown template %q", domain.ErrValidation, p.TemplateID)
	}
	return nil
}

func (s *PortfolioService) assignIDs(p *portfolio.Portfolio) {
	for i := range p.Skills {
		if p.Skills[i].ID == "" {
			p.Skills[i].ID = s.newID()
		}
	}
	for i := range p.Projects {
		if p.Projects[i].ID == "" {
			p.Projects[i].ID = s.newID()
		}
	}
	for i := range p.Experience {
		if p.Experience[i].ID == "" {
			p.Experience[i].ID = s.newID()
		}
	}
}

func (s *PortfolioService) invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, publicCachePrefix+userID); err != nil {
		slog.Warn("cache delete failed", "user_id", userID, "error", err)
	}
}
