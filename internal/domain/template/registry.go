// Package template holds the catalogue of portfolio templates an owner can pick.
package template

import (
	"fmt"
	"sync"

	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/domain"
)

// Template describes a renderable portfolio layout.
type Template struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	PreviewImage string   `json:"previewImage,omitempty"`
	Category     string   `json:"category,omitempty"`
	Features     []string `json:"features,omitempty"`
}

// Registry is a concurrency-safe catalogue of templates in registration order.
type Registry struct {
	mu    sync.RWMutex
	byID  map[string]Template
	order []string
}

// NewRegistry returns a registry pre-filled with the given templates.
func NewRegistry(templates ...Template) (*Registry, error) {
	r := &Registry{byID: make(map[string]Template)}
	for i := range templates {
		if err := r.Register(templates[i]); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a template. IDs must be unique.
func (r *Registry) Register(t Template) error {
	if t.ID == "" || t.Name == "" {
		return fmt.Errorf("%w: template id and name are required", domain.ErrValidation)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[t.ID]; ok {
		return fmt.Errorf("register template %s: %w", t.ID, domain.ErrConflict)
	}
	r.byID[t.ID] = t
	r.order = append(r.order, t.ID)
	return nil
}

// Get returns the template with the given ID.
func (r *Registry) Get(id string) (Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byID[id]
	if !ok {
		return Template{}, fmt.Errorf("template %s: %w", id, domain.ErrNotFound)
	}
	return t, nil
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byID[id]
	return ok
}

// List returns all templates in registration order.
func (r *Registry) List() []Template {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Template, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Builtin returns the templates shipped with the application.
func Builtin() []Template {
	return []Template{
		{
			ID:           "template-1",
			Name:         "Modern Portfolio",
			Description:  "A clean and modern portfolio template",
			PreviewImage: "/assets/templates/template-1-preview.png",
			Category:     "modern",
			Features:     []string{"Hero section", "Skills display", "Projects grid", "Experience timeline"},
		},
	}
}
