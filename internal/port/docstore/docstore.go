// Package docstore defines the port interface for the realtime document store
// that holds tenant configs, alias indexes and portfolios.
package docstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/domain/tenant"
)

// Event is a change notification for a watched path. Deleted is set when the
// value was removed; Value is then nil.
type Event struct {
	Path    string
	Value   []byte
	Deleted bool
}

// Store is a key-value store addressed by slash-delimited paths. Values are
// JSON documents.
type Store interface {
	// Get returns the value at path. found is false when nothing is stored.
	Get(ctx context.Context, path string) (value []byte, found bool, err error)
	Set(ctx context.Context, path string, value []byte) error
	// Create stores value only if path is empty. It returns domain.ErrConflict
	// when a value already exists.
	Create(ctx context.Context, path string, value []byte) error
	// Remove deletes the value at path. Removing a missing path is not an error.
	Remove(ctx context.Context, path string) error
	// Watch streams the current value (if any) followed by every change until
	// ctx is canceled, then closes the channel.
	Watch(ctx context.Context, path string) (<-chan Event, error)
}

// UsernamePath is the index entry mapping a username to a user ID.
func UsernamePath(username string) string {
	return "usernames/" + username
}

// DomainPath is the index entry mapping a normalized custom domain to a user ID.
func DomainPath(domain string) string {
	return "domains/" + tenant.EncodeDomain(domain)
}

// TenantPath holds a user's tenant.Config.
func TenantPath(userID string) string {
	return "tenants/" + userID
}

// DraftPath holds the owner's working copy of the portfolio.
func DraftPath(userID string) string {
	return "portfolios/" + userID + "/draft"
}

// PublishedPath holds the publicly served portfolio.
func PublishedPath(userID string) string {
	return "portfolios/" + userID + "/published"
}

// GetJSON loads and decodes the value at path into v.
func GetJSON(ctx context.Context, s Store, path string, v any) (bool, error) {
	data, found, err := s.Get(ctx, path)
	if err != nil || !found {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", path, err)
	}
	return true, nil
}

// SetJSON encodes v and stores it at path.
func SetJSON(ctx context.Context, s Store, path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return s.Set(ctx, path, data)
}

// CreateJSON encodes v and stores it at path unless a value exists.
func CreateJSON(ctx context.Context, s Store, path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return s.Create(ctx, path, data)
}
