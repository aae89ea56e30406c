// Package memkv implements the docstore port in process memory. It backs
// single-node development setups and tests.
package memkv

import (
	"context"
	"fmt"
	"sync"

	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/domain"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/port/docstore"
)

// Store is a map-backed docstore.Store.
type Store struct {
	mu       sync.Mutex
	data     map[string][]byte
	watchers map[string]map[*watcher]struct{}
}

// watcher receives the latest event for a path. Slow readers only see the
// most recent change.
type watcher struct {
	ch chan docstore.Event
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		data:     make(map[string][]byte),
		watchers: make(map[string]map[*watcher]struct{}),
	}
}

// Get returns a copy of the value at path.
func (s *Store) Get(_ context.Context, path string) (value []byte, found bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[path]
	if !ok {
		return nil, false, nil
	}
	return clone(v), true, nil
}

// Set stores value at path and notifies watchers.
func (s *Store) Set(_ context.Context, path string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[path] = clone(value)
	s.notify(docstore.Event{Path: path, Value: clone(value)})
	return nil
}

// Create stores value at path unless a value is already present.
func (s *Store) Create(_ context.Context, path string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[path]; ok {
		return fmt.Errorf("create %s: %w", path, domain.ErrConflict)
	}
	s.data[path] = clone(value)
	s.notify(docstore.Event{Path: path, Value: clone(value)})
	return nil
}

// Remove deletes the value at path.
func (s *Store) Remove(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[path]; !ok {
		return nil
	}
	delete(s.data, path)
	s.notify(docstore.Event{Path: path, Deleted: true})
	return nil
}

// Watch emits the current value, if any, then every change to path.
func (s *Store) Watch(ctx context.Context, path string) (<-chan docstore.Event, error) {
	w := &watcher{ch: make(chan docstore.Event, 1)}

	s.mu.Lock()
	if v, ok := s.data[path]; ok {
		w.ch <- docstore.Event{Path: path, Value: clone(v)}
	}
	if s.watchers[path] == nil {
		s.watchers[path] = make(map[*watcher]struct{})
	}
	s.watchers[path][w] = struct{}{}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.watchers[path], w)
		if len(s.watchers[path]) == 0 {
			delete(s.watchers, path)
		}
		close(w.ch)
		s.mu.Unlock()
	}()
	return w.ch, nil
}

// Len returns the number of stored paths.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

// notify must be called with s.mu held.
func (s *Store) notify(ev docstore.Event) {
	for w := range s.watchers[ev.Path] {
		select {
		case w.ch <- ev:
		default:
			// Replace the unread event with the newer one.
			select {
			case <-w.ch:
			default:
			}
			select {
			case w.ch <- ev:
			default:
			}
		}
	}
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
