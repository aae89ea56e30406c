// Package docstoretest provides a compliance suite for docstore.Store adapters.
package docstoretest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/domain"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/port/docstore"
)

const watchTimeout = 5 * time.Second

// RunComplianceTests runs the standard compliance test suite against any Store
// implementation. prefix isolates keys so the suite can share a backend.
func RunComplianceTests(t *testing.T, s docstore.Store, prefix string) {
	t.Helper()
	ctx := context.Background()
	key := func(name string) string { return prefix + "/" + name }

	t.Run("SetAndGet", func(t *testing.T) {
		if err := s.Set(ctx, key("set"), []byte(`"u1"`)); err != nil {
			t.Fatal(err)
		}
		val, found, err := s.Get(ctx, key("set"))
		if err != nil {
			t.Fatal(err)
		}
		if !found {
			t.Fatal("expected found after Set")
		}
		if string(val) != `"u1"` {
			t.Fatalf("expected \"u1\", got %s", val)
		}
	})

	t.Run("GetMiss", func(t *testing.T) {
		_, found, err := s.Get(ctx, key("missing"))
		if err != nil {
			t.Fatal(err)
		}
		if found {
			t.Fatal("expected miss for nonexistent path")
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		_ = s.Set(ctx, key("ow"), []byte(`"v1"`))
		_ = s.Set(ctx, key("ow"), []byte(`"v2"`))
		val, _, err := s.Get(ctx, key("ow"))
		if err != nil {
			t.Fatal(err)
		}
		if string(val) != `"v2"` {
			t.Fatalf("expected \"v2\", got %s", val)
		}
	})

	t.Run("Remove", func(t *testing.T) {
		_ = s.Set(ctx, key("rm"), []byte(`"x"`))
		if err := s.Remove(ctx, key("rm")); err != nil {
			t.Fatal(err)
		}
		_, found, err := s.Get(ctx, key("rm"))
		if err != nil {
			t.Fatal(err)
		}
		if found {
			t.Fatal("expected miss after Remove")
		}
	})

	t.Run("RemoveMissing", func(t *testing.T) {
		if err := s.Remove(ctx, key("never-existed")); err != nil {
			t.Fatalf("Remove of missing path should not error: %v", err)
		}
	})

	t.Run("Create", func(t *testing.T) {
		if err := s.Create(ctx, key("claim"), []byte(`"a"`)); err != nil {
			t.Fatal(err)
		}
		err := s.Create(ctx, key("claim"), []byte(`"b"`))
		if !errors.Is(err, domain.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
		val, _, _ := s.Get(ctx, key("claim"))
		if string(val) != `"a"` {
			t.Fatalf("Create must not overwrite, got %s", val)
		}
	})

	t.Run("CreateAfterRemove", func(t *testing.T) {
		_ = s.Create(ctx, key("reclaim"), []byte(`"a"`))
		_ = s.Remove(ctx, key("reclaim"))
		if err := s.Create(ctx, key("reclaim"), []byte(`"b"`)); err != nil {
			t.Fatalf("Create after Remove: %v", err)
		}
	})

	t.Run("Watch", func(t *testing.T) {
		_ = s.Set(ctx, key("watched"), []byte(`"initial"`))

		wctx, cancel := context.WithCancel(ctx)
		defer cancel()
		events, err := s.Watch(wctx, key("watched"))
		if err != nil {
			t.Fatal(err)
		}

		ev := next(t, events)
		if string(ev.Value) != `"initial"` {
			t.Fatalf("expected current value first, got %+v", ev)
		}

		_ = s.Set(ctx, key("watched"), []byte(`"updated"`))
		ev = next(t, events)
		if string(ev.Value) != `"updated"` {
			t.Fatalf("expected updated value, got %+v", ev)
		}

		_ = s.Remove(ctx, key("watched"))
		ev = next(t, events)
		if !ev.Deleted {
			t.Fatalf("expected delete event, got %+v", ev)
		}

		cancel()
		deadline := time.After(watchTimeout)
		for {
			select {
			case _, ok := <-events:
				if !ok {
					return
				}
			case <-deadline:
				t.Fatal("watch channel not closed after cancel")
			}
		}
	})
}

func next(t *testing.T, events <-chan docstore.Event) docstore.Event {
	t.Helper()
	select {
	case ev, ok := <-events:
		if !ok {
			t.Fatal("watch channel closed early")
		}
		return ev
	case <-time.After(watchTimeout):
		t.Fatal("timed out waiting for watch event")
	}
	return docstore.Event{}
}
