package memkv

import (
	"context"
	"sync"
	"testing"

	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/port/docstore/docstoretest"
)

func TestCompliance(t *testing.T) {
	docstoretest.RunComplianceTests(t, New(), "compliance")
}

func TestWatchKeepsLatestForSlowReader(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := s.Watch(ctx, "portfolios/u1/draft")
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range []string{`1`, `2`, `3`} {
		_ = s.Set(ctx, "portfolios/u1/draft", []byte(v))
	}

	ev := <-events
	if string(ev.Value) != `3` {
		t.Fatalf("expected latest value 3, got %s", ev.Value)
	}
}

func TestWatchWithoutValueSendsNothing(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	events, err := s.Watch(ctx, "portfolios/none/draft")
	if err != nil {
		t.Fatal(err)
	}
	cancel()
	for ev := range events {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestGetReturnsCopy(t *testing.T) {
	s := New()
	ctx := context.Background()
	_ = s.Set(ctx, "k", []byte(`"abc"`))

	v, _, _ := s.Get(ctx, "k")
	v[1] = 'z'

	again, _, _ := s.Get(ctx, "k")
	if string(again) != `"abc"` {
		t.Fatalf("stored value mutated through Get result: %s", again)
	}
}

func TestConcurrentAccess(t *testing.T) {
	s := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.Set(ctx, "shared", []byte{byte('0' + i%10)})
			_, _, _ = s.Get(ctx, "shared")
			_ = s.Create(ctx, "claim", []byte(`"x"`))
		}(i)
	}
	wg.Wait()

	if s.Len() != 2 {
		t.Fatalf("expected 2 paths, got %d", s.Len())
	}
}
