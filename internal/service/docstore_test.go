package service

import (
	"context"
	"strings"
	"sync"

	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/adapter/memkv"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/port/docstore"
)

// faultyStore wraps a memkv store and fails operations on chosen path
// prefixes. It also records every Get path.
type faultyStore struct {
	*memkv.Store

	mu       sync.Mutex
	gets     []string
	failGet  map[string]error // path prefix -> error
	failSet  map[string]error
	blockGet bool // block Get until ctx is done
}

func newFaultyStore() *faultyStore {
	return &faultyStore{
		Store:   memkv.New(),
		failGet: make(map[string]error),
		failSet: make(map[string]error),
	}
}

var _ docstore.Store = (*faultyStore)(nil)

func (f *faultyStore) match(m map[string]error, path string) error {
	for prefix, err := range m {
		if strings.HasPrefix(path, prefix) {
			return err
		}
	}
	return nil
}

func (f *faultyStore) Get(ctx context.Context, path string) ([]byte, bool, error) {
	f.mu.Lock()
	f.gets = append(f.gets, path)
	err := f.match(f.failGet, path)
	block := f.blockGet
	f.mu.Unlock()
	if block {
		<-ctx.Done()
		return nil, false, ctx.Err()
	}
	if err != nil {
		return nil, false, err
	}
	return f.Store.Get(ctx, path)
}

func (f *faultyStore) Set(ctx context.Context, path string, value []byte) error {
	f.mu.Lock()
	err := f.match(f.failSet, path)
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.Store.Set(ctx, path, value)
}

func (f *faultyStore) Create(ctx context.Context, path string, value []byte) error {
	f.mu.Lock()
	err := f.match(f.failSet, path)
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.Store.Create(ctx, path, value)
}

func (f *faultyStore) getCount(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, p := range f.gets {
		if strings.HasPrefix(p, prefix) {
			n++
		}
	}
	return n
}

// seedIndex writes a username or domain index entry the way TenantService does.
func seedIndex(s docstore.Store, path, userID string) {
	if err := docstore.SetJSON(context.Background(), s, path, userID); err != nil {
		panic(err)
	}
}
