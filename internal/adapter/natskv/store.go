// Package natskv implements the docstore port using a NATS JetStream
// key-value bucket.
package natskv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/domain"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/port/docstore"
)

// Store wraps a JetStream KeyValue bucket. Document paths are used as keys
// unchanged; "/" is a valid key character.
type Store struct {
	nc *nats.Conn
	kv jetstream.KeyValue
}

// Connect dials NATS and ensures the bucket exists.
func Connect(ctx context.Context, url, bucket string, history uint8) (*Store, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream init: %w", err)
	}

	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:  bucket,
		History: history,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream kv bucket %s: %w", bucket, err)
	}

	slog.Info("nats kv connected", "url", url, "bucket", bucket)
	return &Store{nc: nc, kv: kv}, nil
}

// New wraps an existing bucket. The caller owns the connection.
func New(kv jetstream.KeyValue) *Store {
	return &Store{kv: kv}
}

// Get retrieves the latest value for path.
func (s *Store) Get(ctx context.Context, path string) (value []byte, found bool, err error) {
	entry, err := s.kv.Get(ctx, path)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("kv get %s: %w", path, err)
	}
	return entry.Value(), true, nil
}

// Set stores value at path.
func (s *Store) Set(ctx context.Context, path string, value []byte) error {
	if _, err := s.kv.Put(ctx, path, value); err != nil {
		return fmt.Errorf("kv put %s: %w", path, err)
	}
	return nil
}

// Create stores value only when path holds no value.
func (s *Store) Create(ctx context.Context, path string, value []byte) error {
	_, err := s.kv.Create(ctx, path, value)
	if errors.Is(err, jetstream.ErrKeyExists) {
		return fmt.Errorf("kv create %s: %w", path, domain.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("kv create %s: %w", path, err)
	}
	return nil
}

// Remove places a delete marker on path.
func (s *Store) Remove(ctx context.Context, path string) error {
	err := s.kv.Delete(ctx, path)
	if err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
		return fmt.Errorf("kv delete %s: %w", path, err)
	}
	return nil
}

// Watch relays bucket updates for path until ctx is canceled.
func (s *Store) Watch(ctx context.Context, path string) (<-chan docstore.Event, error) {
	w, err := s.kv.Watch(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("kv watch %s: %w", path, err)
	}

	out := make(chan docstore.Event, 1)
	go func() {
		defer close(out)
		defer func() {
			if err := w.Stop(); err != nil {
				slog.Debug("kv watcher stop", "path", path, "error", err)
			}
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case entry, ok := <-w.Updates():
				if !ok {
					return
				}
				// A nil entry marks the end of the initial values.
				if entry == nil {
					continue
				}
				ev := docstore.Event{Path: entry.Key()}
				switch entry.Operation() {
				case jetstream.KeyValueDelete, jetstream.KeyValuePurge:
					ev.Deleted = true
				default:
					ev.Value = entry.Value()
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// Close drains the connection when the Store owns it.
func (s *Store) Close() error {
	if s.nc == nil {
		return nil
	}
	return s.nc.Drain()
}
