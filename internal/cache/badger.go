package cache

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/phuslu/log"
	"github.com/timshannon/badgerhold/v4"
)

// entry is the persisted pairing of a content fingerprint and the serialized
// document derived from it.
type entry struct {
	Fingerprint string
	Payload     []byte
	CreatedAt   time.Time
}

// BadgerStore is a durable Store backed by a badgerhold key/value database at
// a caller-supplied directory. Entries have no TTL and are never evicted;
// orphaned entries persist until manually removed.
type BadgerStore struct {
	store  *badgerhold.Store
	logger log.Logger
}

// OpenBadger opens the cache database at dir, creating the directory when it
// does not exist yet.
func OpenBadger(dir string, logger log.Logger) (*BadgerStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	options := badgerhold.DefaultOptions
	options.Dir = dir
	options.ValueDir = dir
	options.Logger = nil // badger's own logger is noisy for a CLI run

	store, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}

	logger.Debug().Str("dir", dir).Msg("cache database opened")

	return &BadgerStore{store: store, logger: logger}, nil
}

func (s *BadgerStore) Lookup(_ context.Context, fingerprint string) ([]byte, bool, error) {
	var e entry
	err := s.store.Get(fingerprint, &e)
	if err == badgerhold.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache lookup: %w", err)
	}
	return e.Payload, true, nil
}

func (s *BadgerStore) Store(_ context.Context, fingerprint string, payload []byte) error {
	e := entry{Fingerprint: fingerprint, Payload: payload, CreatedAt: time.Now()}
	if err := s.store.Upsert(fingerprint, &e); err != nil {
		return fmt.Errorf("cache store: %w", err)
	}
	s.logger.Debug().Str("fingerprint", fingerprint).Msg("cache entry written")
	return nil
}

// Close releases the underlying database.
func (s *BadgerStore) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}
