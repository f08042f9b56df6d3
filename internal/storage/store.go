package storage

import (
	"encoding/json"

	"github.com/rs/zerolog/log"
)

// KV is the raw string-keyed backend underneath the Store. Implementations
// persist opaque byte values; every Set fully replaces the value at a key.
type KV interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) ([]byte, bool, error)
	// Set replaces the value at key.
	Set(key string, value []byte) error
	// Ping reports whether the backend is reachable.
	Ping() error
	// Close releases backend resources.
	Close() error
}

// Store reads and writes JSON-serializable values over a KV backend.
//
// Reads fail soft: a missing key, a backend error or malformed JSON leaves
// the destination untouched, so callers pre-fill it with their fallback.
// Writes have no fallback tier and propagate errors to the caller.
type Store struct {
	kv KV
}

// New wraps a KV backend in a JSON store.
func New(kv KV) *Store {
	return &Store{kv: kv}
}

// Read unmarshals the value at key into dest. dest must be a pointer and
// already hold the caller's fallback value; it is only modified when the
// stored value exists and parses cleanly.
func (s *Store) Read(key string, dest interface{}) {
	raw, ok, err := s.kv.Get(key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("storage read failed, using fallback")
		return
	}
	if !ok {
		return
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("corrupt value in storage, using fallback")
	}
}

// Write serializes value and replaces the stored value at key.
func (s *Store) Write(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.kv.Set(key, raw)
}

// Ping reports backend reachability for health checks.
func (s *Store) Ping() error {
	return s.kv.Ping()
}

// Close closes the underlying backend.
func (s *Store) Close() error {
	return s.kv.Close()
}
