// Package local provides the namespaced JSON key/value store every other
// component persists through. It mirrors the durable key-value store of the
// host environment: all operations are synchronous, serialization is JSON,
// and failures (unwritable disk, corrupt documents) degrade to returning the
// default value or false. Nothing here ever returns an error to the caller.
package local

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultNamespace prefixes all keys so multiple logical stores can coexist
// in one physical directory without collision.
const DefaultNamespace = "codequest_"

// Store is a thread-safe namespaced JSON key/value store over a directory.
type Store struct {
	basePath  string
	namespace string
	mu        sync.RWMutex
}

// NewStore creates a store rooted at basePath using the default namespace.
func NewStore(basePath string) (*Store, error) {
	return NewNamespacedStore(basePath, DefaultNamespace)
}

// NewNamespacedStore creates a store with an explicit namespace prefix.
func NewNamespacedStore(basePath, namespace string) (*Store, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, err
	}
	return &Store{basePath: basePath, namespace: namespace}, nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.basePath, s.namespace+key+".json")
}

// Set persists a value under key. Returns false instead of an error when the
// value cannot be serialized or written.
func (s *Store) Set(key string, value any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		slog.Error("storage set failed", "key", key, "error", err)
		return false
	}
	if err := os.WriteFile(s.path(key), data, 0644); err != nil {
		slog.Error("storage set failed", "key", key, "error", err)
		return false
	}
	return true
}

// Get reads the value stored under key into dest. Returns false when the key
// is absent or the stored document is corrupt, leaving dest untouched so the
// caller's default survives.
func (s *Store) Get(key string, dest any) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Error("storage get failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		slog.Error("storage get failed", "key", key, "error", err)
		return false
	}
	return true
}

// Remove deletes the value stored under key.
func (s *Store) Remove(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil {
		if !os.IsNotExist(err) {
			slog.Error("storage remove failed", "key", key, "error", err)
		}
		return false
	}
	return true
}

// Clear removes every key in this store's namespace.
func (s *Store) Clear() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok := true
	for _, key := range s.keysLocked() {
		if err := os.Remove(s.path(key)); err != nil {
			slog.Error("storage clear failed", "key", key, "error", err)
			ok = false
		}
	}
	return ok
}

// Keys returns all keys in this store's namespace, prefix stripped.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keysLocked()
}

func (s *Store) keysLocked() []string {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return []string{}
	}

	keys := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, s.namespace) || !strings.HasSuffix(name, ".json") {
			continue
		}
		keys = append(keys, strings.TrimSuffix(strings.TrimPrefix(name, s.namespace), ".json"))
	}
	return keys
}

// Export collects every stored value into a single document.
func (s *Store) Export() map[string]json.RawMessage {
	out := make(map[string]json.RawMessage)
	for _, key := range s.Keys() {
		var raw json.RawMessage
		if s.Get(key, &raw) {
			out[key] = raw
		}
	}
	return out
}

// Import writes every entry of a previously exported document.
func (s *Store) Import(data map[string]json.RawMessage) bool {
	ok := true
	for key, raw := range data {
		if !s.Set(key, raw) {
			ok = false
		}
	}
	return ok
}
