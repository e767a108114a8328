// Package listing implements the on-disk cache of flattened output graphs.
package listing

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/zerr"

	"github.com/tiiuae/ghaf-slim-demo/internal/core/domain"
)

// Store implements ports.ListingStore using a flat JSON file keyed by the
// lock-file hash.
type Store struct {
	path  string
	mu    sync.RWMutex
	cache map[string]domain.Listing
}

// DefaultPath returns the listing cache location under the user cache dir.
func DefaultPath() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "ghaf-build", "listings.json")
}

// NewStore creates a new ListingStore backed by the file at the given path.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:  filepath.Clean(path),
		cache: make(map[string]domain.Listing),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, "failed to read listing store")
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.cache); err != nil {
		return zerr.Wrap(err, "failed to unmarshal listing store")
	}

	return nil
}

func (s *Store) save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(s.cache, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal listing store")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create directory for listing store")
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return zerr.Wrap(err, "failed to write listing store")
	}

	return nil
}

// Get retrieves the listing for a given lock-file hash.
func (s *Store) Get(lockHash string) (*domain.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.cache[lockHash]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

// Put stores the listing.
func (s *Store) Put(l domain.Listing) error {
	s.mu.Lock()
	s.cache[l.LockHash] = l
	s.mu.Unlock()

	return s.save()
}
