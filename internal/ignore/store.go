// Package ignore persists the set of mail threads the user has chosen to
// ignore.
package ignore

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/goccy/go-json"
	"github.com/kurogetsusai/wl-ignore-mail/internal/logging"
)

// StorageKey is the key the set is persisted under.
const StorageKey = "wl-ignore-mail"

// ErrInvalidID is returned when toggling a non-positive thread ID.
var ErrInvalidID = errors.New("invalid mail thread ID")

// Backend is the key/value store the set lives in.
type Backend interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Set is the persisted document. Ignored keeps insertion order.
type Set struct {
	Ignored []int `json:"ignored"`
}

// Contains reports whether id is in the set.
func (s Set) Contains(id int) bool {
	return slices.Contains(s.Ignored, id)
}

// IsIgnored is Contains, so a snapshot can stand in for the store.
func (s Set) IsIgnored(id int) bool { return s.Contains(id) }

// Store reads and writes the ignore set through a Backend.
type Store struct {
	mu      sync.Mutex
	backend Backend
}

// NewStore creates a store over backend.
func NewStore(backend Backend) *Store {
	if backend == nil {
		panic("NewStore: backend dependency cannot be nil")
	}
	return &Store{backend: backend}
}

// Read returns the persisted set. A missing, unreadable or malformed value
// yields an empty set.
func (s *Store) Read() Set {
	set, err := s.load()
	if err != nil {
		logging.Warn("ignore store read failed", "error", err)
		return Set{Ignored: []int{}}
	}
	return set
}

// load is Read without the fallback for backend errors. Absent and
// malformed values still yield an empty set.
func (s *Store) load() (Set, error) {
	raw, ok, err := s.backend.Get(StorageKey)
	if err != nil {
		return Set{}, fmt.Errorf("read ignore set: %w", err)
	}
	if !ok {
		return Set{Ignored: []int{}}, nil
	}
	var set Set
	if err := json.Unmarshal([]byte(raw), &set); err != nil {
		logging.Debug("ignore store holds malformed data", "error", err)
		return Set{Ignored: []int{}}, nil
	}
	if set.Ignored == nil {
		set.Ignored = []int{}
	}
	return set, nil
}

// Save overwrites the persisted set.
func (s *Store) Save(set Set) error {
	if set.Ignored == nil {
		set.Ignored = []int{}
	}
	data, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("encode ignore set: %w", err)
	}
	if err := s.backend.Set(StorageKey, string(data)); err != nil {
		return fmt.Errorf("save ignore set: %w", err)
	}
	return nil
}

// IsIgnored reports whether thread id is currently ignored.
func (s *Store) IsIgnored(id int) bool {
	return s.Read().Contains(id)
}

// List returns the ignored IDs in insertion order.
func (s *Store) List() []int {
	return s.Read().Ignored
}

// Toggle flips the membership of id and persists the result. It returns
// whether id is ignored afterwards. Removal drops every occurrence; addition
// appends once.
func (s *Store) Toggle(id int) (bool, error) {
	if id <= 0 {
		return false, fmt.Errorf("%w: %d", ErrInvalidID, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	set, err := s.load()
	if err != nil {
		return false, err
	}
	ignored := !set.Contains(id)
	if ignored {
		set.Ignored = append(set.Ignored, id)
	} else {
		set.Ignored = slices.DeleteFunc(set.Ignored, func(v int) bool { return v == id })
	}

	if err := s.Save(set); err != nil {
		return !ignored, err
	}
	logging.Info("ignore set toggled", "mail_id", id, "ignored", ignored)
	return ignored, nil
}
