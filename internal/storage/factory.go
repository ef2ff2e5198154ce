package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kurogetsusai/wl-ignore-mail/internal/colors"
	"github.com/kurogetsusai/wl-ignore-mail/internal/config"
	"github.com/kurogetsusai/wl-ignore-mail/internal/storage/sqlite"
)

const (
	// BackendSQLite selects the SQLite key/value table.
	BackendSQLite = "sqlite"
	// BackendFile selects the JSON file store.
	BackendFile = "file"
	// BackendMemory selects a process-local store.
	BackendMemory = "memory"

	dbFileName   = "wl-ignore-mail.db"
	jsonFileName = "wl-ignore-mail.json"
)

var _ Backend = (*sqlite.Store)(nil)

// NewFromConfig creates the backend named by the storage_backend setting.
func NewFromConfig() (Backend, error) {
	backend := config.Get("storage_backend", BackendSQLite)
	return NewForBackend(backend, config.Get("state_dir", ""))
}

// NewForBackend creates a backend of the given kind rooted at stateDir.
// A SQLite backend that cannot be opened falls back to the file backend.
func NewForBackend(backend, stateDir string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendMemory:
		return NewMemoryBackend(), nil
	case BackendFile:
		return NewFileBackend(filepath.Join(stateDir, jsonFileName))
	case "", BackendSQLite:
		store, err := sqlite.Open(filepath.Join(stateDir, dbFileName))
		if err != nil {
			colors.Warning(fmt.Sprintf("failed to initialize sqlite backend, falling back to file: %v", err))
			return NewFileBackend(filepath.Join(stateDir, jsonFileName))
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
