package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
)

const (
	// FileModeDir is the permission for directories created by the backends.
	FileModeDir os.FileMode = 0o755
	// FileModeFile is the permission for data files.
	FileModeFile os.FileMode = 0o600
)

// FileBackend stores all keys in one JSON object on disk. Every operation
// rereads the file under a directory lock so concurrent processes see each
// other's writes.
type FileBackend struct {
	path    string
	lockDir string
}

var _ Backend = (*FileBackend)(nil)

// NewFileBackend creates a file backend at path, creating its directory.
func NewFileBackend(path string) (*FileBackend, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("file storage: path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), FileModeDir); err != nil {
		return nil, fmt.Errorf("file storage: create directory: %w", err)
	}
	return &FileBackend{path: path, lockDir: path + ".lock"}, nil
}

// Path returns the data file location.
func (f *FileBackend) Path() string { return f.path }

func (f *FileBackend) Get(key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}
	var (
		value string
		ok    bool
	)
	err := WithLock(f.lockDir, func() error {
		values, err := f.readAll()
		if err != nil {
			return err
		}
		value, ok = values[key]
		return nil
	})
	return value, ok, err
}

func (f *FileBackend) Set(key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return WithLock(f.lockDir, func() error {
		values, err := f.readAll()
		if err != nil {
			return err
		}
		values[key] = value
		return f.writeAll(values)
	})
}

func (f *FileBackend) Close() error { return nil }

func (f *FileBackend) readAll() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("file storage: read %s: %w", f.path, err)
	}
	values := make(map[string]string)
	if len(strings.TrimSpace(string(data))) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("file storage: decode %s: %w", f.path, err)
	}
	return values, nil
}

func (f *FileBackend) writeAll(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("file storage: encode: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, FileModeFile); err != nil {
		return fmt.Errorf("file storage: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("file storage: replace %s: %w", f.path, err)
	}
	return nil
}
