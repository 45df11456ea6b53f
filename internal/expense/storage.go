package expense

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Storage holds the original uploaded receipt files. Originals are kept for
// the lifetime of their extraction job so a low-confidence extraction can be
// reviewed against the actual image before it is confirmed.
type Storage interface {
	// Save stores an uploaded receipt and returns the reference used to
	// retrieve it later
	Save(filename string, data []byte) (string, error)

	// Get retrieves a stored receipt by its reference
	Get(path string) ([]byte, error)

	// Delete removes a stored receipt
	Delete(path string) error
}

// LocalStorage keeps receipt originals as flat files in one directory. The
// references handed out by Save are bare file names relative to that
// directory; names carrying path separators are rejected so a crafted upload
// cannot reach outside it.
type LocalStorage struct {
	dir string
}

// NewLocalStorage creates a new LocalStorage instance, creating the
// directory if it doesn't exist
func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}

	return &LocalStorage{dir: dir}, nil
}

// Save writes an uploaded receipt into the storage directory
func (l *LocalStorage) Save(filename string, data []byte) (string, error) {
	if err := validateStorageName(filename); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(l.dir, filename), data, 0644); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}
	return filename, nil
}

// Get reads a stored receipt back for job review
func (l *LocalStorage) Get(path string) ([]byte, error) {
	if err := validateStorageName(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(l.dir, path))
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return data, nil
}

// Delete removes a stored receipt once its job is deleted
func (l *LocalStorage) Delete(path string) error {
	if err := validateStorageName(path); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(l.dir, path)); err != nil {
		return fmt.Errorf("deleting file: %w", err)
	}
	return nil
}

// validateStorageName rejects references that could resolve outside the
// storage directory
func validateStorageName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid storage name %q", name)
	}
	return nil
}
