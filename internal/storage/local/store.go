package local

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Store stages uploaded images under a scratch directory. Each staged file
// gets a fresh unique name, so concurrent requests never collide. Staged
// files are transient: the handler discards them on every exit path.
type Store struct {
	dir string
}

// NewStore creates the scratch directory if absent.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating temp dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the scratch directory path.
func (s *Store) Dir() string {
	return s.dir
}

// Stage writes src to a uniquely named file with the given extension
// (including the dot) and returns its path.
func (s *Store) Stage(src io.Reader, ext string) (string, error) {
	path := filepath.Join(s.dir, uuid.New().String()+ext)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating staged file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("writing staged file: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("closing staged file: %w", err)
	}
	return path, nil
}

// Discard removes a staged file. A failure is logged, not returned: cleanup
// must never mask the request's real outcome.
func (s *Store) Discard(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("storage: failed to remove staged file %s: %v", path, err)
	}
}
