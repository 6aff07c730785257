// Package storage persists uploaded bytes under a single content root on
// the local filesystem. Originals live at <root>/<random id>; thumbnail
// derivatives live beside them at <path>_<width>.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

func (s *Store) Root() string { return s.root }

// EnsureRoot creates the content root if needed. Safe to call repeatedly
// and from concurrent uploads.
func (s *Store) EnsureRoot() error {
	return os.MkdirAll(s.root, 0o755)
}

// Save writes data to a new uniquely named file under the content root
// and returns its path. Names are random, so concurrent saves of
// identical payloads never collide.
func (s *Store) Save(data []byte) (string, error) {
	if err := s.EnsureRoot(); err != nil {
		return "", err
	}
	path := filepath.Join(s.root, uuid.NewString())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// Read returns the bytes at path. The caller distinguishes a missing
// file (derivative not generated yet) with os.IsNotExist.
func (s *Store) Read(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// DerivativePath is the deterministic location of a resized variant,
// which makes repeated worker runs overwrite instead of accumulate.
func DerivativePath(localPath string, width int) string {
	return fmt.Sprintf("%s_%d", localPath, width)
}
