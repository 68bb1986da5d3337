// Package media persists uploaded recipe images on local disk and hands
// back the public reference under which they are served.
package media

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// URLPrefix is the public path prefix under which stored files are served.
const URLPrefix = "/uploads"

// Storage writes uploaded files into a base directory.
type Storage struct {
	dir string
}

// NewStorage creates the base directory if needed and returns a Storage
// rooted at it.
func NewStorage(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Storage{dir: dir}, nil
}

// Save writes the uploaded bytes under a collision-resistant name derived
// from the current time plus a random fragment, keeping the original file
// extension. It returns the public reference ("/uploads/<name>").
func (s *Storage) Save(r io.Reader, originalFilename string) (string, error) {
	name := fmt.Sprintf("%d-%s%s",
		time.Now().UnixNano(),
		uuid.New().String()[:8],
		strings.ToLower(filepath.Ext(originalFilename)),
	)

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	return URLPrefix + "/" + name, nil
}

// Remove deletes a previously stored file given its public reference.
// Unknown references are ignored.
func (s *Storage) Remove(ref string) {
	name := strings.TrimPrefix(ref, URLPrefix+"/")
	if name == "" || name == ref {
		return
	}
	os.Remove(filepath.Join(s.dir, filepath.Base(name)))
}

// Dir returns the base directory files are written to.
func (s *Storage) Dir() string {
	return s.dir
}
