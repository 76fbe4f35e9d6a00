package normalizer

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/navstamp/navstamp/internal/config"
)

// FileStore abstracts the markdown files a normalize run operates on.
// Paths are vault-relative and slash-separated.
type FileStore interface {
	// List returns every markdown file path in the store, in walk order.
	List() ([]string, error)
	Read(relPath string) ([]byte, error)
	Write(relPath string, data []byte) error
}

// DirStore is a FileStore backed by a vault directory on disk.
type DirStore struct {
	root string
}

// NewDirStore returns a store rooted at the given vault directory.
func NewDirStore(root string) *DirStore {
	return &DirStore{root: root}
}

// Root returns the vault directory this store reads and writes.
func (s *DirStore) Root() string {
	return s.root
}

// List walks the vault and returns relative paths of all markdown files,
// pruning the configured skip directories.
func (s *DirStore) List() ([]string, error) {
	var files []string
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if p == s.root {
				return walkErr
			}
			return nil
		}
		if d.IsDir() {
			if p != s.root && config.SkipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), ".md") {
			rel, err := filepath.Rel(s.root, p)
			if err != nil {
				return nil
			}
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (s *DirStore) Read(relPath string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.root, filepath.FromSlash(relPath)))
}

func (s *DirStore) Write(relPath string, data []byte) error {
	return os.WriteFile(filepath.Join(s.root, filepath.FromSlash(relPath)), data, 0o644)
}
