// internal/template/store.go
package template

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Store resolves template names to .liquid files under a fixed root.
// Pure lookup, no caching: every request re-reads the file so template
// edits take effect without a restart.
type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

// Load reads the named template as UTF-8 text. Names that would resolve
// outside the template root are rejected before touching the filesystem.
func (s *Store) Load(name string) (string, error) {
	if !safeName(name) {
		log.Printf("❌ [TEMPLATE] Rejected unsafe template name: %q", name)
		return "", fmt.Errorf("invalid template name %q", name)
	}

	path := filepath.Join(s.root, name+".liquid")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read template %s: %w", path, err)
	}
	return string(data), nil
}

// safeName accepts only bare file names: no separators, no parent refs.
func safeName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return filepath.Base(name) == name
}
