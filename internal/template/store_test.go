package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Load(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "welcome.liquid"), []byte("Hello {{ name }}"), 0o644))

	store := NewStore(root)

	src, err := store.Load("welcome")
	require.NoError(t, err)
	assert.Equal(t, "Hello {{ name }}", src)
}

func TestStore_LoadMissing(t *testing.T) {
	store := NewStore(t.TempDir())

	_, err := store.Load("nope")
	assert.Error(t, err)
}

func TestStore_RejectsTraversal(t *testing.T) {
	root := t.TempDir()
	// A file outside the root that a traversal would reach.
	outside := filepath.Join(root, "..", "secret.liquid")
	require.NoError(t, os.WriteFile(outside, []byte("leaked"), 0o644))

	store := NewStore(filepath.Join(root))

	for _, name := range []string{
		"../secret",
		"..",
		".",
		"",
		"sub/../../secret",
	} {
		_, err := store.Load(name)
		assert.Error(t, err, "name %q must be rejected", name)
	}
}
