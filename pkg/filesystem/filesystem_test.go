package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadOptional(t *testing.T) {
	fsys := NewMemory()
	require.NoError(t, fsys.MkdirAll("/project/dir", 0755))
	require.NoError(t, fsys.WriteFile("/project/.babelrc", []byte(`{}`), 0644))

	t.Run("existing_file", func(t *testing.T) {
		data, ok, err := ReadOptional(fsys, "/project/.babelrc")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "{}", string(data))
	})

	t.Run("missing_file_is_not_an_error", func(t *testing.T) {
		data, ok, err := ReadOptional(fsys, "/project/missing.json")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, data)
	})

	t.Run("directory_is_not_a_file", func(t *testing.T) {
		exists, err := Exists(fsys, "/project/dir")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestOSFilesystem(t *testing.T) {
	dir := t.TempDir()
	fsys := NewOS()

	path := filepath.Join(dir, "nested", "mix.toml")
	require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, fsys.WriteFile(path, []byte("root = '.'"), 0644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "root = '.'", string(data))

	exists, err := Exists(fsys, path)
	require.NoError(t, err)
	assert.True(t, exists)
}
