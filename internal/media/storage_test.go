package media

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSave(t *testing.T) {
	s, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	ref, err := s.Save(bytes.NewReader([]byte("jpegbytes")), "Payasam.JPG")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ref, URLPrefix+"/"))
	assert.True(t, strings.HasSuffix(ref, ".jpg"), "extension should be kept, lower-cased: %s", ref)

	data, err := os.ReadFile(filepath.Join(s.Dir(), strings.TrimPrefix(ref, URLPrefix+"/")))
	require.NoError(t, err)
	assert.Equal(t, []byte("jpegbytes"), data)
}

func TestSave_UniqueReferences(t *testing.T) {
	s, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		ref, err := s.Save(bytes.NewReader([]byte("x")), "a.png")
		require.NoError(t, err)
		assert.False(t, seen[ref], "duplicate reference %s", ref)
		seen[ref] = true
	}
}

func TestSave_NoExtension(t *testing.T) {
	s, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	ref, err := s.Save(bytes.NewReader([]byte("x")), "raw")
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimPrefix(ref, URLPrefix+"/"))
}

func TestRemove(t *testing.T) {
	s, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	ref, err := s.Save(bytes.NewReader([]byte("x")), "a.png")
	require.NoError(t, err)

	name := strings.TrimPrefix(ref, URLPrefix+"/")
	s.Remove(ref)

	_, err = os.Stat(filepath.Join(s.Dir(), name))
	assert.True(t, os.IsNotExist(err))

	// unknown references are ignored
	s.Remove("/uploads/never-existed.png")
	s.Remove("bogus")
}

func TestNewStorage_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")

	_, err := NewStorage(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
