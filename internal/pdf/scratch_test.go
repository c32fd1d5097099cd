package pdf

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScratch_Idempotent(t *testing.T) {
	root := filepath.Join(t.TempDir(), "temp_pdfs")

	first, err := NewScratch(root)
	require.NoError(t, err)
	second, err := NewScratch(root)
	require.NoError(t, err)

	assert.Equal(t, first.Root(), second.Root())
	assert.DirExists(t, root)
}

func TestNewScratch_EmptyRoot(t *testing.T) {
	_, err := NewScratch("")
	assert.Error(t, err)
}

func TestScratch_AreasAreIsolated(t *testing.T) {
	scratch, err := NewScratch(t.TempDir())
	require.NoError(t, err)

	a, err := scratch.NewArea()
	require.NoError(t, err)
	b, err := scratch.NewArea()
	require.NoError(t, err)

	assert.NotEqual(t, a.Dir(), b.Dir())
	assert.True(t, strings.HasPrefix(filepath.Base(a.Dir()), "req_"))
	assert.Equal(t, scratch.Root(), filepath.Dir(a.Dir()))

	require.NoError(t, a.Close())
	assert.NoDirExists(t, a.Dir())
	assert.DirExists(t, b.Dir())
	require.NoError(t, b.Close())
}

func TestArea_PathStaysInside(t *testing.T) {
	scratch, err := NewScratch(t.TempDir())
	require.NoError(t, err)
	area, err := scratch.NewArea()
	require.NoError(t, err)
	defer area.Close()

	for _, name := range []string{"upload.pdf", "../../etc/passwd", "/abs/upload.pdf", "a/b/c.pdf"} {
		got := area.Path(name)
		assert.Equal(t, area.Dir(), filepath.Dir(got), name)
	}
}

func TestArea_Save(t *testing.T) {
	scratch, err := NewScratch(t.TempDir())
	require.NoError(t, err)
	area, err := scratch.NewArea()
	require.NoError(t, err)
	defer area.Close()

	path, n, err := area.Save("upload.pdf", strings.NewReader("%PDF-1.4"), 64)
	require.NoError(t, err)
	assert.EqualValues(t, 8, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))
}

func TestArea_SaveTooLarge(t *testing.T) {
	scratch, err := NewScratch(t.TempDir())
	require.NoError(t, err)
	area, err := scratch.NewArea()
	require.NoError(t, err)
	defer area.Close()

	_, _, err = area.Save("upload.pdf", bytes.NewReader(make([]byte, 65)), 64)
	assert.ErrorIs(t, err, ErrFileTooLarge)
	assert.NoFileExists(t, area.Path("upload.pdf"))
}

func TestArea_CloseRemovesContents(t *testing.T) {
	scratch, err := NewScratch(t.TempDir())
	require.NoError(t, err)
	area, err := scratch.NewArea()
	require.NoError(t, err)

	_, _, err = area.Save("upload.pdf", strings.NewReader("x"), 0)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(area.Path("leftover_part_1.pdf"), []byte("x"), 0o600))

	require.NoError(t, area.Close())

	entries, err := os.ReadDir(scratch.Root())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
