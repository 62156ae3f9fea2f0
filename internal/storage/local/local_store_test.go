package local_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simplimed/internal/storage/local"
)

func TestNewStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")

	store, err := local.NewStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, dir, store.Dir())
}

func TestStore_Save_RoundTrip(t *testing.T) {
	store, err := local.NewStore(t.TempDir())
	require.NoError(t, err)

	path, err := store.Save(context.Background(), "1748773800000-report.txt", strings.NewReader("Glucose: 95 mg/dL"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(store.Dir(), "1748773800000-report.txt"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Glucose: 95 mg/dL", string(content))
}

func TestStore_Save_EmptyFile(t *testing.T) {
	store, err := local.NewStore(t.TempDir())
	require.NoError(t, err)

	path, err := store.Save(context.Background(), "empty.txt", strings.NewReader(""))
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, content)
}

func TestStore_Save_UncreatablePath(t *testing.T) {
	store, err := local.NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(context.Background(), filepath.Join("missing-subdir", "x.txt"), strings.NewReader("x"))
	assert.Error(t, err)
}
