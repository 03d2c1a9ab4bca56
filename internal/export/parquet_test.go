package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteNativeParquetPartitionsAllKinds(t *testing.T) {
	st := newStoreWithTriples(t)
	dir := t.TempDir()

	require.NoError(t, WriteNativeParquet(dir, st, 0))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	require.Len(t, names, 3)
	for _, n := range names {
		require.True(t, filepath.Ext(n) == ".parquet")
	}
}

func TestWriteNativeParquetRequiresExistingDir(t *testing.T) {
	st := newStoreWithTriples(t)
	err := WriteNativeParquet(filepath.Join(t.TempDir(), "missing"), st, 100)
	require.Error(t, err)
}

func TestWriteNativeParquetZeroRowGroupSizeUsesDefault(t *testing.T) {
	st := newStoreWithTriples(t)
	dir := t.TempDir()
	require.NoError(t, WriteNativeParquet(dir, st, 0))
	require.NoError(t, WriteNativeParquet(dir, st, -5))
}
