package ingestion

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, "b_TDV87654321.csv", "b")
	writeTempFile(t, dir, "a_APEX12345678.CSV", "a")
	writeTempFile(t, dir, "notes.txt", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.csv"), 0o755))

	for _, parallel := range []int{0, 1, 64} {
		got, err := LoadDirectory(context.Background(), dir, parallel)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "a_APEX12345678.CSV", got[0].Filename)
		assert.Equal(t, []byte("a"), got[0].Content)
		assert.Equal(t, "b_TDV87654321.csv", got[1].Filename)
	}
}

func TestLoadDirectory_Errors(t *testing.T) {
	_, err := LoadDirectory(context.Background(), filepath.Join(t.TempDir(), "missing"), 1)
	assert.Error(t, err)

	empty := t.TempDir()
	writeTempFile(t, empty, "readme.md", "x")
	_, err = LoadDirectory(context.Background(), empty, 1)
	assert.ErrorContains(t, err, "no csv files")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	dir := t.TempDir()
	writeTempFile(t, dir, "APEX12345678.csv", "x")
	_, err = LoadDirectory(ctx, dir, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
