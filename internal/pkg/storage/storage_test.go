package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreSaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir)

	content := "certificate body"
	ref, err := store.Save(context.Background(), "vendors/1/cert.pdf", strings.NewReader(content), int64(len(content)))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "vendors/1/cert.pdf"), ref)

	data, err := os.ReadFile(ref)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))

	require.NoError(t, store.Delete(context.Background(), ref))
	_, err = os.Stat(ref)
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStoreDeleteRefusesEscapingPaths(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	err := store.Delete(context.Background(), "/etc/passwd")
	assert.Error(t, err)
}
