package filesystem

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadDownloadRoundtrip(t *testing.T) {
	fs, err := NewFilesystemStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()

	err = fs.Upload(ctx, "videos/tlk_1.mp4", strings.NewReader("fake mp4 bytes"))
	require.NoError(t, err)

	reader, err := fs.Download(ctx, "videos/tlk_1.mp4")
	require.NoError(t, err)
	defer reader.Close()

	content, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "fake mp4 bytes", string(content))
}

func TestExists(t *testing.T) {
	fs, err := NewFilesystemStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()

	exists, err := fs.Exists(ctx, "videos/missing.mp4")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, fs.Upload(ctx, "videos/tlk_2.mp4", strings.NewReader("x")))

	exists, err = fs.Exists(ctx, "videos/tlk_2.mp4")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestDownloadMissingFile(t *testing.T) {
	fs, err := NewFilesystemStorage(t.TempDir())
	require.NoError(t, err)

	_, err = fs.Download(context.Background(), "videos/nope.mp4")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestDeleteIsIdempotent(t *testing.T) {
	fs, err := NewFilesystemStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()

	require.NoError(t, fs.Upload(ctx, "videos/tlk_3.mp4", strings.NewReader("x")))
	require.NoError(t, fs.Delete(ctx, "videos/tlk_3.mp4"))

	// Deuxième suppression: pas d'erreur
	assert.NoError(t, fs.Delete(ctx, "videos/tlk_3.mp4"))
}

func TestListSkipsTempFiles(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFilesystemStorage(dir)
	require.NoError(t, err)

	ctx := context.Background()

	require.NoError(t, fs.Upload(ctx, "videos/tlk_a.mp4", strings.NewReader("a")))
	require.NoError(t, fs.Upload(ctx, "videos/tlk_b.mp4", strings.NewReader("b")))

	files, err := fs.List(ctx, "videos/")
	require.NoError(t, err)
	assert.Len(t, files, 2)
	for _, f := range files {
		assert.NotContains(t, f, ".tmp")
	}
}
