package filestore

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/crm-service/internal/config"
)

func newTestStore(t *testing.T, threshold int64) *Store {
	t.Helper()
	store, err := New(config.FilesConfig{
		Dir:               t.TempDir(),
		CompressThreshold: threshold,
		ThumbnailMaxPx:    32,
	}, zap.NewNop())
	require.NoError(t, err)
	return store
}

func TestSaveSmallPayloadUncompressed(t *testing.T) {
	store := newTestStore(t, 1024)
	data := []byte("hello attachment")

	result, err := store.Save(data, "text/plain")
	require.NoError(t, err)
	assert.False(t, result.Compressed)
	assert.Nil(t, result.ThumbnailKey)

	reader, err := store.Open(result.StorageKey, result.Compressed)
	require.NoError(t, err)
	defer reader.Close()
	got, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestSaveLargePayloadRoundTrips(t *testing.T) {
	store := newTestStore(t, 16)
	data := bytes.Repeat([]byte("abcdefgh"), 64)

	result, err := store.Save(data, "text/plain")
	require.NoError(t, err)
	assert.True(t, result.Compressed)

	reader, err := store.Open(result.StorageKey, result.Compressed)
	require.NoError(t, err)
	defer reader.Close()
	got, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestSaveImageGeneratesThumbnail(t *testing.T) {
	store := newTestStore(t, 1<<20)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 100, 60))))

	result, err := store.Save(buf.Bytes(), "image/png")
	require.NoError(t, err)
	require.NotNil(t, result.ThumbnailKey)

	reader, err := store.Open(*result.ThumbnailKey, false)
	require.NoError(t, err)
	defer reader.Close()
	thumb, err := io.ReadAll(reader)
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(thumb))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.LessOrEqual(t, cfg.Width, 32)
	assert.LessOrEqual(t, cfg.Height, 32)
}

func TestSaveCorruptImageStillSucceeds(t *testing.T) {
	store := newTestStore(t, 1<<20)

	result, err := store.Save([]byte("not an image"), "image/png")
	require.NoError(t, err)
	assert.Nil(t, result.ThumbnailKey)
}
