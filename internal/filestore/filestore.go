// Package filestore keeps attachment binaries on local disk. Payloads
// above a configured size are gzip-compressed at rest and transparently
// decompressed on read; image uploads get a bounded JPEG thumbnail.
package filestore

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/png"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/image/draw"

	"github.com/spec-kit/crm-service/internal/config"
)

// Store is a disk-backed binary store addressed by opaque keys.
type Store struct {
	dir               string
	compressThreshold int64
	thumbnailMaxPx    int
	logger            *zap.Logger
}

// SaveResult describes where and how a payload was stored.
type SaveResult struct {
	StorageKey   string
	Compressed   bool
	ThumbnailKey *string
}

// New prepares the storage directory.
func New(cfg config.FilesConfig, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create files dir: %w", err)
	}
	maxPx := cfg.ThumbnailMaxPx
	if maxPx <= 0 {
		maxPx = 200
	}
	return &Store{
		dir:               cfg.Dir,
		compressThreshold: cfg.CompressThreshold,
		thumbnailMaxPx:    maxPx,
		logger:            logger,
	}, nil
}

// Save writes the payload under a fresh key, compressing large payloads
// and generating a thumbnail for images. Thumbnail failures are logged
// and skipped; the upload itself still succeeds.
func (s *Store) Save(data []byte, contentType string) (SaveResult, error) {
	key := uuid.NewString()
	result := SaveResult{StorageKey: key}

	payload := data
	if s.compressThreshold > 0 && int64(len(data)) > s.compressThreshold {
		var buf bytes.Buffer
		gz := gzip.NewWriter(&buf)
		if _, err := gz.Write(data); err != nil {
			return SaveResult{}, err
		}
		if err := gz.Close(); err != nil {
			return SaveResult{}, err
		}
		payload = buf.Bytes()
		result.Compressed = true
	}

	if err := os.WriteFile(s.path(key), payload, 0o644); err != nil {
		return SaveResult{}, err
	}

	if strings.HasPrefix(contentType, "image/") {
		thumbKey, err := s.writeThumbnail(data)
		if err != nil {
			s.logger.Warn("thumbnail generation failed", zap.Error(err))
		} else {
			result.ThumbnailKey = &thumbKey
		}
	}
	return result, nil
}

// Open returns a reader for the stored payload, decompressing when the
// metadata says the payload is compressed at rest.
func (s *Store) Open(key string, compressed bool) (io.ReadCloser, error) {
	f, err := os.Open(s.path(key))
	if err != nil {
		return nil, err
	}
	if !compressed {
		return f, nil
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &gzipReadCloser{gz: gz, file: f}, nil
}

// Remove deletes stored payloads, ignoring already-missing keys.
func (s *Store) Remove(keys ...string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("remove stored file failed", zap.String("key", key), zap.Error(err))
		}
	}
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key)
}

func (s *Store) writeThumbnail(data []byte) (string, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", err
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("invalid image dimensions %dx%d", width, height)
	}

	scale := float64(s.thumbnailMaxPx) / float64(max(width, height))
	if scale > 1 {
		scale = 1
	}
	dstW := int(float64(width) * scale)
	dstH := int(float64(height) * scale)
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 80}); err != nil {
		return "", err
	}

	key := uuid.NewString()
	if err := os.WriteFile(s.path(key), buf.Bytes(), 0o644); err != nil {
		return "", err
	}
	return key, nil
}

type gzipReadCloser struct {
	gz   *gzip.Reader
	file *os.File
}

func (g *gzipReadCloser) Read(p []byte) (int, error) {
	return g.gz.Read(p)
}

func (g *gzipReadCloser) Close() error {
	gzErr := g.gz.Close()
	fileErr := g.file.Close()
	if gzErr != nil {
		return gzErr
	}
	return fileErr
}
