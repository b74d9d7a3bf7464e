package services

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/helpdeskhq/helpdesk/internal/domain/attachment"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
)

// ImageProcessor measures images and renders thumbnails.
type ImageProcessor interface {
	// Dimensions returns the pixel size of an encoded image.
	Dimensions(content []byte) (width, height int, err error)
	// Thumbnail encodes a JPEG no larger than maxSize on either side.
	Thumbnail(content []byte, maxSize int) ([]byte, error)
}

const DefaultThumbnailSize = 256

// ProcessedFile is a validated upload after it reached storage.
type ProcessedFile struct {
	StorageKey   string
	Checksum     string
	Size         int64
	Width        *int
	Height       *int
	ThumbnailKey *string
}

type FileProcessingService struct {
	storage       attachment.FileStorage
	images        ImageProcessor
	thumbnailSize int
	logger        logger.Interface
	now           func() time.Time
}

func NewFileProcessingService(
	storage attachment.FileStorage,
	images ImageProcessor,
	thumbnailSize int,
	logger logger.Interface,
) *FileProcessingService {
	if thumbnailSize <= 0 {
		thumbnailSize = DefaultThumbnailSize
	}
	return &FileProcessingService{
		storage:       storage,
		images:        images,
		thumbnailSize: thumbnailSize,
		logger:        logger,
		now:           time.Now,
	}
}

// Process stores the file under a fresh key and, for images, records the
// dimensions and a thumbnail. A thumbnail failure keeps the upload.
func (s *FileProcessingService) Process(ctx context.Context, file *ValidatedFile) (*ProcessedFile, error) {
	sum := sha256.Sum256(file.Content)
	base := NewStorageKey(s.now())
	key := base + file.Extension

	size, err := s.storage.Save(ctx, key, bytes.NewReader(file.Content))
	if err != nil {
		return nil, fmt.Errorf("failed to store %s: %w", file.Name, err)
	}

	result := &ProcessedFile{
		StorageKey: key,
		Checksum:   hex.EncodeToString(sum[:]),
		Size:       size,
	}

	if !strings.HasPrefix(file.MimeType, "image/") || s.images == nil {
		return result, nil
	}

	width, height, err := s.images.Dimensions(file.Content)
	if err != nil {
		s.logger.Warnw("failed to read image dimensions", "file", file.Name, "error", err)
		return result, nil
	}
	result.Width = &width
	result.Height = &height

	thumb, err := s.images.Thumbnail(file.Content, s.thumbnailSize)
	if err != nil {
		s.logger.Warnw("failed to render thumbnail", "file", file.Name, "error", err)
		return result, nil
	}
	thumbKey := base + "_thumb.jpg"
	if _, err := s.storage.Save(ctx, thumbKey, bytes.NewReader(thumb)); err != nil {
		s.logger.Warnw("failed to store thumbnail", "file", file.Name, "error", err)
		return result, nil
	}
	result.ThumbnailKey = &thumbKey
	return result, nil
}

// Discard removes everything Process stored. Errors are logged only.
func (s *FileProcessingService) Discard(ctx context.Context, processed *ProcessedFile) {
	keys := []string{processed.StorageKey}
	if processed.ThumbnailKey != nil {
		keys = append(keys, *processed.ThumbnailKey)
	}
	for _, key := range keys {
		if err := s.storage.Delete(ctx, key); err != nil {
			s.logger.Warnw("failed to discard stored file", "key", key, "error", err)
		}
	}
}

// NewStorageKey returns "yyyy/mm/<uuid>" for the given time, without an
// extension.
func NewStorageKey(at time.Time) string {
	at = at.UTC()
	return fmt.Sprintf("%04d/%02d/%s", at.Year(), int(at.Month()), uuid.NewString())
}
