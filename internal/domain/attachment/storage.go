package attachment

import (
	"context"
	"io"
)

// FileStorage persists attachment bytes under opaque keys.
type FileStorage interface {
	Save(ctx context.Context, key string, r io.Reader) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}
