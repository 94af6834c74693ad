package storage

import (
	"context"
	"io"
)

// ImageStorage persists uploaded listing images and returns the URL the
// stored file is reachable at. The store layer only ever sees that URL.
type ImageStorage interface {
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}
