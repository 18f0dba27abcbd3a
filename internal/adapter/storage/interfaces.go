package storage

import (
	"context"
	"io"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/storage_mocks.go -package=mocks

// Every upload is stored as lossy WebP regardless of the input format.
const (
	ContentTypeWebP = "image/webp"
	ExtensionWebP   = ".webp"
)

// ConversionOptions controls a single transcode. Quality outside [1,100]
// is a validation failure, never clamped. A zero MaxWidth/MaxHeight means
// the dimensions pass through untouched.
type ConversionOptions struct {
	Quality   int
	MaxWidth  int
	MaxHeight int
}

type Transcoder interface {
	Transcode(data []byte, opts ConversionOptions) ([]byte, error)
}

type ObjectStorage interface {
	Store(ctx context.Context, key string, reader io.Reader, size int64, contentType string, metadata map[string]string) (string, error)
}

type KeyGenerator interface {
	Generate() (string, error)
}
