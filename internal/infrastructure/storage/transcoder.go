package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	adapterstorage "github.com/viniciusmartins/imagepress/internal/adapter/storage"
	"github.com/viniciusmartins/imagepress/internal/domain"
)

const (
	DefaultQuality = 80

	// maxDecodePixels bounds the decoded bitmap before the full decode
	// runs, so a tiny compressed file cannot expand into gigabytes.
	maxDecodePixels = 100_000_000
)

// WebPTranscoder converts any supported raster input (JPEG, PNG, GIF,
// TIFF, BMP, WebP) into lossy WebP.
type WebPTranscoder struct{}

func NewWebPTranscoder() *WebPTranscoder {
	return &WebPTranscoder{}
}

func (t *WebPTranscoder) Transcode(data []byte, opts adapterstorage.ConversionOptions) ([]byte, error) {
	quality := opts.Quality
	if quality == 0 {
		quality = DefaultQuality
	}
	if quality < 1 || quality > 100 {
		return nil, domain.ErrInvalidQuality
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, domain.ErrUnsupportedFormat
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptImage, err)
	}

	if cfg.Width*cfg.Height > maxDecodePixels {
		return nil, domain.ErrImageTooLarge
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptImage, err)
	}

	img = fitInside(img, opts.MaxWidth, opts.MaxHeight)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return nil, fmt.Errorf("encoding webp: %w", err)
	}

	return buf.Bytes(), nil
}

// fitInside shrinks img to fit the bounding box while preserving aspect
// ratio. It never upscales, and with no bound at all the image passes
// through untouched, which is what the upload path relies on.
func fitInside(img image.Image, maxWidth, maxHeight int) image.Image {
	if maxWidth == 0 && maxHeight == 0 {
		return img
	}

	bounds := img.Bounds()
	if maxWidth == 0 {
		maxWidth = bounds.Dx()
	}
	if maxHeight == 0 {
		maxHeight = bounds.Dy()
	}

	if bounds.Dx() <= maxWidth && bounds.Dy() <= maxHeight {
		return img
	}

	return imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)
}
