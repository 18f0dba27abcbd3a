package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/viniciusmartins/imagepress/internal/adapter/storage"
	"github.com/viniciusmartins/imagepress/internal/domain"
	"github.com/viniciusmartins/imagepress/internal/pkg/apperror"
)

// Service drives one upload from raw multipart bytes to a stored WebP
// object. Steps run strictly in order and the first failure wins; every
// lower-level error is mapped to exactly one apperror category here, at
// the pipeline boundary.
type Service struct {
	transcoder   storage.Transcoder
	storage      storage.ObjectStorage
	keys         storage.KeyGenerator
	maxFileSize  int64
	quality      int
	keepMetadata bool
}

func NewService(
	transcoder storage.Transcoder,
	objectStorage storage.ObjectStorage,
	keys storage.KeyGenerator,
	maxFileSize int64,
	quality int,
	keepMetadata bool,
) *Service {
	return &Service{
		transcoder:   transcoder,
		storage:      objectStorage,
		keys:         keys,
		maxFileSize:  maxFileSize,
		quality:      quality,
		keepMetadata: keepMetadata,
	}
}

type UploadInput struct {
	File        io.Reader
	Filename    string
	ContentType string
	Size        int64
}

type UploadResult struct {
	URL string
}

func (s *Service) Upload(ctx context.Context, input UploadInput) (*UploadResult, error) {
	if input.Size <= 0 {
		return nil, apperror.Validation(domain.ErrMissingFile.Error())
	}

	// The declared size is checked before the payload is buffered, so an
	// oversized upload never reaches the decoder.
	if input.Size > s.maxFileSize {
		return nil, apperror.Validation(domain.ErrFileTooLarge.Error())
	}

	data, err := io.ReadAll(input.File)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("reading upload: %w", err))
	}
	if int64(len(data)) > s.maxFileSize {
		return nil, apperror.Validation(domain.ErrFileTooLarge.Error())
	}

	converted, err := s.transcoder.Transcode(data, storage.ConversionOptions{
		Quality: s.quality,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidQuality) {
			return nil, apperror.Validation(err.Error())
		}
		return nil, apperror.Processing(err)
	}

	key, err := s.keys.Generate()
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("generating storage key: %w", err))
	}

	// The original filename is carried as metadata only; the key is fully
	// independent of user input. With metadata preservation off, nothing
	// about the original upload is stored at all.
	var metadata map[string]string
	if s.keepMetadata {
		metadata = map[string]string{
			"original-name": strings.TrimSuffix(input.Filename, path.Ext(input.Filename)),
			"original-type": input.ContentType,
		}
	}

	url, err := s.storage.Store(ctx, key, bytes.NewReader(converted), int64(len(converted)), storage.ContentTypeWebP, metadata)
	if err != nil {
		return nil, apperror.Storage(err)
	}

	return &UploadResult{URL: url}, nil
}
