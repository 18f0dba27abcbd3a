package domain

import "errors"

var (
	ErrMissingFile       = errors.New("image file is required")
	ErrFileTooLarge      = errors.New("file exceeds the maximum upload size")
	ErrInvalidQuality    = errors.New("quality must be between 1 and 100")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrCorruptImage      = errors.New("image data is corrupt or truncated")
	ErrImageTooLarge     = errors.New("image dimensions exceed the decode limit")

	ErrMissingCredentials = errors.New("storage credentials are not configured")
	ErrStorageAuth        = errors.New("storage authentication failed")
	ErrStoragePermission  = errors.New("storage permission denied")
	ErrBucketAccess       = errors.New("storage bucket is not accessible")
	ErrStorageNetwork     = errors.New("storage request failed")
)
