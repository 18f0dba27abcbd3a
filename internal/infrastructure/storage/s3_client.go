package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/viniciusmartins/imagepress/internal/domain"
	"github.com/viniciusmartins/imagepress/internal/infrastructure/config"
)

// S3Storage is the process-wide object store handle. It is created once at
// startup and shared by all in-flight requests; the underlying client is
// safe for concurrent use.
type S3Storage struct {
	client        *s3.Client
	bucket        string
	region        string
	publicURL     string
	uploadTimeout time.Duration
}

func NewS3Storage(cfg config.S3Config) (*S3Storage, error) {
	if cfg.Bucket == "" || cfg.Region == "" || cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, domain.ErrMissingCredentials
	}

	opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.Region = cfg.Region
			o.Credentials = credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				"",
			)
		},
	}

	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.UsePathStyle
		})
	}

	return &S3Storage{
		client:        s3.New(s3.Options{}, opts...),
		bucket:        cfg.Bucket,
		region:        cfg.Region,
		publicURL:     cfg.PublicURL,
		uploadTimeout: cfg.UploadTimeout,
	}, nil
}

// Store writes the object and returns its public URL. The write is bounded
// by the configured upload timeout; a successful PutObject is the only
// confirmation, no read-back is performed.
func (s *S3Storage) Store(ctx context.Context, key string, reader io.Reader, size int64, contentType string, metadata map[string]string) (string, error) {
	if s.uploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.uploadTimeout)
		defer cancel()
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          reader,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
		Metadata:      metadata,
	})
	if err != nil {
		return "", s.classifyError(err)
	}

	return s.ObjectURL(key), nil
}

// ObjectURL builds the deterministic public URL for a stored key.
func (s *S3Storage) ObjectURL(key string) string {
	if s.publicURL != "" {
		return fmt.Sprintf("%s/%s", s.publicURL, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

func (s *S3Storage) classifyError(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "InvalidAccessKeyId", "SignatureDoesNotMatch", "ExpiredToken", "TokenRefreshRequired":
			return fmt.Errorf("%w: %s", domain.ErrStorageAuth, apiErr.ErrorMessage())
		case "AccessDenied":
			return fmt.Errorf("%w: %s", domain.ErrStoragePermission, apiErr.ErrorMessage())
		case "NoSuchBucket":
			return fmt.Errorf("%w: bucket %s", domain.ErrBucketAccess, s.bucket)
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrStorageNetwork, err)
}
