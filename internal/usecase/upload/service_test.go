package upload_test

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/viniciusmartins/imagepress/internal/adapter/storage"
	"github.com/viniciusmartins/imagepress/internal/domain"
	"github.com/viniciusmartins/imagepress/internal/mocks"
	"github.com/viniciusmartins/imagepress/internal/pkg/apperror"
	"github.com/viniciusmartins/imagepress/internal/usecase/upload"
)

const (
	testMaxFileSize = 5 << 20
	testQuality     = 85
)

func newService(t *testing.T) (*upload.Service, *mocks.MockTranscoder, *mocks.MockObjectStorage, *mocks.MockKeyGenerator) {
	t.Helper()

	ctrl := gomock.NewController(t)
	transcoder := mocks.NewMockTranscoder(ctrl)
	objectStorage := mocks.NewMockObjectStorage(ctrl)
	keys := mocks.NewMockKeyGenerator(ctrl)

	svc := upload.NewService(transcoder, objectStorage, keys, testMaxFileSize, testQuality, true)
	return svc, transcoder, objectStorage, keys
}

func TestService_Upload(t *testing.T) {
	t.Run("transcodes and stores the image", func(t *testing.T) {
		svc, transcoder, objectStorage, keys := newService(t)

		ctx := context.Background()
		original := []byte("original image bytes")
		converted := []byte("webp bytes")

		transcoder.EXPECT().
			Transcode(original, storage.ConversionOptions{Quality: testQuality}).
			Return(converted, nil)
		keys.EXPECT().Generate().Return("images/20260826120000_deadbeef.webp", nil)
		objectStorage.EXPECT().
			Store(ctx, "images/20260826120000_deadbeef.webp", gomock.Any(), int64(len(converted)), storage.ContentTypeWebP,
				map[string]string{"original-name": "sunset", "original-type": "image/jpeg"}).
			Return("https://blog-images.s3.us-east-1.amazonaws.com/images/20260826120000_deadbeef.webp", nil)

		result, err := svc.Upload(ctx, upload.UploadInput{
			File:        bytes.NewReader(original),
			Filename:    "sunset.jpg",
			ContentType: "image/jpeg",
			Size:        int64(len(original)),
		})

		require.NoError(t, err)
		assert.Equal(t, "https://blog-images.s3.us-east-1.amazonaws.com/images/20260826120000_deadbeef.webp", result.URL)
	})

	t.Run("rejects oversized upload before the transcoder runs", func(t *testing.T) {
		svc, _, _, _ := newService(t)

		// No expectations set: any call to the transcoder or storage
		// would fail the test.
		result, err := svc.Upload(context.Background(), upload.UploadInput{
			File:        bytes.NewReader(make([]byte, 16)),
			Filename:    "huge.jpg",
			ContentType: "image/jpeg",
			Size:        6 << 20,
		})

		assert.Nil(t, result)
		assert.Equal(t, http.StatusBadRequest, apperror.StatusCode(err))
		assert.Contains(t, err.Error(), domain.ErrFileTooLarge.Error())
	})

	t.Run("rejects empty upload", func(t *testing.T) {
		svc, _, _, _ := newService(t)

		result, err := svc.Upload(context.Background(), upload.UploadInput{
			File: bytes.NewReader(nil),
			Size: 0,
		})

		assert.Nil(t, result)
		assert.Equal(t, http.StatusBadRequest, apperror.StatusCode(err))
	})

	t.Run("maps an invalid quality to a validation failure before storage", func(t *testing.T) {
		svc, transcoder, _, _ := newService(t)

		transcoder.EXPECT().
			Transcode(gomock.Any(), gomock.Any()).
			Return(nil, domain.ErrInvalidQuality)

		result, err := svc.Upload(context.Background(), upload.UploadInput{
			File:        bytes.NewReader([]byte("img")),
			Filename:    "a.png",
			ContentType: "image/png",
			Size:        3,
		})

		assert.Nil(t, result)
		assert.Equal(t, http.StatusBadRequest, apperror.StatusCode(err))
	})

	t.Run("wraps transcoder failures as processing errors", func(t *testing.T) {
		svc, transcoder, _, _ := newService(t)

		transcoder.EXPECT().
			Transcode(gomock.Any(), gomock.Any()).
			Return(nil, domain.ErrCorruptImage)

		result, err := svc.Upload(context.Background(), upload.UploadInput{
			File:        bytes.NewReader([]byte("img")),
			Filename:    "a.png",
			ContentType: "image/png",
			Size:        3,
		})

		assert.Nil(t, result)
		assert.Equal(t, http.StatusInternalServerError, apperror.StatusCode(err))
		assert.True(t, strings.HasPrefix(err.Error(), "image processing error:"))
		assert.ErrorIs(t, err, domain.ErrCorruptImage)
	})

	t.Run("wraps storage failures as storage errors", func(t *testing.T) {
		svc, transcoder, objectStorage, keys := newService(t)

		transcoder.EXPECT().Transcode(gomock.Any(), gomock.Any()).Return([]byte("webp"), nil)
		keys.EXPECT().Generate().Return("images/20260826120000_deadbeef.webp", nil)
		objectStorage.EXPECT().
			Store(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", domain.ErrStoragePermission)

		result, err := svc.Upload(context.Background(), upload.UploadInput{
			File:        bytes.NewReader([]byte("img")),
			Filename:    "a.png",
			ContentType: "image/png",
			Size:        3,
		})

		assert.Nil(t, result)
		assert.Equal(t, http.StatusInternalServerError, apperror.StatusCode(err))
		assert.True(t, strings.HasPrefix(err.Error(), "storage error:"))
		assert.ErrorIs(t, err, domain.ErrStoragePermission)
	})

	t.Run("omits original metadata when preservation is disabled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		transcoder := mocks.NewMockTranscoder(ctrl)
		objectStorage := mocks.NewMockObjectStorage(ctrl)
		keys := mocks.NewMockKeyGenerator(ctrl)
		svc := upload.NewService(transcoder, objectStorage, keys, testMaxFileSize, testQuality, false)

		transcoder.EXPECT().Transcode(gomock.Any(), gomock.Any()).Return([]byte("webp"), nil)
		keys.EXPECT().Generate().Return("images/k.webp", nil)
		objectStorage.EXPECT().
			Store(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Nil()).
			Return("https://example.com/images/k.webp", nil)

		_, err := svc.Upload(context.Background(), upload.UploadInput{
			File:        bytes.NewReader([]byte("img")),
			Filename:    "secret-draft.png",
			ContentType: "image/png",
			Size:        3,
		})
		require.NoError(t, err)
	})

	t.Run("strips the extension from the metadata name hint", func(t *testing.T) {
		svc, transcoder, objectStorage, keys := newService(t)

		transcoder.EXPECT().Transcode(gomock.Any(), gomock.Any()).Return([]byte("webp"), nil)
		keys.EXPECT().Generate().Return("images/k.webp", nil)
		objectStorage.EXPECT().
			Store(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
				map[string]string{"original-name": "my.photo", "original-type": "image/png"}).
			Return("https://example.com/images/k.webp", nil)

		_, err := svc.Upload(context.Background(), upload.UploadInput{
			File:        bytes.NewReader([]byte("img")),
			Filename:    "my.photo.png",
			ContentType: "image/png",
			Size:        3,
		})
		require.NoError(t, err)
	})
}
