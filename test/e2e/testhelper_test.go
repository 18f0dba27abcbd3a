package e2e_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcminio "github.com/testcontainers/testcontainers-go/modules/minio"
	"go.uber.org/zap"

	"github.com/viniciusmartins/imagepress/internal/adapter/handler"
	adapterstorage "github.com/viniciusmartins/imagepress/internal/adapter/storage"
	"github.com/viniciusmartins/imagepress/internal/infrastructure/config"
	"github.com/viniciusmartins/imagepress/internal/infrastructure/middleware"
	"github.com/viniciusmartins/imagepress/internal/infrastructure/server"
	"github.com/viniciusmartins/imagepress/internal/infrastructure/storage"
	"github.com/viniciusmartins/imagepress/internal/pkg/storagekey"
	"github.com/viniciusmartins/imagepress/internal/usecase/upload"
)

const (
	testBucket      = "blog-images"
	testRegion      = "us-east-1"
	testAPIKey      = "test-api-key-for-e2e"
	testMaxFileSize = 5 << 20
	uploadPath      = "/api/v1/images"
)

type TestApp struct {
	Server   *httptest.Server
	S3Client *s3.Client
	BaseURL  string
}

// setupTestApp starts a MinIO container as the object store and assembles
// the full router against it. withAuth enables the API key gate.
func setupTestApp(t *testing.T, withAuth bool) *TestApp {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping e2e test in short mode")
	}

	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	minioContainer, err := tcminio.Run(ctx, "minio/minio:RELEASE.2024-01-16T16-07-38Z")
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, testcontainers.TerminateContainer(minioContainer))
	})

	endpoint, err := minioContainer.ConnectionString(ctx)
	require.NoError(t, err)

	s3Cfg := config.S3Config{
		Endpoint:        "http://" + endpoint,
		Region:          testRegion,
		Bucket:          testBucket,
		AccessKeyID:     minioContainer.Username,
		SecretAccessKey: minioContainer.Password,
		UsePathStyle:    true,
		UploadTimeout:   30 * time.Second,
	}

	s3Client := newRawS3Client(s3Cfg)
	_, err = s3Client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(testBucket),
	})
	require.NoError(t, err)

	s3Storage, err := storage.NewS3Storage(s3Cfg)
	require.NoError(t, err)

	uploadSvc := upload.NewService(
		storage.NewWebPTranscoder(),
		s3Storage,
		storagekey.NewGenerator(storagekey.DefaultPrefix, adapterstorage.ExtensionWebP),
		testMaxFileSize,
		85,
		true,
	)

	var apiKey *middleware.APIKeyMiddleware
	if withAuth {
		apiKey = middleware.NewAPIKeyMiddleware(testAPIKey)
	}

	router := server.NewRouter(server.RouterConfig{
		UploadHandler: handler.NewUploadHandler(uploadSvc, testMaxFileSize),
		APIKey:        apiKey,
		Logger:        zap.NewNop(),
		CORSOrigins:   []string{"*"},
	})

	srv := httptest.NewServer(router.Engine())
	t.Cleanup(srv.Close)

	return &TestApp{
		Server:   srv,
		S3Client: s3Client,
		BaseURL:  srv.URL,
	}
}

func newRawS3Client(cfg config.S3Config) *s3.Client {
	return s3.New(s3.Options{}, func(o *s3.Options) {
		o.Region = cfg.Region
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
		o.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	})
}

func (app *TestApp) post(t *testing.T, req *http.Request) *http.Response {
	t.Helper()

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}
