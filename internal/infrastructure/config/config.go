package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server    ServerConfig
	S3        S3Config
	Upload    UploadConfig
	Auth      AuthConfig
	CORS      CORSConfig
	Redis     RedisConfig
	Log       LogConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
	Environment     string        `envconfig:"ENVIRONMENT" default:"development"`
}

type S3Config struct {
	Endpoint        string        `envconfig:"S3_ENDPOINT"`
	Region          string        `envconfig:"S3_REGION" required:"true"`
	Bucket          string        `envconfig:"S3_BUCKET" required:"true"`
	AccessKeyID     string        `envconfig:"S3_ACCESS_KEY_ID" required:"true"`
	SecretAccessKey string        `envconfig:"S3_SECRET_ACCESS_KEY" required:"true"`
	UsePathStyle    bool          `envconfig:"S3_USE_PATH_STYLE" default:"false"`
	PublicURL       string        `envconfig:"S3_PUBLIC_URL"`
	UploadTimeout   time.Duration `envconfig:"S3_UPLOAD_TIMEOUT" default:"30s"`
}

type UploadConfig struct {
	MaxFileSize  int64  `envconfig:"UPLOAD_MAX_FILE_SIZE" default:"5242880"`
	Quality      int    `envconfig:"UPLOAD_WEBP_QUALITY" default:"85"`
	KeyPrefix    string `envconfig:"UPLOAD_KEY_PREFIX" default:"images/"`
	KeepMetadata bool   `envconfig:"UPLOAD_KEEP_METADATA" default:"true"`
}

type AuthConfig struct {
	Enabled bool   `envconfig:"AUTH_ENABLED" default:"false"`
	APIKey  string `envconfig:"AUTH_API_KEY"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type RateLimitConfig struct {
	Enabled        bool `envconfig:"RATE_LIMIT_ENABLED" default:"false"`
	RequestsPerMin int  `envconfig:"RATE_LIMIT_REQUESTS_PER_MIN" default:"60"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}
