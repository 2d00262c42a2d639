package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	// DebugModeEnv is the environment variable for debug mode.
	DebugModeEnv = "DEBUG_MODE"

	// DBHostEnv is the environment variable for database host.
	DBHostEnv = "DB_HOST"

	// DBPortEnv is the environment variable for database port.
	DBPortEnv = "DB_PORT"

	// DBUserEnv is the environment variable for database user.
	DBUserEnv = "DB_USER"

	// DBPassEnv is the environment variable for database password.
	DBPassEnv = "DB_PASS"

	// DBNameEnv is the environment variable for database name.
	DBNameEnv = "DB_NAME"

	// HTTPServerPortEnv is the environment variable for HTTP server port.
	HTTPServerPortEnv = "HTTP_SERVER_PORT"

	// MetricsServerPortEnv is the environment variable for metrics server port.
	MetricsServerPortEnv = "METRICS_SERVER_PORT"

	// AdminUsernameEnv is the environment variable for the operator username.
	AdminUsernameEnv = "ADMIN_USERNAME"

	// AdminPasswordHashEnv is the environment variable for the bcrypt hash of
	// the operator password. Plaintext credentials are never configured.
	AdminPasswordHashEnv = "ADMIN_PASSWORD_HASH"

	// SessionSecretEnv is the environment variable for the session signing secret.
	SessionSecretEnv = "SESSION_SECRET"

	// MediaBackendEnv selects the media storage strategy: "local" or "s3".
	MediaBackendEnv = "MEDIA_BACKEND"

	// UploadDirEnv is the environment variable for the local upload directory.
	UploadDirEnv = "UPLOAD_DIR"

	// MaxUploadMBEnv is the environment variable for the upload size cap in MiB.
	MaxUploadMBEnv = "MAX_UPLOAD_MB"

	// S3EndpointEnv is the environment variable for the S3-compatible endpoint URL.
	S3EndpointEnv = "S3_ENDPOINT"

	// S3RegionEnv is the environment variable for the S3 region.
	S3RegionEnv = "S3_REGION"

	// S3BucketEnv is the environment variable for the S3 bucket name.
	S3BucketEnv = "S3_BUCKET"

	// S3AccessKeyEnv is the environment variable for the S3 access key.
	S3AccessKeyEnv = "S3_ACCESS_KEY"

	// S3SecretKeyEnv is the environment variable for the S3 secret key.
	S3SecretKeyEnv = "S3_SECRET_KEY"

	// AWSRegionEnv is the environment variable for AWS region.
	AWSRegionEnv = "AWS_REGION"

	// AWSEndpointEnv is the environment variable for AWS endpoint.
	AWSEndpointEnv = "AWS_ENDPOINT"

	// SQSQueueURLEnv is the environment variable for the product-event SQS
	// queue URL. Empty disables event publishing.
	SQSQueueURLEnv = "SQS_QUEUE_URL"

	// EnvFilePath is the environment variable for .env file path (only for local/test environment).
	EnvFilePath = "ENV_PATH"

	// DefaultEnvFilePath is the default path to the .env file.
	DefaultEnvFilePath = ".env"

	// MediaBackendLocal stores uploads on the local filesystem.
	MediaBackendLocal = "local"

	// MediaBackendS3 stores uploads in an S3-compatible bucket.
	MediaBackendS3 = "s3"

	// DefaultMaxUploadMB is the upload size cap applied when MAX_UPLOAD_MB is unset.
	DefaultMaxUploadMB = 8
)

var (
	// ErrMissingConfig is returned when required configuration values are missing.
	ErrMissingConfig = errors.New("missing config data")

	// ErrInvalidConfig is returned when a configuration value is out of range.
	ErrInvalidConfig = errors.New("invalid config data")
)

// Config represents the application configuration.
type Config struct {
	DebugMode     bool
	Database      DB
	HTTPServer    Server
	MetricsServer Server
	Admin         Admin
	Session       Session
	Media         Media
	AWS           AWSConfig
}

// DB represents database configuration settings.
type DB struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
}

// Server represents server configuration settings.
type Server struct {
	Port string
}

// Admin holds the single configured operator credential.
type Admin struct {
	Username     string
	PasswordHash string
}

// Session holds the session token signing secret.
type Session struct {
	Secret string
}

// Media represents media storage configuration settings.
type Media struct {
	Backend     string
	UploadDir   string
	MaxUploadMB int
	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
}

// AWSConfig represents AWS-specific configuration settings.
type AWSConfig struct {
	Region      string
	Endpoint    string
	SQSQueueURL string
}

// MaxUploadBytes returns the upload size cap in bytes.
func (m Media) MaxUploadBytes() int64 {
	return int64(m.MaxUploadMB) << 20
}

func allNonEmpty(keyValues map[string]string) error {
	for key, value := range keyValues {
		if value == "" {
			slog.Error("configuration validation failed", slog.String("key", key), slog.String("error", "value is empty"))
			return fmt.Errorf("%w for key: %s", ErrMissingConfig, key)
		}
	}
	return nil
}

func allNumbers(keyValues map[string]string) error {
	for key, value := range keyValues {
		_, err := strconv.Atoi(value)
		if err != nil {
			slog.Error("configuration validation failed", slog.String("key", key), slog.String("value", value), slog.String("error", err.Error()))
			return fmt.Errorf("invalid number for key %s: %w", key, err)
		}
	}
	return nil
}

func (c *Config) validate() error {
	if err := allNonEmpty(map[string]string{
		DBHostEnv: c.Database.Host,
		DBUserEnv: c.Database.User,
		DBNameEnv: c.Database.Name,
	}); err != nil {
		return fmt.Errorf("database configuration incomplete: %w", err)
	}

	if err := allNonEmpty(map[string]string{
		HTTPServerPortEnv:    c.HTTPServer.Port,
		MetricsServerPortEnv: c.MetricsServer.Port,
	}); err != nil {
		return fmt.Errorf("server port configuration incomplete: %w", err)
	}

	if err := allNumbers(map[string]string{
		DBPortEnv:            c.Database.Port,
		HTTPServerPortEnv:    c.HTTPServer.Port,
		MetricsServerPortEnv: c.MetricsServer.Port,
	}); err != nil {
		return fmt.Errorf("invalid port number: %w", err)
	}

	if err := allNonEmpty(map[string]string{
		AdminUsernameEnv:     c.Admin.Username,
		AdminPasswordHashEnv: c.Admin.PasswordHash,
		SessionSecretEnv:     c.Session.Secret,
	}); err != nil {
		return fmt.Errorf("auth configuration incomplete: %w", err)
	}

	switch c.Media.Backend {
	case MediaBackendLocal:
		if err := allNonEmpty(map[string]string{UploadDirEnv: c.Media.UploadDir}); err != nil {
			return fmt.Errorf("media configuration incomplete: %w", err)
		}
	case MediaBackendS3:
		if err := allNonEmpty(map[string]string{
			S3EndpointEnv:  c.Media.S3Endpoint,
			S3RegionEnv:    c.Media.S3Region,
			S3BucketEnv:    c.Media.S3Bucket,
			S3AccessKeyEnv: c.Media.S3AccessKey,
			S3SecretKeyEnv: c.Media.S3SecretKey,
		}); err != nil {
			return fmt.Errorf("media configuration incomplete: %w", err)
		}
	default:
		return fmt.Errorf("%w: %s must be %q or %q", ErrInvalidConfig, MediaBackendEnv, MediaBackendLocal, MediaBackendS3)
	}

	if c.Media.MaxUploadMB <= 0 {
		return fmt.Errorf("%w: %s must be positive", ErrInvalidConfig, MaxUploadMBEnv)
	}

	return nil
}

func getEnvAsBool(name string, defaultValue bool) bool {
	if val, err := strconv.ParseBool(os.Getenv(name)); err == nil {
		return val
	}
	return defaultValue
}

func getEnvWithDefault(name, defaultValue string) string {
	if val := os.Getenv(name); val != "" {
		return val
	}
	return defaultValue
}

// ApplyEnvFile loads environment variables from the specified .env files.
func ApplyEnvFile(files ...string) error {
	err := godotenv.Load(files...)
	if err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// LoadFromEnv loads configuration from environment variables and validates it.
func LoadFromEnv() (*Config, error) {
	envPath := os.Getenv(EnvFilePath)
	if envPath == "" {
		envPath = DefaultEnvFilePath
	}
	err := ApplyEnvFile(envPath)
	if err != nil {
		// just log the error, maybe all envs are set in another way
		slog.Info("failed to load from .env", slog.Any("err", err))
	}

	maxUploadMB, err := strconv.Atoi(getEnvWithDefault(MaxUploadMBEnv, strconv.Itoa(DefaultMaxUploadMB)))
	if err != nil {
		return nil, fmt.Errorf("invalid number for key %s: %w", MaxUploadMBEnv, err)
	}

	conf := &Config{
		DebugMode: getEnvAsBool(DebugModeEnv, false),
		Database: DB{
			Host:     os.Getenv(DBHostEnv),
			User:     os.Getenv(DBUserEnv),
			Password: os.Getenv(DBPassEnv),
			Name:     os.Getenv(DBNameEnv),
			Port:     os.Getenv(DBPortEnv),
		},
		HTTPServer: Server{
			Port: os.Getenv(HTTPServerPortEnv),
		},
		MetricsServer: Server{
			Port: os.Getenv(MetricsServerPortEnv),
		},
		Admin: Admin{
			Username:     os.Getenv(AdminUsernameEnv),
			PasswordHash: os.Getenv(AdminPasswordHashEnv),
		},
		Session: Session{
			Secret: os.Getenv(SessionSecretEnv),
		},
		Media: Media{
			Backend:     getEnvWithDefault(MediaBackendEnv, MediaBackendLocal),
			UploadDir:   getEnvWithDefault(UploadDirEnv, "uploads"),
			MaxUploadMB: maxUploadMB,
			S3Endpoint:  os.Getenv(S3EndpointEnv),
			S3Region:    os.Getenv(S3RegionEnv),
			S3Bucket:    os.Getenv(S3BucketEnv),
			S3AccessKey: os.Getenv(S3AccessKeyEnv),
			S3SecretKey: os.Getenv(S3SecretKeyEnv),
		},
		AWS: AWSConfig{
			Region:      os.Getenv(AWSRegionEnv),
			Endpoint:    os.Getenv(AWSEndpointEnv),
			SQSQueueURL: os.Getenv(SQSQueueURLEnv),
		},
	}

	if err := conf.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return conf, nil
}
