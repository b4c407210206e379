package config

import (
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// ProviderConfig holds settings for the external classifier providers.
// Each call carries its own timeout; a timeout counts as a provider failure
// and degrades the result, it never aborts a pipeline run.
type ProviderConfig struct {
	TranscriptionURL     string
	TranscriptionAPIKey  string
	TranscriptionTimeout time.Duration
	AuthenticityURL      string
	AuthenticityAPIKey   string
	AuthenticityTimeout  time.Duration
	MapperURL            string
	MapperAPIKey         string
	MapperTimeout        time.Duration
	Model                string
}

// AuditConfig holds settings for the audit outbox.
type AuditConfig struct {
	QueueSize   int
	MaxAttempts int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost   string
	Port      string
	Database  DatabaseConfig
	MinIO     MinIOConfig
	Providers ProviderConfig
	Audit     AuditConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"), // default only for non-sensitive value
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Providers: ProviderConfig{
			TranscriptionURL:     getEnv("STT_URL", "https://api.deepgram.com/v1/listen"),
			TranscriptionAPIKey:  getEnv("STT_API_KEY", ""),
			TranscriptionTimeout: getEnvDuration("STT_TIMEOUT", 60*time.Second),
			AuthenticityURL:      getEnv("AUTHENTICITY_URL", "https://api.openai.com/v1/chat/completions"),
			AuthenticityAPIKey:   getEnv("AUTHENTICITY_API_KEY", ""),
			AuthenticityTimeout:  getEnvDuration("AUTHENTICITY_TIMEOUT", 20*time.Second),
			MapperURL:            getEnv("MAPPER_URL", "https://api.openai.com/v1/chat/completions"),
			MapperAPIKey:         getEnv("MAPPER_API_KEY", ""),
			MapperTimeout:        getEnvDuration("MAPPER_TIMEOUT", 30*time.Second),
			Model:                getEnv("CLASSIFIER_MODEL", "gpt-4o-mini"),
		},
		Audit: AuditConfig{
			QueueSize:   getEnvInt("AUDIT_QUEUE_SIZE", 256),
			MaxAttempts: getEnvInt("AUDIT_MAX_ATTEMPTS", 5),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return def
}
