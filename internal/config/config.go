package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Storage backend identifiers.
const (
	ListingBackendFile     = "file"
	ListingBackendPostgres = "postgres"
	ListingBackendRedis    = "redis"

	ImageBackendLocal = "local"
	ImageBackendMinIO = "minio"
)

// DatabaseConfig holds PostgreSQL database connection settings.
// Only used when the listing document is kept in PostgreSQL.
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

// StoreConfig describes where listings and images live.
type StoreConfig struct {
	ListingBackend string
	ImageBackend   string
	DataDir        string
	DataFile       string
	UploadDir      string
}

// DataPath is the full path of the listing document on disk.
func (s StoreConfig) DataPath() string {
	return filepath.Join(s.DataDir, s.DataFile)
}

// UploadConfig bounds image uploads.
type UploadConfig struct {
	MaxFileBytes int64
	MaxFiles     int
}

// RedisConfig is used when the listing document lives in Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// NATSConfig configures listing event publishing. Empty URL disables it.
type NATSConfig struct {
	URL           string
	SubjectPrefix string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost        string
	Port           string
	AccessToken    string
	Timezone       string
	AllowedOrigins string
	Store          StoreConfig
	Upload         UploadConfig
	Database       DatabaseConfig
	MinIO          MinIOConfig
	Redis          RedisConfig
	NATS           NATSConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:        getEnv("APP_HOST", "localhost:8080"),
		Port:           getEnv("PORT", "8080"),
		AccessToken:    getEnv("ACCESS_TOKEN", "Teste"),
		Timezone:       getEnv("TIMEZONE", "UTC"),
		AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		Store: StoreConfig{
			ListingBackend: strings.ToLower(getEnv("LISTING_BACKEND", ListingBackendFile)),
			ImageBackend:   strings.ToLower(getEnv("IMAGE_BACKEND", ImageBackendLocal)),
			DataDir:        getEnv("DATA_DIR", "data"),
			DataFile:       getEnv("DATA_FILE", "properties.json"),
			UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		},
		Upload: UploadConfig{
			MaxFileBytes: getEnvInt64("MAX_UPLOAD_BYTES", 5*1024*1024),
			MaxFiles:     getEnvInt("MAX_UPLOAD_FILES", 5),
		},
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
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			Key:      getEnv("REDIS_KEY", "propertyapi:listings"),
		},
		NATS: NATSConfig{
			URL:           getEnv("NATS_URL", ""),
			SubjectPrefix: getEnv("NATS_SUBJECT_PREFIX", "listings"),
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

func getEnvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.ParseInt(v, 10, 64)
		if err == nil && i > 0 {
			return i
		}
	}
	return def
}
