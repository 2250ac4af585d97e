package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)

var (
	JwtSecret  string
	Issuer     string
	ServerPort string

	StoreBackend string
	DbHost       string
	DbPort       string
	DbUser       string
	DbPassword   string
	DbName       string
	DbSSLMode    string
	DbLogLevel   string
	SQLitePath   string

	ObjectStore    string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	MinioBucket    string
	MinioPublicURL string

	UploadAllowedTypes = []string{"image/png", "image/jpeg", "image/svg+xml"}
	UploadMaxBytes     int64 = 10 << 20

	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	IdempotencyTTL = 24 * time.Hour

	IdempotencySweep      = time.Hour
	IdempotencyPendingTTL = 30 * time.Second

	CORSAllowedOrigins []string

	// ManagementAuthRequired puts form management and clearing behind a valid token.
	ManagementAuthRequired bool

	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
)

func LoadConfig() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	JwtSecret = getEnv("JWT_SECRET", "defaultsecret")
	Issuer = getEnv("ISSUER", "formflow")
	ServerPort = getEnv("SERVER_PORT", "8080")

	StoreBackend = strings.ToLower(getEnv("STORE_BACKEND", BackendPostgres))
	DbHost = getEnv("DB_HOST", "localhost")
	DbPort = getEnv("DB_PORT", "5432")
	DbUser = getEnv("DB_USER", "postgres")
	DbPassword = getEnv("DB_PASSWORD", "password")
	DbName = getEnv("DB_NAME", "formflow")
	DbSSLMode = getEnv("DB_SSLMODE", "disable")
	DbLogLevel = getEnv("DB_LOG_LEVEL", "warn")
	SQLitePath = getEnv("SQLITE_PATH", "formflow.db")

	ObjectStore = strings.ToLower(getEnv("OBJECT_STORE", "minio"))
	MinioEndpoint = getEnv("MINIO_ENDPOINT", "localhost:9000")
	MinioAccessKey = getEnv("MINIO_ACCESS_KEY", "minioadmin")
	MinioSecretKey = getEnv("MINIO_SECRET_KEY", "minioadmin")
	MinioBucket = getEnv("MINIO_BUCKET", "form-uploads")
	MinioPublicURL = getEnv("MINIO_PUBLIC_URL", "")
	MinioUseSSL, _ = strconv.ParseBool(getEnv("MINIO_USE_SSL", "false"))

	UploadAllowedTypes = getList("UPLOAD_ALLOWED_TYPES", UploadAllowedTypes)
	UploadMaxBytes = int64(getInt("UPLOAD_MAX_BYTES", int(UploadMaxBytes)))

	RedisAddr = getEnv("REDIS_ADDR", "")
	RedisPassword = getEnv("REDIS_PASSWORD", "")
	RedisDB = getInt("REDIS_DB", 0)
	if ttl, err := time.ParseDuration(getEnv("IDEMPOTENCY_TTL", "24h")); err == nil {
		IdempotencyTTL = ttl
	}
	if every, err := time.ParseDuration(getEnv("IDEMPOTENCY_SWEEP_INTERVAL", "1h")); err == nil && every > 0 {
		IdempotencySweep = every
	}
	if pending, err := time.ParseDuration(getEnv("IDEMPOTENCY_PENDING_TTL", "30s")); err == nil && pending > 0 {
		IdempotencyPendingTTL = pending
	}

	CORSAllowedOrigins = getList("CORS_ALLOWED_ORIGINS", []string{"*"})
	ManagementAuthRequired, _ = strconv.ParseBool(getEnv("MANAGEMENT_AUTH_REQUIRED", "false"))

	LogFile = getEnv("LOG_FILE", "")
	LogMaxSizeMB = getInt("LOG_MAX_SIZE_MB", 100)
	LogMaxBackups = getInt("LOG_MAX_BACKUPS", 5)
	LogMaxAgeDays = getInt("LOG_MAX_AGE_DAYS", 30)
	LogCompress, _ = strconv.ParseBool(getEnv("LOG_COMPRESS", "true"))
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return n
}

// getList reads a comma separated list, dropping blank entries.
func getList(key string, fallback []string) []string {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
