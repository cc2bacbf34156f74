package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends selectable through STORE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Port        string
	CORSOrigins string
	JWTSecret   string

	StoreBackend string
	StoreName    string
	StoreDir     string

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisPoolSize int

	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSSLMode         string
	DBMaxIdleConns    int
	DBMaxOpenConns    int
	DBConnMaxLifetime time.Duration
	DBConnMaxIdleTime time.Duration

	SyncBaseURL   string
	SyncInterval  time.Duration
	SyncRetries   int
	BackupOnClose bool

	QRRenderURL  string
	QRSize       int
	MerchantCity string
}

// Load reads every setting, applying defaults for unset variables.
func Load() Config {
	return Config{
		Port:        GetEnv("PORT", "3000"),
		CORSOrigins: GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		JWTSecret:   GetEnv("JWT_SECRET", ""),

		StoreBackend: strings.ToLower(GetEnv("STORE_BACKEND", BackendFile)),
		StoreName:    GetEnv("STORE_NAME", "pix-store"),
		StoreDir:     GetEnv("STORE_DIR", "./data"),

		RedisHost:     GetEnv("REDIS_HOST", "localhost"),
		RedisPort:     GetEnv("REDIS_PORT", "6379"),
		RedisPassword: GetEnv("REDIS_PASSWORD", ""),
		RedisDB:       GetIntEnv("REDIS_DB", 0),
		RedisPoolSize: GetIntEnv("REDIS_POOL_SIZE", 10),

		DBHost:            GetEnv("DB_HOST", "localhost"),
		DBPort:            GetEnv("DB_PORT", "5432"),
		DBUser:            GetEnv("DB_USER", "postgres"),
		DBPassword:        GetEnv("DB_PASSWORD", ""),
		DBName:            GetEnv("DB_NAME", "pixfacil"),
		DBSSLMode:         GetEnv("DB_SSLMODE", "disable"),
		DBMaxIdleConns:    GetIntEnv("DB_MAX_IDLE_CONNS", 10),
		DBMaxOpenConns:    GetIntEnv("DB_MAX_OPEN_CONNS", 100),
		DBConnMaxLifetime: GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
		DBConnMaxIdleTime: GetDurationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Minute),

		SyncBaseURL:   GetEnv("SYNC_BASE_URL", ""),
		SyncInterval:  GetDurationEnv("SYNC_INTERVAL", 30*time.Second),
		SyncRetries:   GetIntEnv("SYNC_RETRIES", 3),
		BackupOnClose: GetBoolEnv("BACKUP_ON_CLOSE", false),

		QRRenderURL:  GetEnv("QR_RENDER_BASE_URL", "https://api.qrserver.com/v1/create-qr-code/"),
		QRSize:       GetIntEnv("QR_SIZE", 256),
		MerchantCity: GetEnv("MERCHANT_CITY", "SAO PAULO"),
	}
}

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
		log.Printf("invalid %s=%q, using default: %d", key, val, defaultVal)
	}
	return defaultVal
}

// GetBoolEnv returns a bool environment variable or a default value.
func GetBoolEnv(key string, defaultVal bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
		log.Printf("invalid %s=%q, using default: %t", key, val, defaultVal)
	}
	return defaultVal
}

// GetDurationEnv returns a duration environment variable ("30s", "1h")
// or a default value.
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		log.Printf("invalid %s=%q, using default: %s", key, val, defaultVal)
	}
	return defaultVal
}

// IsProduction checks if the app runs in production mode.
func IsProduction() bool {
	return GetEnv("ENV", "development") == "production"
}
