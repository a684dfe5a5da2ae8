package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// DefaultRefreshInterval is how often mounted list views re-fetch from the backend.
const DefaultRefreshInterval = 2 * time.Minute

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Upstream UpstreamConfig
	Session  SessionConfig
	Database DatabaseConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Log      LogConfig
	Audit    AuditConfig
	Photos   PhotoConfig
	Export   ExportConfig
}

// UpstreamConfig points the gateway at the campus REST backend.
type UpstreamConfig struct {
	BaseURL         string
	Timeout         time.Duration
	RefreshInterval time.Duration
}

// SessionConfig governs gateway tokens and the backend token they map to.
type SessionConfig struct {
	JWTSecret  string
	Expiration time.Duration
	KeyPrefix  string
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// AuditConfig toggles the Postgres mutation trail.
type AuditConfig struct {
	Enabled bool
}

// PhotoConfig controls profile photo processing before upload.
type PhotoConfig struct {
	MaxWidth    int
	JPEGQuality int
	MaxBytes    int64
}

// ExportConfig controls attendance exports.
type ExportConfig struct {
	Title string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Upstream = UpstreamConfig{
		BaseURL:         strings.TrimRight(v.GetString("UPSTREAM_BASE_URL"), "/"),
		Timeout:         parseDuration(v.GetString("UPSTREAM_TIMEOUT"), 15*time.Second),
		RefreshInterval: parseDuration(v.GetString("REFRESH_INTERVAL"), DefaultRefreshInterval),
	}

	cfg.Session = SessionConfig{
		JWTSecret:  v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("SESSION_TTL"), 12*time.Hour),
		KeyPrefix:  v.GetString("SESSION_KEY_PREFIX"),
	}

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Audit = AuditConfig{Enabled: v.GetBool("ENABLE_AUDIT")}

	cfg.Photos = PhotoConfig{
		MaxWidth:    v.GetInt("PHOTO_MAX_WIDTH"),
		JPEGQuality: v.GetInt("PHOTO_JPEG_QUALITY"),
		MaxBytes:    v.GetInt64("PHOTO_MAX_BYTES"),
	}

	cfg.Export = ExportConfig{Title: v.GetString("EXPORT_TITLE")}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("UPSTREAM_BASE_URL", "http://localhost:8000/api")
	v.SetDefault("UPSTREAM_TIMEOUT", "15s")
	v.SetDefault("REFRESH_INTERVAL", "2m")

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("SESSION_TTL", "12h")
	v.SetDefault("SESSION_KEY_PREFIX", "session:")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "campus_gateway")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_AUDIT", false)

	v.SetDefault("PHOTO_MAX_WIDTH", 1280)
	v.SetDefault("PHOTO_JPEG_QUALITY", 70)
	v.SetDefault("PHOTO_MAX_BYTES", 10*1024*1024)

	v.SetDefault("EXPORT_TITLE", "Attendance Records")
}

// isMissingFile reports a missing .env; viper only returns ConfigFileNotFoundError
// when searching config paths, not for an explicit SetConfigFile.
func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
