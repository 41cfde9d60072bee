package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	S3        S3Config
	Log       LogConfig
	CORS      CORSConfig
	Extractor ExtractorConfig
	Vision    ProviderConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds object storage settings for generated documents.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ProviderConfig holds settings for a single LLM extraction provider.
type ProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// ExtractorConfig holds the ordered slot extractor chain. The primary is
// tried first; the secondary (typically the offline heuristic extractor)
// takes over when the primary fails or is rate limited.
type ExtractorConfig struct {
	Primary   ProviderConfig `mapstructure:"primary"`
	Secondary ProviderConfig `mapstructure:"secondary"`
}

// Load reads configuration from environment variables with the AWAAZ_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("AWAAZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "awaaz")
	v.SetDefault("db.password", "awaaz_secret")
	v.SetDefault("db.name", "awaaz_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "awaaz-documents")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")

	// Extractor defaults: Gemini first, heuristic rules as fallback.
	v.SetDefault("extractor.primary.provider", "gemini")
	v.SetDefault("extractor.primary.api_key", "")
	v.SetDefault("extractor.primary.default_model", "gemini-2.0-flash")
	v.SetDefault("extractor.primary.timeout_secs", 30)
	v.SetDefault("extractor.secondary.provider", "heuristic")
	v.SetDefault("extractor.secondary.api_key", "")
	v.SetDefault("extractor.secondary.default_model", "")
	v.SetDefault("extractor.secondary.timeout_secs", 0)

	// Vision defaults
	v.SetDefault("vision.provider", "gemini")
	v.SetDefault("vision.api_key", "")
	v.SetDefault("vision.default_model", "gemini-2.0-flash")
	v.SetDefault("vision.timeout_secs", 60)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                       "AWAAZ_SERVER_PORT",
		"server.read_timeout":               "AWAAZ_SERVER_READ_TIMEOUT",
		"server.write_timeout":              "AWAAZ_SERVER_WRITE_TIMEOUT",
		"server.environment":                "AWAAZ_SERVER_ENVIRONMENT",
		"db.host":                           "AWAAZ_DB_HOST",
		"db.port":                           "AWAAZ_DB_PORT",
		"db.user":                           "AWAAZ_DB_USER",
		"db.password":                       "AWAAZ_DB_PASSWORD",
		"db.name":                           "AWAAZ_DB_NAME",
		"db.sslmode":                        "AWAAZ_DB_SSLMODE",
		"db.max_open":                       "AWAAZ_DB_MAX_OPEN",
		"db.max_idle":                       "AWAAZ_DB_MAX_IDLE",
		"s3.region":                         "AWAAZ_S3_REGION",
		"s3.bucket":                         "AWAAZ_S3_BUCKET",
		"s3.endpoint":                       "AWAAZ_S3_ENDPOINT",
		"s3.access_key":                     "AWAAZ_S3_ACCESS_KEY",
		"s3.secret_key":                     "AWAAZ_S3_SECRET_KEY",
		"s3.presign_expiry":                 "AWAAZ_S3_PRESIGN_EXPIRY",
		"log.level":                         "AWAAZ_LOG_LEVEL",
		"log.format":                        "AWAAZ_LOG_FORMAT",
		"cors.allowed_origins":              "AWAAZ_CORS_ALLOWED_ORIGINS",
		"extractor.primary.provider":        "AWAAZ_EXTRACTOR_PRIMARY_PROVIDER",
		"extractor.primary.api_key":         "AWAAZ_EXTRACTOR_PRIMARY_API_KEY",
		"extractor.primary.default_model":   "AWAAZ_EXTRACTOR_PRIMARY_DEFAULT_MODEL",
		"extractor.primary.timeout_secs":    "AWAAZ_EXTRACTOR_PRIMARY_TIMEOUT_SECS",
		"extractor.secondary.provider":      "AWAAZ_EXTRACTOR_SECONDARY_PROVIDER",
		"extractor.secondary.api_key":       "AWAAZ_EXTRACTOR_SECONDARY_API_KEY",
		"extractor.secondary.default_model": "AWAAZ_EXTRACTOR_SECONDARY_DEFAULT_MODEL",
		"extractor.secondary.timeout_secs":  "AWAAZ_EXTRACTOR_SECONDARY_TIMEOUT_SECS",
		"vision.provider":                   "AWAAZ_VISION_PROVIDER",
		"vision.api_key":                    "AWAAZ_VISION_API_KEY",
		"vision.default_model":              "AWAAZ_VISION_DEFAULT_MODEL",
		"vision.timeout_secs":               "AWAAZ_VISION_TIMEOUT_SECS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if AWAAZ_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("AWAAZ_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Extractor = ExtractorConfig{
		Primary: ProviderConfig{
			Provider:     v.GetString("extractor.primary.provider"),
			APIKey:       v.GetString("extractor.primary.api_key"),
			DefaultModel: v.GetString("extractor.primary.default_model"),
			TimeoutSecs:  v.GetInt("extractor.primary.timeout_secs"),
		},
		Secondary: ProviderConfig{
			Provider:     v.GetString("extractor.secondary.provider"),
			APIKey:       v.GetString("extractor.secondary.api_key"),
			DefaultModel: v.GetString("extractor.secondary.default_model"),
			TimeoutSecs:  v.GetInt("extractor.secondary.timeout_secs"),
		},
	}
	cfg.Vision = ProviderConfig{
		Provider:     v.GetString("vision.provider"),
		APIKey:       v.GetString("vision.api_key"),
		DefaultModel: v.GetString("vision.default_model"),
		TimeoutSecs:  v.GetInt("vision.timeout_secs"),
	}

	return cfg, nil
}
