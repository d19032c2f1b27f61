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
	Server ServerConfig
	DB     DBConfig
	S3     S3Config
	Log    LogConfig
	CORS   CORSConfig
	Parser ParserConfig
	Import ImportConfig
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

// S3Config holds settings for original-upload archival. An empty bucket
// disables archival entirely.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
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

// ParserConfig holds settings for the chat-completion endpoint behind the
// structured parser. An empty APIKey is a first-class condition: optional-AI
// call sites degrade to the deterministic fallback, required-AI call sites
// fail fast.
type ParserConfig struct {
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	Endpoint    string `mapstructure:"endpoint"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// ImportConfig holds pipeline policy parameters.
type ImportConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
	// DuplicateWindow is the double-submit guard horizon. A policy
	// parameter, not a precise contract.
	DuplicateWindow time.Duration `mapstructure:"duplicate_window"`
	// RasterDPI is the render resolution for the scanned-PDF image
	// fallback. 144 is 2.0x of the 72dpi PDF point grid.
	RasterDPI int `mapstructure:"raster_dpi"`
}

// Load reads configuration from environment variables with the TEKLIO_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TEKLIO")
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
	v.SetDefault("db.user", "teklio")
	v.SetDefault("db.password", "teklio_secret")
	v.SetDefault("db.name", "teklio_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults (archival disabled unless a bucket is set)
	v.SetDefault("s3.region", "eu-central-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Parser defaults
	v.SetDefault("parser.api_key", "")
	v.SetDefault("parser.model", "gpt-4o")
	v.SetDefault("parser.endpoint", "")
	v.SetDefault("parser.timeout_secs", 120)

	// Import defaults
	v.SetDefault("import.max_file_size_mb", 20)
	v.SetDefault("import.duplicate_window", "2m")
	v.SetDefault("import.raster_dpi", 144)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":             "TEKLIO_SERVER_PORT",
		"server.read_timeout":     "TEKLIO_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "TEKLIO_SERVER_WRITE_TIMEOUT",
		"server.environment":      "TEKLIO_SERVER_ENVIRONMENT",
		"db.host":                 "TEKLIO_DB_HOST",
		"db.port":                 "TEKLIO_DB_PORT",
		"db.user":                 "TEKLIO_DB_USER",
		"db.password":             "TEKLIO_DB_PASSWORD",
		"db.name":                 "TEKLIO_DB_NAME",
		"db.sslmode":              "TEKLIO_DB_SSLMODE",
		"db.max_open":             "TEKLIO_DB_MAX_OPEN",
		"db.max_idle":             "TEKLIO_DB_MAX_IDLE",
		"s3.region":               "TEKLIO_S3_REGION",
		"s3.bucket":               "TEKLIO_S3_BUCKET",
		"s3.endpoint":             "TEKLIO_S3_ENDPOINT",
		"s3.access_key":           "TEKLIO_S3_ACCESS_KEY",
		"s3.secret_key":           "TEKLIO_S3_SECRET_KEY",
		"log.level":               "TEKLIO_LOG_LEVEL",
		"log.format":              "TEKLIO_LOG_FORMAT",
		"cors.allowed_origins":    "TEKLIO_CORS_ALLOWED_ORIGINS",
		"parser.api_key":          "TEKLIO_PARSER_API_KEY",
		"parser.model":            "TEKLIO_PARSER_MODEL",
		"parser.endpoint":         "TEKLIO_PARSER_ENDPOINT",
		"parser.timeout_secs":     "TEKLIO_PARSER_TIMEOUT_SECS",
		"import.max_file_size_mb": "TEKLIO_IMPORT_MAX_FILE_SIZE_MB",
		"import.duplicate_window": "TEKLIO_IMPORT_DUPLICATE_WINDOW",
		"import.raster_dpi":       "TEKLIO_IMPORT_RASTER_DPI",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if TEKLIO_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("TEKLIO_SERVER_PORT") == "" {
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
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
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
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Parser = ParserConfig{
		APIKey:      v.GetString("parser.api_key"),
		Model:       v.GetString("parser.model"),
		Endpoint:    v.GetString("parser.endpoint"),
		TimeoutSecs: v.GetInt("parser.timeout_secs"),
	}

	cfg.Import = ImportConfig{
		MaxFileSizeMB:   v.GetInt64("import.max_file_size_mb"),
		DuplicateWindow: v.GetDuration("import.duplicate_window"),
		RasterDPI:       v.GetInt("import.raster_dpi"),
	}

	return cfg, nil
}
