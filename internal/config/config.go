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
	JWT    JWTConfig
	S3     S3Config
	Log    LogConfig
	CORS   CORSConfig
	Render RenderConfig
	Email  EmailConfig
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

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
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

// RenderConfig holds document-rendering settings. Provider is "soffice"
// (LibreOffice headless) or "noop".
type RenderConfig struct {
	Provider   string        `mapstructure:"provider"`
	BinaryPath string        `mapstructure:"binary_path"`
	Timeout    time.Duration `mapstructure:"timeout"`
	WorkDir    string        `mapstructure:"work_dir"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	FrontendURL string `mapstructure:"frontend_url"`
}

// Load reads configuration from environment variables with the BUDGETFLOW_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BUDGETFLOW")
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
	v.SetDefault("db.user", "budgetflow")
	v.SetDefault("db.password", "budgetflow_secret")
	v.SetDefault("db.name", "budgetflow_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "budgetflow")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "budgetflow-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 50)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Render defaults
	v.SetDefault("render.provider", "noop")
	v.SetDefault("render.binary_path", "soffice")
	v.SetDefault("render.timeout", "60s")
	v.SetDefault("render.work_dir", os.TempDir())

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "noreply@budgetflow.local")
	v.SetDefault("email.from_name", "BudgetFlow")
	v.SetDefault("email.frontend_url", "http://localhost:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":          "BUDGETFLOW_SERVER_PORT",
		"server.read_timeout":  "BUDGETFLOW_SERVER_READ_TIMEOUT",
		"server.write_timeout": "BUDGETFLOW_SERVER_WRITE_TIMEOUT",
		"server.environment":   "BUDGETFLOW_SERVER_ENVIRONMENT",
		"db.host":              "BUDGETFLOW_DB_HOST",
		"db.port":              "BUDGETFLOW_DB_PORT",
		"db.user":              "BUDGETFLOW_DB_USER",
		"db.password":          "BUDGETFLOW_DB_PASSWORD",
		"db.name":              "BUDGETFLOW_DB_NAME",
		"db.sslmode":           "BUDGETFLOW_DB_SSLMODE",
		"db.max_open":          "BUDGETFLOW_DB_MAX_OPEN",
		"db.max_idle":          "BUDGETFLOW_DB_MAX_IDLE",
		"jwt.secret":           "BUDGETFLOW_JWT_SECRET",
		"jwt.access_expiry":    "BUDGETFLOW_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":   "BUDGETFLOW_JWT_REFRESH_EXPIRY",
		"jwt.issuer":           "BUDGETFLOW_JWT_ISSUER",
		"s3.region":            "BUDGETFLOW_S3_REGION",
		"s3.bucket":            "BUDGETFLOW_S3_BUCKET",
		"s3.endpoint":          "BUDGETFLOW_S3_ENDPOINT",
		"s3.access_key":        "BUDGETFLOW_S3_ACCESS_KEY",
		"s3.secret_key":        "BUDGETFLOW_S3_SECRET_KEY",
		"s3.max_file_size_mb":  "BUDGETFLOW_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":    "BUDGETFLOW_S3_PRESIGN_EXPIRY",
		"log.level":            "BUDGETFLOW_LOG_LEVEL",
		"log.format":           "BUDGETFLOW_LOG_FORMAT",
		"cors.allowed_origins": "BUDGETFLOW_CORS_ALLOWED_ORIGINS",
		"render.provider":      "BUDGETFLOW_RENDER_PROVIDER",
		"render.binary_path":   "BUDGETFLOW_RENDER_BINARY_PATH",
		"render.timeout":       "BUDGETFLOW_RENDER_TIMEOUT",
		"render.work_dir":      "BUDGETFLOW_RENDER_WORK_DIR",
		"email.provider":       "BUDGETFLOW_EMAIL_PROVIDER",
		"email.region":         "BUDGETFLOW_EMAIL_REGION",
		"email.from_address":   "BUDGETFLOW_EMAIL_FROM_ADDRESS",
		"email.from_name":      "BUDGETFLOW_EMAIL_FROM_NAME",
		"email.frontend_url":   "BUDGETFLOW_EMAIL_FRONTEND_URL",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if BUDGETFLOW_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("BUDGETFLOW_SERVER_PORT") == "" {
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
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
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
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Render = RenderConfig{
		Provider:   v.GetString("render.provider"),
		BinaryPath: v.GetString("render.binary_path"),
		Timeout:    v.GetDuration("render.timeout"),
		WorkDir:    v.GetString("render.work_dir"),
	}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		FrontendURL: v.GetString("email.frontend_url"),
	}

	return cfg, nil
}
