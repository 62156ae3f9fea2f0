package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	Groq   GroqConfig
	Upload UploadConfig
	S3     S3Config
	CORS   CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DBConfig holds the optional PostgreSQL uploads-log backend. The backend is
// enabled only when Host is set; the extraction/analysis pipeline never
// depends on it.
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

// Enabled reports whether a database backend was configured.
func (d *DBConfig) Enabled() bool {
	return d.Host != ""
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// GroqConfig holds Groq chat-completions API settings. An empty APIKey means
// the analysis feature is degraded, not that startup fails.
type GroqConfig struct {
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	MaxTokens   int    `mapstructure:"max_tokens"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// Configured reports whether an API key is present.
func (g *GroqConfig) Configured() bool {
	return g.APIKey != ""
}

// UploadConfig holds transient file storage settings.
type UploadConfig struct {
	Dir           string `mapstructure:"dir"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
}

// MaxBytes returns the upload size ceiling in bytes.
func (u *UploadConfig) MaxBytes() int64 {
	return u.MaxFileSizeMB * 1024 * 1024
}

// S3Config holds the optional upload-archive bucket. Archival is enabled only
// when Bucket is set.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// Enabled reports whether an archive bucket was configured.
func (s *S3Config) Enabled() bool {
	return s.Bucket != ""
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("server.port", ":3000")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "120s")

	v.SetDefault("db.host", "")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "simplimed")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "simplimed")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)

	v.SetDefault("groq.api_key", "")
	v.SetDefault("groq.model", "llama-3.1-70b-versatile")
	v.SetDefault("groq.max_tokens", 1500)
	v.SetDefault("groq.timeout_secs", 120)

	v.SetDefault("upload.dir", "uploads")
	v.SetDefault("upload.max_file_size_mb", 10)

	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.access_key", "")
	v.SetDefault("s3.secret_key", "")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// The original deployment used bare env names (PORT, GROQ_API_KEY,
	// DB_HOST, ...); bind them explicitly.
	envBindings := map[string]string{
		"server.port":             "PORT",
		"server.read_timeout":     "SERVER_READ_TIMEOUT",
		"server.write_timeout":    "SERVER_WRITE_TIMEOUT",
		"db.host":                 "DB_HOST",
		"db.port":                 "DB_PORT",
		"db.user":                 "DB_USER",
		"db.password":             "DB_PASSWORD",
		"db.name":                 "DB_NAME",
		"db.sslmode":              "DB_SSLMODE",
		"db.max_open":             "DB_MAX_OPEN",
		"db.max_idle":             "DB_MAX_IDLE",
		"groq.api_key":            "GROQ_API_KEY",
		"groq.model":              "GROQ_MODEL",
		"groq.max_tokens":         "GROQ_MAX_TOKENS",
		"groq.timeout_secs":       "GROQ_TIMEOUT_SECS",
		"upload.dir":              "UPLOAD_DIR",
		"upload.max_file_size_mb": "MAX_FILE_SIZE_MB",
		"s3.region":               "S3_REGION",
		"s3.bucket":               "S3_BUCKET",
		"s3.endpoint":             "S3_ENDPOINT",
		"s3.access_key":           "S3_ACCESS_KEY",
		"s3.secret_key":           "S3_SECRET_KEY",
		"cors.allowed_origins":    "CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	serverPort := v.GetString("server.port")
	if !strings.HasPrefix(serverPort, ":") {
		serverPort = ":" + serverPort
	}

	cfg := &Config{}
	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
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
	cfg.Groq = GroqConfig{
		APIKey:      v.GetString("groq.api_key"),
		Model:       v.GetString("groq.model"),
		MaxTokens:   v.GetInt("groq.max_tokens"),
		TimeoutSecs: v.GetInt("groq.timeout_secs"),
	}
	cfg.Upload = UploadConfig{
		Dir:           v.GetString("upload.dir"),
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}

	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	return cfg, nil
}
