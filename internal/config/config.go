package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the full application configuration
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	Logger       LoggerConfig       `yaml:"logger"`
	Redis        RedisConfig        `yaml:"redis"`
	JWT          JWTConfig          `yaml:"jwt"`
	S3           S3Config           `yaml:"s3"`
	Notification NotificationConfig `yaml:"notification"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string        `yaml:"port"`
	Mode            string        `yaml:"mode"`
	BasePath        string        `yaml:"basePath"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// DatabaseConfig holds PostgreSQL connection settings
type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Name            string        `yaml:"name"`
	SSLMode         string        `yaml:"sslMode"`
	MaxOpenConns    int           `yaml:"maxOpenConns"`
	MaxIdleConns    int           `yaml:"maxIdleConns"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime"`
}

// GetDSN builds the PostgreSQL DSN from the configured fields
func (d DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// LoggerConfig holds logging settings
type LoggerConfig struct {
	Level string `yaml:"level"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// JWTConfig holds token validation settings
type JWTConfig struct {
	Secret string `yaml:"secret"`
}

// S3Config holds the report archive bucket settings. Endpoint is set
// only for local MinIO development.
type S3Config struct {
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
}

// NotificationConfig holds the notification service client settings
type NotificationConfig struct {
	BaseURL string        `yaml:"baseUrl"`
	APIKey  string        `yaml:"apiKey"`
	Timeout time.Duration `yaml:"timeout"`
}

// Load reads the YAML configuration file and applies environment
// variable overrides on top of it
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// defaultConfig returns the configuration used when neither file nor
// environment provides a value
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8000",
			Mode:            "debug",
			BasePath:        "/api/portal",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            "5432",
			User:            "portal",
			Password:        "portal",
			Name:            "partner_portal",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Logger: LoggerConfig{
			Level: "info",
		},
		Redis: RedisConfig{
			DB: 1,
		},
		Notification: NotificationConfig{
			Timeout: 5 * time.Second,
		},
	}
}

// applyEnvOverrides maps well-known environment variables onto the
// configuration, taking precedence over file values
func applyEnvOverrides(cfg *Config) {
	setString(&cfg.Server.Port, "SERVER_PORT")
	setString(&cfg.Server.Mode, "GIN_MODE")
	setString(&cfg.Server.BasePath, "SERVER_BASE_PATH")

	setString(&cfg.Database.Host, "DB_HOST")
	setString(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.Name, "DB_NAME")
	setString(&cfg.Database.SSLMode, "DB_SSL_MODE")

	setString(&cfg.Logger.Level, "LOG_LEVEL")

	setString(&cfg.Redis.URL, "REDIS_URL")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "REDIS_DB")

	setString(&cfg.JWT.Secret, "JWT_SECRET")

	setString(&cfg.S3.Bucket, "S3_BUCKET")
	setString(&cfg.S3.Region, "S3_REGION")
	setString(&cfg.S3.Endpoint, "S3_ENDPOINT")
	setString(&cfg.S3.AccessKey, "S3_ACCESS_KEY")
	setString(&cfg.S3.SecretKey, "S3_SECRET_KEY")

	setString(&cfg.Notification.BaseURL, "NOTIFICATION_BASE_URL")
	setString(&cfg.Notification.APIKey, "NOTIFICATION_API_KEY")
}

func setString(target *string, key string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

func setInt(target *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*target = n
		}
	}
}
