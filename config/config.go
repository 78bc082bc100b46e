package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config application configuration
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Auth        AuthConfig        `mapstructure:"auth"`
	MercadoPago MercadoPagoConfig `mapstructure:"mercadopago"`
	Storage     StorageConfig     `mapstructure:"storage"`
}

// ServerConfig HTTP server configuration
type ServerConfig struct {
	Port            string `mapstructure:"port"`
	ReadTimeout     int    `mapstructure:"read_timeout"`
	WriteTimeout    int    `mapstructure:"write_timeout"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig database configuration
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

// LoggingConfig logger configuration
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// AuthConfig session token configuration
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

// MercadoPagoConfig payment provider configuration
type MercadoPagoConfig struct {
	AccessToken string `mapstructure:"access_token"`
	PublicKey   string `mapstructure:"public_key"`
	BaseURL     string `mapstructure:"base_url"`
}

// StorageConfig S3-compatible object store configuration. When Endpoint is
// empty it is derived from the Cloudflare R2 account id.
type StorageConfig struct {
	AccountID       string `mapstructure:"account_id"`
	Endpoint        string `mapstructure:"endpoint"`
	Bucket          string `mapstructure:"bucket"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	PublicBaseURL   string `mapstructure:"public_base_url"`
}

// GetDSN builds the database connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Load reads configuration from environment variables. Every key has a
// default so viper picks up the matching env var (SERVER_PORT, DATABASE_HOST,
// MERCADOPAGO_ACCESS_TOKEN and so on).
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 15)
	v.SetDefault("server.shutdown_timeout", 30)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "appdaoracao")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("logging.level", "info")

	v.SetDefault("auth.jwt_secret", "")

	v.SetDefault("mercadopago.access_token", "")
	v.SetDefault("mercadopago.public_key", "")
	v.SetDefault("mercadopago.base_url", "")

	v.SetDefault("storage.account_id", "")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.bucket", "prayer-media")
	v.SetDefault("storage.access_key_id", "")
	v.SetDefault("storage.secret_access_key", "")
	v.SetDefault("storage.public_base_url", "")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if cfg.Storage.Endpoint == "" && cfg.Storage.AccountID != "" {
		cfg.Storage.Endpoint = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.Storage.AccountID)
	}

	return &cfg, nil
}
