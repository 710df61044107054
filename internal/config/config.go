package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig    `yaml:"server"`
	Email      EmailConfig     `yaml:"email"`
	Resend     ResendConfig    `yaml:"resend"`
	SES        SESConfig       `yaml:"ses"`
	SparkPost  SparkPostConfig `yaml:"sparkpost"`
	Mailgun    MailgunConfig   `yaml:"mailgun"`
	Redis      RedisConfig     `yaml:"redis"`
	Horoscopes HoroscopeConfig `yaml:"horoscopes"`
	Logging    LoggingConfig   `yaml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port           int      `yaml:"port"`
	Host           string   `yaml:"host"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// GetHost returns the server host, with container detection
func (c ServerConfig) GetHost() string {
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return "0.0.0.0"
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		return host
	}
	return c.Host
}

// EmailConfig controls how form submissions are turned into outbound mail.
type EmailConfig struct {
	Provider          string   `yaml:"provider"`           // "resend", "ses", "sparkpost", "mailgun"
	FallbackProviders []string `yaml:"fallback_providers"` // tried in order when the provider fails
	OrdersFrom        string   `yaml:"orders_from"`
	NewsletterFrom    string   `yaml:"newsletter_from"`
	DefaultRecipient  string   `yaml:"default_recipient"`
	SiteName          string   `yaml:"site_name"`
	TimeoutSeconds    int      `yaml:"timeout_seconds"`
}

// Timeout returns the upper bound for a single outbound send
func (c EmailConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ResendConfig holds Resend API configuration
type ResendConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

// SESConfig holds AWS SES API configuration
type SESConfig struct {
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// SparkPostConfig holds SparkPost API configuration
type SparkPostConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

// MailgunConfig holds Mailgun API configuration
type MailgunConfig struct {
	APIKey  string `yaml:"api_key"`
	Domain  string `yaml:"domain"`
	BaseURL string `yaml:"base_url"`
}

// RedisConfig configures the submission rate limiter. An empty URL disables it.
type RedisConfig struct {
	URL                  string `yaml:"url"`
	SubmissionsPerMinute int    `yaml:"submissions_per_minute"`
}

// HoroscopeConfig describes where horoscope content is loaded from.
type HoroscopeConfig struct {
	Source         string `yaml:"source"` // "file" or "s3"
	Path           string `yaml:"path"`
	S3Bucket       string `yaml:"s3_bucket"`
	S3Key          string `yaml:"s3_key"`
	S3Region       string `yaml:"s3_region"`
	RefreshMinutes int    `yaml:"refresh_minutes"`
	Watch          bool   `yaml:"watch"`
}

// RefreshInterval returns the periodic reload interval as a duration
func (c HoroscopeConfig) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshMinutes) * time.Minute
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "json" or "console"
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"https://zvezde365.com", "http://localhost:3000"}
	}
	if cfg.Email.Provider == "" {
		cfg.Email.Provider = "resend"
	}
	if cfg.Email.OrdersFrom == "" {
		cfg.Email.OrdersFrom = "Zvezde365 <narudzbine@zvezde365.com>"
	}
	if cfg.Email.NewsletterFrom == "" {
		cfg.Email.NewsletterFrom = "Zvezde365 <newsletter@zvezde365.com>"
	}
	if cfg.Email.DefaultRecipient == "" {
		cfg.Email.DefaultRecipient = "info@zvezde365.com"
	}
	if cfg.Email.SiteName == "" {
		cfg.Email.SiteName = "zvezde365.com"
	}
	if cfg.Email.TimeoutSeconds == 0 {
		cfg.Email.TimeoutSeconds = 15
	}
	if cfg.Resend.BaseURL == "" {
		cfg.Resend.BaseURL = "https://api.resend.com"
	}
	if cfg.SES.Region == "" {
		cfg.SES.Region = "eu-central-1"
	}
	if cfg.SparkPost.BaseURL == "" {
		cfg.SparkPost.BaseURL = "https://api.sparkpost.com/api/v1"
	}
	if cfg.Mailgun.BaseURL == "" {
		cfg.Mailgun.BaseURL = "https://api.eu.mailgun.net/v3"
	}
	if cfg.Redis.SubmissionsPerMinute == 0 {
		cfg.Redis.SubmissionsPerMinute = 10
	}
	if cfg.Horoscopes.Source == "" {
		cfg.Horoscopes.Source = "file"
	}
	if cfg.Horoscopes.Path == "" && cfg.Horoscopes.Source == "file" {
		cfg.Horoscopes.Path = "config/horoscopes.yaml"
	}
	if cfg.Horoscopes.S3Key == "" {
		cfg.Horoscopes.S3Key = "horoscopes.json"
	}
	if cfg.Horoscopes.RefreshMinutes == 0 {
		cfg.Horoscopes.RefreshMinutes = 60
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

// LoadFromEnv loads configuration with environment variable overrides.
// It loads a .env file (if present) before reading env vars, and tolerates
// a missing config file so the service can run from the environment alone.
func LoadFromEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = &Config{}
		cfg.applyDefaults()
	} else if err != nil {
		return nil, err
	}

	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = splitList(v)
	}

	if v := os.Getenv("EMAIL_PROVIDER"); v != "" {
		cfg.Email.Provider = v
	}
	if v := os.Getenv("EMAIL_FALLBACK_PROVIDERS"); v != "" {
		cfg.Email.FallbackProviders = splitList(v)
	}
	if v := os.Getenv("EMAIL_DEFAULT_RECIPIENT"); v != "" {
		cfg.Email.DefaultRecipient = v
	}
	if v := os.Getenv("RESEND_API_KEY"); v != "" {
		cfg.Resend.APIKey = v
	}
	if v := os.Getenv("AWS_SES_ACCESS_KEY"); v != "" {
		cfg.SES.AccessKey = v
	}
	if v := os.Getenv("AWS_SES_SECRET_KEY"); v != "" {
		cfg.SES.SecretKey = v
	}
	if v := os.Getenv("AWS_SES_REGION"); v != "" {
		cfg.SES.Region = v
	}
	if v := os.Getenv("SPARKPOST_API_KEY"); v != "" {
		cfg.SparkPost.APIKey = v
	}
	if v := os.Getenv("MAILGUN_API_KEY"); v != "" {
		cfg.Mailgun.APIKey = v
	}
	if v := os.Getenv("MAILGUN_DOMAIN"); v != "" {
		cfg.Mailgun.Domain = v
	}

	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Redis.URL = v
	}

	if v := os.Getenv("HOROSCOPE_S3_BUCKET"); v != "" {
		cfg.Horoscopes.Source = "s3"
		cfg.Horoscopes.S3Bucket = v
	}
	if v := os.Getenv("HOROSCOPE_PATH"); v != "" {
		cfg.Horoscopes.Path = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}

	return cfg, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
