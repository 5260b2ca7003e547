package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP          HTTPConfig          `yaml:"http"`
	Database      DatabaseConfig      `yaml:"database"`
	Redis         RedisConfig         `yaml:"redis"`
	Kafka         KafkaConfig         `yaml:"kafka"`
	Booking       BookingConfig       `yaml:"booking"`
	Notifications NotificationsConfig `yaml:"notifications"`
	SMTP          SMTPConfig          `yaml:"smtp"`
	Telegram      TelegramConfig      `yaml:"telegram"`
	Bank          BankConfig          `yaml:"bank"`
	Auth          AuthConfig          `yaml:"auth"`
	Log           LogConfig           `yaml:"log"`
}

type HTTPConfig struct {
	Address        string   `yaml:"address"`
	SwaggerDir     string   `yaml:"swagger_dir"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type BookingConfig struct {
	CodePrefix      string `yaml:"code_prefix"`
	CodeAttempts    int    `yaml:"code_attempts"`
	FlightsCacheTTL int    `yaml:"flights_cache_ttl_seconds"`
	PricingCacheTTL int    `yaml:"pricing_cache_ttl_seconds"`
}

// NotificationsConfig selects how post-commit notifications leave the API process.
// "direct" sends from the API, "queue" hands them to the worker through Kafka.
type NotificationsConfig struct {
	Mode           string `yaml:"mode"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	LookupURL      string `yaml:"lookup_url"`
}

func (n NotificationsConfig) Timeout() time.Duration {
	return time.Duration(n.TimeoutSeconds) * time.Second
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	FromName string `yaml:"from_name"`
	From     string `yaml:"from"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
}

type BankConfig struct {
	Name    string `yaml:"name"`
	Account string `yaml:"account"`
	Branch  string `yaml:"branch"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

const (
	NotificationModeDirect = "direct"
	NotificationModeQueue  = "queue"
)

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyDefaults()

	if cfg.Notifications.Mode != NotificationModeDirect && cfg.Notifications.Mode != NotificationModeQueue {
		return nil, fmt.Errorf("unknown notifications mode %q", cfg.Notifications.Mode)
	}
	if cfg.Notifications.Mode == NotificationModeQueue && (len(cfg.Kafka.Brokers) == 0 || cfg.Kafka.NotificationsTopic == "") {
		return nil, fmt.Errorf("queue notifications require kafka brokers and notifications_topic")
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.Booking.CodePrefix == "" {
		c.Booking.CodePrefix = "BK"
	}
	if c.Booking.CodeAttempts <= 0 {
		c.Booking.CodeAttempts = 5
	}
	if c.Booking.FlightsCacheTTL <= 0 {
		c.Booking.FlightsCacheTTL = 60
	}
	if c.Booking.PricingCacheTTL <= 0 {
		c.Booking.PricingCacheTTL = 300
	}
	if c.Notifications.Mode == "" {
		c.Notifications.Mode = NotificationModeDirect
	}
	if c.Notifications.TimeoutSeconds <= 0 {
		c.Notifications.TimeoutSeconds = 30
	}
	if c.SMTP.Port == 0 {
		c.SMTP.Port = 587
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "airticket-notifier"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}
