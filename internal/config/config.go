package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Bot       BotConfig       `mapstructure:"bot"`
	Reminder  ReminderConfig  `mapstructure:"reminder"`
	Confirm   ConfirmConfig   `mapstructure:"confirm"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// 运行时标志（非配置文件，通过命令行参数设置）
	ForceMigrate bool `mapstructure:"-"` // 强制执行数据库迁移
	MigrateOnly  bool `mapstructure:"-"` // 仅迁移模式（迁移后退出）
}

type ServerConfig struct {
	Port string
	Mode string
}

// DatabaseConfig 支持两种驱动：单机部署用 sqlite（本地文件），集群部署用 mysql。
type DatabaseConfig struct {
	Driver    string `mapstructure:"driver"`
	Path      string `mapstructure:"path"` // sqlite 数据文件路径
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// BotConfig 对话前端（机器人进程）相关配置。
// WebhookURL 是后端向机器人推送提醒的回调地址；
// APISecret 是机器人调用后端 API 时携带的共享密钥。
type BotConfig struct {
	WebhookURL    string `mapstructure:"webhook_url"`
	WebhookSecret string `mapstructure:"webhook_secret"`
	APISecret     string `mapstructure:"api_secret"`
	StubNotifier  bool   `mapstructure:"stub_notifier"` // 本地调试：不真正外发，仅打日志
}

type ReminderConfig struct {
	IntervalSeconds int `mapstructure:"interval_seconds"` // 扫描周期，默认 60
	GuardTTLSeconds int `mapstructure:"guard_ttl_seconds"`
}

type ConfirmConfig struct {
	Secret        string `mapstructure:"secret"`
	ExpireMinutes int    `mapstructure:"expire_minutes"`
}

type StorageConfig struct {
	Type          string `mapstructure:"type"`
	LocalPath     string `mapstructure:"local_path"`
	PublicURL     string `mapstructure:"public_url"`
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
	MinioUseSSL   bool   `mapstructure:"minio_use_ssl"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func (c *ConfirmConfig) Expiry() time.Duration {
	if c.ExpireMinutes <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.ExpireMinutes) * time.Minute
}

func (c *ReminderConfig) Interval() time.Duration {
	if c.IntervalSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(c.IntervalSeconds) * time.Second
}

func (c *ReminderConfig) GuardTTL() time.Duration {
	if c.GuardTTLSeconds <= 0 {
		return 2 * time.Minute
	}
	return time.Duration(c.GuardTTLSeconds) * time.Second
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("HABIT_BOT")
	viper.AutomaticEnv()

	// Database
	viper.BindEnv("database.driver", "DATABASE_DRIVER")
	viper.BindEnv("database.path", "DATABASE_PATH")
	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "DATABASE_NAME")

	// Redis
	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	viper.BindEnv("server.mode", "SERVER_MODE")

	// Bot
	viper.BindEnv("bot.webhook_url", "BOT_WEBHOOK_URL")
	viper.BindEnv("bot.webhook_secret", "BOT_WEBHOOK_SECRET")
	viper.BindEnv("bot.api_secret", "BOT_API_SECRET")

	// Confirm
	viper.BindEnv("confirm.secret", "CONFIRM_SECRET")

	// Storage
	viper.BindEnv("storage.type", "STORAGE_TYPE")
	viper.BindEnv("storage.minio_endpoint", "MINIO_ENDPOINT")
	viper.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	viper.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	viper.BindEnv("storage.minio_bucket", "MINIO_BUCKET")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// 生产环境校验密钥强度
	if cfg.Server.Mode == "release" {
		if len(cfg.Confirm.Secret) < 32 {
			return nil, fmt.Errorf("confirm secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.Confirm.Secret))
		}
		if cfg.Bot.APISecret == "" {
			return nil, fmt.Errorf("bot api secret must be set in release mode")
		}
	}

	if cfg.Storage.Type == "local" {
		if _, err := os.Stat(cfg.Storage.LocalPath); os.IsNotExist(err) {
			os.MkdirAll(cfg.Storage.LocalPath, 0755)
		}
	}

	return &cfg, nil
}
