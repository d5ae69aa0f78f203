package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	OSS      OSSConfig      `mapstructure:"oss"`
	Email    EmailConfig    `mapstructure:"email"`
	Queue    QueueConfig    `mapstructure:"queue"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Plans    PlansConfig    `mapstructure:"plans"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
	Billing  BillingConfig  `mapstructure:"billing"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"` // mysql, sqlite
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	Path         string `mapstructure:"path"` // sqlite file
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	AutoMigrate  bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
	// StatusTTLSeconds bounds how long a cached subscription status is served.
	StatusTTLSeconds int `mapstructure:"status_ttl_seconds"`
}

// JWTConfig holds the hosted auth provider's signing secret.
type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type OSSConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	AccessKeySecret string `mapstructure:"access_key_secret"`
	BucketName      string `mapstructure:"bucket_name"`
}

type EmailConfig struct {
	SMTPHost string `mapstructure:"smtp_host"`
	SMTPPort int    `mapstructure:"smtp_port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type QueueConfig struct {
	NotificationQueue string `mapstructure:"notification_queue"`
	MaxWorkers        int    `mapstructure:"max_workers"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

// PlansConfig overrides the built-in plan table. Leave empty to use the defaults.
type PlansConfig struct {
	Tiers []PlanTierConfig `mapstructure:"tiers"`
}

type PlanTierConfig struct {
	Name               string `mapstructure:"name"`
	MaxAppointments    int    `mapstructure:"max_appointments"`  // -1 = unlimited
	MaxProfessionals   int    `mapstructure:"max_professionals"` // -1 = unlimited
	HasFinancialAccess bool   `mapstructure:"has_financial_access"`
	HasReports         bool   `mapstructure:"has_reports"`
	Price              string `mapstructure:"price"`
}

type ScheduleConfig struct {
	DefaultTimezone    string `mapstructure:"default_timezone"`
	DefaultStartHour   int    `mapstructure:"default_start_hour"`
	DefaultEndHour     int    `mapstructure:"default_end_hour"`
	EnforceTransitions bool   `mapstructure:"enforce_transitions"`
}

type BillingConfig struct {
	ResetIntervalMinutes int `mapstructure:"reset_interval_minutes"`
}

func Load(configPath string) (*Config, error) {
	// config.local.yaml holds real secrets and wins when present
	dir := filepath.Dir(configPath)
	localConfigPath := filepath.Join(dir, "config.local.yaml")

	if _, err := os.Stat(localConfigPath); err == nil {
		configPath = localConfigPath
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 50)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.status_ttl_seconds", 300)
	v.SetDefault("jwt.expire_hours", 24)
	v.SetDefault("queue.notification_queue", "salon:notifications")
	v.SetDefault("queue.max_workers", 2)
	v.SetDefault("schedule.default_timezone", "America/Sao_Paulo")
	v.SetDefault("schedule.default_start_hour", 8)
	v.SetDefault("schedule.default_end_hour", 20)
	v.SetDefault("schedule.enforce_transitions", true)
	v.SetDefault("billing.reset_interval_minutes", 60)
}
