package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/types"
)

// EnvPrefix префикс переменных окружения, например PARKING_SERVER_HTTP_PORT
const EnvPrefix = "PARKING"

// Backend значения
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config конфигурация сервиса
type Config struct {
	Server         ServerConfig        `toml:"server" envconfig:"SERVER"`
	Logs           LogsConfig          `toml:"logs" envconfig:"LOGS"`
	Metrics        MetricsConfig       `toml:"metrics" envconfig:"METRICS"`
	Database       DatabaseConfig      `toml:"database" envconfig:"DATABASE"`
	Redis          RedisConfig         `toml:"redis" envconfig:"REDIS"`
	Storage        StorageConfig       `toml:"storage" envconfig:"STORAGE"`
	Sync           SyncConfig          `toml:"sync" envconfig:"SYNC"`
	Catalog        CatalogConfig       `toml:"catalog" envconfig:"CATALOG"`
	Engine         EngineConfig        `toml:"engine" envconfig:"ENGINE"`
	ListingService ServiceConfig       `toml:"listing_service" envconfig:"LISTING_SERVICE"`
	ChatService    ServiceConfig       `toml:"chat_service" envconfig:"CHAT_SERVICE"`
	Notifications  NotificationsConfig `toml:"notifications" envconfig:"NOTIFICATIONS"`
	Queue          QueueConfig         `toml:"queue" envconfig:"QUEUE"`

	// Статический справочник (используется, если listing_service.url пустой)
	Listings []ListingConfig `toml:"listings" ignored:"true"`
	Drivers  []DriverConfig  `toml:"drivers" ignored:"true"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"` // секунды
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname" split_words:"true"`
	SSLMode         string `toml:"sslmode" split_words:"true"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"` // секунды
}

// DSN строка подключения к PostgreSQL
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type RedisConfig struct {
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	KeyPrefix string `toml:"key_prefix" split_words:"true"`
}

type StorageConfig struct {
	Backend string `toml:"backend"` // memory | postgres | redis
}

type SyncConfig struct {
	Backend   string `toml:"backend"` // memory | redis
	Channel   string `toml:"channel"`
	ContextID string `toml:"context_id" split_words:"true"` // пусто - генерируется при старте
}

type CatalogConfig struct {
	DayStart    string `toml:"day_start" split_words:"true"`
	DayEnd      string `toml:"day_end" split_words:"true"`
	SlotMinutes int    `toml:"slot_minutes" split_words:"true"`
}

type EngineConfig struct {
	GenerateIntervalSeconds int    `toml:"generate_interval_seconds" split_words:"true"`
	SweepIntervalSeconds    int    `toml:"sweep_interval_seconds" split_words:"true"`
	MinDurationHours        int    `toml:"min_duration_hours" split_words:"true"`
	MaxDurationHours        int    `toml:"max_duration_hours" split_words:"true"`
	Seed                    int64  `toml:"seed"` // 0 - от текущего времени
	HostID                  string `toml:"host_id" split_words:"true"`
	HostName                string `toml:"host_name" split_words:"true"`
}

// ServiceConfig внешний HTTP сервис; пустой URL - локальная реализация
type ServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

type NotificationsConfig struct {
	AMQPURL  string `toml:"amqp_url"` // пусто - уведомления в лог
	Exchange string `toml:"exchange"`
}

type QueueConfig struct {
	Enabled     bool   `toml:"enabled"`
	RedisAddr   string `toml:"redis_addr" split_words:"true"`
	Concurrency int    `toml:"concurrency"`
}

type ListingConfig struct {
	ID            string  `toml:"id"`
	Name          string  `toml:"name"`
	Address       string  `toml:"address"`
	PricePerHour  float64 `toml:"price_per_hour"`
	CapacityTotal int     `toml:"capacity_total"`
	IsActive      bool    `toml:"is_active"`
}

type DriverConfig struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
}

// Load читает конфигурацию из TOML файла и переопределяет её переменными окружения
// Отсутствующий файл не считается ошибкой
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to process env overrides: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	setInt(&c.Server.HTTPPort, 8080)
	setInt(&c.Server.ReadTimeout, 10)
	setInt(&c.Server.WriteTimeout, 10)
	setInt(&c.Server.IdleTimeout, 60)
	setInt(&c.Server.ShutdownTimeout, 10)

	setString(&c.Logs.Level, "info")

	setString(&c.Metrics.Path, "/metrics")
	setString(&c.Metrics.ServiceName, "parking-service")

	setString(&c.Database.Host, "localhost")
	setInt(&c.Database.Port, 5432)
	setString(&c.Database.SSLMode, "disable")
	setInt(&c.Database.MaxOpenConns, 10)
	setInt(&c.Database.MaxIdleConns, 5)
	setInt(&c.Database.ConnMaxLifetime, 300)

	setString(&c.Redis.Addr, "localhost:6379")
	setString(&c.Redis.KeyPrefix, "parking:")

	setString(&c.Storage.Backend, BackendMemory)

	setString(&c.Sync.Backend, BackendMemory)
	setString(&c.Sync.Channel, "parking:sync")
	setString(&c.Sync.ContextID, uuid.NewString())

	setString(&c.Catalog.DayStart, domain.DefaultDayStart)
	setString(&c.Catalog.DayEnd, domain.DefaultDayEnd)
	setInt(&c.Catalog.SlotMinutes, domain.DefaultSlotMinutes)

	setInt(&c.Engine.GenerateIntervalSeconds, int(domain.DefaultGenerateInterval.Seconds()))
	setInt(&c.Engine.SweepIntervalSeconds, int(domain.DefaultSweepInterval.Seconds()))
	setInt(&c.Engine.MinDurationHours, domain.DefaultMinDurationHours)
	setInt(&c.Engine.MaxDurationHours, domain.DefaultMaxDurationHours)
	setString(&c.Engine.HostID, "host")
	setString(&c.Engine.HostName, "Host")

	setInt(&c.ListingService.Timeout, 5)
	setInt(&c.ChatService.Timeout, 5)

	setString(&c.Notifications.Exchange, "parking.events")

	setString(&c.Queue.RedisAddr, c.Redis.Addr)
	setInt(&c.Queue.Concurrency, 5)
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendMemory, BackendPostgres, BackendRedis:
	default:
		return fmt.Errorf("%w: unknown storage backend %q", ErrInvalidConfig, c.Storage.Backend)
	}

	switch c.Sync.Backend {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("%w: unknown sync backend %q", ErrInvalidConfig, c.Sync.Backend)
	}

	if _, err := types.NewTimeStringFromString(c.Catalog.DayStart); err != nil {
		return fmt.Errorf("%w: catalog.day_start: %v", ErrInvalidConfig, err)
	}
	if _, err := types.NewTimeStringFromString(c.Catalog.DayEnd); err != nil {
		return fmt.Errorf("%w: catalog.day_end: %v", ErrInvalidConfig, err)
	}
	if c.Catalog.SlotMinutes <= 0 {
		return fmt.Errorf("%w: catalog.slot_minutes must be positive", ErrInvalidConfig)
	}

	if c.Engine.MinDurationHours <= 0 || c.Engine.MaxDurationHours < c.Engine.MinDurationHours {
		return fmt.Errorf("%w: engine duration range [%d, %d]", ErrInvalidConfig,
			c.Engine.MinDurationHours, c.Engine.MaxDurationHours)
	}

	seen := make(map[string]struct{}, len(c.Listings))
	for _, l := range c.Listings {
		if strings.TrimSpace(l.ID) == "" {
			return fmt.Errorf("%w: listing without id", ErrInvalidConfig)
		}
		if _, dup := seen[l.ID]; dup {
			return fmt.Errorf("%w: duplicate listing id %q", ErrInvalidConfig, l.ID)
		}
		seen[l.ID] = struct{}{}
		if l.CapacityTotal < 0 || l.PricePerHour < 0 {
			return fmt.Errorf("%w: listing %q has negative capacity or price", ErrInvalidConfig, l.ID)
		}
	}

	return nil
}

// DomainListings статический справочник парковок
func (c *Config) DomainListings() []domain.Listing {
	out := make([]domain.Listing, 0, len(c.Listings))
	for _, l := range c.Listings {
		out = append(out, domain.Listing{
			ID:            l.ID,
			Name:          l.Name,
			Address:       l.Address,
			PricePerHour:  l.PricePerHour,
			CapacityTotal: l.CapacityTotal,
			IsActive:      l.IsActive,
		})
	}
	return out
}

// DomainDrivers пул водителей генератора заявок
func (c *Config) DomainDrivers() []domain.Driver {
	out := make([]domain.Driver, 0, len(c.Drivers))
	for _, d := range c.Drivers {
		out = append(out, domain.Driver{ID: d.ID, Name: d.Name})
	}
	return out
}

func setString(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

func setInt(dst *int, def int) {
	if *dst == 0 {
		*dst = def
	}
}
