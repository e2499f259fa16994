package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/pkg/types"
)

// ErrInvalidConfig возвращается при некорректных значениях конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Tracing       TracingConfig       `toml:"tracing"`
	Scheduling    SchedulingConfig    `toml:"scheduling"`
	NoShow        NoShowConfig        `toml:"no_show"`
	Reputation    ReputationConfig    `toml:"reputation"`
	Vaccination   VaccinationConfig   `toml:"vaccination"`
	Notifications NotificationsConfig `toml:"notifications"`
	Batch         BatchConfig         `toml:"batch"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// TracingConfig настройки OpenTelemetry (endpoint берется из OTEL_EXPORTER_OTLP_ENDPOINT)
type TracingConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
}

// SchedulingConfig значения по умолчанию для календаря тенанта
type SchedulingConfig struct {
	BusinessStart            string   `toml:"business_start"`
	BusinessEnd              string   `toml:"business_end"`
	SlotStepMinutes          int      `toml:"slot_step_minutes"`
	SearchHorizonDays        int      `toml:"search_horizon_days"`
	ClosedWeekdays           []string `toml:"closed_weekdays"`
	DurationToleranceMinutes int      `toml:"duration_tolerance_minutes"`
}

// NoShowConfig настройки детектора неявок
type NoShowConfig struct {
	GraceMinutes int     `toml:"grace_minutes"`
	FeeEnabled   bool    `toml:"fee_enabled"`
	FeeSchedule  []int64 `toml:"fee_schedule"`
}

// ReputationConfig настройки рейтинга клиентов
type ReputationConfig struct {
	MinBookingScore    int `toml:"min_booking_score"`
	RecoveryWindowDays int `toml:"recovery_window_days"`
	RecoveryBonus      int `toml:"recovery_bonus"`
}

// VaccinationConfig настройки напоминаний об истечении прививок
type VaccinationConfig struct {
	AlertThresholds []int `toml:"alert_thresholds"` // дней до истечения
}

// NotificationsConfig настройки отправки SMS
type NotificationsConfig struct {
	Provider   string `toml:"provider"` // twilio | log | noop
	BaseURL    string `toml:"base_url"`
	AccountSID string `toml:"account_sid"`
	AuthToken  string `toml:"auth_token"`
	FromNumber string `toml:"from_number"`
	Timeout    int    `toml:"timeout"`
}

// BatchConfig настройки batch-задач
type BatchConfig struct {
	TimeoutSeconds int    `toml:"timeout_seconds"`
	PushgatewayURL string `toml:"pushgateway_url"` // пусто: метрики batch не отправляются
}

// Load загружает конфигурацию из TOML файла
// Секреты можно переопределить переменными окружения DB_PASSWORD и TWILIO_AUTH_TOKEN
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("TWILIO_AUTH_TOKEN"); v != "" {
		cfg.Notifications.AuthToken = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 30,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{Path: "/metrics", ServiceName: "petcare_service"},
		Tracing: TracingConfig{ServiceName: "petcare-service"},
		Scheduling: SchedulingConfig{
			BusinessStart:            domain.DefaultBusinessStart,
			BusinessEnd:              domain.DefaultBusinessEnd,
			SlotStepMinutes:          domain.DefaultSlotStepMinutes,
			SearchHorizonDays:        domain.DefaultSearchHorizonDays,
			ClosedWeekdays:           []string{string(domain.Saturday), string(domain.Sunday)},
			DurationToleranceMinutes: domain.DurationToleranceMinutes,
		},
		NoShow: NoShowConfig{
			GraceMinutes: domain.DefaultNoShowGraceMinutes,
			FeeEnabled:   true,
			FeeSchedule:  append([]int64(nil), domain.DefaultNoShowFeeSchedule...),
		},
		Reputation: ReputationConfig{
			MinBookingScore:    domain.DefaultMinBookingScore,
			RecoveryWindowDays: domain.DefaultRecoveryWindowDays,
			RecoveryBonus:      domain.DefaultRecoveryBonus,
		},
		Vaccination: VaccinationConfig{
			AlertThresholds: append([]int(nil), domain.VaccinationAlertThresholds...),
		},
		Notifications: NotificationsConfig{
			Provider: "log",
			BaseURL:  "https://api.twilio.com",
			Timeout:  10,
		},
		Batch: BatchConfig{TimeoutSeconds: 600},
	}
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	start, err := types.NewTimeStringFromString(c.Scheduling.BusinessStart)
	if err != nil {
		return fmt.Errorf("%w: scheduling.business_start: %v", ErrInvalidConfig, err)
	}
	end, err := types.NewTimeStringFromString(c.Scheduling.BusinessEnd)
	if err != nil {
		return fmt.Errorf("%w: scheduling.business_end: %v", ErrInvalidConfig, err)
	}
	if !start.IsBefore(end) {
		return fmt.Errorf("%w: scheduling.business_end must be after business_start", ErrInvalidConfig)
	}
	if c.Scheduling.SlotStepMinutes <= 0 {
		return fmt.Errorf("%w: scheduling.slot_step_minutes must be positive", ErrInvalidConfig)
	}
	if c.Scheduling.SearchHorizonDays <= 0 {
		return fmt.Errorf("%w: scheduling.search_horizon_days must be positive", ErrInvalidConfig)
	}
	if c.Scheduling.DurationToleranceMinutes < 0 {
		return fmt.Errorf("%w: scheduling.duration_tolerance_minutes must not be negative", ErrInvalidConfig)
	}
	if _, err := c.Scheduling.Weekdays(); err != nil {
		return fmt.Errorf("%w: scheduling.closed_weekdays: %v", ErrInvalidConfig, err)
	}
	if c.NoShow.GraceMinutes < 0 {
		return fmt.Errorf("%w: no_show.grace_minutes must not be negative", ErrInvalidConfig)
	}
	if len(c.NoShow.FeeSchedule) == 0 {
		return fmt.Errorf("%w: no_show.fee_schedule must not be empty", ErrInvalidConfig)
	}
	for _, days := range c.Vaccination.AlertThresholds {
		if days <= 0 {
			return fmt.Errorf("%w: vaccination.alert_thresholds must be positive, got %d", ErrInvalidConfig, days)
		}
	}
	if c.Reputation.MinBookingScore < domain.ReputationMin || c.Reputation.MinBookingScore > domain.ReputationMax {
		return fmt.Errorf("%w: reputation.min_booking_score must be within 0..100", ErrInvalidConfig)
	}
	if c.Reputation.RecoveryWindowDays <= 0 || c.Reputation.RecoveryBonus < 0 {
		return fmt.Errorf("%w: reputation recovery settings must be positive", ErrInvalidConfig)
	}
	if c.Batch.TimeoutSeconds < 0 {
		return fmt.Errorf("%w: batch.timeout_seconds must not be negative", ErrInvalidConfig)
	}
	switch c.Notifications.Provider {
	case "twilio", "log", "noop":
	default:
		return fmt.Errorf("%w: notifications.provider %q is not supported", ErrInvalidConfig, c.Notifications.Provider)
	}
	return nil
}

// Weekdays преобразует closed_weekdays в domain.Weekday
func (c SchedulingConfig) Weekdays() ([]domain.Weekday, error) {
	out := make([]domain.Weekday, 0, len(c.ClosedWeekdays))
	for _, raw := range c.ClosedWeekdays {
		w, err := domain.ParseWeekday(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}
