package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/daiki-lova/Privateskytour-sub000/internal/domain"
)

// Config is the full TOML configuration of the service.
type Config struct {
	Server             ServerConfig       `toml:"server"`
	Database           DatabaseConfig     `toml:"database"`
	Logs               LogsConfig         `toml:"logs"`
	Metrics            MetricsConfig      `toml:"metrics"`
	Payment            IntegrationConfig  `toml:"payment"`
	Mailer             IntegrationConfig  `toml:"mailer"`
	Scheduler          SchedulerConfig    `toml:"scheduler"`
	CancellationPolicy PolicyConfig       `toml:"cancellation_policy"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

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

// DSN builds the lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// IntegrationConfig configures an outbound HTTP collaborator.
// Timeout is in seconds; every call is bounded by it.
type IntegrationConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

type SchedulerConfig struct {
	Enabled         bool `toml:"enabled"`
	IntervalMinutes int  `toml:"interval_minutes"`
}

// PolicyConfig is the configurable cancellation fee table.
type PolicyConfig struct {
	Tiers []PolicyTierConfig `toml:"tier"`
}

type PolicyTierConfig struct {
	DaysBefore    int `toml:"days_before"`
	RefundPercent int `toml:"refund_percent"`
}

// DomainTiers converts the configured table to domain tiers, falling back to
// the canonical defaults when the section is absent.
func (p PolicyConfig) DomainTiers() []domain.PolicyTier {
	if len(p.Tiers) == 0 {
		return domain.DefaultPolicyTiers
	}
	tiers := make([]domain.PolicyTier, len(p.Tiers))
	for i, t := range p.Tiers {
		tiers[i] = domain.PolicyTier{DaysBefore: t.DaysBefore, RefundPercent: t.RefundPercent}
	}
	return tiers
}

// Load reads and validates the TOML configuration file.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "skytour-reservations"
	}
	if cfg.Scheduler.IntervalMinutes == 0 {
		cfg.Scheduler.IntervalMinutes = 60
	}

	for _, t := range cfg.CancellationPolicy.Tiers {
		if t.RefundPercent < 0 || t.RefundPercent > 100 {
			return nil, fmt.Errorf("config: refund_percent %d out of range [0,100]", t.RefundPercent)
		}
		if t.DaysBefore < 0 {
			return nil, fmt.Errorf("config: days_before %d must not be negative", t.DaysBefore)
		}
	}

	return &cfg, nil
}
