package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/Manishsonibwr/saas-task-manager/pkg/config"
	"github.com/Manishsonibwr/saas-task-manager/pkg/logger"
)

// ServiceName is the config file name and environment variable prefix.
const ServiceName = "taskmanager"

type Config struct {
	Service  ServiceConfig  `yaml:"service" mapstructure:"service"`
	Database DatabaseConfig `yaml:"database" mapstructure:"database"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      logger.Config  `yaml:"log" mapstructure:"log"`
	JWT      JWTConfig      `yaml:"jwt" mapstructure:"jwt"`
	Gateway  GatewayConfig  `yaml:"gateway" mapstructure:"gateway"`
	Billing  BillingConfig  `yaml:"billing" mapstructure:"billing"`
	Events   EventsConfig   `yaml:"events" mapstructure:"events"`
	Sweeper  SweeperConfig  `yaml:"sweeper" mapstructure:"sweeper"`
}

// LoadConfig builds the configuration once at startup. The result is passed
// explicitly to every component that needs it.
func LoadConfig() (*Config, error) {
	loaded, err := pkgconfig.Load(ServiceName, pkgconfig.Options{
		Defaults:    defaults(),
		DotEnvFiles: []string{".env"},
	})
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := loaded.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks settings that have no usable default.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is required")
	}
	switch c.Gateway.Provider {
	case GatewayMock:
	case GatewayStripe:
		if c.Gateway.Stripe.SecretKey == "" {
			return fmt.Errorf("gateway.stripe.secret_key is required for the stripe gateway")
		}
	default:
		return fmt.Errorf("unsupported gateway provider: %q", c.Gateway.Provider)
	}
	switch c.Events.Driver {
	case EventsDriverNone, EventsDriverRedis, EventsDriverKafka:
	default:
		return fmt.Errorf("unsupported events driver: %q", c.Events.Driver)
	}
	if c.Billing.PeriodDays <= 0 {
		return fmt.Errorf("billing.period_days must be positive")
	}
	return nil
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"service.name":                 ServiceName,
		"service.environment":          "development",
		"database.host":                "localhost",
		"database.port":                5432,
		"database.sslmode":             "disable",
		"database.max_open_conns":      20,
		"database.max_idle_conns":      5,
		"database.conn_max_lifetime":   30 * time.Minute,
		"database.conn_max_idle_time":  5 * time.Minute,
		"database.slow_threshold":      200 * time.Millisecond,
		"database.connect_attempts":    5,
		"database.connect_timeout":     5 * time.Second,
		"database.connect_retry_delay": 2 * time.Second,
		"server.http.host":             "0.0.0.0",
		"server.http.port":             8000,
		"server.grpc.host":             "0.0.0.0",
		"server.grpc.port":             9000,
		"server.shutdown_timeout":      10 * time.Second,
		"log.level":                    "info",
		"log.format":                   "json",
		"log.output":                   "stdout",
		"jwt.algorithm":                "HS256",
		"gateway.provider":             GatewayMock,
		"billing.period_days":          30,
		"events.driver":                EventsDriverNone,
		"events.topic":                 "billing.events",
		"events.redis.addr":            "localhost:6379",
		"events.redis.max_len":         10000,
		"events.kafka.brokers":         []string{"localhost:9092"},
		"sweeper.schedule":             "0 */15 * * * *",
	}
}
