package config

type ServiceConfig struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Environment string `yaml:"environment" mapstructure:"environment"`
	Version     string `yaml:"version" mapstructure:"version"`
}

type JWTConfig struct {
	Secret    string `yaml:"secret" mapstructure:"secret"`
	Algorithm string `yaml:"algorithm" mapstructure:"algorithm"`
}

// Payment gateway providers.
const (
	GatewayMock   = "mock"
	GatewayStripe = "stripe"
)

type GatewayConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider"`
	// KeyID is the publishable key returned to clients with every order.
	KeyID  string       `yaml:"key_id" mapstructure:"key_id"`
	Stripe StripeConfig `yaml:"stripe" mapstructure:"stripe"`
}

type StripeConfig struct {
	SecretKey string `yaml:"secret_key" mapstructure:"secret_key"`
	// APIURL overrides the Stripe API base URL. Empty uses the default.
	APIURL string `yaml:"api_url" mapstructure:"api_url"`
}

type BillingConfig struct {
	// PeriodDays is the length of a paid subscription period.
	PeriodDays int `yaml:"period_days" mapstructure:"period_days"`
	// PlansFile is the YAML plan catalog used by seed-plans.
	PlansFile string `yaml:"plans_file" mapstructure:"plans_file"`
}

// Event publisher drivers.
const (
	EventsDriverNone  = "none"
	EventsDriverRedis = "redis"
	EventsDriverKafka = "kafka"
)

type EventsConfig struct {
	Driver string      `yaml:"driver" mapstructure:"driver"`
	Topic  string      `yaml:"topic" mapstructure:"topic"`
	Redis  RedisConfig `yaml:"redis" mapstructure:"redis"`
	Kafka  KafkaConfig `yaml:"kafka" mapstructure:"kafka"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" mapstructure:"addr"`
	Password string `yaml:"password" mapstructure:"password"`
	DB       int    `yaml:"db" mapstructure:"db"`
	MaxLen   int64  `yaml:"max_len" mapstructure:"max_len"` // event stream cap
}

type KafkaConfig struct {
	Brokers []string `yaml:"brokers" mapstructure:"brokers"`
}

type SweeperConfig struct {
	// Schedule is a six-field cron spec (with seconds).
	Schedule string `yaml:"schedule" mapstructure:"schedule"`
}
