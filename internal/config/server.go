package config

import "time"

type ServerConfig struct {
	HTTP            HTTPConfig    `yaml:"http" mapstructure:"http"`
	GRPC            GRPCConfig    `yaml:"grpc" mapstructure:"grpc"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

type HTTPConfig struct {
	Host         string   `yaml:"host" mapstructure:"host"`
	Port         int      `yaml:"port" mapstructure:"port"`
	AllowOrigins []string `yaml:"allow_origins" mapstructure:"allow_origins"`
}

type GRPCConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}
