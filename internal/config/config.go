package config

import (
	"github.com/avasilyev/football-stats-service/internal/logger"
)

type Config struct {
	Logger   logger.LoggerConfig `mapstructure:"logger"`
	Server   ServerConfig        `mapstructure:"server"`
	Postgres PostgresConfig      `mapstructure:"postgres"`
	Kafka    KafkaConfig         `mapstructure:"kafka"`
}

// ServerConfig tunes the HTTP listener. Timeouts are seconds.
type ServerConfig struct {
	Addr            string `mapstructure:"addr"`
	ReadTimeout     int    `mapstructure:"readTimeout"`
	WriteTimeout    int    `mapstructure:"writeTimeout"`
	ShutdownTimeout int    `mapstructure:"shutdownTimeout"`
}

// PostgresConfig carries connection and pool tuning parameters.
// Lifetime/idle/healthcheck values are seconds.
type PostgresConfig struct {
	Host              string `mapstructure:"host"`
	Port              int    `mapstructure:"port"`
	User              string `mapstructure:"user"`
	Password          string `mapstructure:"password"`
	DBName            string `mapstructure:"dbname"`
	SSLMode           string `mapstructure:"sslmode"`
	MaxConns          int32  `mapstructure:"maxConns"`
	MinConns          int32  `mapstructure:"minConns"`
	MaxConnLifetime   int    `mapstructure:"maxConnLifetime"`
	MaxConnIdleTime   int    `mapstructure:"maxConnIdleTime"`
	HealthCheckPeriod int    `mapstructure:"healthCheckPeriod"`
}

// KafkaConfig points the stats publisher at its brokers.
// With Enabled=false the service runs with a no-op publisher.
type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
}

func (c *Config) setDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ReadTimeout <= 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout <= 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 10
	}
	if c.Postgres.Port == 0 {
		c.Postgres.Port = 5432
	}
	if c.Postgres.MaxConns <= 0 {
		c.Postgres.MaxConns = 10
	}
	if c.Postgres.MinConns < 0 {
		c.Postgres.MinConns = 0
	}
	if c.Postgres.MaxConnLifetime <= 0 {
		c.Postgres.MaxConnLifetime = 3600
	}
	if c.Postgres.MaxConnIdleTime <= 0 {
		c.Postgres.MaxConnIdleTime = 600
	}
	if c.Postgres.HealthCheckPeriod <= 0 {
		c.Postgres.HealthCheckPeriod = 60
	}
	if len(c.Kafka.Brokers) == 0 {
		c.Kafka.Brokers = []string{"localhost:9092"}
	}
}
