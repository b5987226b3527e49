package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port           string `env:"PORT,            default=4444"`
	Env            string `env:"ENV,             default=development"`
	AppSecret      string `env:"APP_SECRET"`
	FrontendOrigin string `env:"FRONTEND_ORIGIN, default=http://localhost:7777"`
	LogLevel       string `env:"LOG_LEVEL,       default=info"`

	Mongo  MongoConfig
	Redis  RedisConfig
	SMTP   SMTPConfig
	Stripe StripeConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=storefront"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type SMTPConfig struct {
	Host string `env:"SMTP_HOST, default=localhost"`
	Port int    `env:"SMTP_PORT, default=1025"`
	From string `env:"SMTP_FROM, default=store@example.com"`
}

type StripeConfig struct {
	SecretKey string `env:"STRIPE_SECRET_KEY"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
