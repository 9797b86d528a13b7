package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/app/configs")

	viper.SetEnvPrefix("BANG")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Allow common env vars without BANG_ prefix for Docker/VM deploys
	viper.BindEnv("http.port", "HTTP_PORT", "BANG_HTTP_PORT")
	viper.BindEnv("database.url", "DATABASE_URL", "BANG_DATABASE_URL")
	viper.BindEnv("redis.url", "REDIS_URL", "BANG_REDIS_URL")
	viper.BindEnv("queue.url", "QUEUE_URL", "BANG_QUEUE_URL")
	viper.BindEnv("jwt.secret", "JWT_SECRET", "BANG_JWT_SECRET")
	viper.BindEnv("openai.api_key", "OPENAI_API_KEY", "BANG_OPENAI_API_KEY")
	viper.BindEnv("notification.email.api_key", "SENDGRID_API_KEY")
	viper.BindEnv("webhook.verify_token", "WEBHOOK_VERIFY_TOKEN")
	viper.BindEnv("app.environment", "BANG_ENVIRONMENT")
	viper.BindEnv("logging.level", "LOG_LEVEL")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine, env vars carry the deploy.
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("app.name", "bangla-ai-platform")
	viper.SetDefault("http.port", 8080)
	viper.SetDefault("queue.provider", "nats")
	viper.SetDefault("queue.url", "nats://localhost:4222")
	viper.SetDefault("openai.model", "gpt-4o-mini")
	viper.SetDefault("openai.timeout", "10s")
	viper.SetDefault("notification.email.provider", "smtp")
	viper.SetDefault("notification.email.smtp_host", "localhost")
	viper.SetDefault("notification.email.smtp_port", 1025)
	viper.SetDefault("opentelemetry.jaeger.endpoint", "http://localhost:14268/api/traces")
}
