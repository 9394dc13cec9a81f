package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL"`

	LLMProvider string `env:"LLM_PROVIDER" envDefault:"http"`
	LLMAPIKey   string `env:"LLM_API_KEY,required,notEmpty"`
	LLMBaseURL  string `env:"LLM_BASE_URL" envDefault:"https://api.openai.com/v1"`
	LLMModel    string `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`

	AssistantPrompt            string `env:"ASSISTANT_PROMPT"`
	AssistantSessionTTLMinutes int    `env:"ASSISTANT_SESSION_TTL_MINUTES" envDefault:"60"`
	AssistantRateLimit         int    `env:"ASSISTANT_RATE_LIMIT" envDefault:"20"`
	AssistantRateWindowSeconds int    `env:"ASSISTANT_RATE_WINDOW_SECONDS" envDefault:"60"`

	MapsDirectionsURL string `env:"MAPS_DIRECTIONS_URL" envDefault:"https://www.google.com/maps/dir/"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	JWTSecret            string `env:"JWT_SECRET"`
	JWTAccessTTLMinutes  int    `env:"JWT_ACCESS_TTL_MINUTES" envDefault:"15"`
	JWTRefreshTTLMinutes int    `env:"JWT_REFRESH_TTL_MINUTES" envDefault:"43200"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPass     string `env:"SMTP_PASS"`
	SMTPFrom     string `env:"SMTP_FROM"`
	SMTPFromName string `env:"SMTP_FROM_NAME" envDefault:"NagaCare"`
	SMTPUseTLS   bool   `env:"SMTP_USE_TLS" envDefault:"false"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) AssistantSessionTTL() time.Duration {
	return time.Duration(c.AssistantSessionTTLMinutes) * time.Minute
}

func (c *Config) AssistantRateWindow() time.Duration {
	return time.Duration(c.AssistantRateWindowSeconds) * time.Second
}
