package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPass     string `env:"SMTP_PASS"`
	SMTPFrom     string `env:"SMTP_FROM"`
	SMTPFromName string `env:"SMTP_FROM_NAME"`
	SMTPUseTLS   bool   `env:"SMTP_USE_TLS" envDefault:"false"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Tokens firmados para que el cuidador consulte el historial.
	ShareTokenSecret   string `env:"SHARE_TOKEN_SECRET"`
	ShareTokenTTLHours int    `env:"SHARE_TOKEN_TTL_HOURS" envDefault:"72"`

	// Ventana anti-spam de alertas al cuidador.
	AlertWindowMinutes int `env:"ALERT_WINDOW_MINUTES" envDefault:"30"`
	AlertMaxPerWindow  int `env:"ALERT_MAX_PER_WINDOW" envDefault:"1"`

	// URL base usada para armar el enlace compartido en la alerta.
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
