package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuracion del servicio.
type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	// Secreto de firma para tokens de sesion y de recuperacion.
	TokenSecret string `env:"TOKEN_SECRET,required"`
	BcryptCost  int    `env:"BCRYPT_COST" envDefault:"10"`

	// Estrategia de autenticacion: con LDAPAuth activo el login delega en
	// el directorio; LocalBypass mantiene habilitada la recuperacion local.
	LDAPAuth    bool `env:"LDAP_AUTH" envDefault:"false"`
	LocalBypass bool `env:"LOCAL_BYPASS" envDefault:"false"`

	// Dominio para los emails sinteticos de usuarios de integracion.
	IntegrationDomain string `env:"INTEGRATION_EMAIL_DOMAIN" envDefault:"integration.local"`

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
}

// LoadConfig carga la configuracion desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
