package config

import "time"

// server configuration, parsed from the environment
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Port        string `env:"PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL"`

	DatabaseURL string `env:"DATABASE_URL"`
	RedisURL    string `env:"REDIS_URL"`

	JWTSecret     string        `env:"JWT_SECRET"`
	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"168h"`

	OIDCIssuer     string `env:"OIDC_ISSUER" envDefault:"https://accounts.google.com"`
	GoogleClientID string `env:"GOOGLE_CLIENT_ID"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

	// requests per minute per client IP on the login endpoints
	LoginRateLimit int64 `env:"LOGIN_RATE_LIMIT" envDefault:"20"`

	AdminID           string `env:"ADMIN_ID"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`
}

// whether cookies should carry the Secure attribute
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// whether the admin login path is configured
func (c *Config) AdminEnabled() bool {
	return c.AdminID != "" && c.AdminPasswordHash != ""
}

// portal (terminal client) settings
type Flags struct {
	APIURL   string
	StateDir string
	// location opened on start
	Start string
}
