package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Environment string         `mapstructure:"environment"`
	Server      ServerConfig   `mapstructure:"server"`
	Session     SessionConfig  `mapstructure:"session"`
	Feedback    FeedbackConfig `mapstructure:"feedback"`
	Scatter     ScatterConfig  `mapstructure:"scatter"`
	Catalog     CatalogConfig  `mapstructure:"catalog"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	BaseURL           string        `mapstructure:"base_url"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout    time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
	CorsOrigins       []string      `mapstructure:"cors_origins"`
}

// SessionConfig holds visitor session settings.
type SessionConfig struct {
	CookieName string        `mapstructure:"cookie_name"`
	IdleTTL    time.Duration `mapstructure:"idle_ttl"`
	Secure     bool          `mapstructure:"secure"`
}

// FeedbackConfig holds how long transient confirmations stay up.
type FeedbackConfig struct {
	CopyReset      time.Duration `mapstructure:"copy_reset"`
	SubscribeReset time.Duration `mapstructure:"subscribe_reset"`
}

// ScatterConfig holds the decorative layer sizes.
type ScatterConfig struct {
	Particles int `mapstructure:"particles"`
	Sparkles  int `mapstructure:"sparkles"`
}

// CatalogConfig points at an external catalog; empty means the embedded one.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Load reads configuration from .env, an optional config file and the
// environment. Env vars use the RADIENT_ prefix, e.g. RADIENT_SERVER_PORT.
// A bare PORT is honoured for hosting platforms that set it.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("[config] ignoring .env: %v", err)
	}

	v := viper.New()
	setDefaults(v)

	if path := os.Getenv("RADIENT_CONFIG"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix("RADIENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" && os.Getenv("RADIENT_SERVER_PORT") == "" {
		v.Set("server.port", port)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, validate(c)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "")
	v.SetDefault("server.read_header_timeout", 5*time.Second)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)
	v.SetDefault("server.request_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("session.cookie_name", "radient_session")
	v.SetDefault("session.idle_ttl", 30*time.Minute)
	v.SetDefault("session.secure", false)

	v.SetDefault("feedback.copy_reset", 2*time.Second)
	v.SetDefault("feedback.subscribe_reset", 3*time.Second)

	v.SetDefault("scatter.particles", 30)
	v.SetDefault("scatter.sparkles", 15)

	v.SetDefault("catalog.path", "")
}

// validate checks if config is valid.
func validate(c Config) error {
	switch {
	case c.Server.Port <= 0 || c.Server.Port > 65535:
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	case c.Session.CookieName == "":
		return errors.New("session cookie name must be set")
	case c.Session.IdleTTL <= 0:
		return fmt.Errorf("session idle ttl must be positive, got %s", c.Session.IdleTTL)
	case c.Feedback.CopyReset <= 0 || c.Feedback.SubscribeReset <= 0:
		return errors.New("feedback reset durations must be positive")
	case c.Scatter.Particles < 0 || c.Scatter.Sparkles < 0:
		return errors.New("scatter counts must not be negative")
	case c.Scatter.Particles > 1000 || c.Scatter.Sparkles > 1000:
		return errors.New("scatter counts must be at most 1000")
	}
	if c.Environment != "development" && len(c.Server.CorsOrigins) == 1 && c.Server.CorsOrigins[0] == "*" {
		log.Printf("[config] wildcard CORS origin in %s", c.Environment)
	}
	return nil
}
