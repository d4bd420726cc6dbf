package config

import (
	"flag"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config holds the runtime options of the console. Values come from flags
// with environment variables taking precedence.
type Config struct {
	RunAddress     string        `env:"ADMIN_HTTP_ADDR"`
	BasePath       string        `env:"ADMIN_BASE_PATH"`
	BackendAddress string        `env:"STOREFRONT_API_ADDRESS"`
	RequestTimeout time.Duration `env:"STOREFRONT_REQUEST_TIMEOUT"`
	JWTSecret      string        `env:"ADMIN_JWT_SECRET"`
	StaticData     bool          `env:"ADMIN_STATIC_DATA"`
}

// Get parses flags and environment into a Config.
func Get() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.RunAddress, "a", ":8080", "address the console listens on")
	flag.StringVar(&cfg.BasePath, "p", "/admin", "base path the console is mounted under")
	flag.StringVar(&cfg.BackendAddress, "b", "http://localhost:3002/api", "storefront backend API base URL")
	flag.DurationVar(&cfg.RequestTimeout, "t", 10*time.Second, "backend request timeout")
	flag.StringVar(&cfg.JWTSecret, "s", "", "secret for decoding operator token claims (optional)")
	flag.BoolVar(&cfg.StaticData, "static", false, "serve built-in fixture data instead of the backend")
	flag.Parse()

	// Environment wins over flags, matching how the console is deployed.
	_ = env.Parse(cfg)

	return cfg
}
