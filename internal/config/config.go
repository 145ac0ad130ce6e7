package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Defaults used when the environment leaves a value unset.
const (
	DefaultAddr      = ":8080"
	DefaultRootTitle = "Online Help"
)

// Provider exposes the configuration values the application reads.
type Provider interface {
	GetAddr() string
	GetDeclarations() string
	GetRootTitle() string
	GetWelcomePath() string
	GetHotReload() bool
}

// Config holds all configuration for the application.
type Config struct {
	Addr         string
	Declarations string
	RootTitle    string
	WelcomePath  string
	HotReload    bool
}

// New loads configuration from the .env file and environment variables and
// exits when it is incomplete.
func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg, err := FromEnv()
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

// FromEnv reads the configuration from environment variables.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Addr:         getenv("HELP_ADDR", DefaultAddr),
		Declarations: os.Getenv("HELP_DECLARATIONS"),
		RootTitle:    getenv("HELP_ROOT_TITLE", DefaultRootTitle),
		WelcomePath:  os.Getenv("HELP_WELCOME_PATH"),
	}

	if v := os.Getenv("HELP_HOT_RELOAD"); v != "" {
		hot, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid HELP_HOT_RELOAD value %q: %w", v, err)
		}
		cfg.HotReload = hot
	}

	if cfg.WelcomePath == "" {
		return nil, fmt.Errorf("required environment variable HELP_WELCOME_PATH is not set")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetAddr implements Provider.
func (c *Config) GetAddr() string { return c.Addr }

// GetDeclarations implements Provider.
func (c *Config) GetDeclarations() string { return c.Declarations }

// GetRootTitle implements Provider.
func (c *Config) GetRootTitle() string { return c.RootTitle }

// GetWelcomePath implements Provider.
func (c *Config) GetWelcomePath() string { return c.WelcomePath }

// GetHotReload implements Provider.
func (c *Config) GetHotReload() bool { return c.HotReload }
