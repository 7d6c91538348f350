package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds all user-facing configuration for temple-finder.
type Config struct {
	Data      DataConfig      `toml:"data"`
	Server    ServerConfig    `toml:"server"`
	Search    SearchConfig    `toml:"search"`
	Assistant AssistantConfig `toml:"assistant"`
	Import    ImportConfig    `toml:"import"`
	Auth      AuthConfig      `toml:"auth"`
}

type DataConfig struct {
	Dir string `toml:"dir"`
}

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type SearchConfig struct {
	// DefaultRadiusKm applies when a proximity search supplies no radius.
	DefaultRadiusKm float64 `toml:"default_radius_km"`
}

type AssistantConfig struct {
	Model     string  `toml:"model"`
	MaxTokens int     `toml:"max_tokens"`
	RateLimit float64 `toml:"rate_limit"`
}

type ImportConfig struct {
	RateLimit float64 `toml:"rate_limit"`
}

type AuthConfig struct {
	TokenTTLMinutes int `toml:"token_ttl_minutes"`
}

// Defaults returns a Config populated with built-in default values.
func Defaults() *Config {
	return &Config{
		Data:      DataConfig{Dir: "data"},
		Server:    ServerConfig{Host: "localhost", Port: 8080},
		Search:    SearchConfig{DefaultRadiusKm: 10},
		Assistant: AssistantConfig{Model: "claude-sonnet-4-20250514", MaxTokens: 2048, RateLimit: 1.0},
		Import:    ImportConfig{RateLimit: 1.0},
		Auth:      AuthConfig{TokenTTLMinutes: 60 * 24},
	}
}

// Load reads a TOML config file. If the file does not exist, built-in
// defaults are returned without error.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
