// Package config provides YAML-based configuration loading for Motorpool.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level Motorpool configuration, loaded from motorpool.yaml.
type Config struct {
	Discord   DiscordConfig   `yaml:"discord"`
	DB        DBConfig        `yaml:"db"`
	Oracle    OracleConfig    `yaml:"oracle"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	// CleanupCron is a 5-field cron expression for the expired-record sweep.
	CleanupCron string `yaml:"cleanup_cron"`
}

// DiscordConfig holds the bot connection and moderation settings.
type DiscordConfig struct {
	// BotToken may be left empty in the file and supplied via
	// MOTORPOOL_BOT_TOKEN instead, so the token stays out of the config file.
	BotToken          string   `yaml:"bot_token"`
	BlacklistChannels []string `yaml:"blacklist_channels"`
	AdminUsers        []string `yaml:"admin_users"`
}

// DBConfig selects the record-store backend. Driver is "sqlite" (default)
// or "mysql".
type DBConfig struct {
	Driver   string `yaml:"driver"`
	Path     string `yaml:"path"` // sqlite file path
	Host     string `yaml:"host"` // mysql settings
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// OracleConfig points at an OpenAI-compatible chat-completions endpoint
// used for best-effort task-name validation.
type OracleConfig struct {
	Enabled        bool   `yaml:"enabled"`
	Endpoint       string `yaml:"endpoint"`
	APIKey         string `yaml:"api_key"`
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// DashboardConfig holds the read-only web dashboard settings.
type DashboardConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.Discord.BotToken == "" {
		c.Discord.BotToken = os.Getenv("MOTORPOOL_BOT_TOKEN")
	}
	if c.DB.Driver == "" {
		c.DB.Driver = "sqlite"
	}
	if c.DB.Path == "" {
		c.DB.Path = "dispatch.db"
	}
	if c.DB.Host == "" {
		c.DB.Host = "127.0.0.1"
	}
	if c.DB.Port == 0 {
		c.DB.Port = 3306
	}
	if c.DB.Database == "" {
		c.DB.Database = "motorpool"
	}
	if c.Oracle.Model == "" {
		c.Oracle.Model = "auto"
	}
	if c.Oracle.TimeoutSeconds == 0 {
		c.Oracle.TimeoutSeconds = 15
	}
	if c.Dashboard.Port == 0 {
		c.Dashboard.Port = 8080
	}
	if c.CleanupCron == "" {
		c.CleanupCron = "0 * * * *"
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	if c.DB.Driver != "sqlite" && c.DB.Driver != "mysql" {
		errs = append(errs, fmt.Sprintf("db.driver %q is not supported (sqlite or mysql)", c.DB.Driver))
	}
	if c.DB.Driver == "mysql" && c.DB.User == "" {
		errs = append(errs, "db.user is required for the mysql driver")
	}
	if c.Oracle.Enabled && c.Oracle.Endpoint == "" {
		errs = append(errs, "oracle.endpoint is required when oracle is enabled")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
