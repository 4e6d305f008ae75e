package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const fullYAML = `
discord:
  bot_token: token-abc
  blacklist_channels: ["1332155696564928646"]
  admin_users: ["111", "222"]

db:
  driver: mysql
  host: 10.0.0.5
  port: 3307
  user: motorpool
  password: secret
  database: motorpool_prod

oracle:
  enabled: true
  endpoint: https://api.example.com
  api_key: sk-test
  model: gpt-4o-mini
  timeout_seconds: 5

dashboard:
  enabled: true
  port: 9090

cleanup_cron: "30 * * * *"
`

const minimalYAML = `
discord:
  bot_token: token-abc
`

func TestParse_FullConfig(t *testing.T) {
	cfg, err := Parse([]byte(fullYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Discord.BotToken != "token-abc" {
		t.Errorf("Discord.BotToken = %q, want %q", cfg.Discord.BotToken, "token-abc")
	}
	if len(cfg.Discord.BlacklistChannels) != 1 {
		t.Errorf("len(BlacklistChannels) = %d, want 1", len(cfg.Discord.BlacklistChannels))
	}
	if len(cfg.Discord.AdminUsers) != 2 {
		t.Errorf("len(AdminUsers) = %d, want 2", len(cfg.Discord.AdminUsers))
	}
	if cfg.DB.Driver != "mysql" {
		t.Errorf("DB.Driver = %q, want %q", cfg.DB.Driver, "mysql")
	}
	if cfg.DB.Host != "10.0.0.5" {
		t.Errorf("DB.Host = %q, want %q", cfg.DB.Host, "10.0.0.5")
	}
	if cfg.DB.Port != 3307 {
		t.Errorf("DB.Port = %d, want %d", cfg.DB.Port, 3307)
	}
	if cfg.DB.Database != "motorpool_prod" {
		t.Errorf("DB.Database = %q, want %q", cfg.DB.Database, "motorpool_prod")
	}
	if !cfg.Oracle.Enabled {
		t.Error("Oracle.Enabled = false, want true")
	}
	if cfg.Oracle.Model != "gpt-4o-mini" {
		t.Errorf("Oracle.Model = %q, want %q", cfg.Oracle.Model, "gpt-4o-mini")
	}
	if cfg.Oracle.TimeoutSeconds != 5 {
		t.Errorf("Oracle.TimeoutSeconds = %d, want 5", cfg.Oracle.TimeoutSeconds)
	}
	if cfg.Dashboard.Port != 9090 {
		t.Errorf("Dashboard.Port = %d, want 9090", cfg.Dashboard.Port)
	}
	if cfg.CleanupCron != "30 * * * *" {
		t.Errorf("CleanupCron = %q, want %q", cfg.CleanupCron, "30 * * * *")
	}
}

func TestParse_MinimalConfig_AppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DB.Driver != "sqlite" {
		t.Errorf("DB.Driver = %q, want %q (default)", cfg.DB.Driver, "sqlite")
	}
	if cfg.DB.Path != "dispatch.db" {
		t.Errorf("DB.Path = %q, want %q (default)", cfg.DB.Path, "dispatch.db")
	}
	if cfg.DB.Host != "127.0.0.1" {
		t.Errorf("DB.Host = %q, want %q (default)", cfg.DB.Host, "127.0.0.1")
	}
	if cfg.DB.Port != 3306 {
		t.Errorf("DB.Port = %d, want %d (default)", cfg.DB.Port, 3306)
	}
	if cfg.Oracle.TimeoutSeconds != 15 {
		t.Errorf("Oracle.TimeoutSeconds = %d, want 15 (default)", cfg.Oracle.TimeoutSeconds)
	}
	if cfg.Dashboard.Port != 8080 {
		t.Errorf("Dashboard.Port = %d, want 8080 (default)", cfg.Dashboard.Port)
	}
	if cfg.CleanupCron != "0 * * * *" {
		t.Errorf("CleanupCron = %q, want %q (default)", cfg.CleanupCron, "0 * * * *")
	}
}

func TestParse_TokenFromEnv(t *testing.T) {
	t.Setenv("MOTORPOOL_BOT_TOKEN", "env-token")
	cfg, err := Parse([]byte("db:\n  driver: sqlite\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Discord.BotToken != "env-token" {
		t.Errorf("Discord.BotToken = %q, want %q (from env)", cfg.Discord.BotToken, "env-token")
	}
}

func TestParse_UnsupportedDriver(t *testing.T) {
	_, err := Parse([]byte("db:\n  driver: postgres\n"))
	if err == nil {
		t.Fatal("expected error for unsupported driver")
	}
	if !strings.Contains(err.Error(), "db.driver") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "db.driver")
	}
}

func TestParse_MySQLRequiresUser(t *testing.T) {
	_, err := Parse([]byte("db:\n  driver: mysql\n"))
	if err == nil {
		t.Fatal("expected error for mysql without user")
	}
	if !strings.Contains(err.Error(), "db.user is required") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "db.user is required")
	}
}

func TestParse_OracleEnabledRequiresEndpoint(t *testing.T) {
	_, err := Parse([]byte("oracle:\n  enabled: true\n"))
	if err == nil {
		t.Fatal("expected error for enabled oracle without endpoint")
	}
	if !strings.Contains(err.Error(), "oracle.endpoint is required") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "oracle.endpoint is required")
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("discord: [not a map"))
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "motorpool.yaml")
	if err := os.WriteFile(path, []byte(fullYAML), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DB.Database != "motorpool_prod" {
		t.Errorf("DB.Database = %q, want %q", cfg.DB.Database, "motorpool_prod")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
