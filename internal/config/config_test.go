package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"FOCUSFLOW_CONFIG", "FOCUSFLOW_DB_PATH", "FOCUSFLOW_LISTEN", "FOCUSFLOW_JWT_SECRET",
		"FOCUSFLOW_REDIS_URL", "FOCUSFLOW_LOG_LEVEL", "FOCUSFLOW_OWNER", "FOCUSFLOW_MAX_ATTEMPTS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigWithoutFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() without config file failed: %v", err)
	}

	if cfg.Server.Listen != ":3000" {
		t.Errorf("Listen = %s, want :3000", cfg.Server.Listen)
	}
	if cfg.Lock.Backend != LockMemory || cfg.Lock.TTL != 10*time.Second {
		t.Errorf("unexpected lock defaults %+v", cfg.Lock)
	}
	if cfg.Mutation.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", cfg.Mutation.MaxAttempts)
	}
	if cfg.CLI.Owner != "local" {
		t.Errorf("Owner = %s, want local", cfg.CLI.Owner)
	}
	if cfg.ColorScheme.High == "" {
		t.Error("Expected theme defaults to be applied")
	}
}

func TestLoadConfigWithFile(t *testing.T) {
	clearEnv(t)
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)

	configDir := filepath.Join(tempDir, "focusflow")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}

	configContent := `database:
  path: /tmp/board.db
server:
  listen: ":8080"
lock:
  backend: redis
  redis_url: redis://localhost:6379/0
  ttl: 3s
theme:
  preset: monochrome
  high: "#FF0000"
`
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(configContent), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with config file failed: %v", err)
	}

	if cfg.Database.Path != "/tmp/board.db" || cfg.Server.Listen != ":8080" {
		t.Errorf("unexpected values %+v %+v", cfg.Database, cfg.Server)
	}
	if cfg.Lock.Backend != LockRedis || cfg.Lock.TTL != 3*time.Second {
		t.Errorf("unexpected lock %+v", cfg.Lock)
	}
	if cfg.ColorScheme.High != "#FF0000" || cfg.ColorScheme.Medium != "#C0C0C0" {
		t.Errorf("Expected custom high and monochrome medium, got %+v", cfg.ColorScheme)
	}
	// unspecified values use defaults
	if cfg.Log.Level != "info" {
		t.Errorf("Level = %s, want info", cfg.Log.Level)
	}
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("server:\n  listen: \":9000\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("FOCUSFLOW_CONFIG", path)
	t.Setenv("FOCUSFLOW_LISTEN", ":7000")
	t.Setenv("FOCUSFLOW_REDIS_URL", "redis://cache:6379")
	t.Setenv("FOCUSFLOW_OWNER", "alice")
	t.Setenv("FOCUSFLOW_MAX_ATTEMPTS", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Server.Listen != ":7000" {
		t.Errorf("Listen = %s, want env value", cfg.Server.Listen)
	}
	if cfg.Lock.Backend != LockRedis || cfg.Lock.RedisURL != "redis://cache:6379" {
		t.Errorf("Expected redis url to select the redis backend, got %+v", cfg.Lock)
	}
	if cfg.CLI.Owner != "alice" || cfg.Mutation.MaxAttempts != 5 {
		t.Errorf("unexpected overrides %+v %+v", cfg.CLI, cfg.Mutation)
	}
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")

	tests := map[string]string{
		"unknown backend":   "lock:\n  backend: etcd\n",
		"redis without url": "lock:\n  backend: redis\n",
		"negative ttl":      "lock:\n  ttl: -1s\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, err := LoadFile(path); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestSaveConfig(t *testing.T) {
	clearEnv(t)
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)

	cfg := Default()
	cfg.Server.Listen = ":4000"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	configPath := filepath.Join(tempDir, "focusflow", "config.yaml")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatalf("Config file not created at %s", configPath)
	}

	cfg2, err := Load()
	if err != nil {
		t.Fatalf("Load() after Save() failed: %v", err)
	}
	if cfg2.Server.Listen != ":4000" {
		t.Errorf("Reloaded Listen = %s, want :4000", cfg2.Server.Listen)
	}
}
