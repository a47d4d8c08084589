package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestServerURLDefault(t *testing.T) {
	t.Setenv("TASKDECK_CONFIG_DIR", t.TempDir())
	os.Unsetenv("TASKDECK_SERVER_URL")

	if got := ServerURL(); got != "http://localhost:8080/api" {
		t.Fatalf("default server URL: got %q", got)
	}
}

func TestServerURLEnvOverridesConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TASKDECK_CONFIG_DIR", dir)

	if err := Save(&Config{ServerURL: "http://file.example/api"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := ServerURL(); got != "http://file.example/api" {
		t.Fatalf("config file URL: got %q", got)
	}

	t.Setenv("TASKDECK_SERVER_URL", "http://env.example/api")
	if got := ServerURL(); got != "http://env.example/api" {
		t.Fatalf("env URL: got %q", got)
	}
}

func TestTimeoutResolution(t *testing.T) {
	t.Setenv("TASKDECK_CONFIG_DIR", t.TempDir())
	os.Unsetenv("TASKDECK_TIMEOUT")

	if got := Timeout(); got != 30*time.Second {
		t.Fatalf("default timeout: got %v", got)
	}

	t.Setenv("TASKDECK_TIMEOUT", "5s")
	if got := Timeout(); got != 5*time.Second {
		t.Fatalf("env timeout: got %v", got)
	}

	t.Setenv("TASKDECK_TIMEOUT", "garbage")
	if got := Timeout(); got != 30*time.Second {
		t.Fatalf("invalid env timeout should fall back, got %v", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("TASKDECK_CONFIG_DIR", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerURL != "" || cfg.Timeout != "" {
		t.Fatalf("missing file should load as empty config, got %+v", cfg)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TASKDECK_CONFIG_DIR", dir)

	if err := Save(&Config{ServerURL: "http://x/api", Timeout: "10s"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.json")); err != nil {
		t.Fatalf("config.json not written: %v", err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerURL != "http://x/api" || cfg.Timeout != "10s" {
		t.Fatalf("round trip mismatch: %+v", cfg)
	}
}
