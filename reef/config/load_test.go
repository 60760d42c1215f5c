//go:build !tinygo

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadTOMLOverridesDefaults(t *testing.T) {
	path := writeFile(t, "ozean.toml", `
[bubbles]
pool = 4

[save]
event_interval = "5s"

[logging]
level = "debug"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Bubbles.Pool != 4 {
		t.Fatalf("bubbles.pool=%d, want 4", cfg.Bubbles.Pool)
	}
	if cfg.Save.EventInterval != 5*time.Second {
		t.Fatalf("save.event_interval=%v, want 5s", cfg.Save.EventInterval)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("logging.level=%q", cfg.Logging.Level)
	}
	if cfg.Dirt.MaxSpots != 5 {
		t.Fatalf("untouched dirt.max_spots=%d, want default 5", cfg.Dirt.MaxSpots)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "ozean.yaml", `
fish:
  max_speed: 45
ui:
  language: de
  modal_poll: 50ms
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Fish.MaxSpeed != 45 {
		t.Fatalf("fish.max_speed=%g", cfg.Fish.MaxSpeed)
	}
	if cfg.UI.Language != "de" || cfg.UI.ModalPoll != 50*time.Millisecond {
		t.Fatalf("ui=%+v", cfg.UI)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	bad := writeFile(t, "bad.toml", "[clock]\nema_alpha = 2.0\n")
	if _, err := Load(bad); err == nil {
		t.Fatalf("expected validation error")
	}
	cfg, err := Load("")
	if err != nil || cfg == nil {
		t.Fatalf("Load(\"\")=%v, %v", cfg, err)
	}
}
