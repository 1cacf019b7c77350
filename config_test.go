package echochat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
)

func mapLookup(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Title != "Echo Chat" || cfg.Width != 1280 || cfg.Height != 720 {
		t.Errorf("window = %q %dx%d", cfg.Title, cfg.Width, cfg.Height)
	}
	if !cfg.QuitOnEscape {
		t.Error("QuitOnEscape should default to true")
	}
	if cfg.LinkURL != "#" {
		t.Errorf("LinkURL = %q, want %q", cfg.LinkURL, "#")
	}
	if cfg.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q, want %q", cfg.ScreenshotDir, "screenshots")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != DefaultConfig().Width {
		t.Errorf("Width = %d, want default", cfg.Width)
	}
}

func TestLoadConfigOverlaysFile(t *testing.T) {
	path := writeTempFile(t, "echochat.yaml", `
title: Preview
width: 375
show_fps: true
seed: 99
link_url: https://example.com/chat
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Title != "Preview" || cfg.Width != 375 || !cfg.ShowFPS || cfg.Seed != 99 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Height != 720 {
		t.Errorf("Height = %d, want default 720", cfg.Height)
	}
	if cfg.LinkURL != "https://example.com/chat" {
		t.Errorf("LinkURL = %q", cfg.LinkURL)
	}
	if !cfg.QuitOnEscape {
		t.Error("unset QuitOnEscape should keep its default")
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := writeTempFile(t, "bad.yaml", "width: [1, 2\n")
	_, err := LoadConfig(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestLoadConfigInvalidSize(t *testing.T) {
	path := writeTempFile(t, "zero.yaml", "width: 0\n")
	_, err := LoadConfig(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.ApplyEnv(mapLookup(map[string]string{
		"ECHOCHAT_TITLE":          "From Env",
		"ECHOCHAT_WIDTH":          "800",
		"ECHOCHAT_HEIGHT":         "600",
		"ECHOCHAT_SHOW_FPS":       "yes",
		"ECHOCHAT_DEBUG":          "1",
		"ECHOCHAT_SEED":           "12345",
		"ECHOCHAT_SCREENSHOT_DIR": "/tmp/shots",
		"ECHOCHAT_LINK_URL":       "https://example.com",
		"ECHOCHAT_SCRIPT":         "script.yaml",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Title != "From Env" || cfg.Width != 800 || cfg.Height != 600 {
		t.Errorf("window = %q %dx%d", cfg.Title, cfg.Width, cfg.Height)
	}
	if !cfg.ShowFPS || !cfg.Debug || cfg.Seed != 12345 {
		t.Errorf("flags = fps:%v debug:%v seed:%d", cfg.ShowFPS, cfg.Debug, cfg.Seed)
	}
	if cfg.ScreenshotDir != "/tmp/shots" || cfg.LinkURL != "https://example.com" || cfg.Script != "script.yaml" {
		t.Errorf("paths = %q %q %q", cfg.ScreenshotDir, cfg.LinkURL, cfg.Script)
	}
}

func TestApplyEnvEmptyLeavesDefaults(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(mapLookup(map[string]string{"ECHOCHAT_WIDTH": ""})); err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 1280 {
		t.Errorf("Width = %d, want default", cfg.Width)
	}
}

func TestApplyEnvInvalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"ECHOCHAT_WIDTH", "wide"},
		{"ECHOCHAT_HEIGHT", "-5"},
		{"ECHOCHAT_SHOW_FPS", "maybe"},
		{"ECHOCHAT_SEED", "-1"},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		err := cfg.ApplyEnv(mapLookup(map[string]string{tt.key: tt.value}))
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s=%q: err = %v, want ErrInvalidConfig", tt.key, tt.value, err)
		}
	}
}
