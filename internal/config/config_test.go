package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	apierrors "github.com/damyar/vetchat/internal/errors"
	"github.com/damyar/vetchat/internal/models"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Model != models.DefaultModel {
		t.Errorf("Expected default model %q, got %q", models.DefaultModel, cfg.Model)
	}
	if cfg.BaseURL != models.EndpointBase {
		t.Errorf("Expected base URL %q, got %q", models.EndpointBase, cfg.BaseURL)
	}
	if len(cfg.Recorder.Command) == 0 || cfg.Recorder.Command[0] != "arecord" {
		t.Errorf("Expected arecord recorder, got %v", cfg.Recorder.Command)
	}
	if cfg.Recorder.MIMEType != "audio/wav" {
		t.Errorf("Expected audio/wav, got %s", cfg.Recorder.MIMEType)
	}
	if cfg.Verbose {
		t.Error("Expected Verbose to be false")
	}
}

func TestConfig_Timeout(t *testing.T) {
	tests := []struct {
		seconds int
		want    time.Duration
	}{
		{0, 300 * time.Second},
		{-5, 300 * time.Second},
		{30, 30 * time.Second},
	}
	for _, tt := range tests {
		if got := (Config{TimeoutSeconds: tt.seconds}).Timeout(); got != tt.want {
			t.Errorf("Timeout(%d) = %v, want %v", tt.seconds, got, tt.want)
		}
	}
}

func TestGetConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() returned error: %v", err)
	}
	want := filepath.Join(home, ".vetchat", "config.json")
	if path != want {
		t.Errorf("GetConfigPath() = %s, want %s", path, want)
	}
}

func TestLoadConfig_FileNotExists(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if cfg.Model != models.DefaultModel {
		t.Errorf("Expected defaults, got model %q", cfg.Model)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Model = "gemini-2.5-pro"
	cfg.TUITheme = "dracula"
	cfg.Proxy = "http://clinic-proxy.local:3128"
	cfg.Recorder = RecorderConfig{Command: []string{"ffmpeg", "-f", "pulse", "-i", "default", "-f", "ogg", "-"}, MIMEType: "audio/ogg"}

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig() error: %v", err)
	}

	path, _ := GetConfigPath()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("config file mode = %v, want 0600", info.Mode().Perm())
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if loaded.Model != "gemini-2.5-pro" || loaded.TUITheme != "dracula" || loaded.Proxy != cfg.Proxy {
		t.Errorf("unexpected loaded config: %+v", loaded)
	}
	if loaded.Recorder.MIMEType != "audio/ogg" || loaded.Recorder.Command[0] != "ffmpeg" {
		t.Errorf("recorder not round-tripped: %+v", loaded.Recorder)
	}
}

func TestLoadConfig_EmptyRecorderFallsBack(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	dir, err := EnsureConfigDir()
	if err != nil {
		t.Fatal(err)
	}
	data := []byte(`{"model":"gemini-2.0-flash","recorder":{"command":[]}}`)
	if err := os.WriteFile(filepath.Join(dir, "config.json"), data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Model != "gemini-2.0-flash" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if len(cfg.Recorder.Command) == 0 {
		t.Error("expected default recorder command")
	}
	if cfg.Recorder.MIMEType != models.DefaultAudioMIMEType {
		t.Errorf("MIMEType = %q", cfg.Recorder.MIMEType)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	dir, _ := EnsureConfigDir()
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err == nil {
		t.Error("expected parse error")
	}
	if cfg.Model != models.DefaultModel {
		t.Error("expected defaults on parse error")
	}
}

func TestGetAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")

	if _, err := GetAPIKey(); !errors.Is(err, apierrors.ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}

	t.Setenv("API_KEY", "fallback")
	if key, _ := GetAPIKey(); key != "fallback" {
		t.Errorf("GetAPIKey() = %q, want fallback", key)
	}

	t.Setenv("GEMINI_API_KEY", "  primary  ")
	if key, _ := GetAPIKey(); key != "primary" {
		t.Errorf("GetAPIKey() = %q, want primary", key)
	}
}

func TestLoadEnvFiles(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("GEMINI_API_KEY", "")
	os.Unsetenv("GEMINI_API_KEY")

	dir, _ := EnsureConfigDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("GEMINI_API_KEY=from-dotenv\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	wd, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(wd) })
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}

	if err := LoadEnvFiles(); err != nil {
		t.Fatalf("LoadEnvFiles() error: %v", err)
	}
	if key, _ := GetAPIKey(); key != "from-dotenv" {
		t.Errorf("GetAPIKey() = %q, want from-dotenv", key)
	}
}

func TestGetLogPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := GetLogPath(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(home, ".vetchat", "vetchat.log") {
		t.Errorf("GetLogPath() = %s", path)
	}

	custom := DefaultConfig()
	custom.LogFile = "/tmp/custom.log"
	if path, _ := GetLogPath(custom); path != "/tmp/custom.log" {
		t.Errorf("GetLogPath() = %s", path)
	}
}
