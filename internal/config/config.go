// Package config handles configuration and credential loading for vetchat.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	apierrors "github.com/damyar/vetchat/internal/errors"
	"github.com/damyar/vetchat/internal/models"
)

// Environment variables holding the API credential, in lookup order
var apiKeyEnvVars = []string{"GEMINI_API_KEY", "API_KEY"}

// MarkdownConfig configures markdown rendering options
type MarkdownConfig struct {
	Style            string `json:"style"`              // "meadow", "dark", "light", "dracula", or path to JSON theme
	EnableEmoji      bool   `json:"enable_emoji"`       // Convert :emoji: to unicode
	PreserveNewLines bool   `json:"preserve_newlines"`  // Preserve original line breaks
	TableWrap        bool   `json:"table_wrap"`         // Enable word wrap in table cells
	InlineTableLinks bool   `json:"inline_table_links"` // Render links inline in tables
}

// RecorderConfig configures the microphone capture process
type RecorderConfig struct {
	// Command is run with its stdout read as the audio stream.
	// The process is interrupted when recording stops.
	Command  []string `json:"command"`
	MIMEType string   `json:"mime_type"`
}

// Config represents the user configuration
type Config struct {
	Model   string `json:"model"`
	BaseURL string `json:"base_url,omitempty"`
	// Proxy overrides HTTPS_PROXY for model requests; empty uses the environment.
	Proxy string `json:"proxy,omitempty"`
	// TimeoutSeconds bounds a single model request at the transport level.
	TimeoutSeconds  int            `json:"timeout_seconds"`
	Recorder        RecorderConfig `json:"recorder"`
	TUITheme        string         `json:"tui_theme,omitempty"`
	CopyToClipboard bool           `json:"copy_to_clipboard"`
	LogFile         string         `json:"log_file,omitempty"`
	Verbose         bool           `json:"verbose"`
	Markdown        MarkdownConfig `json:"markdown,omitempty"`
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Style:            "meadow",
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
		InlineTableLinks: false,
	}
}

// DefaultRecorderConfig captures 16 kHz mono WAV from the default ALSA device
func DefaultRecorderConfig() RecorderConfig {
	return RecorderConfig{
		Command:  []string{"arecord", "-q", "-f", "S16_LE", "-r", "16000", "-c", "1", "-t", "wav"},
		MIMEType: models.DefaultAudioMIMEType,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Model:           models.DefaultModel,
		BaseURL:         models.EndpointBase,
		TimeoutSeconds:  300,
		Recorder:        DefaultRecorderConfig(),
		TUITheme:        "meadow",
		CopyToClipboard: false,
		Verbose:         false,
		Markdown:        DefaultMarkdownConfig(),
	}
}

// Timeout returns the request timeout as a duration
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 300 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".vetchat"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// GetLogPath returns the log file from config, defaulting to vetchat.log in the config dir
func GetLogPath(cfg Config) (string, error) {
	if cfg.LogFile != "" {
		return cfg.LogFile, nil
	}
	configDir, err := EnsureConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "vetchat.log"), nil
}

// LoadConfig loads the configuration from disk
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	// An explicit empty command would leave the microphone unusable
	if len(cfg.Recorder.Command) == 0 {
		cfg.Recorder.Command = DefaultRecorderConfig().Command
	}
	if cfg.Recorder.MIMEType == "" {
		cfg.Recorder.MIMEType = models.DefaultAudioMIMEType
	}

	return cfg, nil
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadEnvFiles loads .env from the working directory and the config dir.
// Variables already set in the environment win. Missing files are not errors.
func LoadEnvFiles() error {
	candidates := []string{".env"}
	if dir, err := GetConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, ".env"))
	}

	for _, path := range candidates {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// GetAPIKey returns the model API credential from the environment
func GetAPIKey() (string, error) {
	for _, name := range apiKeyEnvVars {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v, nil
		}
	}
	return "", apierrors.ErrMissingAPIKey
}

// AvailableModels returns a list of suggested model names
func AvailableModels() []string {
	return []string{
		"gemini-2.5-flash",
		"gemini-2.5-pro",
		"gemini-2.0-flash",
	}
}
