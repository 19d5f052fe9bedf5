package render

import (
	"testing"

	"github.com/damyar/vetchat/internal/config"
)

func TestOptionsFromConfig(t *testing.T) {
	t.Setenv(StyleEnvVar, "")

	cfg := config.DefaultConfig()
	cfg.Markdown.Style = "light"
	cfg.Markdown.EnableEmoji = false
	cfg.Markdown.InlineTableLinks = true
	cfg.Markdown.PreserveNewLines = false
	cfg.Markdown.TableWrap = false

	opts := OptionsFromConfig(cfg)

	if opts.Style != "light" {
		t.Errorf("Style = %q, want light", opts.Style)
	}
	if opts.EnableEmoji {
		t.Error("expected EnableEmoji=false")
	}
	if !opts.InlineTableLinks {
		t.Error("expected InlineTableLinks=true")
	}
	if opts.PreserveNewLines || opts.TableWrap {
		t.Errorf("newline and table settings not carried over: %+v", opts)
	}
	if opts.Width != 80 {
		t.Errorf("Width = %d, want 80", opts.Width)
	}
}

func TestOptionsFromConfig_EmptyStyleKeepsDefault(t *testing.T) {
	t.Setenv(StyleEnvVar, "")

	cfg := config.DefaultConfig()
	cfg.Markdown.Style = ""

	if opts := OptionsFromConfig(cfg); opts.Style != ThemeMeadow {
		t.Errorf("Style = %q, want %q", opts.Style, ThemeMeadow)
	}
}

func TestOptionsFromConfig_EnvOverride(t *testing.T) {
	t.Setenv(StyleEnvVar, "dracula")

	if opts := OptionsFromConfig(config.DefaultConfig()); opts.Style != "dracula" {
		t.Errorf("Style = %q, want dracula from env", opts.Style)
	}
}
