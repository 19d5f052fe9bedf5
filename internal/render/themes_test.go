package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestIsBuiltinStyle(t *testing.T) {
	tests := []struct {
		style    string
		expected bool
	}{
		{"meadow", true},
		{"dark", true},
		{"light", true},
		{"dracula", true},
		{"tokyonight", true},
		{"notty", true},
		{"ascii", true},
		{"custom_path.json", false},
		{"unknown", false},
	}

	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			if got := IsBuiltinStyle(tt.style); got != tt.expected {
				t.Errorf("IsBuiltinStyle(%q) = %v, want %v", tt.style, got, tt.expected)
			}
		})
	}
}

func TestMeadowStyle_DoesNotMutateDark(t *testing.T) {
	before, _ := builtinStyle(ThemeDark)
	var beforeColor string
	if before.H1.Color != nil {
		beforeColor = *before.H1.Color
	}

	meadow := meadowStyle()
	if meadow.H1.Color == nil || *meadow.H1.Color != "#a6e3a1" {
		t.Errorf("meadow H1 color not applied")
	}

	after, _ := builtinStyle(ThemeDark)
	var afterColor string
	if after.H1.Color != nil {
		afterColor = *after.H1.Color
	}
	if beforeColor != afterColor {
		t.Errorf("dark H1 color changed from %q to %q", beforeColor, afterColor)
	}
}

func TestAvailableThemes(t *testing.T) {
	themes := AvailableThemes()
	if len(themes) == 0 {
		t.Fatal("expected themes")
	}
	if themes[0].Name != ThemeMeadow {
		t.Errorf("first theme = %q, want meadow", themes[0].Name)
	}

	for _, theme := range themes {
		if theme.Description == "" {
			t.Errorf("theme %s has empty description", theme.Name)
		}
		if !IsBuiltinStyle(theme.Name) {
			t.Errorf("listed theme %s is not built in", theme.Name)
		}
	}

	names := ThemeNames()
	if len(names) != len(themes) {
		t.Errorf("ThemeNames() len = %d, want %d", len(names), len(themes))
	}
}

func TestBuiltinThemesRender(t *testing.T) {
	ClearCache()
	defer ClearCache()

	for _, name := range ThemeNames() {
		t.Run(name, func(t *testing.T) {
			out, err := Markdown("# سلام\n\n**مهم**", DefaultOptions().WithStyle(name))
			if err != nil {
				t.Fatalf("Markdown() error: %v", err)
			}
			if !strings.Contains(out, "سلام") {
				t.Errorf("output missing heading text: %q", out)
			}
		})
	}
}

func TestStylePathFile(t *testing.T) {
	ClearCache()
	defer ClearCache()

	path := filepath.Join(t.TempDir(), "style.json")
	if err := os.WriteFile(path, []byte(`{"document":{"margin":0}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := Markdown("hello", DefaultOptions().WithStyle(path))
	if err != nil {
		t.Fatalf("Markdown() with style file error: %v", err)
	}
	if !strings.Contains(out, "hello") {
		t.Errorf("output missing text: %q", out)
	}
}
