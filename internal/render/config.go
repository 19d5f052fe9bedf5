package render

import (
	"os"

	"github.com/damyar/vetchat/internal/config"
)

// StyleEnvVar overrides the configured markdown style
const StyleEnvVar = "GLAMOUR_STYLE"

// OptionsFromConfig builds render options from the markdown section of the
// configuration. The environment variable takes precedence over the file.
func OptionsFromConfig(cfg config.Config) Options {
	md := cfg.Markdown
	opts := DefaultOptions().
		WithEmoji(md.EnableEmoji).
		WithPreserveNewLines(md.PreserveNewLines).
		WithTableWrap(md.TableWrap).
		WithInlineTableLinks(md.InlineTableLinks)

	if md.Style != "" {
		opts = opts.WithStyle(md.Style)
	}
	if style := os.Getenv(StyleEnvVar); style != "" {
		opts = opts.WithStyle(style)
	}
	return opts
}
