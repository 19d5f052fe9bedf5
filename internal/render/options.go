// Package render turns model replies into styled terminal text.
package render

// MinWidth is the narrowest wrap width the renderer accepts
const MinWidth = 20

// Options controls how a reply is turned into terminal text.
// The zero value is not useful; start from DefaultOptions.
type Options struct {
	Width int
	// Style is a built-in theme name or a path to a glamour JSON style
	Style string

	EnableEmoji      bool // :emoji: shortcodes become unicode
	PreserveNewLines bool // keep the model's own line breaks
	TableWrap        bool
	InlineTableLinks bool
}

// DefaultOptions matches the default markdown section of the config file.
func DefaultOptions() Options {
	return Options{
		Width:            80,
		Style:            ThemeMeadow,
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
	}
}

// WithWidth sets the wrap column, raised to MinWidth for narrow panes.
func (o Options) WithWidth(width int) Options {
	o.Width = max(width, MinWidth)
	return o
}

// WithStyle sets the theme name or style file.
func (o Options) WithStyle(style string) Options {
	o.Style = style
	return o
}

func (o Options) WithEmoji(enabled bool) Options {
	o.EnableEmoji = enabled
	return o
}

func (o Options) WithPreserveNewLines(enabled bool) Options {
	o.PreserveNewLines = enabled
	return o
}

func (o Options) WithTableWrap(enabled bool) Options {
	o.TableWrap = enabled
	return o
}

func (o Options) WithInlineTableLinks(enabled bool) Options {
	o.InlineTableLinks = enabled
	return o
}
