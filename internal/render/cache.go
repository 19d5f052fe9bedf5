package render

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// maxRenderers bounds the cache. Every terminal resize produces a new wrap
// width, so old widths are evicted least recently used first.
const maxRenderers = 8

// rendererKey identifies a renderer by everything that shapes its output
type rendererKey struct {
	style       string
	width       int
	emoji       bool
	newLines    bool
	tableWrap   bool
	inlineLinks bool
}

func keyFor(opts Options) rendererKey {
	return rendererKey{
		style:       opts.Style,
		width:       opts.Width,
		emoji:       opts.EnableEmoji,
		newLines:    opts.PreserveNewLines,
		tableWrap:   opts.TableWrap,
		inlineLinks: opts.InlineTableLinks,
	}
}

// sharedRenderer serialises use of one glamour renderer, which is not safe
// for concurrent Render calls.
type sharedRenderer struct {
	mu sync.Mutex
	tr *glamour.TermRenderer
}

func (s *sharedRenderer) render(content string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tr.Render(content)
}

type rendererCache struct {
	mu      sync.Mutex
	entries map[rendererKey]*sharedRenderer
	recent  []rendererKey // least recently used first
	limit   int
}

func newRendererCache(limit int) *rendererCache {
	return &rendererCache{
		entries: make(map[rendererKey]*sharedRenderer),
		limit:   limit,
	}
}

var renderers = newRendererCache(maxRenderers)

// get returns the renderer for opts, building it on first use.
// A renderer that fails to build is not cached.
func (c *rendererCache) get(opts Options) (*sharedRenderer, error) {
	key := keyFor(opts)

	c.mu.Lock()
	defer c.mu.Unlock()

	if r, ok := c.entries[key]; ok {
		c.touch(key)
		return r, nil
	}

	tr, err := createRenderer(opts)
	if err != nil {
		return nil, err
	}
	r := &sharedRenderer{tr: tr}
	c.entries[key] = r
	c.recent = append(c.recent, key)

	for len(c.recent) > c.limit {
		oldest := c.recent[0]
		c.recent = c.recent[1:]
		delete(c.entries, oldest)
	}
	return r, nil
}

// touch moves key to the most recently used end. Callers hold c.mu.
func (c *rendererCache) touch(key rendererKey) {
	for i, k := range c.recent {
		if k == key {
			c.recent = append(c.recent[:i], c.recent[i+1:]...)
			break
		}
	}
	c.recent = append(c.recent, key)
}

func (c *rendererCache) clear() {
	c.mu.Lock()
	c.entries = make(map[rendererKey]*sharedRenderer)
	c.recent = nil
	c.mu.Unlock()
}

func (c *rendererCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// createRenderer builds a TermRenderer. Built-in theme names use their
// compiled style; anything else is treated as a style file path.
func createRenderer(opts Options) (*glamour.TermRenderer, error) {
	styleOpt := glamour.WithStylePath(opts.Style)
	if cfg, ok := builtinStyle(opts.Style); ok {
		styleOpt = glamour.WithStyles(cfg)
	}

	rendererOpts := []glamour.TermRendererOption{
		styleOpt,
		glamour.WithWordWrap(opts.Width),
		glamour.WithTableWrap(opts.TableWrap),
		glamour.WithInlineTableLinks(opts.InlineTableLinks),
	}
	if opts.EnableEmoji {
		rendererOpts = append(rendererOpts, glamour.WithEmoji())
	}
	if opts.PreserveNewLines {
		rendererOpts = append(rendererOpts, glamour.WithPreservedNewLines())
	}

	return glamour.NewTermRenderer(rendererOpts...)
}

// ClearCache drops every cached renderer
func ClearCache() {
	renderers.clear()
}

// CacheSize returns the number of cached renderers
func CacheSize() int {
	return renderers.size()
}
