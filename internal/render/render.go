package render

import "strings"

// Markdown renders markdown content for terminal display with a cached renderer.
func Markdown(content string, opts Options) (string, error) {
	r, err := renderers.get(opts)
	if err != nil {
		return "", err
	}
	return r.render(content)
}

// Reply renders a model reply for display. The raw text is returned when
// rendering fails so a reply is never lost to a styling problem.
func Reply(content string, opts Options) string {
	out, err := Markdown(content, opts)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}
