// Package markdown renders markdown documents for the terminal
package markdown

import (
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

// GlamourRenderer renders markdown with glamour. Style is "auto", one of
// glamour's built-in style names, or a path to a JSON style file.
type GlamourRenderer struct {
	Style string
	Width int
}

// NewGlamourRenderer picks the style from the terminal background
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Style: styles.AutoStyle}
}

func (r *GlamourRenderer) options() []glamour.TermRendererOption {
	var opts []glamour.TermRendererOption

	if _, builtin := styles.DefaultStyles[r.Style]; builtin {
		opts = append(opts, glamour.WithStandardStyle(r.Style))
	} else if r.Style == "" || r.Style == styles.AutoStyle {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStylePath(r.Style))
	}

	if r.Width > 0 {
		opts = append(opts, glamour.WithWordWrap(r.Width))
	}
	return opts
}

// Render returns content styled for the terminal, or content unchanged
// when glamour cannot render it.
func (r *GlamourRenderer) Render(content string) string {
	tr, err := glamour.NewTermRenderer(r.options()...)
	if err != nil {
		return content
	}
	out, err := tr.Render(content)
	if err != nil {
		return content
	}
	return out
}
