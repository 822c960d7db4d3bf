package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/ziadkadry99/studymate/internal/theme"
)

// markdown renders assistant answers. The renderer is rebuilt lazily when
// the width or theme changes.
type markdown struct {
	width    int
	style    string
	renderer *glamour.TermRenderer
}

func newMarkdown(t theme.Theme) *markdown {
	md := &markdown{width: 60}
	md.setTheme(t)
	return md
}

func (md *markdown) setWidth(w int) {
	if w > 0 && w != md.width {
		md.width = w
		md.renderer = nil
	}
}

func (md *markdown) setTheme(t theme.Theme) {
	style := "dark"
	if t == theme.Soft {
		style = "light"
	}
	if style != md.style {
		md.style = style
		md.renderer = nil
	}
}

// render returns s rendered as Markdown, or s unchanged if rendering fails.
func (md *markdown) render(s string) string {
	if md.renderer == nil {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(md.style),
			glamour.WithWordWrap(md.width),
		)
		if err != nil {
			return s
		}
		md.renderer = r
	}
	out, err := md.renderer.Render(s)
	if err != nil {
		return s
	}
	return strings.Trim(out, "\n")
}
