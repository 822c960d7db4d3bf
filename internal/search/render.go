package search

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ziadkadry99/studymate/internal/theme"
)

// Render draws the cards with the given palette, one per block. width <= 0
// lets cards size to their content.
func Render(cards []Card, p theme.Palette, width int) string {
	if len(cards) == 0 {
		return ""
	}
	blocks := make([]string, 0, len(cards))
	for _, c := range cards {
		blocks = append(blocks, RenderCard(c, p, width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

// RenderCard draws one card: title, "priority • date" and the two links.
func RenderCard(c Card, p theme.Palette, width int) string {
	var links []string
	for _, a := range c.Actions {
		style := p.Action
		if a.Kind == ActionDelete {
			style = p.DangerAction
		}
		links = append(links, style.Render(a.Label)+" "+p.Meta.Render(a.Href))
	}

	body := strings.Join([]string{
		p.CardTitle.Render(c.Title),
		p.Meta.Render(c.Meta()),
		strings.Join(links, "  "),
	}, "\n")

	style := p.Card
	if width > 0 {
		style = style.Width(width - style.GetHorizontalBorderSize())
	}
	return style.Render(body)
}
