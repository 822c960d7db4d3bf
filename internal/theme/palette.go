package theme

import "github.com/charmbracelet/lipgloss"

// Palette holds the colors and derived styles for one theme.
type Palette struct {
	Theme Theme

	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Text       lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color
	UserBubble lipgloss.Color
	Danger     lipgloss.Color

	Title         lipgloss.Style
	Header        lipgloss.Style
	Card          lipgloss.Style
	CardTitle     lipgloss.Style
	Meta          lipgloss.Style
	Action        lipgloss.Style
	DangerAction  lipgloss.Style
	Panel         lipgloss.Style
	UserLine      lipgloss.Style
	AssistantLine lipgloss.Style
	Status        lipgloss.Style
}

var colors = map[Theme][7]string{
	//            accent     muted      text       surface    border     user       danger
	Purple:   {"#7C3AED", "#A78BFA", "#F5F3FF", "#2E1065", "#8B5CF6", "#C4B5FD", "#F87171"},
	Midnight: {"#38BDF8", "#64748B", "#E2E8F0", "#0F172A", "#1E293B", "#7DD3FC", "#FB7185"},
	Soft:     {"#F472B6", "#A8A29E", "#44403C", "#FFF7ED", "#FBCFE8", "#FDA4AF", "#DC2626"},
}

// PaletteFor returns the palette for t, or the default theme's palette when
// t is unknown.
func PaletteFor(t Theme) Palette {
	c, ok := colors[t]
	if !ok {
		t = Default
		c = colors[Default]
	}

	p := Palette{
		Theme:      t,
		Accent:     lipgloss.Color(c[0]),
		Muted:      lipgloss.Color(c[1]),
		Text:       lipgloss.Color(c[2]),
		Surface:    lipgloss.Color(c[3]),
		Border:     lipgloss.Color(c[4]),
		UserBubble: lipgloss.Color(c[5]),
		Danger:     lipgloss.Color(c[6]),
	}

	p.Title = lipgloss.NewStyle().Bold(true).Foreground(p.Accent)
	p.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Text).
		Background(p.Surface).
		Padding(0, 1)
	p.Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)
	p.CardTitle = lipgloss.NewStyle().Bold(true)
	p.Meta = lipgloss.NewStyle().Foreground(p.Muted)
	p.Action = lipgloss.NewStyle().Foreground(p.Accent).Underline(true)
	p.DangerAction = lipgloss.NewStyle().Foreground(p.Danger).Underline(true)
	p.Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Accent).
		Padding(0, 1)
	p.UserLine = lipgloss.NewStyle().Foreground(p.UserBubble).Align(lipgloss.Right)
	p.AssistantLine = lipgloss.NewStyle().Foreground(p.Text)
	p.Status = lipgloss.NewStyle().Foreground(p.Muted).Italic(true)

	return p
}
