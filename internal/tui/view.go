package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ziadkadry99/studymate/internal/chat"
	"github.com/ziadkadry99/studymate/internal/search"
	"github.com/ziadkadry99/studymate/internal/theme"
)

func (m Model) View() string {
	p := m.switcher.Palette()

	var b strings.Builder
	b.WriteString(p.Header.Render(fmt.Sprintf("StudyMate · theme: %s", m.indicator.current)))
	b.WriteString("\n\n")
	b.WriteString(m.searchInput.View())
	b.WriteString("\n\n")
	b.WriteString(m.resultsView(p))

	if m.chat.State() == chat.Open {
		b.WriteString("\n\n")
		b.WriteString(m.chatView(p))
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(p.Status.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) resultsView(p theme.Palette) string {
	if m.searching {
		return p.Status.Render(m.spinner.View() + " Searching...")
	}
	cards := m.bar.Cards()
	if len(cards) == 0 {
		if m.bar.Query() != "" {
			return p.Status.Render("No tasks match " + fmt.Sprintf("%q", m.bar.Query()))
		}
		return ""
	}

	width := 0
	if m.width > 0 {
		width = min(m.width, 72)
	}
	blocks := make([]string, 0, len(cards))
	for i, c := range cards {
		card := search.RenderCard(c, p, width)
		if m.focus == focusResults && i == m.cursor {
			card = lipgloss.JoinHorizontal(lipgloss.Center, p.Title.Render("▸ "), card)
		} else {
			card = lipgloss.JoinHorizontal(lipgloss.Center, "  ", card)
		}
		blocks = append(blocks, card)
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func (m Model) chatView(p theme.Palette) string {
	title := p.Title.Render(m.chat.Label())
	input := m.chatInput.View()
	if m.chat.Busy() {
		input = p.Status.Render("waiting for an answer...")
	}
	body := lipgloss.JoinVertical(lipgloss.Left, title, m.transcript.View(), input)
	return p.Panel.Width(chatWidth(m.width) - p.Panel.GetHorizontalBorderSize()).Render(body)
}

// refreshTranscript re-renders the chat lines into the viewport and scrolls
// to the newest line.
func (m *Model) refreshTranscript() {
	p := m.switcher.Palette()
	lines := m.chat.Lines()
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, m.renderLine(l, p))
	}
	m.transcript.SetContent(strings.Join(out, "\n"))
	m.transcript.GotoBottom()
}

func (m Model) renderLine(l chat.Line, p theme.Palette) string {
	switch {
	case l.From == chat.FromUser:
		return p.UserLine.Width(m.transcript.Width).Render(l.Text)
	case l.Pending:
		return p.Status.Render(m.spinner.View() + " " + l.Text)
	default:
		return p.AssistantLine.Render(m.md.render(l.Text))
	}
}
