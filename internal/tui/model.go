// Package tui is the StudyMate terminal page: the search bar and task cards,
// the assistant chat panel and the theme switcher on one screen.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/ziadkadry99/studymate/internal/chat"
	"github.com/ziadkadry99/studymate/internal/logging"
	"github.com/ziadkadry99/studymate/internal/search"
	"github.com/ziadkadry99/studymate/internal/theme"
)

// Client is everything the page needs from the server.
type Client interface {
	chat.Client
	search.Searcher
	search.Navigator
}

// Deps are the session components the page is built from.
type Deps struct {
	Context  context.Context
	Client   Client
	Switcher *theme.Switcher
	Chat     *chat.Widget
	Search   *search.Bar
	Logger   *zap.Logger
}

type focus int

const (
	focusSearch focus = iota
	focusResults
	focusChat
)

// themeIndicator is the page's theme selection control.
type themeIndicator struct {
	current theme.Theme
}

func (t *themeIndicator) SetTheme(th theme.Theme) { t.current = th }

// Model is the Bubble Tea model for the page.
type Model struct {
	ctx       context.Context
	client    Client
	switcher  *theme.Switcher
	chat      *chat.Widget
	bar       *search.Bar
	logger    *zap.Logger
	indicator *themeIndicator

	searchInput textinput.Model
	chatInput   textinput.Model
	transcript  viewport.Model
	spinner     spinner.Model
	help        help.Model
	keys        keyMap
	md          *markdown

	focus     focus
	cursor    int
	searching bool
	status    string
	width     int
	height    int
}

// New builds the page model. The switcher is expected to have loaded the
// stored theme already; the page only attaches its indicator.
func New(d Deps) Model {
	ctx := d.Context
	if ctx == nil {
		ctx = context.Background()
	}

	indicator := &themeIndicator{}
	d.Switcher.Attach(indicator)

	si := textinput.New()
	si.Placeholder = "Search tasks and press Enter"
	si.Prompt = "🔎 "
	si.CharLimit = 200
	si.Focus()

	ci := textinput.New()
	ci.Placeholder = "Ask StudyMate..."
	ci.Prompt = "› "
	ci.CharLimit = 1000

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:         ctx,
		client:      d.Client,
		switcher:    d.Switcher,
		chat:        d.Chat,
		bar:         d.Search,
		logger:      logging.OrNop(d.Logger).Named("tui"),
		indicator:   indicator,
		searchInput: si,
		chatInput:   ci,
		transcript:  viewport.New(60, 10),
		spinner:     sp,
		help:        help.New(),
		keys:        defaultKeys(),
		md:          newMarkdown(d.Switcher.Current()),
	}
}

// Run starts the page and blocks until the user quits.
func Run(d Deps) error {
	m := New(d)
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if d.Context != nil {
		opts = append(opts, tea.WithContext(d.Context))
	}
	_, err := tea.NewProgram(m, opts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.refreshTranscript()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case profileMsg:
		// The panel may have been closed before the name arrived.
		if m.chat.State() != chat.Open {
			return m, nil
		}
		m.chat.Greet(msg.name, msg.err)
		m.refreshTranscript()
		return m, nil

	case answerMsg:
		m.chat.Finish(msg.pendingID, msg.answer, msg.err)
		m.refreshTranscript()
		return m, nil

	case searchMsg:
		m.searching = false
		// Failures are logged by the bar; the previous list stays.
		_ = m.bar.Apply(msg.query, msg.tasks, msg.err)
		m.cursor = clampCursor(m.cursor, len(m.bar.Cards()))
		return m, nil

	case followMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("%s failed", msg.action.Label)
			m.logger.Error("following card link", zap.String("href", msg.action.Href), zap.Error(msg.err))
			return m, nil
		}
		m.status = followStatus(msg.action)
		if q := m.bar.Query(); q != "" {
			m.searching = true
			return m, tea.Batch(runSearch(m.ctx, m.client, q), m.spinner.Tick)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.chat.Busy() && !m.searching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refreshTranscript()
		return m, cmd
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Theme):
		t, err := m.switcher.Cycle(m.ctx)
		if err != nil {
			m.status = "Theme applied but not saved"
		} else {
			m.status = "Theme: " + t.String()
		}
		m.md.setTheme(t)
		m.refreshTranscript()
		return m, nil

	case key.Matches(msg, m.keys.Chat):
		if m.chat.Open() {
			m.setFocus(focusChat)
			return m, fetchProfile(m.ctx, m.client)
		}
		m.chat.Close()
		m.setFocus(focusSearch)
		return m, nil

	case key.Matches(msg, m.keys.Close):
		if m.chat.State() == chat.Open {
			m.chat.Close()
			m.setFocus(focusSearch)
		}
		return m, nil

	case key.Matches(msg, m.keys.Focus):
		m.setFocus(m.nextFocus())
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	}

	if m.focus == focusResults {
		return m.handleResultsKey(msg)
	}
	return m.updateFocused(msg)
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	switch m.focus {
	case focusSearch:
		q, ok := search.Normalize(m.searchInput.Value())
		if !ok {
			return m, nil
		}
		m.searching = true
		m.status = ""
		return m, tea.Batch(runSearch(m.ctx, m.client, q), m.spinner.Tick)

	case focusChat:
		ex, err := m.chat.Begin(m.chatInput.Value())
		switch {
		case errors.Is(err, chat.ErrEmpty):
			return m, nil
		case errors.Is(err, chat.ErrBusy):
			m.status = "Waiting for StudyMate to answer..."
			return m, nil
		case err != nil:
			m.status = err.Error()
			return m, nil
		}
		m.chatInput.Reset()
		m.status = ""
		m.refreshTranscript()
		return m, tea.Batch(askQuestion(m.ctx, m.client, ex.PendingID, ex.Question), m.spinner.Tick)

	case focusResults:
		return m, nil
	}
	return m, nil
}

func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cards := m.bar.Cards()
	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor = clampCursor(m.cursor-1, len(cards))
	case key.Matches(msg, m.keys.Down):
		m.cursor = clampCursor(m.cursor+1, len(cards))
	case key.Matches(msg, m.keys.Complete):
		if len(cards) > 0 {
			return m, followAction(m.ctx, m.client, cards[m.cursor].Actions[0])
		}
	case key.Matches(msg, m.keys.Delete):
		if len(cards) > 0 {
			return m, followAction(m.ctx, m.client, cards[m.cursor].Actions[1])
		}
	}
	return m, nil
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusSearch:
		m.searchInput, cmd = m.searchInput.Update(msg)
	case focusChat:
		var vpCmd tea.Cmd
		m.chatInput, cmd = m.chatInput.Update(msg)
		m.transcript, vpCmd = m.transcript.Update(msg)
		cmd = tea.Batch(cmd, vpCmd)
	}
	return m, cmd
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	m.searchInput.Blur()
	m.chatInput.Blur()
	switch f {
	case focusSearch:
		m.searchInput.Focus()
	case focusChat:
		m.chatInput.Focus()
	}
}

func (m Model) nextFocus() focus {
	order := []focus{focusSearch, focusResults}
	if m.chat.State() == chat.Open {
		order = append(order, focusChat)
	}
	for i, f := range order {
		if f == m.focus {
			return order[(i+1)%len(order)]
		}
	}
	return focusSearch
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.searchInput.Width = max(width-8, 10)
	m.chatInput.Width = max(chatWidth(width)-8, 10)
	m.transcript.Width = chatWidth(width) - 4
	m.transcript.Height = max(height/3, 5)
	m.help.Width = width
	m.md.setWidth(m.transcript.Width)
}

func followStatus(a search.Action) string {
	switch a.Kind {
	case search.ActionComplete:
		return "Task status toggled"
	case search.ActionDelete:
		return "Task deleted"
	}
	return ""
}

func clampCursor(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}

func chatWidth(width int) int {
	if width <= 0 {
		return 64
	}
	return min(width, 80)
}
