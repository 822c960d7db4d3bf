package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ziadkadry99/studymate/internal/search"
	"github.com/ziadkadry99/studymate/internal/studymate"
)

type profileMsg struct {
	name string
	err  error
}

type answerMsg struct {
	pendingID string
	answer    string
	err       error
}

type searchMsg struct {
	query string
	tasks []studymate.Task
	err   error
}

type followMsg struct {
	action search.Action
	err    error
}

func fetchProfile(ctx context.Context, c Client) tea.Cmd {
	return func() tea.Msg {
		name, err := c.DisplayName(ctx)
		return profileMsg{name: name, err: err}
	}
}

func askQuestion(ctx context.Context, c Client, pendingID, question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := c.Ask(ctx, question)
		return answerMsg{pendingID: pendingID, answer: answer, err: err}
	}
}

func runSearch(ctx context.Context, c Client, q string) tea.Cmd {
	return func() tea.Msg {
		tasks, err := c.Search(ctx, q)
		return searchMsg{query: q, tasks: tasks, err: err}
	}
}

func followAction(ctx context.Context, c Client, a search.Action) tea.Cmd {
	return func() tea.Msg {
		return followMsg{action: a, err: search.Follow(ctx, c, a)}
	}
}
