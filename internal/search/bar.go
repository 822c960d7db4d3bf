// Package search implements the task search bar: a query posted to the
// server replaces the rendered list of task cards wholesale.
package search

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/ziadkadry99/studymate/internal/logging"
	"github.com/ziadkadry99/studymate/internal/studymate"
)

// Searcher runs a task search.
type Searcher interface {
	Search(ctx context.Context, q string) ([]studymate.Task, error)
}

// Navigator follows a card's action link.
type Navigator interface {
	Navigate(ctx context.Context, path string) error
}

// ActionKind identifies a card link.
type ActionKind string

const (
	ActionComplete ActionKind = "complete"
	ActionDelete   ActionKind = "delete"
)

// Action is a navigational link on a card.
type Action struct {
	Kind  ActionKind `json:"kind"`
	Label string     `json:"label"`
	Href  string     `json:"href"`
}

// Card is one rendered search result.
type Card struct {
	ID       int       `json:"id"`
	Title    string    `json:"title"`
	Priority string    `json:"priority"`
	Date     string    `json:"date"`
	Actions  [2]Action `json:"actions"`
}

// Meta returns the card's "priority • date" line.
func (c Card) Meta() string {
	return c.Priority + " • " + c.Date
}

// CardFor builds the card for a task.
func CardFor(t studymate.Task) Card {
	return Card{
		ID:       t.ID,
		Title:    t.Title,
		Priority: t.Priority,
		Date:     t.Date,
		Actions: [2]Action{
			{Kind: ActionComplete, Label: "Complete", Href: fmt.Sprintf("/toggle/%d", t.ID)},
			{Kind: ActionDelete, Label: "Delete", Href: fmt.Sprintf("/delete/%d", t.ID)},
		},
	}
}

// Bar holds the query and the rendered results for one session.
type Bar struct {
	client Searcher
	logger *zap.Logger

	mu    sync.Mutex
	query string
	cards []Card
}

// New returns a search bar with an empty result list.
func New(client Searcher, logger *zap.Logger) *Bar {
	return &Bar{
		client: client,
		logger: logging.OrNop(logger).Named("search"),
	}
}

// Normalize trims a raw query. ok is false when there is nothing to search.
func Normalize(raw string) (q string, ok bool) {
	q = strings.TrimSpace(raw)
	return q, q != ""
}

// Submit runs the query and replaces the result list. A blank query does
// nothing. On failure the previous list is kept and the error is logged
// and returned.
func (b *Bar) Submit(ctx context.Context, raw string) error {
	q, ok := Normalize(raw)
	if !ok {
		return nil
	}
	tasks, err := b.client.Search(ctx, q)
	return b.Apply(q, tasks, err)
}

// Apply installs the outcome of a search for q. It is the second half of
// Submit for callers that run the request themselves.
func (b *Bar) Apply(q string, tasks []studymate.Task, err error) error {
	if err != nil {
		b.logger.Error("search failed", zap.String("query", q), zap.Error(err))
		return fmt.Errorf("searching %q: %w", q, err)
	}

	cards := make([]Card, 0, len(tasks))
	for _, t := range tasks {
		cards = append(cards, CardFor(t))
	}

	b.mu.Lock()
	b.query = q
	b.cards = cards
	b.mu.Unlock()

	b.logger.Debug("search results", zap.String("query", q), zap.Int("count", len(cards)))
	return nil
}

// Cards returns a copy of the current result list.
func (b *Bar) Cards() []Card {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Card, len(b.cards))
	copy(out, b.cards)
	return out
}

// Query returns the last query that produced the current list.
func (b *Bar) Query() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.query
}

// Follow activates a card link.
func Follow(ctx context.Context, nav Navigator, a Action) error {
	if err := nav.Navigate(ctx, a.Href); err != nil {
		return fmt.Errorf("%s: %w", strings.ToLower(a.Label), err)
	}
	return nil
}
