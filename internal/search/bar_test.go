package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ziadkadry99/studymate/internal/studymate"
	"github.com/ziadkadry99/studymate/internal/testutil"
	"github.com/ziadkadry99/studymate/internal/theme"
)

type fakeSearcher struct {
	results []studymate.Task
	err     error
	queries []string
}

func (f *fakeSearcher) Search(_ context.Context, q string) ([]studymate.Task, error) {
	f.queries = append(f.queries, q)
	return f.results, f.err
}

func sampleTasks() []studymate.Task {
	return []studymate.Task{
		{ID: 3, Title: "Read chapter 4", Priority: "High", Date: "2026-10-18"},
		{ID: 2, Title: "Lab report", Priority: "Medium", Date: "2026-10-22"},
		{ID: 1, Title: "Flashcards", Priority: "Low", Date: "2026-11-02"},
	}
}

func TestSubmitRendersOneCardPerResult(t *testing.T) {
	client := &fakeSearcher{results: sampleTasks()}
	bar := New(client, nil)

	if err := bar.Submit(context.Background(), "  chapter  "); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(client.queries) != 1 || client.queries[0] != "chapter" {
		t.Errorf("unexpected queries %v", client.queries)
	}

	cards := bar.Cards()
	if len(cards) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(cards))
	}
	for i, c := range cards {
		want := sampleTasks()[i]
		if c.Title != want.Title || c.Priority != want.Priority || c.Date != want.Date {
			t.Errorf("card %d = %+v, want task %+v", i, c, want)
		}
		if len(c.Actions) != 2 {
			t.Errorf("card %d has %d actions", i, len(c.Actions))
		}
	}
	if bar.Query() != "chapter" {
		t.Errorf("Query() = %q", bar.Query())
	}
}

func TestSubmitZeroResultsEmptiesList(t *testing.T) {
	client := &fakeSearcher{results: sampleTasks()}
	bar := New(client, nil)
	ctx := context.Background()

	bar.Submit(ctx, "chapter")
	client.results = nil
	if err := bar.Submit(ctx, "calculus"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if n := len(bar.Cards()); n != 0 {
		t.Errorf("expected empty list, got %d cards", n)
	}
}

func TestSubmitFailureKeepsPreviousList(t *testing.T) {
	client := &fakeSearcher{results: sampleTasks()}
	bar := New(client, nil)
	ctx := context.Background()

	bar.Submit(ctx, "chapter")
	client.err = errors.New("connection refused")
	client.results = nil

	if err := bar.Submit(ctx, "lab"); err == nil {
		t.Fatal("expected error")
	}
	if n := len(bar.Cards()); n != 3 {
		t.Errorf("expected previous 3 cards to stay, got %d", n)
	}
	if bar.Query() != "chapter" {
		t.Errorf("query should stay at the last successful search, got %q", bar.Query())
	}
}

func TestSubmitBlankQueryIsNoop(t *testing.T) {
	client := &fakeSearcher{}
	bar := New(client, nil)

	if err := bar.Submit(context.Background(), "   "); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(client.queries) != 0 {
		t.Errorf("blank query should not reach the server")
	}
}

func TestCardForLinks(t *testing.T) {
	c := CardFor(studymate.Task{ID: 42, Title: "Essay", Priority: "High", Date: "2026-10-19"})

	if c.Actions[0].Kind != ActionComplete || c.Actions[0].Href != "/toggle/42" {
		t.Errorf("unexpected complete action %+v", c.Actions[0])
	}
	if c.Actions[1].Kind != ActionDelete || c.Actions[1].Href != "/delete/42" {
		t.Errorf("unexpected delete action %+v", c.Actions[1])
	}
	if c.Meta() != "High • 2026-10-19" {
		t.Errorf("Meta() = %q", c.Meta())
	}
}

func TestRender(t *testing.T) {
	var cards []Card
	for _, task := range sampleTasks() {
		cards = append(cards, CardFor(task))
	}
	out := Render(cards, theme.PaletteFor(theme.Midnight), 0)

	for _, c := range cards {
		for _, want := range []string{c.Title, c.Meta(), c.Actions[0].Href, c.Actions[1].Href} {
			if !strings.Contains(out, want) {
				t.Errorf("rendered output missing %q", want)
			}
		}
	}
	if got := strings.Count(out, "Complete"); got != 3 {
		t.Errorf("expected 3 Complete links, got %d", got)
	}
	if got := strings.Count(out, "Delete"); got != 3 {
		t.Errorf("expected 3 Delete links, got %d", got)
	}
	if Render(nil, theme.PaletteFor(theme.Purple), 0) != "" {
		t.Error("no cards should render nothing")
	}
}

func TestFollowAgainstServer(t *testing.T) {
	srv := testutil.NewFakeServer()
	defer srv.Close()
	id := srv.AddTask("Essay draft", "High", "2026-10-18")

	client, err := studymate.NewClient(srv.URL, 0)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	bar := New(client, nil)
	ctx := context.Background()

	if err := bar.Submit(ctx, "essay"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	cards := bar.Cards()
	if len(cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(cards))
	}

	if err := Follow(ctx, client, cards[0].Actions[0]); err != nil {
		t.Fatalf("Follow complete: %v", err)
	}
	if task, _ := srv.Task(id); task.Status != "Completed" {
		t.Errorf("expected completed, got %q", task.Status)
	}

	if err := Follow(ctx, client, cards[0].Actions[1]); err != nil {
		t.Fatalf("Follow delete: %v", err)
	}
	if _, ok := srv.Task(id); ok {
		t.Error("expected task deleted")
	}
}
