package studymate_test

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"testing"

	"github.com/ziadkadry99/studymate/internal/studymate"
	"github.com/ziadkadry99/studymate/internal/testutil"
)

func setupTest(t *testing.T) (*studymate.Client, *testutil.FakeServer) {
	t.Helper()
	srv := testutil.NewFakeServer()
	t.Cleanup(srv.Close)

	client, err := studymate.NewClient(srv.URL, 0)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client, srv
}

func TestNewClientRejectsRelativeURL(t *testing.T) {
	if _, err := studymate.NewClient("localhost", 0); err == nil {
		t.Error("expected error for URL without scheme")
	}
}

func TestURL(t *testing.T) {
	client, err := studymate.NewClient("http://127.0.0.1:5000/", 0)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if got := client.URL("/toggle/7"); got != "http://127.0.0.1:5000/toggle/7" {
		t.Errorf("URL() = %q", got)
	}
}

func TestProfileJSON(t *testing.T) {
	client, srv := setupTest(t)
	srv.SetProfile("Ada", false)

	name, err := client.DisplayName(context.Background())
	if err != nil {
		t.Fatalf("DisplayName: %v", err)
	}
	if name != "Ada" {
		t.Errorf("expected Ada, got %q", name)
	}
}

func TestProfileHTMLFallback(t *testing.T) {
	client, srv := setupTest(t)
	srv.SetProfile("Grace & Co", true)

	name, err := client.DisplayName(context.Background())
	if err != nil {
		t.Fatalf("DisplayName: %v", err)
	}
	if name != "Grace & Co" {
		t.Errorf("expected unescaped name, got %q", name)
	}
}

func TestProfileWithoutName(t *testing.T) {
	client, srv := setupTest(t)
	srv.SetProfile("", false)

	if _, err := client.DisplayName(context.Background()); !errors.Is(err, studymate.ErrNoDisplayName) {
		t.Errorf("expected ErrNoDisplayName, got %v", err)
	}
}

func TestProfileServerError(t *testing.T) {
	client, srv := setupTest(t)
	srv.SetStatus("/profile", http.StatusInternalServerError)

	_, err := client.Profile(context.Background())
	var se *studymate.StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", se.Code)
	}
}

func TestAsk(t *testing.T) {
	client, srv := setupTest(t)
	srv.SetAnswer(func(q string) string { return "Answer to " + q })

	answer, err := client.Ask(context.Background(), "what is recursion?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if answer != "Answer to what is recursion?" {
		t.Errorf("unexpected answer %q", answer)
	}
}

func TestAskUnreachable(t *testing.T) {
	client, srv := setupTest(t)
	srv.Close()

	if _, err := client.Ask(context.Background(), "hello"); err == nil {
		t.Error("expected transport error")
	}
}

func TestSearch(t *testing.T) {
	client, srv := setupTest(t)
	srv.AddTask("Read chapter 4", "High", "2026-10-20")
	srv.AddTask("Physics lab report", "Medium", "2026-10-25")
	srv.AddTask("Chapter 5 exercises", "Low", "2026-11-01")

	results, err := client.Search(context.Background(), "chapter")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if r.ID == 0 || r.Priority == "" || r.Date == "" {
			t.Errorf("incomplete result %+v", r)
		}
	}

	none, err := client.Search(context.Background(), "calculus")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no results, got %d", len(none))
	}
}

func TestTopSearches(t *testing.T) {
	client, _ := setupTest(t)
	ctx := context.Background()

	for _, q := range []string{"exam", "exam", "lab"} {
		if _, err := client.Search(ctx, q); err != nil {
			t.Fatalf("Search(%q): %v", q, err)
		}
	}

	top, err := client.TopSearches(ctx)
	if err != nil {
		t.Fatalf("TopSearches: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(top))
	}
	if top[0].Query != "exam" || top[0].Count != 2 {
		t.Errorf("unexpected top entry %+v", top[0])
	}
}

func TestTip(t *testing.T) {
	client, _ := setupTest(t)

	tip, err := client.Tip(context.Background())
	if err != nil {
		t.Fatalf("Tip: %v", err)
	}
	if tip == "" {
		t.Error("expected a tip")
	}
}

func TestNavigateDoesNotFollowRedirect(t *testing.T) {
	client, srv := setupTest(t)
	id := srv.AddTask("Essay draft", "High", "2026-10-18")

	if err := client.Navigate(context.Background(), "/toggle/"+strconv.Itoa(id)); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	task, _ := srv.Task(id)
	if task.Status != "Completed" {
		t.Errorf("expected task completed, got %q", task.Status)
	}
	if srv.Hits("/") != 0 {
		t.Error("redirect to / should not be followed")
	}
}

func TestNavigateError(t *testing.T) {
	client, srv := setupTest(t)
	srv.SetStatus("/delete/1", http.StatusNotFound)

	if err := client.Navigate(context.Background(), "/delete/1"); err == nil {
		t.Error("expected error for 404")
	}
}

func TestAddTaskThenSearch(t *testing.T) {
	client, srv := setupTest(t)
	ctx := context.Background()

	err := client.AddTask(ctx, studymate.NewTask{
		Title:       "  Physics problem set ",
		Description: "chapter 3 exercises",
		Date:        "2026-12-01",
		Priority:    "Low",
	})
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if srv.Hits("/") != 0 {
		t.Error("redirect to / should not be followed")
	}

	tasks, err := client.Search(ctx, "exercises")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	got := tasks[0]
	if got.Title != "Physics problem set" || got.Priority != "Low" || got.Date != "2026-12-01" || got.Status != "Pending" {
		t.Errorf("unexpected task %+v", got)
	}
}

func TestAddTaskWithoutPriority(t *testing.T) {
	client, _ := setupTest(t)
	ctx := context.Background()

	if err := client.AddTask(ctx, studymate.NewTask{Title: "Undated reading"}); err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	tasks, err := client.Search(ctx, "undated")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Priority != "Medium" {
		t.Errorf("expected server-derived Medium priority, got %+v", tasks)
	}
}

func TestAddTaskEmptyTitle(t *testing.T) {
	client, srv := setupTest(t)

	err := client.AddTask(context.Background(), studymate.NewTask{Title: "   "})
	if !errors.Is(err, studymate.ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
	if srv.Hits("/add") != 0 {
		t.Error("blank title should not reach the server")
	}
}

func TestAddTaskServerError(t *testing.T) {
	client, srv := setupTest(t)
	srv.SetStatus("/add", http.StatusInternalServerError)

	err := client.AddTask(context.Background(), studymate.NewTask{Title: "Essay"})
	var se *studymate.StatusError
	if !errors.As(err, &se) || se.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 StatusError, got %v", err)
	}
}

func TestUpdateProfileKeepsOmittedFields(t *testing.T) {
	client, srv := setupTest(t)
	ctx := context.Background()

	course := "Biology"
	if err := client.UpdateProfile(ctx, studymate.ProfileUpdate{Course: &course}); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	name := "Rosalind"
	if err := client.UpdateProfile(ctx, studymate.ProfileUpdate{Name: &name}); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}

	p := srv.Profile()
	if p.Name != "Rosalind" || p.Course != "Biology" {
		t.Errorf("unexpected profile %+v", p)
	}

	got, err := client.DisplayName(ctx)
	if err != nil {
		t.Fatalf("DisplayName: %v", err)
	}
	if got != "Rosalind" {
		t.Errorf("greeting name = %q, want Rosalind", got)
	}
}

func TestUpdateProfileNothingToChange(t *testing.T) {
	client, srv := setupTest(t)

	if err := client.UpdateProfile(context.Background(), studymate.ProfileUpdate{}); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if srv.Hits("/profile") != 0 {
		t.Error("empty update should not reach the server")
	}
}
