// Package testutil provides testing utilities.
package testutil

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ziadkadry99/studymate/internal/studymate"
)

// FakeServer is an in-memory StudyMate server for client tests.
type FakeServer struct {
	*httptest.Server

	mu       sync.Mutex
	tasks    []studymate.Task
	searches map[string]int
	hits     map[string]int

	profile     studymate.Profile
	profileHTML bool
	answer      func(question string) string
	tip         string
	status      map[string]int
}

// NewFakeServer starts a fake server. Callers must Close it.
func NewFakeServer() *FakeServer {
	f := &FakeServer{
		searches:    make(map[string]int),
		hits:        make(map[string]int),
		status:      make(map[string]int),
		profile:     studymate.Profile{Name: "Student"},
		tip:         "Try 25-minute focused sessions with 5-minute breaks (Pomodoro).",
	}
	f.Server = httptest.NewServer(f.router())
	return f
}

// SetProfile sets the display name served by /profile. asHTML serves the
// rendered profile form instead of JSON.
func (f *FakeServer) SetProfile(name string, asHTML bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profile.Name = name
	f.profileHTML = asHTML
}

// Profile returns the stored profile.
func (f *FakeServer) Profile() studymate.Profile {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.profile
}

// SetAnswer replaces the /ai_query answer function. Nil echoes the question.
func (f *FakeServer) SetAnswer(fn func(question string) string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.answer = fn
}

// SetStatus makes every request to path fail with code. Zero clears it.
func (f *FakeServer) SetStatus(path string, code int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if code == 0 {
		delete(f.status, path)
		return
	}
	f.status[path] = code
}

// AddTask adds a pending task and returns its ID.
func (f *FakeServer) AddTask(title, priority, date string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.insertLocked(studymate.Task{Title: title, Priority: priority, Date: date})
}

// insertLocked prepends t as a new pending task, the way the server lists
// newest first.
func (f *FakeServer) insertLocked(t studymate.Task) int {
	id := 1
	for _, existing := range f.tasks {
		if existing.ID >= id {
			id = existing.ID + 1
		}
	}
	t.ID = id
	t.Status = "Pending"
	f.tasks = append([]studymate.Task{t}, f.tasks...)
	return id
}

// Task returns the task with the given ID.
func (f *FakeServer) Task(id int) (studymate.Task, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return studymate.Task{}, false
}

// Hits returns how many requests reached path.
func (f *FakeServer) Hits(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

func (f *FakeServer) router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(f.count)
	r.Use(f.injectStatus)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>index</body></html>"))
	})
	r.Get("/profile", f.handleProfile)
	r.Post("/profile", f.handleUpdateProfile)
	r.Post("/add", f.handleAdd)
	r.Post("/ai_query", f.handleAsk)
	r.Post("/search", f.handleSearch)
	r.Get("/ai_tip", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		tip := f.tip
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]string{"tip": tip})
	})
	r.Get("/top_searches", f.handleTopSearches)
	r.Get("/toggle/{id}", f.handleToggle)
	r.Get("/delete/{id}", f.handleDelete)
	return r
}

func (f *FakeServer) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if strings.HasPrefix(path, "/toggle/") {
			path = "/toggle"
		} else if strings.HasPrefix(path, "/delete/") {
			path = "/delete"
		}
		f.mu.Lock()
		f.hits[path]++
		f.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (f *FakeServer) injectStatus(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		code := f.status[r.URL.Path]
		f.mu.Unlock()
		if code != 0 {
			http.Error(w, http.StatusText(code), code)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *FakeServer) handleProfile(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	p, asHTML := f.profile, f.profileHTML
	f.mu.Unlock()

	if asHTML {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, `<form method="post"><input type="text" name="name" value="%s"><input name="course" value="%s"></form>`,
			html.EscapeString(p.Name), html.EscapeString(p.Course))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// handleUpdateProfile changes only the fields present in the form.
func (f *FakeServer) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	f.mu.Lock()
	for field, dst := range map[string]*string{
		"name":   &f.profile.Name,
		"course": &f.profile.Course,
		"goals":  &f.profile.Goals,
		"avatar": &f.profile.Avatar,
	} {
		if vs, ok := r.PostForm[field]; ok && len(vs) > 0 {
			*dst = vs[0]
		}
	}
	f.mu.Unlock()
	http.Redirect(w, r, "/profile", http.StatusFound)
}

func (f *FakeServer) handleAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	date := strings.TrimSpace(r.PostForm.Get("date"))
	priority := r.PostForm.Get("priority")
	if priority == "" {
		priority = PriorityByDeadline(date, time.Now())
	}

	f.mu.Lock()
	f.insertLocked(studymate.Task{
		Title:       strings.TrimSpace(r.PostForm.Get("title")),
		Description: strings.TrimSpace(r.PostForm.Get("description")),
		Date:        date,
		Priority:    priority,
	})
	f.mu.Unlock()
	http.Redirect(w, r, "/", http.StatusFound)
}

// PriorityByDeadline is the server's fallback priority: High within two
// days, Medium within a week, Low after that. Missing or unparsable dates
// are Medium.
func PriorityByDeadline(date string, now time.Time) string {
	due, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return "Medium"
	}
	switch left := due.Sub(now); {
	case left <= 48*time.Hour:
		return "High"
	case left <= 7*24*time.Hour:
		return "Medium"
	default:
		return "Low"
	}
}

func (f *FakeServer) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	q := strings.TrimSpace(req.Question)
	if q == "" {
		writeJSON(w, http.StatusOK, map[string]string{"answer": "Please ask a question."})
		return
	}
	f.mu.Lock()
	fn := f.answer
	f.mu.Unlock()

	answer := "You asked: " + q
	if fn != nil {
		answer = fn(q)
	}
	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

func (f *FakeServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Q string `json:"q"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	q := strings.ToLower(strings.TrimSpace(req.Q))

	f.mu.Lock()
	if q != "" {
		f.searches[q]++
	}
	results := []studymate.Task{}
	for _, t := range f.tasks {
		if strings.Contains(strings.ToLower(t.Title+" "+t.Description), q) {
			results = append(results, t)
		}
	}
	f.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (f *FakeServer) handleTopSearches(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	top := make([][2]any, 0, len(f.searches))
	for q, n := range f.searches {
		top = append(top, [2]any{q, n})
	}
	f.mu.Unlock()

	sort.Slice(top, func(i, j int) bool { return top[i][1].(int) > top[j][1].(int) })
	if len(top) > 10 {
		top = top[:10]
	}
	writeJSON(w, http.StatusOK, map[string]any{"top": top})
}

func (f *FakeServer) handleToggle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	f.mu.Lock()
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			if f.tasks[i].Status == "Pending" {
				f.tasks[i].Status = "Completed"
			} else {
				f.tasks[i].Status = "Pending"
			}
			break
		}
	}
	f.mu.Unlock()
	http.Redirect(w, r, "/", http.StatusFound)
}

func (f *FakeServer) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	f.mu.Lock()
	kept := f.tasks[:0]
	for _, t := range f.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	f.tasks = kept
	f.mu.Unlock()
	http.Redirect(w, r, "/", http.StatusFound)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
