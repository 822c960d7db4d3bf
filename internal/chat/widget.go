// Package chat implements the StudyMate assistant chat widget: a panel that
// is either open or closed, greets the user by name when it opens, and
// exchanges one question and answer with the server per send.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ziadkadry99/studymate/internal/logging"
)

// Transcript texts.
const (
	AssistantName   = "StudyMate"
	PendingText     = "Thinking..."
	NoAnswerText    = "Sorry, no answer."
	ErrorText       = "AI error: couldn't reach server."
	GenericGreeting = "👋 Hi! I'm StudyMate — ask me anything."
	userPrefix      = "You: "
)

var (
	// ErrClosed is returned when sending while the panel is closed.
	ErrClosed = errors.New("chat is closed")
	// ErrBusy is returned when sending while an answer is still pending.
	ErrBusy = errors.New("waiting for the previous answer")
	// ErrEmpty is returned by Begin for blank input.
	ErrEmpty = errors.New("empty message")
)

// State is the open/closed state of the panel.
type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// From tags who a transcript line came from.
type From string

const (
	FromAssistant From = "ai"
	FromUser      From = "user"
)

// Line is one transcript entry.
type Line struct {
	ID      string
	From    From
	Text    string
	Pending bool
}

// Client is the server side of the widget.
type Client interface {
	DisplayName(ctx context.Context) (string, error)
	Ask(ctx context.Context, question string) (string, error)
}

// Exchange identifies a question waiting for its answer.
type Exchange struct {
	PendingID string
	Question  string
}

// Widget holds the panel state and transcript for one session.
type Widget struct {
	client Client
	logger *zap.Logger

	mu      sync.Mutex
	state   State
	label   string
	lines   []Line
	pending string
}

// New returns a closed widget.
func New(client Client, logger *zap.Logger) *Widget {
	return &Widget{
		client: client,
		logger: logging.OrNop(logger).Named("chat"),
		label:  AssistantName,
	}
}

// Toggle opens a closed panel, greeting the user, or closes an open one.
// It returns the new state.
func (w *Widget) Toggle(ctx context.Context) State {
	if !w.Open() {
		w.Close()
		return Closed
	}
	name, err := w.client.DisplayName(ctx)
	w.Greet(name, err)
	return Open
}

// Open moves a closed panel to open and reports whether it did. The caller
// fetches the display name and passes it to Greet.
func (w *Widget) Open() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == Open {
		return false
	}
	w.state = Open
	return true
}

// Close closes the panel. The transcript is kept.
func (w *Widget) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state = Closed
}

// Greet sets the panel label and appends the greeting line. A fetch error
// or blank name produces the generic greeting.
func (w *Widget) Greet(name string, err error) {
	name = strings.TrimSpace(name)
	if err != nil || name == "" {
		if err != nil {
			w.logger.Warn("loading display name", zap.Error(err))
		}
		w.mu.Lock()
		defer w.mu.Unlock()
		w.label = AssistantName
		w.appendLocked(FromAssistant, GenericGreeting, false)
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.label = fmt.Sprintf("Hi %s — %s", name, AssistantName)
	w.appendLocked(FromAssistant, fmt.Sprintf("👋 Hi %s! I'm StudyMate — ask me anything about your studies or tasks.", name), false)
}

// Begin records a question: the user line followed by a pending assistant
// line. Only one exchange may be pending at a time.
func (w *Widget) Begin(input string) (Exchange, error) {
	q := strings.TrimSpace(input)

	w.mu.Lock()
	defer w.mu.Unlock()
	switch {
	case w.state != Open:
		return Exchange{}, ErrClosed
	case q == "":
		return Exchange{}, ErrEmpty
	case w.pending != "":
		return Exchange{}, ErrBusy
	}

	w.appendLocked(FromUser, userPrefix+q, false)
	id := w.appendLocked(FromAssistant, PendingText, true)
	w.pending = id
	return Exchange{PendingID: id, Question: q}, nil
}

// Finish replaces the pending line with the answer, a fixed text for an
// empty answer, or the error line when the request failed.
func (w *Widget) Finish(pendingID, answer string, err error) {
	text := strings.TrimSpace(answer)
	switch {
	case err != nil:
		w.logger.Error("ai query failed", zap.Error(err))
		text = ErrorText
	case text == "":
		text = NoAnswerText
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending == pendingID {
		w.pending = ""
	}
	for i := range w.lines {
		if w.lines[i].ID == pendingID {
			w.lines[i].Text = text
			w.lines[i].Pending = false
			return
		}
	}
	w.appendLocked(FromAssistant, text, false)
}

// Send asks one question and waits for the answer. Blank input does
// nothing. Request failures end up in the transcript, not in the returned
// error.
func (w *Widget) Send(ctx context.Context, input string) error {
	ex, err := w.Begin(input)
	if errors.Is(err, ErrEmpty) {
		return nil
	}
	if err != nil {
		return err
	}
	answer, err := w.client.Ask(ctx, ex.Question)
	w.Finish(ex.PendingID, answer, err)
	return nil
}

// State returns the panel state.
func (w *Widget) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Busy reports whether an answer is pending.
func (w *Widget) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending != ""
}

// Label returns the panel title.
func (w *Widget) Label() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.label
}

// Lines returns a copy of the transcript.
func (w *Widget) Lines() []Line {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Line, len(w.lines))
	copy(out, w.lines)
	return out
}

func (w *Widget) appendLocked(from From, text string, pending bool) string {
	id := uuid.NewString()
	w.lines = append(w.lines, Line{ID: id, From: from, Text: text, Pending: pending})
	return id
}
