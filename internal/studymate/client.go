package studymate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"mime"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// ErrNoDisplayName is returned when the profile response carries no name.
var ErrNoDisplayName = errors.New("no display name in profile")

// ErrEmptyTitle is returned by AddTask for a blank title.
var ErrEmptyTitle = errors.New("task title is required")

// StatusError is returned for non-success HTTP responses.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s returned status %d: %s", e.Method, e.Path, e.Code, e.Body)
}

// maxErrorBody caps how much of an error response is kept in StatusError.
const maxErrorBody = 512

// Client talks to one StudyMate server.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// NewClient creates a client for the server at baseURL. A zero timeout
// means requests wait until their context ends.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing server url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("server url %q must be absolute", baseURL)
	}
	return &Client{
		baseURL: u,
		http: &http.Client{
			Timeout: timeout,
			// Task links redirect back to the index page; the redirect
			// itself is the success signal.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}, nil
}

// BaseURL returns the server root.
func (c *Client) BaseURL() string { return c.baseURL.String() }

// URL resolves a server path to an absolute URL.
func (c *Client) URL(path string) string {
	return c.baseURL.JoinPath(path).String()
}

// Ask sends one question to the AI endpoint and returns its answer.
func (c *Client) Ask(ctx context.Context, question string) (string, error) {
	var resp askResponse
	if err := c.postJSON(ctx, "/ai_query", askRequest{Question: question}, &resp); err != nil {
		return "", err
	}
	return resp.Answer, nil
}

// Search returns the tasks whose title or description contains q.
func (c *Client) Search(ctx context.Context, q string) ([]Task, error) {
	var resp searchResponse
	if err := c.postJSON(ctx, "/search", searchRequest{Q: q}, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// Tip returns a random study tip.
func (c *Client) Tip(ctx context.Context) (string, error) {
	var resp tipResponse
	if err := c.getJSON(ctx, "/ai_tip", &resp); err != nil {
		return "", err
	}
	return resp.Tip, nil
}

// TopSearches returns the most frequent search queries, most frequent first.
func (c *Client) TopSearches(ctx context.Context) ([]SearchCount, error) {
	var resp topSearchesResponse
	if err := c.getJSON(ctx, "/top_searches", &resp); err != nil {
		return nil, err
	}
	out := make([]SearchCount, 0, len(resp.Top))
	for _, pair := range resp.Top {
		q, _ := pair[0].(string)
		n, _ := pair[1].(float64)
		out = append(out, SearchCount{Query: q, Count: int(n)})
	}
	return out, nil
}

// Navigate follows a navigational link such as /toggle/3. Both success and
// redirect responses count as success.
func (c *Client) Navigate(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(path), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.follow(req, path)
}

// AddTask creates a task through the add form.
func (c *Client) AddTask(ctx context.Context, t NewTask) error {
	title := strings.TrimSpace(t.Title)
	if title == "" {
		return ErrEmptyTitle
	}
	form := url.Values{}
	form.Set("title", title)
	form.Set("description", strings.TrimSpace(t.Description))
	form.Set("date", strings.TrimSpace(t.Date))
	if t.Priority != "" {
		form.Set("priority", t.Priority)
	}
	return c.postForm(ctx, "/add", form)
}

// UpdateProfile submits the profile form with the fields set in u. The
// server keeps the current value of any field left out.
func (c *Client) UpdateProfile(ctx context.Context, u ProfileUpdate) error {
	form := url.Values{}
	for field, v := range map[string]*string{
		"name":   u.Name,
		"course": u.Course,
		"goals":  u.Goals,
		"avatar": u.Avatar,
	} {
		if v != nil {
			form.Set(field, *v)
		}
	}
	if len(form) == 0 {
		return nil
	}
	return c.postForm(ctx, "/profile", form)
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(path), strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.follow(req, path)
}

// follow sends a page request whose response body is not needed. Anything
// below 400, redirects included, is success.
func (c *Client) follow(req *http.Request, path string) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return statusError(req.Method, path, resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// nameField matches the value of the name input on the rendered profile page.
var nameField = regexp.MustCompile(`name" value="([^"]+)"`)

// Profile fetches the current user's profile. JSON responses are decoded
// directly; an HTML profile page falls back to reading the name input.
func (c *Client) Profile(ctx context.Context) (Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL("/profile"), nil)
	if err != nil {
		return Profile{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json, text/html;q=0.9")

	resp, err := c.http.Do(req)
	if err != nil {
		return Profile{}, fmt.Errorf("GET /profile: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Profile{}, statusError(http.MethodGet, "/profile", resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Profile{}, fmt.Errorf("reading /profile: %w", err)
	}

	var p Profile
	if isJSON(resp.Header.Get("Content-Type")) {
		if err := json.Unmarshal(body, &p); err != nil {
			return Profile{}, fmt.Errorf("decoding /profile: %w", err)
		}
	} else if m := nameField.FindSubmatch(body); m != nil {
		p.Name = html.UnescapeString(string(m[1]))
	}

	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return Profile{}, ErrNoDisplayName
	}
	return p, nil
}

// DisplayName returns the user's display name.
func (c *Client) DisplayName(ctx context.Context) (string, error) {
	p, err := c.Profile(ctx)
	if err != nil {
		return "", err
	}
	return p.Name, nil
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshalling %s request: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(path), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doJSON(req, path, out)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(path), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.doJSON(req, path, out)
}

func (c *Client) doJSON(req *http.Request, path string, out any) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(req.Method, path, resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

func statusError(method, path string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{
		Method: method,
		Path:   path,
		Code:   resp.StatusCode,
		Body:   strings.TrimSpace(string(body)),
	}
}

func isJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	return err == nil && (mt == "application/json" || strings.HasSuffix(mt, "+json"))
}
