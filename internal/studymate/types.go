// Package studymate is a client for the StudyMate web application's
// JSON and navigational endpoints.
package studymate

// Task is one task as returned by the search endpoint.
type Task struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	Description      string  `json:"description,omitempty"`
	Date             string  `json:"date"`
	Priority         string  `json:"priority"`
	Status           string  `json:"status,omitempty"`
	CreatedAt        string  `json:"created_at,omitempty"`
	CompletedAt      *string `json:"completed_at,omitempty"`
	TimeTakenMinutes *int    `json:"time_taken_minutes,omitempty"`
}

// Profile is the structured profile contract.
type Profile struct {
	Name   string `json:"name"`
	Course string `json:"course,omitempty"`
	Goals  string `json:"goals,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// NewTask is the add-task form. An empty Priority lets the server derive
// one from the deadline.
type NewTask struct {
	Title       string
	Description string
	Date        string // YYYY-MM-DD
	Priority    string
}

// ProfileUpdate holds the profile fields to change; nil fields are left
// as they are.
type ProfileUpdate struct {
	Name   *string
	Course *string
	Goals  *string
	Avatar *string
}

// SearchCount is one entry of the most frequent search queries.
type SearchCount struct {
	Query string
	Count int
}

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Answer string `json:"answer"`
}

type searchRequest struct {
	Q string `json:"q"`
}

type searchResponse struct {
	Results []Task `json:"results"`
}

type tipResponse struct {
	Tip string `json:"tip"`
}

type topSearchesResponse struct {
	Top [][2]any `json:"top"`
}
