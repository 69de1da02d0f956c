// Package session holds the per-user session state and the reducer that
// mutates it. The store performs no validation; callers own field ordering
// (a major may be set before a university).
package session

import "github.com/andrewpaige1/coursemap-api/models"

type State struct {
	IsLoggedIn bool            `json:"isLoggedIn"`
	User       *models.User    `json:"user"`
	University string          `json:"university"`
	Degree     string          `json:"degree"`
	Major      string          `json:"major"`
	SubMajor   string          `json:"subMajor"`
	Courses    []models.Course `json:"courses"`
}

// InitialState is the state at process start and after logout.
func InitialState() State {
	return State{Courses: []models.Course{}}
}

// Clone returns a copy that shares no memory with s.
func (s State) Clone() State {
	out := s
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	out.Courses = append([]models.Course{}, s.Courses...)
	return out
}
