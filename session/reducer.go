package session

import (
	"errors"
	"fmt"

	"github.com/andrewpaige1/coursemap-api/models"
)

var ErrUnknownAction = errors.New("session: unknown action")

type ActionType string

const (
	ActionLogin         ActionType = "user/login"
	ActionLogout        ActionType = "user/logout"
	ActionSetUniversity ActionType = "user/setUniversity"
	ActionSetDegree     ActionType = "user/setDegree"
	ActionSetMajor      ActionType = "user/setMajor"
	ActionSetSubMajor   ActionType = "user/setSubMajor"
	ActionSetCourses    ActionType = "user/setCourses"
)

// Action is a tagged mutation request. Only the payload field matching Type is read.
type Action struct {
	Type    ActionType
	User    *models.User
	Value   string
	Courses []models.Course
}

func Login(u models.User) Action          { return Action{Type: ActionLogin, User: &u} }
func Logout() Action                      { return Action{Type: ActionLogout} }
func SetUniversity(v string) Action       { return Action{Type: ActionSetUniversity, Value: v} }
func SetDegree(v string) Action           { return Action{Type: ActionSetDegree, Value: v} }
func SetMajor(v string) Action            { return Action{Type: ActionSetMajor, Value: v} }
func SetSubMajor(v string) Action         { return Action{Type: ActionSetSubMajor, Value: v} }
func SetCourses(c []models.Course) Action { return Action{Type: ActionSetCourses, Courses: c} }

type reducerFunc func(State, Action) State

var reducers = map[ActionType]reducerFunc{
	ActionLogin: func(s State, a Action) State {
		s.IsLoggedIn = true
		if a.User != nil {
			u := *a.User
			s.User = &u
		} else {
			s.User = nil
		}
		return s
	},
	ActionLogout: func(State, Action) State {
		return InitialState()
	},
	ActionSetUniversity: func(s State, a Action) State {
		s.University = a.Value
		return s
	},
	ActionSetDegree: func(s State, a Action) State {
		s.Degree = a.Value
		return s
	},
	ActionSetMajor: func(s State, a Action) State {
		s.Major = a.Value
		return s
	},
	ActionSetSubMajor: func(s State, a Action) State {
		s.SubMajor = a.Value
		return s
	},
	ActionSetCourses: func(s State, a Action) State {
		s.Courses = append([]models.Course{}, a.Courses...)
		return s
	},
}

// Reduce applies a to s and returns the new state. s is not modified.
func Reduce(s State, a Action) (State, error) {
	fn, ok := reducers[a.Type]
	if !ok {
		return s, fmt.Errorf("%w: %q", ErrUnknownAction, a.Type)
	}
	return fn(s.Clone(), a), nil
}
