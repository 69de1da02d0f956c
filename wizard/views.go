package wizard

import (
	"strings"

	"github.com/andrewpaige1/coursemap-api/forms"
	"github.com/andrewpaige1/coursemap-api/models"
	"github.com/andrewpaige1/coursemap-api/session"
)

const (
	ColorCore     = "#2563eb"
	ColorMajor    = "#059669"
	ColorSubMajor = "#a21caf"
	ColorElective = "#f59e42"
	ColorDefault  = "#64748b"
)

// CategoryColor is the card accent for a course category.
func CategoryColor(c models.Category) string {
	switch c {
	case models.CategoryCore:
		return ColorCore
	case models.CategoryMajor:
		return ColorMajor
	case models.CategorySubMajor:
		return ColorSubMajor
	case models.CategoryElective:
		return ColorElective
	default:
		return ColorDefault
	}
}

// View is the render model of the current wizard step. Exactly one of the
// step fields is set, matching State.
type View struct {
	State     State          `json:"state"`
	Landing   *LandingView   `json:"landing,omitempty"`
	Login     *LoginView     `json:"login,omitempty"`
	Program   *ProgramView   `json:"program,omitempty"`
	Dashboard *DashboardView `json:"dashboard,omitempty"`
}

type LandingView struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Action  string `json:"action"`
}

type LoginView struct {
	Title  string   `json:"title"`
	Fields []string `json:"fields"`
}

type ProgramView struct {
	Title        string          `json:"title"`
	Universities []forms.Option  `json:"universities"`
	Degrees      []forms.Option  `json:"degrees"`
	Majors       []forms.Option  `json:"majors"`
	SubMajors    []forms.Option  `json:"subMajors"`
	Defaults     forms.Selection `json:"defaults"`
}

type DashboardView struct {
	Greeting   string `json:"greeting"`
	Heading    string `json:"heading"`
	Subheading string `json:"subheading"`
	Cards      []Card `json:"cards"`
}

// Card is one course tile on the dashboard.
type Card struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Category models.Category `json:"category"`
	Color    string          `json:"color"`
	Detail   string          `json:"detail"`
}

func render(state State, s session.State) View {
	v := View{State: state}
	switch state {
	case Landing:
		v.Landing = &LandingView{
			Title:   "Welcome to Learning Mind Map",
			Message: "Visualize your degree, major, and electives as an interactive mind map. Start by logging in and selecting your university and study plan.",
			Action:  "Login",
		}
	case LoggingIn:
		v.Login = &LoginView{Title: "Login", Fields: []string{"email", "password"}}
	case SelectingProgram:
		v.Program = NewProgramView()
	case Dashboard:
		v.Dashboard = NewDashboardView(s)
	}
	return v
}

func NewProgramView() *ProgramView {
	return &ProgramView{
		Title:        "Select your university and degree",
		Universities: forms.Universities,
		Degrees:      forms.Degrees,
		Majors:       forms.Majors,
		SubMajors:    forms.SubMajors,
		Defaults:     forms.DefaultSelection(),
	}
}

func NewDashboardView(s session.State) *DashboardView {
	d := &DashboardView{
		Greeting:   "Welcome, " + displayName(s.User, "Student") + "!",
		Heading:    strings.ToUpper(s.University) + " - " + words(s.Degree),
		Subheading: "Major: " + words(s.Major) + ", Sub-major: " + words(s.SubMajor),
		Cards:      make([]Card, 0, len(s.Courses)),
	}
	for _, c := range s.Courses {
		d.Cards = append(d.Cards, Card{
			ID:       c.ID,
			Name:     c.Name,
			Category: c.Category,
			Color:    CategoryColor(c.Category),
			Detail:   cardDetail(c),
		})
	}
	return d
}

func cardDetail(c models.Course) string {
	parts := []string{string(c.Category)}
	if c.Major != "" {
		parts = append(parts, c.Major)
	}
	if c.SubMajor != "" {
		parts = append(parts, c.SubMajor)
	}
	return strings.Join(parts, " | ")
}

// ProfileView is the standalone user page.
type ProfileView struct {
	Initial    string          `json:"initial"`
	Name       string          `json:"name"`
	University string          `json:"university"`
	Degree     string          `json:"degree"`
	Major      string          `json:"major"`
	SubMajor   string          `json:"subMajor"`
	Courses    []ProfileCourse `json:"courses"`
	NoCourses  bool            `json:"noCourses"`
}

type ProfileCourse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Category models.Category `json:"category"`
}

func NewProfileView(s session.State) ProfileView {
	p := ProfileView{
		Initial:    "U",
		Name:       displayName(s.User, "User"),
		University: orDefault(strings.ToUpper(s.University), "No university selected"),
		Degree:     orDefault(words(s.Degree), "-"),
		Major:      orDefault(words(s.Major), "-"),
		SubMajor:   orDefault(words(s.SubMajor), "-"),
		Courses:    make([]ProfileCourse, 0, len(s.Courses)),
		NoCourses:  len(s.Courses) == 0,
	}
	if s.User != nil && s.User.Email != "" {
		p.Initial = strings.ToUpper(string([]rune(s.User.Email)[:1]))
	}
	for _, c := range s.Courses {
		p.Courses = append(p.Courses, ProfileCourse{ID: c.ID, Name: c.Name, Category: c.Category})
	}
	return p
}

func displayName(u *models.User, fallback string) string {
	if u == nil || u.Email == "" {
		return fallback
	}
	return u.Email
}

// words turns slug values like "bcs-honours" into "bcs honours".
func words(slug string) string {
	return strings.ReplaceAll(slug, "-", " ")
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
