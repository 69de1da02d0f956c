package wizard

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/andrewpaige1/coursemap-api/forms"
	"github.com/andrewpaige1/coursemap-api/models"
	"github.com/andrewpaige1/coursemap-api/session"
)

// Controller owns one browser session: its session store, its wizard state
// and its course form draft.
type Controller struct {
	mu      sync.Mutex
	store   *session.Store
	state   State
	catalog []models.Course
	courses *forms.CourseForm
	logger  *zap.Logger
}

// NewController starts at the state derived from the store contents.
func NewController(store *session.Store, catalog []models.Course, logger *zap.Logger) *Controller {
	return &Controller{
		store:   store,
		state:   Derive(store.Snapshot(), 0),
		catalog: catalog,
		courses: forms.NewCourseForm(),
		logger:  logger,
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Session() session.State {
	return c.store.Snapshot()
}

func (c *Controller) CourseForm() *forms.CourseForm {
	return c.courses
}

func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return render(c.state, c.store.Snapshot())
}

func (c *Controller) Profile() ProfileView {
	return NewProfileView(c.store.Snapshot())
}

// Begin leaves the landing page for the login form.
func (c *Controller) Begin() (View, error) {
	return c.apply(EventBegin)
}

// Login records the user and moves to program selection.
func (c *Controller) Login(u models.User) (View, error) {
	return c.apply(EventLogin, session.Login(u))
}

// SelectProgram stores the selection, loads the program catalog and shows
// the dashboard.
func (c *Controller) SelectProgram(sel forms.Selection) (View, error) {
	return c.apply(EventSelectProgram,
		session.SetUniversity(sel.University),
		session.SetDegree(sel.Degree),
		session.SetMajor(sel.Major),
		session.SetSubMajor(sel.SubMajor),
		session.SetCourses(c.catalog),
	)
}

// Logout resets the session and returns to the landing page.
func (c *Controller) Logout() (View, error) {
	v, err := c.apply(EventLogout, session.Logout())
	if err == nil {
		c.courses.Reset()
	}
	return v, err
}

// SubmitCourses hands rows to s through the course form. Only a session
// that has reached the dashboard may submit.
func (c *Controller) SubmitCourses(ctx context.Context, rows []models.CourseFormInput, s forms.Submitter) ([]models.AnalyzedCourseNode, View, error) {
	if state := c.State(); state != Dashboard {
		return nil, c.View(), fmt.Errorf("%w: session is on %s", ErrNotOnDashboard, state)
	}
	nodes, err := c.courses.SubmitRows(ctx, rows, s)
	return nodes, c.View(), err
}

func (c *Controller) apply(e Event, actions ...session.Action) (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := Transition(c.state, e)
	if err != nil {
		return render(c.state, c.store.Snapshot()), err
	}

	for _, a := range actions {
		if _, err := c.store.Dispatch(a); err != nil {
			return render(c.state, c.store.Snapshot()), err
		}
	}

	c.logger.Debug("Wizard transition",
		zap.Stringer("from", c.state),
		zap.Stringer("event", e),
		zap.Stringer("to", next),
	)
	c.state = next
	return render(next, c.store.Snapshot()), nil
}
