package handlers

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/andrewpaige1/coursemap-api/analysis"
	"github.com/andrewpaige1/coursemap-api/config"
	"github.com/andrewpaige1/coursemap-api/middleware"
	"github.com/andrewpaige1/coursemap-api/storage"
	"github.com/andrewpaige1/coursemap-api/wizard"
)

type Handler struct {
	Storage      *storage.Adapter
	Orchestrator *analysis.Orchestrator
	// Analyzer serves the /api/analyzeCourse endpoint.
	Analyzer analysis.Analyzer
	Secret   []byte
	Env      config.Environment
	Logger   *zap.Logger
	Now      func() time.Time
}

// NewRouter wires every route and the middleware chain except CORS.
func NewRouter(h *Handler, sessions *wizard.Sessions, gatherer prometheus.Gatherer) http.Handler {
	if h.Now == nil {
		h.Now = time.Now
	}
	mux := http.NewServeMux()

	// Only wizard and course routes carry a browser session.
	wizardSession := middleware.WizardSession(sessions, h.Env.CookieSecure, h.Logger)
	withSession := func(fn http.HandlerFunc) http.Handler {
		return wizardSession(fn)
	}

	// Wizard
	mux.Handle("GET /api/wizard", withSession(h.GetWizard))
	mux.Handle("POST /api/wizard/begin", withSession(h.BeginWizard))
	mux.Handle("POST /api/login", withSession(h.Login))
	mux.Handle("POST /api/logout", withSession(h.Logout))
	mux.HandleFunc("GET /api/program/options", h.GetProgramOptions)
	mux.Handle("POST /api/program", withSession(h.SelectProgram))
	mux.Handle("GET /api/user", withSession(h.GetUser))

	// Courses
	mux.Handle("POST /api/courses", withSession(middleware.RequireUser(h.SubmitCourses)))
	mux.HandleFunc("GET /api/nodes", h.GetNodes)
	mux.HandleFunc("DELETE /api/nodes", middleware.RequireUser(h.ClearNodes))

	// Analysis service stub
	mux.HandleFunc("POST "+analysis.AnalyzePath, h.AnalyzeCourse)

	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	var handler http.Handler = mux
	handler = middleware.EnsureValidToken(h.Secret, h.Logger)(handler)
	handler = middleware.Logger(h.Logger)(handler)
	handler = chimw.Recoverer(handler)
	handler = chimw.RequestID(handler)
	return handler
}
