package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/andrewpaige1/coursemap-api/auth"
	"github.com/andrewpaige1/coursemap-api/forms"
	"github.com/andrewpaige1/coursemap-api/wizard"
)

// GET /api/wizard
func (h *Handler) GetWizard(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, c.View())
}

// POST /api/wizard/begin
//
// Beginning the wizard is what registers a browser session.
func (h *Handler) BeginWizard(w http.ResponseWriter, r *http.Request) {
	c, ok := h.startSession(w, r)
	if !ok {
		return
	}
	view, err := c.Begin()
	if err != nil {
		h.writeError(w, r, err, &view)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// POST /api/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}

	var form forms.LoginForm
	if err := decodeJSON(r, &form); err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	user, err := form.Submit()
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}

	token, err := auth.CreateToken(h.Secret, user.Email, h.Now())
	if err != nil {
		h.Logger.Error("Login: failed to generate token", zap.Error(err))
		h.writeError(w, r, err, nil)
		return
	}

	view, err := c.Login(user)
	if err != nil {
		h.writeError(w, r, err, &view)
		return
	}
	auth.SetCookie(w, token, h.Env.Domain, h.Env.CookieSecure)

	h.Logger.Info("User logged in", zap.String("email", user.Email))
	writeJSON(w, http.StatusOK, view)
}

// POST /api/logout
//
// Logging out an anonymous session is a no-op that still clears the cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}

	view, err := c.Logout()
	if err != nil && !errors.Is(err, wizard.ErrInvalidTransition) {
		h.writeError(w, r, err, &view)
		return
	}
	auth.ClearCookie(w, h.Env.Domain, h.Env.CookieSecure)
	writeJSON(w, http.StatusOK, view)
}

// GET /api/program/options
func (h *Handler) GetProgramOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, wizard.NewProgramView())
}

// POST /api/program
func (h *Handler) SelectProgram(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}

	selector := forms.NewUniversitySelector()
	if err := decodeJSON(r, &selector.Selection); err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	sel, err := selector.Submit()
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}

	view, err := c.SelectProgram(sel)
	if err != nil {
		h.writeError(w, r, err, &view)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// GET /api/user
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, c.Profile())
}
