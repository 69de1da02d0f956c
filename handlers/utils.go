package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/andrewpaige1/coursemap-api/analysis"
	"github.com/andrewpaige1/coursemap-api/forms"
	"github.com/andrewpaige1/coursemap-api/middleware"
	"github.com/andrewpaige1/coursemap-api/wizard"
)

type errorResponse struct {
	Message string       `json:"message"`
	Fields  []string     `json:"fields,omitempty"`
	View    *wizard.View `json:"view,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto HTTP statuses and user-facing messages.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, view *wizard.View) {
	resp := errorResponse{Message: err.Error(), View: view}
	status := http.StatusInternalServerError

	var ve *forms.ValidationError
	switch {
	case errors.As(err, &ve):
		status = http.StatusBadRequest
		resp.Message = ve.Message
		resp.Fields = ve.Fields
	case errors.Is(err, wizard.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, wizard.ErrNotOnDashboard):
		status = http.StatusConflict
		resp.Message = "Select your program before adding courses."
	case errors.Is(err, forms.ErrSubmitting):
		status = http.StatusConflict
		resp.Message = "Courses are already being processed."
	case errors.Is(err, analysis.ErrBatchFailed):
		status = http.StatusBadGateway
		resp.Message = "Error processing courses. Please try again."
	default:
		resp.Message = "Internal server error"
	}

	if status >= http.StatusInternalServerError {
		h.Logger.Error("Request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	writeJSON(w, status, resp)
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &forms.ValidationError{Message: "Invalid request body", Fields: []string{err.Error()}}
	}
	return nil
}

// controller returns the wizard controller of the requesting browser.
func (h *Handler) controller(w http.ResponseWriter, r *http.Request) (*wizard.Controller, bool) {
	c, ok := middleware.Controller(r.Context())
	if !ok {
		h.Logger.Error("No wizard session on request", zap.String("path", r.URL.Path))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return nil, false
	}
	return c, true
}

// startSession registers the requesting browser's wizard session, issuing
// its cookie when it is new.
func (h *Handler) startSession(w http.ResponseWriter, r *http.Request) (*wizard.Controller, bool) {
	c, err := middleware.StartSession(r.Context())
	if err != nil {
		h.Logger.Error("Failed to start wizard session", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return nil, false
	}
	return c, true
}
