package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/andrewpaige1/coursemap-api/models"
	"github.com/andrewpaige1/coursemap-api/utils"
	"github.com/andrewpaige1/coursemap-api/wizard"
)

type submitCoursesRequest struct {
	Courses []models.CourseFormInput `json:"courses"`
}

type submitCoursesResponse struct {
	Nodes []models.AnalyzedCourseNode `json:"nodes"`
}

// POST /api/courses
func (h *Handler) SubmitCourses(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}

	var req submitCoursesRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err, nil)
		return
	}

	nodes, view, err := c.SubmitCourses(r.Context(), req.Courses, h.Orchestrator)
	if err != nil {
		email, _ := utils.GetUserEmail(r)
		h.Logger.Info("SubmitCourses: submission rejected", zap.String("email", email), zap.Error(err))
		if errors.Is(err, wizard.ErrNotOnDashboard) {
			h.writeError(w, r, err, &view)
			return
		}
		h.writeError(w, r, err, nil)
		return
	}

	writeJSON(w, http.StatusCreated, submitCoursesResponse{Nodes: nodes})
}

// GET /api/nodes
func (h *Handler) GetNodes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Storage.LoadOrEmpty())
}

// DELETE /api/nodes
//
// Storage faults are not surfaced as errors; the body reports whether the
// slot was actually cleared.
func (h *Handler) ClearNodes(w http.ResponseWriter, r *http.Request) {
	res := h.Storage.Clear()
	writeJSON(w, http.StatusOK, map[string]bool{"cleared": res.OK()})
}
