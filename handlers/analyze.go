package handlers

import (
	"net/http"

	"github.com/andrewpaige1/coursemap-api/models"
)

// POST /api/analyzeCourse
func (h *Handler) AnalyzeCourse(w http.ResponseWriter, r *http.Request) {
	var course models.CourseFormInput
	if err := decodeJSON(r, &course); err != nil {
		h.writeError(w, r, err, nil)
		return
	}

	res, err := h.Analyzer.Analyze(r.Context(), course)
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
