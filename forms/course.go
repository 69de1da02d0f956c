package forms

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/andrewpaige1/coursemap-api/models"
)

const CourseRowsMessage = "Please enter a course name and select a category for each course."

var (
	ErrSubmitting   = errors.New("forms: a submission is already in progress")
	ErrRowIndex     = errors.New("forms: no such course row")
	ErrLastRow      = errors.New("forms: cannot remove the last course row")
	ErrUnknownField = errors.New("forms: unknown course field")
)

var CategoryOptions = []Option{
	{Value: "", Label: "Select category"},
	{Value: "CS", Label: "Computer Science"},
	{Value: "Math", Label: "Mathematics"},
	{Value: "Physics", Label: "Physics"},
	{Value: "Biology", Label: "Biology"},
	{Value: "Chemistry", Label: "Chemistry"},
	{Value: "Other", Label: "Other"},
}

// ValidateCourseRows checks that every row has a name and a category.
// An empty batch is invalid.
func ValidateCourseRows(rows []models.CourseFormInput) error {
	if len(rows) == 0 {
		return &ValidationError{Message: CourseRowsMessage, Fields: []string{"courses is required"}}
	}
	for i := range rows {
		if err := validateStruct(rows[i], CourseRowsMessage); err != nil {
			var ve *ValidationError
			if errors.As(err, &ve) {
				for j := range ve.Fields {
					ve.Fields[j] = fmt.Sprintf("course %d: %s", i+1, ve.Fields[j])
				}
			}
			return err
		}
	}
	return nil
}

// Submitter processes a validated batch of course rows.
type Submitter interface {
	Submit(ctx context.Context, rows []models.CourseFormInput) ([]models.AnalyzedCourseNode, error)
}

// CourseForm is the multi-row course entry draft. Only one submission may be
// outstanding at a time; others are rejected with ErrSubmitting.
type CourseForm struct {
	mu         sync.Mutex
	rows       []models.CourseFormInput
	submitting atomic.Bool
}

func NewCourseForm() *CourseForm {
	return &CourseForm{rows: []models.CourseFormInput{{}}}
}

func (f *CourseForm) Rows() []models.CourseFormInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.CourseFormInput{}, f.rows...)
}

func (f *CourseForm) AddRow() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = append(f.rows, models.CourseFormInput{})
}

func (f *CourseForm) RemoveRow(idx int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if idx < 0 || idx >= len(f.rows) {
		return fmt.Errorf("%w: %d", ErrRowIndex, idx)
	}
	if len(f.rows) == 1 {
		return ErrLastRow
	}
	f.rows = append(f.rows[:idx], f.rows[idx+1:]...)
	return nil
}

// SetField updates one field of a row by its JSON name.
func (f *CourseForm) SetField(idx int, name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if idx < 0 || idx >= len(f.rows) {
		return fmt.Errorf("%w: %d", ErrRowIndex, idx)
	}
	switch name {
	case "courseName":
		f.rows[idx].CourseName = value
	case "category":
		f.rows[idx].Category = value
	case "lectureNotes":
		f.rows[idx].LectureNotes = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return nil
}

// Replace swaps the whole draft.
func (f *CourseForm) Replace(rows []models.CourseFormInput) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = append([]models.CourseFormInput{}, rows...)
}

func (f *CourseForm) Reset() {
	f.Replace([]models.CourseFormInput{{}})
}

func (f *CourseForm) Submitting() bool {
	return f.submitting.Load()
}

// Submit validates the draft and hands it to s. The draft is reset after a
// successful submission and kept otherwise.
func (f *CourseForm) Submit(ctx context.Context, s Submitter) ([]models.AnalyzedCourseNode, error) {
	if !f.submitting.CompareAndSwap(false, true) {
		return nil, ErrSubmitting
	}
	defer f.submitting.Store(false)
	return f.submit(ctx, s)
}

// SubmitRows replaces the draft with rows and submits it. The draft is left
// untouched when another submission is outstanding.
func (f *CourseForm) SubmitRows(ctx context.Context, rows []models.CourseFormInput, s Submitter) ([]models.AnalyzedCourseNode, error) {
	if !f.submitting.CompareAndSwap(false, true) {
		return nil, ErrSubmitting
	}
	defer f.submitting.Store(false)

	f.Replace(rows)
	return f.submit(ctx, s)
}

// submit must be called with the submitting flag held.
func (f *CourseForm) submit(ctx context.Context, s Submitter) ([]models.AnalyzedCourseNode, error) {
	rows := f.Rows()
	if err := ValidateCourseRows(rows); err != nil {
		return nil, err
	}

	nodes, err := s.Submit(ctx, rows)
	if err != nil {
		return nil, err
	}
	f.Reset()
	return nodes, nil
}
