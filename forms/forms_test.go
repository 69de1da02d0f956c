package forms

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrewpaige1/coursemap-api/models"
)

func TestLoginForm_Submit(t *testing.T) {
	u, err := LoginForm{Email: "a@b.com", Password: "hunter2"}.Submit()
	require.NoError(t, err)
	assert.Equal(t, models.User{Email: "a@b.com"}, u)
}

func TestLoginForm_Validation(t *testing.T) {
	tests := []struct {
		name  string
		form  LoginForm
		field string
	}{
		{"missing email", LoginForm{Password: "x"}, "email is required"},
		{"bad email", LoginForm{Email: "not-an-email", Password: "x"}, "email must be a valid email"},
		{"missing password", LoginForm{Email: "a@b.com"}, "password is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.form.Submit()
			require.Error(t, err)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Fields, tt.field)
			assert.True(t, IsValidation(err))
		})
	}
}

func TestUniversitySelector_Defaults(t *testing.T) {
	sel, err := NewUniversitySelector().Submit()
	require.NoError(t, err)
	assert.Equal(t, Selection{
		University: "uts",
		Degree:     "bcs-honours",
		Major:      "enterprise-software",
		SubMajor:   "aws",
	}, sel)
}

func TestUniversitySelector_MissingField(t *testing.T) {
	f := NewUniversitySelector()
	f.Major = ""

	_, err := f.Submit()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"major is required"}, ve.Fields)
}

func TestValidateCourseRows(t *testing.T) {
	valid := models.CourseFormInput{CourseName: "Intro CS", Category: "CS"}

	assert.NoError(t, ValidateCourseRows([]models.CourseFormInput{valid}))

	for name, rows := range map[string][]models.CourseFormInput{
		"empty batch":    nil,
		"blank name":     {valid, {CourseName: "   ", Category: "Math"}},
		"missing name":   {{Category: "Math"}},
		"default option": {{CourseName: "Calc I", Category: ""}},
	} {
		t.Run(name, func(t *testing.T) {
			err := ValidateCourseRows(rows)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, CourseRowsMessage, ve.Message)
		})
	}
}

func TestCourseForm_Rows(t *testing.T) {
	f := NewCourseForm()
	require.Len(t, f.Rows(), 1)

	assert.ErrorIs(t, f.RemoveRow(0), ErrLastRow)

	f.AddRow()
	require.NoError(t, f.SetField(0, "courseName", "Intro CS"))
	require.NoError(t, f.SetField(1, "courseName", "Calc I"))
	require.NoError(t, f.SetField(1, "category", "Math"))
	require.NoError(t, f.SetField(1, "lectureNotes", "limits"))

	assert.ErrorIs(t, f.SetField(2, "courseName", "x"), ErrRowIndex)
	assert.ErrorIs(t, f.SetField(0, "instructor", "x"), ErrUnknownField)

	require.NoError(t, f.RemoveRow(0))
	assert.Equal(t, []models.CourseFormInput{
		{CourseName: "Calc I", Category: "Math", LectureNotes: "limits"},
	}, f.Rows())
}

type submitterFunc func(ctx context.Context, rows []models.CourseFormInput) ([]models.AnalyzedCourseNode, error)

func (fn submitterFunc) Submit(ctx context.Context, rows []models.CourseFormInput) ([]models.AnalyzedCourseNode, error) {
	return fn(ctx, rows)
}

func TestCourseForm_SubmitResetsOnSuccess(t *testing.T) {
	f := NewCourseForm()
	f.Replace([]models.CourseFormInput{{CourseName: "Intro CS", Category: "CS"}})

	var got []models.CourseFormInput
	nodes, err := f.Submit(context.Background(), submitterFunc(func(_ context.Context, rows []models.CourseFormInput) ([]models.AnalyzedCourseNode, error) {
		got = rows
		return []models.AnalyzedCourseNode{{ID: "1", Label: rows[0].CourseName}}, nil
	}))
	require.NoError(t, err)

	assert.Len(t, nodes, 1)
	assert.Equal(t, "Intro CS", got[0].CourseName)
	assert.Equal(t, []models.CourseFormInput{{}}, f.Rows())
	assert.False(t, f.Submitting())
}

func TestCourseForm_SubmitKeepsDraftOnError(t *testing.T) {
	f := NewCourseForm()
	rows := []models.CourseFormInput{{CourseName: "Intro CS", Category: "CS"}}
	f.Replace(rows)

	_, err := f.Submit(context.Background(), submitterFunc(func(context.Context, []models.CourseFormInput) ([]models.AnalyzedCourseNode, error) {
		return nil, errors.New("boom")
	}))
	assert.EqualError(t, err, "boom")
	assert.Equal(t, rows, f.Rows())
}

func TestCourseForm_SubmitValidatesBeforeCalling(t *testing.T) {
	f := NewCourseForm()
	called := false

	_, err := f.Submit(context.Background(), submitterFunc(func(context.Context, []models.CourseFormInput) ([]models.AnalyzedCourseNode, error) {
		called = true
		return nil, nil
	}))
	assert.True(t, IsValidation(err))
	assert.False(t, called)
}

func TestCourseForm_RejectsConcurrentSubmit(t *testing.T) {
	f := NewCourseForm()
	f.Replace([]models.CourseFormInput{{CourseName: "Intro CS", Category: "CS"}})

	started := make(chan struct{})
	release := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := f.Submit(context.Background(), submitterFunc(func(context.Context, []models.CourseFormInput) ([]models.AnalyzedCourseNode, error) {
			close(started)
			<-release
			return nil, nil
		}))
		assert.NoError(t, err)
	}()

	<-started
	assert.True(t, f.Submitting())
	_, err := f.Submit(context.Background(), submitterFunc(func(context.Context, []models.CourseFormInput) ([]models.AnalyzedCourseNode, error) {
		t.Error("second submission must not reach the submitter")
		return nil, nil
	}))
	assert.ErrorIs(t, err, ErrSubmitting)

	close(release)
	wg.Wait()
	assert.False(t, f.Submitting())
}

func TestCourseForm_SubmitRowsLeavesInFlightDraftAlone(t *testing.T) {
	f := NewCourseForm()
	inFlight := []models.CourseFormInput{{CourseName: "Intro CS", Category: "CS"}}

	started := make(chan struct{})
	release := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := f.SubmitRows(context.Background(), inFlight, submitterFunc(func(_ context.Context, rows []models.CourseFormInput) ([]models.AnalyzedCourseNode, error) {
			close(started)
			<-release
			return nil, errors.New("service down")
		}))
		assert.EqualError(t, err, "service down")
	}()

	<-started
	_, err := f.SubmitRows(context.Background(), []models.CourseFormInput{{CourseName: "Calc I", Category: "Math"}},
		submitterFunc(func(context.Context, []models.CourseFormInput) ([]models.AnalyzedCourseNode, error) {
			t.Error("second submission must not reach the submitter")
			return nil, nil
		}))
	assert.ErrorIs(t, err, ErrSubmitting)
	assert.Equal(t, inFlight, f.Rows())

	close(release)
	wg.Wait()
	assert.Equal(t, inFlight, f.Rows())
}

func TestCourseForm_SubmitRows(t *testing.T) {
	f := NewCourseForm()
	rows := []models.CourseFormInput{{CourseName: "Intro CS", Category: "CS"}, {CourseName: "Calc I", Category: "Math"}}

	var got []models.CourseFormInput
	_, err := f.SubmitRows(context.Background(), rows, submitterFunc(func(_ context.Context, in []models.CourseFormInput) ([]models.AnalyzedCourseNode, error) {
		got = in
		return nil, nil
	}))
	require.NoError(t, err)
	assert.Equal(t, rows, got)
	assert.Equal(t, []models.CourseFormInput{{}}, f.Rows())
}
