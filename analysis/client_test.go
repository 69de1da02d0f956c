package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/andrewpaige1/coursemap-api/models"
)

func TestClient_Analyze(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, AnalyzePath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in models.CourseFormInput
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, models.CourseFormInput{CourseName: "Intro CS", Category: "CS", LectureNotes: "week 1"}, in)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Result{
			Topics:      []string{"algorithms"},
			Skills:      []string{"problem solving"},
			Connections: []string{"Calc I"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", 0, zap.NewNop())
	res, err := c.Analyze(context.Background(), models.CourseFormInput{CourseName: "Intro CS", Category: "CS", LectureNotes: "week 1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"algorithms"}, res.Topics)
	assert.Equal(t, []string{"problem solving"}, res.Skills)
	assert.Equal(t, []string{"Calc I"}, res.Connections)
}

func TestClient_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model offline", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0, zap.NewNop())
	_, err := c.Analyze(context.Background(), models.CourseFormInput{CourseName: "Intro CS", Category: "CS"})

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusServiceUnavailable, se.StatusCode)
	assert.Equal(t, "model offline", se.Body)
}

func TestClient_BadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0, zap.NewNop())
	_, err := c.Analyze(context.Background(), models.CourseFormInput{CourseName: "Intro CS", Category: "CS"})
	assert.ErrorContains(t, err, "decode response")
}

func TestClient_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0, zap.NewNop())
	for i := 0; i < 7; i++ {
		_, err := c.Analyze(context.Background(), models.CourseFormInput{CourseName: "x", Category: "CS"})
		assert.Error(t, err)
	}
	assert.Equal(t, 5, hits)
}

func TestClient_CancelledCallsDoNotOpenBreaker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Result{})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < 7; i++ {
		_, err := c.Analyze(ctx, models.CourseFormInput{CourseName: "x", Category: "CS"})
		assert.ErrorIs(t, err, context.Canceled)
	}

	_, err := c.Analyze(context.Background(), models.CourseFormInput{CourseName: "x", Category: "CS"})
	assert.NoError(t, err)
}

// One bad row in a large batch cancels its siblings; the next batch must
// still reach the service.
func TestClient_ResubmitAfterFailedBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in models.CourseFormInput
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		switch {
		case in.CourseName == "bad":
			w.WriteHeader(http.StatusInternalServerError)
			return
		case strings.HasPrefix(in.CourseName, "slow"):
			select {
			case <-r.Context().Done():
				return
			case <-time.After(5 * time.Second):
			}
		}
		json.NewEncoder(w).Encode(Result{})
	}))
	defer srv.Close()

	o, store, _ := newTestOrchestrator(t, NewClient(srv.URL, 0, zap.NewNop()))

	batch := []models.CourseFormInput{{CourseName: "bad", Category: "CS"}}
	for i := 1; i <= 5; i++ {
		batch = append(batch, models.CourseFormInput{CourseName: fmt.Sprintf("slow %d", i), Category: "Math"})
	}
	_, err := o.Submit(context.Background(), batch)
	require.ErrorIs(t, err, ErrBatchFailed)
	assert.Nil(t, store.Load())

	nodes, err := o.Submit(context.Background(), []models.CourseFormInput{{CourseName: "ok", Category: "CS"}})
	require.NoError(t, err)
	assert.Len(t, nodes, 1)
}
