// Package analysis enriches drafted courses with topics, skills and
// connections from an analysis service and persists the resulting nodes.
package analysis

import (
	"context"

	"github.com/andrewpaige1/coursemap-api/models"
)

// Result is the response shape of the analysis service.
type Result struct {
	Topics      []string `json:"topics"`
	Skills      []string `json:"skills"`
	Connections []string `json:"connections"`
}

// Analyzer analyzes a single course row.
type Analyzer interface {
	Analyze(ctx context.Context, course models.CourseFormInput) (Result, error)
}

// AnalyzerFunc adapts a function to Analyzer.
type AnalyzerFunc func(ctx context.Context, course models.CourseFormInput) (Result, error)

func (fn AnalyzerFunc) Analyze(ctx context.Context, course models.CourseFormInput) (Result, error) {
	return fn(ctx, course)
}

// StubAnalyzer answers every course with empty lists. It backs the
// /api/analyzeCourse endpoint until a real model is plugged in.
type StubAnalyzer struct{}

func (StubAnalyzer) Analyze(ctx context.Context, _ models.CourseFormInput) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	return Result{
		Topics:      []string{},
		Skills:      []string{},
		Connections: []string{},
	}, nil
}
