package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/andrewpaige1/coursemap-api/forms"
	"github.com/andrewpaige1/coursemap-api/metrics"
	"github.com/andrewpaige1/coursemap-api/models"
	"github.com/andrewpaige1/coursemap-api/storage"
)

// ErrBatchFailed marks a batch in which at least one course could not be
// analyzed. Nothing from the batch is persisted.
var ErrBatchFailed = errors.New("analysis: error processing courses")

// Orchestrator analyzes a batch of course rows concurrently and appends the
// resulting nodes to the stored document.
type Orchestrator struct {
	analyzer Analyzer
	store    *storage.Adapter
	newID    IDGenerator
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

type OrchestratorOption func(*Orchestrator)

func WithIDGenerator(gen IDGenerator) OrchestratorOption {
	return func(o *Orchestrator) { o.newID = gen }
}

func WithOrchestratorMetrics(m *metrics.Metrics) OrchestratorOption {
	return func(o *Orchestrator) { o.metrics = m }
}

func NewOrchestrator(analyzer Analyzer, store *storage.Adapter, logger *zap.Logger, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		analyzer: analyzer,
		store:    store,
		newID:    TimeRandomIDs(time.Now),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Submit validates rows, analyzes all of them and persists the batch.
//
// Either every row yields a node and all nodes are appended, or the first
// failure cancels the remaining requests and nothing is written. The
// load/append/save cycle is not locked against other writers.
func (o *Orchestrator) Submit(ctx context.Context, rows []models.CourseFormInput) ([]models.AnalyzedCourseNode, error) {
	if err := forms.ValidateCourseRows(rows); err != nil {
		o.metrics.Submission(metrics.OutcomeInvalid)
		return nil, err
	}

	nodes := make([]models.AnalyzedCourseNode, len(rows))
	g, gctx := errgroup.WithContext(ctx)
	for i, row := range rows {
		g.Go(func() error {
			res, err := o.analyzer.Analyze(gctx, row)
			o.metrics.AnalysisRequest(err)
			if err != nil {
				return fmt.Errorf("analyze %q: %w", row.CourseName, err)
			}
			id, err := o.newID()
			if err != nil {
				return fmt.Errorf("node id for %q: %w", row.CourseName, err)
			}
			nodes[i] = merge(id, row, res)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		o.logger.Error("Error processing courses", zap.Int("courses", len(rows)), zap.Error(err))
		o.metrics.Submission(metrics.OutcomeFailed)
		return nil, fmt.Errorf("%w: %w", ErrBatchFailed, err)
	}

	doc := o.store.LoadOrEmpty()
	doc.Nodes = append(doc.Nodes, nodes...)
	if res := o.store.Save(doc); !res.OK() {
		o.logger.Warn("Analyzed courses were not persisted", zap.Int("courses", len(nodes)), zap.Error(res.Err))
	}

	o.logger.Info("Courses analyzed", zap.Int("courses", len(nodes)), zap.Int("totalNodes", len(doc.Nodes)))
	o.metrics.Submission(metrics.OutcomeOK)
	return nodes, nil
}

func merge(id string, row models.CourseFormInput, res Result) models.AnalyzedCourseNode {
	return models.AnalyzedCourseNode{
		ID:           id,
		Label:        row.CourseName,
		Category:     row.Category,
		Topics:       nonNil(res.Topics),
		Skills:       nonNil(res.Skills),
		Connections:  nonNil(res.Connections),
		LectureNotes: row.LectureNotes,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
