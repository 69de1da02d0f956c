// Package storage persists the course mind-map document in a single keyed slot.
//
// Every operation swallows faults: they are logged and reported through a
// Result value, never returned as errors or panics. The slot is shared and
// unversioned, so concurrent writers race and the last write wins.
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/andrewpaige1/coursemap-api/metrics"
	"github.com/andrewpaige1/coursemap-api/models"
)

const (
	StorageKey      = "course_mind_map_data"
	DocumentVersion = "1.0"

	// Same layout as JavaScript's Date.toISOString.
	timestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

// Result reports whether a write reached the slot.
type Result struct {
	Err error
}

func (r Result) OK() bool { return r.Err == nil }

type Adapter struct {
	slot    Slot
	logger  *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

type Option func(*Adapter)

// WithClock overrides the time source used for document timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *Adapter) { a.now = now }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Adapter) { a.metrics = m }
}

func New(slot Slot, logger *zap.Logger, opts ...Option) *Adapter {
	a := &Adapter{
		slot:   slot,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// EmptyDocument is the logical default when nothing usable is stored.
func EmptyDocument() models.StorageDocument {
	return models.StorageDocument{
		Nodes: []models.AnalyzedCourseNode{},
		Edges: []json.RawMessage{},
	}
}

// Save overwrites the slot with doc, stamped with the current time and version.
func (a *Adapter) Save(doc models.StorageDocument) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Err: fmt.Errorf("storage: save panicked: %v", r)}
			a.logger.Error("Error saving course data", zap.Error(res.Err))
			a.metrics.Storage("save", metrics.OutcomeFailed)
		}
	}()

	doc.Timestamp = a.now().UTC().Format(timestampLayout)
	doc.Version = DocumentVersion
	if doc.Nodes == nil {
		doc.Nodes = []models.AnalyzedCourseNode{}
	}
	if doc.Edges == nil {
		doc.Edges = []json.RawMessage{}
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return a.fail("save", fmt.Errorf("storage: encode document: %w", err))
	}
	if err := a.slot.SetItem(StorageKey, string(data)); err != nil {
		return a.fail("save", fmt.Errorf("storage: write slot: %w", err))
	}

	a.logger.Debug("Course data saved", zap.Int("nodes", len(doc.Nodes)), zap.Int("edges", len(doc.Edges)))
	a.metrics.Storage("save", metrics.OutcomeOK)
	return Result{}
}

// Load returns the stored document, or nil when the slot is empty, holds
// invalid JSON or JSON null, or holds an object whose fields have the wrong
// types.
func (a *Adapter) Load() (doc *models.StorageDocument) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("Error loading course data", zap.Any("panic", r))
			a.metrics.Storage("load", metrics.OutcomeFailed)
			doc = nil
		}
	}()

	raw, ok, err := a.slot.GetItem(StorageKey)
	if err != nil {
		a.logger.Error("Error loading course data", zap.Error(err))
		a.metrics.Storage("load", metrics.OutcomeFailed)
		return nil
	}
	if !ok || raw == "" {
		a.metrics.Storage("load", metrics.OutcomeMissing)
		return nil
	}

	var parsed interface{}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		a.logger.Error("Error loading course data", zap.Error(err))
		a.metrics.Storage("load", metrics.OutcomeFailed)
		return nil
	}
	switch parsed.(type) {
	case nil:
		a.logger.Warn("Stored course data is null")
		a.metrics.Storage("load", metrics.OutcomeFailed)
		return nil
	case map[string]interface{}:
	default:
		// Valid JSON that carries no fields loads as an empty document.
		a.logger.Warn("Stored course data is not an object")
		a.metrics.Storage("load", metrics.OutcomeOK)
		empty := EmptyDocument()
		return &empty
	}

	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		a.logger.Error("Error loading course data", zap.Error(err))
		a.metrics.Storage("load", metrics.OutcomeFailed)
		return nil
	}
	if doc.Nodes == nil {
		doc.Nodes = []models.AnalyzedCourseNode{}
	}
	if doc.Edges == nil {
		doc.Edges = []json.RawMessage{}
	}

	a.logger.Debug("Course data loaded", zap.Int("nodes", len(doc.Nodes)))
	a.metrics.Storage("load", metrics.OutcomeOK)
	return doc
}

// LoadOrEmpty is Load with EmptyDocument substituted for nil.
func (a *Adapter) LoadOrEmpty() models.StorageDocument {
	if doc := a.Load(); doc != nil {
		return *doc
	}
	return EmptyDocument()
}

// Clear removes the stored document.
func (a *Adapter) Clear() Result {
	if err := a.slot.RemoveItem(StorageKey); err != nil {
		return a.fail("clear", fmt.Errorf("storage: remove slot: %w", err))
	}
	a.logger.Info("Course data cleared")
	a.metrics.Storage("clear", metrics.OutcomeOK)
	return Result{}
}

func (a *Adapter) fail(op string, err error) Result {
	a.logger.Error("Storage operation failed", zap.String("op", op), zap.Error(err))
	a.metrics.Storage(op, metrics.OutcomeFailed)
	return Result{Err: err}
}
