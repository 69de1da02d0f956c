package wizard

import (
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"

	"github.com/andrewpaige1/coursemap-api/models"
	"github.com/andrewpaige1/coursemap-api/session"
)

const (
	DefaultSessionTTL  = 24 * time.Hour
	DefaultMaxSessions = 10000
)

// Sessions maps browser session ids to their controllers. Sessions expire
// after sitting idle for the TTL, and the least recently used session is
// dropped once the registry is full.
type Sessions struct {
	mu          sync.Mutex
	controllers *expirable.LRU[string, *Controller]
	catalog     []models.Course
	logger      *zap.Logger
}

type SessionsOption func(*sessionsConfig)

type sessionsConfig struct {
	ttl  time.Duration
	size int
}

func WithSessionTTL(d time.Duration) SessionsOption {
	return func(c *sessionsConfig) { c.ttl = d }
}

func WithMaxSessions(n int) SessionsOption {
	return func(c *sessionsConfig) { c.size = n }
}

func NewSessions(catalog []models.Course, logger *zap.Logger, opts ...SessionsOption) *Sessions {
	cfg := sessionsConfig{ttl: DefaultSessionTTL, size: DefaultMaxSessions}
	for _, o := range opts {
		o(&cfg)
	}

	return &Sessions{
		controllers: expirable.NewLRU[string, *Controller](cfg.size, func(id string, _ *Controller) {
			logger.Debug("Wizard session dropped", zap.String("session", id))
		}, cfg.ttl),
		catalog: catalog,
		logger:  logger,
	}
}

// Lookup returns the live controller for id and restarts its idle timer.
// Unknown ids are never registered.
func (s *Sessions) Lookup(id string) (*Controller, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.controllers.Get(id)
	if !ok {
		return nil, false
	}
	s.controllers.Add(id, c)
	return c, true
}

// Create registers a controller under a freshly generated id.
func (s *Sessions) Create() (string, *Controller, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", nil, fmt.Errorf("wizard: generate session id: %w", err)
	}

	c := s.newController(s.logger.With(zap.String("session", id)))
	s.mu.Lock()
	s.controllers.Add(id, c)
	s.mu.Unlock()
	return id, c, nil
}

// Anonymous returns an unregistered controller on the landing page, for
// browsers that have not started the wizard.
func (s *Sessions) Anonymous() *Controller {
	return s.newController(s.logger)
}

func (s *Sessions) newController(logger *zap.Logger) *Controller {
	return NewController(session.NewStore(), s.catalog, logger)
}

func (s *Sessions) Len() int {
	return s.controllers.Len()
}
