package core

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"suinocore/pkg/domain"
)

// Service exposes the transactional domain operations and derived queries of
// the swine production core. All multi-table operations run inside a single
// store transaction; the store's rules engine vetoes commits that would break
// cross-table invariants.
type Service struct {
	store   domain.PersistentStore
	clock   Clock
	metrics MetricsRecorder
	tracer  Tracer
	sectors map[domain.AnimalCategory]string

	rngMu sync.Mutex
	rng   *rand.Rand
}

// ServiceOption customises a Service at construction time.
type ServiceOption func(*Service)

// WithClock injects a deterministic time source.
func WithClock(clock Clock) ServiceOption {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithMetricsRecorder wires a metrics sink for operation outcomes.
func WithMetricsRecorder(rec MetricsRecorder) ServiceOption {
	return func(s *Service) {
		if rec != nil {
			s.metrics = rec
		}
	}
}

// WithTracer wires a tracer wrapping every operation in a span.
func WithTracer(tracer Tracer) ServiceOption {
	return func(s *Service) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// WithCategorySectors overrides the category-to-sector housing map consulted
// by AvailablePens.
func WithCategorySectors(sectors map[domain.AnimalCategory]string) ServiceOption {
	return func(s *Service) {
		if sectors != nil {
			s.sectors = sectors
		}
	}
}

// WithRandSeed seeds the randomness used by batch piglet generation so tests
// can pin the sampled weights and sex shuffle.
func WithRandSeed(seed int64) ServiceOption {
	return func(s *Service) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// NewService constructs a service backed by the supplied store.
func NewService(store domain.PersistentStore, opts ...ServiceOption) *Service {
	s := &Service{
		store:   store,
		clock:   systemClock(),
		metrics: noopMetrics{},
		tracer:  noopTracer{},
		sectors: DefaultCategorySectors(),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the underlying storage implementation.
func (s *Service) Store() domain.PersistentStore {
	return s.store
}

// run executes fn inside one store transaction, instrumented with the
// configured tracer and metrics recorder.
func (s *Service) run(ctx context.Context, operation string, fn func(tx domain.Transaction) error) (Result, error) {
	ctx, span := s.tracer.Start(ctx, operation)
	start := time.Now()
	res, err := s.store.RunInTransaction(ctx, fn)
	s.metrics.Observe(ctx, operation, err == nil, time.Since(start))
	span.End(err)
	return res, err
}

// view executes fn against a consistent read-only snapshot.
func (s *Service) view(ctx context.Context, operation string, fn func(view domain.RuleView) error) error {
	ctx, span := s.tracer.Start(ctx, operation)
	start := time.Now()
	err := s.store.View(ctx, fn)
	s.metrics.Observe(ctx, operation, err == nil, time.Since(start))
	span.End(err)
	return err
}

func (s *Service) now() time.Time {
	return s.clock.Now()
}

// today truncates the clock to a calendar date.
func (s *Service) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *Service) float64InRange(low, high float64) float64 {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return low + s.rng.Float64()*(high-low)
}

func (s *Service) shuffle(n int, swap func(i, j int)) {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	s.rng.Shuffle(n, swap)
}
