// Package app composes the pipeline stages: extract a payload from issue
// text, validate it, and store it in the partitioned submission tree. Each
// stage returns a structured envelope and stamps its provenance metadata
// onto the record.
package app

import (
	"time"

	"github.com/google/uuid"

	"github.com/fastcraft-ai/pawmate-ai-results/internal/adapters/repository"
	"github.com/fastcraft-ai/pawmate-ai-results/internal/domain/extract"
	"github.com/fastcraft-ai/pawmate-ai-results/internal/domain/validate"
	"github.com/fastcraft-ai/pawmate-ai-results/pkg/logger"
)

// Service runs the submission pipeline.
type Service struct {
	log       logger.Logger
	extractor *extract.Extractor
	validator *validate.Validator
	store     repository.Store

	now   func() time.Time
	newID func() string
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger overrides the service logger.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithExtractor overrides the payload extractor.
func WithExtractor(e *extract.Extractor) Option {
	return func(s *Service) {
		if e != nil {
			s.extractor = e
		}
	}
}

// WithValidator overrides the schema validator.
func WithValidator(v *validate.Validator) Option {
	return func(s *Service) {
		if v != nil {
			s.validator = v
		}
	}
}

// WithStore wires the partitioned submission store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithClock overrides the provenance timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDSource overrides the ingest id generator.
func WithIDSource(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// New builds a Service with default stage implementations.
func New(opts ...Option) *Service {
	s := &Service{
		log:       logger.Named("pipeline"),
		extractor: extract.New(),
		validator: validate.New(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
