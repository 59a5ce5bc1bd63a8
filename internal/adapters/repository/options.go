package repository

import "github.com/fastcraft-ai/pawmate-ai-results/pkg/logger"

// Option applies a configuration option to the FSStore.
type Option func(*FSStore)

// WithLogger overrides the store's logger.
func WithLogger(log logger.Logger) Option {
	return func(s *FSStore) {
		if log != nil {
			s.log = log
		}
	}
}

// WithRemoveFunc overrides how stale duplicate files are removed.
func WithRemoveFunc(remove func(path string) error) Option {
	return func(s *FSStore) {
		if remove != nil {
			s.remove = remove
		}
	}
}
