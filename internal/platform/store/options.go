package store

import "rapih/internal/platform/logger"

// Option mutates a Store during Open
type Option func(*Store) error

// WithLogger sets the logger backends trace through
func WithLogger(log *logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}
