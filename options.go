package btree

import "log/slog"

// Option configures a Tree at construction.
type Option func(*options)

type options struct {
	logger *slog.Logger
	verify bool
}

// WithLogger sets the logger receiving Debug records for every structural
// change (split, merge, rotation, root growth and shrink). Without it the
// tree logs to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithInvariantChecks makes every Set and Unset verify the whole tree before
// returning, panicking with an assertion failure on the first violation.
// Verification visits every node, so this is meant for tests and debugging.
func WithInvariantChecks(enabled bool) Option {
	return func(o *options) {
		o.verify = enabled
	}
}
