package btree

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidDegree is returned by New when the degree cannot produce a
	// median entry and two non-empty halves on split.
	ErrInvalidDegree = errors.New("btree: invalid degree")

	// ErrKeyNotFound is returned by Unset when the key is absent. The tree is
	// left unmodified.
	ErrKeyNotFound = errors.New("btree: key not found")

	// ErrExcessiveRotation marks a rotation or merge attempted against a
	// sibling that does not exist.
	ErrExcessiveRotation = errors.New("btree: excessive rotation")

	// ErrLoseBalance marks leaves found at different depths.
	ErrLoseBalance = errors.New("btree: lose balance")
)

// MinimumDegree is the smallest degree accepted by New.
const MinimumDegree = 3

// corrupt panics with an assertion failure wrapping cause. The panic value is
// an error, so errors.Is(v, cause) and errors.IsAssertionFailure(v) both
// hold for a recovered value v.
func corrupt(cause error, format string, args ...interface{}) {
	panic(errors.WithAssertionFailure(errors.Wrapf(cause, format, args...)))
}
