package btree

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recovered runs fn and returns the error it panicked with.
func recovered(t *testing.T, fn func()) (err error) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		var ok bool
		err, ok = r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
	}()
	fn()
	return nil
}

func TestVerifyDetectsUnevenLeaves(t *testing.T) {
	tree := newIntTree(t, 3)
	setAll(tree, 10, 20, 30)

	// hang two leaves under the left leaf only
	left := tree.root.child(0)
	lower, upper := newNode[int, string](3), newNode[int, string](3)
	lower.entries.insert(0, &entry[int, string]{key: 5})
	upper.entries.insert(0, &entry[int, string]{key: 15})
	left.setChild(0, lower)
	left.setChild(1, upper)

	assert.ErrorIs(t, tree.Verify(), ErrLoseBalance)
}

func TestVerifyDetectsDisorder(t *testing.T) {
	tree := newIntTree(t, 5)
	setAll(tree, 1, 2, 3, 4)
	tree.root.entries[1], tree.root.entries[2] = tree.root.entries[2], tree.root.entries[1]

	err := tree.Verify()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of order")
}

func TestVerifyDetectsStaleParent(t *testing.T) {
	tree := newIntTree(t, 3)
	setAll(tree, 1, 2, 3)
	tree.root.right.parent = nil

	err := tree.Verify()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stale parent")
}

func TestVerifyDetectsUnderflow(t *testing.T) {
	tree := newIntTree(t, 3)
	setAll(tree, 1, 2, 3)
	tree.root.right.entries.remove(0)

	err := tree.Verify()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "minimum")
}

func TestInvariantChecksPanic(t *testing.T) {
	tree := newIntTree(t, 3)
	setAll(tree, 1, 2, 3)
	tree.root.right.parent = nil

	err := recovered(t, func() { tree.Set(0, "") })
	assert.True(t, errors.IsAssertionFailure(err))
}

func TestRebalanceWithoutSibling(t *testing.T) {
	tree := newIntTree(t, 3)

	// an entry lacking its left subtree next to a present right subtree
	n := newNode[int, string](3)
	n.entries.insert(0, &entry[int, string]{key: 10})
	n.setChild(1, newNode[int, string](3))

	err := recovered(t, func() { tree.rebalance(n, 1) })
	assert.ErrorIs(t, err, ErrExcessiveRotation)
	assert.True(t, errors.IsAssertionFailure(err))
}

func TestRebalanceLoneChild(t *testing.T) {
	tree := newIntTree(t, 3)

	n := newNode[int, string](3)
	n.setChild(0, newNode[int, string](3))

	err := recovered(t, func() { tree.rebalance(n, 0) })
	assert.ErrorIs(t, err, ErrLoseBalance)
	assert.True(t, errors.IsAssertionFailure(err))
}
