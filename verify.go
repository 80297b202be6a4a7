package btree

import "github.com/cockroachdb/errors"

// Verify checks every structural invariant of the tree and returns the first
// violation found. Leaves at differing depths are reported as
// ErrLoseBalance.
func (t *Tree[K, V]) Verify() error {
	if t.root.parent != nil {
		return errors.New("btree: root has a parent")
	}
	if len(t.root.entries) == 0 && !t.root.leaf() {
		return errors.New("btree: empty root has a subtree")
	}
	v := verifier[K, V]{t: t, leafDepth: -1}
	if err := v.node(t.root, nil, nil, 1); err != nil {
		return err
	}
	if v.count != t.length {
		return errors.Newf("btree: counted %d entries, expected %d", v.count, t.length)
	}
	return nil
}

type verifier[K, V any] struct {
	t         *Tree[K, V]
	leafDepth int
	count     int
}

// node checks the subtree rooted at n, whose keys must lie strictly between
// lo and hi where those are given.
func (v *verifier[K, V]) node(n *node[K, V], lo, hi *K, depth int) error {
	t := v.t
	size := len(n.entries)
	if size >= t.degree {
		return errors.Newf("btree: node at depth %d holds %d entries, degree is %d", depth, size, t.degree)
	}
	if n != t.root && size < t.MinDegree() {
		return errors.Newf("btree: node at depth %d holds %d entries, minimum is %d", depth, size, t.MinDegree())
	}
	v.count += size

	for i, e := range n.entries {
		if i > 0 && t.cmp(n.entries[i-1].key, e.key) >= 0 {
			return errors.Newf("btree: keys %v and %v out of order at depth %d", n.entries[i-1].key, e.key, depth)
		}
		if lo != nil && t.cmp(*lo, e.key) >= 0 {
			return errors.Newf("btree: key %v not above bound %v at depth %d", e.key, *lo, depth)
		}
		if hi != nil && t.cmp(e.key, *hi) >= 0 {
			return errors.Newf("btree: key %v not below bound %v at depth %d", e.key, *hi, depth)
		}
	}

	if n.leaf() {
		for _, e := range n.entries {
			if e.left != nil {
				return errors.Newf("btree: leaf entry %v has a left subtree", e.key)
			}
		}
		if v.leafDepth < 0 {
			v.leafDepth = depth
		} else if v.leafDepth != depth {
			return errors.Wrapf(ErrLoseBalance, "leaves at depths %d and %d", v.leafDepth, depth)
		}
		return nil
	}

	for i := 0; i <= size; i++ {
		c := n.child(i)
		if c == nil {
			return errors.Wrapf(ErrLoseBalance, "internal node at depth %d lacks subtree %d", depth, i)
		}
		if c.parent != n {
			return errors.Newf("btree: subtree %d at depth %d has a stale parent", i, depth)
		}
		clo, chi := lo, hi
		if i > 0 {
			clo = &n.entries[i-1].key
		}
		if i < size {
			chi = &n.entries[i].key
		}
		if err := v.node(c, clo, chi, depth+1); err != nil {
			return err
		}
	}
	return nil
}
