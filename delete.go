package btree

import "github.com/cockroachdb/errors"

// remove deletes key from the subtree rooted at n. Keys are only ever
// removed from leaves: a key found in an internal node is overwritten by its
// in-order predecessor, which is removed from the leaf it lives in instead.
//
// On the way back up every node the recursion descended into is checked,
// and one left with too few entries is refilled from a sibling or merged
// with one. A merge takes an entry out of n, so n itself may end up short
// and be refilled by its own caller.
//
// Nothing is modified when key is absent.
func (t *Tree[K, V]) remove(n *node[K, V], key K) error {
	i, found := t.find(n, key)
	if !found {
		c := n.child(i)
		if c == nil {
			return errors.Wrapf(ErrKeyNotFound, "unset %v", key)
		}
		if err := t.remove(c, key); err != nil {
			return err
		}
		t.rebalance(n, i)
		return nil
	}

	e := n.entries[i]
	if e.left == nil {
		n.entries.remove(i)
		return nil
	}

	// The predecessor is the greatest key of the left subtree. It replaces
	// e in place, inheriting e's left subtree:
	//
	//   (C       L)                (C       K)
	//   ↓    ↓    ↓         →      ↓    ↓    ↓
	//      (H J K)                    (H J)
	pred := t.removeMax(e.left)
	pred.left = e.left
	n.entries[i] = pred
	e.left = nil
	t.rebalance(n, i)
	return nil
}

// removeMax removes and returns the entry with the greatest key in the
// subtree rooted at n, rebalancing along the right spine it descends.
func (t *Tree[K, V]) removeMax(n *node[K, V]) *entry[K, V] {
	if n.right != nil {
		e := t.removeMax(n.right)
		t.rebalance(n, len(n.entries))
		return e
	}
	if len(n.entries) == 0 {
		corrupt(ErrLoseBalance, "empty leaf below an internal node")
	}
	return n.entries.remove(len(n.entries) - 1)
}

// rebalance restores the minimum entry count of the subtree at position i
// of n. A sibling with entries to spare lends one through the separating
// entry, the left sibling first. Failing that, the subtree is merged with a
// sibling about their separator.
func (t *Tree[K, V]) rebalance(n *node[K, V], i int) {
	var (
		minDegree = t.MinDegree()
		c         = n.child(i)
	)
	if c == nil {
		corrupt(ErrLoseBalance, "rebalancing an absent subtree at position %d", i)
	}
	if len(c.entries) >= minDegree {
		return
	}

	var left, right *node[K, V]
	if i > 0 {
		left = sibling(n, i-1)
	}
	if i < len(n.entries) {
		right = sibling(n, i+1)
	}

	switch {
	case left != nil && len(left.entries) > minDegree:
		t.rotateRight(n, i-1)
	case right != nil && len(right.entries) > minDegree:
		t.rotateLeft(n, i)
	case left != nil:
		t.merge(n, i-1)
	case right != nil:
		t.merge(n, i)
	default:
		corrupt(ErrLoseBalance, "deficient subtree with %d entries has no siblings", len(c.entries))
	}
}

// sibling returns the subtree at position j of n, which must exist.
func sibling[K, V any](n *node[K, V], j int) *node[K, V] {
	s := n.child(j)
	if s == nil {
		corrupt(ErrExcessiveRotation, "no sibling subtree at position %d", j)
	}
	return s
}

// rotateRight moves the last entry of the subtree at position j up into the
// separator slot j, and the old separator down to the front of the subtree
// at j+1. The right subtree of the donor crosses over with the separator:
//
//	         (F)                          (E)
//	        ↓   ↓                        ↓   ↓
//	 (B D E)     (G)        →     (B D)       (F G)
//	 ↓ ↓ ↓ ↓     ↓ ↓              ↓ ↓ ↓       ↓ ↓ ↓
//	 T₁T₂T₃T₄    T₅T₆             T₁T₂T₃      T₄T₅T₆
func (t *Tree[K, V]) rotateRight(n *node[K, V], j int) {
	var (
		left     = n.child(j)
		c        = n.child(j + 1)
		sep      = n.entries[j]
		borrowed = left.entries.remove(len(left.entries) - 1)
	)
	c.entries.insert(0, sep)
	c.setChild(0, left.right)
	left.right = borrowed.left
	if left.right != nil {
		left.right.parent = left
	}
	borrowed.left = left
	n.entries[j] = borrowed

	t.stats.RightRotations++
	t.log.Debug("btree rotate", "op", "rotate-right",
		"donor", len(left.entries), "entries", len(c.entries))
}

// rotateLeft is the mirror of rotateRight: the first entry of the subtree at
// position j+1 moves up into separator slot j, and the old separator moves
// down to the end of the subtree at j.
func (t *Tree[K, V]) rotateLeft(n *node[K, V], j int) {
	var (
		c        = n.child(j)
		right    = n.child(j + 1)
		sep      = n.entries[j]
		borrowed = right.entries.remove(0)
	)
	c.entries.insert(len(c.entries), sep)
	sep.left = c.right
	c.right = borrowed.left
	if c.right != nil {
		c.right.parent = c
	}
	borrowed.left = c
	n.entries[j] = borrowed

	t.stats.LeftRotations++
	t.log.Debug("btree rotate", "op", "rotate-left",
		"donor", len(right.entries), "entries", len(c.entries))
}

// merge sinks separator j of n between the subtrees on either side of it and
// joins the three into the left subtree. The right subtree is discarded.
//
//	      (D   K)                      (K)
//	     ↓   ↓   ↓                    ↓   ↓
//	   (B) (F)  ...      →     (B D F)    ...
func (t *Tree[K, V]) merge(n *node[K, V], j int) {
	var (
		left  = n.child(j)
		right = n.child(j + 1)
		sep   = n.entries[j]
	)
	sep.left = left.right
	left.entries.insert(len(left.entries), sep)
	left.entries.splice(len(left.entries), &right.entries, 0, len(right.entries))
	left.right = right.right
	adopt(left)

	n.entries.remove(j)
	n.setChild(j, left)
	right.right = nil
	right.parent = nil

	t.stats.Merges++
	t.log.Debug("btree merge", "op", "merge",
		"entries", len(left.entries), "remaining", len(n.entries))
}
