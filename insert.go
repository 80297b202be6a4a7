package btree

// promotion is the result of an overflow below: an entry to be placed in
// the parent, and the new node holding the keys greater than it. The entry's
// left subtree is assigned by the parent, since it is the node the parent
// descended into.
type promotion[K, V any] struct {
	entry   *entry[K, V]
	sibling *node[K, V]
}

// absorb inserts key into the subtree rooted at n, or replaces the value of
// an existing key in place. added reports whether a new entry was created.
// A non-nil promotion means n overflowed and was split; it must be absorbed
// by the caller.
//
// A nil n is the position below a leaf where the key belongs. The new entry
// is handed up as a promotion with no sibling, so that inserting into a
// leaf and threading a split up from one level below take the same path.
func (t *Tree[K, V]) absorb(n *node[K, V], key K, value V) (p *promotion[K, V], added bool) {
	if n == nil {
		return &promotion[K, V]{entry: &entry[K, V]{key: key, value: value}}, true
	}

	i, found := t.find(n, key)
	if found {
		n.entries[i].value = value
		return nil, false
	}

	below, added := t.absorb(n.child(i), key, value)
	if below == nil {
		return nil, added
	}

	// The subtree at position i split into itself, the promoted entry and a
	// sibling. The entry is spliced in before position i. It takes the
	// subtree that was at position i, which now only holds keys below it, as
	// its left, and the sibling takes position i+1:
	//
	//   (C       P)            (C     L     P)
	//   ↓    ↓    ↓      →     ↓    ↓    ↓    ↓
	//      (H L N)                (H)  (N)
	lower := n.child(i)
	n.entries.insert(i, below.entry)
	n.setChild(i, lower)
	n.setChild(i+1, below.sibling)

	if len(n.entries) < t.degree {
		return nil, added
	}
	return t.split(n), added
}

// split splits the full node n about its median entry. n keeps the entries
// below the median; the entries above it move to a new sibling, which also
// takes n's right subtree. n's new right subtree is the median's old left.
//
// Here, with degree 4, the median L is promoted and N moves out:
//
//	n                     n            sibling
//	(D   H   L   N)       (D   H)  L   (N)
//	↓    ↓   ↓   ↓   ↓    ↓    ↓   ↓   ↓    ↓
//	T₁   T₂  T₃  T₄  T₅   T₁   T₂  T₃  T₄   T₅
func (t *Tree[K, V]) split(n *node[K, V]) *promotion[K, V] {
	var (
		mid     = t.degree / 2
		sibling = newNode[K, V](t.degree)
	)
	sibling.entries.splice(0, &n.entries, mid+1, len(n.entries))
	median := n.entries.remove(mid)

	sibling.right = n.right
	n.right = median.left
	median.left = nil
	adopt(sibling)
	adopt(n)

	t.stats.Splits++
	t.log.Debug("btree split", "op", "split",
		"kept", len(n.entries), "moved", len(sibling.entries))
	return &promotion[K, V]{entry: median, sibling: sibling}
}

// adopt points the parent reference of each of n's subtrees back at n.
func adopt[K, V any](n *node[K, V]) {
	for _, e := range n.entries {
		if e.left != nil {
			e.left.parent = n
		}
	}
	if n.right != nil {
		n.right.parent = n
	}
}
