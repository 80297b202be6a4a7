// Package btree implements an in-memory B-Tree mapping ordered keys to
// values. B-Trees are balanced multiway search trees: every node holds an
// ordered run of entries, and between any two neighbouring entries hangs the
// subtree of keys falling between them. Keeping many keys per node keeps the
// tree flat, its height growing as O(log_d n) for degree d.
//
// Each entry owns the subtree of keys smaller than its own key; the node
// owns one more subtree, right, holding the keys larger than all of its
// entries:
//
//	        (10              20)  right
//	       ↓                ↓     ↓
//	   (5 6) right     (12 17)   (30)
//
// Trees grow by splitting nodes that reach degree entries and promoting the
// median entry to the parent. They shrink by borrowing entries from, or
// merging with, a sibling when a deletion leaves a node with fewer than
// MinDegree entries.
//
// A Tree is not safe for concurrent use.
package btree

import (
	"cmp"
	"log/slog"

	"github.com/cockroachdb/errors"
)

// entry is a key/value pair together with the subtree holding the keys
// between the previous entry's key and its own.
type entry[K, V any] struct {
	key   K
	value V
	left  *node[K, V]
}

// node holds its entries in ascending key order. parent is a back reference
// kept consistent by every operation that moves a subtree; it never owns.
type node[K, V any] struct {
	entries list[*entry[K, V]]
	right   *node[K, V]
	parent  *node[K, V]
}

func newNode[K, V any](degree int) *node[K, V] {
	return &node[K, V]{entries: newList[*entry[K, V]](degree)}
}

// child returns the subtree at position i: the left subtree of entry i, or
// right when i is one past the last entry.
func (n *node[K, V]) child(i int) *node[K, V] {
	if i == len(n.entries) {
		return n.right
	}
	return n.entries[i].left
}

// setChild replaces the subtree at position i and adopts it.
func (n *node[K, V]) setChild(i int, c *node[K, V]) {
	if i == len(n.entries) {
		n.right = c
	} else {
		n.entries[i].left = c
	}
	if c != nil {
		c.parent = n
	}
}

// leaf reports whether n has no subtrees. Every subtree of a node is either
// present or absent together, so checking right suffices.
func (n *node[K, V]) leaf() bool {
	return n.right == nil
}

// Stats counts the structural changes a Tree has gone through.
type Stats struct {
	Splits         int // nodes split on overflow
	Merges         int // sibling pairs merged on underflow
	LeftRotations  int // entries borrowed from a right sibling
	RightRotations int // entries borrowed from a left sibling
	Grows          int // new roots created above a split
	Shrinks        int // empty roots replaced by their only child
}

// Tree is a B-Tree of degree d: no node holds d entries once a mutation
// returns, and every node other than the root holds at least (d-1)/2.
type Tree[K, V any] struct {
	root   *node[K, V]
	degree int
	cmp    func(a, b K) int
	length int
	stats  Stats
	log    *slog.Logger
	verify bool
}

// New returns an empty tree ordering keys by cmp, which must return a
// negative number, zero or a positive number when a is less than, equal to
// or greater than b. degree is the entry count at which a node splits; it
// must be at least MinimumDegree.
func New[K, V any](degree int, cmp func(a, b K) int, opts ...Option) (*Tree[K, V], error) {
	if degree < MinimumDegree {
		return nil, errors.Wrapf(ErrInvalidDegree, "degree %d is below %d", degree, MinimumDegree)
	}
	if cmp == nil {
		return nil, errors.New("btree: nil comparator")
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	return &Tree[K, V]{
		root:   newNode[K, V](degree),
		degree: degree,
		cmp:    cmp,
		log:    o.logger.With("degree", degree),
		verify: o.verify,
	}, nil
}

// NewOrdered returns an empty tree over a naturally ordered key type.
func NewOrdered[K cmp.Ordered, V any](degree int, opts ...Option) (*Tree[K, V], error) {
	return New[K, V](degree, cmp.Compare[K], opts...)
}

// Degree returns the entry count at which nodes split.
func (t *Tree[K, V]) Degree() int {
	return t.degree
}

// MinDegree returns the fewest entries a node other than the root may hold.
func (t *Tree[K, V]) MinDegree() int {
	return (t.degree - 1) / 2
}

// Len returns the number of keys in the tree.
func (t *Tree[K, V]) Len() int {
	return t.length
}

// Height returns the number of node levels. An empty tree has height 1.
func (t *Tree[K, V]) Height() int {
	h := 1
	for n := t.root; !n.leaf(); n = n.right {
		h++
	}
	return h
}

// Stats returns the structural change counters.
func (t *Tree[K, V]) Stats() Stats {
	return t.stats
}

// Get returns the value stored under key, if any.
func (t *Tree[K, V]) Get(key K) (value V, found bool) {
	for n := t.root; n != nil; {
		i, ok := t.find(n, key)
		if ok {
			return n.entries[i].value, true
		}
		n = n.child(i)
	}
	return
}

// Has reports whether key is in the tree.
func (t *Tree[K, V]) Has(key K) bool {
	_, found := t.Get(key)
	return found
}

// Set stores value under key, replacing the value of an existing key in
// place. Inserting a new key may split nodes along the search path, and
// splitting the root adds a level to the tree.
func (t *Tree[K, V]) Set(key K, value V) {
	p, added := t.absorb(t.root, key, value)
	if added {
		t.length++
	}
	if p != nil {

		// The root split about its median entry. A new root is created
		// around the promoted entry, whose left subtree is the old root and
		// whose right is the split-off sibling:
		//
		//          newRoot
		//          (H)
		//          ↓  ↓
		//   (A D F)    (L N)
		root := newNode[K, V](t.degree)
		root.entries.insert(0, p.entry)
		root.setChild(0, t.root)
		root.setChild(1, p.sibling)
		t.root = root
		t.stats.Grows++
		t.log.Debug("btree grow", "op", "grow", "height", t.Height())
	}
	t.checkInvariants()
}

// Unset removes key from the tree. It returns an error wrapping
// ErrKeyNotFound if key is absent.
func (t *Tree[K, V]) Unset(key K) error {
	if err := t.remove(t.root, key); err != nil {
		return err
	}
	t.length--

	if len(t.root.entries) == 0 && t.root.right != nil {

		// The last separator of the root sank into a merge below. Its only
		// child becomes the new root:
		//
		//   root
		//   ( )             new root
		//     ↓       →     (C  L  P)
		//     (C  L  P)
		old := t.root
		t.root = old.right
		t.root.parent = nil
		old.right = nil
		t.stats.Shrinks++
		t.log.Debug("btree shrink", "op", "shrink", "height", t.Height())
	}
	t.checkInvariants()
	return nil
}

// Clear removes every key and detaches all nodes from each other, leaving
// an empty tree that can be reused. The stats are reset.
func (t *Tree[K, V]) Clear() {
	release(t.root)
	t.root = newNode[K, V](t.degree)
	t.length = 0
	t.stats = Stats{}
}

func release[K, V any](n *node[K, V]) {
	if n == nil {
		return
	}
	for _, e := range n.entries {
		release(e.left)
		e.left = nil
	}
	release(n.right)
	n.entries = nil
	n.right = nil
	n.parent = nil
}

// find locates key within n: the index of the matching entry, or else the
// position of the subtree key would be found in.
func (t *Tree[K, V]) find(n *node[K, V], key K) (int, bool) {
	return find(n.entries, func(e *entry[K, V]) int {
		return t.cmp(key, e.key)
	})
}

func (t *Tree[K, V]) checkInvariants() {
	if !t.verify {
		return
	}
	if err := t.Verify(); err != nil {
		panic(errors.WithAssertionFailure(err))
	}
}
