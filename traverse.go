package btree

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Order selects how Traverse interleaves visiting a node's entries with
// descending into its subtrees.
type Order int

const (
	// LPR descends into each entry's left subtree before visiting the entry,
	// then into the node's right subtree. Keys are visited in ascending
	// order.
	LPR Order = iota
	// PLR visits all of a node's entries, then descends into each left
	// subtree in order, then into the right subtree.
	PLR
	// LRP descends into each left subtree in order and the right subtree,
	// then visits all of the node's entries.
	LRP
)

var orderNames = [...]string{LPR: "lpr", PLR: "plr", LRP: "lrp"}

func (o Order) String() string {
	if o < 0 || int(o) >= len(orderNames) {
		return "Order(" + strconv.Itoa(int(o)) + ")"
	}
	return orderNames[o]
}

// ParseOrder returns the Order named s, case-insensitively.
func ParseOrder(s string) (Order, error) {
	for o, name := range orderNames {
		if strings.EqualFold(s, name) {
			return Order(o), nil
		}
	}
	return 0, errors.Newf("btree: unknown traversal order %q", s)
}

// Traverse calls visit once for every entry in the tree, in the given order.
// visit must not modify the tree.
func (t *Tree[K, V]) Traverse(order Order, visit func(key K, value V)) {
	t.Root().Traverse(order, visit)
}

// Node is a read-only view of one node of a tree. It is valid until the
// tree is next modified.
type Node[K, V any] struct {
	n *node[K, V]
}

// Root returns the root node. The root of an empty tree has no keys.
func (t *Tree[K, V]) Root() Node[K, V] {
	return Node[K, V]{t.root}
}

// Keys returns the node's own keys in ascending order.
func (n Node[K, V]) Keys() []K {
	keys := make([]K, len(n.n.entries))
	for i, e := range n.n.entries {
		keys[i] = e.key
	}
	return keys
}

// Children returns the node's subtrees from left to right, one more than
// its keys, or nil for a leaf.
func (n Node[K, V]) Children() []Node[K, V] {
	if n.n.leaf() {
		return nil
	}
	children := make([]Node[K, V], 0, len(n.n.entries)+1)
	for i := 0; i <= len(n.n.entries); i++ {
		children = append(children, Node[K, V]{n.n.child(i)})
	}
	return children
}

// Traverse calls visit once for every entry in the subtree rooted at n, in
// the given order.
func (n Node[K, V]) Traverse(order Order, visit func(key K, value V)) {
	switch order {
	case LPR, PLR, LRP:
	default:
		panic(errors.AssertionFailedf("btree: unknown traversal order %d", int(order)))
	}
	traverse(n.n, order, visit)
}

func traverse[K, V any](n *node[K, V], order Order, visit func(K, V)) {
	if n == nil {
		return
	}
	switch order {
	case LPR:
		for _, e := range n.entries {
			traverse(e.left, order, visit)
			visit(e.key, e.value)
		}
		traverse(n.right, order, visit)
	case PLR:
		for _, e := range n.entries {
			visit(e.key, e.value)
		}
		for _, e := range n.entries {
			traverse(e.left, order, visit)
		}
		traverse(n.right, order, visit)
	case LRP:
		for _, e := range n.entries {
			traverse(e.left, order, visit)
		}
		traverse(n.right, order, visit)
		for _, e := range n.entries {
			visit(e.key, e.value)
		}
	}
}

// Keys returns every key in ascending order.
func (t *Tree[K, V]) Keys() []K {
	keys := make([]K, 0, t.length)
	t.Traverse(LPR, func(key K, _ V) {
		keys = append(keys, key)
	})
	return keys
}
