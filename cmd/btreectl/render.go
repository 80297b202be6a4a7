package main

import (
	"strings"

	btree "github.com/andjam/kvbtree"
	"github.com/xlab/treeprint"
)

// render draws the node structure of tree, one line per node labelled with
// its keys, children nested left to right.
func render(tree *btree.Tree[string, string]) string {
	root := tree.Root()
	out := treeprint.NewWithRoot(nodeLabel(root))
	addChildren(out, root)
	return out.String()
}

func addChildren(branch treeprint.Tree, n btree.Node[string, string]) {
	for _, c := range n.Children() {
		if c.Children() == nil {
			branch.AddNode(nodeLabel(c))
			continue
		}
		addChildren(branch.AddBranch(nodeLabel(c)), c)
	}
}

func nodeLabel(n btree.Node[string, string]) string {
	return "(" + strings.Join(n.Keys(), " ") + ")"
}
