package cluster

import (
	"math"

	"github.com/ontomix/GeneSet-Insight/pkg/errors"
)

// NodeKind tags arena entries as leaves or internal merge nodes.
type NodeKind string

const (
	KindLeaf     NodeKind = "leaf"
	KindInternal NodeKind = "internal"
)

// TreeNode is one arena entry of the binary merge tree.  A leaf wraps a
// result-list index at height 0; an internal node joins two earlier arena
// entries at half their merge distance.  Fields a kind does not use hold -1.
type TreeNode struct {
	Kind NodeKind `json:"kind"`

	// Leaf is the result-list index this leaf represents; -1 on internal
	// nodes.
	Leaf int `json:"leaf"`

	// Left and Right are arena indices of the children; -1 on leaves.
	Left  int `json:"left"`
	Right int `json:"right"`

	// Height is half the pairwise distance at which the merge happened —
	// UPGMA's defining convention, not the distance itself.  Leaves sit at 0.
	Height float64 `json:"height"`

	// Size counts the original leaves folded into this node.
	Size int `json:"size"`
}

// Tree is the arena-backed binary merge tree: index-addressed nodes with
// exactly one root, which for n leaves is preceded by n-1 internal nodes.
// The flat layout keeps ownership trivial and serializes cheaply.
type Tree struct {
	Nodes  []TreeNode `json:"nodes"`
	Root   int        `json:"root"`
	Labels []string   `json:"labels"`
}

// LeafCount returns the number of original inputs folded into the tree.
func (t *Tree) LeafCount() int {
	return (len(t.Nodes) + 1) / 2
}

// Node returns the arena entry at index i.
func (t *Tree) Node(i int) (TreeNode, error) {
	if i < 0 || i >= len(t.Nodes) {
		return TreeNode{}, errors.Newf(errors.ErrCodeClusterIndexOutOfRange,
			"node index %d outside arena of %d", i, len(t.Nodes))
	}
	return t.Nodes[i], nil
}

// RootNode returns the root entry.
func (t *Tree) RootNode() TreeNode {
	return t.Nodes[t.Root]
}

// LeafOrder returns the result-list indices in left-to-right dendrogram
// order, the in-order walk of the merge tree.
func (t *Tree) LeafOrder() []int {
	order := make([]int, 0, t.LeafCount())
	var walk func(i int)
	walk = func(i int) {
		node := t.Nodes[i]
		if node.Kind == KindLeaf {
			order = append(order, node.Leaf)
			return
		}
		walk(node.Left)
		walk(node.Right)
	}
	if len(t.Nodes) > 0 {
		walk(t.Root)
	}
	return order
}

// UPGMA builds the binary merge tree for the distance matrix.
//
// The algorithm keeps a set of active clusters, initially one singleton per
// matrix row, and merges the closest pair m-1 times.  The pair scan runs in
// fixed i<j order and the first minimum wins, so ties resolve
// deterministically for a fixed input order — callers should assume nothing
// stronger.  Distances from a merged cluster are the size-weighted average
// of its halves, which is what separates UPGMA from unweighted pair
// averaging once cluster sizes diverge.
//
// Zero inputs yield a nil tree; a single input yields one leaf and no merge.
func UPGMA(m *DistanceMatrix) (*Tree, error) {
	if m == nil || m.Size() == 0 {
		return nil, nil
	}
	n := m.Size()
	if len(m.Labels) != n {
		return nil, errors.Newf(errors.ErrCodeClusterMatrixShape,
			"labels (%d) and matrix rows (%d) disagree", len(m.Labels), n)
	}

	tree := &Tree{
		Nodes:  make([]TreeNode, 0, 2*n-1),
		Labels: append([]string(nil), m.Labels...),
	}
	for i := 0; i < n; i++ {
		tree.Nodes = append(tree.Nodes, TreeNode{
			Kind: KindLeaf, Leaf: i, Left: -1, Right: -1, Height: 0, Size: 1,
		})
	}
	if n == 1 {
		tree.Root = 0
		return tree, nil
	}

	// Working copy: the merge loop rewrites rows as clusters fuse.
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = append([]float64(nil), m.rows[i]...)
	}

	// active[slot] is the arena index of the cluster occupying the slot, or
	// -1 once the slot is retired into a merge.
	active := make([]int, n)
	for i := range active {
		active[i] = i
	}

	for remaining := n; remaining > 1; remaining-- {
		bestI, bestJ := -1, -1
		bestD := math.Inf(1)
		for i := 0; i < n; i++ {
			if active[i] < 0 {
				continue
			}
			for j := i + 1; j < n; j++ {
				if active[j] < 0 {
					continue
				}
				if dist[i][j] < bestD {
					bestD = dist[i][j]
					bestI, bestJ = i, j
				}
			}
		}

		a, b := active[bestI], active[bestJ]
		sizeA, sizeB := tree.Nodes[a].Size, tree.Nodes[b].Size
		tree.Nodes = append(tree.Nodes, TreeNode{
			Kind:   KindInternal,
			Leaf:   -1,
			Left:   a,
			Right:  b,
			Height: bestD / 2,
			Size:   sizeA + sizeB,
		})
		merged := len(tree.Nodes) - 1

		for k := 0; k < n; k++ {
			if k == bestI || k == bestJ || active[k] < 0 {
				continue
			}
			d := (dist[bestI][k]*float64(sizeA) + dist[bestJ][k]*float64(sizeB)) /
				float64(sizeA+sizeB)
			dist[bestI][k] = d
			dist[k][bestI] = d
		}

		// The lower slot survives as the merged cluster; the other retires.
		active[bestI] = merged
		active[bestJ] = -1
	}

	tree.Root = len(tree.Nodes) - 1
	return tree, nil
}
