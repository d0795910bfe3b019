package tree

import (
	"github.com/YuminosukeSato/cartree/pkg/errors"
)

// Tree is a binary tree stored as an arena of nodes. Every reachable node is
// referenced by exactly one parent; pruning may leave unreachable nodes in
// the arena until Snapshot compacts it.
type Tree struct {
	Nodes        []Node    `json:"nodes"`
	Root         int       `json:"root"`
	FeatureNames []string  `json:"feature_names"`
	Classes      []float64 `json:"classes,omitempty"`
	ClassNames   []string  `json:"class_names,omitempty"`
	Regression   bool      `json:"regression"`
}

// Node returns the node with the given arena index.
func (t *Tree) Node(id int) *Node { return &t.Nodes[id] }

// IsLeaf reports whether the whole tree is a single leaf.
func (t *Tree) IsLeaf() bool { return t.Nodes[t.Root].Leaf }

// walk visits the subtree under id in pre-order (node, left subtree, right
// subtree) with an explicit stack. fn receives the node id and its depth.
func (t *Tree) walk(id int, fn func(id, depth int)) {
	type frame struct{ id, depth int }
	stack := []frame{{id, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(f.id, f.depth)
		n := &t.Nodes[f.id]
		if !n.Leaf {
			stack = append(stack, frame{n.Right, f.depth + 1}, frame{n.Left, f.depth + 1})
		}
	}
}

// Depth returns the number of edges on the longest root-to-leaf path.
func (t *Tree) Depth() int {
	max := 0
	t.walk(t.Root, func(_, depth int) {
		if depth > max {
			max = depth
		}
	})
	return max
}

// NLeaves returns the number of reachable leaves.
func (t *Tree) NLeaves() int {
	_, leaves := t.SubtreeError(t.Root)
	return leaves
}

// NNodes returns the number of reachable nodes.
func (t *Tree) NNodes() int {
	count := 0
	t.walk(t.Root, func(int, int) { count++ })
	return count
}

// UsedFeatures returns the feature indices referenced by reachable decision
// nodes, in first-visit order.
func (t *Tree) UsedFeatures() []int {
	seen := make(map[int]bool)
	var used []int
	t.walk(t.Root, func(id, _ int) {
		n := &t.Nodes[id]
		if !n.Leaf && !seen[n.Feature] {
			seen[n.Feature] = true
			used = append(used, n.Feature)
		}
	})
	return used
}

// Clone returns a deep copy sharing no memory with t.
func (t *Tree) Clone() *Tree {
	c := &Tree{
		Nodes:        make([]Node, len(t.Nodes)),
		Root:         t.Root,
		FeatureNames: append([]string(nil), t.FeatureNames...),
		Classes:      append([]float64(nil), t.Classes...),
		ClassNames:   append([]string(nil), t.ClassNames...),
		Regression:   t.Regression,
	}
	for i, n := range t.Nodes {
		n.Distribution = append([]float64(nil), n.Distribution...)
		c.Nodes[i] = n
	}
	return c
}

// Snapshot returns a deep copy holding only the reachable nodes, renumbered
// in pre-order so the root is node 0.
func (t *Tree) Snapshot() *Tree {
	remap := make(map[int]int)
	var order []int
	t.walk(t.Root, func(id, _ int) {
		remap[id] = len(order)
		order = append(order, id)
	})

	c := t.Clone()
	c.Root = 0
	c.Nodes = make([]Node, len(order))
	for newID, oldID := range order {
		n := t.Nodes[oldID]
		n.ID = newID
		n.Distribution = append([]float64(nil), n.Distribution...)
		if !n.Leaf {
			n.Left = remap[n.Left]
			n.Right = remap[n.Right]
		}
		c.Nodes[newID] = n
	}
	return c
}

// Check verifies the structural invariants of a tree read from outside:
// indices in range, every reachable node reached once, decision nodes with
// two children and a known feature.
func (t *Tree) Check() error {
	if len(t.Nodes) == 0 {
		return errors.NewValidationError("nodes", "tree has no nodes", 0)
	}
	if t.Root < 0 || t.Root >= len(t.Nodes) {
		return errors.NewValidationError("root", "index out of range", t.Root)
	}
	visited := make([]bool, len(t.Nodes))
	stack := []int{t.Root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[id] {
			return errors.NewValidationError("nodes", "node reachable from more than one parent", id)
		}
		visited[id] = true
		n := &t.Nodes[id]
		if n.Leaf {
			continue
		}
		if n.Feature < 0 || n.Feature >= len(t.FeatureNames) {
			return errors.NewValidationError("feature", "decision node references unknown feature", n.Feature)
		}
		for _, child := range []int{n.Left, n.Right} {
			if child < 0 || child >= len(t.Nodes) {
				return errors.NewValidationError("children", "child index out of range", child)
			}
			stack = append(stack, child)
		}
	}
	return nil
}
