package tree

// Node is one element of a Tree arena. Children are referenced by arena
// index; -1 means none. A node is either a leaf or a decision node: a
// decision node sends rows with x[Feature] <= Threshold left and the rest
// right.
type Node struct {
	ID        int     `json:"id"`
	Leaf      bool    `json:"leaf"`
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`

	// Value is the prediction of a leaf. On a decision node it is the value
	// the node predicts once pruned (mean or mode of its samples).
	Value float64 `json:"value"`
	// ErrorRate is n_node/n_root × impurity of the node's samples, measured
	// before any split.
	ErrorRate float64 `json:"error_rate"`
	Samples   int     `json:"samples"`
	// Distribution holds class proportions aligned with Tree.Classes.
	// Regression trees leave it empty.
	Distribution []float64 `json:"distribution,omitempty"`
}

// IsLeaf reports whether the node is a leaf.
func (n *Node) IsLeaf() bool { return n.Leaf }

func newLeaf(value, errorRate float64, samples int, dist []float64) Node {
	return Node{
		Leaf:         true,
		Feature:      -1,
		Left:         -1,
		Right:        -1,
		Value:        value,
		ErrorRate:    errorRate,
		Samples:      samples,
		Distribution: dist,
	}
}
