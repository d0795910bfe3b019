package tree

import (
	"math"
	"time"

	"github.com/YuminosukeSato/cartree/pkg/errors"
	"github.com/YuminosukeSato/cartree/pkg/log"
)

// SubtreeError returns the summed ErrorRate of the leaves under id and the
// number of those leaves. Decision nodes contribute only through their
// leaves.
func (t *Tree) SubtreeError(id int) (total float64, leaves int) {
	t.walk(id, func(id, _ int) {
		if n := &t.Nodes[id]; n.Leaf {
			total += n.ErrorRate
			leaves++
		}
	})
	return total, leaves
}

// TotalError is SubtreeError of the root.
func (t *Tree) TotalError() float64 {
	total, _ := t.SubtreeError(t.Root)
	return total
}

// EffectiveAlpha returns (R(t) - R(T_t)) / (|leaves(T_t)| - 1) for decision
// node id: the regularization strength at which collapsing it costs nothing.
// Rounding below zero is clamped to zero.
func (t *Tree) EffectiveAlpha(id int) float64 {
	return math.Max(0, t.effectiveAlpha(id))
}

// effectiveAlpha is EffectiveAlpha without the clamp.
func (t *Tree) effectiveAlpha(id int) float64 {
	subtree, leaves := t.SubtreeError(id)
	return errors.SafeDivide(t.Nodes[id].ErrorRate-subtree, float64(leaves-1))
}

// FindWeakest returns the decision node with the smallest effective alpha.
//
// Nodes are visited node, left subtree, right subtree, and a node replaces
// the current minimum when its alpha is less than or equal to it, so the
// last visited of several equal nodes wins. Alphas are compared before
// clamping; the returned alpha is clamped. ok is false for a single-leaf
// tree.
func (t *Tree) FindWeakest() (id int, alpha float64, ok bool) {
	id, alpha = -1, math.Inf(1)
	t.walk(t.Root, func(cur, _ int) {
		if t.Nodes[cur].Leaf {
			return
		}
		if a := t.effectiveAlpha(cur); a <= alpha {
			id, alpha = cur, a
		}
	})
	return id, math.Max(0, alpha), id >= 0
}

// Prune turns decision node id into a leaf carrying its own prediction and
// error rate. Its descendants become unreachable; no other node changes.
func (t *Tree) Prune(id int) error {
	if id < 0 || id >= len(t.Nodes) {
		return errors.NewValueError("Prune", "node id out of range")
	}
	n := &t.Nodes[id]
	if n.Leaf {
		return errors.NewValueError("Prune", "node is already a leaf")
	}
	n.Leaf = true
	n.Feature = -1
	n.Threshold = 0
	n.Left = -1
	n.Right = -1
	return nil
}

// pruneWeakest prunes the weakest link and returns its effective alpha.
func (t *Tree) pruneWeakest() (float64, bool) {
	id, alpha, ok := t.FindWeakest()
	if !ok {
		return 0, false
	}
	_ = t.Prune(id)
	return alpha, true
}

// PruningPath is the sequence of (alpha, total error) pairs produced by
// pruning one fully grown tree down to its root. Entry 0 is the full tree
// at alpha 0; entry i is the tree after i prunings.
type PruningPath struct {
	Alphas      []float64 `json:"ccp_alphas"`
	TotalErrors []float64 `json:"total_errors"`
	Leaves      []int     `json:"leaves"`
}

// Len returns the number of entries.
func (p *PruningPath) Len() int { return len(p.Alphas) }

// Steps returns the number of prunings, one less than Len.
func (p *PruningPath) Steps() int { return len(p.Alphas) - 1 }

func (p *PruningPath) append(alpha float64, t *Tree) {
	total, leaves := t.SubtreeError(t.Root)
	p.Alphas = append(p.Alphas, alpha)
	p.TotalErrors = append(p.TotalErrors, total)
	p.Leaves = append(p.Leaves, leaves)
}

// CostComplexityPruningPath grows a full tree on data and prunes it one
// weakest link at a time until only the root is left, recording the
// effective alpha of each pruning and the total error afterwards.
func CostComplexityPruningPath(data *Dataset, config Config) (path *PruningPath, err error) {
	defer errors.Recover(&err, "CostComplexityPruningPath")

	full, err := growFull(data, config, "CostComplexityPruningPath")
	if err != nil {
		return nil, err
	}
	start := time.Now()

	path = &PruningPath{}
	path.append(0, full)
	for {
		alpha, ok := full.pruneWeakest()
		if !ok {
			break
		}
		path.append(alpha, full)
	}

	log.GetLoggerWithName("tree.pruner").Debug("Pruning path computed",
		log.OperationKey, log.OperationPruningPath,
		log.StepsKey, path.Steps(),
		log.DurationMsKey, time.Since(start),
	)
	return path, nil
}

// growFull validates the inputs and grows the unpruned tree.
func growFull(data *Dataset, config Config, op string) (*Tree, error) {
	if data == nil {
		return nil, errors.NewInvalidInputError(op, "dataset is nil", errors.ErrEmptyData)
	}
	if err := data.Validate(op); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	criterion, err := config.criterion()
	if err != nil {
		return nil, err
	}

	full := newBuilder(data, config, criterion).build()
	log.GetLoggerWithName("tree.builder").Debug("Full tree grown",
		log.SamplesKey, data.NSamples(),
		log.FeaturesKey, data.NFeatures(),
		log.CriterionKey, criterion.Name(),
		log.NodesKey, full.NNodes(),
		log.DepthKey, full.Depth(),
	)
	return full, nil
}
