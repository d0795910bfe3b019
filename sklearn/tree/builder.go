package tree

import (
	"github.com/YuminosukeSato/cartree/pkg/errors"
)

// builder grows a full tree into an arena. nRoot is the training set size,
// fixed for every error rate computed during one fit.
type builder struct {
	data      *Dataset
	config    Config
	criterion Criterion
	splitter  *splitter
	classes   []float64
	nRoot     int
	nodes     []Node
}

func newBuilder(data *Dataset, config Config, criterion Criterion) *builder {
	b := &builder{
		data:      data,
		config:    config,
		criterion: criterion,
		splitter:  &splitter{data: data, criterion: criterion},
		nRoot:     data.NSamples(),
	}
	if !config.Regression {
		b.classes, _ = classCounts(data.Labels)
	}
	return b
}

// build grows the tree over every row of the dataset.
func (b *builder) build() *Tree {
	idx := make([]int, b.data.NSamples())
	for i := range idx {
		idx[i] = i
	}
	root := b.grow(idx, 0)
	return &Tree{
		Nodes:        b.nodes,
		Root:         root,
		FeatureNames: append([]string(nil), b.data.FeatureNames...),
		Classes:      b.classes,
		ClassNames:   append([]string(nil), b.data.LabelNames...),
		Regression:   b.config.Regression,
	}
}

// grow appends the subtree over idx to the arena and returns its root id.
// Recursion depth is bounded by MaxDepth.
func (b *builder) grow(idx []int, depth int) int {
	labels := b.data.labelsAt(idx)
	n := len(idx)

	id := len(b.nodes)
	node := newLeaf(
		b.criterion.LeafValue(labels),
		float64(n)/float64(b.nRoot)*b.criterion.Impurity(labels),
		n,
		b.distribution(labels),
	)
	node.ID = id
	b.nodes = append(b.nodes, node)

	if isPure(labels) || depth == b.config.MaxDepth || n < b.config.MinSamples {
		return id
	}

	best, err := b.splitter.bestSplit(idx)
	if err != nil {
		var noSplit *errors.NoSplitAvailableError
		if errors.As(err, &noSplit) {
			return id
		}
		panic(err)
	}

	leftIdx, rightIdx := b.splitter.partition(idx, best)
	left := b.grow(leftIdx, depth+1)
	right := b.grow(rightIdx, depth+1)

	l, r := &b.nodes[left], &b.nodes[right]
	if l.Leaf && r.Leaf && l.Value == r.Value && l.ErrorRate == r.ErrorRate {
		// both children predict the same thing: the node becomes that leaf
		collapsed := *l
		collapsed.ID = id
		b.nodes = b.nodes[:id+1]
		b.nodes[id] = collapsed
		return id
	}

	d := &b.nodes[id]
	d.Leaf = false
	d.Feature = best.feature
	d.Threshold = best.threshold
	d.Left = left
	d.Right = right
	return id
}

// distribution returns the class proportions of labels aligned with the
// training classes. Regression trees carry none.
func (b *builder) distribution(labels []float64) []float64 {
	if b.config.Regression {
		return nil
	}
	dist := make([]float64, len(b.classes))
	classes, counts := classCounts(labels)
	j := 0
	for i, c := range classes {
		for b.classes[j] != c {
			j++
		}
		dist[j] = float64(counts[i]) / float64(len(labels))
	}
	return dist
}
