package tree

import (
	"math"
	"time"

	"github.com/YuminosukeSato/cartree/pkg/errors"
	"github.com/YuminosukeSato/cartree/pkg/log"
)

// Model is the result of one fit call: the selected tree and the
// configuration it was grown with. Its tree is never mutated after Fit.
type Model struct {
	Tree   *Tree  `json:"tree"`
	Config Config `json:"config"`
	// Path is the pruning path walked by model selection.
	Path *PruningPath `json:"-"`
}

// Fit grows a full tree on data, walks its pruning path and keeps the tree
// minimizing R(T) + CCPAlpha·|leaves(T)|.
func Fit(data *Dataset, config Config) (m *Model, err error) {
	defer errors.Recover(&err, "Fit")

	start := time.Now()
	full, err := growFull(data, config, "Fit")
	if err != nil {
		return nil, err
	}

	champion, path := selectOptimal(full, config)

	log.GetLoggerWithName("tree.selector").Debug("Tree selected",
		log.AlphaKey, config.CCPAlpha,
		log.StepsKey, path.Steps(),
		log.LeavesKey, champion.NLeaves(),
		log.DepthKey, champion.Depth(),
		log.TotalErrorKey, champion.TotalError(),
		log.DurationMsKey, time.Since(start),
	)
	return &Model{Tree: champion, Config: config, Path: path}, nil
}

// selectOptimal prunes full down to its root and returns a snapshot of the
// tree with the lowest regularized error, together with the path walked.
//
// Scores are compared with <=, so among equal scores the smaller (later)
// tree wins. The single-leaf state reached at the end is not scored unless
// Config.ScoreSingleLeaf is set; when growth already produced a single leaf
// that leaf is returned.
func selectOptimal(full *Tree, config Config) (*Tree, *PruningPath) {
	work := full.Clone()
	path := &PruningPath{}
	path.append(0, work)

	if work.IsLeaf() {
		return work.Snapshot(), path
	}

	best := math.Inf(1)
	var champion *Tree
	score := func() {
		total, leaves := work.SubtreeError(work.Root)
		if s := total + config.CCPAlpha*float64(leaves); s <= best {
			best = s
			champion = work.Snapshot()
		}
	}

	for !work.IsLeaf() {
		score()
		alpha, _ := work.pruneWeakest()
		path.append(alpha, work)
	}
	if config.ScoreSingleLeaf {
		score()
	}
	return champion, path
}
