package tree

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/cartree/pkg/errors"
)

// PlotPruningPath draws total error against effective alpha as a step line
// with markers and saves it to filename. The image format follows the file
// extension (.png, .svg, .pdf, ...).
func PlotPruningPath(path *PruningPath, filename string) error {
	if path == nil || path.Len() == 0 {
		return errors.NewValueError("PlotPruningPath", "empty pruning path")
	}

	p := plot.New()
	p.Title.Text = "Total error vs effective alpha"
	p.X.Label.Text = "effective alpha"
	p.Y.Label.Text = "total error of leaves"

	pts := make(plotter.XYs, path.Len())
	for i := range pts {
		pts[i].X = path.Alphas[i]
		pts[i].Y = path.TotalErrors[i]
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return errors.Wrap(err, "failed to build path line")
	}
	line.StepStyle = plotter.PostStep

	points, err := plotter.NewScatter(pts)
	if err != nil {
		return errors.Wrap(err, "failed to build path points")
	}

	p.Add(line, points, plotter.NewGrid())
	if err := p.Save(6*vg.Inch, 4*vg.Inch, filename); err != nil {
		return errors.Wrapf(err, "failed to save plot to %s", filename)
	}
	return nil
}
