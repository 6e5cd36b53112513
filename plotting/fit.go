// Package plotting draws fitted output rows against the observed ones.
package plotting

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/YuminosukeSato/structid/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Default canvas size of a fit plot.
const (
	DefaultWidth  = 6 * vg.Inch
	DefaultHeight = 4 * vg.Inch
)

// FitPlot builds a line plot of an observed output row and its
// reconstruction against the sample index.
func FitPlot(original, reconstructed []float64, title string) (*plot.Plot, error) {
	if len(original) == 0 {
		return nil, errors.NewModelError("FitPlot", "empty data", errors.ErrEmptyData)
	}
	if len(reconstructed) != len(original) {
		return nil, errors.NewDimensionError("FitPlot", len(original), len(reconstructed), 0)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "sample"
	p.Y.Label.Text = "value"
	p.Add(plotter.NewGrid())

	if err := plotutil.AddLinePoints(p,
		"observed", series(original),
		"reconstructed", series(reconstructed),
	); err != nil {
		return nil, errors.Wrap(err, "FitPlot")
	}
	return p, nil
}

// WriteFitPlot renders the fit plot in the given format ("png", "svg",
// "pdf", ...) to w.
func WriteFitPlot(w io.Writer, format string, original, reconstructed []float64, title string) error {
	p, err := FitPlot(original, reconstructed, title)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(DefaultWidth, DefaultHeight, format)
	if err != nil {
		return errors.Wrapf(err, "render %s plot", format)
	}
	_, err = wt.WriteTo(w)
	return errors.Wrap(err, "write plot")
}

// SaveFitPlots writes one PNG per output row into dir and returns the paths.
func SaveFitPlots(dir string, observed, predicted [][]float64) ([]string, error) {
	if len(predicted) != len(observed) {
		return nil, errors.NewDimensionError("SaveFitPlots", len(observed), len(predicted), 0)
	}
	paths := make([]string, len(observed))
	for o := range observed {
		p, err := FitPlot(observed[o], predicted[o], fmt.Sprintf("Y%d", o+1))
		if err != nil {
			return nil, err
		}
		paths[o] = filepath.Join(dir, fmt.Sprintf("y%d.png", o+1))
		if err := p.Save(DefaultWidth, DefaultHeight, paths[o]); err != nil {
			return nil, errors.Wrapf(err, "save %s", paths[o])
		}
	}
	return paths, nil
}

func series(v []float64) plotter.XYs {
	pts := make(plotter.XYs, len(v))
	for i, y := range v {
		pts[i].X = float64(i)
		pts[i].Y = y
	}
	return pts
}
