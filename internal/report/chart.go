package report

import (
	"errors"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/simon-techkid/SpotifyGPX-sub000/internal/correlate"
)

// DefaultBins is the histogram resolution used by PlotAccuracy.
const DefaultBins = 20

// PlotAccuracy renders a histogram of absolute pairing accuracy in seconds.
// The image format follows the file extension (png, svg, pdf).
func PlotAccuracy(filename string, pairings []correlate.Pairing, bins int) error {
	if len(pairings) == 0 {
		return errors.New("no pairings to plot")
	}
	if bins <= 0 {
		bins = DefaultBins
	}

	values := make(plotter.Values, len(pairings))
	for i, p := range pairings {
		values[i] = p.AbsAccuracySeconds()
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Pairing accuracy (%d pairings)", len(pairings))
	p.X.Label.Text = "seconds between record and sample"
	p.Y.Label.Text = "pairings"

	hist, err := plotter.NewHist(values, bins)
	if err != nil {
		return fmt.Errorf("build histogram: %w", err)
	}
	p.Add(hist)

	if err := p.Save(8*vg.Inch, 4*vg.Inch, filename); err != nil {
		return fmt.Errorf("save accuracy plot: %w", err)
	}
	return nil
}
