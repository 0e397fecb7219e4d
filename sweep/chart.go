package sweep

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/katalvlaran/voltmargin/margin"
)

// SaveChart draws the worst value of every margin family against the
// load multiplier and saves the figure; the format follows the file
// extension (svg, png, pdf). Non-convergent scenarios and non-finite
// values are left out of the tracks.
func SaveChart(path string, records []Record) error {
	p := plot.New()
	p.Title.Text = "voltage stability margins"
	p.X.Label.Text = "load multiplier"
	p.Y.Label.Text = "worst margin"
	p.Legend.Top = true

	families := []margin.Family{
		margin.FamilyInjection,
		margin.FamilyLIndex,
		margin.FamilyBranch,
		margin.FamilyPath,
	}
	for _, fam := range families {
		track := familyTrack(records, fam)
		if len(track) == 0 {
			continue
		}
		line, err := plotter.NewLine(track)
		if err != nil {
			return fmt.Errorf("sweep: chart %s: %w", fam, err)
		}
		styleLine(line, fam)
		p.Add(line)
		p.Legend.Add(fam.String(), line)
	}

	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("sweep: save chart: %w", err)
	}

	return nil
}

// familyTrack collects the plottable (multiplier, worst value) points of
// one family.
func familyTrack(records []Record, fam margin.Family) plotter.XYs {
	track := make(plotter.XYs, 0, len(records))
	for _, rec := range records {
		if !rec.Converged {
			continue
		}
		var v float64
		switch fam {
		case margin.FamilyInjection:
			v = rec.Injection
		case margin.FamilyLIndex:
			v = rec.LIndex
		case margin.FamilyBranch:
			v = rec.Branch
		case margin.FamilyPath:
			v = rec.Path
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		track = append(track, plotter.XY{X: rec.Multiplier, Y: v})
	}

	return track
}

// styleLine applies the family's fixed visual style.
func styleLine(line *plotter.Line, fam margin.Family) {
	line.LineStyle.Width = vg.Points(1.5)
	switch fam {
	case margin.FamilyInjection:
		line.LineStyle.Color = color.Black
	case margin.FamilyLIndex:
		line.LineStyle.Color = color.Gray{Y: 0x80}
	case margin.FamilyBranch:
		line.LineStyle.Color = color.RGBA{B: 0xcc, A: 0xff}
		line.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(2)}
	case margin.FamilyPath:
		line.LineStyle.Color = color.RGBA{R: 0xcc, A: 0xff}
		line.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(2)}
	}
}
