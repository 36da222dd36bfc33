package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	cabinetFill    = color.RGBA{R: 100, G: 149, B: 237, A: 150}
	cabinetOutline = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	foundationFill = color.RGBA{R: 128, G: 128, B: 128, A: 120}
	limitRed       = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)

// ExportElevation exports the sign elevation to an image file. The format
// follows the file extension (png, svg, pdf).
func ExportElevation(data ElevationData, filename string) error {
	if data.OverallHeightFt <= 0 || data.SignHeightFt <= 0 {
		return fmt.Errorf("elevation needs positive sign and overall heights")
	}

	p := plot.New()
	p.Title.Text = "Sign Elevation"
	p.X.Label.Text = "Width (ft)"
	p.Y.Label.Text = "Elevation (ft)"

	poles := data.PoleCount
	if poles < 1 {
		poles = 1
	}
	poleXs := []float64{0}
	if poles == 2 {
		poleXs = []float64{-data.PoleSpacingFt / 2, data.PoleSpacingFt / 2}
	}

	// Cabinet
	halfW := data.SignWidthFt / 2
	top := data.OverallHeightFt
	bottom := data.PoleHeightFt
	cabinet, err := plotter.NewPolygon(plotter.XYs{
		{X: -halfW, Y: bottom},
		{X: halfW, Y: bottom},
		{X: halfW, Y: top},
		{X: -halfW, Y: top},
	})
	if err != nil {
		return err
	}
	cabinet.Color = cabinetFill
	cabinet.LineStyle.Color = cabinetOutline
	cabinet.LineStyle.Width = vg.Points(1.5)
	p.Add(cabinet)

	// Poles from grade to the cabinet
	for _, x := range poleXs {
		pole, err := plotter.NewLine(plotter.XYs{
			{X: x, Y: 0},
			{X: x, Y: bottom},
		})
		if err != nil {
			return err
		}
		pole.LineStyle.Width = vg.Points(3)
		pole.LineStyle.Color = color.Black
		p.Add(pole)
	}

	// Foundation below grade
	var below float64
	switch {
	case data.FootingWidthFt > 0:
		below = data.FootingThicknessFt
		fhw := data.FootingWidthFt / 2
		footing, err := plotter.NewPolygon(plotter.XYs{
			{X: -fhw, Y: -data.FootingThicknessFt},
			{X: fhw, Y: -data.FootingThicknessFt},
			{X: fhw, Y: 0},
			{X: -fhw, Y: 0},
		})
		if err != nil {
			return err
		}
		footing.Color = foundationFill
		footing.LineStyle.Color = color.Black
		p.Add(footing)
	case data.EmbedDepthFt > 0:
		below = data.EmbedDepthFt
		phw := data.PierDiameterFt / 2
		for _, x := range poleXs {
			pier, err := plotter.NewPolygon(plotter.XYs{
				{X: x - phw, Y: -data.EmbedDepthFt},
				{X: x + phw, Y: -data.EmbedDepthFt},
				{X: x + phw, Y: 0},
				{X: x - phw, Y: 0},
			})
			if err != nil {
				return err
			}
			pier.Color = foundationFill
			pier.LineStyle.Color = color.Black
			p.Add(pier)
		}
	}

	// Grade line past the widest feature
	extent := halfW
	if data.FootingWidthFt/2 > extent {
		extent = data.FootingWidthFt / 2
	}
	if poles == 2 && data.PoleSpacingFt/2+2 > extent {
		extent = data.PoleSpacingFt/2 + 2
	}
	extent += 2
	grade, err := plotter.NewLine(plotter.XYs{
		{X: -extent, Y: 0},
		{X: extent, Y: 0},
	})
	if err != nil {
		return err
	}
	grade.LineStyle.Width = vg.Points(1.5)
	grade.LineStyle.Color = color.RGBA{R: 139, G: 69, B: 19, A: 255}
	grade.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
	p.Add(grade)

	// Annotations
	labels := []struct {
		x, y float64
		text string
	}{
		{extent - 1, 0.3, "grade"},
	}
	if data.SectionName != "" {
		labels = append(labels, struct {
			x, y float64
			text string
		}{poleXs[0] + 0.5, bottom / 2, data.SectionName})
	}
	if below > 0 {
		labels = append(labels, struct {
			x, y float64
			text string
		}{poleXs[0] + 0.5, -below / 2, fmt.Sprintf("%.1f ft", below)})
	}
	for _, lbl := range labels {
		l, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    []plotter.XY{{X: lbl.x, Y: lbl.y}},
			Labels: []string{lbl.text},
		})
		if err != nil {
			return err
		}
		p.Add(l)
	}

	p.Y.Min = -below - 1
	p.Y.Max = top + 2
	p.X.Min = -extent - 1
	p.X.Max = extent + 1

	return savePlot(p, 8*vg.Inch, 6*vg.Inch, filename)
}

// ExportUtilization exports a bar chart of demand/capacity ratios with the
// unity limit marked. Labels and ratios pair up by index.
func ExportUtilization(labels []string, ratios []float64, filename string) error {
	if len(labels) != len(ratios) {
		return fmt.Errorf("labels and ratios length mismatch: %d vs %d", len(labels), len(ratios))
	}
	if len(ratios) == 0 {
		return fmt.Errorf("no ratios to chart")
	}

	p := plot.New()
	p.Title.Text = "Design Utilization"
	p.Y.Label.Text = "Demand / Capacity"

	bars, err := plotter.NewBarChart(plotter.Values(ratios), vg.Points(30))
	if err != nil {
		return err
	}
	bars.Color = cabinetFill
	bars.LineStyle.Color = cabinetOutline
	p.Add(bars)
	p.NominalX(labels...)

	limit, err := plotter.NewLine(plotter.XYs{
		{X: -0.5, Y: 1.0},
		{X: float64(len(ratios)) - 0.5, Y: 1.0},
	})
	if err != nil {
		return err
	}
	limit.LineStyle.Width = vg.Points(1.5)
	limit.LineStyle.Color = limitRed
	limit.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	p.Add(limit)

	maxRatio := 0.0
	for _, r := range ratios {
		if r > maxRatio {
			maxRatio = r
		}
	}
	p.Y.Min = 0
	p.Y.Max = 1.3
	if maxRatio*1.15 > p.Y.Max {
		p.Y.Max = maxRatio * 1.15
	}

	return savePlot(p, 8*vg.Inch, 6*vg.Inch, filename)
}

// savePlot writes the plot in the format named by the file extension,
// defaulting to PNG, creating the directory as needed.
func savePlot(p *plot.Plot, width, height vg.Length, filename string) error {
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		os.MkdirAll(dir, 0755)
	}

	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}
