package report

import (
	"fmt"
	"image/color"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/philipparndt/gomold/pkg/parting"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Chart formats
const (
	FormatPNG  = "png"
	FormatHTML = "html"
)

var (
	barColor  = color.RGBA{R: 0x5b, G: 0x8f, B: 0xd6, A: 0xff}
	bestColor = color.RGBA{R: 0xd6, G: 0x5b, B: 0x5b, A: 0xff}
)

func axisNames() []string {
	names := make([]string, len(parting.Axes))
	for i, a := range parting.Axes {
		names[i] = a.String()
	}
	return names
}

// WriteScoreChart renders the per-plane scores as a bar chart in the given
// format
func WriteScoreChart(w io.Writer, title string, res parting.SelectionResult, format string) error {
	switch format {
	case FormatPNG:
		return WriteScorePNG(w, title, res)
	case FormatHTML:
		return WriteScoreHTML(w, title, res)
	default:
		return fmt.Errorf("unsupported chart format %q", format)
	}
}

// WriteScorePNG draws the scores with gonum/plot. The chosen plane is
// highlighted.
func WriteScorePNG(w io.Writer, title string, res parting.SelectionResult) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Parting plane"
	p.Y.Label.Text = "Score (lower is better)"

	width := vg.Points(40)
	for i := range parting.Axes {
		values := make(plotter.Values, len(parting.Axes))
		values[i] = res.Scores[i]
		bars, err := plotter.NewBarChart(values, width)
		if err != nil {
			return fmt.Errorf("failed to create bar chart: %w", err)
		}
		bars.Color = barColor
		if parting.Axes[i] == res.BestAxis {
			bars.Color = bestColor
		}
		bars.LineStyle.Width = vg.Length(0)
		p.Add(bars)
	}
	p.Add(plotter.NewGrid())
	p.NominalX(axisNames()...)

	wt, err := p.WriterTo(6*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}

// WriteScoreHTML renders an interactive go-echarts page
func WriteScoreHTML(w io.Writer, title string, res parting.SelectionResult) error {
	data := make([]opts.BarData, len(parting.Axes))
	for i, a := range parting.Axes {
		c := "#5b8fd6"
		if a == res.BestAxis {
			c = "#d65b5b"
		}
		data[i] = opts.BarData{
			Name:      a.String(),
			Value:     res.Scores[i],
			ItemStyle: &opts.ItemStyle{Color: c},
		}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "900px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("best=%s symmetric=%s undercuts=%d", res.BestAxis, SymmetricPlanes(res), res.UndercutCount())}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Score"}),
	)
	bar.SetXAxis(axisNames()).
		AddSeries("score", data,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
