package render

import (
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/quantumfamily/archetype/internal/roles"
)

// Score plot size in points.
const (
	plotWidth  = 4 * vg.Inch
	plotHeight = 3 * vg.Inch
)

// ScorePlot draws the three scores of res as a PNG bar chart in the role's
// accent colour.
func ScorePlot(res roles.Result) (io.WriterTo, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s (band %d)", res.Role.Name, int(res.Band))
	p.Y.Label.Text = "Score"
	p.Y.Min = 0
	p.Y.Max = roles.MaxScore

	values := plotter.Values{
		float64(res.Scores.Freedom),
		float64(res.Scores.Security),
		float64(res.Scores.Responsibility),
	}
	bars, err := plotter.NewBarChart(values, vg.Points(40))
	if err != nil {
		return nil, fmt.Errorf("score bars: %w", err)
	}
	bars.Color = parseHexColor(res.Role.Color)
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars, plotter.NewGrid())
	p.NominalX("Freedom", "Security", "Responsibility")

	wt, err := p.WriterTo(plotWidth, plotHeight, "png")
	if err != nil {
		return nil, fmt.Errorf("score plot: %w", err)
	}
	return wt, nil
}

// RenderScorePlot writes ScorePlot's PNG to w.
func RenderScorePlot(w io.Writer, res roles.Result) error {
	wt, err := ScorePlot(res)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// parseHexColor parses "#rrggbb", falling back to grey.
func parseHexColor(s string) color.Color {
	grey := color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return grey
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return grey
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
