package scene

import (
	"fmt"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/quantumfamily/archetype/internal/roles"
)

// DefaultChartID is used when ChartOptions leaves ChartID empty. go-echarts
// exposes the instance to scripts as goecharts_<ChartID>.
const DefaultChartID = "archetype_scene"

// Initial camera: looking at the origin from (1,1,1), a little further out
// than the echarts-gl default. ViewControl in go-echarts only exposes
// rotation, so the angles are applied after init.
const (
	cameraAlpha    = 35
	cameraBeta     = 45
	cameraDistance = 240
)

// ChartOptions controls how the figure is embedded in a page.
type ChartOptions struct {
	ChartID    string
	Width      string
	Height     string
	AssetsHost string
}

func (co ChartOptions) withDefaults() ChartOptions {
	if co.ChartID == "" {
		co.ChartID = DefaultChartID
	}
	if co.Width == "" {
		co.Width = "100%"
	}
	if co.Height == "" {
		co.Height = "600px"
	}
	return co
}

// Chart renders the scene as an echarts-gl figure with band active. Every
// series of a band shares the band's name, so the hidden legend's selection
// switches a whole band on or off at once.
func (s *Scene) Chart(active roles.Band, co ChartOptions) *charts.Line3D {
	co = co.withDefaults()

	c := charts.NewLine3D()
	lim := math.Ceil(s.extent*2) / 2
	c.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			ChartID:    co.ChartID,
			Width:      co.Width,
			Height:     co.Height,
			AssetsHost: co.AssetsHost,
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:     opts.Bool(false),
			Data:     s.seriesNames(),
			Selected: s.Selection(active),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(false)}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Show: opts.Bool(false), Min: -lim, Max: lim}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Show: opts.Bool(false), Min: -lim, Max: lim}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Show: opts.Bool(false), Min: -lim, Max: lim}),
		charts.WithGrid3DOpts(opts.Grid3D{
			Show:        opts.Bool(false),
			ViewControl: &opts.ViewControl{AutoRotate: opts.Bool(false)},
		}),
	)

	c.AddJSFuncStrs(types.FuncStr(fmt.Sprintf(
		"%s.setOption({grid3D:{viewControl:{alpha:%d,beta:%d,distance:%d}}});",
		"%MY_ECHARTS%", cameraAlpha, cameraBeta, cameraDistance)))

	for _, p := range s.Primitives {
		name := p.Series()
		switch p.Kind {
		case KindLabel:
			c.AddSeries(name, []opts.Chart3DData{{
				Name:  p.Text,
				Value: vecValue(p.Position),
			}}, labelSeries(p))
		default:
			style := charts.WithLineStyleOpts(opts.LineStyle{
				Color:   p.Color,
				Width:   2,
				Opacity: opts.Float(float32(p.Opacity)),
			})
			for _, line := range p.Lines {
				c.AddSeries(name, polyline(line), style)
			}
		}
	}
	return c
}

// seriesNames lists the series groups in first-appearance order.
func (s *Scene) seriesNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, p := range s.Primitives {
		if n := p.Series(); !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	return names
}

// labelSeries turns a line3D series into a text-only scatter3D one.
func labelSeries(p Primitive) charts.SeriesOpts {
	return charts.WithSeriesOpts(func(s *charts.SingleSeries) {
		s.Type = types.ChartScatter3D
		s.SymbolSize = 1
		s.Label = &opts.Label{
			Show:       opts.Bool(true),
			Formatter:  "{b}",
			Color:      p.Color,
			FontSize:   16,
			FontFamily: "Arial, sans-serif",
		}
	})
}

func polyline(pts []r3.Vec) []opts.Chart3DData {
	data := make([]opts.Chart3DData, len(pts))
	for i, v := range pts {
		data[i] = opts.Chart3DData{Value: vecValue(v)}
	}
	return data
}

func vecValue(v r3.Vec) []interface{} {
	return []interface{}{round(v.X), round(v.Y), round(v.Z)}
}

// round trims float noise from the serialised figure.
func round(f float64) float64 {
	return math.Round(f*1e4) / 1e4
}
