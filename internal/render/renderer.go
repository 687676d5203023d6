// Package render turns a resolved survey result into the HTML page embedded
// on the parent site, and renders the plain error bodies and score images.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"regexp"

	echartsrender "github.com/go-echarts/go-echarts/v2/render"

	"github.com/quantumfamily/archetype/internal/roles"
	"github.com/quantumfamily/archetype/internal/scene"
)

const (
	resultTemplate  = "result.html"
	messageTemplate = "message.html"
)

var jsIdent = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Options configures a Renderer.
type Options struct {
	// ParentOrigin receives the page height via postMessage.
	ParentOrigin string
	// Chart controls the embedded figure. ChartID must be a valid JavaScript
	// identifier suffix.
	Chart scene.ChartOptions
}

// Renderer renders result and message pages.
type Renderer struct {
	templates    TemplateProvider
	parentOrigin string
	chart        scene.ChartOptions
}

// NewRenderer creates a Renderer. A nil provider uses the built-in templates.
func NewRenderer(tp TemplateProvider, o Options) (*Renderer, error) {
	if tp == nil {
		tp = DefaultTemplates()
	}
	if o.Chart.ChartID == "" {
		o.Chart.ChartID = scene.DefaultChartID
	}
	if !jsIdent.MatchString(o.Chart.ChartID) {
		return nil, fmt.Errorf("chart id %q is not a valid identifier", o.Chart.ChartID)
	}
	return &Renderer{templates: tp, parentOrigin: o.ParentOrigin, chart: o.Chart}, nil
}

type scoreBar struct {
	Label   string
	Letter  string
	Score   int
	Percent int
}

type resultPage struct {
	roles.Result
	MaxBand      int
	Bars         []scoreBar
	Assets       []string
	ChartElement template.HTML
	ChartScript  template.HTML
	ChartVar     template.JS
	Selections   []map[string]bool
	Names        []string
	ParentOrigin string
}

func bars(s roles.Scores) []scoreBar {
	mk := func(label, letter string, v int) scoreBar {
		return scoreBar{Label: label, Letter: letter, Score: v, Percent: v * 100 / roles.MaxScore}
	}
	return []scoreBar{
		mk("Freedom", "F", s.Freedom),
		mk("Security", "S", s.Security),
		mk("Responsibility", "R", s.Responsibility),
	}
}

// RenderResult writes the full result page for res with sc's figure set to
// res.Band. Nothing is written if rendering fails.
func (r *Renderer) RenderResult(w io.Writer, res roles.Result, sc *scene.Scene) error {
	chart := sc.Chart(res.Band, r.chart)
	snippet := chart.RenderSnippet()

	page := resultPage{
		Result:       res,
		MaxBand:      int(roles.MaxBand),
		Bars:         bars(res.Scores),
		Assets:       chart.JSAssets.Values,
		ChartElement: template.HTML(snippet.Element),
		ChartScript:  template.HTML(snippet.Script),
		ChartVar:     template.JS(echartsrender.EchartsInstancePrefix + chart.ChartID),
		Selections:   sc.Selections(),
		Names:        sc.Names(),
		ParentOrigin: r.parentOrigin,
	}
	return r.execute(w, resultTemplate, page)
}

// RenderMessage writes the short red error paragraph shown in place of a
// result.
func (r *Renderer) RenderMessage(w io.Writer, msg string) error {
	return r.execute(w, messageTemplate, msg)
}

func (r *Renderer) execute(w io.Writer, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
