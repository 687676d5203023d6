package render

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"io/fs"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantumfamily/archetype/internal/roles"
	"github.com/quantumfamily/archetype/internal/scene"
)

func engineerResult(t *testing.T) roles.Result {
	t.Helper()
	res, err := roles.Resolve(roles.DefaultCatalog(), roles.Scores{Freedom: 3, Security: 2, Responsibility: 4}, 3)
	require.NoError(t, err)
	return res
}

func defaultScene(t *testing.T) *scene.Scene {
	t.Helper()
	sc, err := scene.Build(scene.DefaultOptions(), roles.DefaultCatalog().Names())
	require.NoError(t, err)
	return sc
}

func TestRenderResult(t *testing.T) {
	t.Parallel()

	r, err := NewRenderer(nil, Options{
		ParentOrigin: "https://thequantumfamily.com",
		Chart:        scene.ChartOptions{AssetsHost: "https://assets.example/echarts/"},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.RenderResult(&buf, engineerResult(t), defaultScene(t)))
	page := buf.String()

	for _, want := range []string{
		"<h1>Engineer!!</h1>",
		"Your survey suggests the Progressive Game.",
		"Freedom (F = 3)",
		"Security (S = 2)",
		"Responsibility (R = 4)",
		"width:60%;",
		"width:40%;",
		"width:80%;",
		"What your choices revealed.",
		"The grey sphere indicates the space a pupil is permitted to occupy.",
		`id="band-slider"`,
		`value="3"`,
		"legendSelect",
		"var chart = goecharts_archetype_scene;",
		"parent.postMessage(height,",
		"thequantumfamily.com",
		"https://assets.example/echarts/echarts-gl.min.js",
		`id="archetype_scene"`,
	} {
		assert.Contains(t, page, want)
	}
	for _, trait := range roles.DefaultCatalog().Names() {
		assert.Contains(t, page, trait, "slider names every band")
	}
}

func TestRenderResult_NoParentOriginSkipsPostMessage(t *testing.T) {
	t.Parallel()

	r, err := NewRenderer(nil, Options{ParentOrigin: ""})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.RenderResult(&buf, engineerResult(t), defaultScene(t)))
	assert.NotContains(t, buf.String(), "postMessage")
	assert.Contains(t, buf.String(), "legendSelect")
}

func TestRenderResult_EscapesRoleText(t *testing.T) {
	t.Parallel()

	r, err := NewRenderer(nil, Options{})
	require.NoError(t, err)

	res := engineerResult(t)
	res.Role.Definition = "<script>alert(1)</script>"
	var buf bytes.Buffer
	require.NoError(t, r.RenderResult(&buf, res, defaultScene(t)))
	assert.NotContains(t, buf.String(), "<script>alert(1)</script>")
	assert.Contains(t, buf.String(), "&lt;script&gt;alert(1)&lt;/script&gt;")
}

func TestRenderMessage(t *testing.T) {
	t.Parallel()

	r, err := NewRenderer(nil, Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.RenderMessage(&buf, "No results found for user: <b>x</b>"))
	got := strings.TrimSpace(buf.String())
	assert.Equal(t, "<p style='color:red; text-align:center;'>No results found for user: &lt;b&gt;x&lt;/b&gt;</p>", got)
}

func TestNewRenderer_BadChartID(t *testing.T) {
	t.Parallel()

	_, err := NewRenderer(nil, Options{Chart: scene.ChartOptions{ChartID: "bad-id"}})
	assert.Error(t, err)
}

func TestRenderer_TemplateErrorWritesNothing(t *testing.T) {
	t.Parallel()

	mock := NewMockTemplateProvider(map[string]string{"message.html": "{{ . }}"})
	mock.ExecuteError = errors.New("boom")
	r, err := NewRenderer(mock, Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	err = r.RenderMessage(&buf, "hello")
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
	require.Len(t, mock.ExecuteCalls, 1)
	assert.Equal(t, "message.html", mock.ExecuteCalls[0].Name)
}

func TestMockTemplateProvider(t *testing.T) {
	t.Parallel()

	mock := NewMockTemplateProvider(map[string]string{"hi.html": "hi {{ . }}"})
	var buf bytes.Buffer
	require.NoError(t, mock.ExecuteTemplate(&buf, "hi.html", "there"))
	assert.Equal(t, "hi there", buf.String())

	_, err := mock.GetTemplate("missing.html")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	mock.GetError = errors.New("nope")
	_, err = mock.GetTemplate("hi.html")
	assert.Error(t, err)
}

func TestEmbeddedTemplateProvider_Concurrent(t *testing.T) {
	t.Parallel()

	p := DefaultTemplates()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.GetTemplate(messageTemplate)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	_, err := p.GetTemplate("nope.html")
	assert.Error(t, err)
}

func TestScorePlot(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, RenderScorePlot(&buf, engineerResult(t)))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Greater(t, img.Bounds().Dx(), 0)
}

func TestParseHexColor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff}, parseHexColor("#ff7f0e"))
	grey := color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	assert.Equal(t, grey, parseHexColor("orange"))
	assert.Equal(t, grey, parseHexColor("#zzzzzz"))
}
