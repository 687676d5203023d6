package render

import (
	"embed"
	"html/template"
	"io"
	"io/fs"
	"sync"
)

//go:embed templates/*.html
var templateFS embed.FS

// TemplateProvider abstracts template loading and execution.
// Production uses EmbeddedTemplateProvider; tests use MockTemplateProvider.
type TemplateProvider interface {
	// GetTemplate returns a parsed template by name.
	GetTemplate(name string) (*template.Template, error)
	// ExecuteTemplate executes a template with the given data.
	ExecuteTemplate(w io.Writer, name string, data interface{}) error
}

// EmbeddedTemplateProvider loads templates from an embedded filesystem and
// caches them after the first parse. It is safe for concurrent use.
type EmbeddedTemplateProvider struct {
	fs      fs.FS
	baseDir string

	mu    sync.Mutex
	cache map[string]*template.Template
}

// NewEmbeddedTemplateProvider creates a provider with the given FS.
func NewEmbeddedTemplateProvider(fsys fs.FS, baseDir string) *EmbeddedTemplateProvider {
	return &EmbeddedTemplateProvider{
		fs:      fsys,
		baseDir: baseDir,
		cache:   make(map[string]*template.Template),
	}
}

// DefaultTemplates returns a provider over the templates built into the binary.
func DefaultTemplates() *EmbeddedTemplateProvider {
	return NewEmbeddedTemplateProvider(templateFS, "templates")
}

// GetTemplate parses and caches a template from the embedded FS.
func (p *EmbeddedTemplateProvider) GetTemplate(name string) (*template.Template, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if t, ok := p.cache[name]; ok {
		return t, nil
	}

	path := name
	if p.baseDir != "" {
		path = p.baseDir + "/" + name
	}
	content, err := fs.ReadFile(p.fs, path)
	if err != nil {
		return nil, err
	}
	t, err := template.New(name).Parse(string(content))
	if err != nil {
		return nil, err
	}
	p.cache[name] = t
	return t, nil
}

// ExecuteTemplate loads and executes a template.
func (p *EmbeddedTemplateProvider) ExecuteTemplate(w io.Writer, name string, data interface{}) error {
	t, err := p.GetTemplate(name)
	if err != nil {
		return err
	}
	return t.Execute(w, data)
}

// MockTemplateProvider provides templates for testing.
type MockTemplateProvider struct {
	Templates    map[string]string
	ExecuteError error
	ExecuteCalls []ExecuteCall
	GetError     error
}

// ExecuteCall records one ExecuteTemplate invocation.
type ExecuteCall struct {
	Name string
	Data interface{}
}

// NewMockTemplateProvider creates a mock provider with predefined templates.
func NewMockTemplateProvider(templates map[string]string) *MockTemplateProvider {
	return &MockTemplateProvider{Templates: templates}
}

// GetTemplate returns a parsed template from the mock templates.
func (m *MockTemplateProvider) GetTemplate(name string) (*template.Template, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	content, ok := m.Templates[name]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return template.New(name).Parse(content)
}

// ExecuteTemplate records the call and executes the template.
func (m *MockTemplateProvider) ExecuteTemplate(w io.Writer, name string, data interface{}) error {
	m.ExecuteCalls = append(m.ExecuteCalls, ExecuteCall{Name: name, Data: data})
	if m.ExecuteError != nil {
		return m.ExecuteError
	}
	t, err := m.GetTemplate(name)
	if err != nil {
		return err
	}
	return t.Execute(w, data)
}
