package rendering

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/a-h/templ"

	"github.com/nfrund/onlinehelp/internal/onlinehelp"
)

// TemplateData is the data a template topic is executed with. Keys are
// "Topic", "Title", "Request" and, when the caller provides it,
// "TopicContent". Referencing a key that is not set fails the render.
type TemplateData map[string]any

// Templates holds the parsed templates of template topics, keyed by file path.
type Templates struct {
	funcs     template.FuncMap
	templates map[string]*template.Template
	mu        sync.RWMutex
}

// NewTemplates creates an empty template cache.
func NewTemplates() *Templates {
	return &Templates{
		funcs: template.FuncMap{
			"safeHTML": func(s string) template.HTML { return template.HTML(s) },
		},
		templates: make(map[string]*template.Template),
	}
}

// Get returns the parsed template of a topic, parsing it on first use.
func (t *Templates) Get(topic onlinehelp.TemplatedTopic) (*template.Template, error) {
	t.mu.RLock()
	tmpl, ok := t.templates[topic.Path()]
	t.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	text, err := topic.ReadTemplate()
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	tmpl, err = template.New(topic.Path()).Funcs(t.funcs).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, &onlinehelp.HelpError{
			Type:    onlinehelp.ErrorRenderFailed,
			Topic:   topic.TopicPath(),
			Path:    topic.Path(),
			Message: "could not parse topic template",
			Cause:   err,
		}
	}
	slog.Debug("Parsed topic template", "topic", topic.TopicPath(), "path", topic.Path())
	t.templates[topic.Path()] = tmpl
	return tmpl, nil
}

// Invalidate drops the cached template for a file path.
func (t *Templates) Invalidate(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.templates, path)
}

// Reset drops every cached template.
func (t *Templates) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.templates = make(map[string]*template.Template)
}

// NewTemplateData prepares the standard data for rendering topic.
func NewTemplateData(topic onlinehelp.Topic, r *http.Request) TemplateData {
	return TemplateData{
		"Topic":   topic,
		"Title":   topic.Title(),
		"Request": r,
	}
}

// Component returns a templ component that executes the topic template
// with data.
func (t *Templates) Component(topic onlinehelp.TemplatedTopic, data TemplateData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		tmpl, err := t.Get(topic)
		if err != nil {
			return err
		}
		if err := tmpl.Execute(w, data); err != nil {
			return &onlinehelp.HelpError{
				Type:    onlinehelp.ErrorRenderFailed,
				Topic:   topic.TopicPath(),
				Path:    topic.Path(),
				Message: fmt.Sprintf("could not execute topic template %s", topic.Path()),
				Cause:   err,
			}
		}
		return nil
	})
}
