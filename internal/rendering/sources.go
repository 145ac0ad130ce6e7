package rendering

import (
	"context"
	"fmt"
	"sync"

	g "maragu.dev/gomponents"

	"github.com/nfrund/onlinehelp/internal/onlinehelp"
)

// SourceRenderer turns the source text of a help topic into HTML.
type SourceRenderer interface {
	Render(ctx context.Context, source string) (g.Node, error)
}

// SourceRendererFunc adapts a function to SourceRenderer.
type SourceRendererFunc func(ctx context.Context, source string) (g.Node, error)

// Render implements SourceRenderer.
func (f SourceRendererFunc) Render(ctx context.Context, source string) (g.Node, error) {
	return f(ctx, source)
}

// Sources dispatches rendering on the source type of a topic.
type Sources struct {
	mu        sync.RWMutex
	renderers map[onlinehelp.SourceType]SourceRenderer
}

// NewSources returns a dispatcher with renderers for every built-in source type.
func NewSources() *Sources {
	markup := NewMarkupRenderer()
	return &Sources{
		renderers: map[onlinehelp.SourceType]SourceRenderer{
			onlinehelp.SourcePlainText: SourceRendererFunc(RenderPlainText),
			onlinehelp.SourceSTX:       markup,
			onlinehelp.SourceMarkdown:  markup,
			onlinehelp.SourceReST:      SourceRendererFunc(RenderReST),
		},
	}
}

// Register sets the renderer for a source type, replacing any existing one.
func (s *Sources) Register(sourceType onlinehelp.SourceType, r SourceRenderer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renderers[sourceType] = r
}

// Render renders source text of the given type.
func (s *Sources) Render(ctx context.Context, sourceType onlinehelp.SourceType, source string) (g.Node, error) {
	s.mu.RLock()
	r, ok := s.renderers[sourceType]
	s.mu.RUnlock()

	if !ok {
		return nil, &onlinehelp.HelpError{
			Type:    onlinehelp.ErrorRenderFailed,
			Message: fmt.Sprintf("no renderer for source type %q", sourceType),
		}
	}
	node, err := r.Render(ctx, source)
	if err != nil {
		return nil, &onlinehelp.HelpError{
			Type:    onlinehelp.ErrorRenderFailed,
			Message: fmt.Sprintf("failed to render %s source", sourceType),
			Cause:   err,
		}
	}
	return node, nil
}

// RenderTopic reads and renders a source topic.
func (s *Sources) RenderTopic(ctx context.Context, topic onlinehelp.SourcedTopic) (g.Node, error) {
	source, err := topic.Source()
	if err != nil {
		return nil, &onlinehelp.HelpError{
			Type:    onlinehelp.ErrorRenderFailed,
			Topic:   topic.TopicPath(),
			Path:    topic.Path(),
			Message: "failed to read topic source",
			Cause:   err,
		}
	}
	return s.Render(ctx, topic.Type(), source)
}
