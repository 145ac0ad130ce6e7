package views

import (
	"context"
	"fmt"
	"net/http"
	"path"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/nfrund/onlinehelp/internal/onlinehelp"
	"github.com/nfrund/onlinehelp/internal/rendering"
)

// Names of the views available in the help namespace.
const (
	TopicViewName       = "index.html"
	ContextHelpViewName = "contexthelp.html"
)

// TopicView renders a single topic: its title, content, sub-topics and
// resources.
type TopicView struct {
	Topic onlinehelp.Topic
	// Base is the URL of the help root; links are built below it.
	Base string

	sources   *rendering.Sources
	templates *rendering.Templates
}

// NewTopicView creates the view for topic.
func NewTopicView(topic onlinehelp.Topic, base string, sources *rendering.Sources, templates *rendering.Templates) *TopicView {
	return &TopicView{Topic: topic, Base: base, sources: sources, templates: templates}
}

// TopicURL returns the URL of a topic below base. The root topic maps to
// base itself.
func TopicURL(base string, topic onlinehelp.Topic) string {
	if topic.TopicPath() == "" {
		return path.Join(base, "@@"+TopicViewName)
	}
	return path.Join(base, topic.TopicPath(), TopicViewName)
}

// ResourceURL returns the URL of a resource of topic below base.
func ResourceURL(base string, topic onlinehelp.Topic, r *onlinehelp.Resource) string {
	return path.Join(base, topic.TopicPath(), r.Name())
}

// Content renders the topic body. Topics with source text are rendered by
// their markup, template topics by executing their template. The help root
// is a source topic too.
func (v *TopicView) Content(ctx context.Context, r *http.Request) (g.Node, error) {
	switch t := v.Topic.(type) {
	case onlinehelp.SourcedTopic:
		return v.sources.RenderTopic(ctx, t)
	case onlinehelp.TemplatedTopic:
		// parse eagerly so a broken template fails before anything is written
		if _, err := v.templates.Get(t); err != nil {
			return nil, err
		}
		return adaptTempl(ctx, v.templates.Component(t, rendering.NewTemplateData(t, r))), nil
	default:
		return nil, &onlinehelp.HelpError{
			Type:    onlinehelp.ErrorRenderFailed,
			Topic:   v.Topic.TopicPath(),
			Message: fmt.Sprintf("no view for topic type %T", v.Topic),
		}
	}
}

// Fragment renders the topic without the page around it.
func (v *TopicView) Fragment(ctx context.Context, r *http.Request) (g.Node, error) {
	content, err := v.Content(ctx, r)
	if err != nil {
		return nil, err
	}

	return h.Div(
		h.Class("help-topic"),
		h.H1(g.Text(v.Topic.Title())),
		h.Div(h.Class("help-content"), content),
		v.subTopics(),
		v.resources(),
	), nil
}

func (v *TopicView) subTopics() g.Node {
	subs := v.Topic.SubTopics()
	if len(subs) == 0 {
		return nil
	}
	return h.Ul(
		h.Class("help-subtopics"),
		g.Map(subs, func(t onlinehelp.Topic) g.Node {
			return h.Li(h.A(h.Href(TopicURL(v.Base, t)), g.Text(t.Title())))
		}),
	)
}

func (v *TopicView) resources() g.Node {
	res := v.Topic.Resources()
	if len(res) == 0 {
		return nil
	}
	return h.Ul(
		h.Class("help-resources"),
		g.Map(res, func(r *onlinehelp.Resource) g.Node {
			return h.Li(h.A(h.Href(ResourceURL(v.Base, v.Topic, r)), g.Text(r.Name())))
		}),
	)
}
