// Package views serves the help namespace over HTTP: the topic tree, topic
// pages, context help and topic resources.
package views

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	g "maragu.dev/gomponents"

	"github.com/nfrund/onlinehelp/internal/middleware"
	"github.com/nfrund/onlinehelp/internal/onlinehelp"
	"github.com/nfrund/onlinehelp/internal/rendering"
)

// HelpSource provides the current help tree.
type HelpSource interface {
	Help() *onlinehelp.OnlineHelp
}

// Handler renders everything below the help namespace segment.
type Handler struct {
	source    HelpSource
	sources   *rendering.Sources
	templates *rendering.Templates
	renderer  rendering.Renderer
}

// NewHandler creates a handler rendering topics from source.
func NewHandler(source HelpSource, sources *rendering.Sources, templates *rendering.Templates, renderer rendering.Renderer) *Handler {
	return &Handler{
		source:    source,
		sources:   sources,
		templates: templates,
		renderer:  renderer,
	}
}

// Serve handles a request that traversed into the help namespace. context is
// the object or view the namespace was entered from, base the URL path up to
// and including the namespace segment, and rest the path segments after it.
func (hd *Handler) Serve(c echo.Context, context any, base string, rest []string) error {
	var segments []string
	for _, s := range rest {
		if s != "" {
			segments = append(segments, s)
		}
	}
	name := ""
	if len(segments) > 0 {
		name = segments[0]
	}
	help := onlinehelp.NewNamespace(hd.source.Help(), context).Traverse(name)

	viewName := ""
	if n := len(segments); n > 0 && isViewSegment(help, segments) {
		viewName = strings.TrimPrefix(segments[n-1], "@@")
		segments = segments[:n-1]
	}

	if len(segments) == 0 {
		switch viewName {
		case "":
			return hd.render(c, help.Title(), Tree(help.OnlineHelp, base))
		case TopicViewName:
			return hd.topic(c, help, base)
		case ContextHelpViewName:
			return hd.topic(c, NewContextHelpView(help).Topic(), base)
		}
		return echo.NewHTTPError(http.StatusNotFound, "unknown help view "+viewName)
	}

	item, err := help.Traverse(strings.Join(segments, "/"))
	if err != nil {
		if onlinehelp.IsErrorType(err, onlinehelp.ErrorTopicNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error()).SetInternal(err)
		}
		return err
	}

	switch it := item.(type) {
	case *onlinehelp.Resource:
		if viewName != "" {
			return echo.NewHTTPError(http.StatusNotFound, "resources have no views")
		}
		return serveResource(c, it)
	case onlinehelp.Topic:
		if viewName != "" && viewName != TopicViewName {
			return echo.NewHTTPError(http.StatusNotFound, "unknown topic view "+viewName)
		}
		return hd.topic(c, it, base)
	default:
		return echo.NewHTTPError(http.StatusNotFound)
	}
}

// isViewSegment reports whether the last segment names a view. "@@" always
// marks a view. The bare view names only do so when no topic or resource of
// that name exists at that position.
func isViewSegment(help *onlinehelp.Traversed, segments []string) bool {
	last := segments[len(segments)-1]
	if strings.HasPrefix(last, "@@") {
		return true
	}
	if last != TopicViewName && last != ContextHelpViewName {
		return false
	}
	_, err := help.Traverse(strings.Join(segments, "/"))
	return err != nil
}

// topic renders a topic page. htmx requests get the bare fragment for the
// help pane.
func (hd *Handler) topic(c echo.Context, topic onlinehelp.Topic, base string) error {
	view := NewTopicView(topic, base, hd.sources, hd.templates)
	fragment, err := view.Fragment(c.Request().Context(), c.Request())
	if err != nil {
		return hd.renderError(c, err)
	}

	if c.Request().Header.Get("HX-Request") == "true" {
		return hd.write(c, fragment)
	}
	return hd.render(c, topic.Title(), fragment)
}

func (hd *Handler) render(c echo.Context, title string, body g.Node) error {
	return hd.write(c, Page(title, body))
}

func (hd *Handler) write(c echo.Context, node g.Node) error {
	if err := hd.renderer.RenderPage(c, http.StatusOK, node); err != nil {
		return hd.renderError(c, err)
	}
	return nil
}

func (hd *Handler) renderError(c echo.Context, err error) error {
	middleware.FromContext(c.Request().Context()).Error("Failed to render help page", "path", c.Request().URL.Path, "error", err)

	var helpErr *onlinehelp.HelpError
	if errors.As(err, &helpErr) && helpErr.Type == onlinehelp.ErrorTopicNotFound {
		return echo.NewHTTPError(http.StatusNotFound, helpErr.Message).SetInternal(err)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "failed to render help topic").SetInternal(err)
}

// serveResource writes the resource bytes with their content type.
func serveResource(c echo.Context, r *onlinehelp.Resource) error {
	data, err := r.Data()
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "resource not available").SetInternal(err)
	}

	contentType := r.ContentType()
	if r.IsText() {
		contentType += "; charset=" + r.Encoding()
	}
	c.Response().Header().Set(echo.HeaderContentLength, strconv.Itoa(len(data)))
	return c.Blob(http.StatusOK, contentType, data)
}
