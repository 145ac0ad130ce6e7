package site

import (
	"path"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/nfrund/onlinehelp/internal/component"
	"github.com/nfrund/onlinehelp/internal/views"
)

// Page renders a host page for a resolved object or view, with a context
// help link and the pane it opens in.
func (s *Site) Page(res *Resolution) g.Node {
	obj, objPath, title := res.Context, res.Path, "Root"
	if v, ok := res.Context.(component.View); ok {
		obj, objPath, title = v.Context(), path.Dir(res.Path), v.Name()
	} else if o, ok := obj.(Object); ok && o.Name() != "" {
		title = o.Name()
	}

	return views.Page(title,
		h.Header(
			h.H1(g.Text(title)),
			views.PopupLink(res.Path, "Help"),
		),
		h.Main(s.body(obj, objPath)),
		views.Pane(),
	)
}

func (s *Site) body(obj any, objPath string) g.Node {
	var nodes []g.Node

	if names := s.Views(obj); len(names) > 0 {
		nodes = append(nodes, h.Nav(h.Ul(g.Map(names, func(name string) g.Node {
			return h.Li(h.A(h.Href(path.Join(objPath, name)), g.Text(name)))
		}))))
	}

	switch o := obj.(type) {
	case *Folder:
		items := o.Items()
		if len(items) > 0 {
			nodes = append(nodes, h.Ul(h.Class("contents"), g.Map(items, func(item Object) g.Node {
				return h.Li(h.A(h.Href(path.Join(objPath, item.Name())), g.Text(item.Name())))
			})))
		}
	case *File:
		nodes = append(nodes, h.P(g.Text(o.Body)))
	}
	return g.Group(nodes)
}
