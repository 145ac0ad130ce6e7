package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
)

// templNode wraps a templ.Component so it can be placed inside a gomponents
// layout. The component renders with the request context it was created
// with.
type templNode struct {
	ctx       context.Context
	component templ.Component
}

// Render implements gomponents.Node.
func (n *templNode) Render(w io.Writer) error {
	return n.component.Render(n.ctx, w)
}

// adaptTempl converts a templ component into a gomponents node.
func adaptTempl(ctx context.Context, component templ.Component) g.Node {
	return &templNode{ctx: ctx, component: component}
}
