package rendering

import (
	"context"
	"strings"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// RenderPlainText escapes the text and keeps its line breaks.
func RenderPlainText(_ context.Context, source string) (g.Node, error) {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	lines := strings.Split(source, "\n")

	nodes := make([]g.Node, 0, 2*len(lines))
	for i, line := range lines {
		if i > 0 {
			nodes = append(nodes, h.Br())
		}
		nodes = append(nodes, g.Text(line))
	}
	return h.Div(h.Class("plaintext"), g.Group(nodes)), nil
}
