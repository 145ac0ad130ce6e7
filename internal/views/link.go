package views

import (
	"path"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"

	"github.com/nfrund/onlinehelp/internal/onlinehelp"
)

// ContextHelpURL returns the URL of the context help for the page at
// viewPath, e.g. "/contents.html/++help++/@@contexthelp.html".
func ContextHelpURL(viewPath string) string {
	return path.Join("/", viewPath, onlinehelp.NamespaceSegment, "@@"+ContextHelpViewName)
}

// PopupLink is a help link for host pages. With htmx it loads the context
// help into the help pane; without it, it opens the help page.
func PopupLink(viewPath, label string) g.Node {
	url := ContextHelpURL(viewPath)
	return h.A(
		h.Class("help-link"),
		h.Href(url),
		h.Target("_blank"),
		hx.Get(url),
		hx.Target("#"+PaneID),
		hx.Swap("innerHTML"),
		g.Text(label),
	)
}

// Pane is the element PopupLink loads help into.
func Pane() g.Node {
	return h.Aside(h.ID(PaneID), h.Class("help-pane"))
}
