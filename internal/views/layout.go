package views

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// PaneID is the id of the element help popups are loaded into.
const PaneID = "help-pane"

// PageTitle builds the document title of a help page.
func PageTitle(title string) string {
	if title != "" {
		return title + " - Online Help"
	}
	return "Online Help"
}

// Page wraps help content in a complete HTML document.
func Page(title string, body ...g.Node) g.Node {
	return h.Doctype(
		h.HTML(
			h.Lang("en"),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
				h.TitleEl(g.Text(PageTitle(title))),
				h.Script(h.Src("https://unpkg.com/htmx.org@2.0.4")),
			),
			h.Body(
				h.Class("onlinehelp"),
				g.Group(body),
			),
		),
	)
}
