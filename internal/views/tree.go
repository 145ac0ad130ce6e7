package views

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/nfrund/onlinehelp/internal/onlinehelp"
)

// Tree renders the topic hierarchy below the help root as nested lists.
func Tree(help *onlinehelp.OnlineHelp, base string) g.Node {
	return h.Div(
		h.Class("help-tree"),
		h.H1(g.Text("Topics")),
		h.P(h.A(h.Href(TopicURL(base, help)), g.Text(help.Title()))),
		treeLevel(help.SubTopics(), base),
	)
}

func treeLevel(topics []onlinehelp.Topic, base string) g.Node {
	if len(topics) == 0 {
		return nil
	}
	return h.Ul(g.Map(topics, func(t onlinehelp.Topic) g.Node {
		return h.Li(
			h.A(h.Href(TopicURL(base, t)), g.Text(t.Title())),
			treeLevel(t.SubTopics(), base),
		)
	}))
}
