package views

import (
	"sync"

	"github.com/nfrund/onlinehelp/internal/onlinehelp"
)

// ContextHelpView finds the topic for the page the help namespace was
// entered from. The lookup runs once per view.
type ContextHelpView struct {
	help *onlinehelp.Traversed

	once  sync.Once
	topic onlinehelp.Topic
}

// NewContextHelpView creates the view for a traversed help root.
func NewContextHelpView(help *onlinehelp.Traversed) *ContextHelpView {
	return &ContextHelpView{help: help}
}

// Topic returns the context topic, falling back to the help root.
func (v *ContextHelpView) Topic() onlinehelp.Topic {
	v.once.Do(func() {
		v.topic = v.help.ContextTopic()
	})
	return v.topic
}
