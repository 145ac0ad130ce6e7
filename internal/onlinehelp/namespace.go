package onlinehelp

import (
	"errors"

	"github.com/nfrund/onlinehelp/internal/component"
)

// NamespaceSegment is the reserved URL path segment that leads into the help
// tree, e.g. "/folder/contents.html/++help++/@@contexthelp.html".
const NamespaceSegment = "++help++"

// ErrNotSerializable is returned when a traversed help handle is encoded.
var ErrNotSerializable = errors.New("traversed online help is bound to a request and cannot be serialized")

// Namespace resolves the help namespace segment for a traversal context.
type Namespace struct {
	help    *OnlineHelp
	context any
}

// NewNamespace creates the namespace handler for context, the object or
// view the namespace segment was traversed from.
func NewNamespace(help *OnlineHelp, context any) *Namespace {
	return &Namespace{help: help, context: context}
}

// Traverse returns the help root bound to the traversal context. The name
// following the namespace segment is not used.
func (n *Namespace) Traverse(name string) *Traversed {
	return &Traversed{OnlineHelp: n.help, context: n.context}
}

// Traversed is the help root as seen through the namespace: it carries the
// context it was reached from without touching the shared root.
type Traversed struct {
	*OnlineHelp
	context any
}

// Context returns the object or view the namespace was traversed from.
func (t *Traversed) Context() any { return t.context }

// MarshalJSON refuses to encode the handle.
func (t *Traversed) MarshalJSON() ([]byte, error) {
	return nil, ErrNotSerializable
}

// GobEncode refuses to encode the handle.
func (t *Traversed) GobEncode() ([]byte, error) {
	return nil, ErrNotSerializable
}

// ContextTopic finds the topic for the traversal context. When the context is
// a view, the topic registered for the view's context and the view name is
// preferred, then the one for the view's context alone. Other contexts are
// looked up without a view name. The root is returned when nothing matches.
func (t *Traversed) ContextTopic() Topic {
	if view, ok := t.context.(component.View); ok {
		if topic := t.TopicFor(view.Context(), view.Name()); topic != nil {
			return topic
		}
		if topic := t.TopicFor(view.Context(), ""); topic != nil {
			return topic
		}
	} else if topic := t.TopicFor(t.context, ""); topic != nil {
		return topic
	}
	return t.OnlineHelp
}
