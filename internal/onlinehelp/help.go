package onlinehelp

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/afero"

	"github.com/nfrund/onlinehelp/internal/component"
)

// Registration describes a topic to register on an OnlineHelp root.
type Registration struct {
	// ParentPath locates the parent topic. It need not exist yet.
	ParentPath string
	ID         string
	Title      string
	DocPath    string
	Interface  component.Interface
	View       string
	// Factory names the topic factory; empty picks the default one.
	Factory   string
	Resources []string
}

// OnlineHelp is the root of a help hierarchy. It is itself a source topic
// (the welcome page) and manages the registration of all other topics.
type OnlineHelp struct {
	*SourceTopic

	fs        afero.Fs
	mu        sync.RWMutex
	factories map[string]Factory
	order     []string
	topics    map[string]Topic
}

// New creates an empty help root backed by the welcome file at welcomePath.
func New(fs afero.Fs, title, welcomePath string) (*OnlineHelp, error) {
	base, err := NewBaseTopic(fs, TopicConfig{Title: title, Path: welcomePath})
	if err != nil {
		return nil, err
	}

	return &OnlineHelp{
		SourceTopic: &SourceTopic{BaseTopic: base, sourceType: SourceTypeForPath(welcomePath)},
		fs:          fs,
		factories:   DefaultFactories(),
		topics:      make(map[string]Topic),
	}, nil
}

// Fs returns the filesystem topics are read from.
func (h *OnlineHelp) Fs() afero.Fs { return h.fs }

// RegisterHelpTopic creates a topic and places it in the hierarchy. The
// parent does not have to be registered yet: topics registered earlier whose
// parent path equals the new topic's path are adopted, so registration order
// does not matter. Registering a topic path again replaces the earlier topic.
func (h *OnlineHelp) RegisterHelpTopic(reg Registration) (Topic, error) {
	if reg.ID == "" || strings.Contains(reg.ID, "/") {
		return nil, &HelpError{
			Type:    ErrorConfiguration,
			Topic:   reg.ID,
			Path:    reg.DocPath,
			Message: fmt.Sprintf("invalid topic id %q", reg.ID),
		}
	}
	if reg.Interface != "" && !reg.Interface.Valid() {
		return nil, &HelpError{
			Type:    ErrorConfiguration,
			Topic:   reg.ID,
			Message: fmt.Sprintf("invalid interface name %q", reg.Interface),
		}
	}

	factory, err := h.factory(reg.Factory)
	if err != nil {
		return nil, err
	}

	topic, err := factory(h.fs, TopicConfig{
		ID:         reg.ID,
		Title:      reg.Title,
		Path:       reg.DocPath,
		ParentPath: strings.Trim(reg.ParentPath, "/"),
		Interface:  reg.Interface,
		View:       reg.View,
	})
	if err != nil {
		return nil, err
	}

	if len(reg.Resources) > 0 {
		if err := topic.AddResources(reg.Resources); err != nil {
			return nil, &HelpError{
				Type:    ErrorConfiguration,
				Topic:   reg.ID,
				Path:    reg.DocPath,
				Message: "failed to add topic resources",
				Cause:   err,
			}
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	topicPath := topic.TopicPath()
	if parent := h.lookupLocked(topic.ParentPath()); parent != nil {
		parent.base().addSubTopic(topic)
	}
	for _, p := range h.order {
		if existing := h.topics[p]; existing.ParentPath() == topicPath {
			topic.base().addSubTopic(existing)
		}
	}

	if _, exists := h.topics[topicPath]; exists {
		slog.Debug("Replacing help topic", "topic", topicPath)
	} else {
		h.order = append(h.order, topicPath)
	}
	h.topics[topicPath] = topic

	slog.Debug("Registered help topic", "topic", topicPath, "interface", reg.Interface, "view", reg.View)
	return topic, nil
}

// lookupLocked returns the registered topic at topicPath, the root for the
// empty path, or nil.
func (h *OnlineHelp) lookupLocked(topicPath string) Topic {
	if topicPath == "" {
		return h
	}
	if t, ok := h.topics[topicPath]; ok {
		return t
	}
	return nil
}

// Topic returns the registered topic at topicPath.
func (h *OnlineHelp) Topic(topicPath string) (Topic, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	t, ok := h.topics[strings.Trim(topicPath, "/")]
	return t, ok
}

// Topics returns all registered topics in registration order.
func (h *OnlineHelp) Topics() []Topic {
	h.mu.RLock()
	defer h.mu.RUnlock()

	res := make([]Topic, 0, len(h.order))
	for _, p := range h.order {
		res = append(res, h.topics[p])
	}
	return res
}

// Count returns the number of registered topics.
func (h *OnlineHelp) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.order)
}

// Traverse walks the help tree from the root along a slash separated path
// and returns the topic or resource found there.
func (h *OnlineHelp) Traverse(p string) (any, error) {
	var current Topic = h
	segments := strings.Split(strings.Trim(p, "/"), "/")
	for i, name := range segments {
		if name == "" {
			continue
		}
		item, ok := current.Get(name)
		if !ok {
			return nil, &HelpError{
				Type:    ErrorTopicNotFound,
				Topic:   p,
				Message: fmt.Sprintf("no help topic or resource %q", strings.Join(segments[:i+1], "/")),
			}
		}
		if i == len(segments)-1 {
			return item, nil
		}
		next, ok := item.(Topic)
		if !ok {
			return nil, &HelpError{
				Type:    ErrorTopicNotFound,
				Topic:   p,
				Message: fmt.Sprintf("%q is a resource and has no children", name),
			}
		}
		current = next
	}
	return current, nil
}
