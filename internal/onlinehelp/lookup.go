package onlinehelp

import "github.com/nfrund/onlinehelp/internal/component"

// TopicFor determines the topic for an object and optionally a view name.
//
// It iterates through the interfaces provided by obj in declaration order
// and, for each, through the registered topics in registration order. The
// first topic registered for that interface and exactly that view name wins.
// An empty view only matches topics registered without a view.
func (h *OnlineHelp) TopicFor(obj any, view string) Topic {
	provided := component.ProvidedBy(obj)
	if len(provided) == 0 {
		return nil
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, iface := range provided {
		for _, p := range h.order {
			topic := h.topics[p]
			if topic.Interface() == iface && topic.View() == view {
				return topic
			}
		}
	}
	return nil
}
