// Package format prints help topics for the helpctl commands.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/nfrund/onlinehelp/internal/onlinehelp"
)

// TopicDisplay represents a topic for display purposes
type TopicDisplay struct {
	Path      string   `json:"path"`
	Title     string   `json:"title"`
	Interface string   `json:"interface,omitempty"`
	View      string   `json:"view,omitempty"`
	Kind      string   `json:"kind"`
	File      string   `json:"file"`
	SubTopics []string `json:"subtopics,omitempty"`
	Resources []string `json:"resources,omitempty"`
}

// NewTopicDisplay collects the displayed fields of a topic.
func NewTopicDisplay(topic onlinehelp.Topic) TopicDisplay {
	d := TopicDisplay{
		Path:      topic.TopicPath(),
		Title:     topic.Title(),
		Interface: topic.Interface().String(),
		View:      topic.View(),
		Kind:      Kind(topic),
		File:      topic.Path(),
	}
	for _, sub := range topic.SubTopics() {
		d.SubTopics = append(d.SubTopics, sub.ID())
	}
	for _, r := range topic.Resources() {
		d.Resources = append(d.Resources, r.Name())
	}
	return d
}

// Kind describes how a topic is rendered.
func Kind(topic onlinehelp.Topic) string {
	switch t := topic.(type) {
	case onlinehelp.SourcedTopic:
		return string(t.Type())
	case onlinehelp.TemplatedTopic:
		return "template"
	default:
		return fmt.Sprintf("%T", topic)
	}
}

// TopicsTable writes topics as an aligned table.
func TopicsTable(w io.Writer, topics []onlinehelp.Topic) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "PATH\tTITLE\tKIND\tINTERFACE\tVIEW")
	fmt.Fprintln(tw, "----\t-----\t----\t---------\t----")

	if len(topics) == 0 {
		fmt.Fprintln(tw, "No topics found")
	}
	for _, topic := range topics {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			topic.TopicPath(),
			truncateString(topic.Title(), 40),
			Kind(topic),
			orDash(topic.Interface().String()),
			orDash(topic.View()))
	}
	return tw.Flush()
}

// TopicsJSON writes topics as an indented JSON document.
func TopicsJSON(w io.Writer, topics []onlinehelp.Topic) error {
	displays := make([]TopicDisplay, len(topics))
	for i, topic := range topics {
		displays[i] = NewTopicDisplay(topic)
	}

	output := struct {
		Topics []TopicDisplay `json:"topics"`
		Count  int            `json:"count"`
	}{
		Topics: displays,
		Count:  len(displays),
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// TopicDetails writes detailed information for a single topic.
func TopicDetails(w io.Writer, topic onlinehelp.Topic, format string) error {
	d := NewTopicDisplay(topic)
	if format == "json" {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(d)
	}

	fmt.Fprintf(w, "Path:       %s\n", d.Path)
	fmt.Fprintf(w, "Title:      %s\n", d.Title)
	fmt.Fprintf(w, "Kind:       %s\n", d.Kind)
	fmt.Fprintf(w, "File:       %s\n", d.File)
	fmt.Fprintf(w, "Interface:  %s\n", orDash(d.Interface))
	fmt.Fprintf(w, "View:       %s\n", orDash(d.View))
	for _, sub := range d.SubTopics {
		fmt.Fprintf(w, "Sub-topic:  %s\n", sub)
	}
	for _, r := range topic.Resources() {
		line := fmt.Sprintf("Resource:   %s (%s, %d bytes", r.Name(), r.ContentType(), r.Size())
		if width, height := r.Dimensions(); width > 0 {
			line += fmt.Sprintf(", %dx%d", width, height)
		}
		fmt.Fprintln(w, line+")")
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// truncateString truncates a string to maxLen characters, adding "..." if truncated
func truncateString(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return "..."
	}
	return string([]rune(s)[:maxLen-3]) + "..."
}
