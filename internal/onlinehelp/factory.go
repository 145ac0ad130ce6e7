package onlinehelp

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// Factory builds a topic from its configuration.
type Factory func(fs afero.Fs, cfg TopicConfig) (Topic, error)

// Names of the built-in topic factories.
const (
	FactoryDefault  = "default"
	FactoryReST     = "rest"
	FactorySTX      = "stx"
	FactoryMarkdown = "markdown"
	FactoryTemplate = "template"
)

// NewTopic creates a source topic whose type is guessed from the file
// extension. It supports plain text, ReST, structured text and Markdown;
// HTML files are rendered as structured text. Files with another extension
// need an explicit factory.
func NewTopic(fs afero.Fs, cfg TopicConfig) (Topic, error) {
	return newSourceTopic(fs, cfg, SourceTypeForPath(cfg.Path))
}

// NewReSTTopic creates a ReST topic regardless of the file extension.
func NewReSTTopic(fs afero.Fs, cfg TopicConfig) (Topic, error) {
	return newSourceTopic(fs, cfg, SourceReST)
}

// NewSTXTopic creates a structured text topic regardless of the file extension.
func NewSTXTopic(fs afero.Fs, cfg TopicConfig) (Topic, error) {
	return newSourceTopic(fs, cfg, SourceSTX)
}

// NewMarkdownTopic creates a Markdown topic regardless of the file extension.
func NewMarkdownTopic(fs afero.Fs, cfg TopicConfig) (Topic, error) {
	return newSourceTopic(fs, cfg, SourceMarkdown)
}

// NewTemplateTopic creates a topic rendered from an html/template file.
func NewTemplateTopic(fs afero.Fs, cfg TopicConfig) (Topic, error) {
	base, err := NewBaseTopic(fs, cfg)
	if err != nil {
		return nil, err
	}
	return &TemplateTopic{BaseTopic: base}, nil
}

func newSourceTopic(fs afero.Fs, cfg TopicConfig, sourceType SourceType) (Topic, error) {
	base, err := NewBaseTopic(fs, cfg)
	if err != nil {
		return nil, err
	}
	return &SourceTopic{BaseTopic: base, sourceType: sourceType}, nil
}

// DefaultFactories returns a fresh map of the built-in factories.
func DefaultFactories() map[string]Factory {
	return map[string]Factory{
		FactoryDefault:  NewTopic,
		FactoryReST:     NewReSTTopic,
		FactorySTX:      NewSTXTopic,
		FactoryMarkdown: NewMarkdownTopic,
		FactoryTemplate: NewTemplateTopic,
	}
}

// FactoryForPath picks the factory name used when a registration does not
// name one: template files get the template factory, everything else the
// default one.
func FactoryForPath(p string) string {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".pt", ".tmpl", ".gohtml":
		return FactoryTemplate
	default:
		return FactoryDefault
	}
}

// RegisterFactory makes a custom factory available under name.
func (h *OnlineHelp) RegisterFactory(name string, factory Factory) error {
	if name == "" || factory == nil {
		return &HelpError{
			Type:    ErrorConfiguration,
			Message: "factory name and function are required",
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.factories[name] = factory
	return nil
}

// FactoryNames lists the available factory names, sorted.
func (h *OnlineHelp) FactoryNames() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	names := make([]string, 0, len(h.factories))
	for name := range h.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (h *OnlineHelp) factory(name string) (Factory, error) {
	if name == "" {
		name = FactoryDefault
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	f, ok := h.factories[name]
	if !ok {
		return nil, &HelpError{
			Type:    ErrorUnknownFactory,
			Message: fmt.Sprintf("unknown topic factory %q", name),
		}
	}
	return f, nil
}
