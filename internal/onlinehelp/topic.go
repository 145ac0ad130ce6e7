package onlinehelp

import (
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"
	"golang.org/x/text/encoding/unicode"

	"github.com/nfrund/onlinehelp/internal/component"
)

// SourceType names the markup a source topic is written in.
type SourceType string

const (
	SourcePlainText SourceType = "plaintext"
	SourceSTX       SourceType = "stx"
	SourceReST      SourceType = "rest"
	SourceMarkdown  SourceType = "markdown"
)

// Topic is a single help page. Topics contain sub-topics and the resources
// (images and the like) their rendered content refers to.
type Topic interface {
	// ID is the path segment of the topic below its parent.
	ID() string
	Title() string
	// Path is the location of the file holding the topic content.
	Path() string
	// ParentPath is the topic path of the parent; empty for top level topics.
	ParentPath() string
	// Interface is the interface the topic is registered for, if any.
	Interface() component.Interface
	// View is the view name the topic is registered for, if any.
	View() string
	// TopicPath returns the presumed path to the topic, even when the topic
	// is not reachable from the root yet.
	TopicPath() string
	// SubTopics returns the child topics in insertion order.
	SubTopics() []Topic
	// Resources returns the resources in insertion order.
	Resources() []*Resource
	// Resource returns the named resource.
	Resource(name string) (*Resource, bool)
	// AddResources adds resources located next to the topic file. Names
	// that do not exist or that point into another directory are skipped.
	AddResources(names []string) error
	// Get returns the sub-topic or resource stored under name.
	Get(name string) (any, bool)
	// Keys returns the names of all contained items in insertion order.
	Keys() []string

	base() *BaseTopic
}

// SourcedTopic is a topic whose file holds source text in some markup.
// Topic kinds built by custom factories satisfy it by embedding
// *SourceTopic.
type SourcedTopic interface {
	Topic
	Type() SourceType
	Source() (string, error)
}

// TemplatedTopic is a topic rendered by executing its file as a template.
type TemplatedTopic interface {
	Topic
	ReadTemplate() (string, error)
}

// TopicConfig holds the values a Factory builds a topic from.
type TopicConfig struct {
	ID         string
	Title      string
	Path       string
	ParentPath string
	Interface  component.Interface
	View       string
}

// BaseTopic implements the parts of Topic shared by every topic kind. Custom
// topic kinds embed it.
type BaseTopic struct {
	fs         afero.Fs
	id         string
	title      string
	path       string
	parentPath string
	iface      component.Interface
	view       string

	mu    sync.RWMutex
	keys  []string
	items map[string]any
}

// NewBaseTopic creates the shared topic state. It fails with a configuration
// error when the topic file does not exist.
func NewBaseTopic(fs afero.Fs, cfg TopicConfig) (*BaseTopic, error) {
	exists, err := afero.Exists(fs, cfg.Path)
	if err != nil || !exists {
		return nil, &HelpError{
			Type:    ErrorConfiguration,
			Topic:   cfg.ID,
			Path:    cfg.Path,
			Message: fmt.Sprintf("help topic definition %s does not exist", cfg.Path),
			Cause:   err,
		}
	}

	return &BaseTopic{
		fs:         fs,
		id:         cfg.ID,
		title:      cfg.Title,
		path:       cfg.Path,
		parentPath: cfg.ParentPath,
		iface:      cfg.Interface,
		view:       cfg.View,
		items:      make(map[string]any),
	}, nil
}

func (t *BaseTopic) base() *BaseTopic { return t }

// ID implements Topic.
func (t *BaseTopic) ID() string { return t.id }

// Title implements Topic.
func (t *BaseTopic) Title() string { return t.title }

// Path implements Topic.
func (t *BaseTopic) Path() string { return t.path }

// ParentPath implements Topic.
func (t *BaseTopic) ParentPath() string { return t.parentPath }

// Interface implements Topic.
func (t *BaseTopic) Interface() component.Interface { return t.iface }

// View implements Topic.
func (t *BaseTopic) View() string { return t.view }

// TopicPath implements Topic.
func (t *BaseTopic) TopicPath() string {
	if t.parentPath != "" {
		return t.parentPath + "/" + t.id
	}
	return t.id
}

// Get implements Topic.
func (t *BaseTopic) Get(name string) (any, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	item, ok := t.items[name]
	return item, ok
}

// Keys implements Topic.
func (t *BaseTopic) Keys() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return append([]string(nil), t.keys...)
}

// SubTopics implements Topic.
func (t *BaseTopic) SubTopics() []Topic {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var res []Topic
	for _, key := range t.keys {
		if topic, ok := t.items[key].(Topic); ok {
			res = append(res, topic)
		}
	}
	return res
}

// Resources implements Topic.
func (t *BaseTopic) Resources() []*Resource {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var res []*Resource
	for _, key := range t.keys {
		if r, ok := t.items[key].(*Resource); ok {
			res = append(res, r)
		}
	}
	return res
}

// Resource implements Topic.
func (t *BaseTopic) Resource(name string) (*Resource, bool) {
	item, ok := t.Get(name)
	if !ok {
		return nil, false
	}
	r, ok := item.(*Resource)
	return r, ok
}

// AddResources implements Topic.
func (t *BaseTopic) AddResources(names []string) error {
	dir := filepath.Dir(t.path)
	for _, name := range names {
		if name == "" || strings.ContainsAny(name, `/\`) {
			slog.Warn("Skipping help resource outside the topic directory", "topic", t.TopicPath(), "resource", name)
			continue
		}
		resourcePath := filepath.Join(dir, name)
		exists, err := afero.Exists(t.fs, resourcePath)
		if err != nil {
			return fmt.Errorf("stat resource %s: %w", resourcePath, err)
		}
		if !exists {
			slog.Debug("Skipping missing help resource", "topic", t.TopicPath(), "path", resourcePath)
			continue
		}

		resource, err := NewResource(t.fs, resourcePath)
		if err != nil {
			return err
		}
		resource.name = name
		t.set(name, resource)
	}
	return nil
}

// set stores item under name, replacing an existing item in place.
func (t *BaseTopic) set(name string, item any) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.items[name]; !exists {
		t.keys = append(t.keys, name)
	}
	t.items[name] = item
}

func (t *BaseTopic) addSubTopic(topic Topic) {
	t.set(topic.ID(), topic)
}

// SourceTopic is a topic whose file holds renderable source text.
type SourceTopic struct {
	*BaseTopic
	sourceType SourceType
}

// Type returns the markup of the source text.
func (t *SourceTopic) Type() SourceType { return t.sourceType }

// Source reads the topic file. The content is decoded as UTF-8 and a leading
// byte order mark is dropped.
func (t *SourceTopic) Source() (string, error) {
	raw, err := afero.ReadFile(t.fs, t.path)
	if err != nil {
		return "", fmt.Errorf("read topic source %s: %w", t.path, err)
	}
	decoded, err := unicode.UTF8BOM.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decode topic source %s: %w", t.path, err)
	}
	return string(decoded), nil
}

// TemplateTopic is a topic whose file is an html/template rendered by the
// template topic view.
type TemplateTopic struct {
	*BaseTopic
}

// ReadTemplate returns the template text.
func (t *TemplateTopic) ReadTemplate() (string, error) {
	raw, err := afero.ReadFile(t.fs, t.path)
	if err != nil {
		return "", fmt.Errorf("read topic template %s: %w", t.path, err)
	}
	return string(raw), nil
}

// SourceTypeForPath guesses the source type from the file extension. HTML
// files are treated as structured text.
func SourceTypeForPath(p string) SourceType {
	filename := strings.ToLower(path.Base(filepath.ToSlash(p)))
	ext := "txt"
	if i := strings.LastIndex(filename, "."); i >= 0 {
		ext = filename[i+1:]
	}

	switch ext {
	case "rst", "rest":
		return SourceReST
	case "stx", "html", "htm":
		return SourceSTX
	case "md", "markdown":
		return SourceMarkdown
	default:
		return SourcePlainText
	}
}
