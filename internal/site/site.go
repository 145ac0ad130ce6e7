// Package site is a small content tree standing in for the host
// application: folders and files that provide interfaces, named views
// registered per interface, and URL traversal into the help namespace.
package site

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/nfrund/onlinehelp/internal/component"
	"github.com/nfrund/onlinehelp/internal/onlinehelp"
)

// Interfaces provided by the built-in content types.
const (
	IRootFolder component.Interface = "site.IRootFolder"
	IFolder     component.Interface = "site.IFolder"
	IFile       component.Interface = "site.IFile"
)

// ErrNotFound is returned when a path segment cannot be traversed.
var ErrNotFound = errors.New("not found")

// Object is a content object in the site tree.
type Object interface {
	component.Provider
	Name() string
}

// Folder contains other objects in insertion order.
type Folder struct {
	name   string
	ifaces component.Declaration

	mu    sync.RWMutex
	order []string
	items map[string]Object
}

// NewFolder creates an empty folder providing ifaces.
func NewFolder(name string, ifaces ...component.Interface) *Folder {
	return &Folder{
		name:   name,
		ifaces: ifaces,
		items:  make(map[string]Object),
	}
}

// Name implements Object.
func (f *Folder) Name() string { return f.name }

// ProvidedInterfaces implements component.Provider.
func (f *Folder) ProvidedInterfaces() []component.Interface { return f.ifaces }

// Add stores obj under its name, replacing an existing item in place.
func (f *Folder) Add(obj Object) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.items[obj.Name()]; !ok {
		f.order = append(f.order, obj.Name())
	}
	f.items[obj.Name()] = obj
}

// Get returns the item stored under name.
func (f *Folder) Get(name string) (Object, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	obj, ok := f.items[name]
	return obj, ok
}

// Items returns the contained objects in insertion order.
func (f *Folder) Items() []Object {
	f.mu.RLock()
	defer f.mu.RUnlock()

	res := make([]Object, 0, len(f.order))
	for _, name := range f.order {
		res = append(res, f.items[name])
	}
	return res
}

// File is a leaf content object.
type File struct {
	name   string
	ifaces component.Declaration
	Body   string
}

// NewFile creates a file providing ifaces.
func NewFile(name, body string, ifaces ...component.Interface) *File {
	return &File{name: name, ifaces: ifaces, Body: body}
}

// Name implements Object.
func (f *File) Name() string { return f.name }

// ProvidedInterfaces implements component.Provider.
func (f *File) ProvidedInterfaces() []component.Interface { return f.ifaces }

// Site is the content tree together with the views registered on it.
type Site struct {
	Root *Folder

	mu    sync.RWMutex
	views map[component.Interface][]string
}

// New creates a site around root.
func New(root *Folder) *Site {
	return &Site{Root: root, views: make(map[component.Interface][]string)}
}

// Default creates the demo site: a root folder with one file, with
// "index.html" and "contents.html" views on folders and "index.html" and
// "edit.html" on files.
func Default() *Site {
	root := NewFolder("", IRootFolder, IFolder)
	root.Add(NewFile("file", "An example file.", IFile))

	s := New(root)
	s.RegisterView(IFolder, "index.html")
	s.RegisterView(IFolder, "contents.html")
	s.RegisterView(IFile, "index.html")
	s.RegisterView(IFile, "edit.html")
	return s
}

// RegisterView makes the named view available on objects providing iface.
func (s *Site) RegisterView(iface component.Interface, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !slices.Contains(s.views[iface], name) {
		s.views[iface] = append(s.views[iface], name)
	}
}

// Views returns the view names available on obj in interface order.
func (s *Site) Views(obj any) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var names []string
	for _, iface := range component.ProvidedBy(obj) {
		for _, name := range s.views[iface] {
			if !slices.Contains(names, name) {
				names = append(names, name)
			}
		}
	}
	return names
}

// HasView reports whether the named view is available on obj.
func (s *Site) HasView(obj any, name string) bool {
	return slices.Contains(s.Views(obj), name)
}

// Resolution is the outcome of traversing a URL path.
type Resolution struct {
	// Context is the object or bound view the path leads to.
	Context any
	// Path is the URL path of Context.
	Path string
	// Help reports whether the path entered the help namespace.
	Help bool
	// HelpBase is the URL path up to and including the namespace segment.
	HelpBase string
	// Rest holds the segments after the namespace segment.
	Rest []string
}

// Resolve traverses urlPath from the root. Objects are looked up inside
// folders first, then as views of the current object. The help namespace
// segment ends the traversal.
func (s *Site) Resolve(urlPath string) (*Resolution, error) {
	segments := strings.Split(strings.Trim(urlPath, "/"), "/")

	var current any = s.Root
	consumed := []string{}
	for i, seg := range segments {
		if seg == "" {
			continue
		}
		if seg == onlinehelp.NamespaceSegment {
			return &Resolution{
				Context:  current,
				Path:     "/" + strings.Join(consumed, "/"),
				Help:     true,
				HelpBase: "/" + strings.Join(append(consumed, seg), "/"),
				Rest:     segments[i+1:],
			}, nil
		}

		next, err := s.traverse(current, seg)
		if err != nil {
			return nil, fmt.Errorf("traverse %q: %w", "/"+strings.Join(append(consumed, seg), "/"), err)
		}
		current = next
		consumed = append(consumed, seg)
	}

	return &Resolution{Context: current, Path: "/" + strings.Join(consumed, "/")}, nil
}

func (s *Site) traverse(current any, seg string) (any, error) {
	if _, isView := current.(component.View); isView {
		return nil, ErrNotFound
	}
	if f, ok := current.(*Folder); ok && !strings.HasPrefix(seg, "@@") {
		if obj, ok := f.Get(seg); ok {
			return obj, nil
		}
	}
	name := strings.TrimPrefix(seg, "@@")
	if s.HasView(current, name) {
		return &component.BoundView{ViewName: name, Parent: current}, nil
	}
	return nil, ErrNotFound
}
