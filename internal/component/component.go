// Package component describes the small part of the host application's
// component model the help system relies on: objects declare the interfaces
// they provide, and views are named and bound to a context object.
package component

import (
	"reflect"
	"strings"
)

// Interface is the dotted name of a marker interface, e.g. "site.IRootFolder".
type Interface string

// Valid reports whether the interface name is usable as a registry key.
func (i Interface) Valid() bool {
	s := string(i)
	return s != "" && strings.TrimSpace(s) == s && !strings.ContainsAny(s, " /")
}

// String returns the dotted name.
func (i Interface) String() string {
	return string(i)
}

// Provider is implemented by objects that declare the interfaces they provide.
// The order of the returned slice is the declaration order.
type Provider interface {
	ProvidedInterfaces() []Interface
}

// View is a named view bound to a context object.
type View interface {
	Name() string
	Context() any
}

// ProvidedBy returns the interfaces provided by obj in declaration order.
// Duplicates keep their first position. Objects that are not a Provider,
// and nil pointers, provide nothing.
func ProvidedBy(obj any) []Interface {
	p, ok := obj.(Provider)
	if !ok {
		return nil
	}
	if v := reflect.ValueOf(obj); v.Kind() == reflect.Pointer && v.IsNil() {
		return nil
	}

	declared := p.ProvidedInterfaces()
	seen := make(map[Interface]struct{}, len(declared))
	result := make([]Interface, 0, len(declared))
	for _, iface := range declared {
		if _, dup := seen[iface]; dup || iface == "" {
			continue
		}
		seen[iface] = struct{}{}
		result = append(result, iface)
	}
	return result
}

// Provides reports whether obj provides iface.
func Provides(obj any, iface Interface) bool {
	for _, i := range ProvidedBy(obj) {
		if i == iface {
			return true
		}
	}
	return false
}

// Declaration is a ready-made Provider for objects that only need a fixed
// set of interfaces.
type Declaration []Interface

// ProvidedInterfaces implements Provider.
func (d Declaration) ProvidedInterfaces() []Interface {
	return d
}

// BoundView is a plain View implementation.
type BoundView struct {
	ViewName string
	Parent   any
}

// Name implements View.
func (v *BoundView) Name() string { return v.ViewName }

// Context implements View.
func (v *BoundView) Context() any { return v.Parent }
