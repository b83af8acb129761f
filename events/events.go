// Package events defines the argument passed to event handlers and the
// adapters that let handlers with different signatures share one shape.
package events

import "golang.org/x/net/html"

// Event is dispatched to listeners registered on a node.
type Event struct {
	Type   string
	Target *html.Node
	Value  any // Current value for change and input events
}

// Handler is the uniform listener shape.
type Handler func(Event)

// ChangeEventArgs is passed to handlers of change and input events.
type ChangeEventArgs struct {
	Value any
}

// AdaptNoArgEvent wraps a handler that ignores the event.
func AdaptNoArgEvent(handler func()) Handler {
	return func(Event) { handler() }
}

// AdaptChangeEvent wraps a handler interested only in the new value.
func AdaptChangeEvent(handler func(ChangeEventArgs)) Handler {
	return func(e Event) { handler(ChangeEventArgs{Value: e.Value}) }
}

// Adapt converts the common handler shapes to a Handler. It reports false
// for anything else.
func Adapt(fn any) (Handler, bool) {
	switch h := fn.(type) {
	case Handler:
		return h, true
	case func(Event):
		return h, true
	case func():
		return AdaptNoArgEvent(h), true
	case func(ChangeEventArgs):
		return AdaptChangeEvent(h), true
	}
	return nil, false
}

// IsValueEvent reports whether type carries a form value.
func IsValueEvent(typ string) bool {
	return typ == "change" || typ == "input"
}
