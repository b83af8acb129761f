// Package block is the reconciliation engine. A Processor flattens a
// blockspec tree into live blocks that materialize nodes into a dom tree and
// keep them current: plain blocks render static structure and bindings,
// Conditional blocks attach and detach their content, and Repeater blocks
// keep one child block per item of an ordered collection using a keyed diff.
//
// All blocks of one view live in a Tree and refer to each other by Handle.
// Everything runs synchronously on the caller's stack; list change handlers
// may re-enter the engine and mutate structure before the outer call returns.
package block

import (
	"github.com/vcrobe/nojs-blocks/blockspec"
	"github.com/vcrobe/nojs-blocks/dom"
	"golang.org/x/net/html"
)

// Handle addresses a block inside its Tree.
type Handle = blockspec.Handle

// NoHandle is the zero Handle.
const NoHandle = blockspec.NoHandle

// Block is the lifecycle contract shared by every block variant.
type Block interface {
	Handle() Handle
	Kind() blockspec.Kind
	Render()
	Bind()
	Update()
	Dispose()
	Elements() []*html.Node
	Children() []Block
	GetValue(path string) (any, bool)
	SetValue(path string, value any) bool

	base() *Base
}

// View is the owning view consulted when no block scope resolves a path.
type View interface {
	GetValue(path string) (any, bool)
	SetValue(path string, value any) bool
	Document() *dom.Document
}

// Owned is implemented by views created on behalf of another view.
type Owned interface {
	Owner() View
}

// Child is a view mounted in place of a ViewReference spec.
type Child interface {
	Render()
	Bind()
	Update()
	Dispose()
	Mount(container *html.Node)
}

// Resolver is implemented by views able to instantiate referenced views.
type Resolver interface {
	ResolveView(name string) (Child, bool)
}

var (
	_ Block = (*Base)(nil)
	_ Block = (*Conditional)(nil)
	_ Block = (*Repeater)(nil)
)
