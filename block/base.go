package block

import (
	"slices"
	"sort"

	"github.com/vcrobe/nojs-blocks/blockspec"
	"github.com/vcrobe/nojs-blocks/console"
	"github.com/vcrobe/nojs-blocks/dom"
	"golang.org/x/net/html"
)

// Base is the plain block: it materializes its template once, owns the
// bindings of the nodes it created, and tracks its top-level nodes in
// elements. Structural blocks are plain blocks anchored at a placeholder.
type Base struct {
	tree     *Tree
	handle   Handle
	parent   Handle
	kind     blockspec.Kind
	template []*blockspec.Spec

	elements    []*html.Node // top-level nodes, contiguous in the tree
	children    []Handle
	bindings    []*Binding
	views       []Child
	scope       map[string]any
	placeholder *html.Node // owned by the node tree

	materialized bool
	bound        bool
	disposed     bool
}

// Handle returns the block's arena handle.
func (b *Base) Handle() Handle { return b.handle }

// Kind reports which spec kind the block was built from.
func (b *Base) Kind() blockspec.Kind { return b.kind }

// Tree returns the arena the block lives in.
func (b *Base) Tree() *Tree { return b.tree }

// Parent returns the enclosing block, or nil at the root.
func (b *Base) Parent() Block { return b.tree.Get(b.parent) }

// Elements returns the top-level nodes currently tracked by the block.
func (b *Base) Elements() []*html.Node { return b.elements }

// Placeholder returns the comment node the block's content is anchored at.
func (b *Base) Placeholder() *html.Node { return b.placeholder }

// Scope returns the local bindings introduced by a repeater, or nil.
func (b *Base) Scope() map[string]any { return b.scope }

// Bindings returns the bindings of the nodes this block materialized.
func (b *Base) Bindings() []*Binding { return b.bindings }

// Children returns the live child blocks in document order.
func (b *Base) Children() []Block {
	out := make([]Block, 0, len(b.children))
	for _, h := range b.children {
		if c := b.tree.Get(h); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// Disposed reports whether Dispose ran.
func (b *Base) Disposed() bool { return b.disposed }

func (b *Base) base() *Base { return b }

func (b *Base) parentBase() *Base {
	if p := b.tree.Get(b.parent); p != nil {
		return p.base()
	}
	return nil
}

// Render materializes the template the first time it is called, then
// renders every child block. Later calls only reach the children.
func (b *Base) Render() {
	if b.disposed {
		return
	}
	if !b.materialized {
		b.materialize()
		if b.kind == blockspec.StructuralBlock && b.placeholder != nil {
			if p := b.parentBase(); p != nil {
				p.insertElements(b.elements, b.placeholder)
			}
		}
	}
	for _, c := range b.Children() {
		c.Render()
	}
}

func (b *Base) materialize() {
	b.materialized = true
	for _, s := range b.template {
		if n := b.createNode(s); n != nil {
			b.elements = append(b.elements, n)
		}
	}
}

func (b *Base) createNode(s *blockspec.Spec) *html.Node {
	var n *html.Node
	switch s.Kind {
	case blockspec.Element:
		n = dom.CreateElement(s.Tag)
		keys := make([]string, 0, len(s.Attr))
		for k := range s.Attr {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			dom.SetAttr(n, k, s.Attr[k])
		}
		for _, cs := range s.Children {
			if c := b.createNode(cs); c != nil {
				n.AppendChild(c)
			}
		}
	case blockspec.Text:
		n = dom.CreateText(s.Value)
	case blockspec.Comment:
		n = dom.CreateComment(s.Value)
		if s.Owner != NoHandle {
			if owner := b.tree.Get(s.Owner); owner != nil {
				owner.base().placeholder = n
			}
		}
	case blockspec.ViewReference:
		n = b.mountView(s.Name)
	default:
		console.Debug("block: cannot materialize", s.Kind, "in block", b.handle)
		return nil
	}

	if !s.Binding.IsZero() {
		bd := newBinding(b, n, s.Binding)
		b.bindings = append(b.bindings, bd)
		if b.bound {
			bd.bind()
		}
	}
	return n
}

func (b *Base) mountView(name string) *html.Node {
	r, ok := b.tree.view.(Resolver)
	if !ok {
		return dom.CreateComment("view:" + name)
	}
	child, ok := r.ResolveView(name)
	if !ok {
		console.Warn("block: view", name, "not found")
		return dom.CreateComment("view:" + name)
	}
	host := dom.CreateElement("div")
	dom.SetAttr(host, "data-view", name)
	child.Render()
	child.Mount(host)
	if b.bound {
		child.Bind()
	}
	b.views = append(b.views, child)
	return host
}

// Bind wires event and two-way bindings once, then binds the children.
// Bindings created by a later render are wired as they appear.
func (b *Base) Bind() {
	if b.disposed {
		return
	}
	if !b.bound {
		b.bound = true
		for _, bd := range b.bindings {
			bd.bind()
		}
		for _, v := range b.views {
			v.Bind()
		}
	}
	for _, c := range b.Children() {
		c.Bind()
	}
}

// Update refreshes every binding whose value changed, then the children.
func (b *Base) Update() {
	if b.disposed {
		return
	}
	for _, bd := range b.bindings {
		bd.update()
	}
	for _, v := range b.views {
		v.Update()
	}
	for _, c := range b.Children() {
		c.Update()
	}
}

// Dispose releases children depth-first, then the block's own listeners.
// It is safe to call more than once and at any point of the lifecycle.
func (b *Base) Dispose() {
	if b.disposed {
		return
	}
	b.disposed = true
	for _, c := range b.Children() {
		c.Dispose()
	}
	b.children = nil
	for _, bd := range b.bindings {
		bd.unbind()
	}
	for _, v := range b.views {
		v.Dispose()
	}
	b.views = nil
	b.tree.release(b.handle)
}

func (b *Base) tracks(n *html.Node) bool {
	return slices.Contains(b.elements, n)
}

// insertElements places nodes right after the anchor, in the block's element
// list when the anchor is tracked (the block's own placeholder means the
// front of the list) and in the node tree. Ancestors tracking the same anchor
// are updated on the way up; the outermost one performs the tree insert.
func (b *Base) insertElements(nodes []*html.Node, after *html.Node) {
	if len(nodes) == 0 {
		return
	}
	pos := -1
	switch {
	case after == nil || after == b.placeholder:
		pos = 0
	default:
		if i := slices.Index(b.elements, after); i >= 0 {
			pos = i + 1
		}
	}
	if pos >= 0 {
		b.elements = slices.Insert(b.elements, pos, nodes...)
	}

	if after == nil {
		return
	}
	if p := b.parentBase(); p != nil && p.tracks(after) {
		p.insertElements(nodes, after)
		return
	}
	if after.Parent == nil && pos >= 0 {
		// Detached range; the owner inserts it when it attaches.
		return
	}
	anchor := after
	for _, n := range nodes {
		dom.InsertAfter(n, anchor)
		anchor = n
	}
}

// removeElements drops the contiguous run starting at nodes[0] from the
// element list and the node tree, mirroring insertElements.
func (b *Base) removeElements(nodes []*html.Node) {
	if len(nodes) == 0 {
		return
	}
	first := nodes[0]
	i := slices.Index(b.elements, first)
	if i >= 0 {
		end := min(i+len(nodes), len(b.elements))
		b.elements = slices.Delete(b.elements, i, end)
	}
	if p := b.parentBase(); p != nil && i >= 0 && p.tracks(first) {
		p.removeElements(nodes)
		return
	}
	for _, n := range nodes {
		dom.Remove(n)
	}
}
