package block

import (
	"github.com/vcrobe/nojs-blocks/dom"
)

// Tree is the arena owning every live block of one view. Handles are slot
// indexes plus one; released slots are reused by later blocks.
type Tree struct {
	view    View
	doc     *dom.Document
	slots   []Block
	free    []Handle
	created int
}

// NewTree creates an empty arena for view. A view without a document gets a
// fresh one.
func NewTree(view View) *Tree {
	doc := view.Document()
	if doc == nil {
		doc = dom.NewDocument()
	}
	return &Tree{view: view, doc: doc}
}

// View returns the owning view.
func (t *Tree) View() View {
	return t.view
}

// Document returns the document nodes are created in.
func (t *Tree) Document() *dom.Document {
	return t.doc
}

// Get returns the live block for h, or nil when h is unknown or released.
func (t *Tree) Get(h Handle) Block {
	i := int(h) - 1
	if i < 0 || i >= len(t.slots) {
		return nil
	}
	return t.slots[i]
}

// Len reports how many blocks are alive.
func (t *Tree) Len() int {
	return len(t.slots) - len(t.free)
}

// Created reports how many blocks the tree has ever registered. It serves
// as a diagnostic id source.
func (t *Tree) Created() int {
	return t.created
}

func (t *Tree) add(b Block) Handle {
	t.created++
	var h Handle
	if n := len(t.free); n > 0 {
		h = t.free[n-1]
		t.free = t.free[:n-1]
		t.slots[h-1] = b
	} else {
		t.slots = append(t.slots, b)
		h = Handle(len(t.slots))
	}
	b.base().handle = h
	return h
}

func (t *Tree) release(h Handle) {
	if t.Get(h) == nil {
		return
	}
	t.slots[h-1] = nil
	t.free = append(t.free, h)
}
