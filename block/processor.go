package block

import (
	"github.com/vcrobe/nojs-blocks/blockspec"
	"github.com/vcrobe/nojs-blocks/console"
)

// FromSpec compiles a whole spec tree into a live block registered in tree.
// Element, Text, Comment and ViewReference roots become a plain block whose
// template is the root itself; block kinds become the matching variant.
// An unknown kind yields nil.
func FromSpec(tree *Tree, root *blockspec.Spec) Block {
	if root.Kind.IsBlock() {
		return newBlock(tree, NoHandle, root)
	}
	switch root.Kind {
	case blockspec.Element, blockspec.Text, blockspec.Comment, blockspec.ViewReference:
		b := &Base{tree: tree, kind: root.Kind}
		tree.add(b)
		b.template = ProcessTemplate(b, []*blockspec.Spec{root})
		return b
	}
	console.Debug("block: no block for root kind", root.Kind)
	return nil
}

// Compile creates the tree for view and compiles root into it.
func Compile(view View, root *blockspec.Spec) (*Tree, Block) {
	tree := NewTree(view)
	return tree, FromSpec(tree, root)
}

// ProcessTemplate flattens specs for parent. Elements are copied with their
// children processed, so a spec shared by several instances is never
// modified. Every structural, conditional or repeater spec becomes a live
// child of parent and is replaced by a placeholder comment owned by it.
// Repeaters flatten their item template later, once per item.
func ProcessTemplate(parent Block, specs []*blockspec.Spec) []*blockspec.Spec {
	pb := parent.base()
	out := make([]*blockspec.Spec, 0, len(specs))
	for _, s := range specs {
		switch {
		case s.Kind == blockspec.Element:
			c := s.Clone()
			if len(s.Children) > 0 {
				c.Children = ProcessTemplate(parent, s.Children)
			}
			out = append(out, c)
		case s.Kind.IsBlock():
			child := newBlock(pb.tree, pb.handle, s)
			pb.children = append(pb.children, child.Handle())
			out = append(out, blockspec.Placeholder(child.Handle()))
		case s.Kind == blockspec.Text, s.Kind == blockspec.Comment, s.Kind == blockspec.ViewReference:
			out = append(out, s)
		default:
			console.Debug("block: dropping spec of unknown kind", s.Kind)
		}
	}
	return out
}

func newBlock(tree *Tree, parent Handle, s *blockspec.Spec) Block {
	switch s.Kind {
	case blockspec.StructuralBlock:
		b := &Base{tree: tree, parent: parent, kind: s.Kind}
		tree.add(b)
		b.template = ProcessTemplate(b, s.Children)
		return b
	case blockspec.ConditionalBlock:
		c := &Conditional{
			Base:   Base{tree: tree, parent: parent, kind: s.Kind},
			source: s.Source,
		}
		tree.add(c)
		c.template = ProcessTemplate(c, s.Children)
		return c
	case blockspec.RepeaterBlock:
		r := newRepeater(tree, parent, s)
		tree.add(r)
		return r
	}
	return nil
}
