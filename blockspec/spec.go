// Package blockspec describes compiled templates: a static tree of block specs
// that the block processor turns into live blocks. Specs are immutable once
// built and are shared by every instance of a repeated region.
package blockspec

import (
	"fmt"
	"strings"
)

// Kind tags a spec node.
type Kind int

const (
	Element Kind = iota
	Text
	Comment
	StructuralBlock
	ConditionalBlock
	RepeaterBlock
	ViewReference
)

var kindNames = [...]string{
	Element:          "Element",
	Text:             "Text",
	Comment:          "Comment",
	StructuralBlock:  "StructuralBlock",
	ConditionalBlock: "ConditionalBlock",
	RepeaterBlock:    "RepeaterBlock",
	ViewReference:    "ViewReference",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsBlock reports whether specs of this kind compile into their own live block.
func (k Kind) IsBlock() bool {
	return k == StructuralBlock || k == ConditionalBlock || k == RepeaterBlock
}

// Handle addresses a live block inside its tree. The zero value means "no block".
type Handle int32

// NoHandle is the zero Handle.
const NoHandle Handle = 0

// Spec is one node of a compiled template.
type Spec struct {
	Kind     Kind
	Tag      string            // Element tag name
	Attr     map[string]string // Static attributes
	Binding  *Binding          // Optional declarative bindings for the materialized node
	Children []*Spec
	Value    string // Static text for Text and Comment specs
	Source   string // Source expression of conditional and repeater blocks
	Iterator string // Iterator name bound per repeater item
	TrackBy  string // Optional key path evaluated against a repeater item
	Name     string // Referenced view name for ViewReference
	Owner    Handle // Set only on placeholder comments produced by the processor
}

// Binding pairs destinations with source property paths.
type Binding struct {
	Text      string
	HTML      string
	CSS       map[string]string   // style property -> path
	ClassName map[string]string   // class name -> path
	Attr      map[string]string   // attribute -> path
	Events    map[string][]string // event name -> handler expressions
}

// IsZero reports whether the binding declares nothing.
func (b *Binding) IsZero() bool {
	return b == nil || (b.Text == "" && b.HTML == "" && len(b.CSS) == 0 &&
		len(b.ClassName) == 0 && len(b.Attr) == 0 && len(b.Events) == 0)
}

// Clone returns a shallow copy of s. Children, attributes and the binding are
// shared with s and must not be mutated through the copy.
func (s *Spec) Clone() *Spec {
	c := *s
	return &c
}

// IsPlaceholder reports whether s is a comment standing in for a live block.
func (s *Spec) IsPlaceholder() bool {
	return s.Kind == Comment && s.Owner != NoHandle
}

// String renders the spec tree in a compact, indented form for diagnostics.
func (s *Spec) String() string {
	var sb strings.Builder
	s.write(&sb, 0)
	return sb.String()
}

func (s *Spec) write(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(s.Kind.String())
	switch s.Kind {
	case Element:
		fmt.Fprintf(sb, " <%s>", s.Tag)
	case Text, Comment:
		fmt.Fprintf(sb, " %q", s.Value)
	case ConditionalBlock:
		fmt.Fprintf(sb, " if=%s", s.Source)
	case RepeaterBlock:
		fmt.Fprintf(sb, " %s in %s", s.Iterator, s.Source)
	case ViewReference:
		fmt.Fprintf(sb, " %s", s.Name)
	}
	if s.Owner != NoHandle {
		fmt.Fprintf(sb, " owner=%d", s.Owner)
	}
	sb.WriteByte('\n')
	for _, c := range s.Children {
		c.write(sb, depth+1)
	}
}
