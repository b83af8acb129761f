package blockspec

// NewElement creates an Element spec.
func NewElement(tag string, attr map[string]string, binding *Binding, children ...*Spec) *Spec {
	return &Spec{
		Kind:     Element,
		Tag:      tag,
		Attr:     attr,
		Binding:  binding,
		Children: children,
	}
}

// Div creates a <div> spec with the given children.
func Div(attr map[string]string, children ...*Spec) *Spec {
	return NewElement("div", attr, nil, children...)
}

// Span creates a <span> spec whose text is bound to path.
func Span(path string) *Spec {
	return NewElement("span", nil, &Binding{Text: path})
}

// NewText creates a static Text spec.
func NewText(value string) *Spec {
	return &Spec{Kind: Text, Value: value}
}

// BoundText creates a Text spec whose content follows path.
func BoundText(path string) *Spec {
	return &Spec{Kind: Text, Binding: &Binding{Text: path}}
}

// NewComment creates a static Comment spec.
func NewComment(value string) *Spec {
	return &Spec{Kind: Comment, Value: value}
}

// Placeholder creates the comment spec standing in for the live block owner.
func Placeholder(owner Handle) *Spec {
	return &Spec{Kind: Comment, Owner: owner}
}

// Structural groups children into a block of their own.
func Structural(children ...*Spec) *Spec {
	return &Spec{Kind: StructuralBlock, Children: children}
}

// Conditional renders children only while source is truthy.
func Conditional(source string, children ...*Spec) *Spec {
	return &Spec{Kind: ConditionalBlock, Source: source, Children: children}
}

// Repeater renders children once per item of source, binding each item to iterator.
func Repeater(source, iterator string, children ...*Spec) *Spec {
	return &Spec{Kind: RepeaterBlock, Source: source, Iterator: iterator, Children: children}
}

// Keyed returns a copy of a repeater spec whose items are keyed by trackBy.
func (s *Spec) Keyed(trackBy string) *Spec {
	c := s.Clone()
	c.TrackBy = trackBy
	return c
}

// ViewRef references a named view resolved at render time.
func ViewRef(name string) *Spec {
	return &Spec{Kind: ViewReference, Name: name}
}
