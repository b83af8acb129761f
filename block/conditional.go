package block

import (
	"github.com/vcrobe/nojs-blocks/dom"
	"github.com/vcrobe/nojs-blocks/internal/lookup"
)

// Conditional gates its content behind a source expression. Content is
// materialized at most once, the first time the source is truthy, and from
// then on only attached to or detached from the tree next to the placeholder.
//
//	unrendered --truthy render--> rendered-attached <--update--> rendered-detached
type Conditional struct {
	Base
	source string

	rendered bool
	inserted bool
	bound    bool
}

// Source returns the gating expression.
func (c *Conditional) Source() string { return c.source }

// Rendered reports whether the content has been materialized.
func (c *Conditional) Rendered() bool { return c.rendered }

// Inserted reports whether the content is attached.
func (c *Conditional) Inserted() bool { return c.inserted }

func (c *Conditional) truthy() bool {
	return lookup.Truthy(c.evaluate(c.source))
}

// Render materializes and attaches the content the first time the source is
// truthy, replaying a Bind that arrived earlier. Otherwise it does nothing.
func (c *Conditional) Render() {
	if c.disposed || c.rendered || !c.truthy() {
		return
	}
	c.Base.Render()
	c.rendered = true
	c.insert()
	if c.bound {
		c.Base.Bind()
	}
}

// Bind binds the content now when rendered, else on first render.
func (c *Conditional) Bind() {
	c.bound = true
	if c.rendered {
		c.Base.Bind()
	}
}

// Update re-evaluates the source, attaching or detaching the content, and
// refreshes the content only while the source is truthy.
func (c *Conditional) Update() {
	if c.disposed {
		return
	}
	on := c.truthy()
	switch {
	case on && !c.inserted:
		if c.rendered {
			c.insert()
		} else {
			c.Render()
		}
	case !on && c.inserted:
		c.remove()
	}
	if on {
		c.Base.Update()
	}
}

func (c *Conditional) insert() {
	if c.inserted {
		return
	}
	c.inserted = true
	if p := c.parentBase(); p != nil && c.placeholder != nil {
		p.insertElements(c.elements, c.placeholder)
	}
}

func (c *Conditional) remove() {
	if !c.inserted {
		return
	}
	c.inserted = false
	if p := c.parentBase(); p != nil {
		p.removeElements(c.elements)
		return
	}
	for _, n := range c.elements {
		dom.Remove(n)
	}
}
