// Package runtime hosts block trees. A View owns the block tree compiled from
// a template, resolves paths against a Go model, drives the lifecycle and
// instantiates referenced views through a Registry.
package runtime

import (
	"errors"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/vcrobe/nojs-blocks/block"
	"github.com/vcrobe/nojs-blocks/blockspec"
	"github.com/vcrobe/nojs-blocks/console"
	"github.com/vcrobe/nojs-blocks/dom"
	"github.com/vcrobe/nojs-blocks/internal/lookup"
	"golang.org/x/net/html"
)

// ErrUndefined is returned by Call when the name resolves to nothing.
var ErrUndefined = errors.New("undefined")

// View owns one block tree and the model its paths resolve against.
type View struct {
	name     string
	model    any
	doc      *dom.Document
	registry *Registry
	owner    *View

	tree     *block.Tree
	root     block.Block
	computed map[string]*vm.Program
	mounted  *html.Node

	initialized bool
	rendered    bool
	disposed    bool
}

// Option configures a View.
type Option func(*View)

// WithRegistry sets the registry used to resolve view references.
func WithRegistry(r *Registry) Option {
	return func(v *View) { v.registry = r }
}

// WithDocument renders into doc instead of a fresh document.
func WithDocument(doc *dom.Document) Option {
	return func(v *View) { v.doc = doc }
}

// WithOwner marks the view as created on behalf of owner. Paths prefixed
// with $owner resolve against it, and the document and registry default to
// the owner's.
func WithOwner(owner *View) Option {
	return func(v *View) { v.owner = owner }
}

// WithName names the view in diagnostics.
func WithName(name string) Option {
	return func(v *View) { v.name = name }
}

// New compiles root for model. A conditional or repeater root is wrapped in a
// structural block so its content always has a placeholder to follow.
func New(model any, root *blockspec.Spec, opts ...Option) *View {
	v := &View{
		name:     "view",
		model:    model,
		computed: make(map[string]*vm.Program),
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.owner != nil {
		if v.doc == nil {
			v.doc = v.owner.doc
		}
		if v.registry == nil {
			v.registry = v.owner.registry
		}
	}
	if v.doc == nil {
		v.doc = dom.NewDocument()
	}

	switch {
	case root == nil:
		root = blockspec.Structural()
	case root.Kind == blockspec.ConditionalBlock, root.Kind == blockspec.RepeaterBlock:
		root = blockspec.Structural(root)
	}
	v.tree, v.root = block.Compile(v, root)
	if v.root == nil {
		console.Warn("runtime: view", v.name, "has no renderable root", root.Kind)
		v.root = block.FromSpec(v.tree, blockspec.Structural())
	}

	if a, ok := model.(Attachable); ok {
		a.SetRenderer(v)
	}
	return v
}

// Name returns the diagnostic name.
func (v *View) Name() string { return v.name }

// Model returns the model paths resolve against.
func (v *View) Model() any { return v.model }

// Root returns the root block.
func (v *View) Root() block.Block { return v.root }

// Tree returns the block arena.
func (v *View) Tree() *block.Tree { return v.tree }

// Document returns the document the view renders into.
func (v *View) Document() *dom.Document { return v.doc }

// Owner returns the view this one was created for, or nil.
func (v *View) Owner() block.View {
	if v.owner == nil {
		return nil
	}
	return v.owner
}

// GetValue resolves path against computed values first, then the model.
func (v *View) GetValue(path string) (any, bool) {
	segs := lookup.Split(path)
	if len(segs) == 0 {
		return v.model, true
	}
	if prog, ok := v.computed[segs[0]]; ok {
		out, err := expr.Run(prog, v.env())
		if err != nil {
			console.Warn("runtime: computed", segs[0]+":", err)
			return nil, false
		}
		return lookup.Get(out, segs[1:])
	}
	return lookup.Get(v.model, segs)
}

// SetValue writes path into the model.
func (v *View) SetValue(path string, value any) bool {
	return lookup.Set(v.model, lookup.Split(path), value)
}

// Call invokes the function or method at path.
func (v *View) Call(path string, args ...any) (any, error) {
	fn, ok := v.GetValue(path)
	if !ok {
		return nil, fmt.Errorf("runtime: call %s: %w", path, ErrUndefined)
	}
	out, err := lookup.Call(fn, args...)
	if err != nil {
		return out, fmt.Errorf("runtime: call %s: %w", path, err)
	}
	return out, nil
}

// Compute defines name as the result of an expression evaluated against the
// model each time name is read. It shadows a model field of the same name.
func (v *View) Compute(name, expression string) error {
	prog, err := expr.Compile(expression, expr.Optimize(true))
	if err != nil {
		return fmt.Errorf("runtime: compute %s: %w", name, err)
	}
	v.computed[name] = prog
	return nil
}

func (v *View) env() any {
	if v.model == nil {
		return map[string]any{}
	}
	return v.model
}

// Render materializes the tree, running the model's OnInit first.
func (v *View) Render() {
	if v.disposed {
		return
	}
	if !v.initialized {
		v.initialized = true
		if i, ok := v.model.(Initializer); ok {
			v.callOnInit(i)
		}
	}
	v.rendered = true
	v.root.Render()
}

// Bind wires event and two-way bindings.
func (v *View) Bind() {
	if v.disposed {
		return
	}
	v.root.Bind()
}

// Update refreshes every binding whose value changed.
func (v *View) Update() {
	if v.disposed || !v.rendered {
		return
	}
	if u, ok := v.model.(UpdateReceiver); ok {
		v.callOnUpdate(u)
	}
	v.root.Update()
}

// Dispose tears the tree down and runs the model's OnDestroy. Nodes are left
// where they are.
func (v *View) Dispose() {
	if v.disposed {
		return
	}
	v.disposed = true
	v.root.Dispose()
	if c, ok := v.model.(Cleaner); ok {
		v.callOnDestroy(c)
	}
}

// Mount appends the view's top-level nodes to container.
func (v *View) Mount(container *html.Node) {
	for _, n := range v.root.Elements() {
		dom.AppendChild(container, n)
	}
	v.mounted = container
}

// Start renders, mounts into container when given, binds and runs the first
// update.
func (v *View) Start(container *html.Node) {
	v.Render()
	if container != nil {
		v.Mount(container)
	}
	v.Bind()
	v.Update()
}

// Nodes returns the top-level nodes.
func (v *View) Nodes() []*html.Node { return v.root.Elements() }

// HTML renders the top-level nodes.
func (v *View) HTML() string { return dom.OuterHTML(v.Nodes()...) }

// ResolveView creates the view registered under name, owned by v.
func (v *View) ResolveView(name string) (block.Child, bool) {
	if v.registry == nil {
		return nil, false
	}
	child, err := v.registry.Create(name, WithOwner(v))
	if err != nil {
		console.Debug("runtime:", err)
		return nil, false
	}
	return child, true
}
