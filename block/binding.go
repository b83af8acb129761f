package block

import (
	"sort"
	"strings"

	"github.com/vcrobe/nojs-blocks/blockspec"
	"github.com/vcrobe/nojs-blocks/console"
	"github.com/vcrobe/nojs-blocks/dom"
	"github.com/vcrobe/nojs-blocks/events"
	"github.com/vcrobe/nojs-blocks/internal/lookup"
	"github.com/vcrobe/nojs-blocks/observable"
	"golang.org/x/net/html"
)

// Binding pairs a materialized node with its declarative binding spec.
// Values are compared against the last applied value per destination key,
// such as "text" or "css.color", so unchanged destinations are not touched.
type Binding struct {
	node  *html.Node
	spec  *blockspec.Binding
	owner *Base

	keys  []bindingKey
	last  map[string]any
	subs  []observable.Subscription
	bound bool
}

type bindingKey struct {
	kind string // text, html, css, className, attr
	name string
	path string
}

func (k bindingKey) String() string {
	if k.name == "" {
		return k.kind
	}
	return k.kind + "." + k.name
}

func newBinding(owner *Base, node *html.Node, spec *blockspec.Binding) *Binding {
	bd := &Binding{
		node:  node,
		spec:  spec,
		owner: owner,
		last:  make(map[string]any),
	}
	if spec.Text != "" {
		bd.keys = append(bd.keys, bindingKey{kind: "text", path: spec.Text})
	}
	if spec.HTML != "" {
		bd.keys = append(bd.keys, bindingKey{kind: "html", path: spec.HTML})
	}
	bd.keys = appendKeys(bd.keys, "css", spec.CSS)
	bd.keys = appendKeys(bd.keys, "className", spec.ClassName)
	bd.keys = appendKeys(bd.keys, "attr", spec.Attr)
	return bd
}

func appendKeys(keys []bindingKey, kind string, m map[string]string) []bindingKey {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		keys = append(keys, bindingKey{kind: kind, name: name, path: m[name]})
	}
	return keys
}

// Node returns the bound node.
func (bd *Binding) Node() *html.Node { return bd.node }

// Spec returns the binding descriptor.
func (bd *Binding) Spec() *blockspec.Binding { return bd.spec }

func (bd *Binding) update() {
	for _, k := range bd.keys {
		v := bd.owner.evaluate(k.path)
		key := k.String()
		if prev, seen := bd.last[key]; seen && sameValue(prev, v) {
			continue
		}
		bd.last[key] = v
		bd.apply(k, v)
	}
}

func (bd *Binding) apply(k bindingKey, v any) {
	switch k.kind {
	case "text":
		dom.SetText(bd.node, dom.Format(v))
	case "html":
		if err := dom.SetInnerHTML(bd.node, dom.Format(v)); err != nil {
			console.Warn("block: html binding", k.path+":", err)
		}
	case "css":
		dom.SetStyle(bd.node, k.name, dom.Format(v))
	case "className":
		dom.ToggleClass(bd.node, k.name, lookup.Truthy(v))
	case "attr":
		if dom.IsLiveProperty(k.name) {
			bd.owner.tree.doc.SetProperty(bd.node, k.name, v)
			return
		}
		dom.SetAttrValue(bd.node, k.name, v)
	}
}

func (bd *Binding) bind() {
	if bd.bound {
		return
	}
	bd.bound = true
	doc := bd.owner.tree.doc

	names := make([]string, 0, len(bd.spec.Events))
	for name := range bd.spec.Events {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		exprs := bd.spec.Events[name]
		bd.subs = append(bd.subs, doc.AddEventListener(bd.node, name, func(e events.Event) {
			for _, expr := range exprs {
				bd.owner.invoke(expr, e)
			}
		}))
	}

	for _, k := range bd.keys {
		if k.kind != "attr" || !dom.IsLiveProperty(k.name) || !assignable(k.path) {
			continue
		}
		writeBack := func(e events.Event) {
			v := e.Value
			if v == nil {
				v = doc.Property(bd.node, k.name)
			} else {
				doc.SetProperty(bd.node, k.name, v)
			}
			bd.last[k.String()] = v
			if !bd.owner.SetValue(k.path, v) {
				console.Warn("block: cannot write", k.path)
			}
		}
		bd.subs = append(bd.subs,
			doc.AddEventListener(bd.node, "change", writeBack),
			doc.AddEventListener(bd.node, "input", writeBack))
	}
}

func (bd *Binding) unbind() {
	for _, s := range bd.subs {
		s.Cancel()
	}
	bd.subs = nil
	bd.owner.tree.doc.Forget(bd.node)
}

// assignable reports whether path can be a two-way target.
func assignable(path string) bool {
	path = strings.TrimSpace(path)
	return path != "" && !strings.ContainsAny(path, "()!'\" ")
}

func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ia, ib := observable.Identity(a), observable.Identity(b)
	return ia != nil && ia == ib
}
