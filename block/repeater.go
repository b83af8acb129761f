package block

import (
	"slices"

	"github.com/vcrobe/nojs-blocks/blockspec"
	"github.com/vcrobe/nojs-blocks/console"
	"github.com/vcrobe/nojs-blocks/internal/lookup"
	"github.com/vcrobe/nojs-blocks/observable"
	"golang.org/x/net/html"
)

// Repeater keeps one child block per item of its source collection. The
// children's nodes follow the placeholder in item order, and current mirrors
// the items they were rendered for.
type Repeater struct {
	Base
	source        string
	iterator      string
	trackBy       []string
	blockTemplate []*blockspec.Spec

	current    *observable.List // shadow of the rendered items
	observed   *observable.List // last resolved source collection
	listLike   bool
	subscribed *observable.List
	sub        observable.Subscription
	keys       map[any]any // item identity -> pinned key

	rendered bool
	bound    bool
}

func newRepeater(tree *Tree, parent Handle, s *blockspec.Spec) *Repeater {
	r := &Repeater{
		Base:          Base{tree: tree, parent: parent, kind: blockspec.RepeaterBlock},
		source:        s.Source,
		iterator:      s.Iterator,
		blockTemplate: s.Children,
		current:       observable.NewList(),
		keys:          make(map[any]any),
	}
	if s.TrackBy != "" {
		segs := lookup.Split(s.TrackBy)
		if len(segs) > 0 && segs[0] == s.Iterator {
			segs = segs[1:]
		}
		r.trackBy = segs
	}
	return r
}

// Source returns the source expression.
func (r *Repeater) Source() string { return r.source }

// Iterator returns the name each item is bound to.
func (r *Repeater) Iterator() string { return r.iterator }

// Items returns the items currently rendered, in order.
func (r *Repeater) Items() []any { return r.current.Items() }

// getList resolves the source as a collection; listLike reports whether it
// already was one and can be subscribed to.
func (r *Repeater) getList() (*observable.List, bool) {
	return observable.Wrap(r.evaluate(r.source))
}

func (r *Repeater) observe() *observable.List {
	list, listLike := r.getList()
	r.observed, r.listLike = list, listLike
	return list
}

// Render reloads the children from the source the first time; later calls
// only reach the children.
func (r *Repeater) Render() {
	if r.disposed {
		return
	}
	if r.rendered {
		r.Base.Render()
		return
	}
	r.rendered = true
	r.materialized = true
	list := r.observed
	if list == nil {
		list = r.observe()
	}
	r.reload(list)
}

// Bind subscribes to the source's change notifications when it is a list,
// then binds the children.
func (r *Repeater) Bind() {
	if r.disposed {
		return
	}
	r.bound = true
	if r.observed == nil {
		r.observe()
	}
	if r.listLike {
		r.subscribe(r.observed)
	}
	r.Base.Bind()
}

// Update re-resolves the source. A different collection replaces the
// subscription and triggers a full reload. Children are updated afterwards.
func (r *Repeater) Update() {
	if r.disposed {
		return
	}
	list, listLike := r.getList()
	if list != r.observed {
		r.observed, r.listLike = list, listLike
		if r.bound && listLike {
			r.subscribe(list)
		} else {
			r.unsubscribe()
		}
		if r.rendered {
			r.reload(list)
		}
	}
	r.Base.Update()
}

// Dispose drops the list subscription and disposes every item block.
func (r *Repeater) Dispose() {
	if r.disposed {
		return
	}
	r.unsubscribe()
	r.Base.Dispose()
}

func (r *Repeater) subscribe(list *observable.List) {
	if r.subscribed == list {
		return
	}
	r.sub.Cancel()
	r.sub = list.OnChange(r.onChange)
	r.subscribed = list
}

func (r *Repeater) unsubscribe() {
	r.sub.Cancel()
	r.sub = observable.Subscription{}
	r.subscribed = nil
}

func (r *Repeater) onChange(c observable.Change) {
	if r.disposed || !r.rendered {
		return
	}
	// Fast paths apply only while the shadow is exactly one step behind;
	// a handler that mutated the list again in between forces a reload.
	n := r.observed.Count()
	switch {
	case c.Type == observable.Insert && c.Index <= r.current.Count() && r.current.Count()+1 == n:
		r.insertChild(c.Item, c.Index)
	case c.Type == observable.Remove && c.Index < r.current.Count() && r.current.Count()-1 == n:
		r.removeChild(c.Index)
	default:
		r.reload(r.observed)
	}
	r.pruneKeys()
	r.Update()
}

// reload aligns the children with list in a single position-anchored pass.
// At each index the new item's key is compared with the rendered item's key:
// a missing rendered item or an unknown key is an insertion, a key found
// further down the rendered list means the rendered item was removed, and a
// match updates the child in place. Rendered items left past the end of list
// are removed last.
func (r *Repeater) reload(list *observable.List) {
	console.Debug("block: reload repeater", r.handle, "over", r.source, "count", list.Count())
	i := 0
	for ; i < list.Count(); i++ {
		item := list.At(i)
		key := r.keyOf(item, i)
		if i >= r.current.Count() {
			r.insertChild(item, i)
			continue
		}
		if !sameKey(key, r.keyOf(r.current.At(i), i)) {
			if r.indexOfKey(key, i+1) >= 0 {
				r.removeChild(i)
				i--
			} else {
				r.insertChild(item, i)
			}
			continue
		}
		r.updateChild(i, item)
	}
	for r.current.Count() > list.Count() {
		r.removeChild(i)
	}
	r.pruneKeys()
}

// keyOf returns the trackBy value of item when configured, else the key
// pinned to the item the first time it was seen, which is its index then.
func (r *Repeater) keyOf(item any, index int) any {
	if len(r.trackBy) > 0 {
		if v, ok := lookup.Get(item, r.trackBy); ok {
			return v
		}
	}
	id := observable.Identity(item)
	if id == nil {
		return index
	}
	if k, ok := r.keys[id]; ok {
		return k
	}
	r.keys[id] = index
	return index
}

func (r *Repeater) indexOfKey(key any, from int) int {
	for j := from; j < r.current.Count(); j++ {
		if sameKey(key, r.keyOf(r.current.At(j), j)) {
			return j
		}
	}
	return -1
}

// pruneKeys forgets pinned keys of items no longer rendered.
func (r *Repeater) pruneKeys() {
	if len(r.keys) <= r.current.Count() {
		return
	}
	live := make(map[any]bool, r.current.Count())
	for _, item := range r.current.Items() {
		if id := observable.Identity(item); id != nil {
			live[id] = true
		}
	}
	for id := range r.keys {
		if !live[id] {
			delete(r.keys, id)
		}
	}
}

func sameKey(a, b any) bool {
	return sameValue(a, b)
}

// anchorFor returns the node the child at index is inserted after: the last
// node of the nearest preceding child with content, else the placeholder.
func (r *Repeater) anchorFor(index int) *html.Node {
	for j := index - 1; j >= 0; j-- {
		c := r.tree.Get(r.children[j])
		if c == nil {
			continue
		}
		if els := c.Elements(); len(els) > 0 {
			return els[len(els)-1]
		}
	}
	return r.placeholder
}

func (r *Repeater) insertChild(item any, index int) {
	anchor := r.anchorFor(index)
	r.current.InsertAt(index, item)

	child := &Base{
		tree:   r.tree,
		parent: r.handle,
		kind:   blockspec.StructuralBlock,
		scope:  map[string]any{r.iterator: item},
	}
	r.tree.add(child)
	child.template = ProcessTemplate(child, r.blockTemplate)
	r.children = slices.Insert(r.children, index, child.handle)

	if r.rendered {
		child.Render()
	}
	if r.bound {
		child.Bind()
	}
	r.insertElements(child.elements, anchor)
}

func (r *Repeater) removeChild(index int) {
	h := r.children[index]
	r.children = slices.Delete(r.children, index, index+1)
	r.current.RemoveAt(index)

	c := r.tree.Get(h)
	if c == nil {
		return
	}
	nodes := slices.Clone(c.Elements())
	c.Dispose()
	r.removeElements(nodes)
}

func (r *Repeater) updateChild(index int, item any) {
	r.current.SetAt(index, item)
	c := r.tree.Get(r.children[index])
	if c == nil {
		return
	}
	c.base().scope[r.iterator] = item
	c.Update()
}
