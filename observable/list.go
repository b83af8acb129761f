package observable

import (
	"fmt"
	"reflect"
)

// ChangeType names a structural list mutation.
type ChangeType string

const (
	Insert      ChangeType = "insert"
	Remove      ChangeType = "remove"
	Update      ChangeType = "update"
	Reset       ChangeType = "reset"
	InsertRange ChangeType = "insertRange"
)

// Change describes one mutation. Item is the inserted, removed or new item;
// Items is set for InsertRange.
type Change struct {
	Type  ChangeType
	Index int
	Item  any
	Items []any
}

// List is an ordered collection raising a Change on every mutation.
type List struct {
	items []any
	subs  subscribers[func(Change)]
}

// NewList creates a list holding items.
func NewList(items ...any) *List {
	l := &List{}
	l.items = append(l.items, items...)
	return l
}

// Wrap turns v into a List. A *List is returned as is with listLike set, nil
// becomes an empty list, slices and arrays are copied item by item and any
// other value becomes a one-item list.
func Wrap(v any) (l *List, listLike bool) {
	switch t := v.(type) {
	case nil:
		return NewList(), false
	case *List:
		if t == nil {
			return NewList(), false
		}
		return t, true
	case []any:
		return NewList(t...), false
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return NewList(), false
	}
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return NewList(), false
		}
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return &List{items: items}, false
	}
	return NewList(v), false
}

// Count returns the number of items.
func (l *List) Count() int {
	return len(l.items)
}

// At returns the item at index i, or nil when i is out of range.
func (l *List) At(i int) any {
	if i < 0 || i >= len(l.items) {
		return nil
	}
	return l.items[i]
}

// Items returns a copy of the items.
func (l *List) Items() []any {
	out := make([]any, len(l.items))
	copy(out, l.items)
	return out
}

// IndexOf returns the first index holding item, or -1.
func (l *List) IndexOf(item any) int {
	for i, v := range l.items {
		if same(v, item) {
			return i
		}
	}
	return -1
}

// Push appends item.
func (l *List) Push(item any) {
	l.InsertAt(len(l.items), item)
}

// Pop removes and returns the last item.
func (l *List) Pop() (any, bool) {
	if len(l.items) == 0 {
		return nil, false
	}
	return l.RemoveAt(len(l.items) - 1), true
}

// InsertAt inserts item before index i; i == Count appends.
func (l *List) InsertAt(i int, item any) {
	l.checkInsert(i)
	l.items = append(l.items, nil)
	copy(l.items[i+1:], l.items[i:])
	l.items[i] = item
	l.raise(Change{Type: Insert, Index: i, Item: item})
}

// InsertRange inserts items before index i.
func (l *List) InsertRange(i int, items ...any) {
	l.checkInsert(i)
	if len(items) == 0 {
		return
	}
	tail := append([]any(nil), l.items[i:]...)
	l.items = append(append(l.items[:i], items...), tail...)
	l.raise(Change{Type: InsertRange, Index: i, Items: append([]any(nil), items...)})
}

// RemoveAt removes and returns the item at index i.
func (l *List) RemoveAt(i int) any {
	l.checkIndex(i)
	item := l.items[i]
	l.items = append(l.items[:i], l.items[i+1:]...)
	l.raise(Change{Type: Remove, Index: i, Item: item})
	return item
}

// SetAt replaces the item at index i.
func (l *List) SetAt(i int, item any) {
	l.checkIndex(i)
	l.items[i] = item
	l.raise(Change{Type: Update, Index: i, Item: item})
}

// Reset replaces the whole content.
func (l *List) Reset(items ...any) {
	l.items = append([]any(nil), items...)
	l.raise(Change{Type: Reset})
}

// OnChange registers fn for every mutation.
func (l *List) OnChange(fn func(Change)) Subscription {
	id := l.subs.add(fn)
	return Subscription{cancel: func() { l.subs.remove(id) }}
}

// Subscribers reports how many change handlers are registered.
func (l *List) Subscribers() int {
	return l.subs.len()
}

func (l *List) raise(c Change) {
	for _, fn := range l.subs.snapshot() {
		fn(c)
	}
}

func (l *List) checkIndex(i int) {
	if i < 0 || i >= len(l.items) {
		panic(fmt.Sprintf("observable: index %d out of range [0:%d]", i, len(l.items)))
	}
}

func (l *List) checkInsert(i int) {
	if i < 0 || i > len(l.items) {
		panic(fmt.Sprintf("observable: insert index %d out of range [0:%d]", i, len(l.items)))
	}
}

// same compares by identity for reference kinds and by value otherwise.
func same(a, b any) bool {
	ka, kb := Identity(a), Identity(b)
	if ka == nil || kb == nil {
		return false
	}
	return ka == kb
}

type refIdentity struct {
	typ reflect.Type
	ptr uintptr
}

// Identity returns a comparable value standing for v: the pointer for
// reference kinds, v itself for comparable values and nil otherwise.
func Identity(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return refIdentity{rv.Type(), rv.Pointer()}
	case reflect.Slice:
		if rv.Len() == 0 {
			return nil
		}
		return refIdentity{rv.Type(), rv.Pointer()}
	}
	if rv.Type().Comparable() {
		return v
	}
	return nil
}
