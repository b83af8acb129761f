package observable

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestList_MutationsRaiseChanges(t *testing.T) {
	// Arrange
	l := NewList("a")
	var got []Change
	sub := l.OnChange(func(c Change) { got = append(got, c) })

	// Act
	l.Push("b")
	l.InsertAt(0, "z")
	l.SetAt(1, "A")
	l.RemoveAt(2)
	l.InsertRange(1, "x", "y")
	l.Pop()
	l.Reset("q")
	sub.Cancel()
	l.Push("ignored")

	// Assert
	want := []Change{
		{Type: Insert, Index: 1, Item: "b"},
		{Type: Insert, Index: 0, Item: "z"},
		{Type: Update, Index: 1, Item: "A"},
		{Type: Remove, Index: 2, Item: "b"},
		{Type: InsertRange, Index: 1, Items: []any{"x", "y"}},
		{Type: Remove, Index: 3, Item: "A"},
		{Type: Reset},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Changes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{"q", "ignored"}, l.Items()); diff != "" {
		t.Errorf("Items mismatch (-want +got):\n%s", diff)
	}
}

func TestList_OutOfRangePanics(t *testing.T) {
	tests := []struct {
		name string
		op   func(l *List)
	}{
		{"remove", func(l *List) { l.RemoveAt(-1) }},
		{"set", func(l *List) { l.SetAt(5, 0) }},
		{"insert", func(l *List) { l.InsertAt(3, 0) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("Expected a panic")
				}
			}()
			tt.op(NewList("only"))
		})
	}
}

func TestList_PopEmpty(t *testing.T) {
	l := NewList()
	if v, ok := l.Pop(); ok || v != nil {
		t.Errorf("Expected nothing popped, got %v, %v", v, ok)
	}
	if v := l.At(0); v != nil {
		t.Errorf("Expected nil outside the range, got %v", v)
	}
}

func TestList_ReentrantHandlers(t *testing.T) {
	l := NewList()
	var counts []int
	l.OnChange(func(Change) {
		if l.Count() < 3 {
			l.Push(l.Count())
		}
	})
	l.OnChange(func(Change) { counts = append(counts, l.Count()) })

	l.Push(0)

	if diff := cmp.Diff([]int{3, 3, 3}, counts); diff != "" {
		t.Errorf("Handler observations mismatch (-want +got):\n%s", diff)
	}
}

func TestWrap(t *testing.T) {
	own := NewList(1)
	tests := []struct {
		name     string
		in       any
		want     []any
		listLike bool
	}{
		{"nil", nil, nil, false},
		{"list", own, []any{1}, true},
		{"nil list", (*List)(nil), nil, false},
		{"any slice", []any{1, "a"}, []any{1, "a"}, false},
		{"typed slice", []string{"x", "y"}, []any{"x", "y"}, false},
		{"array", [2]int{4, 5}, []any{4, 5}, false},
		{"scalar", 7, []any{7}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, listLike := Wrap(tt.in)
			if listLike != tt.listLike {
				t.Errorf("Expected listLike=%v, got %v", tt.listLike, listLike)
			}
			if diff := cmp.Diff(tt.want, l.Items(), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Items mismatch (-want +got):\n%s", diff)
			}
		})
	}
	if l, _ := Wrap(own); l != own {
		t.Errorf("Expected a *List to be returned as is")
	}
}

func TestIdentity(t *testing.T) {
	m := map[string]any{"k": 1}
	type pair struct{ a, b int }

	if Identity(m) != Identity(m) {
		t.Errorf("Expected the same map to have one identity")
	}
	if Identity(m) == Identity(map[string]any{"k": 1}) {
		t.Errorf("Expected distinct maps to differ")
	}
	if Identity(pair{1, 2}) != Identity(pair{1, 2}) {
		t.Errorf("Expected equal comparable values to share identity")
	}
	if Identity(nil) != nil || Identity([]int{}) != nil {
		t.Errorf("Expected nil identity for nil and empty slices")
	}
	if Identity(struct{ s []int }{}) != nil {
		t.Errorf("Expected nil identity for a non-comparable value")
	}
}

func TestBus(t *testing.T) {
	// Arrange
	b := NewBus()
	target, other := new(int), new(int)
	var got []any
	sub := b.On(target, "ping", func(args any) { got = append(got, args) })
	b.On(target, "pong", func(args any) { got = append(got, "pong") })
	b.On(other, "ping", func(args any) { got = append(got, "other") })

	// Act
	n := b.Raise(target, "ping", 1)
	sub.Cancel()
	sub.Cancel()
	b.Raise(target, "ping", 2)
	b.Off(nil, "ping")
	b.Raise(other, "ping", 3)
	b.Raise(target, "pong", nil)

	// Assert
	if n != 1 {
		t.Errorf("Expected 1 handler, got %d", n)
	}
	if diff := cmp.Diff([]any{1, "pong"}, got); diff != "" {
		t.Errorf("Calls mismatch (-want +got):\n%s", diff)
	}
	if c := b.Count(target, "pong"); c != 1 {
		t.Errorf("Expected 1 pong handler, got %d", c)
	}
	b.Off(nil, "")
	if c := b.Count(target, "pong"); c != 0 {
		t.Errorf("Expected bus cleared, got %d", c)
	}
}

func TestSignal(t *testing.T) {
	s := NewSignal(1)
	var seen []int
	unsubscribe := s.Subscribe(func(v int) { seen = append(seen, v) })

	s.Set(2)
	unsubscribe()
	s.Set(3)

	if s.Get() != 3 {
		t.Errorf("Expected 3, got %d", s.Get())
	}
	if diff := cmp.Diff([]int{2}, seen); diff != "" {
		t.Errorf("Notifications mismatch (-want +got):\n%s", diff)
	}
}
