package block

import (
	"testing"

	"github.com/vcrobe/nojs-blocks/blockspec"
	"github.com/vcrobe/nojs-blocks/dom"
	"golang.org/x/net/html"
)

// TestConditional_Toggle verifies that content appears and disappears next to
// the placeholder while the placeholder itself stays put.
func TestConditional_Toggle(t *testing.T) {
	// Arrange: source starts false
	view := newTestView(map[string]any{"show": false})
	root := blockspec.Div(nil, blockspec.Conditional("show", blockspec.NewText("hello")))
	b, div := mount(t, view, root)

	// Assert: only the placeholder is rendered
	kids := dom.Children(div)
	if len(kids) != 1 || kids[0].Type != html.CommentNode {
		t.Fatalf("Expected a single placeholder comment, got %d children", len(kids))
	}
	placeholder := kids[0]

	// Act: show
	view.model["show"] = true
	b.Update()

	// Assert
	if got := dom.TextContent(div); got != "hello" {
		t.Errorf("Expected text 'hello', got '%s'", got)
	}
	shown := dom.Children(div)
	if len(shown) != 2 || shown[0] != placeholder {
		t.Fatalf("Expected placeholder followed by content, got %d children", len(shown))
	}
	content := shown[1]

	// Act: hide
	view.model["show"] = false
	b.Update()

	// Assert
	if got := dom.TextContent(div); got != "" {
		t.Errorf("Expected no text after hiding, got '%s'", got)
	}
	if kids := dom.Children(div); len(kids) != 1 || kids[0] != placeholder {
		t.Errorf("Expected only the placeholder left, got %d children", len(kids))
	}

	// Act: show again
	view.model["show"] = true
	b.Update()

	// Assert: the same node is reattached
	if again := dom.Children(div); len(again) != 2 || again[1] != content {
		t.Errorf("Expected the original content node reattached")
	}
}

func TestConditional_DeferredBind(t *testing.T) {
	// Arrange: bind runs while the content is not rendered yet
	count := 0
	view := newTestView(map[string]any{
		"show": false,
		"inc":  func() { count++ },
	})
	root := blockspec.Div(nil, blockspec.Conditional("show",
		blockspec.NewElement("button", nil, &blockspec.Binding{
			Events: map[string][]string{"click": {"inc"}},
		})))
	b, div := mount(t, view, root)
	c := b.Children()[0].(*Conditional)
	if c.Rendered() {
		t.Fatalf("Expected conditional to stay unrendered")
	}

	// Act
	view.model["show"] = true
	b.Update()
	button := dom.Children(div)[1]
	view.doc.Dispatch(eventOn(button, "click"))
	b.Update()
	view.doc.Dispatch(eventOn(button, "click"))

	// Assert: bound exactly once
	if count != 2 {
		t.Errorf("Expected 2 clicks handled, got %d", count)
	}
	if n := view.doc.Listeners(button, "click"); n != 1 {
		t.Errorf("Expected 1 click listener, got %d", n)
	}
}

func TestConditional_DetachedContentNotUpdated(t *testing.T) {
	view := newTestView(map[string]any{"show": true, "name": "a"})
	b, div := mount(t, view, blockspec.Div(nil, blockspec.Conditional("show", blockspec.Span("name"))))
	span := dom.Children(div)[1]

	view.model["show"] = false
	view.model["name"] = "b"
	b.Update()
	if got := dom.TextContent(span); got != "a" {
		t.Errorf("Expected detached span to keep 'a', got '%s'", got)
	}

	view.model["show"] = true
	b.Update()
	if got := dom.TextContent(div); got != "b" {
		t.Errorf("Expected 'b' once attached again, got '%s'", got)
	}
}

func TestConditional_ElseBranch(t *testing.T) {
	view := newTestView(map[string]any{"ok": true})
	root := blockspec.Div(nil,
		blockspec.Conditional("ok", blockspec.NewText("yes")),
		blockspec.Conditional("!ok", blockspec.NewText("no")),
	)
	b, div := mount(t, view, root)

	if got := dom.TextContent(div); got != "yes" {
		t.Errorf("Expected 'yes', got '%s'", got)
	}
	view.model["ok"] = false
	b.Update()
	if got := dom.TextContent(div); got != "no" {
		t.Errorf("Expected 'no', got '%s'", got)
	}
}

func TestConditional_Nested(t *testing.T) {
	// Arrange
	view := newTestView(map[string]any{"a": true, "b": true})
	root := blockspec.Div(nil,
		blockspec.Conditional("a",
			blockspec.NewText("A"),
			blockspec.Conditional("b", blockspec.NewText("B"))),
		blockspec.NewText("."),
	)
	b, div := mount(t, view, root)

	steps := []struct {
		a, b bool
		want string
	}{
		{true, true, "AB."},
		{false, true, "."},
		{true, false, "A."},
		{true, true, "AB."},
		{false, false, "."},
		{true, true, "AB."},
	}
	for i, s := range steps {
		// Act
		view.model["a"], view.model["b"] = s.a, s.b
		b.Update()

		// Assert
		if got := dom.TextContent(div); got != s.want {
			t.Errorf("Step %d: expected '%s', got '%s'", i, s.want, got)
		}
	}
}

func TestConditional_EmptyCollectionIsFalsy(t *testing.T) {
	view := newTestView(map[string]any{"items": []any{}})
	b, div := mount(t, view, blockspec.Div(nil, blockspec.Conditional("items", blockspec.NewText("has items"))))

	if got := dom.TextContent(div); got != "" {
		t.Errorf("Expected nothing for an empty collection, got '%s'", got)
	}
	view.model["items"] = []any{1}
	b.Update()
	if got := dom.TextContent(div); got != "has items" {
		t.Errorf("Expected 'has items', got '%s'", got)
	}
}

func TestConditional_FalsyValues(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"int32 zero", int32(0), ""},
		{"uint zero", uint(0), ""},
		{"float32 zero", float32(0), ""},
		{"int8 zero", int8(0), ""},
		{"empty string slice", []string{}, ""},
		{"empty typed map", map[string]int{}, ""},
		{"nil pointer", (*int)(nil), ""},
		{"uint8 one", uint8(1), "shown"},
		{"float32 fraction", float32(0.5), "shown"},
		{"string slice", []string{"a"}, "shown"},
		{"typed map", map[string]int{"a": 1}, "shown"},
		{"struct", struct{}{}, "shown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			view := newTestView(map[string]any{"n": tt.value})

			// Act
			_, div := mount(t, view, blockspec.Div(nil, blockspec.Conditional("n", blockspec.NewText("shown"))))

			// Assert
			if got := dom.TextContent(div); got != tt.want {
				t.Errorf("Expected '%s', got '%s'", tt.want, got)
			}
		})
	}
}
