package trackby

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vcrobe/nojs-blocks/dom"
	"github.com/vcrobe/nojs-blocks/events"
	"github.com/vcrobe/nojs-blocks/runtime"
	"golang.org/x/net/html"
)

func startView(t *testing.T, name string) *runtime.View {
	t.Helper()
	reg := runtime.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("Expected sample templates to register, got %v", err)
	}
	v, err := reg.Create(name)
	if err != nil {
		t.Fatalf("Expected view %s, got %v", name, err)
	}
	v.Start(nil)
	return v
}

func findAll(nodes []*html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return out
}

func texts(nodes []*html.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = dom.TextContent(n)
	}
	return out
}

func click(v *runtime.View, button *html.Node) {
	v.Document().Dispatch(events.Event{Type: "click", Target: button})
}

// TestProductList_InitialRender verifies that dot-notation keys render one
// item per product in order.
func TestProductList_InitialRender(t *testing.T) {
	// Arrange & Act
	v := startView(t, "products")

	// Assert
	want := []string{"Product: Laptop (ID: 1)", "Product: Mouse (ID: 2)", "Product: Keyboard (ID: 3)"}
	if diff := cmp.Diff(want, texts(findAll(v.Nodes(), "li"))); diff != "" {
		t.Errorf("Items mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"3 products"}, texts(findAll(v.Nodes(), "p"))); diff != "" {
		t.Errorf("Summary mismatch (-want +got):\n%s", diff)
	}
}

// TestProductList_AddProductKeepsNodes verifies that appending through an
// event handler keeps the nodes of the existing products.
func TestProductList_AddProductKeepsNodes(t *testing.T) {
	// Arrange
	v := startView(t, "products")
	before := findAll(v.Nodes(), "li")

	// Act
	click(v, findAll(v.Nodes(), "button")[0])

	// Assert
	after := findAll(v.Nodes(), "li")
	if len(after) != 4 {
		t.Fatalf("Expected 4 items, got %d", len(after))
	}
	for i := range before {
		if after[i] != before[i] {
			t.Errorf("Expected item %d to keep its node", i)
		}
	}
	if got := dom.TextContent(after[3]); got != "Product: Monitor (ID: 4)" {
		t.Errorf("Expected 'Product: Monitor (ID: 4)', got '%s'", got)
	}
	if diff := cmp.Diff([]string{"4 products"}, texts(findAll(v.Nodes(), "p"))); diff != "" {
		t.Errorf("Summary mismatch (-want +got):\n%s", diff)
	}
}

func TestProductList_RemoveProductKeepsSurvivors(t *testing.T) {
	// Arrange
	v := startView(t, "products")
	before := findAll(v.Nodes(), "li")

	// Act
	if _, err := v.Call("RemoveProduct", 2); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Assert
	after := findAll(v.Nodes(), "li")
	if len(after) != 2 || after[0] != before[0] || after[1] != before[2] {
		t.Errorf("Expected Laptop and Keyboard nodes to survive, got %v", texts(after))
	}
}

func TestProductList_Clear(t *testing.T) {
	// Arrange
	v := startView(t, "products")

	// Act
	click(v, findAll(v.Nodes(), "button")[1])

	// Assert
	if n := len(findAll(v.Nodes(), "li")); n != 0 {
		t.Errorf("Expected no items, got %d", n)
	}
	if diff := cmp.Diff([]string{"No products"}, texts(findAll(v.Nodes(), "p"))); diff != "" {
		t.Errorf("Summary mismatch (-want +got):\n%s", diff)
	}
	if got := len(v.Model().(*ProductList).Products); got != 0 {
		t.Errorf("Expected an empty model, got %d products", got)
	}
}

// TestTagList_BareVariable verifies items keyed by the string itself.
func TestTagList_BareVariable(t *testing.T) {
	// Arrange
	v := startView(t, "tags")
	buttons := findAll(v.Nodes(), "button")

	// Act
	click(v, buttons[0])

	// Assert
	want := []string{"Tag: golang", "Tag: blocks", "Tag: markup", "Tag: views", "Tag: new"}
	if diff := cmp.Diff(want, texts(findAll(v.Nodes(), "li"))); diff != "" {
		t.Errorf("Tags mismatch (-want +got):\n%s", diff)
	}

	// Act
	click(v, buttons[1])

	// Assert
	if n := len(findAll(v.Nodes(), "li")); n != 0 {
		t.Errorf("Expected no tags after clearing, got %d", n)
	}
}

// TestMultiItemList_SiblingNodes verifies that every item contributes all of
// its sibling nodes, in order.
func TestMultiItemList_SiblingNodes(t *testing.T) {
	// Arrange
	v := startView(t, "items")

	// Act
	if _, err := v.Call("AddItem", "Delta"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Assert
	if got := dom.TextOf(v.Nodes()); got != "Alpha101Beta102Gamma103Delta104" {
		t.Errorf("Expected 'Alpha101Beta102Gamma103Delta104', got '%s'", got)
	}
	div := v.Nodes()[0]
	var tags []string
	for _, c := range dom.Children(div) {
		if c.Type == html.ElementNode {
			tags = append(tags, c.Data)
		}
	}
	want := []string{"h3", "p", "h3", "p", "h3", "p", "h3", "p"}
	if diff := cmp.Diff(want, tags); diff != "" {
		t.Errorf("Sibling order mismatch (-want +got):\n%s", diff)
	}
}
