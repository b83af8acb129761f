// Package dom is the live node tree blocks render into. Nodes are plain
// golang.org/x/net/html nodes; a Document adds event listeners and live
// properties that have no place in the markup.
package dom

import (
	"fmt"
	"io"
	"strings"

	"github.com/vcrobe/nojs-blocks/events"
	"github.com/vcrobe/nojs-blocks/observable"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document owns listener and property state for the nodes of one view tree.
type Document struct {
	bus   *observable.Bus
	props map[*html.Node]map[string]any
}

// NewDocument creates an empty Document.
func NewDocument() *Document {
	return &Document{
		bus:   observable.NewBus(),
		props: make(map[*html.Node]map[string]any),
	}
}

// CreateElement creates a detached element node.
func CreateElement(tag string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

// CreateText creates a detached text node.
func CreateText(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

// CreateComment creates a detached comment node.
func CreateComment(text string) *html.Node {
	return &html.Node{Type: html.CommentNode, Data: text}
}

// AppendChild detaches node if needed and appends it to parent.
func AppendChild(parent, node *html.Node) {
	Remove(node)
	parent.AppendChild(node)
}

// InsertAfter places node right after anchor. It panics when anchor is not
// attached to a parent.
func InsertAfter(node, anchor *html.Node) {
	parent := anchor.Parent
	if parent == nil {
		panic(fmt.Sprintf("dom: insert after detached anchor %s", Describe(anchor)))
	}
	Remove(node)
	parent.InsertBefore(node, anchor.NextSibling)
}

// Remove detaches node from its parent. Detached nodes are left alone.
func Remove(node *html.Node) {
	if node.Parent != nil {
		node.Parent.RemoveChild(node)
	}
}

// SetText replaces the text of a text or comment node, or the children of an
// element with a single text node.
func SetText(node *html.Node, text string) {
	if node.Type != html.ElementNode {
		node.Data = text
		return
	}
	clearChildren(node)
	if text != "" {
		node.AppendChild(CreateText(text))
	}
}

// TextContent concatenates the text nodes below node.
func TextContent(node *html.Node) string {
	var sb strings.Builder
	collectText(&sb, node)
	return sb.String()
}

// TextOf concatenates the text content of several nodes.
func TextOf(nodes []*html.Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		collectText(&sb, n)
	}
	return sb.String()
}

func collectText(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
	case html.ElementNode, html.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collectText(sb, c)
		}
	}
}

// SetInnerHTML parses markup in the context of node and replaces its children.
func SetInnerHTML(node *html.Node, markup string) error {
	if node.Type != html.ElementNode {
		return fmt.Errorf("dom: inner html on %s", Describe(node))
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), node)
	if err != nil {
		return fmt.Errorf("dom: parse inner html: %w", err)
	}
	clearChildren(node)
	for _, n := range nodes {
		node.AppendChild(n)
	}
	return nil
}

func clearChildren(node *html.Node) {
	for c := node.FirstChild; c != nil; {
		next := c.NextSibling
		node.RemoveChild(c)
		c = next
	}
}

// Render writes node as HTML.
func Render(w io.Writer, node *html.Node) error {
	return html.Render(w, node)
}

// OuterHTML renders nodes back to back.
func OuterHTML(nodes ...*html.Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		if err := html.Render(&sb, n); err != nil {
			return sb.String()
		}
	}
	return sb.String()
}

// InnerHTML renders the children of node.
func InnerHTML(node *html.Node) string {
	var sb strings.Builder
	for c := node.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&sb, c); err != nil {
			break
		}
	}
	return sb.String()
}

// Children lists the direct children of node.
func Children(node *html.Node) []*html.Node {
	var out []*html.Node
	for c := node.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// Describe names a node for diagnostics.
func Describe(n *html.Node) string {
	if n == nil {
		return "<nil>"
	}
	switch n.Type {
	case html.ElementNode:
		return "<" + n.Data + ">"
	case html.TextNode:
		return fmt.Sprintf("text %q", n.Data)
	case html.CommentNode:
		return fmt.Sprintf("comment %q", n.Data)
	}
	return fmt.Sprintf("node(%d)", n.Type)
}

// AddEventListener registers fn for event on node.
func (d *Document) AddEventListener(node *html.Node, event string, fn events.Handler) observable.Subscription {
	return d.bus.On(node, event, func(args any) {
		fn(args.(events.Event))
	})
}

// RemoveEventListeners drops every listener of node; an empty event drops all events.
func (d *Document) RemoveEventListeners(node *html.Node, event string) {
	d.bus.Off(node, event)
}

// Listeners reports how many listeners node has for event.
func (d *Document) Listeners(node *html.Node, event string) int {
	return d.bus.Count(node, event)
}

// Dispatch delivers e to the listeners of its target and reports how many ran.
func (d *Document) Dispatch(e events.Event) int {
	return d.bus.Raise(e.Target, e.Type, e)
}
