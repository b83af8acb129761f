package dom

import (
	"fmt"
	"strings"

	"github.com/vcrobe/nojs-blocks/internal/lookup"
	"golang.org/x/net/html"
)

// Attr returns the value of attribute key.
func Attr(node *html.Node, key string) (string, bool) {
	for _, a := range node.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets attribute key, keeping its position when it already exists.
func SetAttr(node *html.Node, key, val string) {
	for i, a := range node.Attr {
		if a.Namespace == "" && a.Key == key {
			node.Attr[i].Val = val
			return
		}
	}
	node.Attr = append(node.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes attribute key.
func RemoveAttr(node *html.Node, key string) {
	for i, a := range node.Attr {
		if a.Namespace == "" && a.Key == key {
			node.Attr = append(node.Attr[:i], node.Attr[i+1:]...)
			return
		}
	}
}

// SetAttrValue applies a resolved binding value: nil and false remove the
// attribute, true sets it empty like a boolean HTML attribute, anything else
// is formatted.
func SetAttrValue(node *html.Node, key string, value any) {
	switch v := value.(type) {
	case nil:
		RemoveAttr(node, key)
	case bool:
		if v {
			SetAttr(node, key, "")
		} else {
			RemoveAttr(node, key)
		}
	default:
		SetAttr(node, key, Format(value))
	}
}

// Format turns a resolved value into text; nil is empty.
func Format(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(value)
}

// HasClass reports whether node carries class name.
func HasClass(node *html.Node, name string) bool {
	cls, _ := Attr(node, "class")
	for _, c := range strings.Fields(cls) {
		if c == name {
			return true
		}
	}
	return false
}

// ToggleClass adds or removes class name.
func ToggleClass(node *html.Node, name string, on bool) {
	cls, _ := Attr(node, "class")
	var kept []string
	found := false
	for _, c := range strings.Fields(cls) {
		if c == name {
			found = true
			if !on {
				continue
			}
		}
		kept = append(kept, c)
	}
	if on && !found {
		kept = append(kept, name)
	}
	if len(kept) == 0 {
		RemoveAttr(node, "class")
		return
	}
	SetAttr(node, "class", strings.Join(kept, " "))
}

// Style returns the value of style property prop.
func Style(node *html.Node, prop string) string {
	for _, d := range parseStyle(node) {
		if d[0] == prop {
			return d[1]
		}
	}
	return ""
}

// SetStyle sets style property prop; an empty value removes it.
func SetStyle(node *html.Node, prop, value string) {
	decls := parseStyle(node)
	out := decls[:0]
	found := false
	for _, d := range decls {
		if d[0] == prop {
			found = true
			if value == "" {
				continue
			}
			d[1] = value
		}
		out = append(out, d)
	}
	if !found && value != "" {
		out = append(out, [2]string{prop, value})
	}
	if len(out) == 0 {
		RemoveAttr(node, "style")
		return
	}
	parts := make([]string, len(out))
	for i, d := range out {
		parts[i] = d[0] + ": " + d[1]
	}
	SetAttr(node, "style", strings.Join(parts, "; "))
}

func parseStyle(node *html.Node) [][2]string {
	style, _ := Attr(node, "style")
	var decls [][2]string
	for _, part := range strings.Split(style, ";") {
		k, v, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if k != "" {
			decls = append(decls, [2]string{k, v})
		}
	}
	return decls
}

// IsLiveProperty reports whether an attribute binding writes a live property
// instead of the markup attribute.
func IsLiveProperty(name string) bool {
	return name == "value" || name == "checked"
}

// SetProperty writes a live property. The markup reflects it so rendered
// output shows the current state.
func (d *Document) SetProperty(node *html.Node, name string, value any) {
	p, ok := d.props[node]
	if !ok {
		p = make(map[string]any)
		d.props[node] = p
	}
	p[name] = value
	if name == "checked" {
		SetAttrValue(node, name, lookup.Truthy(value))
		return
	}
	SetAttrValue(node, name, value)
}

// Property reads a live property, falling back to the attribute.
func (d *Document) Property(node *html.Node, name string) any {
	if p, ok := d.props[node]; ok {
		if v, ok := p[name]; ok {
			return v
		}
	}
	v, ok := Attr(node, name)
	if name == "checked" {
		return ok
	}
	if !ok {
		return nil
	}
	return v
}

// Stateful returns the number of nodes holding live property state.
func (d *Document) Stateful() int {
	return len(d.props)
}

// Forget drops listener and property state for node.
func (d *Document) Forget(node *html.Node) {
	delete(d.props, node)
	d.bus.Off(node, "")
}
