// Package markup parses HTML-like template source into block specs.
//
// Templates are plain markup with a few additions:
//
//	{path}                               text bound to path
//	<a href="{path}">                    attribute bound to path
//	<p style.color="{c}" class.on="{b}"> style property and class toggle bindings
//	<div html="{path}">                  inner HTML bound to path
//	<button @click="Save(item)">         event handler; several are separated by ;
//	{@if cond} ... {@else} ... {@endif}  conditional blocks
//	{@for _, it := range items trackBy it.ID} ... {@endfor}
//	<block> ... </block>                 structural block
//	<view name="card"/>                  reference to a registered view
package markup

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"regexp"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/vcrobe/nojs-blocks/blockspec"
)

// ErrSyntax is wrapped by every error Parse returns for malformed source.
var ErrSyntax = errors.New("template syntax error")

// Error describes a malformed template.
type Error struct {
	Name string
	Line int
	Msg  string
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Name, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Name, e.Msg)
}

func (e *Error) Unwrap() error { return ErrSyntax }

func syntaxError(name string, line int, format string, args ...any) error {
	return &Error{Name: name, Line: line, Msg: fmt.Sprintf(format, args...)}
}

// Options tunes Parse.
type Options struct {
	// Name identifies the template in errors.
	Name string
	// KeepWhitespace keeps text nodes that only contain formatting whitespace.
	KeepWhitespace bool
}

const rootTag = "go-template"

var (
	reBinding  = regexp.MustCompile(`\{\s*([^{}\s][^{}]*?)\s*\}`)
	reXMLLine  = regexp.MustCompile(`line (\d+)`)
	reBareName = regexp.MustCompile(`^[a-zA-Z_$][a-zA-Z0-9_.$]*$`)
)

// Parse compiles template source into a spec. A template with a single
// top-level node yields that node's spec; anything else is grouped in a
// structural block.
func Parse(src string, opts Options) (*blockspec.Spec, error) {
	if opts.Name == "" {
		opts.Name = "template"
	}
	pre, err := preprocess(src, opts.Name)
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = true
	doc.ReadSettings.AutoClose = xml.HTMLAutoClose
	doc.ReadSettings.Entity = xml.HTMLEntity
	if err := doc.ReadFromString("<" + rootTag + ">" + pre + "</" + rootTag + ">"); err != nil {
		return nil, xmlError(opts.Name, err)
	}
	root := doc.SelectElement(rootTag)
	if root == nil {
		return nil, syntaxError(opts.Name, 0, "template is empty")
	}

	p := &parser{opts: opts}
	children, err := p.children(root)
	if err != nil {
		return nil, err
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return blockspec.Structural(children...), nil
}

// ParseReader reads the whole of r and parses it.
func ParseReader(r io.Reader, opts Options) (*blockspec.Spec, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("markup: read %s: %w", opts.Name, err)
	}
	return Parse(string(b), opts)
}

// ParseFS parses the file name from fsys, naming errors after it.
func ParseFS(fsys fs.FS, name string) (*blockspec.Spec, error) {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("markup: %w", err)
	}
	return Parse(string(b), Options{Name: name})
}

func xmlError(name string, err error) error {
	var se *xml.SyntaxError
	if errors.As(err, &se) {
		return syntaxError(name, se.Line, "%s", se.Msg)
	}
	if m := reXMLLine.FindStringSubmatch(err.Error()); m != nil {
		line, _ := strconv.Atoi(m[1])
		return syntaxError(name, line, "%v", err)
	}
	return syntaxError(name, 0, "%v", err)
}

type parser struct {
	opts Options
}

func (p *parser) children(el *etree.Element) ([]*blockspec.Spec, error) {
	var out []*blockspec.Spec
	for _, tok := range el.Child {
		switch n := tok.(type) {
		case *etree.Element:
			s, err := p.element(n)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		case *etree.CharData:
			if !p.opts.KeepWhitespace && n.IsWhitespace() && strings.Contains(n.Data, "\n") {
				continue
			}
			texts, err := p.text(n.Data)
			if err != nil {
				return nil, err
			}
			out = append(out, texts...)
		case *etree.Comment:
			out = append(out, blockspec.NewComment(n.Data))
		}
	}
	return out, nil
}

// text splits "Hello {name}!" into static and bound text specs.
func (p *parser) text(data string) ([]*blockspec.Spec, error) {
	var out []*blockspec.Spec
	last := 0
	for _, loc := range reBinding.FindAllStringSubmatchIndex(data, -1) {
		if loc[0] > last {
			out = append(out, blockspec.NewText(data[last:loc[0]]))
		}
		out = append(out, blockspec.BoundText(data[loc[2]:loc[3]]))
		last = loc[1]
	}
	if last < len(data) {
		rest := data[last:]
		if strings.ContainsAny(rest, "{}") {
			return nil, syntaxError(p.opts.Name, 0, "unbalanced braces in text %q", strings.TrimSpace(rest))
		}
		out = append(out, blockspec.NewText(rest))
	}
	return out, nil
}

func (p *parser) element(el *etree.Element) (*blockspec.Spec, error) {
	switch el.Tag {
	case "go-if":
		children, err := p.children(el)
		if err != nil {
			return nil, err
		}
		return blockspec.Conditional(el.SelectAttrValue("data-cond", ""), children...), nil

	case "go-for":
		children, err := p.children(el)
		if err != nil {
			return nil, err
		}
		s := blockspec.Repeater(el.SelectAttrValue("data-range", ""), el.SelectAttrValue("data-value", ""), children...)
		if trackBy := el.SelectAttrValue("data-trackby", ""); trackBy != "" {
			s = s.Keyed(trackBy)
		}
		return s, nil

	case "block":
		children, err := p.children(el)
		if err != nil {
			return nil, err
		}
		return blockspec.Structural(children...), nil

	case "view":
		name := el.SelectAttrValue("name", "")
		if name == "" {
			return nil, syntaxError(p.opts.Name, 0, "<view> without a name")
		}
		return blockspec.ViewRef(name), nil
	}

	attr, binding, err := p.attributes(el)
	if err != nil {
		return nil, err
	}
	children, err := p.children(el)
	if err != nil {
		return nil, err
	}
	return blockspec.NewElement(el.FullTag(), attr, binding, children...), nil
}

func (p *parser) attributes(el *etree.Element) (map[string]string, *blockspec.Binding, error) {
	var (
		attr map[string]string
		b    blockspec.Binding
	)
	for _, a := range el.Attr {
		if a.Space == "on" {
			if b.Events == nil {
				b.Events = make(map[string][]string)
			}
			for _, h := range strings.Split(a.Value, ";") {
				if h = strings.TrimSpace(h); h != "" {
					b.Events[a.Key] = append(b.Events[a.Key], h)
				}
			}
			continue
		}

		key := a.FullKey()
		path, bound, err := p.attrPath(el, key, a.Value)
		if err != nil {
			return nil, nil, err
		}
		if !bound {
			if attr == nil {
				attr = make(map[string]string)
			}
			attr[key] = a.Value
			continue
		}

		switch {
		case key == "html":
			b.HTML = path
		case strings.HasPrefix(key, "style."):
			if b.CSS == nil {
				b.CSS = make(map[string]string)
			}
			b.CSS[strings.TrimPrefix(key, "style.")] = path
		case strings.HasPrefix(key, "class."):
			if b.ClassName == nil {
				b.ClassName = make(map[string]string)
			}
			b.ClassName[strings.TrimPrefix(key, "class.")] = path
		default:
			if b.Attr == nil {
				b.Attr = make(map[string]string)
			}
			b.Attr[key] = path
		}
	}
	if b.IsZero() {
		return attr, nil, nil
	}
	return attr, &b, nil
}

// attrPath reports the bound path of an attribute whose whole value is a
// single {path}. Interpolation mixed with static text is rejected.
func (p *parser) attrPath(el *etree.Element, key, value string) (string, bool, error) {
	v := strings.TrimSpace(value)
	if !strings.ContainsAny(v, "{}") {
		return "", false, nil
	}
	if !strings.HasPrefix(v, "{") || !strings.HasSuffix(v, "}") || strings.Count(v, "{") != 1 || strings.Count(v, "}") != 1 {
		return "", false, syntaxError(p.opts.Name, 0, "<%s %s=%q>: attribute values are either static or a single {path}", el.Tag, key, value)
	}
	path := strings.TrimSpace(v[1 : len(v)-1])
	if !reBareName.MatchString(path) {
		return "", false, syntaxError(p.opts.Name, 0, "<%s %s=%q>: %q is not a property path", el.Tag, key, value, path)
	}
	return path, true, nil
}
