package block

import (
	"strconv"
	"strings"

	"github.com/vcrobe/nojs-blocks/console"
	"github.com/vcrobe/nojs-blocks/events"
	"github.com/vcrobe/nojs-blocks/internal/lookup"
)

// Path prefixes selecting an alternate resolution root.
const (
	prefixView   = "$view."
	prefixOwner  = "$owner."
	prefixRoot   = "$root."
	prefixParent = "$parent."
	eventArg     = "$event"
)

// GetValue resolves path through the scope chain: this block's scope, then
// the parent block, then the owning view.
func (b *Base) GetValue(path string) (any, bool) {
	path = strings.TrimSpace(path)
	if rest, ok := strings.CutPrefix(path, prefixView); ok {
		return b.tree.view.GetValue(rest)
	}
	if rest, ok := strings.CutPrefix(path, prefixOwner); ok {
		return ownerOf(b.tree.view).GetValue(rest)
	}
	if rest, ok := strings.CutPrefix(path, prefixRoot); ok {
		return rootOf(b.tree.view).GetValue(rest)
	}
	if rest, ok := strings.CutPrefix(path, prefixParent); ok {
		s := b.scopeOwner()
		if s == nil {
			return b.tree.view.GetValue(rest)
		}
		if p := s.parentBase(); p != nil {
			return p.GetValue(rest)
		}
		return b.tree.view.GetValue(rest)
	}

	segs := lookup.Split(path)
	if len(segs) > 0 && b.scope != nil {
		if head, ok := b.scope[segs[0]]; ok {
			if v, ok := lookup.Get(head, segs[1:]); ok {
				return v, true
			}
		}
	}
	if p := b.parentBase(); p != nil {
		return p.GetValue(path)
	}
	return b.tree.view.GetValue(path)
}

// SetValue writes path through the same chain as GetValue. A bare iterator
// name rebinds the scope entry; longer paths write into the scoped value.
func (b *Base) SetValue(path string, value any) bool {
	path = strings.TrimSpace(path)
	if rest, ok := strings.CutPrefix(path, prefixView); ok {
		return b.tree.view.SetValue(rest, value)
	}
	if rest, ok := strings.CutPrefix(path, prefixOwner); ok {
		return ownerOf(b.tree.view).SetValue(rest, value)
	}
	if rest, ok := strings.CutPrefix(path, prefixRoot); ok {
		return rootOf(b.tree.view).SetValue(rest, value)
	}
	if rest, ok := strings.CutPrefix(path, prefixParent); ok {
		if s := b.scopeOwner(); s != nil {
			if p := s.parentBase(); p != nil {
				return p.SetValue(rest, value)
			}
		}
		return b.tree.view.SetValue(rest, value)
	}

	segs := lookup.Split(path)
	if len(segs) > 0 && b.scope != nil {
		if head, ok := b.scope[segs[0]]; ok {
			if len(segs) == 1 {
				b.scope[segs[0]] = value
				return true
			}
			return lookup.Set(head, segs[1:], value)
		}
	}
	if p := b.parentBase(); p != nil {
		return p.SetValue(path, value)
	}
	return b.tree.view.SetValue(path, value)
}

// scopeOwner returns the nearest block, starting at b, that has a scope.
func (b *Base) scopeOwner() *Base {
	for blk := b; blk != nil; blk = blk.parentBase() {
		if blk.scope != nil {
			return blk
		}
	}
	return nil
}

func ownerOf(v View) View {
	if o, ok := v.(Owned); ok {
		if owner := o.Owner(); owner != nil {
			return owner
		}
	}
	return v
}

func rootOf(v View) View {
	for {
		o, ok := v.(Owned)
		if !ok {
			return v
		}
		owner := o.Owner()
		if owner == nil {
			return v
		}
		v = owner
	}
}

// evaluate resolves an expression: a path, a negated expression "!expr", or
// a call "name(arg, ...)". Missing paths evaluate to nil.
func (b *Base) evaluate(expr string) any {
	return b.eval(expr, nil)
}

func (b *Base) eval(expr string, e *events.Event) any {
	expr = strings.TrimSpace(expr)
	if rest, ok := strings.CutPrefix(expr, "!"); ok {
		return !lookup.Truthy(b.eval(rest, e))
	}
	if name, args, ok := parseCall(expr); ok {
		fn, found := b.GetValue(name)
		if !found {
			console.Warn("block: function", name, "not found")
			return nil
		}
		out, err := lookup.Call(fn, b.evalArgs(args, e)...)
		if err != nil {
			console.Warn("block:", expr+":", err)
		}
		return out
	}
	if expr == eventArg && e != nil {
		return *e
	}
	v, _ := b.GetValue(expr)
	return v
}

func (b *Base) evalArgs(args []string, e *events.Event) []any {
	out := make([]any, len(args))
	for i, a := range args {
		if v, ok := literal(a); ok {
			out[i] = v
			continue
		}
		out[i] = b.eval(a, e)
	}
	return out
}

// invoke runs an event handler expression. A bare path naming a function is
// called with the event when it accepts one.
func (b *Base) invoke(expr string, e events.Event) {
	expr = strings.TrimSpace(expr)
	if _, _, ok := parseCall(expr); ok {
		b.eval(expr, &e)
		return
	}
	fn, ok := b.GetValue(expr)
	if !ok {
		console.Warn("block: handler", expr, "not found")
		return
	}
	if h, ok := events.Adapt(fn); ok {
		h(e)
		return
	}
	if _, err := lookup.Call(fn, e); err != nil {
		console.Warn("block: handler", expr+":", err)
	}
}

// parseCall splits "name(a, b)" into its name and raw arguments.
func parseCall(expr string) (name string, args []string, ok bool) {
	open := strings.IndexByte(expr, '(')
	if open <= 0 || !strings.HasSuffix(expr, ")") {
		return "", nil, false
	}
	name = strings.TrimSpace(expr[:open])
	if strings.ContainsAny(name, " '\"") {
		return "", nil, false
	}
	return name, splitArgs(expr[open+1 : len(expr)-1]), true
}

// splitArgs splits on commas outside quotes and parentheses.
func splitArgs(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var (
		args  []string
		depth int
		quote rune
		start int
	)
	for i, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == '(':
			depth++
		case r == ')':
			depth--
		case r == ',' && depth == 0:
			args = append(args, strings.TrimSpace(s[start:i]))
			start = i + 1
		}
	}
	return append(args, strings.TrimSpace(s[start:]))
}

// literal parses quoted strings, booleans, nil and numbers.
func literal(s string) (any, bool) {
	if n := len(s); n >= 2 && (s[0] == '\'' || s[0] == '"') && s[n-1] == s[0] {
		return s[1 : n-1], true
	}
	switch s {
	case "true":
		return true, true
	case "false":
		return false, true
	case "nil", "null":
		return nil, true
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, true
	}
	return nil, false
}

