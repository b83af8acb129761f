package markup

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// Any control-flow directive: {@if cond}, {@else}, {@endif}, {@for ...}, {@endfor}.
	reDirective = regexp.MustCompile(`\{@(if\s+[^}]+|else|endif|for\s+[^}]+|endfor)\}`)

	// {@for _, item := range Items trackBy item.ID}; the index and trackBy are optional.
	reFor = regexp.MustCompile(`^for\s+(?:([a-zA-Z_][a-zA-Z0-9_]*)\s*,\s*)?([a-zA-Z_][a-zA-Z0-9_]*)\s*:=\s*range\s+([a-zA-Z_$][a-zA-Z0-9_.$]*)(?:\s+trackBy\s+([a-zA-Z0-9_.$]+))?\s*$`)

	// A start tag, with quoted attribute values allowed to contain '>'.
	reStartTag = regexp.MustCompile(`<[a-zA-Z][a-zA-Z0-9:._-]*(?:\s+[^\s"'>/=]+(?:\s*=\s*(?:"[^"]*"|'[^']*'|[^\s"'>]+))?)*\s*/?>`)

	// Inside a start tag: quoted values are skipped, @event= is renamed.
	reEventAttr = regexp.MustCompile(`"[^"]*"|'[^']*'|\s@[a-zA-Z][a-zA-Z0-9_-]*\s*=`)

	attrEscaper = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `"`, "&quot;")
)

type openDirective struct {
	kind   string // if, for
	cond   string
	line   int
	inElse bool
}

// preprocess rewrites directives into placeholder elements the XML reader
// understands: {@if} becomes <go-if>, {@else} closes it and opens a <go-if>
// on the negated condition, and {@for} becomes <go-for>. Every directive
// must be balanced.
func preprocess(src, name string) (string, error) {
	var (
		sb    strings.Builder
		stack []openDirective
		last  int
	)
	for _, loc := range reDirective.FindAllStringSubmatchIndex(src, -1) {
		sb.WriteString(src[last:loc[0]])
		last = loc[1]
		body := strings.TrimSpace(src[loc[2]:loc[3]])
		line := lineAt(src, loc[0])

		switch {
		case strings.HasPrefix(body, "if"):
			cond := strings.TrimSpace(body[2:])
			stack = append(stack, openDirective{kind: "if", cond: cond, line: line})
			fmt.Fprintf(&sb, `<go-if data-cond="%s">`, attrEscaper.Replace(cond))

		case body == "else":
			if len(stack) == 0 || stack[len(stack)-1].kind != "if" {
				return "", syntaxError(name, line, "{@else} without {@if}")
			}
			top := &stack[len(stack)-1]
			if top.inElse {
				return "", syntaxError(name, line, "second {@else} for the {@if} at line %d", top.line)
			}
			top.inElse = true
			fmt.Fprintf(&sb, `</go-if><go-if data-cond="%s">`, attrEscaper.Replace("!"+top.cond))

		case body == "endif":
			if len(stack) == 0 || stack[len(stack)-1].kind != "if" {
				return "", syntaxError(name, line, "{@endif} without {@if}")
			}
			stack = stack[:len(stack)-1]
			sb.WriteString(`</go-if>`)

		case strings.HasPrefix(body, "for"):
			m := reFor.FindStringSubmatch(body)
			if m == nil {
				return "", syntaxError(name, line, "invalid {@%s}\n"+
					"  Correct syntax: {@for _, value := range Items trackBy value.ID}\n"+
					"  The index and trackBy are optional: {@for value := range Items}", body)
			}
			if m[1] != "" && m[1] != "_" {
				return "", syntaxError(name, line, "index variable %q is not supported, use _", m[1])
			}
			stack = append(stack, openDirective{kind: "for", line: line})
			fmt.Fprintf(&sb, `<go-for data-value="%s" data-range="%s" data-trackby="%s">`, m[2], m[3], m[4])

		case body == "endfor":
			if len(stack) == 0 || stack[len(stack)-1].kind != "for" {
				return "", syntaxError(name, line, "{@endfor} without {@for}")
			}
			stack = stack[:len(stack)-1]
			sb.WriteString(`</go-for>`)
		}
	}
	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return "", syntaxError(name, top.line, "{@%s} is never closed, missing {@end%s}", top.kind, top.kind)
	}
	sb.WriteString(src[last:])

	return reStartTag.ReplaceAllStringFunc(sb.String(), renameEventAttrs), nil
}

// renameEventAttrs rewrites @click="..." to on:click="..." inside one start
// tag, since @ cannot start an XML attribute name.
func renameEventAttrs(tag string) string {
	return reEventAttr.ReplaceAllStringFunc(tag, func(m string) string {
		if m[0] == '"' || m[0] == '\'' {
			return m
		}
		return strings.Replace(m, "@", "on:", 1)
	})
}

func lineAt(src string, offset int) int {
	return strings.Count(src[:offset], "\n") + 1
}
