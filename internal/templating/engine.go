package templating

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"
)

// Data is the nested payload a template renders against. Values are scalars,
// map[string]any mappings or []any sequences of mappings, mirroring the shape
// of a decoded JSON document.
type Data = map[string]any

// SyntaxError reports malformed block markup (unterminated or mismatched
// {{#if}}/{{#each}}, stray {{else}}, unknown helper). The engine never
// panics on bad templates; it returns one of these.
type SyntaxError struct {
	Pos     int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("template syntax error at offset %d: %s", e.Pos, e.Message)
}

type nodeKind int

const (
	nodeText nodeKind = iota
	nodeVar
	nodeIf
	nodeEach
)

type node struct {
	kind   nodeKind
	text   string
	path   string
	helper string
	raw    bool
	body   []*node
	els    []*node
}

type token struct {
	pos     int
	text    string
	isTag   bool
	raw     bool
	content string
}

// Interpolate resolves the template against data and returns the final text.
// Missing paths render as the empty string; that leniency is deliberate so
// optional fields (complemento, observacoes) can be omitted without breaking
// a document. Completeness of declared paths is enforced upstream, before
// rendering.
func Interpolate(template string, data Data) (string, error) {
	tokens, err := tokenize(template)
	if err != nil {
		return "", err
	}
	nodes, rest, err := parseNodes(tokens, "")
	if err != nil {
		return "", err
	}
	if len(rest) > 0 {
		t := rest[0]
		return "", &SyntaxError{Pos: t.pos, Message: fmt.Sprintf("unexpected {{%s}}", t.content)}
	}
	var sb strings.Builder
	render(&sb, nodes, []frame{{value: data}})
	return sb.String(), nil
}

func tokenize(template string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(template) {
		start := strings.Index(template[i:], "{{")
		if start == -1 {
			tokens = append(tokens, token{pos: i, text: template[i:]})
			break
		}
		start += i
		if start > i {
			tokens = append(tokens, token{pos: i, text: template[i:start]})
		}
		if strings.HasPrefix(template[start:], "{{{") {
			end := strings.Index(template[start+3:], "}}}")
			if end == -1 {
				return nil, &SyntaxError{Pos: start, Message: "unterminated {{{"}
			}
			content := strings.TrimSpace(template[start+3 : start+3+end])
			tokens = append(tokens, token{pos: start, isTag: true, raw: true, content: content})
			i = start + 3 + end + 3
			continue
		}
		end := strings.Index(template[start+2:], "}}")
		if end == -1 {
			return nil, &SyntaxError{Pos: start, Message: "unterminated {{"}
		}
		content := strings.TrimSpace(template[start+2 : start+2+end])
		tokens = append(tokens, token{pos: start, isTag: true, content: content})
		i = start + 2 + end + 2
	}
	return tokens, nil
}

// parseNodes consumes tokens until it hits a closing tag for the enclosing
// block (or the end of input). It returns the remaining tokens starting at
// that closing tag so the caller can match it.
func parseNodes(tokens []token, enclosing string) ([]*node, []token, error) {
	var nodes []*node
	for len(tokens) > 0 {
		t := tokens[0]
		if !t.isTag {
			nodes = append(nodes, &node{kind: nodeText, text: t.text})
			tokens = tokens[1:]
			continue
		}
		switch {
		case t.content == "#if" || strings.HasPrefix(t.content, "#if "):
			arg := strings.TrimSpace(strings.TrimPrefix(t.content, "#if"))
			if arg == "" {
				return nil, nil, &SyntaxError{Pos: t.pos, Message: "{{#if}} requires a path"}
			}
			body, rest, err := parseNodes(tokens[1:], "if")
			if err != nil {
				return nil, nil, err
			}
			n := &node{kind: nodeIf, path: arg, body: body}
			if len(rest) == 0 {
				return nil, nil, &SyntaxError{Pos: t.pos, Message: "unterminated {{#if}}"}
			}
			if rest[0].content == "else" {
				els, rest2, err := parseNodes(rest[1:], "if")
				if err != nil {
					return nil, nil, err
				}
				if len(rest2) == 0 || rest2[0].content != "/if" {
					return nil, nil, &SyntaxError{Pos: t.pos, Message: "unterminated {{#if}}"}
				}
				n.els = els
				rest = rest2
			}
			if rest[0].content != "/if" {
				return nil, nil, &SyntaxError{Pos: t.pos, Message: "unterminated {{#if}}"}
			}
			nodes = append(nodes, n)
			tokens = rest[1:]
		case t.content == "#each" || strings.HasPrefix(t.content, "#each "):
			arg := strings.TrimSpace(strings.TrimPrefix(t.content, "#each"))
			if arg == "" {
				return nil, nil, &SyntaxError{Pos: t.pos, Message: "{{#each}} requires a path"}
			}
			body, rest, err := parseNodes(tokens[1:], "each")
			if err != nil {
				return nil, nil, err
			}
			if len(rest) == 0 || rest[0].content != "/each" {
				return nil, nil, &SyntaxError{Pos: t.pos, Message: "unterminated {{#each}}"}
			}
			nodes = append(nodes, &node{kind: nodeEach, path: arg, body: body})
			tokens = rest[1:]
		case t.content == "else":
			if enclosing != "if" {
				return nil, nil, &SyntaxError{Pos: t.pos, Message: "{{else}} outside {{#if}}"}
			}
			return nodes, tokens, nil
		case t.content == "/if", t.content == "/each":
			if enclosing == "" {
				return nil, nil, &SyntaxError{Pos: t.pos, Message: fmt.Sprintf("unexpected {{%s}}", t.content)}
			}
			return nodes, tokens, nil
		default:
			n, err := parseVar(t)
			if err != nil {
				return nil, nil, err
			}
			nodes = append(nodes, n)
			tokens = tokens[1:]
		}
	}
	if enclosing != "" {
		return nil, tokens, nil
	}
	return nodes, tokens, nil
}

func parseVar(t token) (*node, error) {
	fields := strings.Fields(t.content)
	switch len(fields) {
	case 1:
		return &node{kind: nodeVar, path: fields[0], raw: t.raw}, nil
	case 2:
		if _, ok := helpers[fields[0]]; !ok {
			return nil, &SyntaxError{Pos: t.pos, Message: fmt.Sprintf("unknown helper %q", fields[0])}
		}
		return &node{kind: nodeVar, path: fields[1], helper: fields[0], raw: t.raw}, nil
	default:
		return nil, &SyntaxError{Pos: t.pos, Message: fmt.Sprintf("malformed expression %q", t.content)}
	}
}

// frame is one level of the rendering context. Inside an {{#each}} block the
// current element is pushed with its loop metadata.
type frame struct {
	value any
	loop  *loopMeta
}

type loopMeta struct {
	index int
	first bool
	last  bool
}

func render(sb *strings.Builder, nodes []*node, frames []frame) {
	for _, n := range nodes {
		switch n.kind {
		case nodeText:
			sb.WriteString(n.text)
		case nodeVar:
			v := resolve(frames, n.path)
			var out string
			if n.helper != "" {
				out = helpers[n.helper](v)
			} else {
				out = stringify(v)
			}
			if !n.raw {
				out = html.EscapeString(out)
			}
			sb.WriteString(out)
		case nodeIf:
			if truthy(resolve(frames, n.path)) {
				render(sb, n.body, frames)
			} else {
				render(sb, n.els, frames)
			}
		case nodeEach:
			seq, _ := resolve(frames, n.path).([]any)
			for i, el := range seq {
				child := append(frames[:len(frames):len(frames)], frame{
					value: el,
					loop:  &loopMeta{index: i, first: i == 0, last: i == len(seq)-1},
				})
				render(sb, n.body, child)
			}
		}
	}
}

// resolve walks a dotted path through the context stack. The innermost frame
// that knows the first segment wins; a segment missing after that resolves to
// nil rather than falling back outward.
func resolve(frames []frame, path string) any {
	if strings.HasPrefix(path, "@") {
		for i := len(frames) - 1; i >= 0; i-- {
			if lm := frames[i].loop; lm != nil {
				switch path {
				case "@index":
					return lm.index
				case "@first":
					return lm.first
				case "@last":
					return lm.last
				}
			}
		}
		return nil
	}
	segments := strings.Split(path, ".")
	if path == "this" {
		return frames[len(frames)-1].value
	}
	for i := len(frames) - 1; i >= 0; i-- {
		m, ok := frames[i].value.(map[string]any)
		if !ok {
			continue
		}
		v, ok := m[segments[0]]
		if !ok {
			continue
		}
		return walk(v, segments[1:])
	}
	return nil
}

// Lookup resolves a dotted path against the data root, reporting whether
// every segment was present. The orchestrator's completeness gate uses this;
// rendering itself stays lenient.
func Lookup(data Data, path string) (any, bool) {
	var v any = data
	for _, seg := range strings.Split(path, ".") {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		v, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return v, true
}

func walk(v any, segments []string) any {
	for _, seg := range segments {
		m, ok := v.(map[string]any)
		if !ok {
			return nil
		}
		v, ok = m[seg]
		if !ok {
			return nil
		}
	}
	return v
}

// truthy follows handlebars-style semantics: false, nil, zero, the empty
// string and empty sequences/mappings are all falsy.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case time.Time:
		return t.Format("2006-01-02")
	default:
		return fmt.Sprintf("%v", t)
	}
}
