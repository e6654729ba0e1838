// Package wikitext extracts template invocations from MediaWiki page text.
package wikitext

import (
	"regexp"
	"strconv"
	"strings"
)

// Param is a single template argument. Positional arguments are named "1", "2", ...
type Param struct {
	Name  string
	Value string
}

// Template is one {{...}} invocation.
type Template struct {
	Name   string
	Params []Param
}

// Get returns the raw value of the first parameter with the given name.
func (t Template) Get(name string) (string, bool) {
	for _, p := range t.Params {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// Value returns the trimmed value of name, or "" when it is absent.
func (t Template) Value(name string) string {
	v, _ := t.Get(name)
	return strings.TrimSpace(v)
}

var commentPattern = regexp.MustCompile(`(?s)<!--.*?-->`)

// Parse returns every template in text, including templates nested inside
// parameter values. Outer templates precede the templates they contain.
func Parse(text string) []Template {
	text = commentPattern.ReplaceAllString(text, "")
	var out []Template
	parseInto(text, &out)
	return out
}

// Filter returns the templates whose trimmed name equals name.
func Filter(templates []Template, name string) []Template {
	var out []Template
	for _, t := range templates {
		if t.Name == name {
			out = append(out, t)
		}
	}
	return out
}

func parseInto(text string, out *[]Template) {
	for i := 0; i < len(text); {
		switch {
		case strings.HasPrefix(text[i:], "{{{"):
			end := matchClose(text, i)
			if end < 0 {
				return
			}
			i = end
		case strings.HasPrefix(text[i:], "{{"):
			end := matchClose(text, i)
			if end < 0 {
				return
			}
			body := text[i+2 : end-2]
			tpl := buildTemplate(body)
			*out = append(*out, tpl)
			for _, p := range tpl.Params {
				parseInto(p.Value, out)
			}
			i = end
		default:
			i++
		}
	}
}

// matchClose returns the index just past the construct opening at start,
// or -1 when it is unterminated.
func matchClose(text string, start int) int {
	var stack []int
	for i := start; i < len(text); {
		rest := text[i:]
		switch {
		case strings.HasPrefix(rest, "{{{") && !strings.HasPrefix(rest, "{{{{{"):
			stack = append(stack, 3)
			i += 3
		case strings.HasPrefix(rest, "{{"):
			stack = append(stack, 2)
			i += 2
		case strings.HasPrefix(rest, "}}") && len(stack) > 0:
			top := stack[len(stack)-1]
			if top == 3 && !strings.HasPrefix(rest, "}}}") {
				// Unbalanced triple brace; close it as a template.
				top = 2
			}
			stack = stack[:len(stack)-1]
			i += top
			if len(stack) == 0 {
				return i
			}
		default:
			i++
		}
	}
	return -1
}

// buildTemplate splits a template body on top-level pipes.
func buildTemplate(body string) Template {
	parts := splitTopLevel(body)
	tpl := Template{Name: strings.TrimSpace(parts[0])}
	position := 0
	for _, part := range parts[1:] {
		if eq := topLevelIndex(part, '='); eq >= 0 {
			tpl.Params = append(tpl.Params, Param{
				Name:  strings.TrimSpace(part[:eq]),
				Value: part[eq+1:],
			})
			continue
		}
		position++
		tpl.Params = append(tpl.Params, Param{Name: strconv.Itoa(position), Value: part})
	}
	return tpl
}

func splitTopLevel(body string) []string {
	var parts []string
	depth := 0
	last := 0
	for i := 0; i < len(body); i++ {
		switch {
		case strings.HasPrefix(body[i:], "{{"), strings.HasPrefix(body[i:], "[["):
			depth++
			i++
		case strings.HasPrefix(body[i:], "}}"), strings.HasPrefix(body[i:], "]]"):
			if depth > 0 {
				depth--
			}
			i++
		case body[i] == '|' && depth == 0:
			parts = append(parts, body[last:i])
			last = i + 1
		}
	}
	return append(parts, body[last:])
}

func topLevelIndex(s string, c byte) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch {
		case strings.HasPrefix(s[i:], "{{"), strings.HasPrefix(s[i:], "[["):
			depth++
			i++
		case strings.HasPrefix(s[i:], "}}"), strings.HasPrefix(s[i:], "]]"):
			if depth > 0 {
				depth--
			}
			i++
		case s[i] == c && depth == 0:
			return i
		}
	}
	return -1
}
