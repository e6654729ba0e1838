package wikitext

import (
	"regexp"
	"strings"
)

var (
	internalLink = regexp.MustCompile(`\[\[([^\[\]|]*)(?:\|([^\[\]]*))?\]\]`)
	externalLink = regexp.MustCompile(`\[(?:https?:)?//[^\s\]]+(?:\s+([^\]]*))?\]`)
	htmlTag      = regexp.MustCompile(`</?[A-Za-z][^>]*>`)
	emphasis     = regexp.MustCompile(`'{2,}`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// StripCode removes markup from a parameter value and returns its plain text.
// Templates are dropped, links are replaced by their label, and file or
// category links are removed.
func StripCode(value string) string {
	value = commentPattern.ReplaceAllString(value, "")
	value = removeTemplates(value)
	value = internalLink.ReplaceAllStringFunc(value, func(m string) string {
		parts := internalLink.FindStringSubmatch(m)
		target := strings.TrimSpace(parts[1])
		lower := strings.ToLower(target)
		if strings.HasPrefix(lower, "file:") || strings.HasPrefix(lower, "category:") || strings.HasPrefix(lower, "image:") {
			return ""
		}
		if parts[2] != "" {
			return parts[2]
		}
		return target
	})
	value = externalLink.ReplaceAllString(value, "$1")
	value = htmlTag.ReplaceAllString(value, "")
	value = emphasis.ReplaceAllString(value, "")
	value = whitespace.ReplaceAllString(value, " ")
	return strings.TrimSpace(value)
}

func removeTemplates(value string) string {
	var b strings.Builder
	for i := 0; i < len(value); {
		if strings.HasPrefix(value[i:], "{{") {
			end := matchClose(value, i)
			if end < 0 {
				b.WriteString(value[i:])
				break
			}
			i = end
			continue
		}
		b.WriteByte(value[i])
		i++
	}
	return b.String()
}
