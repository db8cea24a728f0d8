// Package html strips HTML markup from generated text.
package html

import (
	"html"
	"regexp"
	"strings"
)

var (
	dropElements = regexp.MustCompile(`(?is)<(script|style|noscript|head|svg)[^>]*>.*?</(script|style|noscript|head|svg)>`)
	comments     = regexp.MustCompile(`(?s)<!--.*?-->`)
	blockBreaks  = regexp.MustCompile(`(?i)</?(p|div|h[1-6]|li|ul|ol|br|hr|tr|blockquote)[^>]*>`)
	allTags      = regexp.MustCompile(`<[^>]+>`)
	multiSpaces  = regexp.MustCompile(`[ \t]+`)
)

// Plain removes tags, decodes entities and drops empty lines.
// Text without markup comes back trimmed but otherwise unchanged.
func Plain(content string) string {
	content = dropElements.ReplaceAllString(content, "")
	content = comments.ReplaceAllString(content, "")
	content = blockBreaks.ReplaceAllString(content, "\n")
	content = allTags.ReplaceAllString(content, "")
	content = html.UnescapeString(content)
	content = multiSpaces.ReplaceAllString(content, " ")

	lines := strings.Split(content, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
