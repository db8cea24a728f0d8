// Package normalisers turns text written by a model into the plain,
// single-line form result lists display. Summaries arrive as markdown or,
// from some providers, HTML fragments.
package normalisers

import (
	"strings"

	"github.com/custodia-labs/idealens/internal/normalisers/html"
	"github.com/custodia-labs/idealens/internal/normalisers/markdown"
)

// Summary reduces generated text to one plain line.
// It returns "" when nothing readable is left.
func Summary(text string) string {
	text = html.Plain(text)
	text = markdown.Plain(text)
	return strings.Join(strings.Fields(text), " ")
}
