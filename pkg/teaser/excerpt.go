package teaser

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// stripPolicy removes every tag and attribute, leaving plain text.
// Truncating inside markup would otherwise leave unbalanced tags in the
// teaser output.
var stripPolicy = bluemonday.StrictPolicy()

// Excerpt produces a plain-text excerpt of HTML content, truncated at the
// given word count. Markup is stripped before truncation so the cut never
// lands inside a tag. Truncated excerpts end with an ellipsis.
func Excerpt(content string, words int) string {
	if words <= 0 {
		return ""
	}

	text := stripPolicy.Sanitize(content)
	// bluemonday escapes entities in its output; decode them back to text.
	text = html.UnescapeString(text)

	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}

	if len(fields) <= words {
		return strings.Join(fields, " ")
	}

	return strings.Join(fields[:words], " ") + "…"
}
