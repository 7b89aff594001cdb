package teaser

import (
	"fmt"
	"regexp"
	"strings"
)

// Transform rewrites a teaser message. Transforms chain in registration
// order, each receiving the previous output.
type Transform func(message string) string

// Paragraphs wraps blank-line-separated blocks in <p> tags and converts
// remaining single newlines to <br /> tags.
func Paragraphs(message string) string {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return ""
	}

	blocks := blankLineSplit.Split(trimmed, -1)
	var b strings.Builder
	for _, block := range blocks {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		block = strings.ReplaceAll(block, "\n", "<br />\n")
		b.WriteString("<p>")
		b.WriteString(block)
		b.WriteString("</p>\n")
	}
	return b.String()
}

var blankLineSplit = regexp.MustCompile(`\n\s*\n`)

// ShortcodeFunc renders one shortcode occurrence. For self-closing
// shortcodes inner is empty.
type ShortcodeFunc func(inner string) string

// ExpandShortcodes returns a Transform that replaces [name]inner[/name]
// pairs and bare [name] tags with the registered renderer's output.
// Unregistered shortcodes pass through untouched.
func ExpandShortcodes(shortcodes map[string]ShortcodeFunc) Transform {
	type compiled struct {
		paired *regexp.Regexp
		bare   *regexp.Regexp
		fn     ShortcodeFunc
	}

	patterns := make([]compiled, 0, len(shortcodes))
	for name, fn := range shortcodes {
		if fn == nil {
			continue
		}
		quoted := regexp.QuoteMeta(name)
		patterns = append(patterns, compiled{
			paired: regexp.MustCompile(fmt.Sprintf(`(?s)\[%s\](.*?)\[/%s\]`, quoted, quoted)),
			bare:   regexp.MustCompile(fmt.Sprintf(`\[%s\]`, quoted)),
			fn:     fn,
		})
	}

	return func(message string) string {
		for _, p := range patterns {
			message = p.paired.ReplaceAllStringFunc(message, func(match string) string {
				inner := p.paired.FindStringSubmatch(match)[1]
				return p.fn(inner)
			})
			message = p.bare.ReplaceAllStringFunc(message, func(string) string {
				return p.fn("")
			})
		}
		return message
	}
}
