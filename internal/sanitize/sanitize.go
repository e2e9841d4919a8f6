package sanitize

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Authored passage and question content is rich HTML from the admin editor.
// Every string that ends up in a rendered view must pass through one of
// these helpers first.

var (
	displayPolicy = buildDisplayPolicy()
	strictPolicy  = bluemonday.StrictPolicy()

	whitespaceRe = regexp.MustCompile(`\s+`)
)

func buildDisplayPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	// Table completion content relies on table markup surviving sanitization.
	p.AllowTables()
	p.AllowAttrs("class").OnElements("p", "span", "div", "table", "td", "th", "tr", "ul", "ol", "li")
	return p
}

// HTMLForDisplay sanitizes authored HTML for rendering inside a preview view,
// keeping formatting and table structure.
func HTMLForDisplay(html string) string {
	return displayPolicy.Sanitize(html)
}

// HTML sanitizes authored HTML with the same policy as HTMLForDisplay. Kept
// as a separate name because callers distinguish persisted vs displayed
// content at the call site.
func HTML(html string) string {
	return displayPolicy.Sanitize(html)
}

// StripHTML removes all markup and collapses whitespace, for plain-text
// contexts such as statement rows and xlsx export cells.
func StripHTML(html string) string {
	text := strictPolicy.Sanitize(html)
	text = strings.ReplaceAll(text, "&nbsp;", " ")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}
