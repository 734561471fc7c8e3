// Package htmlsanitize cleans user-submitted rich text (maintenance
// descriptions, rating comments, support ticket bodies) before it is stored
// or rendered.
package htmlsanitize

import (
	"html"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// policy is built once; bluemonday policies are safe for concurrent use
// after construction.
var policy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	// Tenants paste photos as links, not inline images.
	p.AllowElements("u", "s", "mark")
	return p
}()

// Sanitize strips everything outside the allowed formatting subset.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(policy.Sanitize(s))
}

// SanitizeToHTML is Sanitize typed for direct use in templates.
func SanitizeToHTML(s string) template.HTML {
	return template.HTML(Sanitize(s))
}

// IsPlainText reports whether s contains no markup.
func IsPlainText(s string) bool {
	return !(strings.Contains(s, "<") && strings.Contains(s, ">"))
}

// PlainTextToHTML escapes s and turns newlines into <br> inside a paragraph.
func PlainTextToHTML(s string) string {
	if s == "" {
		return ""
	}
	escaped := html.EscapeString(strings.ReplaceAll(s, "\r\n", "\n"))
	return "<p>" + strings.ReplaceAll(escaped, "\n", "<br>") + "</p>"
}

// ForStorage normalizes a submission: plain text becomes escaped HTML and
// markup is sanitized.
func ForStorage(s string) string {
	s = strings.TrimSpace(s)
	if IsPlainText(s) {
		return PlainTextToHTML(s)
	}
	return Sanitize(s)
}

// PrepareForDisplay renders a stored value, sanitizing again so records
// written before a policy change are still safe.
func PrepareForDisplay(s string) template.HTML {
	return template.HTML(ForStorage(s))
}

// Text returns s with all markup removed, for CSV exports and search.
func Text(s string) string {
	return strings.TrimSpace(html.UnescapeString(bluemonday.StrictPolicy().Sanitize(s)))
}
