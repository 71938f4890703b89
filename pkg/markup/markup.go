package markup

import (
	"html"
	"regexp"
	"strings"
)

// Renderer converts between edit-time markdown and the display/plain pair
// stored alongside every comment. The engine only depends on this interface;
// the built-in implementation covers the inline marks the mobile composer
// emits and nothing more.
type Renderer interface {
	ToDisplayHTML(markdown string) string
	ToPlainText(htmlText string) string
}

var (
	boldRe   = regexp.MustCompile(`\*([^*\n]+)\*`)
	italicRe = regexp.MustCompile(`_([^_\n]+)_`)
	strikeRe = regexp.MustCompile(`~([^~\n]+)~`)
	codeRe   = regexp.MustCompile("`([^`\n]+)`")
	tagRe    = regexp.MustCompile(`<[^>]*>`)
)

// Basic is the built-in renderer.
type Basic struct{}

// NewBasic returns the built-in renderer.
func NewBasic() *Basic { return &Basic{} }

// ToDisplayHTML escapes the input and applies inline marks.
func (b *Basic) ToDisplayHTML(markdown string) string {
	out := html.EscapeString(markdown)
	out = codeRe.ReplaceAllString(out, "<code>$1</code>")
	out = boldRe.ReplaceAllString(out, "<strong>$1</strong>")
	out = italicRe.ReplaceAllString(out, "<em>$1</em>")
	out = strikeRe.ReplaceAllString(out, "<del>$1</del>")
	out = strings.ReplaceAll(out, "\n", "<br />")
	return out
}

// ToPlainText strips tags and unescapes entities.
func (b *Basic) ToPlainText(htmlText string) string {
	out := strings.ReplaceAll(htmlText, "<br />", "\n")
	out = strings.ReplaceAll(out, "<br>", "\n")
	out = tagRe.ReplaceAllString(out, "")
	return html.UnescapeString(out)
}
