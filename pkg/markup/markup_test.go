package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToDisplayHTML(t *testing.T) {
	b := NewBasic()

	tests := []struct {
		name     string
		markdown string
		want     string
	}{
		{"bold", "*hello*", "<strong>hello</strong>"},
		{"italic", "_hello_", "<em>hello</em>"},
		{"strike", "~gone~", "<del>gone</del>"},
		{"code", "`x := 1`", "<code>x := 1</code>"},
		{"escapes html", "<script>", "&lt;script&gt;"},
		{"newline", "a\nb", "a<br />b"},
		{"mixed", "*a* and _b_", "<strong>a</strong> and <em>b</em>"},
		{"unterminated mark stays literal", "*hello", "*hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.ToDisplayHTML(tt.markdown))
		})
	}
}

func TestToPlainText(t *testing.T) {
	b := NewBasic()

	assert.Equal(t, "hello", b.ToPlainText("<strong>hello</strong>"))
	assert.Equal(t, "a\nb", b.ToPlainText("a<br />b"))
	assert.Equal(t, "<script>", b.ToPlainText("&lt;script&gt;"))
}

func TestDisplayPlainRoundTrip(t *testing.T) {
	b := NewBasic()

	// Marks render as tags and strip back out; the words survive intact.
	got := b.ToPlainText(b.ToDisplayHTML("ship *v2* by _Friday_\nno exceptions"))
	assert.Equal(t, "ship v2 by Friday\nno exceptions", got)
}
