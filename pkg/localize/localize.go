package localize

import (
	"fmt"
	"sort"
	"strings"
)

// Params carries template substitutions for a translation.
type Params map[string]interface{}

// Translator resolves a message key into display text. The engine never
// hardcodes user-facing sentences; callers may swap in a full i18n stack.
type Translator interface {
	Translate(key string, params Params) string
}

// Catalog is a flat key -> template map with {param} substitution.
type Catalog struct {
	messages map[string]string
}

// NewEnglish returns the built-in English catalog.
func NewEnglish() *Catalog {
	return &Catalog{messages: englishMessages}
}

// NewCatalog builds a catalog over the provided messages, falling back to
// English for missing keys.
func NewCatalog(messages map[string]string) *Catalog {
	merged := make(map[string]string, len(englishMessages)+len(messages))
	for k, v := range englishMessages {
		merged[k] = v
	}
	for k, v := range messages {
		merged[k] = v
	}
	return &Catalog{messages: merged}
}

// Translate renders the template for key. Unknown keys return the key
// itself so degraded output stays visible rather than blank.
func (c *Catalog) Translate(key string, params Params) string {
	template, ok := c.messages[key]
	if !ok {
		return key
	}
	if len(params) == 0 {
		return template
	}
	// Longer names first so {name} never clobbers {nameSuffix}.
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })
	out := template
	for _, name := range names {
		out = strings.ReplaceAll(out, "{"+name+"}", stringify(params[name]))
	}
	return out
}

func stringify(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}
