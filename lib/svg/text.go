package svg

import "strings"

func EscapeText(text string) string {
	escaped := strings.ReplaceAll(text, `&`, `&amp;`)
	escaped = strings.ReplaceAll(escaped, `<`, `&lt;`)
	escaped = strings.ReplaceAll(escaped, `>`, `&gt;`)
	escaped = strings.ReplaceAll(escaped, `"`, `&quot;`)
	escaped = strings.ReplaceAll(escaped, `'`, `&#39;`)
	return escaped
}
