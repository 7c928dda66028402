package safetext

import "strings"

// Escaper turns raw text into its escaped, safe form.
type Escaper func(raw string) Safe

// Escape returns t unchanged when it is already Safe and runs it through e
// otherwise. A nil Escaper falls back to HTMLEscape.
func Escape(e Escaper, t Text) Safe {
	switch v := Normalize(t).(type) {
	case Safe:
		return v
	case Unsafe:
		if e == nil {
			e = HTMLEscape
		}
		return e(string(v))
	}
	return ""
}

// HTMLEscape escapes text for safe inclusion in HTML content.
// It converts special characters to their HTML entity equivalents
// to prevent XSS attacks.
func HTMLEscape(s string) Safe {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		default:
			buf.WriteRune(r)
		}
	}

	return Safe(buf.String())
}

// AttrEscape escapes text for safe inclusion in HTML attribute values.
// In addition to the standard HTML entities, it also escapes
// whitespace characters that could break attribute parsing.
func AttrEscape(s string) Safe {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		case '\n':
			buf.WriteString("&#10;")
		case '\r':
			buf.WriteString("&#13;")
		case '\t':
			buf.WriteString("&#9;")
		default:
			buf.WriteRune(r)
		}
	}

	return Safe(buf.String())
}
