package render

import (
	"sort"
	"strings"

	"github.com/vango-dev/viewbuf/pkg/safetext"
)

// Attrs are element attributes. Keys are rendered in sorted order.
//
// nil values are skipped. Boolean attributes (disabled, checked...) render
// as a bare name when true and are omitted when false. Other values are
// coerced to text and attribute-escaped unless already safe.
type Attrs map[string]any

// voidElements are elements that cannot have children and have no closing tag.
// These are self-closing in HTML5.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// isVoidElement returns true if the tag is a void element.
func isVoidElement(tag string) bool {
	return voidElements[tag]
}

// booleanAttrs are attributes that don't need a value.
// When true, they're rendered as just the attribute name.
var booleanAttrs = map[string]bool{
	"allowfullscreen": true,
	"async":           true,
	"autofocus":       true,
	"autoplay":        true,
	"checked":         true,
	"controls":        true,
	"default":         true,
	"defer":           true,
	"disabled":        true,
	"formnovalidate":  true,
	"hidden":          true,
	"ismap":           true,
	"itemscope":       true,
	"loop":            true,
	"multiple":        true,
	"muted":           true,
	"nomodule":        true,
	"novalidate":      true,
	"open":            true,
	"playsinline":     true,
	"readonly":        true,
	"required":        true,
	"reversed":        true,
	"selected":        true,
}

// isBooleanAttr returns true if the attribute is a boolean attribute.
func isBooleanAttr(name string) bool {
	return booleanAttrs[name]
}

// Elements renders tags with a fixed pair of escapers. The zero value uses
// safetext.HTMLEscape for content and safetext.AttrEscape for attributes.
type Elements struct {
	Content safetext.Escaper
	Attr    safetext.Escaper
}

func (e Elements) content() safetext.Escaper {
	if e.Content == nil {
		return safetext.HTMLEscape
	}
	return e.Content
}

func (e Elements) attr() safetext.Escaper {
	if e.Attr == nil {
		return safetext.AttrEscape
	}
	return e.Attr
}

// Tag renders an opening tag. For void elements this is the whole element.
func (e Elements) Tag(name string, attrs Attrs) (safetext.Safe, error) {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(name)
	if err := writeAttrs(&b, attrs, e.attr()); err != nil {
		return "", err
	}
	b.WriteByte('>')
	return safetext.Safe(b.String()), nil
}

// ContentTag renders a full element around content. Unsafe content goes
// through the content escaper; safe content (for example a captured region)
// is kept as is. Void elements ignore content.
func (e Elements) ContentTag(name string, attrs Attrs, content any) (safetext.Safe, error) {
	open, err := e.Tag(name, attrs)
	if err != nil || isVoidElement(name) {
		return open, err
	}

	inner := safetext.Safe("")
	if !safetext.IsNil(content) {
		t, err := safetext.Coerce(content)
		if err != nil {
			return "", err
		}
		inner = safetext.Escape(e.content(), t)
	}
	return open + inner + safetext.Safe("</"+name+">"), nil
}

// Tag is Elements{}.Tag.
func Tag(name string, attrs Attrs) (safetext.Safe, error) {
	return Elements{}.Tag(name, attrs)
}

// ContentTag is Elements{}.ContentTag.
func ContentTag(name string, attrs Attrs, content any) (safetext.Safe, error) {
	return Elements{}.ContentTag(name, attrs, content)
}

func writeAttrs(b *strings.Builder, attrs Attrs, escape safetext.Escaper) error {
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := attrs[key]
		if safetext.IsNil(value) {
			continue
		}

		name := key
		switch key {
		case "className":
			name = "class"
		case "htmlFor":
			name = "for"
		}

		if isBooleanAttr(name) {
			if on, ok := value.(bool); ok {
				if on {
					b.WriteByte(' ')
					b.WriteString(name)
				}
				continue
			}
		}

		t, err := safetext.Coerce(value)
		if err != nil {
			return err
		}
		b.WriteByte(' ')
		b.WriteString(name)
		b.WriteString(`="`)
		b.WriteString(string(safetext.Escape(escape, t)))
		b.WriteByte('"')
	}
	return nil
}
