package buffer

import (
	"errors"
	"fmt"
	"html/template"
	"testing"

	"github.com/vango-dev/viewbuf/pkg/safetext"
)

func TestFrameAppendEscapesUnsafeText(t *testing.T) {
	f := NewFrame()
	if err := f.Append("<b>"); err != nil {
		t.Fatalf("Append error: %v", err)
	}
	if got := f.String(); got != "&lt;b&gt;" {
		t.Errorf("String() = %q, want %q", got, "&lt;b&gt;")
	}
	if !f.IsSafe() {
		t.Error("frame should stay safe after raw append")
	}
}

func TestFrameSafeAppendIsVerbatim(t *testing.T) {
	f := NewFrame()
	if err := f.SafeAppend("<b>"); err != nil {
		t.Fatalf("SafeAppend error: %v", err)
	}
	if got := f.String(); got != "<b>" {
		t.Errorf("String() = %q, want %q", got, "<b>")
	}
}

func TestFrameNeverReescapesSafeValues(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"safetext", safetext.Safe("&amp;<i>"), "&amp;<i>"},
		{"template html", template.HTML("<em>x</em>"), "<em>x</em>"},
		{"frame", frameWith(t, "<p>"), "<p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFrame()
			if err := f.Append(tt.value); err != nil {
				t.Fatalf("Append error: %v", err)
			}
			if got := f.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func frameWith(t *testing.T, safe string) *Frame {
	t.Helper()
	f := NewFrame()
	if err := f.SafeAppend(safe); err != nil {
		t.Fatalf("SafeAppend error: %v", err)
	}
	return f
}

func TestFrameNilTolerance(t *testing.T) {
	var nilStringer *fmt.Stringer
	var nilErr error

	f := NewFrameFrom(safetext.Safe("seed"))
	for _, v := range []any{nil, nilStringer, nilErr} {
		if err := f.Append(v); err != nil {
			t.Errorf("Append(%#v) error: %v", v, err)
		}
		if err := f.SafeAppend(v); err != nil {
			t.Errorf("SafeAppend(%#v) error: %v", v, err)
		}
	}
	if got := f.String(); got != "seed" {
		t.Errorf("String() = %q, want %q", got, "seed")
	}
}

func TestFrameCoercesDisplayValues(t *testing.T) {
	f := NewFrame()
	for _, v := range []any{"hello", 5, 1.5, true, []byte("!")} {
		if err := f.Append(v); err != nil {
			t.Fatalf("Append(%#v) error: %v", v, err)
		}
	}
	if got, want := f.String(), "hello51.5true!"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestFrameTypeConversionError(t *testing.T) {
	f := NewFrame()
	err := f.Append(map[string]int{"a": 1})
	if !errors.Is(err, ErrTypeConversion) {
		t.Fatalf("Append(map) error = %v, want ErrTypeConversion", err)
	}
	if err := f.SafeAppend(struct{}{}); !errors.Is(err, ErrTypeConversion) {
		t.Fatalf("SafeAppend(struct) error = %v, want ErrTypeConversion", err)
	}
	if f.Len() != 0 {
		t.Errorf("failed appends should not write, got %q", f.String())
	}
}

func TestUnsafeFrameStoresRawUntilMarkedSafe(t *testing.T) {
	f := NewFrameFrom(safetext.Unsafe("<a>"))
	if f.IsSafe() {
		t.Fatal("frame seeded with unsafe text should be unsafe")
	}
	if err := f.Append("<b>"); err != nil {
		t.Fatal(err)
	}
	if got := f.String(); got != "<a><b>" {
		t.Errorf("String() = %q, want raw concatenation", got)
	}
	if _, ok := f.Text().(safetext.Unsafe); !ok {
		t.Errorf("Text() = %#v, want Unsafe", f.Text())
	}

	if err := f.SafeAppend("<c>"); err != nil {
		t.Fatal(err)
	}
	if !f.IsSafe() {
		t.Error("SafeAppend should mark the frame safe")
	}
	if err := f.Append("<d>"); err != nil {
		t.Fatal(err)
	}
	if got := f.String(); got != "<a><b><c>&lt;d&gt;" {
		t.Errorf("String() = %q", got)
	}
}

func TestFrameWriterEscapes(t *testing.T) {
	f := NewFrame()
	fmt.Fprintf(f, "%s & %d", "<x>", 3)
	if got, want := f.String(), "&lt;x&gt; &amp; 3"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestFrameLenCountsCharacters(t *testing.T) {
	f := NewFrameFrom(safetext.Safe("héllo 世界"))
	if got := f.Len(); got != 8 {
		t.Errorf("Len() = %d, want 8", got)
	}
}

func TestFramePresence(t *testing.T) {
	f := NewFrameFrom(safetext.Safe(" \n\t"))
	if f.Present() || !f.Blank() {
		t.Error("whitespace-only frame should be blank")
	}
	f.Append("x")
	if !f.Present() || f.Blank() {
		t.Error("frame with content should be present")
	}
}

func TestFrameCustomEscaper(t *testing.T) {
	upper := func(raw string) safetext.Safe { return safetext.Safe("[" + raw + "]") }
	f := NewFrame(WithEscaper(upper))
	f.Append("a")
	f.SafeAppend("b")
	if got := f.String(); got != "[a]b" {
		t.Errorf("String() = %q, want %q", got, "[a]b")
	}
}

func TestFrameAppendPointerText(t *testing.T) {
	safe := safetext.Safe("<i>safe</i>")
	raw := safetext.Unsafe("<b>")

	f := NewFrame()
	if err := f.Append(&safe); err != nil {
		t.Fatalf("Append(*Safe) error: %v", err)
	}
	if err := f.Append(&raw); err != nil {
		t.Fatalf("Append(*Unsafe) error: %v", err)
	}
	if got, want := f.String(), "<i>safe</i>&lt;b&gt;"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	unsafeFrame := NewFrameFrom(safetext.Unsafe(""))
	if err := unsafeFrame.Append(&raw); err != nil {
		t.Fatalf("Append(*Unsafe) on unsafe frame error: %v", err)
	}
	if got := unsafeFrame.String(); got != "<b>" {
		t.Errorf("unsafe frame String() = %q, want %q", got, "<b>")
	}
}
