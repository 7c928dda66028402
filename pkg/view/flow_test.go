package view

import (
	"reflect"
	"testing"

	"github.com/vango-dev/viewbuf/pkg/safetext"
)

func TestFlowSetEscapesUnsafeValues(t *testing.T) {
	f := NewFlow(nil)
	f.Set("title", safetext.Unsafe("<T>"))
	f.Set("body", safetext.Safe("<p>ok</p>"))

	if got := f.Get("title"); got != "&lt;T&gt;" {
		t.Errorf("Get(title) = %q", got)
	}
	if got := f.Get("body"); got != "<p>ok</p>" {
		t.Errorf("Get(body) = %q", got)
	}
}

func TestFlowAppend(t *testing.T) {
	f := NewFlow(nil)
	f.Append("head", safetext.Safe("<meta>"))
	f.Append("head", safetext.Unsafe("&"))
	if got := f.Get("head"); got != "<meta>&amp;" {
		t.Errorf("Get(head) = %q", got)
	}
}

func TestFlowMissingRegion(t *testing.T) {
	f := NewFlow(nil)
	if f.Has("nope") {
		t.Error("Has(nope) = true")
	}
	if got := f.Get("nope"); got != "" {
		t.Errorf("Get(nope) = %q", got)
	}
}

func TestFlowNames(t *testing.T) {
	f := NewFlow(nil)
	f.Set("b", safetext.Safe(""))
	f.Set("a", safetext.Safe(""))
	if got := f.Names(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Names() = %v", got)
	}
	if !f.Has("b") {
		t.Error("empty regions still count as present")
	}
}
