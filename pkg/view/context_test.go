package view

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vango-dev/viewbuf/pkg/buffer"
	"github.com/vango-dev/viewbuf/pkg/safetext"
)

type recordingTracer struct {
	noop.Tracer
	spans []string
}

func (r *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	r.spans = append(r.spans, name)
	return r.Tracer.Start(ctx, name, opts...)
}

func TestContextLazyOutputBuffer(t *testing.T) {
	vc := NewContext()
	if err := vc.Append("<x>"); err != nil {
		t.Fatal(err)
	}
	b := vc.OutputBuffer()
	if b == nil {
		t.Fatal("OutputBuffer() = nil after first write")
	}
	if b.String() != "&lt;x&gt;" {
		t.Errorf("content = %q", b.String())
	}
}

func TestSetOutputBufferReplacesInstalledBuffer(t *testing.T) {
	vc := NewContext()
	original := vc.OutputBuffer()
	held := original

	next := buffer.NewFromString("next")
	vc.SetOutputBuffer(next)

	if vc.OutputBuffer() != original {
		t.Error("SetOutputBuffer should keep the installed buffer object")
	}
	if held.String() != "next" {
		t.Errorf("holder of old buffer sees %q, want %q", held.String(), "next")
	}

	vc.SetOutputBuffer(vc.OutputBuffer())
	if held.String() != "next" {
		t.Error("self replace changed content")
	}
}

func TestSetOutputBufferInstallsWhenStreaming(t *testing.T) {
	vc := NewContext()
	vc.StreamTo(vc.NewStreaming(nil))
	if vc.OutputBuffer() != nil {
		t.Fatal("OutputBuffer() should be nil while streaming")
	}
	b := buffer.New()
	vc.SetOutputBuffer(b)
	if vc.OutputBuffer() != b {
		t.Error("SetOutputBuffer should install the buffer when none is installed")
	}
}

func TestCaptureOnOutputBuffer(t *testing.T) {
	tracer := &recordingTracer{}
	vc := NewContext(WithTracer(tracer))
	vc.SafeAppend("<main>")

	got, err := vc.Capture(context.Background(), func(ctx context.Context) error {
		return vc.Append("a < b")
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != "a &lt; b" {
		t.Errorf("Capture = %q", got)
	}
	if s := vc.OutputBuffer().String(); s != "<main>" {
		t.Errorf("capture leaked into output: %q", s)
	}
	if len(tracer.spans) != 1 || tracer.spans[0] != "viewbuf.capture" {
		t.Errorf("spans = %v", tracer.spans)
	}
}

func TestCaptureWhileStreamingUsesTransientBuffer(t *testing.T) {
	var streamed []string
	vc := NewContext()
	stream := vc.NewStreaming(func(s string) error {
		streamed = append(streamed, s)
		return nil
	})
	vc.StreamTo(stream)

	vc.Append("before")
	got, err := vc.Capture(context.Background(), func(ctx context.Context) error {
		if vc.OutputBuffer() == nil {
			t.Error("capture should render into an OutputBuffer")
		}
		return vc.Append("<inside>")
	})
	if err != nil {
		t.Fatal(err)
	}
	vc.Append("after")

	if got != "&lt;inside&gt;" {
		t.Errorf("Capture = %q", got)
	}
	if vc.Output() != stream {
		t.Error("stream should be restored after capture")
	}
	if strings.Join(streamed, "|") != "before|after" {
		t.Errorf("streamed = %q", streamed)
	}
}

func TestCaptureErrorRestoresOutput(t *testing.T) {
	vc := NewContext()
	vc.Append("x")
	boom := errors.New("boom")
	_, err := vc.Capture(context.Background(), func(context.Context) error {
		vc.Append("lost")
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if vc.OutputBuffer().Depth() != 1 || vc.OutputBuffer().String() != "x" {
		t.Errorf("output after failed capture: %q", vc.OutputBuffer().String())
	}
}

func TestContentForAndLayoutFor(t *testing.T) {
	ctx := context.Background()
	vc := NewContext()

	for _, part := range []string{"<one>", "<two>"} {
		if err := vc.ContentFor(ctx, "sidebar", func(context.Context) error {
			return vc.Append(part)
		}); err != nil {
			t.Fatal(err)
		}
	}
	vc.Flow().Set(DefaultRegion, safetext.Safe("<body>"))

	if got := vc.LayoutFor("sidebar"); got != "&lt;one&gt;&lt;two&gt;" {
		t.Errorf("LayoutFor(sidebar) = %q", got)
	}
	if got := vc.LayoutFor(""); got != "<body>" {
		t.Errorf("LayoutFor(\"\") = %q", got)
	}

	if err := vc.Yield(""); err != nil {
		t.Fatal(err)
	}
	if got := vc.OutputBuffer().String(); got != "<body>" {
		t.Errorf("Yield wrote %q", got)
	}
}

func TestContextEscaperReachesBuffersAndFlow(t *testing.T) {
	bracket := func(raw string) safetext.Safe { return safetext.Safe("[" + raw + "]") }
	vc := NewContext(WithEscaper(bracket))

	vc.Append("a")
	vc.Flow().Set("r", safetext.Unsafe("b"))

	if got := vc.OutputBuffer().String(); got != "[a]" {
		t.Errorf("buffer = %q", got)
	}
	if got := vc.LayoutFor("r"); got != "[b]" {
		t.Errorf("flow = %q", got)
	}
}
