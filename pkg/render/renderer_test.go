package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	vberrors "github.com/vango-dev/viewbuf/internal/errors"
	"github.com/vango-dev/viewbuf/pkg/safetext"
	"github.com/vango-dev/viewbuf/pkg/view"
)

// contentTpl renders a single element with escaped text content.
func contentTpl(tag string, content any) view.Template {
	return func(ctx context.Context, vc *view.Context) error {
		html, err := ContentTag(tag, nil, content)
		if err != nil {
			return err
		}
		return vc.SafeAppend(html)
	}
}

func TestRenderText(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(context.Background(), func(ctx context.Context, vc *view.Context) error {
		return vc.Append("Hello, World!")
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "Hello, World!" {
		t.Errorf("got %q, want %q", html, "Hello, World!")
	}
}

func TestRenderTextEscaping(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(context.Background(), contentTpl("p", "<script>alert('xss')</script>"))

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Errorf("HTML should be escaped, got %q", html)
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Errorf("should contain escaped script tag, got %q", html)
	}
}

func TestRenderMixedSafety(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(context.Background(), func(ctx context.Context, vc *view.Context) error {
		if err := vc.SafeAppend("<ul>"); err != nil {
			return err
		}
		if err := vc.Append("<li>"); err != nil {
			return err
		}
		return vc.SafeAppend("</ul>")
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "<ul>&lt;li&gt;</ul>" {
		t.Errorf("got %q", html)
	}
}

func TestRenderNilTemplate(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "" {
		t.Errorf("nil template should render nothing, got %q", html)
	}
}

func TestRenderTemplateError(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})
	boom := errors.New("boom")

	_, err := renderer.RenderToString(context.Background(), func(ctx context.Context, vc *view.Context) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
	if !vberrors.HasCode(err, vberrors.CodeTemplateFailed) {
		t.Errorf("expected %s, got %v", vberrors.CodeTemplateFailed, err)
	}
}

func TestRenderKeepsCodedErrors(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	_, err := renderer.RenderToString(context.Background(), func(ctx context.Context, vc *view.Context) error {
		return vc.Append(map[string]int{"a": 1})
	})
	if !vberrors.HasCode(err, vberrors.CodeTypeConversion) {
		t.Fatalf("expected %s, got %v", vberrors.CodeTypeConversion, err)
	}
	if vberrors.HasCode(err, vberrors.CodeTemplateFailed) {
		t.Errorf("coded error should not be rewrapped: %v", err)
	}
}

func TestRenderWithLayout(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	layout := func(ctx context.Context, vc *view.Context) error {
		if err := vc.SafeAppend("<main>"); err != nil {
			return err
		}
		if err := vc.Yield(""); err != nil {
			return err
		}
		if err := vc.SafeAppend("</main><aside>"); err != nil {
			return err
		}
		if err := vc.Yield("sidebar"); err != nil {
			return err
		}
		return vc.SafeAppend("</aside>")
	}
	body := func(ctx context.Context, vc *view.Context) error {
		if err := vc.ContentFor(ctx, "sidebar", func(ctx context.Context) error {
			return vc.Append("links & more")
		}); err != nil {
			return err
		}
		return vc.Append("<hello>")
	}

	html, err := renderer.RenderWithLayout(context.Background(), layout, body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "<main>&lt;hello&gt;</main><aside>links &amp; more</aside>"
	if html != want {
		t.Errorf("got %q, want %q", html, want)
	}
}

func TestRenderWithLayoutBodyError(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})
	layoutRan := false

	_, err := renderer.RenderWithLayout(context.Background(),
		func(ctx context.Context, vc *view.Context) error {
			layoutRan = true
			return nil
		},
		func(ctx context.Context, vc *view.Context) error {
			return fmt.Errorf("no data")
		},
	)
	if err == nil {
		t.Fatal("expected error")
	}
	if layoutRan {
		t.Error("layout should not run when the body fails")
	}
}

func TestRendererDefaults(t *testing.T) {
	cfg := NewRenderer(RendererConfig{}).Config()
	if cfg.DefaultLang != "en" {
		t.Errorf("DefaultLang = %q, want en", cfg.DefaultLang)
	}
	if cfg.Escaper == nil {
		t.Error("Escaper should default to HTMLEscape")
	}
	if cfg.Logger == nil {
		t.Error("Logger should default to slog.Default()")
	}
}

func TestRendererCustomEscaper(t *testing.T) {
	upper := func(s string) safetext.Safe {
		return safetext.Safe(strings.ToUpper(s))
	}
	renderer := NewRenderer(RendererConfig{Escaper: upper})

	html, err := renderer.RenderToString(context.Background(), func(ctx context.Context, vc *view.Context) error {
		if err := vc.SafeAppend("<p>"); err != nil {
			return err
		}
		return vc.Append("quiet")
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "<p>QUIET" {
		t.Errorf("got %q", html)
	}
}

type countingObserver struct {
	pushed   int
	popped   int
	streamed int
}

func (o *countingObserver) FramePushed(depth int) {
	o.pushed++
}

func (o *countingObserver) FramePopped(depth, length int) {
	o.popped++
}

func (o *countingObserver) Streamed(n int, escaped bool) {
	o.streamed += n
}

func TestRendererObserver(t *testing.T) {
	obs := &countingObserver{}
	renderer := NewRenderer(RendererConfig{Observer: obs})

	_, err := renderer.RenderWithLayout(context.Background(),
		func(ctx context.Context, vc *view.Context) error { return vc.Yield("") },
		contentTpl("p", "hi"),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obs.pushed != 1 || obs.popped != 1 {
		t.Errorf("pushed=%d popped=%d, want 1/1", obs.pushed, obs.popped)
	}

	var buf bytes.Buffer
	sr := NewStreamingRenderer(&buf, RendererConfig{Observer: obs})
	if err := sr.RenderPage(context.Background(), PageData{Body: contentTpl("p", "hi")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obs.streamed != buf.Len() {
		t.Errorf("streamed=%d, want %d", obs.streamed, buf.Len())
	}
}

func TestStreamPageToSink(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	var fragments []string
	err := renderer.StreamPage(context.Background(), func(text string) error {
		fragments = append(fragments, text)
		return nil
	}, PageData{Title: "Sinked", Body: contentTpl("p", "a & b")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fragments) < 3 {
		t.Fatalf("expected several fragments, got %d", len(fragments))
	}
	html := strings.Join(fragments, "")
	if !strings.Contains(html, "<p>a &amp; b</p>") {
		t.Errorf("got %q", html)
	}
}

func TestStreamPageSinkError(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})
	full := errors.New("disk full")

	err := renderer.StreamPage(context.Background(), func(string) error { return full }, PageData{})
	if !errors.Is(err, full) {
		t.Fatalf("expected sink error, got %v", err)
	}
	if !vberrors.HasCode(err, vberrors.CodeSinkFailure) {
		t.Errorf("expected %s, got %v", vberrors.CodeSinkFailure, err)
	}
}
