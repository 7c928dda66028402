package site

import (
	"context"
	"strings"
	"testing"

	"github.com/vango-dev/viewbuf/internal/errors"
	"github.com/vango-dev/viewbuf/pkg/render"
)

func TestDemoPages(t *testing.T) {
	s := Demo()
	want := []string{"about", "index", "stream"}
	got := s.Names()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
}

func TestPageLookup(t *testing.T) {
	s := Demo()

	page, err := s.Page("")
	if err != nil {
		t.Fatalf("empty name should resolve to index: %v", err)
	}
	if page.Title != "viewbuf" {
		t.Errorf("Title = %q", page.Title)
	}

	_, err = s.Page("missing")
	if !errors.HasCode(err, errors.CodeUnknownPage) {
		t.Fatalf("expected %s, got %v", errors.CodeUnknownPage, err)
	}
}

func TestIndexRendersSidebarAndEscapes(t *testing.T) {
	r := render.NewRenderer(render.RendererConfig{})
	page, _ := Demo().Page("index")

	var sb strings.Builder
	if err := r.RenderPage(context.Background(), &sb, page); err != nil {
		t.Fatalf("RenderPage() error = %v", err)
	}
	html := sb.String()

	if !strings.Contains(html, "<main><h1>Output buffers</h1>") {
		t.Errorf("body should be yielded into main, got %q", html)
	}
	if !strings.Contains(html, "like &lt;script&gt; is escaped") {
		t.Errorf("raw text should be escaped, got %q", html)
	}
	if !strings.Contains(html, "<aside><p>Regions captured") {
		t.Errorf("sidebar region should render in aside, got %q", html)
	}
	if !strings.Contains(html, `<a href="/about">About</a>`) {
		t.Errorf("nav links missing, got %q", html)
	}
}

func TestAboutHasNoSidebar(t *testing.T) {
	r := render.NewRenderer(render.RendererConfig{})
	page, _ := Demo().Page("about")

	var sb strings.Builder
	if err := r.RenderPage(context.Background(), &sb, page); err != nil {
		t.Fatalf("RenderPage() error = %v", err)
	}
	if strings.Contains(sb.String(), "<aside>") {
		t.Errorf("about page sets no sidebar, got %q", sb.String())
	}
}

func TestStreamPageStopsOnCancel(t *testing.T) {
	r := render.NewRenderer(render.RendererConfig{})
	page, _ := Demo().Page("stream")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var sb strings.Builder
	if err := r.RenderPage(ctx, &sb, page); err == nil {
		t.Fatal("expected canceled context to stop the render")
	}
}
