// Package site holds the demo pages served and built by the viewbuf
// command, along with the build and publish steps that render them.
package site

import (
	"context"
	"fmt"
	"sort"

	"github.com/vango-dev/viewbuf/internal/errors"
	"github.com/vango-dev/viewbuf/pkg/render"
	"github.com/vango-dev/viewbuf/pkg/view"
)

// SidebarRegion is the named region pages fill for the layout's aside.
const SidebarRegion = "sidebar"

// Site is a fixed set of named pages.
type Site struct {
	pages map[string]render.PageData
}

// New returns a site with the given pages.
func New(pages map[string]render.PageData) *Site {
	return &Site{pages: pages}
}

// Names returns page names in sorted order.
func (s *Site) Names() []string {
	names := make([]string, 0, len(s.pages))
	for name := range s.pages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Page returns the named page, or a VB022 error.
func (s *Site) Page(name string) (render.PageData, error) {
	if name == "" {
		name = "index"
	}
	page, ok := s.pages[name]
	if !ok {
		return render.PageData{}, errors.New(errors.CodeUnknownPage).
			WithDetailf("no page named %q", name).
			WithSuggestion(fmt.Sprintf("Available pages: %v", s.Names()))
	}
	return page, nil
}

// Demo returns the built-in pages.
func Demo() *Site {
	styles := []string{"/assets/site.css"}
	return New(map[string]render.PageData{
		"index": {
			Title:       "viewbuf",
			StyleSheets: styles,
			Meta:        []render.MetaTag{{Name: "description", Content: "Buffered and streamed HTML output"}},
			Layout:      layout,
			Body:        indexBody,
		},
		"about": {
			Title:       "About",
			StyleSheets: styles,
			Layout:      layout,
			Body:        aboutBody,
		},
		"stream": {
			Title:       "Streaming",
			StyleSheets: styles,
			Scripts:     []render.ScriptTag{{Src: "/assets/stream.js", Defer: true}},
			Layout:      layout,
			Body:        streamBody,
		},
	})
}

func layout(ctx context.Context, vc *view.Context) error {
	w := &writer{vc: vc}
	w.safe(`<header><nav>`)
	for _, link := range []struct{ href, label string }{{"/", "Home"}, {"/about", "About"}, {"/stream", "Streaming"}} {
		w.tag("a", render.Attrs{"href": link.href}, link.label)
	}
	w.safe(`</nav></header>`)
	w.safe("<main>")
	w.yield("")
	w.safe("</main>")
	if vc.Flow().Has(SidebarRegion) {
		w.safe("<aside>")
		w.yield(SidebarRegion)
		w.safe("</aside>")
	}
	return w.err
}

func indexBody(ctx context.Context, vc *view.Context) error {
	if err := vc.ContentFor(ctx, SidebarRegion, func(ctx context.Context) error {
		html, err := render.Elements{Content: vc.Escaper()}.ContentTag("p", nil, "Regions captured in the body show up here.")
		if err != nil {
			return err
		}
		return vc.SafeAppend(html)
	}); err != nil {
		return err
	}

	w := &writer{vc: vc}
	w.tag("h1", nil, "Output buffers")
	w.tag("p", nil, "Raw text like <script> is escaped; markup from helpers is kept.")
	return w.err
}

func aboutBody(ctx context.Context, vc *view.Context) error {
	w := &writer{vc: vc}
	w.tag("h1", nil, "About")
	w.safe("<ul>")
	for _, item := range []string{"Frames nest captures", "Streams escape as they go", "Regions carry content to layouts"} {
		w.tag("li", nil, item)
	}
	w.safe("</ul>")
	return w.err
}

func streamBody(ctx context.Context, vc *view.Context) error {
	w := &writer{vc: vc}
	w.tag("h1", nil, "Streaming")
	w.safe(`<ol class="rows">`)
	for i := 1; i <= 100; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		w.tag("li", render.Attrs{"data-row": i}, fmt.Sprintf("Row %d", i))
	}
	w.safe("</ol>")
	return w.err
}

// writer keeps the first error so templates read top to bottom.
type writer struct {
	vc  *view.Context
	err error
}

func (w *writer) safe(html string) {
	if w.err == nil {
		w.err = w.vc.SafeAppend(html)
	}
}

func (w *writer) tag(name string, attrs render.Attrs, content any) {
	if w.err != nil {
		return
	}
	html, err := render.Elements{Content: w.vc.Escaper()}.ContentTag(name, attrs, content)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.vc.SafeAppend(html)
}

func (w *writer) yield(region string) {
	if w.err == nil {
		w.err = w.vc.Yield(region)
	}
}
