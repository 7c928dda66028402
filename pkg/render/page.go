package render

import (
	"context"

	"github.com/vango-dev/viewbuf/pkg/buffer"
	"github.com/vango-dev/viewbuf/pkg/safetext"
	"github.com/vango-dev/viewbuf/pkg/view"
)

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Title is the page title
	Title string

	// Lang is the language attribute for the html element.
	// Defaults to RendererConfig.DefaultLang.
	Lang string

	// Meta contains meta tags for the page
	Meta []MetaTag

	// Links contains link tags (favicon, preload, etc.)
	Links []LinkTag

	// StyleSheets contains paths to external stylesheets
	StyleSheets []string

	// Scripts contains script tags. Deferred and async scripts go in the
	// head, the rest at the end of the body.
	Scripts []ScriptTag

	// Body renders the page content.
	Body view.Template

	// Layout, when set, wraps Body. Body is captured first and the layout
	// yields it with vc.Yield("").
	Layout view.Template
}

// MetaTag represents a meta element in the document head.
type MetaTag struct {
	Name      string // name attribute
	Content   string // content attribute
	Property  string // property attribute (for OpenGraph)
	HTTPEquiv string // http-equiv attribute
}

// LinkTag represents a link element in the document head.
type LinkTag struct {
	Rel  string // rel attribute
	Href string // href attribute
	Type string // type attribute
}

// ScriptTag represents a script element.
type ScriptTag struct {
	Src    string // src attribute
	Defer  bool   // defer attribute
	Async  bool   // async attribute
	Module bool   // type="module"
}

// pageWriter keeps the first append error so document assembly reads
// top to bottom.
type pageWriter struct {
	out buffer.Appender
	el  Elements
	err error
}

func (w *pageWriter) safe(v any) {
	if w.err == nil {
		w.err = w.out.SafeAppend(v)
	}
}

func (w *pageWriter) tag(name string, attrs Attrs, content any) {
	if w.err != nil {
		return
	}
	html, err := w.el.ContentTag(name, attrs, content)
	if err != nil {
		w.err = err
		return
	}
	w.safe(html)
	w.safe("\n")
}

// renderDocument writes a full document to vc's output. flush is called
// after the head, after the body and at the end.
func (r *Renderer) renderDocument(ctx context.Context, vc *view.Context, page PageData, flush func()) error {
	lang := page.Lang
	if lang == "" {
		lang = r.config.DefaultLang
	}

	w := &pageWriter{out: vc.Output(), el: r.Elements()}
	w.safe("<!DOCTYPE html>\n")
	open, _ := w.el.Tag("html", Attrs{"lang": lang})
	w.safe(open)
	w.safe("\n")
	r.renderHead(w, page)
	if w.err != nil {
		return w.err
	}
	flush()

	w.safe("<body>\n")
	if w.err != nil {
		return w.err
	}
	if err := r.renderBody(ctx, vc, page); err != nil {
		return err
	}
	flush()

	for _, script := range page.Scripts {
		if !script.Defer && !script.Async {
			w.tag("script", scriptAttrs(script), nil)
		}
	}
	w.safe("</body>\n</html>\n")
	if w.err != nil {
		return w.err
	}
	flush()
	return nil
}

func (r *Renderer) renderBody(ctx context.Context, vc *view.Context, page PageData) error {
	if page.Layout == nil {
		return r.run(ctx, vc, page.Body)
	}
	body, err := vc.Capture(ctx, func(ctx context.Context) error {
		return r.run(ctx, vc, page.Body)
	})
	if err != nil {
		return err
	}
	vc.Flow().Set(view.DefaultRegion, body)
	return r.run(ctx, vc, page.Layout)
}

// renderHead renders the document head section.
func (r *Renderer) renderHead(w *pageWriter, page PageData) {
	w.safe("<head>\n")
	w.safe(`<meta charset="utf-8">` + "\n")
	w.safe(`<meta name="viewport" content="width=device-width, initial-scale=1">` + "\n")

	if page.Title != "" {
		w.tag("title", nil, page.Title)
	}

	for _, meta := range page.Meta {
		w.tag("meta", Attrs{
			"name":       nonEmpty(meta.Name),
			"property":   nonEmpty(meta.Property),
			"http-equiv": nonEmpty(meta.HTTPEquiv),
			"content":    nonEmpty(meta.Content),
		}, nil)
	}

	for _, link := range page.Links {
		w.tag("link", Attrs{
			"rel":  nonEmpty(link.Rel),
			"href": nonEmpty(link.Href),
			"type": nonEmpty(link.Type),
		}, nil)
	}

	for _, href := range page.StyleSheets {
		w.tag("link", Attrs{"rel": "stylesheet", "href": href}, nil)
	}

	for _, script := range page.Scripts {
		if script.Defer || script.Async {
			w.tag("script", scriptAttrs(script), nil)
		}
	}

	w.safe("</head>\n")
}

func scriptAttrs(script ScriptTag) Attrs {
	attrs := Attrs{
		"src":   nonEmpty(script.Src),
		"defer": script.Defer,
		"async": script.Async,
	}
	if script.Module {
		attrs["type"] = "module"
	}
	return attrs
}

// nonEmpty maps "" to nil so the attribute is skipped.
func nonEmpty(s string) any {
	if s == "" {
		return nil
	}
	return safetext.Unsafe(s)
}
