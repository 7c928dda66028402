// Package render turns view templates into HTML documents.
//
// A Renderer owns no per-request state: every call creates a fresh
// view.Context, so one Renderer can serve many goroutines.
//
// # Fragments
//
//	r := render.NewRenderer(render.RendererConfig{})
//	html, err := r.RenderToString(ctx, func(ctx context.Context, vc *view.Context) error {
//	    return vc.Append(user.Name) // escaped
//	})
//
// # Layouts
//
// RenderWithLayout captures the body first and stores it in the default
// region, so the layout can place it anywhere:
//
//	html, err := r.RenderWithLayout(ctx, layout, body)
//
// where layout calls vc.Yield("").
//
// # Full Page Rendering
//
// RenderPage buffers the whole document and writes it once. It is the
// right choice when a failure must not leave a half-written response.
//
//	err := r.RenderPage(ctx, w, render.PageData{Title: "Home", Body: body})
//
// # Streaming
//
// StreamingRenderer writes fragments as they are produced and flushes
// after the head, after the body and at the end:
//
//	sr := render.NewStreamingRenderer(w, config)
//	err := sr.RenderPage(ctx, page)
//
// # Elements
//
// Tag and ContentTag build single elements with sorted, escaped attributes.
// Text content is escaped unless it is already safe.
package render
