// Package view holds the per-render state templates share: the output
// target and the named regions (Flow) that layouts read back.
//
// A body template typically captures regions with ContentFor and a layout
// pulls them in with LayoutFor:
//
//	vc := view.NewContext()
//	body, _ := vc.Capture(ctx, renderBody)
//	vc.Flow().Set("layout", body)
//	_ = renderLayout(ctx, vc) // calls vc.LayoutFor("")
package view
