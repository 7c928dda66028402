package view

import (
	"sort"

	"github.com/vango-dev/viewbuf/pkg/safetext"
)

// DefaultRegion is the region a layout yields when no name is given.
const DefaultRegion = "layout"

// Flow stores named, already rendered regions. Values are always kept in
// their escaped form; unsafe input is escaped on the way in.
type Flow struct {
	content map[string]safetext.Safe
	escaper safetext.Escaper
}

// NewFlow returns an empty Flow. A nil escaper means safetext.HTMLEscape.
func NewFlow(escaper safetext.Escaper) *Flow {
	if escaper == nil {
		escaper = safetext.HTMLEscape
	}
	return &Flow{
		content: make(map[string]safetext.Safe),
		escaper: escaper,
	}
}

// Get returns the region stored under name, or "" if there is none.
func (f *Flow) Get(name string) safetext.Safe {
	return f.content[name]
}

// Set replaces the region stored under name.
func (f *Flow) Set(name string, value safetext.Text) {
	f.content[name] = safetext.Escape(f.escaper, value)
}

// Append adds value to the end of the region stored under name.
func (f *Flow) Append(name string, value safetext.Text) {
	f.content[name] += safetext.Escape(f.escaper, value)
}

// Has reports whether a region was stored under name.
func (f *Flow) Has(name string) bool {
	_, ok := f.content[name]
	return ok
}

// Names returns the stored region names in sorted order.
func (f *Flow) Names() []string {
	names := make([]string, 0, len(f.content))
	for name := range f.content {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
