// Package safetext tags rendered strings with their escaping state.
//
// Every fragment produced during rendering is either Safe (already escaped,
// emitted verbatim) or Unsafe (must pass through an Escaper before it is
// emitted). Text is a sealed sum type over those two variants, so each site
// that appends content has to decide explicitly what to do with each case.
//
//	t, _ := safetext.Coerce(userInput)       // Unsafe unless already tagged
//	out := safetext.Escape(safetext.HTMLEscape, t)
//
// Escape never escapes a Safe value a second time.
package safetext
