// Package errors provides structured, actionable errors for viewbuf.
//
// Each error carries a code from a registry, a category, a short message, an
// optional detail and suggestion, and the underlying cause. Errors with the
// same code match under errors.Is, so packages can export sentinels built
// from New and callers can test for them without comparing strings.
//
// # Error Categories
//
//   - runtime: buffer misuse while rendering (conversion, stack underflow)
//   - io: sink and publishing failures
//   - config: invalid or unreadable configuration
//   - cli: command line usage errors
//
// # Usage
//
//	err := errors.New(errors.CodeTypeConversion).
//	    WithDetail("cannot render map[string]int").
//	    Wrap(cause)
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR VB001: Value has no display form
//	//
//	//   cannot render map[string]int
//	//
//	//   Hint: Convert the value to a string, number or fmt.Stringer before appending
package errors
