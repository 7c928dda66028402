package errors

// Registered error codes.
const (
	CodeTypeConversion = "VB001"
	CodeStackUnderflow = "VB002"
	CodeSinkFailure    = "VB003"
	CodeCaptureLost    = "VB004"

	CodeInvalidConfig = "VB010"
	CodeConfigRead    = "VB011"

	CodePublishFailed  = "VB020"
	CodeTemplateFailed = "VB021"
	CodeUnknownPage    = "VB022"
)

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Buffer Errors (VB001-VB009)
	// ============================================

	CodeTypeConversion: {
		Category:   CategoryRuntime,
		Message:    "Value has no display form",
		Suggestion: "Convert the value to a string, number or fmt.Stringer before appending",
	},
	CodeStackUnderflow: {
		Category:   CategoryRuntime,
		Message:    "Cannot pop the root frame",
		Suggestion: "Pair every Pop with an earlier Push, or use Capture",
	},
	CodeSinkFailure: {
		Category: CategoryIO,
		Message:  "Sink rejected a fragment",
	},
	CodeCaptureLost: {
		Category:   CategoryRuntime,
		Message:    "Capture frame was replaced during the capture",
		Suggestion: "Pop only frames you pushed inside the captured block",
	},

	// ============================================
	// Config Errors (VB010-VB019)
	// ============================================

	CodeInvalidConfig: {
		Category:   CategoryConfig,
		Message:    "Invalid configuration",
		Suggestion: "Check viewbuf.yaml and VIEWBUF_* environment variables",
	},
	CodeConfigRead: {
		Category: CategoryConfig,
		Message:  "Could not read configuration file",
	},

	// ============================================
	// Render Errors (VB020-VB029)
	// ============================================

	CodePublishFailed: {
		Category: CategoryIO,
		Message:  "Publishing rendered output failed",
	},
	CodeTemplateFailed: {
		Category: CategoryRuntime,
		Message:  "Template failed to render",
	},
	CodeUnknownPage: {
		Category:   CategoryCLI,
		Message:    "Unknown page",
		Suggestion: "Run `viewbuf build` to see the available pages",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
