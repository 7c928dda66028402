package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "build.concurrency")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidLogFormats returns the list of valid log formats
func ValidLogFormats() []string {
	return []string{"text", "json"}
}

// ValidEscapers returns the list of valid escaper names
func ValidEscapers() []string {
	return []string{"html", "attr"}
}

// Validate checks the Config for invalid values and returns all validation
// errors found.
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	if c.Server.Addr == "" {
		errs = append(errs, ValidationError{"server.addr", c.Server.Addr, "must not be empty"})
	}
	if c.Server.ReadHeaderTimeout < 0 {
		errs = append(errs, ValidationError{"server.read_header_timeout", c.Server.ReadHeaderTimeout, "must not be negative"})
	}
	if c.Server.ShutdownTimeout < 0 {
		errs = append(errs, ValidationError{"server.shutdown_timeout", c.Server.ShutdownTimeout, "must not be negative"})
	}

	if c.Render.DefaultLang == "" {
		errs = append(errs, ValidationError{"render.default_lang", c.Render.DefaultLang, "must not be empty"})
	}
	if !slices.Contains(ValidEscapers(), c.Render.Escaper) {
		errs = append(errs, ValidationError{"render.escaper", c.Render.Escaper,
			fmt.Sprintf("must be one of: %s", strings.Join(ValidEscapers(), ", "))})
	}

	if c.Stream.WebSocketWriteTimeout < 0 {
		errs = append(errs, ValidationError{"stream.websocket_write_timeout", c.Stream.WebSocketWriteTimeout, "must not be negative"})
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		errs = append(errs, ValidationError{"metrics.path", c.Metrics.Path, "must start with /"})
	}

	if c.S3.Bucket != "" && c.S3.Region == "" {
		errs = append(errs, ValidationError{"s3.region", c.S3.Region, "is required when s3.bucket is set"})
	}
	if c.S3.MaxSize < 0 {
		errs = append(errs, ValidationError{"s3.max_size", c.S3.MaxSize, "must not be negative"})
	}

	if !slices.Contains(ValidLogLevels(), c.Log.Level) {
		errs = append(errs, ValidationError{"log.level", c.Log.Level,
			fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", "))})
	}
	if !slices.Contains(ValidLogFormats(), c.Log.Format) {
		errs = append(errs, ValidationError{"log.format", c.Log.Format,
			fmt.Sprintf("must be one of: %s", strings.Join(ValidLogFormats(), ", "))})
	}

	if c.Build.Out == "" {
		errs = append(errs, ValidationError{"build.out", c.Build.Out, "must not be empty"})
	}
	if c.Build.Concurrency < 1 {
		errs = append(errs, ValidationError{"build.concurrency", c.Build.Concurrency, "must be at least 1"})
	}

	return errs
}
