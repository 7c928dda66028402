package config

import (
	stderrors "errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/vango-dev/viewbuf/internal/errors"
	"github.com/vango-dev/viewbuf/pkg/safetext"
)

const (
	// ConfigName is the file name (without extension) searched for when no
	// explicit path is given.
	ConfigName = "viewbuf"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "VIEWBUF"
)

// Config represents the complete viewbuf configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Render  RenderConfig  `mapstructure:"render"`
	Stream  StreamConfig  `mapstructure:"stream"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Tracing TracingConfig `mapstructure:"tracing"`
	S3      S3Config      `mapstructure:"s3"`
	Log     LogConfig     `mapstructure:"log"`
	Build   BuildConfig   `mapstructure:"build"`

	// file is the config file that was read, if any.
	file string
}

// ServerConfig controls the serve command.
type ServerConfig struct {
	// Addr is the listen address (default: ":8080")
	Addr string `mapstructure:"addr"`
	// ReadHeaderTimeout bounds how long a client may take to send headers
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	// ShutdownTimeout is how long in-flight renders get on shutdown
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// RenderConfig controls the renderer.
type RenderConfig struct {
	// DefaultLang is the html lang attribute when a page sets none
	DefaultLang string `mapstructure:"default_lang"`
	// Escaper selects the escaping function: "html" or "attr"
	Escaper string `mapstructure:"escaper"`
}

// StreamConfig controls streaming output.
type StreamConfig struct {
	// AutoFlush flushes the response after every fragment
	AutoFlush bool `mapstructure:"auto_flush"`
	// WebSocketWriteTimeout bounds each websocket frame write (0 = none)
	WebSocketWriteTimeout time.Duration `mapstructure:"websocket_write_timeout"`
}

// MetricsConfig controls Prometheus metrics.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
	// Path is where the serve command exposes metrics
	Path string `mapstructure:"path"`
}

// TracingConfig controls OpenTelemetry spans.
type TracingConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	TracerName string `mapstructure:"tracer_name"`
}

// S3Config controls publishing rendered pages to S3.
type S3Config struct {
	// Bucket enables publishing when set
	Bucket string `mapstructure:"bucket"`
	Region string `mapstructure:"region"`
	// Endpoint overrides the S3 endpoint, for MinIO and similar
	Endpoint string `mapstructure:"endpoint"`
	// Prefix is prepended to every object key
	Prefix string `mapstructure:"prefix"`
	// MaxSize caps a single page in bytes (0 = unlimited)
	MaxSize int `mapstructure:"max_size"`
}

// LogConfig controls logging.
type LogConfig struct {
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// Format is "text" or "json" (default: "text")
	Format string `mapstructure:"format"`
}

// BuildConfig controls the build command.
type BuildConfig struct {
	// Out is the output directory (default: "dist")
	Out string `mapstructure:"out"`
	// Concurrency is the number of pages rendered in parallel
	Concurrency int `mapstructure:"concurrency"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   10 * time.Second,
		},
		Render: RenderConfig{
			DefaultLang: "en",
			Escaper:     "html",
		},
		Stream: StreamConfig{
			AutoFlush:             false,
			WebSocketWriteTimeout: 5 * time.Second,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "viewbuf",
			Path:      "/metrics",
		},
		Tracing: TracingConfig{
			Enabled:    true,
			TracerName: "viewbuf",
		},
		S3: S3Config{
			Region:  "us-east-1",
			Prefix:  "pages/",
			MaxSize: 10 << 20, // 10MB
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Build: BuildConfig{
			Out:         "dist",
			Concurrency: 4,
		},
	}
}

// SetDefaults registers default values with v. Every key needs a default
// for environment overrides to be picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("server.addr", defaults.Server.Addr)
	v.SetDefault("server.read_header_timeout", defaults.Server.ReadHeaderTimeout)
	v.SetDefault("server.shutdown_timeout", defaults.Server.ShutdownTimeout)

	v.SetDefault("render.default_lang", defaults.Render.DefaultLang)
	v.SetDefault("render.escaper", defaults.Render.Escaper)

	v.SetDefault("stream.auto_flush", defaults.Stream.AutoFlush)
	v.SetDefault("stream.websocket_write_timeout", defaults.Stream.WebSocketWriteTimeout)

	v.SetDefault("metrics.enabled", defaults.Metrics.Enabled)
	v.SetDefault("metrics.namespace", defaults.Metrics.Namespace)
	v.SetDefault("metrics.path", defaults.Metrics.Path)

	v.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	v.SetDefault("tracing.tracer_name", defaults.Tracing.TracerName)

	v.SetDefault("s3.bucket", defaults.S3.Bucket)
	v.SetDefault("s3.region", defaults.S3.Region)
	v.SetDefault("s3.endpoint", defaults.S3.Endpoint)
	v.SetDefault("s3.prefix", defaults.S3.Prefix)
	v.SetDefault("s3.max_size", defaults.S3.MaxSize)

	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)

	v.SetDefault("build.out", defaults.Build.Out)
	v.SetDefault("build.concurrency", defaults.Build.Concurrency)
}

// New returns a viper instance with defaults and environment bindings in
// place. Callers may bind flags to it before calling Decode.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configuration. An empty path searches the working directory
// for viewbuf.{yaml,json,toml,...} and carries on with defaults when none
// exists; an explicit path must be readable.
func Load(path string) (*Config, error) {
	v := New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !stderrors.As(err, &notFound) {
			return nil, errors.New(errors.CodeConfigRead).
				WithDetailf("reading %s", describe(path)).
				Wrap(err)
		}
	}
	return Decode(v)
}

// Decode unmarshals v into a Config and validates it.
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.New(errors.CodeConfigRead).Wrap(err)
	}
	cfg.file = v.ConfigFileUsed()

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, errors.New(errors.CodeInvalidConfig).
			WithDetail(ValidationErrors(errs).Error()).
			Wrap(ValidationErrors(errs))
	}
	return &cfg, nil
}

// File returns the config file that was read, or "" when running on
// defaults and environment only.
func (c *Config) File() string {
	return c.file
}

// Escaper returns the configured escaping function.
func (c *Config) Escaper() safetext.Escaper {
	if c.Render.Escaper == "attr" {
		return safetext.AttrEscape
	}
	return safetext.HTMLEscape
}

// SlogLevel converts Log.Level to a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds a logger writing to w in the configured format.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func describe(path string) string {
	if path == "" {
		return ConfigName + " config"
	}
	return path
}
