package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/xyproto/env/v2"

	"github.com/vango-dev/viewbuf/internal/config"
	"github.com/vango-dev/viewbuf/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if env.Str("NO_COLOR") != "" {
		errors.DisableColors()
	}

	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		errors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		cfgFile string
		a       = &app{stdout: stdout, stderr: stderr}
	)

	rootCmd := &cobra.Command{
		Use:   "viewbuf",
		Short: "Render pages through buffered and streaming outputs",
		Long: `viewbuf renders HTML pages with nested output buffers.

Pages can be rendered to stdout, built to a directory, published to S3
or served over HTTP, where they are streamed chunk by chunk.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if env.Bool("VIEWBUF_DEBUG") {
				cfg.Log.Level = "debug"
			}
			a.init(cfg)
			return nil
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./viewbuf.yaml)")

	rootCmd.AddCommand(
		renderCmd(a),
		buildCmd(a),
		serveCmd(a),
		versionCmd(),
	)
	return rootCmd
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}
