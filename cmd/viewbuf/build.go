package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/vango-dev/viewbuf/internal/site"
)

func buildCmd(a *app) *cobra.Command {
	var (
		out         string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render every page to a directory",
		Long: `Render every demo page to <out>/<page>.html.

Pages are independent render passes and run in parallel.

Examples:
  viewbuf build
  viewbuf build --out=public --concurrency=8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out != "" {
				a.cfg.Build.Out = out
			}
			if concurrency > 0 {
				a.cfg.Build.Concurrency = concurrency
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runBuild(ctx, a, afero.NewOsFs())
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output directory (default from config)")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "j", 0, "Pages rendered in parallel (default from config)")

	return cmd
}

func runBuild(ctx context.Context, a *app, fs afero.Fs) error {
	files, err := site.Build(ctx, fs, a.renderer, a.site, site.BuildOptions{
		Dir:         a.cfg.Build.Out,
		Concurrency: a.cfg.Build.Concurrency,
		Logger:      a.logger,
	})
	if err != nil {
		return err
	}
	success(a.stderr, "built %d pages into %s", len(files), a.cfg.Build.Out)
	return nil
}
