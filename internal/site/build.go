package site

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/afero"

	"github.com/vango-dev/viewbuf/internal/errors"
	"github.com/vango-dev/viewbuf/pkg/render"
)

// BuildOptions configures Build.
type BuildOptions struct {
	// Dir is the output directory inside the filesystem.
	Dir string
	// Concurrency bounds the number of pages rendered at once.
	Concurrency int
	// Logger receives one line per written page.
	Logger *slog.Logger
}

// Build renders every page of s into opts.Dir as <name>.html. Each page is
// its own render pass with its own buffers, so passes run in parallel. The
// first failure cancels pages that have not started.
func Build(ctx context.Context, fs afero.Fs, r *render.Renderer, s *Site, opts BuildOptions) ([]string, error) {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if err := fs.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, errors.New(errors.CodePublishFailed).WithDetailf("creating %s", opts.Dir).Wrap(err)
	}

	names := s.Names()
	files := make([]string, len(names))

	p := pool.New().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError().
		WithMaxGoroutines(opts.Concurrency)

	for i, name := range names {
		p.Go(func(ctx context.Context) error {
			page, err := s.Page(name)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := r.RenderPage(ctx, &buf, page); err != nil {
				return err
			}

			path := filepath.Join(opts.Dir, name+".html")
			if err := afero.WriteFile(fs, path, buf.Bytes(), 0o644); err != nil {
				return errors.New(errors.CodePublishFailed).WithDetailf("writing %s", path).Wrap(err)
			}
			files[i] = path
			opts.Logger.Info("wrote page", "page", name, "path", path, "bytes", buf.Len())
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}
