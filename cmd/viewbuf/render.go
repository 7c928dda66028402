package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"
	"github.com/xyproto/env/v2"

	"github.com/vango-dev/viewbuf/internal/config"
	"github.com/vango-dev/viewbuf/internal/site"
	"github.com/vango-dev/viewbuf/pkg/render"
)

func renderCmd(a *app) *cobra.Command {
	var (
		stream bool
		bucket string
	)

	cmd := &cobra.Command{
		Use:   "render [page]",
		Short: "Render a page to stdout or S3",
		Long: `Render one demo page.

By default the page is rendered into memory and written once. With --stream
fragments are written as they are produced. With --s3-bucket the page is
uploaded instead of printed.

Examples:
  viewbuf render
  viewbuf render about --stream
  viewbuf render stream --s3-bucket=my-pages`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "index"
			if len(args) == 1 {
				name = args[0]
			}
			if bucket != "" {
				a.cfg.S3.Bucket = bucket
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runRender(ctx, a, name, stream)
		},
	}

	cmd.Flags().BoolVar(&stream, "stream", false, "Stream fragments as they are rendered")
	cmd.Flags().StringVar(&bucket, "s3-bucket", "", "Publish to this S3 bucket (default from config)")

	return cmd
}

func runRender(ctx context.Context, a *app, name string, stream bool) error {
	if a.cfg.S3.Bucket != "" {
		p := &site.Publisher{
			Client:  newS3Client(a.cfg.S3),
			Bucket:  a.cfg.S3.Bucket,
			Prefix:  a.cfg.S3.Prefix,
			MaxSize: a.cfg.S3.MaxSize,
		}
		key, err := p.Publish(ctx, a.renderer, a.site, name)
		if err != nil {
			return err
		}
		success(a.stderr, "published s3://%s/%s", a.cfg.S3.Bucket, key)
		return nil
	}

	page, err := a.site.Page(name)
	if err != nil {
		return err
	}
	if stream {
		sr := render.NewStreamingRenderer(a.stdout, a.renderer.Config())
		return sr.RenderPage(ctx, page)
	}
	return a.renderer.RenderPage(ctx, a.stdout, page)
}

// newS3Client builds a client from config and the standard AWS_*
// credential variables.
func newS3Client(cfg config.S3Config) *s3.Client {
	opts := s3.Options{
		Region: cfg.Region,
		Credentials: aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
			return aws.Credentials{
				AccessKeyID:     env.Str("AWS_ACCESS_KEY_ID"),
				SecretAccessKey: env.Str("AWS_SECRET_ACCESS_KEY"),
				SessionToken:    env.Str("AWS_SESSION_TOKEN"),
				Source:          "viewbuf-env",
			}, nil
		}),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}
	return s3.New(opts)
}
