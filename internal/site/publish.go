package site

import (
	"context"
	"path"

	"github.com/vango-dev/viewbuf/pkg/render"
	"github.com/vango-dev/viewbuf/pkg/sink"
)

// Publisher uploads rendered pages to an S3 bucket.
type Publisher struct {
	Client  sink.PutObjectAPI
	Bucket  string
	Prefix  string
	MaxSize int
}

// Key returns the object key for a page.
func (p *Publisher) Key(name string) string {
	return path.Join(p.Prefix, name+".html")
}

// Publish streams the named page into an S3 sink and commits it. Nothing is
// uploaded when rendering fails.
func (p *Publisher) Publish(ctx context.Context, r *render.Renderer, s *Site, name string) (string, error) {
	page, err := s.Page(name)
	if err != nil {
		return "", err
	}
	if name == "" {
		name = "index"
	}

	key := p.Key(name)
	obj := sink.NewS3(p.Client, p.Bucket, key, p.MaxSize)
	if err := r.StreamPage(ctx, obj.Sink, page); err != nil {
		return "", err
	}
	if err := obj.Commit(ctx); err != nil {
		return "", err
	}
	return key, nil
}
