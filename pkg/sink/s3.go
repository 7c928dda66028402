package sink

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	vberrors "github.com/vango-dev/viewbuf/internal/errors"
)

// DefaultContentType is the content type of published pages.
const DefaultContentType = "text/html; charset=utf-8"

// PutObjectAPI is the subset of *s3.Client used by S3.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3 collects streamed fragments and uploads them as one object.
// S3 needs the full length up front, so fragments are held in memory until
// Commit.
type S3 struct {
	client      PutObjectAPI
	bucket      string
	key         string
	contentType string
	maxSize     int
	buf         bytes.Buffer
}

// NewS3 creates an S3 sink for bucket/key. maxSize limits the object size
// in bytes (0 = no limit).
func NewS3(client PutObjectAPI, bucket, key string, maxSize int) *S3 {
	return &S3{
		client:      client,
		bucket:      bucket,
		key:         key,
		contentType: DefaultContentType,
		maxSize:     maxSize,
	}
}

// WithContentType overrides DefaultContentType.
func (s *S3) WithContentType(ct string) *S3 {
	s.contentType = ct
	return s
}

// Sink appends text to the pending object.
func (s *S3) Sink(text string) error {
	if s.maxSize > 0 && s.buf.Len()+len(text) > s.maxSize {
		return fmt.Errorf("object %s exceeds %d bytes", s.key, s.maxSize)
	}
	s.buf.WriteString(text)
	return nil
}

// Len returns the number of pending bytes.
func (s *S3) Len() int {
	return s.buf.Len()
}

// Commit uploads the collected fragments and resets the sink.
func (s *S3) Commit(ctx context.Context) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(s.buf.Bytes()),
		ContentType: aws.String(s.contentType),
		Metadata: map[string]string{
			"render-time": time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return vberrors.New(vberrors.CodePublishFailed).
			WithDetailf("s3://%s/%s", s.bucket, s.key).
			Wrap(err)
	}
	s.buf.Reset()
	return nil
}
