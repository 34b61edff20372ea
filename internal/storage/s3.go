package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

// Client wraps an S3-compatible object store holding uploaded media.
// Objects are public-read; the bucket is served path-style from the
// public base (a CDN or the raw endpoint).
type Client struct {
	s3         *s3.Client
	bucket     string
	publicBase string
}

type Options struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string

	// PublicBaseURL optionally fronts the bucket for reads (CDN or
	// reverse proxy). Media URLs fall back to Endpoint when empty.
	PublicBaseURL string
}

func New(ctx context.Context, opts Options) (*Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKey,
			opts.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(opts.Endpoint)
		o.UsePathStyle = true
	})

	base := strings.TrimRight(opts.PublicBaseURL, "/")
	if base == "" {
		base = strings.TrimRight(opts.Endpoint, "/")
	}

	return &Client{
		s3:         client,
		bucket:     opts.Bucket,
		publicBase: base,
	}, nil
}

// Ping verifies the bucket is reachable. Submissions cannot be accepted
// without the media store, so the readiness probe calls this.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.s3.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.bucket),
	})
	return err
}

// NewObjectKey produces a unique storage key for an upload, grouped under
// entries/ with a timestamp prefix so listings sort chronologically.
func NewObjectKey(ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("entries/%d-%s.%s", time.Now().Unix(), uuid.NewString()[:8], ext)
}

// Upload stores an object and returns nothing; the public URL is derived
// separately via PublicURL so callers never build URLs by hand.
func (c *Client) Upload(ctx context.Context, key, contentType string, body []byte) error {
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(c.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("max-age=3600"),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}

// Delete removes a single object.
func (c *Client) Delete(ctx context.Context, key string) error {
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

// DeleteBatch removes up to 1000 objects per request using the bulk
// DeleteObjects API. Returns the first error encountered; callers treat
// storage deletion failure as non-fatal.
func (c *Client) DeleteBatch(ctx context.Context, keys []string) error {
	const maxPerRequest = 1000

	for start := 0; start < len(keys); start += maxPerRequest {
		end := min(start+maxPerRequest, len(keys))

		objects := make([]types.ObjectIdentifier, 0, end-start)
		for _, k := range keys[start:end] {
			objects = append(objects, types.ObjectIdentifier{Key: aws.String(k)})
		}

		_, err := c.s3.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(c.bucket),
			Delete: &types.Delete{
				Objects: objects,
				Quiet:   aws.Bool(true),
			},
		})
		if err != nil {
			return fmt.Errorf("delete objects batch: %w", err)
		}
	}
	return nil
}

// PublicURL returns the public path-style URL for a stored object. The
// /<bucket>/<key> shape is preserved behind a CDN so KeyFromURL can
// still recover the key for deletion.
func (c *Client) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", c.publicBase, c.bucket, key)
}

// KeyFromURL extracts the storage key from a public object URL. Returns
// false for URLs that do not match the bucket's public URL shape; callers
// skip those rather than failing the whole deletion.
func (c *Client) KeyFromURL(fileURL string) (string, bool) {
	return ExtractKey(fileURL, c.bucket)
}

// ExtractKey pattern-matches a public URL against the path-style bucket
// layout /<bucket>/<key> and returns the key.
func ExtractKey(fileURL, bucket string) (string, bool) {
	u, err := url.Parse(fileURL)
	if err != nil {
		return "", false
	}
	marker := "/" + bucket + "/"
	idx := strings.Index(u.Path, marker)
	if idx < 0 {
		return "", false
	}
	key := u.Path[idx+len(marker):]
	if key == "" {
		return "", false
	}
	return key, true
}
