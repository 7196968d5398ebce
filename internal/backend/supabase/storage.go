package supabase

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/agrox/fieldops/internal/backend"
)

// Upload runs POST /storage/v1/object/{bucket}/{path}.
func (c *Client) Upload(ctx context.Context, obj backend.Object) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/storage/v1/object/"+objectPath(obj.Bucket, obj.Path), obj.Body)
	if err != nil {
		return err
	}

	contentType := obj.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", strconv.FormatBool(obj.Upsert))
	if obj.Size > 0 {
		req.ContentLength = obj.Size
	}

	return c.do(req, nil)
}

// PublicURL returns the public object URL. It does not check that the object exists.
func (c *Client) PublicURL(bucket, path string) string {
	return c.baseURL + "/storage/v1/object/public/" + objectPath(bucket, path)
}

// CheckBucket runs GET /storage/v1/bucket/{bucket}.
func (c *Client) CheckBucket(ctx context.Context, bucket string) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/storage/v1/bucket/"+url.PathEscape(bucket), nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

func objectPath(bucket, path string) string {
	segments := strings.Split(strings.TrimLeft(path, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return url.PathEscape(bucket) + "/" + strings.Join(segments, "/")
}
