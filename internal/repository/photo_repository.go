package repository

import (
	"context"
	"fmt"

	"github.com/agrox/fieldops/internal/backend"
	"github.com/agrox/fieldops/internal/probe"
	"github.com/agrox/fieldops/internal/storage"
)

// PhotoRepository stores photos in whichever bucket candidate exists.
type PhotoRepository struct {
	blobs   backend.BlobStore
	session *probe.Session
	res     probe.Resource
}

// NewPhotoRepository creates a repository over one bucket resource.
func NewPhotoRepository(blobs backend.BlobStore, session *probe.Session, res probe.Resource) *PhotoRepository {
	return &PhotoRepository{blobs: blobs, session: session, res: res}
}

// Upload writes the photo at path and returns the bucket it landed in.
func (r *PhotoRepository) Upload(ctx context.Context, path string, photo *storage.Photo, upsert bool) (string, error) {
	cand, _, err := probe.Do(ctx, r.session, r.res, func(ctx context.Context, c probe.Candidate) (probe.Candidate, error) {
		err := r.blobs.Upload(ctx, backend.Object{
			Bucket:      c.Target,
			Path:        path,
			Body:        photo.Reader(),
			Size:        photo.Size(),
			ContentType: photo.ContentType,
			Upsert:      upsert,
		})
		return c, err
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", r.res.Name, err)
	}
	return cand.Target, nil
}

// PublicURL resolves a stored path against the active bucket without a remote call.
func (r *PhotoRepository) PublicURL(path string) string {
	c, ok := probe.ResolveActive(r.session, r.res)
	if !ok || path == "" {
		return ""
	}
	return r.blobs.PublicURL(c.Target, path)
}

// Check probes the buckets without writing when the store supports it.
func (r *PhotoRepository) Check(ctx context.Context) error {
	checker, ok := r.blobs.(backend.BucketChecker)
	if !ok {
		return nil
	}
	_, _, err := probe.Do(ctx, r.session, r.res, func(ctx context.Context, c probe.Candidate) (struct{}, error) {
		return struct{}{}, checker.CheckBucket(ctx, c.Target)
	})
	return err
}
