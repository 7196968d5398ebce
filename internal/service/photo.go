package service

import (
	"context"
	"io"

	"github.com/agrox/fieldops/internal/storage"
)

// PhotoUpload is a file as it arrived from the device.
type PhotoUpload struct {
	Name string
	Body io.Reader
}

// PhotoUploader is the bucket side of a module.
type PhotoUploader interface {
	Upload(ctx context.Context, path string, photo *storage.Photo, upsert bool) (string, error)
	PublicURL(path string) string
}

// readPhoto runs the intake checks; a nil upload yields a nil photo.
func readPhoto(ctx context.Context, intake *storage.PhotoIntake, up *PhotoUpload) (*storage.Photo, error) {
	if up == nil || up.Body == nil {
		return nil, nil
	}
	return intake.Read(ctx, up.Name, up.Body)
}
