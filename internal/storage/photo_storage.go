package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/h2non/filetype"

	"github.com/agrox/fieldops/internal/i18n"
	"github.com/agrox/fieldops/internal/pkg/apperror"
)

// Image types accepted from devices.
var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/heif": true,
	"image/bmp":  true,
}

// Photo is an uploaded image held in memory until it is written to a bucket.
type Photo struct {
	Data        []byte
	ContentType string
	Ext         string
}

// Size returns the photo size in bytes.
func (p *Photo) Size() int64 {
	return int64(len(p.Data))
}

// Reader returns a fresh reader over the photo bytes.
func (p *Photo) Reader() io.Reader {
	return bytes.NewReader(p.Data)
}

// PhotoIntake checks uploads before anything reaches the backend.
type PhotoIntake struct {
	maxUploadBytes int64
}

// NewPhotoIntake limits uploads to maxUploadMB megabytes.
func NewPhotoIntake(maxUploadMB int64) *PhotoIntake {
	if maxUploadMB <= 0 {
		maxUploadMB = 10
	}
	return &PhotoIntake{maxUploadBytes: maxUploadMB * 1024 * 1024}
}

// MaxBytes returns the upload limit.
func (s *PhotoIntake) MaxBytes() int64 {
	return s.maxUploadBytes
}

// Read loads an upload, rejecting files over the limit and anything whose
// content is not an image regardless of the declared name or type.
func (s *PhotoIntake) Read(ctx context.Context, originalName string, r io.Reader) (*Photo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	limitedReader := io.LimitedReader{R: r, N: s.maxUploadBytes + 1}
	data, err := io.ReadAll(&limitedReader)
	if err != nil {
		return nil, fmt.Errorf("storage: read upload: %w", err)
	}
	if int64(len(data)) > s.maxUploadBytes {
		return nil, apperror.Validation(i18n.KeyPhotoTooLarge)
	}

	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown || !allowedMimeTypes[kind.MIME.Value] {
		return nil, apperror.Validation(i18n.KeyInvalidImage)
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(sanitizeFilename(originalName))), ".")
	if ext == "" {
		ext = kind.Extension
	}

	return &Photo{Data: data, ContentType: kind.MIME.Value, Ext: ext}, nil
}

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func randomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = suffixAlphabet[rand.IntN(len(suffixAlphabet))]
	}
	return string(b)
}

func withExt(name, ext string) string {
	if ext == "" {
		return name
	}
	return name + "." + ext
}

// DamageObjectPath is {unixMillis}-{6 random chars}.{ext}.
func DamageObjectPath(now time.Time, ext string) string {
	return withExt(strconv.FormatInt(now.UnixMilli(), 10)+"-"+randomSuffix(6), ext)
}

// MaintenanceObjectPath is {userID}/{unixMillis}.{ext}.
func MaintenanceObjectPath(userID uuid.UUID, now time.Time, ext string) string {
	return withExt(userID.String()+"/"+strconv.FormatInt(now.UnixMilli(), 10), ext)
}

// FuelObjectPath is {token}-{unixMillis}.{ext}.
func FuelObjectPath(token string, now time.Time, ext string) string {
	return withExt(sanitizeFilename(token)+"-"+strconv.FormatInt(now.UnixMilli(), 10), ext)
}

// sanitizeFilename strips path components and traversal sequences.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	if name == "" || name == "." {
		name = "photo"
	}
	return name
}
