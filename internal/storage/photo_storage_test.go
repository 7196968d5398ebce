package storage

import (
	"bytes"
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrox/fieldops/internal/i18n"
	"github.com/agrox/fieldops/internal/pkg/apperror"
)

// jpegOf returns n bytes that start with a JPEG signature.
func jpegOf(n int) []byte {
	data := make([]byte, n)
	copy(data, []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00})
	return data
}

func TestPhotoIntake_Read(t *testing.T) {
	intake := NewPhotoIntake(10)

	photo, err := intake.Read(context.Background(), "vidro.JPG", bytes.NewReader(jpegOf(2*1024*1024)))
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", photo.ContentType)
	assert.Equal(t, "jpg", photo.Ext)
	assert.Equal(t, int64(2*1024*1024), photo.Size())
}

func TestPhotoIntake_ExtensionFromContent(t *testing.T) {
	intake := NewPhotoIntake(1)

	photo, err := intake.Read(context.Background(), "", bytes.NewReader(jpegOf(64)))
	require.NoError(t, err)
	assert.Equal(t, "jpg", photo.Ext)
}

func TestPhotoIntake_Rejects(t *testing.T) {
	intake := NewPhotoIntake(1)

	_, err := intake.Read(context.Background(), "big.jpg", bytes.NewReader(jpegOf(1024*1024+1)))
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, i18n.KeyPhotoTooLarge, appErr.Key)

	_, err = intake.Read(context.Background(), "fake.jpg", bytes.NewReader([]byte("%PDF-1.7 not an image")))
	appErr, ok = apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, i18n.KeyInvalidImage, appErr.Key)
}

func TestObjectPaths(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	user := uuid.MustParse("6f1c2a7e-0d5b-4c8e-9a51-2b7f3e4d5c6a")

	assert.Regexp(t, regexp.MustCompile(`^1700000000123-[a-z0-9]{6}\.jpg$`), DamageObjectPath(now, "jpg"))
	assert.Equal(t, "6f1c2a7e-0d5b-4c8e-9a51-2b7f3e4d5c6a/1700000000123.png", MaintenanceObjectPath(user, now, "png"))
	assert.Equal(t, "123456789-1700000000123.jpg", FuelObjectPath("123456789", now, "jpg"))
	assert.Equal(t, "123456789-1700000000123", FuelObjectPath("123456789", now, ""))
}
