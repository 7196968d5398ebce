package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agrox/fieldops/internal/i18n"
	"github.com/agrox/fieldops/internal/models"
	"github.com/agrox/fieldops/internal/pkg/apperror"
	"github.com/agrox/fieldops/internal/storage"
	"github.com/agrox/fieldops/internal/validation"
)

type DamageRepository interface {
	ListByOwner(ctx context.Context, owner uuid.UUID) ([]models.DamageReport, error)
	Create(ctx context.Context, owner uuid.UUID, description, photoURL string) (*models.DamageReport, error)
}

type DamageService struct {
	repo          DamageRepository
	photos        PhotoUploader
	intake        *storage.PhotoIntake
	photoRequired bool
	now           func() time.Time
}

func NewDamageService(repo DamageRepository, photos PhotoUploader, intake *storage.PhotoIntake, photoRequired bool) *DamageService {
	return &DamageService{
		repo:          repo,
		photos:        photos,
		intake:        intake,
		photoRequired: photoRequired,
		now:           time.Now,
	}
}

// DamageInput is a damage report as submitted.
type DamageInput struct {
	Description string
	Photo       *PhotoUpload
}

// Submit validates, uploads the photo and stores the report with its public URL.
func (s *DamageService) Submit(ctx context.Context, owner uuid.UUID, in DamageInput) (*models.DamageReport, error) {
	description, err := validation.Text(in.Description, i18n.KeyDamageDescriptionRequired, validation.MaxDescriptionLength)
	if err != nil {
		return nil, err
	}
	if s.photoRequired && (in.Photo == nil || in.Photo.Body == nil) {
		return nil, apperror.Validation(i18n.KeyDamagePhotoRequired)
	}
	photo, err := readPhoto(ctx, s.intake, in.Photo)
	if err != nil {
		return nil, err
	}

	var photoURL string
	if photo != nil {
		path := storage.DamageObjectPath(s.now(), photo.Ext)
		if _, err := s.photos.Upload(ctx, path, photo, true); err != nil {
			return nil, err
		}
		photoURL = s.photos.PublicURL(path)
	}

	return s.repo.Create(ctx, owner, description, photoURL)
}

// List returns the owner's reports, newest first.
func (s *DamageService) List(ctx context.Context, owner uuid.UUID) (Listing[models.DamageReport], error) {
	items, err := s.repo.ListByOwner(ctx, owner)
	return newListing(items, err)
}
