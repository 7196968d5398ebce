package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agrox/fieldops/internal/geo"
	"github.com/agrox/fieldops/internal/i18n"
	"github.com/agrox/fieldops/internal/models"
	"github.com/agrox/fieldops/internal/repository"
	"github.com/agrox/fieldops/internal/storage"
	"github.com/agrox/fieldops/internal/validation"
)

type MaintenanceRepository interface {
	ListByOwner(ctx context.Context, owner uuid.UUID) ([]models.MaintenanceRequest, error)
	Create(ctx context.Context, owner uuid.UUID, in repository.MaintenanceInput) (*models.MaintenanceRequest, error)
}

type MaintenanceService struct {
	repo       MaintenanceRepository
	photos     PhotoUploader
	intake     *storage.PhotoIntake
	geoTimeout time.Duration
	now        func() time.Time
}

func NewMaintenanceService(repo MaintenanceRepository, photos PhotoUploader, intake *storage.PhotoIntake, geoTimeout time.Duration) *MaintenanceService {
	return &MaintenanceService{
		repo:       repo,
		photos:     photos,
		intake:     intake,
		geoTimeout: geo.ClampTimeout(geoTimeout),
		now:        time.Now,
	}
}

// MaintenanceInput is a maintenance request as submitted.
type MaintenanceInput struct {
	Description string
	Location    string
	Locator     geo.Locator
	Photo       *PhotoUpload
}

// Submit stores a request. The photo is kept under the owner's folder and the
// record stores its path. Without location text the coordinates fill it in.
func (s *MaintenanceService) Submit(ctx context.Context, owner uuid.UUID, in MaintenanceInput) (*models.MaintenanceRequest, error) {
	description, err := validation.Text(in.Description, i18n.KeyMaintenanceDescriptionRequired, validation.MaxDescriptionLength)
	if err != nil {
		return nil, err
	}
	photo, err := readPhoto(ctx, s.intake, in.Photo)
	if err != nil {
		return nil, err
	}

	input := repository.MaintenanceInput{
		Description: description,
		Location:    validation.Optional(in.Location, validation.MaxLocationLength),
	}
	if coords := geo.Acquire(ctx, in.Locator, s.geoTimeout); coords != nil {
		input.Latitude = &coords.Latitude
		input.Longitude = &coords.Longitude
		if input.Location == nil {
			text := coords.String()
			input.Location = &text
		}
	}

	if photo != nil {
		path := storage.MaintenanceObjectPath(owner, s.now(), photo.Ext)
		if _, err := s.photos.Upload(ctx, path, photo, true); err != nil {
			return nil, err
		}
		input.PhotoPath = path
	}

	return s.repo.Create(ctx, owner, input)
}

// List returns the owner's requests, newest first.
func (s *MaintenanceService) List(ctx context.Context, owner uuid.UUID) (Listing[models.MaintenanceRequest], error) {
	items, err := s.repo.ListByOwner(ctx, owner)
	return newListing(items, err)
}

// PhotoURL resolves a stored photo path.
func (s *MaintenanceService) PhotoURL(path string) string {
	return s.photos.PublicURL(path)
}
