package service

import (
	"context"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/agrox/fieldops/internal/geo"
	"github.com/agrox/fieldops/internal/i18n"
	"github.com/agrox/fieldops/internal/logger"
	"github.com/agrox/fieldops/internal/models"
	"github.com/agrox/fieldops/internal/pkg/apperror"
	"github.com/agrox/fieldops/internal/repository"
	"github.com/agrox/fieldops/internal/storage"
	"github.com/agrox/fieldops/internal/validation"
)

type FuelRepository interface {
	ListByOwner(ctx context.Context, owner uuid.UUID) ([]models.Fueling, error)
	Create(ctx context.Context, owner uuid.UUID, in repository.FuelInput) (*models.Fueling, error)
}

type FuelService struct {
	repo       FuelRepository
	photos     PhotoUploader
	intake     *storage.PhotoIntake
	geoTimeout time.Duration
	now        func() time.Time
}

func NewFuelService(repo FuelRepository, photos PhotoUploader, intake *storage.PhotoIntake, geoTimeout time.Duration) *FuelService {
	return &FuelService{
		repo:       repo,
		photos:     photos,
		intake:     intake,
		geoTimeout: geo.ClampTimeout(geoTimeout),
		now:        time.Now,
	}
}

// IssueToken returns the last six digits of the current unix millis followed
// by a number from 0 to 999.
func (s *FuelService) IssueToken() string {
	millis := strconv.FormatInt(s.now().UnixMilli(), 10)
	if len(millis) > 6 {
		millis = millis[len(millis)-6:]
	}
	return millis + strconv.Itoa(rand.IntN(1000))
}

// FuelInput is a refuelling as submitted; numbers are still in the user's notation.
type FuelInput struct {
	Token   string
	Value   string
	KmHours string
	Locator geo.Locator
	Photo   *PhotoUpload
}

// Submit stores a refuelling. A fuel module without a bucket still logs the
// refuelling, without the image.
func (s *FuelService) Submit(ctx context.Context, owner uuid.UUID, in FuelInput) (*models.Fueling, error) {
	token, err := validation.Text(in.Token, i18n.KeyFuelTokenRequired, validation.MaxTokenLength)
	if err != nil {
		return nil, err
	}
	value, err := validation.PositiveNumber(in.Value, i18n.KeyFuelValueInvalid)
	if err != nil {
		return nil, err
	}
	kmHours, err := validation.NonNegativeNumber(in.KmHours, i18n.KeyFuelKmInvalid)
	if err != nil {
		return nil, err
	}
	photo, err := readPhoto(ctx, s.intake, in.Photo)
	if err != nil {
		return nil, err
	}

	input := repository.FuelInput{Token: token, Value: value, KmHours: kmHours}
	if coords := geo.Acquire(ctx, in.Locator, s.geoTimeout); coords != nil {
		input.Latitude = &coords.Latitude
		input.Longitude = &coords.Longitude
	}

	if photo != nil {
		path := storage.FuelObjectPath(token, s.now(), photo.Ext)
		_, err := s.photos.Upload(ctx, path, photo, true)
		switch {
		case err == nil:
			input.ImageURL = s.photos.PublicURL(path)
		case apperror.IsModuleUnavailable(err):
			if logger.Log != nil {
				logger.Log.WithFields(logrus.Fields{"token": token}).Warn("fuel: no bucket, saving without image")
			}
		default:
			return nil, err
		}
	}

	return s.repo.Create(ctx, owner, input)
}

// List returns the owner's refuellings, newest first.
func (s *FuelService) List(ctx context.Context, owner uuid.UUID) (Listing[models.Fueling], error) {
	items, err := s.repo.ListByOwner(ctx, owner)
	return newListing(items, err)
}
