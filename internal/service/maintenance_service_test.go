package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrox/fieldops/internal/backend"
	"github.com/agrox/fieldops/internal/geo"
	"github.com/agrox/fieldops/internal/probe"
	"github.com/agrox/fieldops/internal/repository"
)

func newMaintenanceService(t *testing.T, f *fixture) *MaintenanceService {
	f.store.CreateTable("maintenance_requests", []string{
		"user_id", "problem_description", "location_text", "latitude", "longitude",
		"status", "mechanic_response", "responded_at", "photo_path",
	}, backend.Row{"status": "PENDENTE"})
	f.store.CreateBucket("maintenance-requests")

	svc := NewMaintenanceService(
		repository.NewMaintenanceRepository(f.table(t, probe.MaintenanceTable)),
		f.photos(t, probe.MaintenanceBucket),
		f.intake,
		0,
	)
	svc.now = fixedClock()
	return svc
}

func TestMaintenanceService_GeoDeniedLeavesCoordinatesEmpty(t *testing.T) {
	f := newFixture(t)
	svc := newMaintenanceService(t, f)

	created, err := svc.Submit(context.Background(), uuid.New(), MaintenanceInput{
		Description: "Máquina sem força",
		Locator:     geo.FromRequest("38.1", "-8.2", "denied"),
	})
	require.NoError(t, err)
	assert.Nil(t, created.Latitude)
	assert.Nil(t, created.Longitude)
	assert.Nil(t, created.Location)
}

func TestMaintenanceService_CoordinatesFillLocation(t *testing.T) {
	f := newFixture(t)
	svc := newMaintenanceService(t, f)

	created, err := svc.Submit(context.Background(), uuid.New(), MaintenanceInput{
		Description: "Vazamento de óleo",
		Locator:     geo.FromRequest("38.7166667", "-9.1333333", ""),
	})
	require.NoError(t, err)
	require.NotNil(t, created.Location)
	assert.Equal(t, "38.716667, -9.133333", *created.Location)

	typed, err := svc.Submit(context.Background(), uuid.New(), MaintenanceInput{
		Description: "Vazamento de óleo",
		Location:    "Talhão Norte",
		Locator:     geo.FromRequest("38.7", "-9.1", ""),
	})
	require.NoError(t, err)
	assert.Equal(t, "Talhão Norte", *typed.Location)
	require.NotNil(t, typed.Latitude)
}

func TestMaintenanceService_PhotoPathUnderOwner(t *testing.T) {
	f := newFixture(t)
	svc := newMaintenanceService(t, f)
	owner := uuid.New()

	created, err := svc.Submit(context.Background(), owner, MaintenanceInput{
		Description: "Fumaça no motor",
		Photo:       &PhotoUpload{Name: "motor.jpeg", Body: jpeg(4096)},
	})
	require.NoError(t, err)
	require.NotNil(t, created.Photo)
	assert.Equal(t, owner.String()+"/1700000000001.jpeg", *created.Photo)

	_, ok := f.store.Object("maintenance-requests", *created.Photo)
	assert.True(t, ok)
	assert.Equal(t, "http://files.test/maintenance-requests/"+*created.Photo, svc.PhotoURL(*created.Photo))

	list, err := svc.List(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Nil(t, list.Items[0].Response)
}
