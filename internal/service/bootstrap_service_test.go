package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/agrox/fieldops/internal/backend"
	"github.com/agrox/fieldops/internal/i18n"
	"github.com/agrox/fieldops/internal/probe"
)

type mockBootstrapRepo struct {
	mock.Mock
}

func (m *mockBootstrapRepo) EnsureCurrentUserRow(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func TestBootstrapService_Ensure(t *testing.T) {
	ctx := context.Background()

	t.Run("runs once per ttl", func(t *testing.T) {
		repo := new(mockBootstrapRepo)
		cache := NewCacheService()
		defer cache.Close()
		svc := NewBootstrapService(repo, cache, time.Hour)
		user := uuid.New()

		repo.On("EnsureCurrentUserRow", ctx).Return(nil).Once()

		assert.NoError(t, svc.Ensure(ctx, user))
		assert.NoError(t, svc.Ensure(ctx, user))
		repo.AssertNumberOfCalls(t, "EnsureCurrentUserRow", 1)
	})

	t.Run("recoverable errors count as done", func(t *testing.T) {
		for _, err := range []error{
			backend.NewError("PGRST202", "Could not find the function public.ensure_current_user_row", 404),
			backend.NewError("42501", "permission denied for function ensure_current_user_row", 403),
		} {
			repo := new(mockBootstrapRepo)
			cache := NewCacheService()
			svc := NewBootstrapService(repo, cache, time.Hour)
			repo.On("EnsureCurrentUserRow", ctx).Return(err).Once()

			assert.NoError(t, svc.Ensure(ctx, uuid.New()))
			cache.Close()
		}
	})

	t.Run("other errors are returned and retried", func(t *testing.T) {
		repo := new(mockBootstrapRepo)
		cache := NewCacheService()
		defer cache.Close()
		svc := NewBootstrapService(repo, cache, time.Hour)
		user := uuid.New()
		boom := errors.New("connection reset")

		repo.On("EnsureCurrentUserRow", ctx).Return(boom).Twice()

		assert.ErrorIs(t, svc.Ensure(ctx, user), boom)
		assert.ErrorIs(t, svc.Ensure(ctx, user), boom)
		repo.AssertNumberOfCalls(t, "EnsureCurrentUserRow", 2)
	})
}

func TestDashboardService_Tiles(t *testing.T) {
	session := probe.NewSession()
	svc := NewDashboardService(session)

	_, _, _ = probe.Do(context.Background(), session, probe.Resource{
		Name:       probe.FuelTable,
		Candidates: []probe.Candidate{{Target: "fuelings"}},
	}, func(ctx context.Context, c probe.Candidate) (int, error) {
		return 0, backend.NewError("42P01", "relation does not exist", 404)
	})

	tiles := svc.Tiles(i18n.EN)
	assert.Len(t, tiles, 6)
	for _, tile := range tiles {
		if tile.Key == i18n.KeyTileFuel {
			assert.False(t, tile.Available)
			assert.Equal(t, "Fuel", tile.Title)
		} else {
			assert.True(t, tile.Available, tile.Key)
		}
	}

	status := svc.ProbeStatus()
	assert.Equal(t, probe.StateUnavailable, status[0].State)
}

func TestSupportService_Contact(t *testing.T) {
	contact := NewSupportService("").Contact()
	assert.Equal(t, DefaultSupportPhone, contact.Phone)
	assert.Equal(t, "tel:+351926087495", contact.TelLink)
}
