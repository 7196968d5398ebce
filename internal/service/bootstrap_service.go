package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agrox/fieldops/internal/backend"
)

type UserBootstrapRepository interface {
	EnsureCurrentUserRow(ctx context.Context) error
}

// BootstrapService makes sure the signed-in user has a profile row, at most
// once per user per TTL.
type BootstrapService struct {
	repo  UserBootstrapRepository
	cache *CacheService
	ttl   time.Duration
}

func NewBootstrapService(repo UserBootstrapRepository, cache *CacheService, ttl time.Duration) *BootstrapService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &BootstrapService{repo: repo, cache: cache, ttl: ttl}
}

// Ensure runs the bootstrap RPC. A deployment without the function or a
// caller without the privilege counts as done.
func (s *BootstrapService) Ensure(ctx context.Context, userID uuid.UUID) error {
	_, err := s.cache.GetOrSet(ctx, BootstrapCacheKey(userID), s.ttl, func(ctx context.Context) (any, error) {
		err := s.repo.EnsureCurrentUserRow(ctx)
		switch backend.KindOf(err) {
		case backend.KindMissingTarget, backend.KindPermissionDenied:
			return true, nil
		}
		if err != nil {
			return nil, err
		}
		return true, nil
	})
	return err
}
