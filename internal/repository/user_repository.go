package repository

import (
	"context"

	"github.com/agrox/fieldops/internal/backend"
)

// EnsureUserRowFunction creates the caller's profile row on first sign-in.
const EnsureUserRowFunction = "ensure_current_user_row"

// UserRepository wraps the user bootstrap RPC.
type UserRepository struct {
	tables backend.TableStore
}

func NewUserRepository(tables backend.TableStore) *UserRepository {
	return &UserRepository{tables: tables}
}

// EnsureCurrentUserRow runs the bootstrap RPC as the caller.
func (r *UserRepository) EnsureCurrentUserRow(ctx context.Context) error {
	return r.tables.CallRPC(ctx, EnsureUserRowFunction, nil)
}
