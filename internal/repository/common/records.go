package common

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/agrox/fieldops/internal/backend"
	"github.com/agrox/fieldops/internal/models"
	"github.com/agrox/fieldops/internal/probe"
)

// DefaultListLimit caps owner lists.
const DefaultListLimit = 100

// Table is a probe-backed remote table.
type Table struct {
	Store    backend.TableStore
	Session  *probe.Session
	Resource probe.Resource
	Limit    int
}

// List returns the owner's rows, newest first, in logical field names.
func (t Table) List(ctx context.Context, owner uuid.UUID, fields []string) ([]probe.Record, error) {
	limit := t.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	recs, _, err := probe.Do(ctx, t.Session, t.Resource, func(ctx context.Context, c probe.Candidate) ([]probe.Record, error) {
		q := backend.Query{
			Table:      c.Target,
			Columns:    c.Columns(fields),
			OwnerID:    owner,
			Descending: true,
			Limit:      limit,
		}
		if col, ok := c.Remote(models.FieldOwner); ok {
			q.OwnerColumn = col
		}
		if col, ok := c.Remote(models.FieldCreatedAt); ok {
			q.OrderColumn = col
		}

		rows, err := t.Store.SelectByOwner(ctx, q)
		if err != nil {
			return nil, err
		}
		out := make([]probe.Record, 0, len(rows))
		for _, row := range rows {
			out = append(out, c.FromRemote(row))
		}
		return out, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.Resource.Name, err)
	}
	return recs, nil
}

// Insert writes rec through the probe and returns the stored row.
func (t Table) Insert(ctx context.Context, rec probe.Record) (probe.Record, error) {
	stored, _, err := probe.Do(ctx, t.Session, t.Resource, func(ctx context.Context, c probe.Candidate) (probe.Record, error) {
		row, err := t.Store.Insert(ctx, c.Target, c.ToRemote(rec))
		if err != nil {
			return nil, err
		}
		return c.FromRemote(row), nil
	})
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", t.Resource.Name, err)
	}
	return stored, nil
}

// ListAs is List decoded into T.
func ListAs[T any](ctx context.Context, t Table, owner uuid.UUID, fields []string) ([]T, error) {
	recs, err := t.List(ctx, owner, fields)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		item, err := models.Decode[T](rec)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// InsertAs is Insert decoded into T.
func InsertAs[T any](ctx context.Context, t Table, rec probe.Record) (*T, error) {
	stored, err := t.Insert(ctx, rec)
	if err != nil {
		return nil, err
	}
	item, err := models.Decode[T](stored)
	if err != nil {
		return nil, err
	}
	return &item, nil
}
