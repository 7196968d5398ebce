package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/agrox/fieldops/internal/backend"
	"github.com/agrox/fieldops/internal/probe"
)

// Modules holds the repositories of every screen, all sharing one probe session.
type Modules struct {
	Damages           *DamageRepository
	DamagePhotos      *PhotoRepository
	Maintenance       *MaintenanceRepository
	MaintenancePhotos *PhotoRepository
	Orders            *OrderRepository
	Fuel              *FuelRepository
	FuelPhotos        *PhotoRepository
	Users             *UserRepository

	tables map[string]Table
}

// NewModules builds the repositories over the given stores.
func NewModules(tables backend.TableStore, blobs backend.BlobStore, session *probe.Session, catalog *probe.Catalog) (*Modules, error) {
	if err := catalog.Require(
		probe.DamageTable, probe.DamageBucket,
		probe.MaintenanceTable, probe.MaintenanceBucket,
		probe.OrderTable,
		probe.FuelTable, probe.FuelBucket,
	); err != nil {
		return nil, fmt.Errorf("repository: %w", err)
	}

	byName := map[string]Table{}
	table := func(name string) Table {
		t, _ := NewTable(tables, session, catalog, name)
		byName[name] = t
		return t
	}
	bucket := func(name string) *PhotoRepository {
		res, _ := catalog.Lookup(name)
		return NewPhotoRepository(blobs, session, res)
	}

	mods := &Modules{
		Damages:           NewDamageRepository(table(probe.DamageTable)),
		DamagePhotos:      bucket(probe.DamageBucket),
		Maintenance:       NewMaintenanceRepository(table(probe.MaintenanceTable)),
		MaintenancePhotos: bucket(probe.MaintenanceBucket),
		Orders:            NewOrderRepository(table(probe.OrderTable)),
		Fuel:              NewFuelRepository(table(probe.FuelTable)),
		FuelPhotos:        bucket(probe.FuelBucket),
		Users:             NewUserRepository(tables),
	}
	mods.tables = byName
	return mods, nil
}

// Photos returns the bucket repositories by resource name.
func (m *Modules) Photos() map[string]*PhotoRepository {
	return map[string]*PhotoRepository{
		probe.DamageBucket:      m.DamagePhotos,
		probe.MaintenanceBucket: m.MaintenancePhotos,
		probe.FuelBucket:        m.FuelPhotos,
	}
}

// ProbeResult is the outcome of probing one resource.
type ProbeResult struct {
	Resource string
	Err      error
}

// Probe resolves every table and bucket without writing: tables are read for
// owner and buckets are checked when the store supports it. Results are
// sorted by resource name.
func (m *Modules) Probe(ctx context.Context, owner uuid.UUID) []ProbeResult {
	schema := Schema()
	var out []ProbeResult
	for name, t := range m.tables {
		_, err := t.List(ctx, owner, schema[name].Fields)
		out = append(out, ProbeResult{Resource: name, Err: err})
	}
	for name, photos := range m.Photos() {
		out = append(out, ProbeResult{Resource: name, Err: photos.Check(ctx)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Resource < out[j].Resource })
	return out
}
