package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/agrox/fieldops/internal/backend"
	"github.com/agrox/fieldops/internal/models"
	"github.com/agrox/fieldops/internal/probe"
	"github.com/agrox/fieldops/internal/repository/common"
)

var (
	damageFields = []string{
		models.FieldID, models.FieldCreatedAt, models.FieldDescription,
		models.FieldPhoto, models.FieldStatus,
	}
	maintenanceFields = []string{
		models.FieldID, models.FieldCreatedAt, models.FieldDescription, models.FieldLocation,
		models.FieldStatus, models.FieldResponse, models.FieldRespondedAt, models.FieldPhoto,
	}
	orderFields = []string{
		models.FieldID, models.FieldCreatedAt, models.FieldRequestType, models.FieldDescription,
		models.FieldStatus, models.FieldResponse,
	}
	fuelFields = []string{
		models.FieldID, models.FieldCreatedAt, models.FieldToken, models.FieldValue,
		models.FieldKmHours, models.FieldPhoto, models.FieldLatitude, models.FieldLongitude,
	}
)

// Table is a probe-backed remote table.
type Table = common.Table

// NewTable looks up a table resource in the catalog.
func NewTable(store backend.TableStore, session *probe.Session, catalog *probe.Catalog, name string) (Table, error) {
	res, ok := catalog.Lookup(name)
	if !ok {
		return Table{}, fmt.Errorf("repository: catalog has no resource %q", name)
	}
	return Table{Store: store, Session: session, Resource: res}, nil
}

// DamageRepository reads and writes damage reports.
type DamageRepository struct {
	table common.Table
}

func NewDamageRepository(table common.Table) *DamageRepository {
	return &DamageRepository{table: table}
}

func (r *DamageRepository) ListByOwner(ctx context.Context, owner uuid.UUID) ([]models.DamageReport, error) {
	return common.ListAs[models.DamageReport](ctx, r.table, owner, damageFields)
}

// Create stores a report; photoURL may be empty when photos are optional.
func (r *DamageRepository) Create(ctx context.Context, owner uuid.UUID, description, photoURL string) (*models.DamageReport, error) {
	rec := probe.Record{
		models.FieldOwner:       owner.String(),
		models.FieldDescription: description,
	}
	if photoURL != "" {
		rec[models.FieldPhoto] = photoURL
	}
	return common.InsertAs[models.DamageReport](ctx, r.table, rec)
}

// MaintenanceRepository reads and writes maintenance requests.
type MaintenanceRepository struct {
	table common.Table
}

func NewMaintenanceRepository(table common.Table) *MaintenanceRepository {
	return &MaintenanceRepository{table: table}
}

func (r *MaintenanceRepository) ListByOwner(ctx context.Context, owner uuid.UUID) ([]models.MaintenanceRequest, error) {
	return common.ListAs[models.MaintenanceRequest](ctx, r.table, owner, maintenanceFields)
}

// MaintenanceInput is a validated maintenance request.
type MaintenanceInput struct {
	Description string
	Location    *string
	Latitude    *float64
	Longitude   *float64
	PhotoPath   string
}

func (r *MaintenanceRepository) Create(ctx context.Context, owner uuid.UUID, in MaintenanceInput) (*models.MaintenanceRequest, error) {
	rec := probe.Record{
		models.FieldOwner:       owner.String(),
		models.FieldDescription: in.Description,
	}
	if in.Location != nil {
		rec[models.FieldLocation] = *in.Location
	}
	if in.Latitude != nil && in.Longitude != nil {
		rec[models.FieldLatitude] = *in.Latitude
		rec[models.FieldLongitude] = *in.Longitude
	}
	if in.PhotoPath != "" {
		rec[models.FieldPhoto] = in.PhotoPath
	}
	return common.InsertAs[models.MaintenanceRequest](ctx, r.table, rec)
}

// OrderRepository reads and writes order requests.
type OrderRepository struct {
	table common.Table
}

func NewOrderRepository(table common.Table) *OrderRepository {
	return &OrderRepository{table: table}
}

func (r *OrderRepository) ListByOwner(ctx context.Context, owner uuid.UUID) ([]models.OrderRequest, error) {
	return common.ListAs[models.OrderRequest](ctx, r.table, owner, orderFields)
}

func (r *OrderRepository) Create(ctx context.Context, owner uuid.UUID, requestType, details string) (*models.OrderRequest, error) {
	return common.InsertAs[models.OrderRequest](ctx, r.table, probe.Record{
		models.FieldOwner:       owner.String(),
		models.FieldRequestType: requestType,
		models.FieldDescription: details,
	})
}

// FuelRepository reads and writes refuelling logs.
type FuelRepository struct {
	table common.Table
}

func NewFuelRepository(table common.Table) *FuelRepository {
	return &FuelRepository{table: table}
}

func (r *FuelRepository) ListByOwner(ctx context.Context, owner uuid.UUID) ([]models.Fueling, error) {
	return common.ListAs[models.Fueling](ctx, r.table, owner, fuelFields)
}

// FuelInput is a validated refuelling entry.
type FuelInput struct {
	Token     string
	Value     float64
	KmHours   float64
	ImageURL  string
	Latitude  *float64
	Longitude *float64
}

func (r *FuelRepository) Create(ctx context.Context, owner uuid.UUID, in FuelInput) (*models.Fueling, error) {
	rec := probe.Record{
		models.FieldOwner:   owner.String(),
		models.FieldToken:   in.Token,
		models.FieldValue:   in.Value,
		models.FieldKmHours: in.KmHours,
	}
	if in.ImageURL != "" {
		rec[models.FieldPhoto] = in.ImageURL
	}
	if in.Latitude != nil && in.Longitude != nil {
		rec[models.FieldLatitude] = *in.Latitude
		rec[models.FieldLongitude] = *in.Longitude
	}
	return common.InsertAs[models.Fueling](ctx, r.table, rec)
}
