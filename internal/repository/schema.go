package repository

import (
	"fmt"

	"github.com/agrox/fieldops/internal/backend"
	"github.com/agrox/fieldops/internal/models"
	"github.com/agrox/fieldops/internal/probe"
)

// TableSchema is what the gateway needs from a table: the logical fields it
// reads or writes and the status a new row starts in.
type TableSchema struct {
	Fields []string
	Status string
}

// Schema maps every table resource to its schema.
func Schema() map[string]TableSchema {
	withOwner := func(fields []string, extra ...string) []string {
		out := append([]string{models.FieldOwner}, fields...)
		return append(out, extra...)
	}
	return map[string]TableSchema{
		probe.DamageTable:      {Fields: withOwner(damageFields), Status: "ABERTO"},
		probe.MaintenanceTable: {Fields: withOwner(maintenanceFields, models.FieldLatitude, models.FieldLongitude), Status: "PENDENTE"},
		probe.OrderTable:       {Fields: withOwner(orderFields), Status: "PENDENTE"},
		probe.FuelTable:        {Fields: withOwner(fuelFields)},
	}
}

// SchemaDeclarer is a store whose tables and buckets are declared up front.
type SchemaDeclarer interface {
	CreateTable(name string, columns []string, defaults backend.Row)
	CreateBucket(name string)
}

// DeclareSchema creates the first candidate of every catalog resource, so a
// local store looks like a freshly provisioned project.
func DeclareSchema(d SchemaDeclarer, catalog *probe.Catalog) error {
	schema := Schema()
	for _, res := range catalog.Resources {
		if len(res.Candidates) == 0 {
			return fmt.Errorf("repository: resource %q has no candidates", res.Name)
		}
		first := res.Candidates[0]

		table, isTable := schema[res.Name]
		if !isTable {
			d.CreateBucket(first.Target)
			continue
		}

		var defaults backend.Row
		if col, ok := first.Remote(models.FieldStatus); ok && table.Status != "" {
			defaults = backend.Row{col: table.Status}
		}
		d.CreateTable(first.Target, first.Columns(table.Fields), defaults)
	}
	return nil
}
