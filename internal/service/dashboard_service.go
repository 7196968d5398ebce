package service

import (
	"github.com/agrox/fieldops/internal/i18n"
	"github.com/agrox/fieldops/internal/models"
	"github.com/agrox/fieldops/internal/probe"
)

type tileSpec struct {
	key      string
	path     string
	variant  string
	resource string
}

var tiles = []tileSpec{
	{key: i18n.KeyTileDamages, path: "/damages", variant: "destructive", resource: probe.DamageTable},
	{key: i18n.KeyTileFuel, path: "/fuel", variant: "default", resource: probe.FuelTable},
	{key: i18n.KeyTileMaintenance, path: "/maintenance", variant: "secondary", resource: probe.MaintenanceTable},
	{key: i18n.KeyTileOrders, path: "/orders", variant: "outline", resource: probe.OrderTable},
	{key: i18n.KeyTileSupport, path: "/support", variant: "outline"},
	{key: i18n.KeyTileLanguage, path: "/language", variant: "ghost"},
}

// DashboardService builds the home screen tiles.
type DashboardService struct {
	session *probe.Session
}

func NewDashboardService(session *probe.Session) *DashboardService {
	return &DashboardService{session: session}
}

// Tiles lists the tiles in lang. A module whose table was probed and found
// missing is marked unavailable; an unprobed one is assumed available.
func (s *DashboardService) Tiles(lang i18n.Lang) []models.Tile {
	out := make([]models.Tile, 0, len(tiles))
	for _, t := range tiles {
		available := t.resource == "" || s.session.State(t.resource) != probe.StateUnavailable
		out = append(out, models.Tile{
			Key:       t.key,
			Title:     i18n.T(lang, t.key),
			Path:      t.path,
			Variant:   t.variant,
			Available: available,
		})
	}
	return out
}

// ProbeStatus reports the probe state of every resource.
func (s *DashboardService) ProbeStatus() []probe.Status {
	return s.session.Snapshot()
}
