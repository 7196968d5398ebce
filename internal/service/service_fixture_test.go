package service

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/agrox/fieldops/internal/backend"
	"github.com/agrox/fieldops/internal/backend/memstore"
	"github.com/agrox/fieldops/internal/probe"
	"github.com/agrox/fieldops/internal/repository"
	"github.com/agrox/fieldops/internal/storage"
)

type fixture struct {
	store   *memstore.Store
	session *probe.Session
	catalog *probe.Catalog
	intake  *storage.PhotoIntake
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cat, err := probe.DefaultCatalog()
	require.NoError(t, err)
	return &fixture{
		store:   memstore.New("http://files.test"),
		session: probe.NewSession(),
		catalog: cat,
		intake:  storage.NewPhotoIntake(10),
	}
}

func (f *fixture) table(t *testing.T, name string) repository.Table {
	t.Helper()
	table, err := repository.NewTable(f.store, f.session, f.catalog, name)
	require.NoError(t, err)
	return table
}

func (f *fixture) photos(t *testing.T, name string) *repository.PhotoRepository {
	t.Helper()
	res, ok := f.catalog.Lookup(name)
	require.True(t, ok)
	return repository.NewPhotoRepository(f.store, f.session, res)
}

func (f *fixture) withDamageSchema() {
	f.store.CreateTable("damage_reports", []string{"user_id", "report_text", "photo_url", "status"}, backend.Row{"status": "ABERTO"})
	f.store.CreateBucket("damage-reports")
}

func (f *fixture) damageService(t *testing.T) *DamageService {
	svc := NewDamageService(
		repository.NewDamageRepository(f.table(t, probe.DamageTable)),
		f.photos(t, probe.DamageBucket),
		f.intake,
		true,
	)
	svc.now = fixedClock()
	return svc
}

func fixedClock() func() time.Time {
	now := time.UnixMilli(1700000000000)
	return func() time.Time {
		now = now.Add(time.Millisecond)
		return now
	}
}

// jpeg returns n bytes with a JPEG signature.
func jpeg(n int) *bytes.Reader {
	data := make([]byte, n)
	copy(data, []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00})
	return bytes.NewReader(data)
}
