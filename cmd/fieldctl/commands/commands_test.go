package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrox/fieldops/internal/app"
	"github.com/agrox/fieldops/internal/backend/memstore"
	"github.com/agrox/fieldops/internal/probe"
	"github.com/agrox/fieldops/internal/repository"
	"github.com/agrox/fieldops/internal/service"
)

func TestRunProbe_JSON(t *testing.T) {
	cat, err := probe.DefaultCatalog()
	require.NoError(t, err)

	orders, ok := cat.Lookup(probe.OrderTable)
	require.True(t, ok)
	fallback := orders.Candidates[1]

	store := memstore.New("http://files")
	store.CreateTable(fallback.Target, fallback.Columns(repository.Schema()[probe.OrderTable].Fields), nil)
	store.CreateBucket("damages")

	var out bytes.Buffer
	err = runProbe(context.Background(), &out, &app.Stores{Tables: store, Blobs: store}, cat, true)
	require.NoError(t, err)

	var lines []probeLine
	require.NoError(t, json.Unmarshal(out.Bytes(), &lines))
	got := map[string]probeLine{}
	for _, l := range lines {
		got[l.Resource] = l
	}

	assert.Equal(t, "active", got[probe.OrderTable].State)
	assert.Equal(t, "requests", got[probe.OrderTable].Target)
	assert.Equal(t, "damages", got[probe.DamageBucket].Target)
	assert.Equal(t, "unavailable", got[probe.FuelTable].State)
	assert.Empty(t, got[probe.FuelTable].Error)
}

func TestValidateCatalog(t *testing.T) {
	cat, err := probe.DefaultCatalog()
	require.NoError(t, err)
	data, err := cat.Marshal()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "adapters.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cmd := CatalogCommands()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"validate", path})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "resources OK")
}

func TestSignToken_VerifiesLocally(t *testing.T) {
	secret := "local-development-secret-with-32-chars!"
	sub := uuid.New()

	raw, err := signToken(secret, sub.String(), "ops@agrox.pt", time.Hour, time.Now())
	require.NoError(t, err)

	id, err := service.NewTokenVerifier(secret, nil).Verify(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, sub, id.UserID)
	assert.Equal(t, "ops@agrox.pt", id.Email)
}
