package webhook_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magicstars/ops-api/internal/application/ports"
	"github.com/magicstars/ops-api/internal/domain"
	"github.com/magicstars/ops-api/internal/infrastructure/webhook"
)

const (
	testPrimary = "https://nuevo.example.test"
	testLegacy  = "https://legado.example.test"
)

func TestRouter_MigradosUsanHostNuevo(t *testing.T) {
	r := webhook.NewRouter(testPrimary, testLegacy)

	for _, name := range webhook.MigratedEndpoints() {
		base, err := r.BaseURL(name)
		require.NoError(t, err, name)
		assert.Equal(t, testPrimary, base, "%s está migrado", name)
		assert.True(t, r.IsMigrated(name))
	}
}

func TestRouter_NoMigradosUsanHostLegado(t *testing.T) {
	r := webhook.NewRouter(testPrimary, testLegacy)
	migrated := map[string]bool{}
	for _, name := range webhook.MigratedEndpoints() {
		migrated[name] = true
	}

	checked := 0
	for _, name := range webhook.Endpoints() {
		if migrated[name] {
			continue
		}
		base, err := r.BaseURL(name)
		require.NoError(t, err, name)
		assert.Equal(t, testLegacy, base, "%s no está migrado", name)
		checked++
	}
	assert.Positive(t, checked, "debe existir al menos un endpoint en el host legado")
}

func TestRouter_EndpointDesconocido(t *testing.T) {
	r := webhook.NewRouter(testPrimary, testLegacy)

	_, err := r.URL("no-existe")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownEndpoint))

	_, err = r.BaseURL("")
	assert.True(t, errors.Is(err, domain.ErrUnknownEndpoint))
}

func TestRouter_URLCompleta(t *testing.T) {
	r := webhook.NewRouter(testPrimary+"/", testLegacy)

	u, err := r.URL(ports.EndpointSyncRegistries)
	require.NoError(t, err)
	assert.Equal(t, testPrimary+"/webhook/sync-registries", u)

	u, err = r.URL(ports.EndpointInventario)
	require.NoError(t, err)
	assert.Equal(t, testLegacy+"/webhook/inventario", u)
}

func TestRouter_Status(t *testing.T) {
	r := webhook.NewRouter(testPrimary, testLegacy)
	status := r.Status()

	require.Len(t, status, len(webhook.Endpoints()))
	for i := 1; i < len(status); i++ {
		assert.Less(t, status[i-1].Name, status[i].Name)
	}
	for _, s := range status {
		want := testLegacy
		if s.Migrated {
			want = testPrimary
		}
		assert.Equal(t, want, s.BaseURL, s.Name)
	}
}
