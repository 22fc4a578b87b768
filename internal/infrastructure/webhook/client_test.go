package webhook_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magicstars/ops-api/internal/application/ports"
	"github.com/magicstars/ops-api/internal/domain"
	"github.com/magicstars/ops-api/internal/infrastructure/webhook"
)

func TestClient_ForwardRelayaStatusYCuerpo(t *testing.T) {
	var gotPath, gotMethod, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"synced":12}`))
	}))
	defer srv.Close()

	c := webhook.NewClient(webhook.NewRouter(srv.URL, "http://legado.invalid"), 5*time.Second)
	resp, err := c.Forward(context.Background(), ports.EndpointActualizarPedido, []byte(`{"id_pedido":"A1"}`))
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/webhook/actualizar-pedido", gotPath)
	assert.Equal(t, `{"id_pedido":"A1"}`, gotBody)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.True(t, resp.OK())
	assert.JSONEq(t, `{"synced":12}`, string(resp.Body))
}

func TestClient_ForwardErrorHTTPNoEsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("mantenimiento"))
	}))
	defer srv.Close()

	c := webhook.NewClient(webhook.NewRouter(srv.URL, srv.URL), 5*time.Second)
	resp, err := c.Forward(context.Background(), ports.EndpointSyncRegistries, nil)
	require.NoError(t, err)
	assert.False(t, resp.OK())
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "mantenimiento", string(resp.Body))
}

func TestClient_ForwardFalloDeRed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := webhook.NewClient(webhook.NewRouter(url, url), 2*time.Second)
	_, err := c.Forward(context.Background(), ports.EndpointSyncRegistries, nil)
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrUnknownEndpoint))
	assert.True(t, errors.Is(err, domain.ErrWebhookUnavailable))
}

func TestClient_ForwardCuerpoEnElLimite(t *testing.T) {
	body := []byte(`{"items":"` + strings.Repeat("x", 50) + `"}`)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	c := webhook.NewClient(webhook.NewRouter(srv.URL, srv.URL), 5*time.Second).WithMaxResponseBytes(int64(len(body)))
	resp, err := c.Forward(context.Background(), ports.EndpointSyncRegistries, nil)
	require.NoError(t, err)
	assert.Equal(t, body, resp.Body)
}

func TestClient_ForwardCuerpoExcedeLimite(t *testing.T) {
	body := []byte(`{"items":"` + strings.Repeat("x", 50) + `"}`)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	c := webhook.NewClient(webhook.NewRouter(srv.URL, srv.URL), 5*time.Second).WithMaxResponseBytes(int64(len(body) - 1))
	_, err := c.Forward(context.Background(), ports.EndpointSyncRegistries, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrWebhookTooLarge))
}

func TestClient_ForwardEndpointDesconocido(t *testing.T) {
	c := webhook.NewClient(webhook.NewRouter("http://a.invalid", "http://b.invalid"), time.Second)
	_, err := c.Forward(context.Background(), "no-existe", nil)
	assert.True(t, errors.Is(err, domain.ErrUnknownEndpoint))
}
