package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magicstars/ops-api/internal/application/dto"
	"github.com/magicstars/ops-api/internal/application/ports"
	"github.com/magicstars/ops-api/internal/infrastructure/webhook"
	apphttp "github.com/magicstars/ops-api/internal/interfaces/http"
	"github.com/magicstars/ops-api/pkg/logger"
)

// buildSyncApp levanta el handler apuntando ambos hosts al servidor de prueba.
func buildSyncApp(upstreamURL string) *fiber.App {
	return buildSyncAppWithLimit(upstreamURL, 0)
}

// buildSyncAppWithLimit igual que buildSyncApp con límite de respuesta propio (0 = por defecto).
func buildSyncAppWithLimit(upstreamURL string, maxBytes int64) *fiber.App {
	router := webhook.NewRouter(upstreamURL, upstreamURL)
	client := webhook.NewClient(router, 2*time.Second).WithMaxResponseBytes(maxBytes)
	h := apphttp.NewSyncHandler(client, router, logger.Nop())

	app := fiber.New()
	app.Post("/api/sync/registries", h.SyncRegistries)
	app.Get("/api/sync/registries", h.SyncStatus)
	app.Get("/api/webhooks/status", h.Status)
	app.Post("/api/webhooks/:endpoint", apphttp.RequireKnownEndpoint(router), h.Forward)
	return app
}

func postSync(t *testing.T, app *fiber.App, path string, body io.Reader) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, raw
}

func TestSyncRegistries_RelayOK(t *testing.T) {
	var gotMethod, gotPath string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"synced":12}`))
	}))
	defer upstream.Close()

	resp, body := postSync(t, buildSyncApp(upstream.URL), "/api/sync/registries", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"synced":12}`, string(body))
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/webhook/sync-registries", gotPath)
}

func TestSyncRegistries_ErrorDelServidor(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("workflow desactivado"))
	}))
	defer upstream.Close()

	resp, body := postSync(t, buildSyncApp(upstream.URL), "/api/sync/registries", nil)

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	var out dto.ProxyErrorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.NotEmpty(t, out.Error)
	assert.Equal(t, "workflow desactivado", out.Details)
}

func TestSyncRegistries_FalloDeRed(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := upstream.URL
	upstream.Close()

	resp, body := postSync(t, buildSyncApp(url), "/api/sync/registries", nil)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var out dto.ProxyErrorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.NotEmpty(t, out.Error)
	assert.NotEmpty(t, out.Details)
}

func TestSyncRegistries_CuerpoVacio(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer upstream.Close()

	resp, body := postSync(t, buildSyncApp(upstream.URL), "/api/sync/registries", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{}`, string(body))
}

func TestSyncRegistries_RespuestaNoJSON(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>ok</html>"))
	}))
	defer upstream.Close()

	resp, body := postSync(t, buildSyncApp(upstream.URL), "/api/sync/registries", nil)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var out dto.ProxyErrorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "<html>ok</html>", out.Details)
}

func TestSyncRegistries_CuerpoGrandeSeRelayaIntacto(t *testing.T) {
	big := []byte(`{"registros":"` + strings.Repeat("a", 2<<20) + `"}`)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(big)
	}))
	defer upstream.Close()

	resp, body := postSync(t, buildSyncApp(upstream.URL), "/api/sync/registries", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, len(big), len(body))
	assert.Equal(t, big, body)
}

func TestSyncRegistries_CuerpoExcedeLimite(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"registros":"` + strings.Repeat("a", 4096) + `"}`))
	}))
	defer upstream.Close()

	resp, body := postSync(t, buildSyncAppWithLimit(upstream.URL, 1024), "/api/sync/registries", nil)

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	var out dto.ProxyErrorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "respuesta demasiado grande", out.Error)
	assert.Contains(t, out.Details, "1024")
}

func TestSyncRegistries_GetDevuelveMensaje(t *testing.T) {
	app := buildSyncApp("http://127.0.0.1:1")
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/sync/registries", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.NotEmpty(t, out["message"])
}

func TestWebhookForward_ReenviaCuerpo(t *testing.T) {
	var gotPath, gotBody string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer upstream.Close()

	resp, body := postSync(t, buildSyncApp(upstream.URL), "/api/webhooks/liquidacion", strings.NewReader(`{"mensajero":"Ana"}`))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.Equal(t, "/webhook/liquidacion-mensajero", gotPath)
	assert.JSONEq(t, `{"mensajero":"Ana"}`, gotBody)
}

func TestWebhookForward_EndpointDesconocido(t *testing.T) {
	resp, body := postSync(t, buildSyncApp("http://127.0.0.1:1"), "/api/webhooks/no-existe", nil)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var out dto.ProxyErrorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Contains(t, out.Details, "no-existe")
}

func TestWebhookStatus(t *testing.T) {
	app := buildSyncApp("http://n8n.local")
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/webhooks/status", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out []ports.EndpointStatus
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out, len(webhook.Endpoints()))
	for _, s := range out {
		if s.Name == ports.EndpointSyncRegistries {
			assert.True(t, s.Migrated)
			assert.Equal(t, "http://n8n.local", s.BaseURL)
		}
	}
}
